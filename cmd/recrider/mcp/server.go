package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/neilberkman/recrider/internal/core/db"
	"github.com/neilberkman/recrider/internal/core/logger"
	"github.com/neilberkman/recrider/internal/core/models"
)

// Options configures the MCP server
type Options struct {
	DBPath    string
	WorkStart int // default window start for count_in_window
	WorkEnd   int // default window end for count_in_window
	Version   string
}

// CountInWindowArgs defines arguments for the count_in_window tool
type CountInWindowArgs struct {
	StartHour    *int `json:"start_hour,omitempty" jsonschema:"description=First hour of the window, inclusive (default: configured work start)"`
	EndHour      *int `json:"end_hour,omitempty" jsonschema:"description=Last hour of the window, exclusive (default: configured work end)"`
	WeekdaysOnly bool `json:"weekdays_only,omitempty" jsonschema:"description=Only count Monday to Friday"`
}

// GroupRecordingsArgs defines arguments for the group_recordings tool
type GroupRecordingsArgs struct {
	By string `json:"by" jsonschema:"description=weekday, hour or directory,required"`
}

// ListRecordingsArgs defines arguments for the list_recordings tool
type ListRecordingsArgs struct {
	Directory  string `json:"directory,omitempty" jsonschema:"description=Only recordings in this directory"`
	Unassigned bool   `json:"unassigned,omitempty" jsonschema:"description=Only recordings without a directory"`
	Limit      int    `json:"limit,omitempty" jsonschema:"description=Max recordings to return (default: 20)"`
}

// RecordingSummary is a recording as returned by list_recordings
type RecordingSummary struct {
	ID             string `json:"id"`
	Filename       string `json:"filename"`
	Duration       int64  `json:"duration_seconds"`
	LocalDatetime  string `json:"local_datetime,omitempty"`
	WeekdayName    string `json:"weekday_name,omitempty"`
	IsWorkingHours bool   `json:"is_working_hours"`
	Directory      string `json:"directory"`
}

// StatsResult is the recording_stats payload
type StatsResult struct {
	TotalRecordings int    `json:"total_recordings"`
	WorkingHours    int    `json:"working_hours"`
	Undated         int    `json:"undated"`
	TotalDuration   int64  `json:"total_duration_seconds"`
	Directories     int    `json:"directories"`
	Stale           int    `json:"stale"`
	SyncCount       int    `json:"sync_count"`
	OldestRecording string `json:"oldest_recording,omitempty"`
	NewestRecording string `json:"newest_recording,omitempty"`
	LastSyncedAt    string `json:"last_synced_at,omitempty"`
	LastSyncFiles   int    `json:"last_sync_files,omitempty"`
}

type toolHandler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// NewServer builds the MCP server with its read-only recording tools
func NewServer(opts Options) *server.MCPServer {
	version := opts.Version
	if version == "" {
		version = "1.0.0"
	}
	s := server.NewMCPServer("recrider", version)

	statsTool := mcp.NewTool("recording_stats",
		mcp.WithDescription("Summary of the local Plaud recording cache: totals, working-hours count, date range, directories, last sync and recordings the last sync did not return"),
	)
	s.AddTool(statsTool, makeStatsHandler(opts))

	countTool := mcp.NewTool("count_in_window",
		mcp.WithDescription("Count cached recordings whose local start hour is in [start_hour, end_hour), optionally Monday to Friday only"),
		mcp.WithNumber("start_hour",
			mcp.Description("First hour of the window, inclusive (default: configured work start)")),
		mcp.WithNumber("end_hour",
			mcp.Description("Last hour of the window, exclusive (default: configured work end)")),
		mcp.WithBoolean("weekdays_only",
			mcp.Description("Only count Monday to Friday")),
	)
	s.AddTool(countTool, makeCountHandler(opts))

	groupTool := mcp.NewTool("group_recordings",
		mcp.WithDescription("Count cached recordings per weekday, per local hour, or per directory (unassigned recordings are grouped under '(unassigned)')"),
		mcp.WithString("by",
			mcp.Required(),
			mcp.Enum("weekday", "hour", "directory"),
			mcp.Description("Grouping: weekday, hour or directory")),
	)
	s.AddTool(groupTool, makeGroupHandler(opts))

	listTool := mcp.NewTool("list_recordings",
		mcp.WithDescription("List cached recordings newest first, optionally filtered by directory"),
		mcp.WithString("directory",
			mcp.Description("Only recordings in this directory")),
		mcp.WithBoolean("unassigned",
			mcp.Description("Only recordings without a directory")),
		mcp.WithNumber("limit",
			mcp.Description("Max recordings to return (default: 20)")),
	)
	s.AddTool(listTool, makeListHandler(opts))

	return s
}

// StartServer serves the tools over stdio until stdin closes
func StartServer(opts Options) error {
	logger.Info("starting MCP server", "db", opts.DBPath)
	return server.ServeStdio(NewServer(opts))
}

// withDB opens the store for a single tool call
func withDB(dbPath string, fn func(*db.DB) (interface{}, error)) (*mcp.CallToolResult, error) {
	database, err := db.New(dbPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to open database: %v", err)), nil
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			logger.Warn("failed to close database", "err", closeErr)
		}
	}()

	result, err := fn(database)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func decodeArgs(request mcp.CallToolRequest, v interface{}) error {
	argsBytes, _ := json.Marshal(request.Params.Arguments)
	if len(argsBytes) == 0 || string(argsBytes) == "null" {
		return nil
	}
	if err := json.Unmarshal(argsBytes, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func makeStatsHandler(opts Options) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return withDB(opts.DBPath, func(database *db.DB) (interface{}, error) {
			stats, err := database.GetStats()
			if err != nil {
				return nil, err
			}
			res := StatsResult{
				TotalRecordings: stats.TotalRecordings,
				WorkingHours:    stats.WorkingHours,
				Undated:         stats.Undated,
				TotalDuration:   stats.TotalDuration,
				Directories:     stats.Directories,
				Stale:           stats.Stale,
				SyncCount:       stats.SyncCount,
				OldestRecording: stats.OldestRecording,
				NewestRecording: stats.NewestRecording,
			}
			if stats.LastSync != nil {
				res.LastSyncedAt = stats.LastSync.SyncedAt
				res.LastSyncFiles = stats.LastSync.TotalFiles
			}
			return res, nil
		})
	}
}

func makeCountHandler(opts Options) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args CountInWindowArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		start, end := opts.WorkStart, opts.WorkEnd
		if args.StartHour != nil {
			start = *args.StartHour
		}
		if args.EndHour != nil {
			end = *args.EndHour
		}
		if start < 0 || end > 24 || start > end {
			return mcp.NewToolResultError(fmt.Sprintf("invalid hour window [%d, %d)", start, end)), nil
		}

		return withDB(opts.DBPath, func(database *db.DB) (interface{}, error) {
			n, err := database.CountInWindow(start, end, args.WeekdaysOnly)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{
				"start_hour":    start,
				"end_hour":      end,
				"weekdays_only": args.WeekdaysOnly,
				"count":         n,
			}, nil
		})
	}
}

func makeGroupHandler(opts Options) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GroupRecordingsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return withDB(opts.DBPath, func(database *db.DB) (interface{}, error) {
			switch args.By {
			case "weekday":
				return database.GroupByWeekday()
			case "hour":
				return database.GroupByHour()
			case "directory":
				return database.GroupByDirectory()
			}
			return nil, fmt.Errorf("unknown grouping %q (want weekday, hour or directory)", args.By)
		})
	}
}

func makeListHandler(opts Options) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListRecordingsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		limit := args.Limit
		if limit <= 0 {
			limit = 20
		}

		return withDB(opts.DBPath, func(database *db.DB) (interface{}, error) {
			recs, err := database.ListRecordings(db.RecordingFilter{
				Directory:  args.Directory,
				Unassigned: args.Unassigned,
				Limit:      limit,
			})
			if err != nil {
				return nil, err
			}

			out := make([]RecordingSummary, 0, len(recs))
			for _, r := range recs {
				out = append(out, summarize(r))
			}
			return out, nil
		})
	}
}

func summarize(r models.Recording) RecordingSummary {
	s := RecordingSummary{
		ID:             r.ID,
		Filename:       r.Filename,
		Duration:       r.Duration,
		IsWorkingHours: r.IsWorkingHours,
		Directory:      r.DirectoryOrUnassigned(),
	}
	if r.LocalDatetime != nil {
		s.LocalDatetime = *r.LocalDatetime
	}
	if r.WeekdayName != nil {
		s.WeekdayName = *r.WeekdayName
	}
	return s
}
