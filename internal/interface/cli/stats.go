package cli

import (
	"fmt"
	"os"

	"github.com/cbroglie/mustache"
	"github.com/dustin/go-humanize"
	"github.com/neilberkman/recrider/internal/core/db"
	"github.com/neilberkman/recrider/internal/interface/tui"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Long: `Summarise the local recording cache.

Shows recording counts, working-hours share, date range, directories and
the last sync. The report is a mustache template; set report_template in
the config file to customise it.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	stats, err := database.GetStats()
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	report, err := renderReport(cfg.Report(), stats)
	if err != nil {
		return err
	}

	fmt.Println(tui.Title("Recording Statistics"))
	fmt.Println()
	fmt.Print(report)
	fmt.Println()

	if info, err := os.Stat(cfg.DBPath); err == nil {
		fmt.Println(tui.Meta(fmt.Sprintf("Database: %s (%s)", cfg.DBPath, humanize.Bytes(uint64(info.Size())))))
	}
	return nil
}

// reportData flattens stats into the values the report template can use
func reportData(stats *db.Stats) map[string]interface{} {
	workingPct := 0
	if stats.TotalRecordings > 0 {
		workingPct = stats.WorkingHours * 100 / stats.TotalRecordings
	}

	data := map[string]interface{}{
		"total":         humanize.Comma(int64(stats.TotalRecordings)),
		"working":       humanize.Comma(int64(stats.WorkingHours)),
		"working_pct":   workingPct,
		"duration":      formatDuration(stats.TotalDuration),
		"directories":   stats.Directories,
		"has_range":     stats.OldestRecording != "",
		"oldest":        formatLocal(stats.OldestRecording),
		"newest":        formatLocal(stats.NewestRecording),
		"has_undated":   stats.Undated > 0,
		"undated":       humanize.Comma(int64(stats.Undated)),
		"has_stale":     stats.Stale > 0,
		"stale":         humanize.Comma(int64(stats.Stale)),
		"has_sync":      stats.LastSync != nil,
		"sync_count":    stats.SyncCount,
		"last_sync":     "",
		"last_sync_raw": "",
	}
	if stats.LastSync != nil {
		data["last_sync"] = formatSince(stats.LastSync.Time())
		data["last_sync_raw"] = stats.LastSync.SyncedAt
		data["last_sync_files"] = humanize.Comma(int64(stats.LastSync.TotalFiles))
	}
	return data
}

func renderReport(template string, stats *db.Stats) (string, error) {
	out, err := mustache.Render(template, reportData(stats))
	if err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return out, nil
}
