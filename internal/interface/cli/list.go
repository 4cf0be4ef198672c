package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/neilberkman/recrider/internal/core/db"
	"github.com/neilberkman/recrider/internal/core/models"
	"github.com/neilberkman/recrider/internal/interface/tui"
	"github.com/spf13/cobra"
)

var (
	listLimit      int
	listDirectory  string
	listUnassigned bool
	listCopy       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached recordings",
	Long: `List cached recordings, newest first.

Examples:
  recrider list
  recrider list --limit 10
  recrider list --directory Q1-Review --copy
  recrider list --unassigned`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of recordings to display (0 for all)")
	listCmd.Flags().StringVar(&listDirectory, "directory", "", "Only recordings in this directory")
	listCmd.Flags().BoolVar(&listUnassigned, "unassigned", false, "Only recordings without a directory")
	listCmd.Flags().BoolVar(&listCopy, "copy", false, "Copy the listed recording ids to the clipboard")
}

func runList(cmd *cobra.Command, args []string) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	recs, err := database.ListRecordings(db.RecordingFilter{
		Directory:  listDirectory,
		Unassigned: listUnassigned,
		Limit:      listLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list recordings: %w", err)
	}

	if len(recs) == 0 {
		if listDirectory != "" {
			fmt.Printf("No recordings found in directory: %s\n", listDirectory)
		} else {
			fmt.Println("No recordings found. Run 'recrider sync' to fetch them.")
		}
		return nil
	}

	for _, r := range recs {
		fmt.Println(formatRecordingLine(r))
	}

	if listCopy {
		ids := make([]string, len(recs))
		for i, r := range recs {
			ids[i] = r.ID
		}
		if err := clipboard.WriteAll(strings.Join(ids, "\n")); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Println(tui.Meta(fmt.Sprintf("Copied %d ids to clipboard", len(ids))))
	}
	return nil
}

func formatRecordingLine(r models.Recording) string {
	when := "undated"
	if r.LocalDatetime != nil {
		when = formatLocal(*r.LocalDatetime)
		if r.WeekdayName != nil {
			when = (*r.WeekdayName)[:3] + " " + when
		}
	}

	marker := " "
	if r.IsWorkingHours {
		marker = "*"
	}

	return fmt.Sprintf("%s %-28s %9s  %-16s %s %s",
		marker,
		when,
		formatDuration(r.Duration),
		truncateLabel(r.DirectoryOrUnassigned(), 16),
		r.Filename,
		tui.Meta(r.ID),
	)
}

func truncateLabel(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
