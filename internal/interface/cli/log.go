package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/neilberkman/recrider/internal/interface/tui"
	"github.com/spf13/cobra"
)

var logLimit int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent syncs",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().IntVar(&logLimit, "limit", 20, "Number of syncs to show")
}

func runLog(cmd *cobra.Command, args []string) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	entries, err := database.ListSyncLog(logLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No syncs yet. Run 'recrider sync' to fetch recordings.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %8s files  %s\n",
			e.SyncedAt,
			humanize.Comma(int64(e.TotalFiles)),
			tui.Meta(formatSince(e.Time())))
	}
	return nil
}
