package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	countStart        int
	countEnd          int
	countWeekdaysOnly bool
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count cached recordings, optionally within an hour window",
	Long: `Count cached recordings.

With no flags, prints the total. With --start, --end or --weekdays-only,
counts recordings whose local hour is in [start, end). Unset bounds default
to the configured working hours.

Examples:
  recrider count
  recrider count --start 9 --end 18 --weekdays-only
  recrider count --start 18 --end 24`,
	Args: cobra.NoArgs,
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)
	countCmd.Flags().IntVar(&countStart, "start", 0, "First hour of the window (inclusive)")
	countCmd.Flags().IntVar(&countEnd, "end", 0, "Last hour of the window (exclusive)")
	countCmd.Flags().BoolVar(&countWeekdaysOnly, "weekdays-only", false, "Only count Monday to Friday")
}

func runCount(cmd *cobra.Command, args []string) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	flags := cmd.Flags()
	if !flags.Changed("start") && !flags.Changed("end") && !flags.Changed("weekdays-only") {
		n, err := database.CountAll()
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	}

	start, end := cfg.WorkStart, cfg.WorkEnd
	if flags.Changed("start") {
		start = countStart
	}
	if flags.Changed("end") {
		end = countEnd
	}
	if start < 0 || end > 24 || start > end {
		return fmt.Errorf("invalid hour window [%d, %d)", start, end)
	}

	n, err := database.CountInWindow(start, end, countWeekdaysOnly)
	if err != nil {
		return err
	}
	fmt.Println(n)
	return nil
}
