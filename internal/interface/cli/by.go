package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/neilberkman/recrider/internal/core/db"
	"github.com/neilberkman/recrider/internal/interface/tui"
	"github.com/spf13/cobra"
)

var byJSON bool

var byCmd = &cobra.Command{
	Use:   "by weekday|hour|directory",
	Short: "Group cached recordings by weekday, hour or directory",
	Long: `Show how cached recordings are distributed.

  weekday    Monday to Sunday, recordings without a start time are skipped
  hour       local hour of day 0-23
  directory  largest first, recordings without one count as (unassigned)`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"weekday", "hour", "directory"},
	RunE:      runBy,
}

func init() {
	rootCmd.AddCommand(byCmd)
	byCmd.Flags().BoolVar(&byJSON, "json", false, "Output JSON")
}

func runBy(cmd *cobra.Command, args []string) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	groups, bars, err := groupRecordings(database, args[0])
	if err != nil {
		return err
	}

	if byJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	}

	fmt.Println(tui.Title("Recordings by " + args[0]))
	fmt.Println()
	fmt.Print(tui.Histogram(bars, 40))
	return nil
}

// groupRecordings runs the named aggregation, returning the raw rows and
// their histogram bars
func groupRecordings(database *db.DB, by string) (interface{}, []tui.Bar, error) {
	var bars []tui.Bar

	switch by {
	case "weekday":
		rows, err := database.GroupByWeekday()
		if err != nil {
			return nil, nil, err
		}
		for _, r := range rows {
			bars = append(bars, tui.Bar{Label: r.WeekdayName, Count: r.Count})
		}
		return rows, bars, nil

	case "hour":
		rows, err := database.GroupByHour()
		if err != nil {
			return nil, nil, err
		}
		for _, r := range rows {
			bars = append(bars, tui.Bar{Label: fmt.Sprintf("%02d:00", r.Hour), Count: r.Count})
		}
		return rows, bars, nil

	case "directory":
		rows, err := database.GroupByDirectory()
		if err != nil {
			return nil, nil, err
		}
		for _, r := range rows {
			bars = append(bars, tui.Bar{Label: r.Directory, Count: r.Count})
		}
		return rows, bars, nil
	}

	return nil, nil, fmt.Errorf("unknown grouping %q (want weekday, hour or directory)", by)
}
