package cli

import (
	"fmt"

	"github.com/neilberkman/recrider/internal/interface/tui"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear LABEL",
	Short: "Remove a directory from every recording carrying it",
	Long: `Reset the directory of every recording in LABEL.

Only the local cache changes. Tags already applied in Plaud are left alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	n, err := database.ClearDirectory(args[0])
	if err != nil {
		return err
	}
	fmt.Println(tui.Success(fmt.Sprintf("✓ Cleared %s from %d recordings", args[0], n)))
	return nil
}
