package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/neilberkman/recrider/internal/core/logger"
	"github.com/neilberkman/recrider/internal/core/plaud"
	"github.com/neilberkman/recrider/internal/core/syncer"
	"github.com/neilberkman/recrider/internal/interface/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var syncPlain bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull the Plaud recording inventory into the local cache",
	Long: `Fetch every recording from Plaud and upsert it into the local database.

Each sync is a full pull. Recordings that reappear are updated in place and
keep their directory; recordings that disappeared remotely are kept.

Credentials are read from PLAUD_USERNAME and PLAUD_PASSWORD.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVar(&syncPlain, "plain", false, "Plain text progress even on a terminal")
}

func newPlaudClient() (*plaud.Client, error) {
	if err := cfg.RequireCredentials(); err != nil {
		return nil, err
	}
	return plaud.NewClient(plaud.Options{
		BaseURL:  cfg.BaseURL,
		ClientID: cfg.ClientID,
		Username: cfg.Username,
		Password: cfg.Password,
		Logger:   logger.Logger,
	})
}

func runSync(cmd *cobra.Command, args []string) error {
	client, err := newPlaudClient()
	if err != nil {
		return err
	}

	window, err := cfg.WorkWindow()
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	run := func(progress syncer.Progress) (int, error) {
		s := syncer.New(database, client, syncer.Options{
			Window:   window,
			Progress: progress,
			Logger:   logger.Logger,
		})
		return s.Sync(ctx)
	}

	if !syncPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		if _, err := tui.RunSync(run); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		return nil
	}

	fmt.Printf("Syncing recordings from: %s\n", cfg.BaseURL)
	fmt.Printf("Database: %s\n\n", cfg.DBPath)

	if _, err := run(syncer.NewProgressReporter(os.Stdout)); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return nil
}
