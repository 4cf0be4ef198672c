package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neilberkman/recrider/internal/core/db"
	"github.com/neilberkman/recrider/internal/core/directory"
	"github.com/neilberkman/recrider/internal/core/logger"
	"github.com/neilberkman/recrider/internal/interface/tui"
	"github.com/spf13/cobra"
)

var (
	assignBefore       string
	assignAfter        string
	assignWorkingHours bool
	assignWeekdays     bool
	assignTag          bool
)

var assignCmd = &cobra.Command{
	Use:   "assign LABEL",
	Short: "File matching recordings into a directory",
	Long: `Set the directory of every cached recording matching the filters.

Filters combine with AND; with no filters every recording is assigned.
--working-hours takes precedence over --weekdays. Dates accept ISO form
or natural language ("last monday", "2 weeks ago").

With --tag, the directory is mirrored to Plaud: a tag named LABEL is
found or created and applied to every recording in the directory in one
request. The local assignment is kept even if tagging fails.

Examples:
  recrider assign Q1-Review --after 2024-01-01 --before 2024-04-01
  recrider assign Work --working-hours --tag
  recrider assign Recent --after "2 weeks ago"`,
	Args: cobra.ExactArgs(1),
	RunE: runAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)
	assignCmd.Flags().StringVar(&assignBefore, "before", "", "Only recordings before this date (exclusive)")
	assignCmd.Flags().StringVar(&assignAfter, "after", "", "Only recordings on or after this date")
	assignCmd.Flags().BoolVar(&assignWorkingHours, "working-hours", false, "Only recordings in working hours")
	assignCmd.Flags().BoolVar(&assignWeekdays, "weekdays", false, "Only recordings Monday to Friday")
	assignCmd.Flags().BoolVar(&assignTag, "tag", false, "Also apply a Plaud tag named LABEL")
}

func buildDirectoryFilter(now time.Time) (db.DirectoryFilter, error) {
	w := newDateParser()

	before, err := parseDateBound(w, assignBefore, now)
	if err != nil {
		return db.DirectoryFilter{}, fmt.Errorf("--before: %w", err)
	}
	after, err := parseDateBound(w, assignAfter, now)
	if err != nil {
		return db.DirectoryFilter{}, fmt.Errorf("--after: %w", err)
	}

	return db.DirectoryFilter{
		Before:           before,
		After:            after,
		WorkingHoursOnly: assignWorkingHours,
		WeekdaysOnly:     assignWeekdays,
	}, nil
}

func runAssign(cmd *cobra.Command, args []string) error {
	label := args[0]

	filter, err := buildDirectoryFilter(time.Now())
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

	if !assignTag {
		n, err := directory.New(database, nil, logger.Logger).Assign(label, filter)
		if err != nil {
			return err
		}
		fmt.Println(tui.Success(fmt.Sprintf("✓ Assigned %d recordings to %s", n, label)))
		return nil
	}

	client, err := newPlaudClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := directory.New(database, client, logger.Logger).AssignAndTag(ctx, label, filter)
	var tagErr *directory.TagSyncError
	if errors.As(err, &tagErr) {
		fmt.Println(tui.Warning(fmt.Sprintf("! Assigned %d recordings to %s locally, but tagging %d recordings in Plaud failed",
			tagErr.RowsUpdatedLocally, label, len(tagErr.IDs))))
		fmt.Println(tui.Meta("  Re-run with --tag to retry; the local assignment is kept."))
		return err
	}
	if err != nil {
		return err
	}

	fmt.Println(tui.Success(fmt.Sprintf("✓ Assigned %d recordings to %s", res.RowsUpdatedLocally, label)))
	switch {
	case res.IDsTaggedRemotely == 0:
		fmt.Println(tui.Meta("  Directory is empty, nothing to tag in Plaud"))
	case res.TagCreated:
		fmt.Println(tui.Meta(fmt.Sprintf("  Created Plaud tag %s and applied it to %d recordings", label, res.IDsTaggedRemotely)))
	default:
		fmt.Println(tui.Meta(fmt.Sprintf("  Applied Plaud tag %s to %d recordings", label, res.IDsTaggedRemotely)))
	}
	return nil
}
