// Package syncer pulls the remote recording inventory into the local cache.
package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/neilberkman/recrider/internal/core/db"
	"github.com/neilberkman/recrider/internal/core/logger"
	"github.com/neilberkman/recrider/internal/core/models"
	"github.com/neilberkman/recrider/internal/core/temporal"
)

// Source supplies the full remote inventory
type Source interface {
	ListRecordings(ctx context.Context) ([]models.RemoteRecording, error)
}

// Options configures a Syncer. Zero values fall back to defaults.
type Options struct {
	Window   temporal.WorkWindow
	Progress Progress
	Logger   *log.Logger
	Now      func() time.Time
}

// Syncer merges the remote inventory into the database
type Syncer struct {
	db       *db.DB
	source   Source
	window   temporal.WorkWindow
	progress Progress
	logger   *log.Logger
	now      func() time.Time
}

// New creates a syncer
func New(database *db.DB, source Source, opts Options) *Syncer {
	s := &Syncer{
		db:       database,
		source:   source,
		window:   opts.Window,
		progress: opts.Progress,
		logger:   logger.Or(opts.Logger),
		now:      opts.Now,
	}
	if s.window == (temporal.WorkWindow{}) {
		s.window = temporal.DefaultWorkWindow()
	}
	if s.progress == nil {
		s.progress = noProgress{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Sync pulls every remote recording, upserts it with freshly derived
// temporal features, then appends one sync log entry. A remote failure or
// a malformed item leaves the database untouched. Returns the number of
// recordings synced.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	remote, err := s.source.ListRecordings(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch remote recordings: %w", err)
	}

	for _, r := range remote {
		if err := r.Validate(); err != nil {
			return 0, fmt.Errorf("remote recording %q: %w", r.ID, err)
		}
	}

	syncedAt := s.now().UTC()
	s.logger.Info("sync started", "remote", len(remote), "synced_at", models.FormatSyncedAt(syncedAt))
	s.progress.Start(len(remote))

	for _, r := range remote {
		rec := models.NewRecording(r, temporal.Derive(r.StartTimeEpochMs, s.window), syncedAt)
		if err := s.db.UpsertRecording(rec); err != nil {
			return 0, err
		}
		s.progress.Update(rec)
	}

	if err := s.db.AppendSyncLog(syncedAt, len(remote)); err != nil {
		return 0, err
	}

	s.progress.Finish(len(remote))
	s.logger.Info("sync finished", "count", len(remote))
	return len(remote), nil
}
