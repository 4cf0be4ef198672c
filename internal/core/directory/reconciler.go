// Package directory assigns local directory labels and mirrors them to
// remote file tags.
package directory

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/neilberkman/recrider/internal/core/db"
	"github.com/neilberkman/recrider/internal/core/logger"
	"github.com/neilberkman/recrider/internal/core/models"
)

// TagClient is the remote tag API
type TagClient interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	CreateTag(ctx context.Context, name string) (models.Tag, error)
	ApplyTag(ctx context.Context, ids []string, tagID string) error
}

// Result reports what a reconciliation changed
type Result struct {
	RowsUpdatedLocally int
	IDsTaggedRemotely  int
	TagID              string
	TagCreated         bool
}

// TagSyncError means the local assignment committed but mirroring it to
// the remote tag failed. The local change is not rolled back.
type TagSyncError struct {
	Label              string
	RowsUpdatedLocally int
	IDs                []string
	Err                error
}

func (e *TagSyncError) Error() string {
	return fmt.Sprintf("directory %q assigned to %d recordings locally but remote tagging of %d recordings failed: %v",
		e.Label, e.RowsUpdatedLocally, len(e.IDs), e.Err)
}

func (e *TagSyncError) Unwrap() error {
	return e.Err
}

// Reconciler keeps local directories and remote tags aligned
type Reconciler struct {
	db     *db.DB
	tags   TagClient
	logger *log.Logger
}

// New creates a reconciler. tags may be nil for local-only assignment.
func New(database *db.DB, tags TagClient, l *log.Logger) *Reconciler {
	return &Reconciler{db: database, tags: tags, logger: logger.Or(l)}
}

// Assign labels every recording matching f without touching the remote
func (r *Reconciler) Assign(label string, f db.DirectoryFilter) (int, error) {
	n, err := r.db.AssignDirectory(label, f)
	if err != nil {
		return 0, err
	}
	r.logger.Info("directory assigned", "label", label, "rows", n)
	return n, nil
}

// AssignAndTag labels every recording matching f, then applies a remote tag
// of the same name to every recording carrying the label, including ones
// labelled earlier. The tag is created only if no tag has that name.
func (r *Reconciler) AssignAndTag(ctx context.Context, label string, f db.DirectoryFilter) (Result, error) {
	if r.tags == nil {
		return Result{}, fmt.Errorf("no tag client configured")
	}

	n, err := r.Assign(label, f)
	if err != nil {
		return Result{}, err
	}
	res := Result{RowsUpdatedLocally: n}

	ids, err := r.db.IDsInDirectory(label)
	if err != nil {
		return res, err
	}
	if len(ids) == 0 {
		return res, nil
	}

	tag, created, err := r.findOrCreateTag(ctx, label)
	if err != nil {
		return res, &TagSyncError{Label: label, RowsUpdatedLocally: n, IDs: ids, Err: err}
	}
	res.TagID = tag.ID
	res.TagCreated = created

	if err := r.tags.ApplyTag(ctx, ids, tag.ID); err != nil {
		return res, &TagSyncError{Label: label, RowsUpdatedLocally: n, IDs: ids, Err: err}
	}
	res.IDsTaggedRemotely = len(ids)

	r.logger.Info("remote tag applied", "label", label, "tag_id", tag.ID, "created", created, "recordings", len(ids))
	return res, nil
}

func (r *Reconciler) findOrCreateTag(ctx context.Context, name string) (models.Tag, bool, error) {
	existing, err := r.tags.ListTags(ctx)
	if err != nil {
		return models.Tag{}, false, err
	}
	for _, t := range existing {
		if t.Name == name {
			return t, false, nil
		}
	}

	tag, err := r.tags.CreateTag(ctx, name)
	if err != nil {
		return models.Tag{}, false, err
	}
	return tag, true, nil
}
