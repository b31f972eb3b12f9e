package store

import (
	"context"
	"errors"
	"time"

	"github.com/nhle/safetyflash/internal/model"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the read access the fragments need plus the inserts used to
// seed flashes, displays, targets and reviewers. Playlist mutations (save,
// reorder, remove, restore) belong to external endpoints and are not part of
// this interface.
type Store interface {
	// === Flashes ===

	GetFlash(ctx context.Context, id int64) (*model.Flash, error)
	CreateFlash(ctx context.Context, flash model.Flash) (int64, error)

	// === Displays ===

	GetDisplayKey(ctx context.Context, id int64) (*model.DisplayKey, error)
	// ListActiveDisplayKeys returns active displays in lang ordered by
	// site_group, sort_order, label.
	ListActiveDisplayKeys(ctx context.Context, lang string) ([]model.DisplayKey, error)
	CreateDisplayKey(ctx context.Context, d model.DisplayKey) (int64, error)

	// === Targets ===

	// GetTargetDisplayIDs returns the display ids a flash is assigned to,
	// optionally only the active assignments.
	GetTargetDisplayIDs(ctx context.Context, flashID int64, activeOnly bool) ([]int64, error)
	GetFlashTargets(ctx context.Context, flashID int64) ([]model.TargetDisplay, error)
	CountActiveTargets(ctx context.Context, flashID int64) (int, error)
	// GetPlaylistAPIKey returns the api key of one active display the flash
	// is actively assigned to.
	GetPlaylistAPIKey(ctx context.Context, flashID int64) (string, error)
	// GetPlaylist lists the flashes visible on a display at now, ordered by
	// target sort_order then newest publish time, capped at limit.
	GetPlaylist(ctx context.Context, displayKeyID int64, now time.Time, limit int) ([]model.PlaylistItem, error)
	AssignTarget(ctx context.Context, target model.Target) error

	// === Reviewers ===

	GetReviewers(ctx context.Context, flashID int64) ([]model.Reviewer, error)
	CreateUser(ctx context.Context, user model.User) (int64, error)
	AssignReviewer(ctx context.Context, flashID, userID int64) error

	Close() error
}

// Opener acquires a Store on demand for callers that were not handed one.
type Opener func() (Store, error)
