package testutil

import (
	"context"
	"errors"
	"time"

	"github.com/nhle/safetyflash/internal/model"
	"github.com/nhle/safetyflash/internal/store"
)

// ErrBroken is returned by every FailingStore read.
var ErrBroken = errors.New("database unavailable")

// FailingStore wraps a Store, records the reads it sees in Calls and fails
// the ones named in Fail. A nil Fail map fails every wrapped read.
type FailingStore struct {
	store.Store
	Fail  map[string]bool
	Calls []string
}

func (f *FailingStore) failing(op string) bool {
	f.Calls = append(f.Calls, op)
	return f.Fail == nil || f.Fail[op]
}

func (f *FailingStore) GetDisplayKey(ctx context.Context, id int64) (*model.DisplayKey, error) {
	if f.failing("GetDisplayKey") {
		return nil, ErrBroken
	}
	return f.Store.GetDisplayKey(ctx, id)
}

func (f *FailingStore) ListActiveDisplayKeys(ctx context.Context, lang string) ([]model.DisplayKey, error) {
	if f.failing("ListActiveDisplayKeys") {
		return nil, ErrBroken
	}
	return f.Store.ListActiveDisplayKeys(ctx, lang)
}

func (f *FailingStore) GetTargetDisplayIDs(ctx context.Context, flashID int64, activeOnly bool) ([]int64, error) {
	if f.failing("GetTargetDisplayIDs") {
		return nil, ErrBroken
	}
	return f.Store.GetTargetDisplayIDs(ctx, flashID, activeOnly)
}

func (f *FailingStore) GetFlashTargets(ctx context.Context, flashID int64) ([]model.TargetDisplay, error) {
	if f.failing("GetFlashTargets") {
		return nil, ErrBroken
	}
	return f.Store.GetFlashTargets(ctx, flashID)
}

func (f *FailingStore) CountActiveTargets(ctx context.Context, flashID int64) (int, error) {
	if f.failing("CountActiveTargets") {
		return 0, ErrBroken
	}
	return f.Store.CountActiveTargets(ctx, flashID)
}

func (f *FailingStore) GetPlaylist(ctx context.Context, displayKeyID int64, now time.Time, limit int) ([]model.PlaylistItem, error) {
	if f.failing("GetPlaylist") {
		return nil, ErrBroken
	}
	return f.Store.GetPlaylist(ctx, displayKeyID, now, limit)
}

func (f *FailingStore) GetReviewers(ctx context.Context, flashID int64) ([]model.Reviewer, error) {
	if f.failing("GetReviewers") {
		return nil, ErrBroken
	}
	return f.Store.GetReviewers(ctx, flashID)
}

func (f *FailingStore) GetPlaylistAPIKey(ctx context.Context, flashID int64) (string, error) {
	if f.failing("GetPlaylistAPIKey") {
		return "", ErrBroken
	}
	return f.Store.GetPlaylistAPIKey(ctx, flashID)
}
