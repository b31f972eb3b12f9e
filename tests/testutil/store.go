package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/safetyflash/internal/model"
	"github.com/nhle/safetyflash/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Days returns now shifted by d days.
func Days(now time.Time, d int) *time.Time {
	t := now.Add(time.Duration(d) * 24 * time.Hour)
	return &t
}

// SeedFlash inserts f and returns its ID, failing the test on error.
func SeedFlash(t *testing.T, s store.Store, f model.Flash) int64 {
	t.Helper()
	if f.Title == "" {
		f.Title = "Test flash"
	}
	id, err := s.CreateFlash(context.Background(), f)
	if err != nil {
		t.Fatalf("seeding flash: %v", err)
	}
	return id
}

// SeedPublished inserts a published flash in lang, published at publishedAt.
func SeedPublished(t *testing.T, s store.Store, lang, title string, publishedAt time.Time) int64 {
	t.Helper()
	return SeedFlash(t, s, model.Flash{
		Lang:        lang,
		State:       model.StatePublished,
		Type:        model.TypeRed,
		Title:       title,
		PublishedAt: &publishedAt,
	})
}

// SeedDisplay inserts an active display and returns its ID.
func SeedDisplay(t *testing.T, s store.Store, d model.DisplayKey) int64 {
	t.Helper()
	d.IsActive = true
	return SeedDisplayRaw(t, s, d)
}

// SeedDisplayRaw inserts d as given, including its IsActive flag.
func SeedDisplayRaw(t *testing.T, s store.Store, d model.DisplayKey) int64 {
	t.Helper()
	if d.Label == "" {
		d.Label = "Screen"
	}
	id, err := s.CreateDisplayKey(context.Background(), d)
	if err != nil {
		t.Fatalf("seeding display: %v", err)
	}
	return id
}

// SeedTarget assigns flashID to displayID.
func SeedTarget(t *testing.T, s store.Store, flashID, displayID int64, active bool, sortOrder int) {
	t.Helper()
	err := s.AssignTarget(context.Background(), model.Target{
		FlashID:      flashID,
		DisplayKeyID: displayID,
		IsActive:     active,
		SortOrder:    sortOrder,
	})
	if err != nil {
		t.Fatalf("seeding target: %v", err)
	}
}

// SeedReviewer creates a user and assigns them as reviewer of flashID.
func SeedReviewer(t *testing.T, s store.Store, flashID int64, first, last, email string) int64 {
	t.Helper()
	ctx := context.Background()
	uid, err := s.CreateUser(ctx, model.User{FirstName: first, LastName: last, Email: email})
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	if err := s.AssignReviewer(ctx, flashID, uid); err != nil {
		t.Fatalf("seeding reviewer: %v", err)
	}
	return uid
}
