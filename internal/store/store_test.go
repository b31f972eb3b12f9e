package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/safetyflash/internal/expiry"
	"github.com/nhle/safetyflash/internal/model"
	"github.com/nhle/safetyflash/internal/store"
	"github.com/nhle/safetyflash/tests/testutil"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestMigrations(t *testing.T) {
	s := testutil.NewTestStore(t)
	v, err := s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestGetFlash(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id := testutil.SeedFlash(t, s, model.Flash{
		Lang:                   "sv",
		Title:                  "Halkrisk",
		State:                  model.StatePendingReview,
		Type:                   model.TypeGreen,
		DisplayExpiresAt:       testutil.Days(now, 7),
		DisplayDurationSeconds: testutil.Ptr(45),
		IsArchived:             true,
	})

	f, err := s.GetFlash(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "sv", f.Lang)
	assert.Equal(t, "Halkrisk", f.Title)
	assert.Equal(t, model.StatePendingReview, f.State)
	assert.True(t, f.IsArchived)
	require.NotNil(t, f.DisplayExpiresAt)
	assert.True(t, f.DisplayExpiresAt.Equal(*testutil.Days(now, 7)))
	require.NotNil(t, f.DisplayDurationSeconds)
	assert.Equal(t, 45, *f.DisplayDurationSeconds)
	assert.Nil(t, f.DisplayRemovedAt)

	_, err = s.GetFlash(ctx, id+100)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestCreateFlash_RequiresTitle(t *testing.T) {
	s := testutil.NewTestStore(t)
	_, err := s.CreateFlash(context.Background(), model.Flash{Title: "  "})
	assert.Error(t, err)
}

func TestListActiveDisplayKeys(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.SeedDisplay(t, s, model.DisplayKey{Label: "Lobby B", SiteGroup: "Helsinki", SortOrder: 2, Lang: "fi"})
	testutil.SeedDisplay(t, s, model.DisplayKey{Label: "Lobby A", SiteGroup: "Helsinki", SortOrder: 2, Lang: "fi"})
	testutil.SeedDisplay(t, s, model.DisplayKey{Label: "Canteen", SiteGroup: "Helsinki", SortOrder: 1, Lang: "fi"})
	testutil.SeedDisplay(t, s, model.DisplayKey{Label: "Gate", SiteGroup: "Espoo", SortOrder: 9, Lang: "fi"})
	testutil.SeedDisplay(t, s, model.DisplayKey{Label: "Matsal", SiteGroup: "Espoo", Lang: "sv"})
	testutil.SeedDisplayRaw(t, s, model.DisplayKey{Label: "Retired", SiteGroup: "Espoo", Lang: "fi", IsActive: false})

	displays, err := s.ListActiveDisplayKeys(ctx, "fi")
	require.NoError(t, err)

	var labels []string
	for _, d := range displays {
		assert.Equal(t, "fi", d.Lang)
		assert.True(t, d.IsActive)
		labels = append(labels, d.Label)
	}
	assert.Equal(t, []string{"Gate", "Canteen", "Lobby A", "Lobby B"}, labels)
}

func TestTargets(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	flash := testutil.SeedPublished(t, s, "fi", "Putoamisvaara", now)
	d1 := testutil.SeedDisplay(t, s, model.DisplayKey{Label: "A", SiteGroup: "G1", Lang: "fi", APIKey: "key-a"})
	d2 := testutil.SeedDisplay(t, s, model.DisplayKey{Label: "B", SiteGroup: "G2", Lang: "fi", APIKey: "key-b"})
	testutil.SeedTarget(t, s, flash, d1, false, 0)
	testutil.SeedTarget(t, s, flash, d2, true, 0)

	all, err := s.GetTargetDisplayIDs(ctx, flash, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{d1, d2}, all)

	active, err := s.GetTargetDisplayIDs(ctx, flash, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{d2}, active)

	n, err := s.CountActiveTargets(ctx, flash)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	key, err := s.GetPlaylistAPIKey(ctx, flash)
	require.NoError(t, err)
	assert.Equal(t, "key-b", key)

	targets, err := s.GetFlashTargets(ctx, flash)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "G1", targets[0].SiteGroup)
	assert.False(t, targets[0].IsActive)
	assert.True(t, targets[1].IsActive)
	assert.True(t, targets[1].DisplayActive)

	// Re-assigning updates the existing row instead of duplicating it.
	testutil.SeedTarget(t, s, flash, d1, true, 4)
	all, err = s.GetTargetDisplayIDs(ctx, flash, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetPlaylistAPIKey_NoActiveDisplay(t *testing.T) {
	s := testutil.NewTestStore(t)
	flash := testutil.SeedPublished(t, s, "fi", "X", now)
	retired := testutil.SeedDisplayRaw(t, s, model.DisplayKey{Label: "Old", Lang: "fi", IsActive: false})
	testutil.SeedTarget(t, s, flash, retired, true, 0)

	_, err := s.GetPlaylistAPIKey(context.Background(), flash)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestGetPlaylist_Visibility(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	display := testutil.SeedDisplay(t, s, model.DisplayKey{Label: "Hall", Lang: "fi"})

	visible := testutil.SeedPublished(t, s, "fi", "visible", now)
	testutil.SeedTarget(t, s, visible, display, true, 1)

	future := testutil.SeedFlash(t, s, model.Flash{
		Title: "expires later", State: model.StatePublished, PublishedAt: &now,
		DisplayExpiresAt: testutil.Days(now, 3),
	})
	testutil.SeedTarget(t, s, future, display, true, 2)

	inactive := testutil.SeedPublished(t, s, "fi", "inactive target", now)
	testutil.SeedTarget(t, s, inactive, display, false, 0)

	draft := testutil.SeedFlash(t, s, model.Flash{Title: "draft", State: model.StateReviewed})
	testutil.SeedTarget(t, s, draft, display, true, 0)

	expired := testutil.SeedFlash(t, s, model.Flash{
		Title: "expired", State: model.StatePublished, PublishedAt: &now,
		DisplayExpiresAt: testutil.Days(now, -1),
	})
	testutil.SeedTarget(t, s, expired, display, true, 0)

	removed := testutil.SeedFlash(t, s, model.Flash{
		Title: "removed", State: model.StatePublished, PublishedAt: &now,
		DisplayRemovedAt: testutil.Days(now, -1),
	})
	testutil.SeedTarget(t, s, removed, display, true, 0)

	items, err := s.GetPlaylist(ctx, display, now, 100)
	require.NoError(t, err)

	var titles []string
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	assert.Equal(t, []string{"visible", "expires later"}, titles)
}

func TestGetPlaylist_ExpiringNowAgreesWithStatus(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	display := testutil.SeedDisplay(t, s, model.DisplayKey{Label: "Hall", Lang: "fi"})

	at := now
	id := testutil.SeedFlash(t, s, model.Flash{
		Title: "expires now", State: model.StatePublished, PublishedAt: &now,
		DisplayExpiresAt: &at,
	})
	testutil.SeedTarget(t, s, id, display, true, 1)

	items, err := s.GetPlaylist(ctx, display, now, 100)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, expiry.StatusExpired, expiry.PlaylistStatus(&at, nil, now))
}

func TestGetPlaylist_Ordering(t *testing.T) {
	s := testutil.NewTestStore(t)
	display := testutil.SeedDisplay(t, s, model.DisplayKey{Label: "Hall", Lang: "fi"})

	older := testutil.SeedPublished(t, s, "fi", "older", now.Add(-48*time.Hour))
	newer := testutil.SeedPublished(t, s, "fi", "newer", now.Add(-time.Hour))
	first := testutil.SeedPublished(t, s, "fi", "first", now.Add(-72*time.Hour))
	last := testutil.SeedPublished(t, s, "fi", "last", now)
	testutil.SeedTarget(t, s, older, display, true, 2)
	testutil.SeedTarget(t, s, newer, display, true, 2)
	testutil.SeedTarget(t, s, first, display, true, 1)
	testutil.SeedTarget(t, s, last, display, true, 3)

	items, err := s.GetPlaylist(context.Background(), display, now, 100)
	require.NoError(t, err)

	var titles []string
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	assert.Equal(t, []string{"first", "newer", "older", "last"}, titles)
	assert.Equal(t, 1, items[0].TargetSortOrder)
}

func TestGetPlaylist_Cap(t *testing.T) {
	s := testutil.NewTestStore(t)
	display := testutil.SeedDisplay(t, s, model.DisplayKey{Label: "Hall", Lang: "fi"})
	for i := 0; i < model.MaxPlaylistItems+5; i++ {
		id := testutil.SeedPublished(t, s, "fi", "flash", now)
		testutil.SeedTarget(t, s, id, display, true, i)
	}

	items, err := s.GetPlaylist(context.Background(), display, now, 0)
	require.NoError(t, err)
	assert.Len(t, items, model.MaxPlaylistItems)

	items, err = s.GetPlaylist(context.Background(), display, now, 1000)
	require.NoError(t, err)
	assert.Len(t, items, model.MaxPlaylistItems)

	items, err = s.GetPlaylist(context.Background(), display, now, 3)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestGetReviewers(t *testing.T) {
	s := testutil.NewTestStore(t)
	flash := testutil.SeedFlash(t, s, model.Flash{State: model.StatePendingSupervisor})
	testutil.SeedReviewer(t, s, flash, "Matti", "Virtanen", "matti@example.com")

	reviewers, err := s.GetReviewers(context.Background(), flash)
	require.NoError(t, err)
	require.Len(t, reviewers, 1)
	assert.Equal(t, "Matti Virtanen", reviewers[0].DisplayName())
	assert.Equal(t, flash, reviewers[0].FlashID)
}

func TestGetDisplayKey_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)
	_, err := s.GetDisplayKey(context.Background(), 99)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
