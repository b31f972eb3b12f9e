package store

import (
	"context"
	"fmt"
	"time"

	"github.com/nhle/safetyflash/internal/model"
)

// GetTargetDisplayIDs returns the display ids a flash is assigned to. With
// activeOnly set, only live assignments are returned.
func (s *SQLiteStore) GetTargetDisplayIDs(
	ctx context.Context,
	flashID int64,
	activeOnly bool,
) ([]int64, error) {
	query := "SELECT display_key_id FROM sf_flash_display_targets WHERE flash_id = ?"
	if activeOnly {
		query += " AND is_active = 1"
	}

	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, query, flashID); err != nil {
		return nil, fmt.Errorf("querying targets for flash %d: %w", flashID, err)
	}
	return ids, nil
}

// GetFlashTargets returns every assignment of a flash joined with its
// display, ordered like the display selector.
func (s *SQLiteStore) GetFlashTargets(
	ctx context.Context,
	flashID int64,
) ([]model.TargetDisplay, error) {
	var targets []model.TargetDisplay
	err := s.db.SelectContext(ctx, &targets, `
		SELECT t.flash_id, t.display_key_id, t.is_active, t.sort_order,
			d.label, d.site, d.site_group, d.lang, d.is_active AS display_is_active
		FROM sf_flash_display_targets t
		INNER JOIN sf_display_api_keys d ON d.id = t.display_key_id
		WHERE t.flash_id = ?
		ORDER BY d.site_group ASC, d.sort_order ASC, d.label ASC`, flashID)
	if err != nil {
		return nil, fmt.Errorf("querying display targets for flash %d: %w", flashID, err)
	}
	return targets, nil
}

// CountActiveTargets counts the live assignments of a flash.
func (s *SQLiteStore) CountActiveTargets(ctx context.Context, flashID int64) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM sf_flash_display_targets WHERE flash_id = ? AND is_active = 1",
		flashID)
	if err != nil {
		return 0, fmt.Errorf("counting active targets for flash %d: %w", flashID, err)
	}
	return n, nil
}

// GetPlaylistAPIKey returns the api key of the first active display the
// flash is live on. Which one is first is left to the database.
func (s *SQLiteStore) GetPlaylistAPIKey(ctx context.Context, flashID int64) (string, error) {
	var key string
	err := s.db.GetContext(ctx, &key, `
		SELECT d.api_key
		FROM sf_flash_display_targets t
		INNER JOIN sf_display_api_keys d ON d.id = t.display_key_id
		WHERE t.flash_id = ? AND t.is_active = 1 AND d.is_active = 1
		LIMIT 1`, flashID)
	if err != nil {
		return "", notFound(err, "getting playlist key for flash %d", flashID)
	}
	return key, nil
}

// GetPlaylist lists the flashes currently visible on a display: the target
// is active, the flash is published, not removed and not expired at now.
// Items are ordered by target sort_order, newest publish first on ties.
func (s *SQLiteStore) GetPlaylist(
	ctx context.Context,
	displayKeyID int64,
	now time.Time,
	limit int,
) ([]model.PlaylistItem, error) {
	if limit <= 0 || limit > model.MaxPlaylistItems {
		limit = model.MaxPlaylistItems
	}

	var items []model.PlaylistItem
	err := s.db.SelectContext(ctx, &items, `
		SELECT`+flashColumns+`, t.sort_order AS target_sort_order
		FROM sf_flash_display_targets t
		INNER JOIN sf_flashes f ON f.id = t.flash_id
		WHERE t.display_key_id = ?
			AND t.is_active = 1
			AND f.state = ?
			AND (f.display_expires_at IS NULL OR f.display_expires_at > ?)
			AND f.display_removed_at IS NULL
		ORDER BY t.sort_order ASC, f.published_at DESC
		LIMIT ?`,
		displayKeyID, model.StatePublished, now.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("querying playlist for display %d: %w", displayKeyID, err)
	}
	return items, nil
}

// AssignTarget inserts or replaces the assignment of a flash to a display.
func (s *SQLiteStore) AssignTarget(ctx context.Context, target model.Target) error {
	if target.CreatedAt.IsZero() {
		target.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sf_flash_display_targets (flash_id, display_key_id, is_active, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(flash_id, display_key_id) DO UPDATE SET
			is_active = excluded.is_active,
			sort_order = excluded.sort_order`,
		target.FlashID, target.DisplayKeyID, boolToInt(target.IsActive),
		target.SortOrder, target.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("assigning flash %d to display %d: %w",
			target.FlashID, target.DisplayKeyID, err)
	}
	return nil
}
