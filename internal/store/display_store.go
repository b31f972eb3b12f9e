package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/safetyflash/internal/model"
)

const displayColumns = `
	id, site, site_group, label, lang, sort_order, api_key, is_active, created_at`

// GetDisplayKey retrieves a single display by ID, active or not.
func (s *SQLiteStore) GetDisplayKey(ctx context.Context, id int64) (*model.DisplayKey, error) {
	var d model.DisplayKey
	err := s.db.GetContext(ctx, &d,
		"SELECT"+displayColumns+" FROM sf_display_api_keys WHERE id = ?", id)
	if err != nil {
		return nil, notFound(err, "getting display %d", id)
	}
	return &d, nil
}

// ListActiveDisplayKeys returns the active displays in lang, ordered by
// site_group, sort_order, then label.
func (s *SQLiteStore) ListActiveDisplayKeys(
	ctx context.Context,
	lang string,
) ([]model.DisplayKey, error) {
	var displays []model.DisplayKey
	err := s.db.SelectContext(ctx, &displays, `
		SELECT`+displayColumns+`
		FROM sf_display_api_keys
		WHERE is_active = 1 AND lang = ?
		ORDER BY site_group ASC, sort_order ASC, label ASC`, lang)
	if err != nil {
		return nil, fmt.Errorf("querying displays for lang %q: %w", lang, err)
	}
	return displays, nil
}

// CreateDisplayKey inserts a display and returns its ID. A positive d.ID is
// kept; an API key is generated when none is given.
func (s *SQLiteStore) CreateDisplayKey(ctx context.Context, d model.DisplayKey) (int64, error) {
	if strings.TrimSpace(d.Label) == "" {
		return 0, fmt.Errorf("display label must not be empty")
	}
	if d.APIKey == "" {
		d.APIKey = strings.ReplaceAll(uuid.New().String(), "-", "")
	}
	if d.Lang == "" {
		d.Lang = "fi"
	}
	d.CreatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO sf_display_api_keys (id, site, site_group, label, lang, sort_order, api_key, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullID(d.ID), d.Site, d.SiteGroup, d.Label, d.Lang, d.SortOrder, d.APIKey,
		boolToInt(d.IsActive), d.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("creating display: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading display id: %w", err)
	}
	return id, nil
}
