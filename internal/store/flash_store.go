package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/safetyflash/internal/model"
)

// flashColumns lists the sf_flashes columns in model.Flash order.
const flashColumns = `
	f.id, f.lang, f.state, f.type, f.title, f.summary, f.description,
	f.site, f.site_detail, f.is_archived, f.occurred_at, f.published_at,
	f.display_expires_at, f.display_removed_at, f.display_duration_seconds,
	f.created_at, f.updated_at`

// GetFlash retrieves a single flash by ID.
func (s *SQLiteStore) GetFlash(ctx context.Context, id int64) (*model.Flash, error) {
	var flash model.Flash
	err := s.db.GetContext(ctx, &flash,
		"SELECT"+flashColumns+" FROM sf_flashes f WHERE f.id = ?", id)
	if err != nil {
		return nil, notFound(err, "getting flash %d", id)
	}
	return &flash, nil
}

// CreateFlash inserts a flash and returns its ID. A positive flash.ID is
// kept; otherwise one is assigned.
func (s *SQLiteStore) CreateFlash(ctx context.Context, flash model.Flash) (int64, error) {
	if strings.TrimSpace(flash.Title) == "" {
		return 0, fmt.Errorf("flash title must not be empty")
	}
	if flash.State == "" {
		flash.State = model.StateDraft
	}
	if flash.Type == "" {
		flash.Type = model.TypeYellow
	}
	if flash.Lang == "" {
		flash.Lang = "fi"
	}
	now := time.Now().UTC()
	if flash.CreatedAt.IsZero() {
		flash.CreatedAt = now
	}
	flash.UpdatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO sf_flashes (
			id, lang, state, type, title, summary, description,
			site, site_detail, is_archived, occurred_at, published_at,
			display_expires_at, display_removed_at, display_duration_seconds,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullID(flash.ID), flash.Lang, flash.State, flash.Type, flash.Title, flash.Summary, flash.Description,
		flash.Site, flash.SiteDetail, boolToInt(flash.IsArchived),
		utc(flash.OccurredAt), utc(flash.PublishedAt),
		utc(flash.DisplayExpiresAt), utc(flash.DisplayRemovedAt), flash.DisplayDurationSeconds,
		flash.CreatedAt.UTC(), flash.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("creating flash: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading flash id: %w", err)
	}
	return id, nil
}
