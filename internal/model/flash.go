package model

import "time"

// Flash lifecycle states.
const (
	StateDraft             = "draft"
	StatePendingSupervisor = "pending_supervisor"
	StatePendingReview     = "pending_review"
	StateRequestInfo       = "request_info"
	StateReviewed          = "reviewed"
	StateToComms           = "to_comms"
	StatePublished         = "published"
)

// States lists every lifecycle state in workflow order.
var States = []string{
	StateDraft,
	StatePendingSupervisor,
	StatePendingReview,
	StateRequestInfo,
	StateReviewed,
	StateToComms,
	StatePublished,
}

// Flash types, from most to least severe.
const (
	TypeRed    = "red"
	TypeYellow = "yellow"
	TypeGreen  = "green"
)

// Flash is one language variant of a safety notice. Each variant has its own ID.
type Flash struct {
	ID          int64  `json:"id" db:"id"`
	Lang        string `json:"lang" db:"lang"`
	State       string `json:"state" db:"state"`
	Type        string `json:"type" db:"type"`
	Title       string `json:"title" db:"title"`
	Summary     string `json:"summary" db:"summary"`
	Description string `json:"description" db:"description"`
	Site        string `json:"site" db:"site"`
	SiteDetail  string `json:"site_detail" db:"site_detail"`
	IsArchived  bool   `json:"is_archived" db:"is_archived"`

	OccurredAt  *time.Time `json:"occurred_at,omitempty" db:"occurred_at"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`

	// DisplayExpiresAt is nil when the flash has no display expiry (TTL bucket 0).
	DisplayExpiresAt *time.Time `json:"display_expires_at,omitempty" db:"display_expires_at"`
	// DisplayRemovedAt is set when the flash was manually pulled from playlists.
	DisplayRemovedAt       *time.Time `json:"display_removed_at,omitempty" db:"display_removed_at"`
	DisplayDurationSeconds *int       `json:"display_duration_seconds,omitempty" db:"display_duration_seconds"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsPublished reports whether the flash is in the published state.
func (f Flash) IsPublished() bool {
	return f.State == StatePublished
}

// PlaylistItem is a flash as listed on one display's playlist.
type PlaylistItem struct {
	Flash
	TargetSortOrder int `json:"target_sort_order" db:"target_sort_order"`
}
