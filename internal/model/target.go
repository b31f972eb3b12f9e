package model

import "time"

// Target links a flash to a display. IsActive means the flash is live on that
// display; an inactive target is a preselection that has not gone live yet or
// was removed from the playlist.
type Target struct {
	FlashID      int64     `json:"flash_id" db:"flash_id"`
	DisplayKeyID int64     `json:"display_key_id" db:"display_key_id"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	SortOrder    int       `json:"sort_order" db:"sort_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// TargetDisplay is a target joined with the display it points at.
type TargetDisplay struct {
	FlashID       int64  `json:"flash_id" db:"flash_id"`
	DisplayKeyID  int64  `json:"display_key_id" db:"display_key_id"`
	IsActive      bool   `json:"is_active" db:"is_active"`
	SortOrder     int    `json:"sort_order" db:"sort_order"`
	Label         string `json:"label" db:"label"`
	Site          string `json:"site" db:"site"`
	SiteGroup     string `json:"site_group" db:"site_group"`
	Lang          string `json:"lang" db:"lang"`
	DisplayActive bool   `json:"display_is_active" db:"display_is_active"`
}
