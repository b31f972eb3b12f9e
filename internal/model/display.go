package model

import "time"

// DisplayKey is a physical info-screen endpoint, authenticated by its API key.
type DisplayKey struct {
	ID        int64     `json:"id" db:"id"`
	Site      string    `json:"site" db:"site"`
	SiteGroup string    `json:"site_group" db:"site_group"`
	Label     string    `json:"label" db:"label"`
	Lang      string    `json:"lang" db:"lang"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	APIKey    string    `json:"-" db:"api_key"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
