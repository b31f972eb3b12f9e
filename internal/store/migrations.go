package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sf_users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL DEFAULT '',
	last_name  TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sf_flashes (
	id                       INTEGER PRIMARY KEY AUTOINCREMENT,
	lang                     TEXT NOT NULL DEFAULT 'fi',
	state                    TEXT NOT NULL DEFAULT 'draft' CHECK(state IN (
		'draft', 'pending_supervisor', 'pending_review', 'request_info',
		'reviewed', 'to_comms', 'published')),
	type                     TEXT NOT NULL DEFAULT 'yellow' CHECK(type IN ('red', 'yellow', 'green')),
	title                    TEXT NOT NULL DEFAULT '',
	summary                  TEXT NOT NULL DEFAULT '',
	description              TEXT NOT NULL DEFAULT '',
	site                     TEXT NOT NULL DEFAULT '',
	site_detail              TEXT NOT NULL DEFAULT '',
	is_archived              INTEGER NOT NULL DEFAULT 0 CHECK(is_archived IN (0, 1)),
	occurred_at              DATETIME,
	published_at             DATETIME,
	display_expires_at       DATETIME,
	display_removed_at       DATETIME,
	display_duration_seconds INTEGER,
	created_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sf_flashes_state ON sf_flashes(state);
CREATE INDEX IF NOT EXISTS idx_sf_flashes_lang ON sf_flashes(lang);

CREATE TABLE IF NOT EXISTS sf_display_api_keys (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	site       TEXT NOT NULL DEFAULT '',
	site_group TEXT NOT NULL DEFAULT '',
	label      TEXT NOT NULL,
	lang       TEXT NOT NULL DEFAULT 'fi',
	sort_order INTEGER NOT NULL DEFAULT 0,
	api_key    TEXT NOT NULL UNIQUE,
	is_active  INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0, 1)),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sf_display_api_keys_lang ON sf_display_api_keys(lang, is_active);

CREATE TABLE IF NOT EXISTS sf_flash_display_targets (
	flash_id       INTEGER NOT NULL REFERENCES sf_flashes(id) ON DELETE CASCADE,
	display_key_id INTEGER NOT NULL REFERENCES sf_display_api_keys(id) ON DELETE CASCADE,
	is_active      INTEGER NOT NULL DEFAULT 0 CHECK(is_active IN (0, 1)),
	sort_order     INTEGER NOT NULL DEFAULT 0,
	created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(flash_id, display_key_id)
);

CREATE INDEX IF NOT EXISTS idx_sf_targets_display ON sf_flash_display_targets(display_key_id, is_active);

CREATE TABLE IF NOT EXISTS sf_flash_supervisors (
	flash_id    INTEGER NOT NULL REFERENCES sf_flashes(id) ON DELETE CASCADE,
	user_id     INTEGER NOT NULL REFERENCES sf_users(id) ON DELETE CASCADE,
	assigned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (flash_id, user_id)
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
