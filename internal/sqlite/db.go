package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. Child tables carry an explicit
// position column because document order is significant: same-track
// stacking ties are broken by insertion order.
func (db *DB) RunMigrations() error {
	migration := `
-- Saved project documents
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    canvas_preset TEXT NOT NULL,
    total_duration REAL NOT NULL,
    created_at TIMESTAMP NOT NULL,
    modified_at TIMESTAMP NOT NULL
);

-- Imported media per project
CREATE TABLE IF NOT EXISTS project_assets (
    project_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    kind TEXT NOT NULL CHECK(kind IN ('video', 'image', 'audio')),
    source_url TEXT NOT NULL,
    name TEXT NOT NULL,
    duration REAL,
    thumbnail_url TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (project_id, id),
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_project_assets ON project_assets(project_id, position);

-- Placed clips per project
CREATE TABLE IF NOT EXISTS project_clips (
    project_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    asset_id TEXT NOT NULL,
    lane TEXT NOT NULL CHECK(lane IN ('video', 'audio')),
    track INTEGER NOT NULL,
    start_time REAL NOT NULL,
    duration REAL NOT NULL,
    x INTEGER NOT NULL,
    y INTEGER NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    volume INTEGER NOT NULL,
    PRIMARY KEY (project_id, id),
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_project_clips ON project_clips(project_id, position);

-- Caption overlays per project
CREATE TABLE IF NOT EXISTS project_captions (
    project_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    text TEXT NOT NULL,
    start_time REAL NOT NULL,
    duration REAL NOT NULL,
    font_size INTEGER NOT NULL,
    color TEXT NOT NULL,
    background TEXT NOT NULL,
    PRIMARY KEY (project_id, id),
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_project_captions ON project_captions(project_id, position);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
