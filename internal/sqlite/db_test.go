package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"projects",
		"project_assets",
		"project_clips",
		"project_captions",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestDeleteCascades verifies child rows go with their project
func TestDeleteCascades(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO projects (id, name, canvas_preset, total_duration, created_at, modified_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		"p1", "Test", "16:9", 30.0)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO project_clips (project_id, position, id, asset_id, lane, track, start_time, duration, x, y, width, height, volume)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"p1", 0, "c1", "a1", "video", 0, 0.0, 5.0, 0, 0, 1920, 1080, 100)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", "p1")
	require.NoError(t, err)

	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM project_clips WHERE project_id = ?", "p1").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

// TestLaneConstraint verifies the lane CHECK rejects unknown lanes
func TestLaneConstraint(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO projects (id, name, canvas_preset, total_duration, created_at, modified_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		"p1", "Test", "16:9", 30.0)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO project_clips (project_id, position, id, asset_id, lane, track, start_time, duration, x, y, width, height, volume)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"p1", 0, "c1", "a1", "subtitle", 0, 0.0, 5.0, 0, 0, 0, 0, 100)
	require.Error(t, err, "should fail with invalid lane")
}
