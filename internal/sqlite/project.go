package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/marev/cutline/internal/domain/asset"
	"github.com/marev/cutline/internal/domain/caption"
	"github.com/marev/cutline/internal/domain/clip"
	"github.com/marev/cutline/internal/domain/project"
	"github.com/marev/cutline/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project document
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO projects (id, name, canvas_preset, total_duration, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.CanvasPreset,
		proj.TotalDuration,
		proj.CreatedAt,
		proj.ModifiedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	if err := insertChildren(ctx, tx, proj); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Update replaces an existing project document wholesale
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE projects
		SET name = ?, canvas_preset = ?, total_duration = ?, modified_at = ?
		WHERE id = ?
	`
	result, err := tx.ExecContext(ctx, query,
		proj.Name,
		proj.CanvasPreset,
		proj.TotalDuration,
		proj.ModifiedAt,
		proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	// Replace the document content rather than diffing it
	for _, table := range []string{"project_assets", "project_clips", "project_captions"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE project_id = ?", proj.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertChildren(ctx, tx, proj); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, proj *project.Project) error {
	assetQuery := `
		INSERT INTO project_assets (project_id, position, id, kind, source_url, name, duration, thumbnail_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, a := range proj.Assets {
		var duration sql.NullFloat64
		if a.Duration != nil {
			duration = sql.NullFloat64{Float64: *a.Duration, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, assetQuery,
			proj.ID, i, a.ID, string(a.Kind), a.SourceURL, a.Name, duration, a.ThumbnailURL,
		); err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to insert asset: %w", err)
		}
	}

	clipQuery := `
		INSERT INTO project_clips (project_id, position, id, asset_id, lane, track, start_time, duration, x, y, width, height, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, c := range proj.Clips {
		if _, err := tx.ExecContext(ctx, clipQuery,
			proj.ID, i, c.ID, c.AssetID, string(c.Lane), c.Track, c.StartTime, c.Duration,
			c.Geometry.X, c.Geometry.Y, c.Geometry.Width, c.Geometry.Height, c.Volume,
		); err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to insert clip: %w", err)
		}
	}

	captionQuery := `
		INSERT INTO project_captions (project_id, position, id, text, start_time, duration, font_size, color, background)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, c := range proj.Captions {
		if _, err := tx.ExecContext(ctx, captionQuery,
			proj.ID, i, c.ID, c.Text, c.StartTime, c.Duration,
			c.Style.FontSize, c.Style.Color, c.Style.Background,
		); err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to insert caption: %w", err)
		}
	}
	return nil
}

// Get retrieves a project document by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT id, name, canvas_preset, total_duration, created_at, modified_at
		FROM projects
		WHERE id = ?
	`

	var proj project.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&proj.ID,
		&proj.Name,
		&proj.CanvasPreset,
		&proj.TotalDuration,
		&proj.CreatedAt,
		&proj.ModifiedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if proj.Assets, err = r.loadAssets(ctx, id); err != nil {
		return nil, err
	}
	if proj.Clips, err = r.loadClips(ctx, id); err != nil {
		return nil, err
	}
	if proj.Captions, err = r.loadCaptions(ctx, id); err != nil {
		return nil, err
	}

	return &proj, nil
}

func (r *ProjectRepository) loadAssets(ctx context.Context, projectID string) ([]asset.Asset, error) {
	query := `
		SELECT id, kind, source_url, name, duration, thumbnail_url
		FROM project_assets
		WHERE project_id = ?
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	defer rows.Close()

	var assets []asset.Asset
	for rows.Next() {
		var a asset.Asset
		var kind string
		var duration sql.NullFloat64
		if err := rows.Scan(&a.ID, &kind, &a.SourceURL, &a.Name, &duration, &a.ThumbnailURL); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		a.Kind = asset.Kind(kind)
		if duration.Valid {
			d := duration.Float64
			a.Duration = &d
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *ProjectRepository) loadClips(ctx context.Context, projectID string) ([]clip.Clip, error) {
	query := `
		SELECT id, asset_id, lane, track, start_time, duration, x, y, width, height, volume
		FROM project_clips
		WHERE project_id = ?
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load clips: %w", err)
	}
	defer rows.Close()

	var clips []clip.Clip
	for rows.Next() {
		var c clip.Clip
		var lane string
		if err := rows.Scan(&c.ID, &c.AssetID, &lane, &c.Track, &c.StartTime, &c.Duration,
			&c.Geometry.X, &c.Geometry.Y, &c.Geometry.Width, &c.Geometry.Height, &c.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan clip: %w", err)
		}
		c.Lane = clip.Lane(lane)
		clips = append(clips, c)
	}
	return clips, rows.Err()
}

func (r *ProjectRepository) loadCaptions(ctx context.Context, projectID string) ([]caption.Caption, error) {
	query := `
		SELECT id, text, start_time, duration, font_size, color, background
		FROM project_captions
		WHERE project_id = ?
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load captions: %w", err)
	}
	defer rows.Close()

	var captions []caption.Caption
	for rows.Next() {
		var c caption.Caption
		if err := rows.Scan(&c.ID, &c.Text, &c.StartTime, &c.Duration,
			&c.Style.FontSize, &c.Style.Color, &c.Style.Background); err != nil {
			return nil, fmt.Errorf("failed to scan caption: %w", err)
		}
		captions = append(captions, c)
	}
	return captions, rows.Err()
}

// List returns all projects with summary counts, newest first
func (r *ProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	query := `
		SELECT
			p.id,
			p.name,
			p.canvas_preset,
			p.total_duration,
			p.created_at,
			p.modified_at,
			COUNT(DISTINCT a.id) as asset_count,
			COUNT(DISTINCT c.id) as clip_count,
			COUNT(DISTINCT t.id) as caption_count
		FROM projects p
		LEFT JOIN project_assets a ON a.project_id = p.id
		LEFT JOIN project_clips c ON c.project_id = p.id
		LEFT JOIN project_captions t ON t.project_id = p.id
		GROUP BY p.id, p.name, p.canvas_preset, p.total_duration, p.created_at, p.modified_at
		ORDER BY p.modified_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.Summary
	for rows.Next() {
		var summary project.Summary
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.CanvasPreset,
			&summary.TotalDuration,
			&summary.CreatedAt,
			&summary.ModifiedAt,
			&summary.AssetCount,
			&summary.ClipCount,
			&summary.CaptionCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return summaries, nil
}

// Delete removes a project and its document content
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
