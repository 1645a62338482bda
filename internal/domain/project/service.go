package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marev/cutline/internal/repository"
)

// DefaultName is used when a project is saved without a name.
const DefaultName = "Untitled Video"

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Save persists a project document, creating it when req.ID is empty.
// Ordering of the document slices is preserved as given.
func (s *Service) Save(ctx context.Context, req *Project) (*Project, error) {
	if req == nil {
		return nil, ErrInvalidInput
	}

	proj := *req
	if strings.TrimSpace(proj.Name) == "" {
		proj.Name = DefaultName
	}
	now := time.Now().UTC()
	proj.ModifiedAt = now

	if strings.TrimSpace(proj.ID) == "" {
		proj.ID = uuid.NewString()
		proj.CreatedAt = now
		if err := s.repo.Create(ctx, &proj); err != nil {
			return nil, fmt.Errorf("creating project: %w", err)
		}
		s.logger.Info("project created", "project_id", proj.ID, "name", proj.Name)
		return &proj, nil
	}

	existing, err := s.repo.Get(ctx, proj.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	proj.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, &proj); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	s.logger.Info("project saved", "project_id", proj.ID, "name", proj.Name)
	return &proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns project summaries.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

// Delete removes a project document.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}
