package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/marev/cutline/internal/domain/project"
	"github.com/marev/cutline/internal/repository"
	"github.com/marev/cutline/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_SaveCreates(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil)
	proj, err := svc.Save(ctx, &project.Project{Name: "My Cut", CanvasPreset: "16:9"})
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.False(t, proj.CreatedAt.IsZero())
	require.Equal(t, proj.CreatedAt, proj.ModifiedAt)
	repo.AssertExpectations(t)
}

func TestProjectService_SaveDefaultsName(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil)
	proj, err := svc.Save(ctx, &project.Project{Name: "  "})
	require.NoError(t, err)
	require.Equal(t, project.DefaultName, proj.Name)
}

func TestProjectService_SaveUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", Name: "Old", CreatedAt: created}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil)
	proj, err := svc.Save(ctx, &project.Project{ID: "p1", Name: "New"})
	require.NoError(t, err)
	require.Equal(t, created, proj.CreatedAt)
	require.True(t, proj.ModifiedAt.After(created))
	repo.AssertExpectations(t)
}

func TestProjectService_SaveUnknownID(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "missing").Return((*project.Project)(nil), repository.ErrNotFound)

	svc := project.NewService(repo, nil)
	_, err := svc.Save(ctx, &project.Project{ID: "missing"})
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_GetNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "nope").Return((*project.Project)(nil), repository.ErrNotFound)

	svc := project.NewService(repo, nil)
	_, err := svc.Get(ctx, "nope")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_DeleteNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Delete", ctx, "nope").Return(repository.ErrNotFound)

	svc := project.NewService(repo, nil)
	require.ErrorIs(t, svc.Delete(ctx, "nope"), project.ErrProjectNotFound)
}
