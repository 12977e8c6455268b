package app

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/devcardhq/devcard-companion/internal/github"
	"github.com/devcardhq/devcard-companion/internal/storage/models"
)

// ProjectFacade is the view-facing surface over the project store: the
// project list plus a "current project" cursor. The cursor holds only an
// id; the project itself is always re-derived from the store, never
// mutated independently.
type ProjectFacade struct {
	services *Services

	mu        sync.RWMutex
	currentID string
}

// NewProjectFacade creates a new ProjectFacade with the given services.
func NewProjectFacade(services *Services) *ProjectFacade {
	return &ProjectFacade{services: services}
}

// ListProjects returns all projects ordered by lastEdited descending for
// presentation.
func (f *ProjectFacade) ListProjects(ctx context.Context) ([]models.DevCardProject, error) {
	projects, err := f.services.Projects.List(ctx)
	if err != nil {
		return nil, &AppError{Message: "Failed to load projects", Err: err}
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].LastEdited.After(projects[j].LastEdited)
	})
	return projects, nil
}

// GetProject returns a single project, or nil when absent.
func (f *ProjectFacade) GetProject(ctx context.Context, id string) (*models.DevCardProject, error) {
	found, err := f.services.Projects.Get(ctx, id)
	if err != nil {
		return nil, &AppError{Message: "Failed to load project", Err: err}
	}
	return found, nil
}

// FetchGitHubData pre-fetches a GitHub snapshot for project creation or
// re-sync. An unknown account surfaces as a distinct, retryable failure.
func (f *ProjectFacade) FetchGitHubData(ctx context.Context, username string) (*models.GitHubData, error) {
	if f.services.GitHub == nil {
		return nil, &AppError{Message: "GitHub integration is not configured"}
	}
	data, err := f.services.GitHub.FetchUserData(ctx, username)
	if err != nil {
		if errors.Is(err, github.ErrUserNotFound) {
			return nil, &AppError{Message: "GitHub user not found", Err: err}
		}
		return nil, &AppError{Message: "Failed to reach GitHub", Err: err}
	}
	return data, nil
}

// CreateProject creates a project, optionally seeded from a pre-fetched
// GitHub snapshot. Fetch-then-create ordering: the snapshot is whatever
// the caller had in hand before calling, and a failed or missing fetch
// simply means nil seeding.
func (f *ProjectFacade) CreateProject(ctx context.Context, name string, githubData *models.GitHubData) (*models.DevCardProject, error) {
	created, err := f.services.Projects.Create(ctx, name, githubData)
	if err != nil {
		return nil, &AppError{Message: "Failed to create project", Err: err}
	}
	return created, nil
}

// UpdateProjectConfig applies a partial config update. Returns nil when
// the project is absent.
func (f *ProjectFacade) UpdateProjectConfig(ctx context.Context, id string, patch models.CardConfigPatch) (*models.DevCardProject, error) {
	updated, err := f.services.Projects.UpdateConfig(ctx, id, patch)
	if err != nil {
		return nil, &AppError{Message: "Failed to update project", Err: err}
	}
	return updated, nil
}

// DeleteProject removes a project and reports whether removal occurred.
// Deleting the current project clears the cursor.
func (f *ProjectFacade) DeleteProject(ctx context.Context, id string) (bool, error) {
	removed, err := f.services.Projects.Delete(ctx, id)
	if err != nil {
		return false, &AppError{Message: "Failed to delete project", Err: err}
	}
	if removed {
		f.mu.Lock()
		if f.currentID == id {
			f.currentID = ""
		}
		f.mu.Unlock()
	}
	return removed, nil
}

// DuplicateProject creates an independent copy of a project. Returns nil
// when the source is absent.
func (f *ProjectFacade) DuplicateProject(ctx context.Context, id string) (*models.DevCardProject, error) {
	copied, err := f.services.Projects.Duplicate(ctx, id)
	if err != nil {
		return nil, &AppError{Message: "Failed to duplicate project", Err: err}
	}
	return copied, nil
}

// SetCurrentProject moves the cursor to the given project id.
func (f *ProjectFacade) SetCurrentProject(id string) {
	f.mu.Lock()
	f.currentID = id
	f.mu.Unlock()
}

// CurrentProject re-derives the current project from the store. A stale
// cursor (project deleted out from under it) clears itself and yields nil.
func (f *ProjectFacade) CurrentProject(ctx context.Context) (*models.DevCardProject, error) {
	f.mu.RLock()
	id := f.currentID
	f.mu.RUnlock()
	if id == "" {
		return nil, nil
	}

	found, err := f.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		f.mu.Lock()
		if f.currentID == id {
			f.currentID = ""
		}
		f.mu.Unlock()
	}
	return found, nil
}

// SyncGitHub re-fetches GitHub data for a project and replaces its
// snapshot wholesale. The fetch holds no lock on the store, and a result
// that arrives after the requester stopped caring (context cancelled, or
// the project deleted meanwhile) is discarded rather than applied
// anywhere else.
func (f *ProjectFacade) SyncGitHub(ctx context.Context, id, username string) (*models.DevCardProject, error) {
	data, err := f.FetchGitHubData(ctx, username)
	if err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, nil
	}

	patch := models.CardConfigPatch{Github: &data}
	updated, err := f.UpdateProjectConfig(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return updated, nil
}
