package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devcardhq/devcard-companion/internal/api/response"
	"github.com/devcardhq/devcard-companion/internal/app"
	"github.com/devcardhq/devcard-companion/internal/github"
	"github.com/devcardhq/devcard-companion/internal/storage/models"
)

// ProjectHandler handles project-related API requests.
type ProjectHandler struct {
	facade *app.ProjectFacade
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(facade *app.ProjectFacade) *ProjectHandler {
	return &ProjectHandler{facade: facade}
}

// ListProjects returns all projects, most recently edited first.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.facade.ListProjects(r.Context())
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to list projects: %w", err))
		return
	}
	response.Success(w, projects)
}

// CreateProjectRequest is the request body for project creation.
type CreateProjectRequest struct {
	Name string `json:"name"`
	// GithubUsername, when set, triggers a pre-fetch of GitHub data to
	// seed the new card. A failed fetch never blocks creation.
	GithubUsername string `json:"githubUsername,omitempty"`
}

// CreateProject creates a new project, optionally seeded from GitHub.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	var githubData *models.GitHubData
	if req.GithubUsername != "" {
		// Creation proceeds without a snapshot on any fetch failure,
		// unknown users included. Only the sync endpoint reports them.
		if data, err := h.facade.FetchGitHubData(r.Context(), req.GithubUsername); err == nil {
			githubData = data
		}
	}

	created, err := h.facade.CreateProject(r.Context(), req.Name, githubData)
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to create project: %w", err))
		return
	}
	response.Created(w, created)
}

// GetProject returns a single project by id.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	found, err := h.facade.GetProject(r.Context(), id)
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to get project: %w", err))
		return
	}
	if found == nil {
		response.NotFound(w, fmt.Errorf("project not found: %s", id))
		return
	}
	response.Success(w, found)
}

// UpdateProject applies a partial config update and returns the project
// with its rarity re-derived.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")

	var patch models.CardConfigPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	updated, err := h.facade.UpdateProjectConfig(r.Context(), id, patch)
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to update project: %w", err))
		return
	}
	if updated == nil {
		response.NotFound(w, fmt.Errorf("project not found: %s", id))
		return
	}
	response.Success(w, updated)
}

// DeleteProject removes a project. Deleting an absent project is not an
// error.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	if _, err := h.facade.DeleteProject(r.Context(), id); err != nil {
		response.InternalError(w, fmt.Errorf("failed to delete project: %w", err))
		return
	}
	response.NoContent(w)
}

// DuplicateProject creates an independent copy of a project.
func (h *ProjectHandler) DuplicateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	copied, err := h.facade.DuplicateProject(r.Context(), id)
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to duplicate project: %w", err))
		return
	}
	if copied == nil {
		response.NotFound(w, fmt.Errorf("project not found: %s", id))
		return
	}
	response.Created(w, copied)
}

// SyncProjectRequest is the request body for a GitHub re-sync.
type SyncProjectRequest struct {
	Username string `json:"username"`
}

// SyncProject re-fetches GitHub data for a project and replaces its
// snapshot.
func (h *ProjectHandler) SyncProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")

	var req SyncProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Username == "" {
		response.BadRequest(w, errors.New("username is required"))
		return
	}

	updated, err := h.facade.SyncGitHub(r.Context(), id, req.Username)
	if err != nil {
		if errors.Is(err, github.ErrUserNotFound) {
			response.NotFound(w, fmt.Errorf("github user not found: %s", req.Username))
			return
		}
		response.BadGateway(w, fmt.Errorf("failed to sync github data: %w", err))
		return
	}
	if updated == nil {
		response.NotFound(w, fmt.Errorf("project not found: %s", id))
		return
	}
	response.Success(w, updated)
}

// GetCurrentProject returns the project under the cursor, or an empty
// success when none is selected.
func (h *ProjectHandler) GetCurrentProject(w http.ResponseWriter, r *http.Request) {
	current, err := h.facade.CurrentProject(r.Context())
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to get current project: %w", err))
		return
	}
	response.Success(w, current)
}

// SetCurrentProject moves the cursor to the given project.
func (h *ProjectHandler) SetCurrentProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if req.ID != "" {
		found, err := h.facade.GetProject(r.Context(), req.ID)
		if err != nil {
			response.InternalError(w, fmt.Errorf("failed to get project: %w", err))
			return
		}
		if found == nil {
			response.NotFound(w, fmt.Errorf("project not found: %s", req.ID))
			return
		}
	}

	h.facade.SetCurrentProject(req.ID)
	response.Success(w, map[string]string{"id": req.ID})
}
