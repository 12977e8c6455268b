package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devcardhq/devcard-companion/internal/api/handlers"
	"github.com/devcardhq/devcard-companion/internal/api/response"
	"github.com/devcardhq/devcard-companion/internal/version"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Project routes
		projectHandler := handlers.NewProjectHandler(s.projectFacade)
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.ListProjects)
			r.Post("/", projectHandler.CreateProject)
			r.Get("/current", projectHandler.GetCurrentProject)
			r.Put("/current", projectHandler.SetCurrentProject)
			r.Get("/{projectID}", projectHandler.GetProject)
			r.Patch("/{projectID}", projectHandler.UpdateProject)
			r.Delete("/{projectID}", projectHandler.DeleteProject)
			r.Post("/{projectID}/duplicate", projectHandler.DuplicateProject)
			r.Post("/{projectID}/sync", projectHandler.SyncProject)
		})

		// Collection-wide stats routes
		statsHandler := handlers.NewStatsHandler(s.statsFacade)
		r.Route("/stats", func(r chi.Router) {
			r.Get("/rarity", statsHandler.GetRarityDistribution)
			r.Get("/languages", statsHandler.GetLanguageDistribution)
		})

		// Backup routes
		if s.backupManager != nil {
			backupHandler := handlers.NewBackupHandler(s.backupManager, s.backupDir)
			r.Route("/backup", func(r chi.Router) {
				r.Post("/export", backupHandler.ExportBackup)
				r.Post("/import", backupHandler.ImportBackup)
			})
		}
	})

	// Proxy routes for the card renderer (GET only)
	s.router.Route("/proxy", func(r chi.Router) {
		r.Get("/github", s.githubProxy.Proxy)
		r.Get("/image", s.imageProxy.Proxy)
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "devcard-companion-api",
		"version": version.GetVersion(),
	})
}
