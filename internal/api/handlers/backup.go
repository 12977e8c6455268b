package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/devcardhq/devcard-companion/internal/api/response"
	"github.com/devcardhq/devcard-companion/internal/storage"
)

// BackupHandler handles collection backup and restore requests.
type BackupHandler struct {
	manager   *storage.BackupManager
	backupDir string
}

// NewBackupHandler creates a new BackupHandler. backupDir is the default
// destination when a request does not name one.
func NewBackupHandler(manager *storage.BackupManager, backupDir string) *BackupHandler {
	return &BackupHandler{manager: manager, backupDir: backupDir}
}

// ExportBackupRequest is the request body for a backup export.
type ExportBackupRequest struct {
	Dir      string `json:"dir,omitempty"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// ExportBackup writes the collection to a backup file and returns its path.
func (h *BackupHandler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	var req ExportBackupRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}

	dir := req.Dir
	if dir == "" {
		dir = h.backupDir
	}

	config := storage.DefaultBackupConfig(dir)
	config.BackupName = req.Name
	config.Password = req.Password

	path, err := h.manager.Export(r.Context(), config)
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to export backup: %w", err))
		return
	}
	response.Created(w, map[string]string{"path": path})
}

// ImportBackupRequest is the request body for a backup restore.
type ImportBackupRequest struct {
	Path     string `json:"path"`
	Password string `json:"password,omitempty"`
}

// ImportBackup replaces the collection with the contents of a backup file.
func (h *BackupHandler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	var req ImportBackupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Path == "" {
		response.BadRequest(w, errors.New("path is required"))
		return
	}

	count, err := h.manager.Import(r.Context(), req.Path, req.Password)
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to import backup: %w", err))
		return
	}
	response.Success(w, map[string]int{"restored": count})
}
