// Package repository provides data access for the dev card project
// collection.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/devcardhq/devcard-companion/internal/storage/models"
)

// ProjectsSlot is the named slot holding the serialized project collection.
const ProjectsSlot = "devcard_projects"

// CollectionRepository is the persistence port for the project collection.
// The whole collection lives in a single named slot: Read deserializes it,
// Write serializes it back. Absent or malformed data reads as an empty
// collection, never as an error.
type CollectionRepository interface {
	// Read returns the current project collection.
	Read(ctx context.Context) ([]models.DevCardProject, error)

	// Write replaces the stored project collection.
	Write(ctx context.Context, projects []models.DevCardProject) error
}

// collectionRepository implements CollectionRepository using SQLite.
type collectionRepository struct {
	db   *sql.DB
	slot string
}

// NewCollectionRepository creates a collection repository backed by the
// default projects slot.
func NewCollectionRepository(db *sql.DB) CollectionRepository {
	return &collectionRepository{db: db, slot: ProjectsSlot}
}

// Read returns the stored collection. A missing slot or a payload that
// fails to deserialize yields an empty collection.
func (r *collectionRepository) Read(ctx context.Context) ([]models.DevCardProject, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, "SELECT payload FROM collections WHERE name = ?", r.slot).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return []models.DevCardProject{}, nil
		}
		return nil, fmt.Errorf("failed to read collection %s: %w", r.slot, err)
	}

	var projects []models.DevCardProject
	if err := json.Unmarshal([]byte(payload), &projects); err != nil {
		// Corrupt payload is treated as no data
		return []models.DevCardProject{}, nil
	}
	if projects == nil {
		projects = []models.DevCardProject{}
	}

	return projects, nil
}

// Write serializes the full collection into the slot.
func (r *collectionRepository) Write(ctx context.Context, projects []models.DevCardProject) error {
	if projects == nil {
		projects = []models.DevCardProject{}
	}

	payload, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("failed to marshal collection %s: %w", r.slot, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO collections (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, r.slot, string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("failed to write collection %s: %w", r.slot, err)
	}

	return nil
}
