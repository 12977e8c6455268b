// Package project implements the project store: the owner of the canonical
// dev card project collection.
package project

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/devcardhq/devcard-companion/internal/rarity"
	"github.com/devcardhq/devcard-companion/internal/storage/models"
	"github.com/devcardhq/devcard-companion/internal/storage/repository"
)

// fallbackCardName is used when a project is created without GitHub seeding.
const fallbackCardName = "Developer"

// Store owns the durable project collection. Every mutating operation is a
// single read-modify-write cycle against the collection repository, and any
// write path that changes a config recomputes rarity in the same write:
// there is deliberately no way to set rarity directly.
//
// Operations on the same Store run to completion without interleaving state;
// two stores over the same backend race with last-write-wins semantics,
// which is accepted for single-user, single-process usage.
type Store struct {
	collection repository.CollectionRepository
}

// NewStore creates a project store over the given collection repository.
func NewStore(collection repository.CollectionRepository) *Store {
	return &Store{collection: collection}
}

// List returns all projects. Storage-level ordering is not guaranteed;
// presentation ordering is a caller concern.
func (s *Store) List(ctx context.Context) ([]models.DevCardProject, error) {
	projects, err := s.collection.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns the project with the given id, or nil when absent. Absence
// is a valid outcome, not an error.
func (s *Store) Get(ctx context.Context, id string) (*models.DevCardProject, error) {
	projects, err := s.collection.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", id, err)
	}
	for i := range projects {
		if projects[i].ID == id {
			found := projects[i].Clone()
			return &found, nil
		}
	}
	return nil, nil
}

// Create allocates a new project seeded from the default card template,
// optionally enriched from a pre-fetched GitHub snapshot. A nil snapshot
// (e.g. because the fetch failed upstream) never blocks creation.
func (s *Store) Create(ctx context.Context, name string, github *models.GitHubData) (*models.DevCardProject, error) {
	now := time.Now()

	config := models.DefaultCardConfig()
	config.Name = fallbackCardName
	// The template tech stack is presentation filler; a card without a
	// GitHub snapshot starts empty.
	config.TechStack = []string{}
	if github != nil {
		snapshot := github.Clone()
		config.Github = &snapshot
		if github.Username != "" {
			config.Name = github.Username
		}
		config.Avatar = github.Avatar
		config.TechStack = models.NormalizeTechStack(github.TopLanguages)
	}

	created := models.DevCardProject{
		ID:         newProjectID(),
		Name:       name,
		CreatedAt:  now,
		LastEdited: now,
		Config:     config,
		Rarity:     rarity.Score(config),
	}

	projects, err := s.collection.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	projects = append(projects, created)
	if err := s.collection.Write(ctx, projects); err != nil {
		return nil, fmt.Errorf("failed to persist project: %w", err)
	}

	result := created.Clone()
	return &result, nil
}

// UpdateConfig shallow-merges the patch onto the project's config,
// recomputes rarity from the merged config and stamps lastEdited, all in a
// single write. Returns nil when the id is absent.
func (s *Store) UpdateConfig(ctx context.Context, id string, patch models.CardConfigPatch) (*models.DevCardProject, error) {
	projects, err := s.collection.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update project %s: %w", id, err)
	}

	index := -1
	for i := range projects {
		if projects[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, nil
	}

	merged := patch.Apply(projects[index].Config)
	projects[index].Config = merged
	projects[index].Rarity = rarity.Score(merged)
	projects[index].LastEdited = time.Now()

	if err := s.collection.Write(ctx, projects); err != nil {
		return nil, fmt.Errorf("failed to persist project %s: %w", id, err)
	}

	updated := projects[index].Clone()
	return &updated, nil
}

// Delete removes the project if present and reports whether removal
// occurred. A second delete of the same id returns false.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	projects, err := s.collection.Read(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to delete project %s: %w", id, err)
	}

	filtered := projects[:0:0]
	for _, p := range projects {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == len(projects) {
		return false, nil
	}

	if err := s.collection.Write(ctx, filtered); err != nil {
		return false, fmt.Errorf("failed to persist deletion of %s: %w", id, err)
	}
	return true, nil
}

// Duplicate deep-copies a project under a fresh identity with fresh
// timestamps. Rarity is copied, not recomputed: duplication is a
// point-in-time snapshot. Returns nil when the id is absent.
func (s *Store) Duplicate(ctx context.Context, id string) (*models.DevCardProject, error) {
	projects, err := s.collection.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate project %s: %w", id, err)
	}

	index := -1
	for i := range projects {
		if projects[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, nil
	}

	now := time.Now()
	copied := projects[index].Clone()
	copied.ID = newProjectID()
	copied.Name = projects[index].Name + " (Copy)"
	copied.CreatedAt = now
	copied.LastEdited = now

	projects = append(projects, copied)
	if err := s.collection.Write(ctx, projects); err != nil {
		return nil, fmt.Errorf("failed to persist duplicate of %s: %w", id, err)
	}

	result := copied.Clone()
	return &result, nil
}

// newProjectID generates an opaque unique project id.
func newProjectID() string {
	return "dc_" + uuid.NewString()
}
