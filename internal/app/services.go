// Package app wires the project store and its collaborators into facades
// consumed by the view-facing API.
package app

import (
	"github.com/devcardhq/devcard-companion/internal/github"
	"github.com/devcardhq/devcard-companion/internal/project"
	"github.com/devcardhq/devcard-companion/internal/storage"
)

// Services contains the shared services needed by facades.
type Services struct {
	// Storage service for database operations
	Storage *storage.Service

	// Project store owning the card collection
	Projects *project.Store

	// GitHub data collaborator (interface allows mocking)
	GitHub github.Fetcher
}

// NewServices builds the service container over an open storage service.
func NewServices(store *storage.Service, fetcher github.Fetcher) *Services {
	return &Services{
		Storage:  store,
		Projects: project.NewStore(store.CollectionRepo()),
		GitHub:   fetcher,
	}
}

// AppError is a user-facing error with a stable message.
type AppError struct {
	Message string `json:"message"`
	Err     error  `json:"-"` // Wrapped error for errors.Is/As chain
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As chain.
func (e *AppError) Unwrap() error {
	return e.Err
}
