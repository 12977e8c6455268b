package storage

import (
	"github.com/devcardhq/devcard-companion/internal/storage/repository"
)

// Service provides high-level access to the persistence layer.
type Service struct {
	db         *DB
	collection repository.CollectionRepository
}

// NewService creates a new storage service.
func NewService(db *DB) *Service {
	return &Service{
		db:         db,
		collection: repository.NewCollectionRepository(db.Conn()),
	}
}

// CollectionRepo returns the project collection repository.
func (s *Service) CollectionRepo() repository.CollectionRepository {
	return s.collection
}

// Close releases the underlying database connection.
func (s *Service) Close() error {
	return s.db.Close()
}
