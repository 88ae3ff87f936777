package i

import (
	"github.com/beka-birhanu/vinom-maze/catalog"
	"github.com/google/uuid"
)

// MazeRepo defines the interface for maze catalog persistence operations.
type MazeRepo interface {
	// Save inserts or updates a record in the repository.
	Save(record *catalog.Record) error

	// ByID retrieves a record by its unique ID.
	// Returns catalog.ErrNotFound if no record has that ID.
	ByID(id uuid.UUID) (*catalog.Record, error)
}
