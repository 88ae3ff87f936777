package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/catalog"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/google/uuid"
)

// CreateMazeRequest describes a maze to generate.
type CreateMazeRequest struct {
	Size     int
	Seed     *int64 // nil picks a fresh seed
	Strategy string // empty selects the default strategy
}

// MazeService generates, catalogs, renders and shares mazes.
type MazeService interface {
	// Create generates a maze and stores its record.
	Create(req CreateMazeRequest) (*catalog.Record, error)

	// Record returns the stored record for id.
	Record(id uuid.UUID) (*catalog.Record, error)

	// Render draws the maze described by record in the given format.
	Render(ctx context.Context, record *catalog.Record, format render.Format) ([]byte, error)

	// Share returns a signed token that resolves to the record for id.
	Share(id uuid.UUID) (string, error)

	// Resolve verifies a share token and returns its record.
	Resolve(token string) (*catalog.Record, error)
}
