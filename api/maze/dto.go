// Package mazeapi exposes maze generation, rendering and sharing over HTTP.
package mazeapi

import (
	"time"

	"github.com/beka-birhanu/vinom-maze/catalog"
)

// CreateRequest represents a request to generate a new maze.
type CreateRequest struct {
	Size     int    `json:"size" binding:"omitempty,min=0"`
	Seed     *int64 `json:"seed"`
	Strategy string `json:"strategy"`
}

// MazeResponse describes a stored maze.
type MazeResponse struct {
	ID         string    `json:"id"`
	Size       int       `json:"size"`
	Seed       int64     `json:"seed"`
	Strategy   string    `json:"strategy"`
	Passages   int       `json:"passages"`
	Iterations int       `json:"iterations"`
	CreatedAt  time.Time `json:"created_at"`
}

// ShareResponse carries a share token.
type ShareResponse struct {
	Token string `json:"token"`
}

func newMazeResponse(r *catalog.Record) *MazeResponse {
	return &MazeResponse{
		ID:         r.ID.String(),
		Size:       r.Size,
		Seed:       r.Seed,
		Strategy:   r.Strategy,
		Passages:   r.Passages,
		Iterations: r.Iterations,
		CreatedAt:  r.CreatedAt,
	}
}
