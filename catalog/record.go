// Package catalog describes generated mazes so they can be reproduced.
//
// A Record stores what went into a maze (size, seed and strategy) rather
// than the grid itself; Generate rebuilds the identical grid on demand.
package catalog

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("maze not found")
	ErrMissingID   = errors.New("record id is required")
	ErrMissingMaze = errors.New("record needs a generated maze")
)

// Record represents the BSON version of a generated maze for storage.
type Record struct {
	ID         uuid.UUID `bson:"_id"`
	Size       int       `bson:"size"`
	Seed       int64     `bson:"seed"`
	Strategy   string    `bson:"strategy"`
	IterCap    int       `bson:"iterationCap"`
	Passages   int       `bson:"passages"`
	Iterations int       `bson:"iterations"`
	CreatedAt  time.Time `bson:"createdAt"`
}

// RecordConfig holds parameters for creating a Record.
type RecordConfig struct {
	ID           uuid.UUID
	Maze         *maze.Maze
	IterationCap int // Cap the maze was generated with; needed to reproduce it.
}

// NewRecord describes an already generated maze.
func NewRecord(config RecordConfig) (*Record, error) {
	if config.ID == uuid.Nil {
		return nil, ErrMissingID
	}
	if config.Maze == nil {
		return nil, ErrMissingMaze
	}

	stats := config.Maze.Stats()
	return &Record{
		ID:         config.ID,
		Size:       config.Maze.Size(),
		Seed:       config.Maze.Seed(),
		Strategy:   string(config.Maze.Strategy()),
		IterCap:    config.IterationCap,
		Passages:   stats.Passages,
		Iterations: stats.Iterations,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Generate rebuilds the maze the record describes. Extra options (such as
// maze.WithVerify) are applied after the recorded ones.
func (r *Record) Generate(opts ...maze.Option) (*maze.Maze, error) {
	strategy, err := maze.ParseStrategy(r.Strategy)
	if err != nil {
		return nil, err
	}

	all := append([]maze.Option{
		maze.WithSeed(r.Seed),
		maze.WithStrategy(strategy),
		maze.WithIterationCap(r.IterCap),
	}, opts...)
	return maze.New(r.Size, all...)
}
