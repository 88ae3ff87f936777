/*
Package maze generates random perfect mazes on square grids.

Cells start fully walled. The entrance (0, 1) and the exit (N-1, N-2) are
opened towards the outside and each grows one passage into a closed
neighbor. The spanning phase then tears down walls between cells that are
not yet connected, tracked with a disjoint set, until every cell belongs to
one component. The result has exactly one path between any two cells.

A finished Maze is read-only and safe for concurrent readers.
*/
package maze

import (
	"math/rand"
	"strings"
	"time"
)

// Stats describes the work done while generating a maze.
type Stats struct {
	Iterations int  // Iterations counts spanning draws or visited walls.
	Rejected   int  // Rejected counts draws that tore down nothing.
	Passages   int  // Passages counts interior wall pairs torn down.
	CapReached bool // CapReached is set when the iteration cap forced the shuffled finish.
}

// Maze is a finished square maze.
type Maze struct {
	size     int
	grid     [][]Cell
	entrance CellPosition
	exit     CellPosition
	seed     int64
	strategy Strategy
	stats    Stats
}

// New generates a maze with size cells per side.
func New(size int, opts ...Option) (*Maze, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if size < MinSize || size > o.maxSize {
		return nil, &SizeError{Size: size, Min: MinSize, Max: o.maxSize}
	}

	if _, err := ParseStrategy(string(o.strategy)); err != nil {
		return nil, err
	}

	if !o.seeded {
		o.seed = time.Now().UnixNano()
	}

	b := newBuilder(size, rand.New(rand.NewSource(o.seed)))
	if err := b.build(o.strategy, o.iterationCap); err != nil {
		return nil, err
	}

	m := &Maze{
		size:     size,
		grid:     b.grid,
		entrance: b.entrance,
		exit:     b.exit,
		seed:     o.seed,
		strategy: o.strategy,
		stats:    b.stats,
	}

	if o.verify {
		if err := Validate(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Size returns the number of cells per side.
func (m *Maze) Size() int {
	return m.size
}

// Entrance returns the position of the entrance cell.
func (m *Maze) Entrance() CellPosition {
	return m.entrance
}

// Exit returns the position of the exit cell.
func (m *Maze) Exit() CellPosition {
	return m.exit
}

// Seed returns the seed the maze was generated from.
func (m *Maze) Seed() int64 {
	return m.seed
}

// Strategy returns the spanning strategy used.
func (m *Maze) Strategy() Strategy {
	return m.strategy
}

// Stats returns generation statistics.
func (m *Maze) Stats() Stats {
	return m.stats
}

// InBound reports whether (row, col) lies inside the grid.
func (m *Maze) InBound(row, col int) bool {
	return row >= 0 && row < m.size && col >= 0 && col < m.size
}

// Cell returns a copy of the cell at (row, col). It panics when the
// position is out of bounds, like a slice index.
func (m *Maze) Cell(row, col int) Cell {
	return m.grid[row][col]
}

// Grid returns a copy of the whole grid, indexed [row][col].
func (m *Maze) Grid() [][]Cell {
	grid := make([][]Cell, m.size)
	for row := range m.grid {
		grid[row] = make([]Cell, m.size)
		copy(grid[row], m.grid[row])
	}
	return grid
}

// IsOpening reports whether side d of pos is one of the two designated
// boundary openings.
func (m *Maze) IsOpening(pos CellPosition, d Direction) bool {
	return (pos == m.entrance && d == North) || (pos == m.exit && d == South)
}

// Passable reports whether a step from pos in direction d stays inside the
// grid and crosses no wall.
func (m *Maze) Passable(pos CellPosition, d Direction) bool {
	to := pos.Step(d)
	if !m.InBound(pos.Row, pos.Col) || !m.InBound(to.Row, to.Col) {
		return false
	}
	return !m.grid[pos.Row][pos.Col].Walls[d] && !m.grid[to.Row][to.Col].Walls[d.Opposite()]
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var sb strings.Builder

	// Top boundary
	sb.WriteString("+")
	for col := 0; col < m.size; col++ {
		if m.grid[0][col].HasNorthWall() {
			sb.WriteString("---+")
		} else {
			sb.WriteString("   +")
		}
	}
	sb.WriteString("\n")

	for row := 0; row < m.size; row++ {
		// Cell rows
		if m.grid[row][0].HasWestWall() {
			sb.WriteString("|")
		} else {
			sb.WriteString(" ")
		}
		for col := 0; col < m.size; col++ {
			if m.grid[row][col].HasEastWall() {
				sb.WriteString("   |")
			} else {
				sb.WriteString("    ")
			}
		}
		sb.WriteString("\n")

		// Wall rows
		sb.WriteString("+")
		for col := 0; col < m.size; col++ {
			if m.grid[row][col].HasSouthWall() {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
