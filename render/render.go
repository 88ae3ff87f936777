// Package render draws finished mazes as ASCII text, SVG or PNG.
//
// Every renderer works from the same wall segments: one unit segment per
// present wall, with shared walls emitted once and the entrance and exit
// openings left out. Grid unit (x, y) is (column, row).
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatASCII Format = "ascii"
	FormatSVG   Format = "svg"
	FormatPNG   Format = "png"
)

const (
	defaultLineWidth = 2.0
	defaultCellSize  = 16
	minCellSize      = 4
)

var (
	ErrUnknownFormat = errors.New("unknown render format")
	ErrInvalidConfig = errors.New("invalid render config")
)

// Config holds drawing style shared by the vector and raster renderers.
type Config struct {
	LineWidth float64 // Stroke width in pixels.
	CellSize  int     // Side of one cell in pixels.
}

// DefaultConfig returns the style used when none is given.
func DefaultConfig() Config {
	return Config{
		LineWidth: defaultLineWidth,
		CellSize:  defaultCellSize,
	}
}

// Validate checks that the style can be drawn.
func (c Config) Validate() error {
	if c.LineWidth <= 0 {
		return fmt.Errorf("%w: line width %v must be positive", ErrInvalidConfig, c.LineWidth)
	}
	if c.CellSize < minCellSize {
		return fmt.Errorf("%w: cell size %d must be at least %d", ErrInvalidConfig, c.CellSize, minCellSize)
	}
	if c.LineWidth >= float64(c.CellSize) {
		return fmt.Errorf("%w: line width %v must be smaller than cell size %d", ErrInvalidConfig, c.LineWidth, c.CellSize)
	}
	return nil
}

// ParseFormat maps a format name to a Format. The empty string selects SVG.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatSVG:
		return FormatSVG, nil
	case FormatASCII, "text", "txt":
		return FormatASCII, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Segment is a wall in grid units, from (X1, Y1) to (X2, Y2).
type Segment struct {
	X1, Y1, X2, Y2 int
}

// Segments lists the walls of m. North and west walls are only taken from
// the first row and column since the rest duplicate a neighbor's south or
// east wall.
func Segments(m *maze.Maze) []Segment {
	size := m.Size()
	segments := make([]Segment, 0, size*size+2*size)

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			pos := maze.CellPosition{Row: row, Col: col}
			cell := m.Cell(row, col)
			x, y := col, row

			if row == 0 && drawn(m, cell, pos, maze.North) {
				segments = append(segments, Segment{X1: x, Y1: y, X2: x + 1, Y2: y})
			}
			if col == 0 && drawn(m, cell, pos, maze.West) {
				segments = append(segments, Segment{X1: x, Y1: y, X2: x, Y2: y + 1})
			}
			if drawn(m, cell, pos, maze.East) {
				segments = append(segments, Segment{X1: x + 1, Y1: y, X2: x + 1, Y2: y + 1})
			}
			if drawn(m, cell, pos, maze.South) {
				segments = append(segments, Segment{X1: x, Y1: y + 1, X2: x + 1, Y2: y + 1})
			}
		}
	}

	return segments
}

func drawn(m *maze.Maze, cell maze.Cell, pos maze.CellPosition, d maze.Direction) bool {
	return cell.HasWall(d) && !m.IsOpening(pos, d)
}

// Render writes m to w in format f.
func Render(w io.Writer, m *maze.Maze, f Format, c Config) error {
	switch f {
	case FormatASCII:
		return Text(w, m)
	case FormatSVG:
		return SVG(w, m, c)
	case FormatPNG:
		return PNG(w, m, c)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Text writes the ASCII drawing of m.
func Text(w io.Writer, m *maze.Maze) error {
	_, err := io.WriteString(w, m.String())
	return err
}
