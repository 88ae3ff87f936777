package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// SVG writes m as a standalone SVG document, one <line> per wall.
func SVG(w io.Writer, m *maze.Maze, c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}

	margin := c.CellSize / 2
	side := m.Size()*c.CellSize + 2*margin
	stroke := strconv.FormatFloat(c.LineWidth, 'f', -1, 64)

	var svg strings.Builder
	fmt.Fprintf(&svg, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="white"/>
<g stroke="black" stroke-width="%s" stroke-linecap="square">
`, side, side, side, side, stroke)

	for _, s := range Segments(m) {
		fmt.Fprintf(&svg, "<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\"/>\n",
			margin+s.X1*c.CellSize, margin+s.Y1*c.CellSize,
			margin+s.X2*c.CellSize, margin+s.Y2*c.CellSize)
	}

	svg.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, svg.String())
	return err
}
