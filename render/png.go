package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// PNG writes m as a black-on-white PNG image.
func PNG(w io.Writer, m *maze.Maze, c Config) error {
	img, err := Raster(m, c)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Raster draws m into an RGBA image. Each wall is a filled rectangle of the
// configured line width centred on the grid line.
func Raster(m *maze.Maze, c Config) (*image.RGBA, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	margin := c.CellSize / 2
	side := m.Size()*c.CellSize + 2*margin
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	thickness := int(math.Max(1, math.Round(c.LineWidth)))
	lo := thickness / 2
	hi := thickness - lo
	ink := image.NewUniform(color.Black)

	for _, s := range Segments(m) {
		x1, y1 := margin+s.X1*c.CellSize, margin+s.Y1*c.CellSize
		x2, y2 := margin+s.X2*c.CellSize, margin+s.Y2*c.CellSize
		r := image.Rect(x1-lo, y1-lo, x2+hi, y2+hi)
		draw.Draw(img, r.Intersect(img.Bounds()), ink, image.Point{}, draw.Src)
	}

	return img, nil
}
