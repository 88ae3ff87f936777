package maze

// Direction indexes a cell's walls. Opposite directions differ by two.
type Direction int

// Wall order used by Cell.Walls.
const (
	East  Direction = iota // East is +Col.
	South                  // South is +Row.
	West                   // West is -Col.
	North                  // North is -Row.
)

// Directions lists every direction in wall order.
var Directions = []Direction{East, South, West, North}

var directionDeltas = [4]CellPosition{
	East:  {Row: 0, Col: 1},
	South: {Row: 1, Col: 0},
	West:  {Row: 0, Col: -1},
	North: {Row: -1, Col: 0},
}

var directionNames = [4]string{"East", "South", "West", "North"}

// Opposite returns the direction facing back at d.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the position offset of one step in direction d.
func (d Direction) Delta() CellPosition {
	return directionDeltas[d]
}

// String returns the direction name (East, South, West, North).
func (d Direction) String() string {
	if d < East || d > North {
		return "Unknown"
	}
	return directionNames[d]
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// Step returns the position one cell away in direction d.
func (p CellPosition) Step(d Direction) CellPosition {
	delta := d.Delta()
	return CellPosition{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// Cell represents a single cell in a maze grid.
type Cell struct {
	Pos   CellPosition // Pos is the cell's own coordinates.
	Open  bool         // Open is true once the cell is part of the carved maze.
	Walls [4]bool      // Walls is indexed by Direction; true means the wall is present.
}

// HasWall returns true if there is a wall on side d of the cell.
func (c Cell) HasWall(d Direction) bool {
	return c.Walls[d]
}

// HasNorthWall returns true if there is a wall on the north side of the cell.
func (c Cell) HasNorthWall() bool {
	return c.Walls[North]
}

// HasSouthWall returns true if there is a wall on the south side of the cell.
func (c Cell) HasSouthWall() bool {
	return c.Walls[South]
}

// HasEastWall returns true if there is a wall on the east side of the cell.
func (c Cell) HasEastWall() bool {
	return c.Walls[East]
}

// HasWestWall returns true if there is a wall on the west side of the cell.
func (c Cell) HasWestWall() bool {
	return c.Walls[West]
}

func newCell(row, col int) Cell {
	return Cell{
		Pos:   CellPosition{Row: row, Col: col},
		Walls: [4]bool{true, true, true, true},
	}
}
