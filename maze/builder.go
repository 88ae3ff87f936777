package maze

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-maze/disjointset"
)

// builder owns the grid and the disjoint set while a maze is generated.
type builder struct {
	size     int
	grid     [][]Cell
	sets     *disjointset.Set
	rng      *rand.Rand
	entrance CellPosition
	exit     CellPosition
	stats    Stats
}

// newBuilder allocates a closed grid and opens the entrance and exit cells
// towards the outside.
func newBuilder(size int, rng *rand.Rand) *builder {
	grid := make([][]Cell, size)
	for row := range grid {
		grid[row] = make([]Cell, size)
		for col := range grid[row] {
			grid[row][col] = newCell(row, col)
		}
	}

	b := &builder{
		size:     size,
		grid:     grid,
		sets:     disjointset.New(size * size),
		rng:      rng,
		entrance: CellPosition{Row: 0, Col: 1},
		exit:     CellPosition{Row: size - 1, Col: size - 2},
	}

	b.cell(b.entrance).Open = true
	b.cell(b.entrance).Walls[North] = false
	b.cell(b.exit).Open = true
	b.cell(b.exit).Walls[South] = false

	return b
}

func (b *builder) inBound(p CellPosition) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

func (b *builder) index(p CellPosition) int {
	return p.Row*b.size + p.Col
}

func (b *builder) cell(p CellPosition) *Cell {
	return &b.grid[p.Row][p.Col]
}

// carve removes the wall between from and its neighbor in direction d on
// both sides and joins their components.
func (b *builder) carve(from CellPosition, d Direction) {
	to := from.Step(d)
	b.cell(from).Walls[d] = false
	b.cell(to).Walls[d.Opposite()] = false
	b.cell(from).Open = true
	b.cell(to).Open = true
	b.sets.Union(b.index(from), b.index(to))
	b.stats.Passages++
}

// makeOpening carves from an open cell into one random neighbor that is not
// open yet. It does nothing when every neighbor is already open.
func (b *builder) makeOpening(p CellPosition) {
	candidates := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		n := p.Step(d)
		if b.inBound(n) && !b.cell(n).Open {
			candidates = append(candidates, d)
		}
	}

	if len(candidates) == 0 {
		return
	}

	b.carve(p, candidates[b.rng.Intn(len(candidates))])
}

// spanByRejection tears down random walls until one component remains.
// It returns false if iterationCap draws were spent first.
func (b *builder) spanByRejection(iterationCap int) bool {
	for b.sets.Count() > 1 {
		if iterationCap > 0 && b.stats.Iterations >= iterationCap {
			return false
		}
		b.stats.Iterations++

		from := CellPosition{Row: b.rng.Intn(b.size), Col: b.rng.Intn(b.size)}
		d := Directions[b.rng.Intn(len(Directions))]
		to := from.Step(d)

		if !b.inBound(to) || from == b.entrance || to == b.exit {
			b.stats.Rejected++
			continue
		}

		if b.sets.Connected(b.index(from), b.index(to)) {
			b.stats.Rejected++
			continue
		}

		b.carve(from, d)
	}

	return true
}

// spanByKruskal visits every interior wall once in shuffled order and tears
// down those that join two components.
func (b *builder) spanByKruskal() {
	type edge struct {
		from CellPosition
		dir  Direction
	}

	edges := make([]edge, 0, 2*b.size*(b.size-1))
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			p := CellPosition{Row: row, Col: col}
			for _, d := range []Direction{East, South} {
				if b.inBound(p.Step(d)) {
					edges = append(edges, edge{from: p, dir: d})
				}
			}
		}
	}

	b.rng.Shuffle(len(edges), func(i, j int) { edges[i], edges[j] = edges[j], edges[i] })

	for _, e := range edges {
		if b.sets.Count() == 1 {
			return
		}
		b.stats.Iterations++
		if b.sets.Connected(b.index(e.from), b.index(e.from.Step(e.dir))) {
			b.stats.Rejected++
			continue
		}
		b.carve(e.from, e.dir)
	}
}

// build runs the seeding openings and the spanning phase.
func (b *builder) build(strategy Strategy, iterationCap int) error {
	b.makeOpening(b.entrance)
	b.makeOpening(b.exit)

	switch strategy {
	case StrategyKruskal:
		b.spanByKruskal()
	default:
		if !b.spanByRejection(iterationCap) {
			b.stats.CapReached = true
			b.spanByKruskal()
		}
	}

	if n := b.sets.Count(); n != 1 {
		return invariantf("%d components left after spanning", n)
	}
	return nil
}
