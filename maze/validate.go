package maze

// Validate checks that m is a perfect maze: walls are torn down in matching
// pairs, the boundary is crossed only at the entrance and the exit, there
// are exactly size*size-1 passages, and a breadth-first walk from the
// entrance reaches every cell once. Failures wrap ErrInvariantViolation.
func Validate(m *Maze) error {
	passages := 0
	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			pos := CellPosition{Row: row, Col: col}
			cell := m.grid[row][col]
			for _, d := range Directions {
				if cell.Walls[d] {
					continue
				}

				to := pos.Step(d)
				if !m.InBound(to.Row, to.Col) {
					if !m.IsOpening(pos, d) {
						return invariantf("cell %v is open to the outside on its %s side", pos, d)
					}
					continue
				}

				if m.grid[to.Row][to.Col].Walls[d.Opposite()] {
					return invariantf("one-sided passage from %v going %s", pos, d)
				}

				// Count each pair once, from its west or north cell.
				if d == East || d == South {
					passages++
				}
			}
		}
	}

	for _, p := range []CellPosition{m.entrance, m.exit} {
		if !m.grid[p.Row][p.Col].Open {
			return invariantf("opening cell %v is not open", p)
		}
	}
	if m.grid[m.entrance.Row][m.entrance.Col].Walls[North] {
		return invariantf("entrance %v has no outside opening", m.entrance)
	}
	if m.grid[m.exit.Row][m.exit.Col].Walls[South] {
		return invariantf("exit %v has no outside opening", m.exit)
	}

	if want := m.size*m.size - 1; passages != want {
		return invariantf("%d passages, want %d", passages, want)
	}

	if visited := m.reachable(m.entrance); visited != m.size*m.size {
		return invariantf("%d of %d cells reachable from the entrance", visited, m.size*m.size)
	}

	return nil
}

// reachable counts the cells a breadth-first walk from start can reach
// through torn-down walls.
func (m *Maze) reachable(start CellPosition) int {
	seen := make([]bool, m.size*m.size)
	seen[start.Row*m.size+start.Col] = true
	queue := []CellPosition{start}

	for qi := 0; qi < len(queue); qi++ {
		pos := queue[qi]
		for _, d := range Directions {
			if !m.Passable(pos, d) {
				continue
			}
			next := pos.Step(d)
			i := next.Row*m.size + next.Col
			if !seen[i] {
				seen[i] = true
				queue = append(queue, next)
			}
		}
	}

	return len(queue)
}
