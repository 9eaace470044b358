package domain

// Cell is one square on a bingo card.
type Cell struct {
	Airline string `json:"airline"`
	Marked  bool   `json:"marked"`
	Free    bool   `json:"free"`
}

// Card is a square grid of cells. Labels are fixed at deal time; only the
// marked state changes as draws come in. At most one cell carries the free
// flag, and a free cell counts as marked without ever being drawn.
type Card [][]Cell

func (c Card) Size() int {
	return len(c)
}

// Mark sets the marked flag on every cell whose airline equals label.
// Duplicate labels across the card are all marked in one call; marking an
// already-marked cell is a no-op. Returns the number of matching cells.
func (c Card) Mark(label string) int {
	matched := 0
	for i := range c {
		for j := range c[i] {
			if c[i][j].Airline == label {
				c[i][j].Marked = true
				matched++
			}
		}
	}
	return matched
}

// MarkedGrid returns the marked-or-free matrix the win checks run over.
func (c Card) MarkedGrid() [][]bool {
	grid := make([][]bool, len(c))
	for i := range c {
		grid[i] = make([]bool, len(c[i]))
		for j := range c[i] {
			grid[i][j] = c[i][j].Marked || c[i][j].Free
		}
	}
	return grid
}

// Coord addresses a single cell by row and column.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// HasBingo reports whether at least one full row, full column, main diagonal
// or anti-diagonal of the NxN grid is satisfied.
func HasBingo(grid [][]bool) bool {
	return len(WinningLines(grid)) > 0
}

// WinningLines returns the coordinates of every satisfied line, one run of N
// coordinates per line in row/column/diagonal order. A cell sitting on two
// satisfied lines appears once per line.
func WinningLines(grid [][]bool) []Coord {
	n := len(grid)
	if n == 0 {
		return nil
	}

	var cells []Coord

	for i := 0; i < n; i++ {
		full := true
		for j := 0; j < n; j++ {
			if !grid[i][j] {
				full = false
				break
			}
		}
		if full {
			for j := 0; j < n; j++ {
				cells = append(cells, Coord{Row: i, Col: j})
			}
		}
	}

	for j := 0; j < n; j++ {
		full := true
		for i := 0; i < n; i++ {
			if !grid[i][j] {
				full = false
				break
			}
		}
		if full {
			for i := 0; i < n; i++ {
				cells = append(cells, Coord{Row: i, Col: j})
			}
		}
	}

	full := true
	for i := 0; i < n; i++ {
		if !grid[i][i] {
			full = false
			break
		}
	}
	if full {
		for i := 0; i < n; i++ {
			cells = append(cells, Coord{Row: i, Col: i})
		}
	}

	full = true
	for i := 0; i < n; i++ {
		if !grid[i][n-1-i] {
			full = false
			break
		}
	}
	if full {
		for i := 0; i < n; i++ {
			cells = append(cells, Coord{Row: i, Col: n - 1 - i})
		}
	}

	return cells
}
