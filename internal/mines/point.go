package mines

import "fmt"

// Point identifies a single cell on the board.
type Point struct {
	Row, Col int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Less orders points row-major.
func (p Point) Less(o Point) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

func comparePoints(a, b Point) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

// neighbors returns the in-bounds cells of the 3x3 block centered on p,
// excluding p itself, top-left first.
func (params GameParams) neighbors(p Point) []Point {
	ns := make([]Point, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Point{p.Row + dr, p.Col + dc}
			if params.PointInBounds(n) {
				ns = append(ns, n)
			}
		}
	}
	return ns
}

// points returns every coordinate of the board, row-major.
func (params GameParams) points() []Point {
	ps := make([]Point, 0, params.CellCount())
	for r := range params.Rows {
		for c := range params.Cols {
			ps = append(ps, Point{r, c})
		}
	}
	return ps
}
