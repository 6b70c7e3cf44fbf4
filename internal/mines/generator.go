package mines

import (
	"fmt"
	"strings"
)

type GameParams struct {
	Rows, Cols, MineCount int
}

func (p GameParams) Unpack() (rows int, cols int, mc int) {
	return p.Rows, p.Cols, p.MineCount
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Rows, p.Cols, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Rows, &p.Cols, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	return p, nil
}

func (p GameParams) CellCount() int {
	return p.Rows * p.Cols
}

func (p GameParams) SafeCellCount() int {
	return p.Rows*p.Cols - p.MineCount
}

func (p GameParams) PointInBounds(pt Point) bool {
	return 0 <= pt.Row && pt.Row < p.Rows && 0 <= pt.Col && pt.Col < p.Cols
}
