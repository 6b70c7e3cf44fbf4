package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type DisplayKind int8

const (
	Hidden DisplayKind = iota
	Number
	Mine
	Flag
)

func (k DisplayKind) String() string {
	switch k {
	case Hidden:
		return "hidden"
	case Number:
		return "number"
	case Mine:
		return "mine"
	case Flag:
		return "flag"
	default:
		return "unknown"
	}
}

// CellDisplay is everything a renderer needs to draw one cell.
type CellDisplay struct {
	Kind      DisplayKind
	MineCount int  // only for Number
	Triggered bool // only for Mine
}

func (c CellDisplay) String() string {
	switch c.Kind {
	case Hidden:
		return "."
	case Flag:
		return "F"
	case Mine:
		if c.Triggered {
			return "X"
		}
		return "*"
	case Number:
		if c.MineCount == 0 {
			return " "
		}
		return strconv.Itoa(c.MineCount)
	default:
		return "!"
	}
}

// String draws the board as the player currently sees it, one row per line.
func (g *Game) String() string {
	var b strings.Builder
	for r := range g.params.Rows {
		for c := range g.params.Cols {
			if c > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprint(&b, g.DisplayState(Point{r, c}).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
