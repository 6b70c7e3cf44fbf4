package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/vancomm/minesweeper/internal/mines"
)

// Board layout: a header line, a blank line, then one screen row per board
// row with every cell two columns wide.
const (
	boardLeft = 1
	boardTop  = 2
	cellWidth = 2
)

var numberColors = [...]tcell.Color{
	1: tcell.ColorBlue,
	2: tcell.ColorGreen,
	3: tcell.ColorRed,
	4: tcell.ColorNavy,
	5: tcell.ColorMaroon,
	6: tcell.ColorTeal,
	7: tcell.ColorBlack,
	8: tcell.ColorGray,
}

var (
	hiddenStyle  = tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack)
	openStyle    = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	flagStyle    = hiddenStyle.Foreground(tcell.ColorRed).Bold(true)
	mineStyle    = hiddenStyle.Bold(true)
	triggerStyle = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorBlack).Bold(true)
	textStyle    = tcell.StyleDefault
	focusStyle   = tcell.StyleDefault.Reverse(true)
)

func cellStyle(d mines.CellDisplay) tcell.Style {
	switch d.Kind {
	case mines.Flag:
		return flagStyle
	case mines.Mine:
		if d.Triggered {
			return triggerStyle
		}
		return mineStyle
	case mines.Number:
		if 0 < d.MineCount && d.MineCount < len(numberColors) {
			return openStyle.Foreground(numberColors[d.MineCount]).Bold(true)
		}
		return openStyle
	default:
		return hiddenStyle
	}
}

func cellPosition(p mines.Point) (x, y int) {
	return boardLeft + p.Col*cellWidth, boardTop + p.Row
}

// pointAt maps screen coordinates to the board cell drawn there.
func (a *App) pointAt(x, y int) (mines.Point, bool) {
	if x < boardLeft || y < boardTop {
		return mines.Point{}, false
	}
	p := mines.Point{Row: y - boardTop, Col: (x - boardLeft) / cellWidth}
	return p, a.session.Game().Params().PointInBounds(p)
}

func (a *App) drawCell(p mines.Point, d mines.CellDisplay) {
	x, y := cellPosition(p)
	style := cellStyle(d)
	if p == a.cursor && a.mode == modeBoard {
		style = style.Reverse(true)
	}
	glyph := []rune(d.String())[0]
	a.screen.SetContent(x, y, glyph, nil, style)
	a.screen.SetContent(x+1, y, ' ', nil, style)
}

func (a *App) drawText(x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func (a *App) clearLine(y int) {
	w, _ := a.screen.Size()
	for x := range w {
		a.screen.SetContent(x, y, ' ', nil, textStyle)
	}
}

func (a *App) drawHeader() {
	g := a.session.Game()
	a.clearLine(0)
	a.drawText(boardLeft, 0, textStyle, fmt.Sprintf(
		"mines: %d  flags: %d  %s",
		g.Params().MineCount, g.FlagCount(), g.Status(),
	))
}

func (a *App) footerLine() int {
	return boardTop + a.session.Game().Params().Rows + 1
}

func (a *App) drawBoard() {
	params := a.session.Game().Params()
	for r := range params.Rows {
		for c := range params.Cols {
			p := mines.Point{Row: r, Col: c}
			a.drawCell(p, a.session.Game().DisplayState(p))
		}
	}
	a.drawHeader()
	a.drawText(boardLeft, a.footerLine(), textStyle,
		"click/space: open  right-click/f: flag  r: restart  s: settings  q: quit")
}

func (a *App) redraw() {
	a.screen.Clear()
	switch a.mode {
	case modeBoard:
		a.drawBoard()
	case modeEnd:
		a.drawBoard()
		a.drawEnd()
	case modeSettings:
		a.drawSettings()
	}
	a.screen.Show()
}
