package tui

import "github.com/gdamore/tcell/v2"

type endChoice uint8

const (
	choiceRestart endChoice = iota
	choiceSettings
)

var endLabels = [...]string{
	choiceRestart:  "[ Play again ]",
	choiceSettings: "[ Settings ]",
}

// endDialog is the modal shown once a game is won or lost.
type endDialog struct {
	message  string
	selected endChoice
	// screen x of each button, filled in when drawn
	buttonX [len(endLabels)]int
}

func (a *App) showEnd(message string) {
	a.mode = modeEnd
	a.lastButtons = 0
	a.end = endDialog{message: message}
	a.redraw()
}

func (a *App) endLine() int {
	return a.footerLine() + 2
}

func (a *App) drawEnd() {
	y := a.endLine()
	a.clearLine(y)
	a.clearLine(y + 1)
	a.drawText(boardLeft, y, textStyle.Bold(true), a.end.message)

	x := boardLeft
	for i, label := range endLabels {
		style := textStyle
		if endChoice(i) == a.end.selected {
			style = focusStyle
		}
		a.end.buttonX[i] = x
		x = a.drawText(x, y+1, style, label) + 2
	}
}

func (a *App) choose(c endChoice) {
	switch c {
	case choiceRestart:
		a.restart()
	case choiceSettings:
		a.openSettings()
	}
}

func (a *App) handleEnd(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		if a.clicked(ev)&tcell.ButtonPrimary == 0 {
			return true
		}
		x, y := ev.Position()
		if y != a.endLine()+1 {
			return true
		}
		for i, bx := range a.end.buttonX {
			if bx <= x && x < bx+len(endLabels[i]) {
				a.choose(endChoice(i))
				return true
			}
		}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape:
			return false
		case tcell.KeyLeft, tcell.KeyRight, tcell.KeyTab, tcell.KeyBacktab:
			a.end.selected = (a.end.selected + 1) % endChoice(len(endLabels))
			a.drawEnd()
		case tcell.KeyEnter:
			a.choose(a.end.selected)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				a.choose(choiceRestart)
			case 's':
				a.choose(choiceSettings)
			}
		}
	}
	return true
}
