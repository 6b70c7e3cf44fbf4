package tui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/vancomm/minesweeper/internal/config"
)

type formField struct {
	key   string
	label string
	value string
}

type settingsForm struct {
	fields  []formField
	focused int
	err     error
}

func newSettingsForm(s config.Settings) *settingsForm {
	return &settingsForm{
		fields: []formField{
			{key: "rows", label: fmt.Sprintf("rows (%d-%d)", config.MinRows, config.MaxRows), value: strconv.Itoa(s.Rows)},
			{key: "cols", label: fmt.Sprintf("cols (%d-%d)", config.MinCols, config.MaxCols), value: strconv.Itoa(s.Cols)},
			{key: "mines", value: strconv.Itoa(s.Mines)},
		},
	}
}

// values returns the form the way an HTML form would submit it.
func (f *settingsForm) values() map[string][]string {
	v := make(map[string][]string, len(f.fields))
	for _, field := range f.fields {
		v[field.key] = []string{field.value}
	}
	return v
}

func (f *settingsForm) mineLabel() string {
	rows, errRows := strconv.Atoi(f.fields[0].value)
	cols, errCols := strconv.Atoi(f.fields[1].value)
	if errRows != nil || errCols != nil {
		return "mines"
	}
	return fmt.Sprintf("mines (1-%d)", max(config.MaxMines(rows, cols), 1))
}

func (a *App) openSettings() {
	a.form = newSettingsForm(a.session.Settings())
	a.mode = modeSettings
	a.redraw()
}

func (a *App) drawSettings() {
	f := a.form
	a.drawText(boardLeft, 0, textStyle.Bold(true), "Custom game")
	for i, field := range f.fields {
		y := boardTop + i
		label := field.label
		if field.key == "mines" {
			label = f.mineLabel()
		}
		a.clearLine(y)
		x := a.drawText(boardLeft, y, textStyle, fmt.Sprintf("%-16s", label))
		style := textStyle.Underline(true)
		if i == f.focused {
			style = focusStyle
		}
		a.drawText(x, y, style, fmt.Sprintf("%-4s", field.value))
	}

	y := boardTop + len(f.fields) + 1
	a.clearLine(y)
	if f.err != nil {
		a.drawText(boardLeft, y, textStyle.Foreground(tcell.ColorRed), f.err.Error())
	}
	a.drawText(boardLeft, y+1, textStyle,
		"tab/arrows: move  0-9/backspace: edit  enter: start  esc: back")
}

func (a *App) submitSettings() {
	settings, err := config.ParseSettings(a.form.values())
	if err == nil {
		err = a.session.Reconfigure(settings)
	}
	if err != nil {
		Log.WithError(err).Debug("settings rejected")
		a.form.err = err
		a.drawSettings()
		return
	}
	a.form = nil
	a.restart()
}

func (a *App) handleSettings(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}

	f := a.form
	field := &f.fields[f.focused]
	switch key.Key() {
	case tcell.KeyEscape:
		a.form = nil
		a.mode = modeBoard
		a.redraw()
		return true
	case tcell.KeyEnter:
		a.submitSettings()
		return true
	case tcell.KeyTab, tcell.KeyDown:
		f.focused = (f.focused + 1) % len(f.fields)
	case tcell.KeyBacktab, tcell.KeyUp:
		f.focused = (f.focused + len(f.fields) - 1) % len(f.fields)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(field.value); n > 0 {
			field.value = field.value[:n-1]
		}
	case tcell.KeyRune:
		if r := key.Rune(); '0' <= r && r <= '9' && len(field.value) < 3 {
			field.value += string(r)
		}
	}
	a.drawSettings()
	return true
}
