package tui

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

func TestMain(m *testing.M) {
	for _, l := range []*logrus.Logger{Log, session.Log, mines.Log} {
		l.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}
	m.Run()
}

func newTestApp(t *testing.T, settings config.Settings) (*App, tcell.SimulationScreen) {
	t.Helper()
	s, err := session.New(settings, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	screen := tcell.NewSimulationScreen("UTF-8")
	a := New(screen, s)
	require.NoError(t, a.init())
	t.Cleanup(screen.Fini)
	return a, screen
}

func line(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for _, c := range cells[y*w : (y+1)*w] {
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func glyphAt(screen tcell.SimulationScreen, p mines.Point) rune {
	cells, w, _ := screen.GetContents()
	x, y := cellPosition(p)
	if r := cells[y*w+x].Runes; len(r) > 0 {
		return r[0]
	}
	return ' '
}

func click(a *App, p mines.Point, button tcell.ButtonMask) {
	x, y := cellPosition(p)
	a.Handle(tcell.NewEventMouse(x, y, button, tcell.ModNone))
	a.Handle(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func key(a *App, k tcell.Key) bool {
	return a.Handle(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func typeRune(a *App, r rune) bool {
	return a.Handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func TestInitialDraw(t *testing.T) {
	_, screen := newTestApp(t, config.Beginner)

	assert.Equal(t, " mines: 10  flags: 0  not started", line(screen, 0))
	assert.Equal(t, " . . . . . . . . .", line(screen, boardTop+1))
	assert.Contains(t, line(screen, boardTop+10), "right-click/f: flag")
}

func TestClickOpensAndFlags(t *testing.T) {
	a, screen := newTestApp(t, config.Beginner)
	center := mines.Point{Row: 4, Col: 4}

	click(a, center, tcell.ButtonPrimary)

	require.True(t, a.session.Game().Started())
	assert.True(t, a.session.Game().IsRevealed(center))
	assert.NotEqual(t, '.', glyphAt(screen, center))
	assert.Contains(t, line(screen, 0), "in progress")

	var hidden mines.Point
	found := false
	for _, p := range a.session.Game().Mines() {
		if !a.session.Game().IsRevealed(p) {
			hidden, found = p, true
			break
		}
	}
	require.True(t, found)

	click(a, hidden, tcell.ButtonSecondary)

	assert.True(t, a.session.Game().IsFlagged(hidden))
	assert.Equal(t, 'F', glyphAt(screen, hidden))
	assert.Contains(t, line(screen, 0), "flags: 1")
}

func TestHeldButtonClicksOnce(t *testing.T) {
	a, _ := newTestApp(t, config.Beginner)
	x, y := cellPosition(mines.Point{Row: 0, Col: 0})

	a.Handle(tcell.NewEventMouse(x, y, tcell.ButtonSecondary, tcell.ModNone))
	a.Handle(tcell.NewEventMouse(x, y, tcell.ButtonSecondary, tcell.ModNone))

	assert.True(t, a.session.Game().IsFlagged(mines.Point{Row: 0, Col: 0}))
}

func TestKeyboardMoves(t *testing.T) {
	a, _ := newTestApp(t, config.Beginner)

	key(a, tcell.KeyRight)
	typeRune(a, 'j')
	typeRune(a, 'j')
	key(a, tcell.KeyLeft)
	key(a, tcell.KeyLeft)
	assert.Equal(t, mines.Point{Row: 2, Col: 0}, a.cursor)

	typeRune(a, 'f')
	assert.True(t, a.session.Game().IsFlagged(a.cursor))

	typeRune(a, ' ')
	assert.False(t, a.session.Game().Started(), "flagged cell was opened")

	typeRune(a, 'f')
	key(a, tcell.KeyEnter)
	assert.True(t, a.session.Game().IsRevealed(mines.Point{Row: 2, Col: 0}))
}

func loseGame(t *testing.T, a *App) {
	t.Helper()
	click(a, mines.Point{Row: 4, Col: 4}, tcell.ButtonPrimary)
	click(a, a.session.Game().Mines()[0], tcell.ButtonPrimary)
	require.Equal(t, mines.Lost, a.session.Game().Status())
}

func TestLossShowsEndDialog(t *testing.T) {
	a, screen := newTestApp(t, config.Beginner)

	loseGame(t, a)

	assert.Equal(t, modeEnd, a.mode)
	assert.Equal(t, 'X', glyphAt(screen, a.session.Game().Mines()[0]))
	for _, p := range a.session.Game().Mines()[1:] {
		assert.Contains(t, []rune{'*', 'F'}, glyphAt(screen, p))
	}
	assert.Contains(t, line(screen, a.endLine()), "BOOM!")
	assert.Equal(t, " [ Play again ]  [ Settings ]", line(screen, a.endLine()+1))

	// board clicks are ignored while the dialog is up
	revealed := a.session.Game().RevealedCount()
	click(a, mines.Point{Row: 8, Col: 8}, tcell.ButtonPrimary)
	click(a, mines.Point{Row: 0, Col: 0}, tcell.ButtonSecondary)
	assert.Equal(t, revealed, a.session.Game().RevealedCount())
	assert.Equal(t, 0, a.session.Game().FlagCount())
	assert.Equal(t, modeEnd, a.mode)
}

func TestEndDialogPlayAgain(t *testing.T) {
	a, screen := newTestApp(t, config.Beginner)
	loseGame(t, a)

	x := a.end.buttonX[choiceRestart] + 2
	y := a.endLine() + 1
	a.Handle(tcell.NewEventMouse(x, y, tcell.ButtonPrimary, tcell.ModNone))

	assert.Equal(t, modeBoard, a.mode)
	assert.False(t, a.session.Game().Started())
	assert.Equal(t, config.Beginner, a.session.Settings())
	assert.Equal(t, " . . . . . . . . .", line(screen, boardTop+4))
}

func TestEndDialogKeyboard(t *testing.T) {
	a, _ := newTestApp(t, config.Beginner)
	loseGame(t, a)

	key(a, tcell.KeyTab)
	assert.Equal(t, choiceSettings, a.end.selected)
	key(a, tcell.KeyEnter)

	assert.Equal(t, modeSettings, a.mode)
	require.NotNil(t, a.form)
}

func TestSettingsForm(t *testing.T) {
	a, screen := newTestApp(t, config.Beginner)

	typeRune(a, 's')
	require.Equal(t, modeSettings, a.mode)
	assert.Contains(t, line(screen, boardTop+2), "mines (1-72)")

	key(a, tcell.KeyBackspace2)
	typeRune(a, '5')
	key(a, tcell.KeyTab)
	key(a, tcell.KeyBackspace2)
	typeRune(a, '6')
	assert.Contains(t, line(screen, boardTop+2), "mines (1-21)")
	key(a, tcell.KeyDown)
	key(a, tcell.KeyBackspace2)
	key(a, tcell.KeyBackspace2)
	typeRune(a, 'x')
	typeRune(a, '4')
	key(a, tcell.KeyEnter)

	assert.Equal(t, modeBoard, a.mode)
	assert.Nil(t, a.form)
	assert.Equal(t, config.Settings{Rows: 5, Cols: 6, Mines: 4}, a.session.Settings())
	assert.Equal(t, " mines: 4  flags: 0  not started", line(screen, 0))
	assert.Equal(t, " . . . . . .", line(screen, boardTop))
}

func TestSettingsFormRejectsInvalid(t *testing.T) {
	a, screen := newTestApp(t, config.Beginner)
	typeRune(a, 's')

	key(a, tcell.KeyBackspace2)
	key(a, tcell.KeyEnter)
	assert.Equal(t, modeSettings, a.mode)
	assert.Contains(t, line(screen, boardTop+4), "invalid settings")

	typeRune(a, '2')
	typeRune(a, '0')
	key(a, tcell.KeyEnter)
	assert.Equal(t, modeSettings, a.mode)
	assert.Contains(t, line(screen, boardTop+4), "rows must be between 1 and 16")
	assert.Equal(t, config.Beginner, a.session.Settings())

	key(a, tcell.KeyEscape)
	assert.Equal(t, modeBoard, a.mode)
	assert.Equal(t, config.Beginner, a.session.Settings())
}

func TestQuitKeys(t *testing.T) {
	a, _ := newTestApp(t, config.Beginner)

	assert.True(t, typeRune(a, 'h'))
	assert.False(t, typeRune(a, 'q'))
	assert.False(t, key(a, tcell.KeyEscape))
	assert.False(t, key(a, tcell.KeyCtrlC))
}

func TestRunQuits(t *testing.T) {
	s, err := session.New(config.Beginner, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	screen := tcell.NewSimulationScreen("UTF-8")
	a := New(screen, s)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	require.Eventually(t, func() bool {
		return screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) == nil
	}, time.Second, 10*time.Millisecond)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s, err := session.New(config.Beginner, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	a := New(tcell.NewSimulationScreen("UTF-8"), s)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
