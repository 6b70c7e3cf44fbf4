// Package tui renders a session on a terminal and feeds mouse and keyboard
// input back into it.
package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
	"golang.org/x/sync/errgroup"
)

var Log = logrus.New()

type mode uint8

const (
	modeBoard mode = iota
	modeEnd
	modeSettings
)

type App struct {
	screen  tcell.Screen
	session *session.Session

	mode        mode
	cursor      mines.Point
	lastButtons tcell.ButtonMask

	end  endDialog
	form *settingsForm
}

func New(screen tcell.Screen, s *session.Session) *App {
	return &App{
		screen:  screen,
		session: s,
	}
}

func (a *App) init() error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("unable to init screen: %w", err)
	}
	a.screen.EnableMouse()
	a.screen.SetStyle(tcell.StyleDefault)
	a.redraw()
	return nil
}

// Run owns the terminal until the player quits or ctx is cancelled. All
// events are handled on a single goroutine.
func (a *App) Run(ctx context.Context) error {
	if err := a.init(); err != nil {
		return err
	}
	defer a.screen.Fini()

	events := make(chan tcell.Event)
	quit := make(chan struct{})

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.screen.ChannelEvents(events, quit)
		return nil
	})
	g.Go(func() error {
		defer close(quit)
		for {
			select {
			case <-gCtx.Done():
				Log.Info("interrupted")
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				if !a.Handle(ev) {
					Log.Info("quit")
					return nil
				}
			}
		}
	})

	return g.Wait()
}

// Handle processes one event and reports whether the app should keep
// running.
func (a *App) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.redraw()
		return true
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
	}

	var keepGoing bool
	switch a.mode {
	case modeBoard:
		keepGoing = a.handleBoard(ev)
	case modeEnd:
		keepGoing = a.handleEnd(ev)
	case modeSettings:
		keepGoing = a.handleSettings(ev)
	}
	a.screen.Show()
	return keepGoing
}

// clicked turns mouse reports into clicks: only the press of a button
// counts, not holding or releasing it.
func (a *App) clicked(ev *tcell.EventMouse) tcell.ButtonMask {
	buttons := ev.Buttons() & (tcell.ButtonPrimary | tcell.ButtonSecondary)
	pressed := buttons &^ a.lastButtons
	a.lastButtons = buttons
	return pressed
}

func (a *App) handleBoard(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		pressed := a.clicked(ev)
		p, ok := a.pointAt(ev.Position())
		if !ok || pressed == 0 {
			return true
		}
		a.moveCursor(p)
		if pressed&tcell.ButtonPrimary != 0 {
			a.apply(a.session.Open(p))
		} else {
			a.apply(a.session.Flag(p))
		}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape:
			return false
		case tcell.KeyUp:
			a.step(-1, 0)
		case tcell.KeyDown:
			a.step(1, 0)
		case tcell.KeyLeft:
			a.step(0, -1)
		case tcell.KeyRight:
			a.step(0, 1)
		case tcell.KeyEnter:
			a.apply(a.session.Open(a.cursor))
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'k':
				a.step(-1, 0)
			case 'j':
				a.step(1, 0)
			case 'h':
				a.step(0, -1)
			case 'l':
				a.step(0, 1)
			case ' ':
				a.apply(a.session.Open(a.cursor))
			case 'f':
				a.apply(a.session.Flag(a.cursor))
			case 'r':
				a.restart()
			case 's':
				a.openSettings()
			}
		}
	}
	return true
}

func (a *App) step(dr, dc int) {
	p := mines.Point{Row: a.cursor.Row + dr, Col: a.cursor.Col + dc}
	if a.session.Game().Params().PointInBounds(p) {
		a.moveCursor(p)
	}
}

func (a *App) moveCursor(p mines.Point) {
	old := a.cursor
	a.cursor = p
	a.drawCell(old, a.session.Game().DisplayState(old))
	a.drawCell(p, a.session.Game().DisplayState(p))
}

func (a *App) apply(upd session.Update, err error) {
	if err != nil {
		Log.WithError(err).Warn("rejected move")
		return
	}
	for p, d := range upd.Cells {
		a.drawCell(p, d)
	}
	a.drawHeader()

	switch upd.Outcome.Kind {
	case mines.GameOver:
		a.showEnd("BOOM! You stepped on a mine.")
	case mines.Victory:
		a.showEnd("Congratulations, you cleared the board!")
	}
}

func (a *App) restart() {
	a.session.Restart()
	a.cursor = mines.Point{}
	a.mode = modeBoard
	a.redraw()
}
