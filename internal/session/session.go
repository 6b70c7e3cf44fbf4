// Package session drives a single player's games: it turns input into
// engine moves, collects what needs repainting, and starts new rounds.
package session

import (
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
)

var Log = logrus.New()

var ErrOutOfBounds = errors.New("cell out of bounds")

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// Update is what a renderer needs after a move: the move's outcome and the
// new display state of every cell that may have changed.
type Update struct {
	Outcome mines.Outcome
	Cells   map[mines.Point]mines.CellDisplay
}

type Session struct {
	settings config.Settings
	game     *mines.Game
	rnd      *rand.Rand
}

// New starts a session with already validated settings.
func New(settings config.Settings, rnd *rand.Rand) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	s := &Session{settings: settings, rnd: rnd}
	s.Restart()
	return s, nil
}

func (s *Session) Settings() config.Settings { return s.settings }
func (s *Session) Game() *mines.Game         { return s.game }

// Restart begins a new round with the same settings.
func (s *Session) Restart() {
	s.game = mines.New(s.settings.Params(), s.rnd)
	Log.WithField("settings", s.settings.String()).Info("new game")
}

// Reconfigure remembers new settings and begins a round with them. Invalid
// settings leave the session untouched.
func (s *Session) Reconfigure(settings config.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.settings = settings
	s.Restart()
	return nil
}

func (s *Session) checkBounds(p mines.Point) error {
	if !s.game.Params().PointInBounds(p) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	return nil
}

// Open reveals a cell.
func (s *Session) Open(p mines.Point) (Update, error) {
	if err := s.checkBounds(p); err != nil {
		return Update{}, err
	}
	return s.collect(s.game.Reveal(p)), nil
}

// Flag toggles the flag on a cell.
func (s *Session) Flag(p mines.Point) (Update, error) {
	if err := s.checkBounds(p); err != nil {
		return Update{}, err
	}
	return s.collect(s.game.ToggleFlag(p)), nil
}

func (s *Session) collect(out mines.Outcome) Update {
	upd := Update{
		Outcome: out,
		Cells:   make(map[mines.Point]mines.CellDisplay, len(out.Affected)),
	}
	for _, p := range out.Affected {
		upd.Cells[p] = s.game.DisplayState(p)
	}
	if out.Terminal() {
		for p, d := range s.game.EndOfGameMineStates() {
			upd.Cells[p] = d
		}
	}

	if out.Kind != mines.NoAction {
		Log.WithFields(logrus.Fields{
			"outcome":  out.Kind.String(),
			"affected": len(out.Affected),
			"status":   s.game.Status().String(),
		}).Debug("move")
	}
	return upd
}
