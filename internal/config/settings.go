package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/schema"
	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	MinRows = 1
	MaxRows = 16
	MinCols = 1
	MaxCols = 30
	// cells kept free around an arbitrary first click
	safeArea = 9
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the board parameters chosen on the settings screen.
type Settings struct {
	Rows  int `schema:"rows,required" mapstructure:"rows"`
	Cols  int `schema:"cols,required" mapstructure:"cols"`
	Mines int `schema:"mines,required" mapstructure:"mines"`
}

var (
	Beginner     = Settings{Rows: 9, Cols: 9, Mines: 10}
	Intermediate = Settings{Rows: 16, Cols: 16, Mines: 40}
	Expert       = Settings{Rows: 16, Cols: 30, Mines: 99}
)

var presets = map[string]Settings{
	"beginner":     Beginner,
	"intermediate": Intermediate,
	"expert":       Expert,
}

// Preset looks up a named preset. A "rows:cols:mines" triple is accepted as
// well.
func Preset(name string) (Settings, error) {
	if s, ok := presets[strings.ToLower(name)]; ok {
		return s, nil
	}
	p, err := mines.ParseSeed(name)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidSettings, name)
	}
	s := Settings{Rows: p.Rows, Cols: p.Cols, Mines: p.MineCount}
	return s, s.Validate()
}

// MaxMines is the largest mine count that still leaves room for a mine-free
// first click anywhere on a rows x cols board.
func MaxMines(rows, cols int) int {
	return rows*cols - safeArea
}

func (s Settings) Validate() error {
	if s.Rows < MinRows || s.Rows > MaxRows {
		return fmt.Errorf("%w: rows must be between %d and %d", ErrInvalidSettings, MinRows, MaxRows)
	}
	if s.Cols < MinCols || s.Cols > MaxCols {
		return fmt.Errorf("%w: cols must be between %d and %d", ErrInvalidSettings, MinCols, MaxCols)
	}
	maxMines := MaxMines(s.Rows, s.Cols)
	if maxMines < 1 {
		return fmt.Errorf("%w: a %dx%d board is too small for any mines", ErrInvalidSettings, s.Rows, s.Cols)
	}
	if s.Mines < 1 || s.Mines > maxMines {
		return fmt.Errorf("%w: mines must be between 1 and %d", ErrInvalidSettings, maxMines)
	}
	return nil
}

func (s Settings) Params() mines.GameParams {
	return mines.GameParams{Rows: s.Rows, Cols: s.Cols, MineCount: s.Mines}
}

func (s Settings) String() string {
	return fmt.Sprintf("%dx%d, %d mines", s.Rows, s.Cols, s.Mines)
}

// ParseSettings decodes settings form values and validates them.
func ParseSettings(src map[string][]string) (Settings, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var s Settings
	if err := dec.Decode(&s, src); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return s, s.Validate()
}
