package mines

import (
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

var Log = logrus.New()

type Status uint8

const (
	NotStarted Status = iota
	InProgress
	Lost
	Won
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// Game holds the whole state of one round. It is not safe for concurrent
// use; callers serialize moves.
type Game struct {
	params GameParams
	rnd    *rand.Rand

	mines    mapset.Set[Point]
	revealed mapset.Set[Point]
	flagged  mapset.Set[Point]

	started, over, won bool
	trigger            *Point
}

// New creates a game without any mines. Mines are placed on the first
// reveal so that the opened cell and its neighbors are always safe. The
// caller must ensure 0 < MineCount < Rows*Cols-8.
func New(params GameParams, r *rand.Rand) *Game {
	return &Game{
		params:   params,
		rnd:      r,
		mines:    mapset.New[Point](),
		revealed: mapset.New[Point](),
		flagged:  mapset.New[Point](),
	}
}

func (g *Game) Params() GameParams { return g.params }
func (g *Game) Started() bool      { return g.started }
func (g *Game) Over() bool         { return g.over }
func (g *Game) Won() bool          { return g.won }

// Trigger returns the mine that ended the game, if any.
func (g *Game) Trigger() (Point, bool) {
	if g.trigger == nil {
		return Point{}, false
	}
	return *g.trigger, true
}

func (g *Game) Status() Status {
	switch {
	case g.won:
		return Won
	case g.over:
		return Lost
	case g.started:
		return InProgress
	default:
		return NotStarted
	}
}

func (g *Game) RevealedCount() int { return g.revealed.Size() }
func (g *Game) FlagCount() int     { return g.flagged.Size() }

// panics [AssertionError]
func (g *Game) mustBeInBounds(p Point) {
	assert(g.params.PointInBounds(p),
		"point %s out of bounds for %dx%d board", p, g.params.Rows, g.params.Cols)
}

// panics [AssertionError]
func (g *Game) IsMine(p Point) bool {
	g.mustBeInBounds(p)
	return g.mines.Has(p)
}

// panics [AssertionError]
func (g *Game) IsRevealed(p Point) bool {
	g.mustBeInBounds(p)
	return g.revealed.Has(p)
}

// panics [AssertionError]
func (g *Game) IsFlagged(p Point) bool {
	g.mustBeInBounds(p)
	return g.flagged.Has(p)
}

// Mines returns the mine positions in row-major order. Empty until the
// first reveal.
func (g *Game) Mines() []Point {
	ps := make([]Point, 0, g.mines.Size())
	g.mines.Each(func(p Point) {
		ps = append(ps, p)
	})
	slices.SortFunc(ps, comparePoints)
	return ps
}

// panics [AssertionError]
func (g *Game) Neighbors(p Point) []Point {
	g.mustBeInBounds(p)
	return g.params.neighbors(p)
}

// PlaceMines lays out the mines keeping first and its neighbors clear. Does
// nothing if the mines are already placed.
//
// panics [AssertionError]
func (g *Game) PlaceMines(first Point) {
	g.mustBeInBounds(first)
	if g.started {
		return
	}
	g.mines = g.params.placeMines(first, g.rnd)
	g.started = true
}

// panics [AssertionError]
func (g *Game) AdjacentMineCount(p Point) int {
	count := 0
	for _, n := range g.Neighbors(p) {
		if g.mines.Has(n) {
			count++
		}
	}
	return count
}

// Reveal opens the cell at p.
//
// panics [AssertionError]
func (g *Game) Reveal(p Point) Outcome {
	g.mustBeInBounds(p)
	if g.over || g.revealed.Has(p) || g.flagged.Has(p) {
		return noAction
	}

	if !g.started {
		g.PlaceMines(p)
	}

	if g.mines.Has(p) {
		/*
		 * The losing cell is remembered as the trigger and never joins
		 * the revealed set. Everything gets redrawn.
		 */
		g.over = true
		g.trigger = &p
		Log.WithField("point", p).Debug("mine hit")
		return Outcome{Kind: GameOver, Affected: g.params.points()}
	}

	opened := g.floodFill(p)

	if g.revealed.Size() == g.params.SafeCellCount() {
		g.won = true
		g.over = true
		Log.WithField("revealed", g.revealed.Size()).Debug("all safe cells revealed")
		return Outcome{Kind: Victory, Affected: opened}
	}

	return Outcome{Kind: Reveal, Affected: opened}
}

// floodFill reveals start and cascades through every connected cell with no
// adjacent mines. It returns the newly revealed cells in visiting order.
func (g *Game) floodFill(start Point) []Point {
	opened := make([]Point, 0)
	todo := queue.New[Point]()
	todo.Enqueue(start)

	for !todo.Empty() {
		p := todo.Dequeue()

		/*
		 * Zero cells cannot border a mine, so the mine check only
		 * matters if something upstream is broken.
		 */
		if g.revealed.Has(p) || g.mines.Has(p) {
			continue
		}

		g.revealed.Put(p)
		opened = append(opened, p)

		if g.AdjacentMineCount(p) != 0 {
			continue
		}
		for _, n := range g.params.neighbors(p) {
			if !g.revealed.Has(n) {
				todo.Enqueue(n)
			}
		}
	}

	return opened
}

// ToggleFlag places or removes a flag on a hidden cell.
//
// panics [AssertionError]
func (g *Game) ToggleFlag(p Point) Outcome {
	g.mustBeInBounds(p)
	if g.over || g.revealed.Has(p) {
		return noAction
	}

	if g.flagged.Has(p) {
		g.flagged.Remove(p)
	} else {
		g.flagged.Put(p)
	}

	return Outcome{Kind: FlagToggle, Affected: []Point{p}}
}

// DisplayState derives how the cell at p should be drawn right now. Once the
// game is over mines take priority over flags, but a flag on a safe unopened
// cell stays a flag.
//
// panics [AssertionError]
func (g *Game) DisplayState(p Point) CellDisplay {
	g.mustBeInBounds(p)

	if g.over {
		if g.mines.Has(p) {
			return CellDisplay{Kind: Mine, Triggered: g.isTrigger(p)}
		}
		if g.revealed.Has(p) {
			return CellDisplay{Kind: Number, MineCount: g.AdjacentMineCount(p)}
		}
	}

	switch {
	case g.flagged.Has(p):
		return CellDisplay{Kind: Flag}
	case g.revealed.Has(p):
		return CellDisplay{Kind: Number, MineCount: g.AdjacentMineCount(p)}
	default:
		return CellDisplay{Kind: Hidden}
	}
}

// EndOfGameMineStates returns the display state of every mine, for painting
// them in one pass when the game ends.
func (g *Game) EndOfGameMineStates() map[Point]CellDisplay {
	states := make(map[Point]CellDisplay, g.mines.Size())
	g.mines.Each(func(p Point) {
		states[p] = CellDisplay{Kind: Mine, Triggered: g.isTrigger(p)}
	})
	return states
}

func (g *Game) isTrigger(p Point) bool {
	return g.trigger != nil && *g.trigger == p
}
