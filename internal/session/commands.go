package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
)

var ErrUnknownCommand = errors.New("unknown command")

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"o": 2, // open <row> <col>
	"f": 2, // flag <row> <col>
	"n": 0, // new game, same settings
	"s": 3, // settings <rows> <cols> <mines>
	"p": 0, // print
}

const usage = `commands:
  o <row> <col>            open a cell
  f <row> <col>            toggle a flag
  n                        restart with the same settings
  s <rows> <cols> <mines>  start over with new settings
  p                        print the board`

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseInts(strs []string) ([]int, error) {
	ints := make([]int, len(strs))
	for i, s := range strs {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("argument %d must be an int", i+1)
		}
		ints[i] = n
	}
	return ints, nil
}

// Executor plays a session through a line-based text protocol and writes the
// board after every move.
type Executor struct {
	s *Session
	w io.Writer
}

func NewExecutor(s *Session, w io.Writer) *Executor {
	return &Executor{s: s, w: w}
}

// Execute runs every command of a possibly multi-line message. Commands after
// a game-ending move are dropped.
func (e *Executor) Execute(message string) error {
	for _, line := range byPiece(strings.TrimSpace(message), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		upd, err := e.execute(line)
		if err != nil {
			return fmt.Errorf("%q: %w", line, err)
		}
		if upd.Outcome.Terminal() {
			break
		}
	}
	return nil
}

func (e *Executor) execute(c string) (upd Update, err error) {
	parts := strings.Fields(c)
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return upd, ErrUnknownCommand
	}
	if nargs != len(parts)-1 {
		return upd, errors.New("invalid number of arguments")
	}
	args, err := parseInts(parts[1:])
	if err != nil {
		return upd, err
	}

	switch parts[0] {
	case "o":
		upd, err = e.s.Open(mines.Point{Row: args[0], Col: args[1]})
	case "f":
		upd, err = e.s.Flag(mines.Point{Row: args[0], Col: args[1]})
	case "n":
		e.s.Restart()
	case "s":
		err = e.s.Reconfigure(config.Settings{Rows: args[0], Cols: args[1], Mines: args[2]})
	}
	if err != nil {
		return upd, err
	}

	e.print(upd.Outcome)
	return upd, nil
}

func (e *Executor) print(out mines.Outcome) {
	g := e.s.Game()
	fmt.Fprint(e.w, g.String())

	switch out.Kind {
	case mines.GameOver:
		trigger, _ := g.Trigger()
		fmt.Fprintf(e.w, "BOOM! mine at %s. n to play again, s to change settings\n", trigger)
	case mines.Victory:
		fmt.Fprintln(e.w, "you win! n to play again, s to change settings")
	default:
		fmt.Fprintf(e.w, "%s | %d/%d flags\n", g.Status(), g.FlagCount(), g.Params().MineCount)
	}
}

// Run reads commands from r until EOF. Bad commands are reported on the
// writer and do not stop the loop.
func (e *Executor) Run(r io.Reader) error {
	fmt.Fprintln(e.w, usage)
	fmt.Fprintf(e.w, "new game: %s\n", e.s.Settings())
	e.print(mines.Outcome{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := e.Execute(scanner.Text()); err != nil {
			Log.WithError(err).Debug("command failed")
			fmt.Fprintf(e.w, "error: %s\n", err)
		}
	}
	return scanner.Err()
}
