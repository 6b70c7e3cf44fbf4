package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
	"github.com/vancomm/minesweeper/internal/tui"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "minesweeper",
	Short: "Play Minesweeper in the terminal",
	Long: `Play Minesweeper in the terminal with the mouse or the keyboard.

The first cell opened is never a mine, nor is any of its neighbors.

Examples:
  minesweeper
  minesweeper --preset expert
  minesweeper --rows 12 --cols 20 --mines 30
  MINES_PRESET=intermediate minesweeper`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (yaml, toml or json)")
	flags.Int("rows", config.Beginner.Rows, fmt.Sprintf("board rows %d-%d", config.MinRows, config.MaxRows))
	flags.Int("cols", config.Beginner.Cols, fmt.Sprintf("board columns %d-%d", config.MinCols, config.MaxCols))
	flags.Int("mines", config.Beginner.Mines, "number of mines")
	flags.StringP("preset", "p", "", "beginner, intermediate, expert or rows:cols:mines")
	flags.String("log-file", config.DefaultLogFile, "log file, empty to disable logging")
	flags.String("log-level", "info", "log level")

	for _, name := range []string{"config", "rows", "cols", "mines", "preset", "log-file", "log-level"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// setup loads the configuration, wires logging and starts a session.
func setup() (*session.Session, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	if err := config.SetupLogging(cfg, log, mines.Log, session.Log, tui.Log); err != nil {
		return nil, err
	}
	log.WithFields(cfg.Fields()).Info("configuration loaded")

	return session.New(cfg.Settings, session.NewRand())
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := setup()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("unable to open terminal: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := tui.New(screen, s).Run(ctx); err != nil {
		log.WithError(err).Error("terminal ui failed")
		return err
	}
	return nil
}
