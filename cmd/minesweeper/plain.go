package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vancomm/minesweeper/internal/session"
)

func init() {
	plainCmd := &cobra.Command{
		Use:   "plain",
		Short: "Play with typed commands instead of the terminal ui",
		Long: `Play with typed commands read line by line from standard input.
The board is printed after every move.

Examples:
  minesweeper plain
  printf 'o 4 4\nf 0 0\n' | minesweeper plain --preset beginner`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := setup()
			if err != nil {
				return err
			}
			return session.NewExecutor(s, os.Stdout).Run(os.Stdin)
		},
	}

	rootCmd.AddCommand(plainCmd)
}
