package main

import (
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/console"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Play at a line prompt",
	Long: `Play with typed commands instead of the full-screen interface.

Type one letter and press enter:
  W - Up     A - Left
  S - Down   D - Right
  X - Exit

After game over you are asked whether to play again.`,
	Args: cobra.NoArgs,
	RunE: runConsole,
}

func runConsole(cmd *cobra.Command, args []string) error {
	settings, logger, closeLog, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []t2048.Option{
		t2048.WithSpawn4Probability(settings.Spawn.FourProbability),
		t2048.WithInitialTiles(settings.Spawn.InitialTiles),
	}
	// One source for the whole session keeps seeded replays reproducible
	if flagSeed != 0 {
		opts = append(opts, t2048.WithRand(rand.New(rand.NewSource(flagSeed))))
	}

	newBoard := func() (*t2048.Board, error) {
		return t2048.NewBoard(settings.Board.Size, opts...)
	}

	return console.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), newBoard, logger).Run(cmd.Context())
}
