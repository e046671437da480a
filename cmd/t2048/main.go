// t2048 plays 2048 in the terminal.
//
// Usage:
//
//	t2048 play [mode]   - Play full screen (campaign or endless; menu if omitted)
//	t2048 console       - Play at a W/A/S/D line prompt
//	t2048 list          - List game modes and campaign levels
//	t2048 config        - Print the effective configuration
//
// Global flags:
//
//	--size <n>           - Board size (default from config: 4)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Custom config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	// Global flags
	flagSize       int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal",
	Long: `t2048 is the sliding tile puzzle 2048 for the terminal.

Slide the grid up, down, left or right. Equal tiles that collide merge
into one tile with their sum, which is added to your score. After every
move that changes the board a new 2 or 4 appears. The game ends when no
move can change the board.

Available commands:
  play     - Full-screen game with campaign and endless modes
  console  - Classic line prompt: type W, A, S or D and press enter
  list     - Show game modes and campaign levels
  config   - Print the effective configuration

Examples:
  t2048 play
  t2048 play endless --size 5
  t2048 console --seed 42
  t2048 config --difficulty hard`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagSize, "size", 0, "Board size N (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}
