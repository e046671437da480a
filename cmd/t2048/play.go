package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play full screen",
	Long: `Start the full-screen game.

Modes:
  campaign - Reach the target tile of each of the 10 levels
  endless  - Play until no move is left

Without a mode a menu lets you pick one, or a campaign start level.

Campaign targets scale with the board size. A --difficulty preset shifts
the 4-spawn odds of every campaign level; in endless mode it also sets how
the odds climb as the game goes on.

Controls:
  Arrows/WASD  - Slide tiles
  Enter        - Continue after a cleared level
  P            - Pause
  R            - Restart
  Q/X/Ctrl+C   - Quit

Examples:
  t2048 play
  t2048 play campaign --level 4
  t2048 play endless --difficulty hard`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(t2048.ModeCampaign), string(t2048.ModeEndless)},
	RunE:      runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign start level (1-10)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	// The alt screen owns the terminal, so logs only go to a file
	settings, logger, closeLog, err := setup(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		BoardSize: settings.Board.Size,
		Seed:      flagSeed,
	}

	var sel tui.Selection
	switch {
	case len(args) == 1:
		sel.Mode = t2048.Mode(args[0])
		if sel.Mode != t2048.ModeCampaign && sel.Mode != t2048.ModeEndless {
			return fmt.Errorf("unknown mode %q (want %s or %s)", args[0], t2048.ModeCampaign, t2048.ModeEndless)
		}
		sel.Level = flagLevel
	default:
		chosen, selErr := tui.RunModeSelector(cfg)
		if selErr != nil {
			return selErr
		}
		// User pressed back or quit
		if chosen == nil {
			return nil
		}
		sel = *chosen
	}

	if sel.Level < 0 || sel.Level > t2048.LevelCount() {
		return fmt.Errorf("level must be between 1 and %d, got %d", t2048.LevelCount(), sel.Level)
	}
	if sel.Level > 0 {
		t2048.SetStartLevel(sel.Level)
	}

	game, err := registry.Create(sel.GameID())
	if err != nil {
		return err
	}

	logger.Info("starting", "game", game.ID(), "size", cfg.BoardSize, "level", sel.Level)
	if err := tui.Run(game, cfg, logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
