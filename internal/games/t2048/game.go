package t2048

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Game adapts a Board to the registry.Game contract: it maps input frames
// to board commands and layers campaign targets on top of game-over.
type Game struct {
	mode   Mode
	rng    *rand.Rand
	logger *log.Logger

	board         *Board
	difficulty    *config.DifficultyManager
	moves         int
	levelIndex    int  // Current level (0-indexed)
	currentTarget uint // Current tile target, 0 in endless
	spawn4Prob    float64

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver     bool
	levelCleared bool
	won          bool
	paused       bool
	tooSmall     bool
	quit         bool
	lastOutcome  Outcome
}

// Package-level settings, applied on the next Reset.
var (
	selectedStartLevel int
	settings           = config.DefaultConfig()
	logger             = log.New(io.Discard)
)

// SetStartLevel sets the starting level (1-10). 0 means start from beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// Configure sets board and spawn settings for games reset afterwards.
func Configure(cfg config.Config) {
	settings = cfg
}

// SetLogger sets the logger used by games reset afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates a new campaign mode 2048 game.
func New() *Game {
	return &Game{
		mode: ModeCampaign,
	}
}

// NewEndless creates a new endless mode 2048 game.
func NewEndless() *Game {
	return &Game{
		mode: ModeEndless,
	}
}

func init() {
	registry.Register("2048", func() registry.Game {
		return New()
	})
	registry.Register("2048_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "2048_endless"
	}
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Board returns the live board for read access.
func (g *Game) Board() *Board {
	return g.board
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.logger = logger.With("game", g.ID())
	g.moves = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.quit = false
	g.lastOutcome = Unchanged
	g.difficulty = config.NewDifficultyManager(settings.Difficulty)

	// Apply selected start level (campaign only)
	if g.mode == ModeCampaign && selectedStartLevel > 0 && selectedStartLevel <= LevelCount() {
		g.levelIndex = selectedStartLevel - 1
		selectedStartLevel = 0 // Reset after use
	} else {
		g.levelIndex = 0
	}

	size := cfg.BoardSize
	if size == 0 {
		size = settings.Board.Size
	}
	board, err := NewBoard(size,
		WithRand(g.rng),
		WithSpawn4Probability(g.levelSpawn4()),
		WithInitialTiles(settings.Spawn.InitialTiles),
	)
	if err != nil {
		g.logger.Warn("falling back to default board size", "size", size, "error", err)
		board, _ = NewBoard(core.DefaultBoardSize,
			WithRand(g.rng),
			WithSpawn4Probability(g.levelSpawn4()),
			WithInitialTiles(settings.Spawn.InitialTiles),
		)
	}
	g.board = board
	g.loadLevel()

	g.checkScreenSize()

	// A crowded opening can leave no move at all
	g.gameOver = g.board.IsGameOver()
	g.logger.Debug("game reset", "size", g.board.Size(), "level", g.levelIndex+1, "seed", cfg.Seed, "game_over", g.gameOver)
}

// loadLevel sets up the current level parameters for the live board.
func (g *Game) loadLevel() {
	g.spawn4Prob = g.levelSpawn4()
	if g.mode == ModeEndless {
		g.currentTarget = 0 // No target in endless
		return
	}
	g.currentTarget = g.level().TargetFor(g.board.Size())
}

// level returns the current campaign level, or the last one when the index
// has run past the table.
func (g *Game) level() *Level {
	if lvl := GetLevel(g.levelIndex); lvl != nil {
		return lvl
	}
	return GetLevel(LevelCount() - 1)
}

// levelSpawn4 returns the 4-spawn odds to start the current level with.
// Campaign levels move their own odds by the configured base's distance
// from the default, so difficulty presets apply to every level.
func (g *Game) levelSpawn4() float64 {
	base := settings.Spawn.FourProbability
	if g.mode == ModeEndless {
		return base
	}
	p := g.level().Spawn4 + base - DefaultSpawn4Probability
	return min(max(p, 0), 1)
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardExtent(g.board.Size())
	g.tooSmall = g.screenW < boardW+2 || g.screenH < boardH+hudHeight+2
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step applies one input frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		g.quit = true
		return core.StepResult{State: g.State()}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Level cleared overlay waits for confirmation
	if g.levelCleared {
		if in.Has(core.ActionConfirm) {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFromInput(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	changed := g.processMove(dir)
	return core.StepResult{State: g.State(), Changed: changed}
}

// directionFromInput picks the first move action in the frame.
func directionFromInput(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// processMove handles a move in the given direction.
func (g *Game) processMove(dir Direction) bool {
	g.lastOutcome = g.board.Update(dir)
	if g.lastOutcome != Changed {
		return false
	}
	g.moves++

	// Endless games harden their spawn odds as they go
	if g.mode == ModeEndless && g.difficulty.IsEnabled() {
		g.spawn4Prob = g.difficulty.FourProbability(settings.Spawn.FourProbability, int(g.board.Score()), g.moves)
		g.board.SetSpawn4Probability(g.spawn4Prob)
	}

	if g.mode == ModeCampaign && g.currentTarget > 0 && g.board.MaxTile() >= g.currentTarget {
		g.levelCleared = true
		g.logger.Info("level cleared", "level", g.levelIndex+1, "target", g.currentTarget, "score", g.board.Score())
		return true
	}

	if g.board.IsGameOver() {
		g.gameOver = true
		g.logger.Info("game over", "score", g.board.Score(), "max_tile", g.board.MaxTile(), "moves", g.moves)
	}
	return true
}

// advanceLevel moves to the next level, keeping board and score.
func (g *Game) advanceLevel() {
	g.levelCleared = false

	if g.levelIndex >= LevelCount()-1 {
		g.won = true
		g.logger.Info("campaign complete", "score", g.board.Score())
		return
	}

	g.levelIndex++
	g.loadLevel()
	g.board.SetSpawn4Probability(g.spawn4Prob)

	// The cleared board may already be stuck
	if g.board.IsGameOver() {
		g.gameOver = true
	}
}

// LastOutcome returns the board outcome of the most recent move.
func (g *Game) LastOutcome() Outcome {
	return g.lastOutcome
}

// QuitRequested reports whether the player asked to leave.
func (g *Game) QuitRequested() bool {
	return g.quit
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    int(g.board.Score()),
		GameOver: g.gameOver || g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
		Quit:     g.quit,
	}
}
