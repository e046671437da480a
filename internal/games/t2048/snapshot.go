package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Mode    string // "campaign" or "endless"
	Level   int    // Current level (1-indexed for display)
	Target  uint   // Current target tile value, 0 in endless
	Score   uint64
	Moves   int
	Size    int
	Board   [][]uint
	MaxTile uint
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Mode:    string(g.mode),
		Level:   g.levelIndex + 1,
		Target:  g.currentTarget,
		Score:   g.board.Score(),
		Moves:   g.moves,
		Size:    g.board.Size(),
		Board:   g.board.Values(),
		MaxTile: g.board.MaxTile(),
		State:   state,
	}
}
