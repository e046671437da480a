package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// helpHeight is the number of rows reserved under the game for key help.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a game.
// The game only advances on key presses; there is no tick loop.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	logger    *log.Logger
	gameState core.GameState
	quitting  bool
	fixedSeed bool // Restart with the same seed when one was given
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fixedSeed := cfg.Seed != 0
	if !fixedSeed {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
		logger:    logger,
		fixedSeed: fixedSeed,
	}
}

// gameHeight is the screen height left to the game after the help line.
func gameHeight(h int) int {
	return max(h-helpHeight, 0)
}

// Init starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	m.logger.Debug("game started", "game", m.game.ID(), "seed", m.config.Seed)
	return nil
}

// gameConfig is the runtime config with the help line taken off.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	}

	return m, nil
}

// handleKey maps the key to an input frame and steps the game once.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	frame := core.NewInputFrame()
	// Back leaves the game too; there is no menu to return to
	if m.keyMapper.MapKeyToFrame(msg, &frame) || frame.Has(core.ActionBack) {
		frame.Set(core.ActionQuit)
		m.game.Step(frame)
		m.logger.Debug("quit", "game", m.game.ID(), "score", m.game.State().Score)
		m.quitting = true
		return m, tea.Quit
	}

	if frame.Empty() {
		return m, nil
	}

	if frame.Has(core.ActionRestart) {
		m.restart()
		return m, nil
	}

	result := m.game.Step(frame)
	if result.State.GameOver && !m.gameState.GameOver {
		m.logger.Info("game over", "game", m.game.ID(), "score", result.State.Score)
	}
	m.gameState = result.State

	return m, nil
}

// restart begins a new game, with a fresh seed unless one was fixed.
func (m *Model) restart() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.gameConfig())
	m.gameState = m.game.State()
	m.logger.Debug("game restarted", "game", m.game.ID(), "seed", m.config.Seed)
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	// Games that can re-layout keep their board; others start over
	if r, ok := m.game.(interface{ Resize(w, h int) }); ok {
		r.Resize(msg.Width, gameHeight(msg.Height))
	} else {
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
	}

	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys))
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
