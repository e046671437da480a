package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

// modeItems are the entries of the first menu screen.
var modeItems = []string{
	"Campaign (10 levels)",
	"Endless Mode",
	"Select Level...",
}

// Selection holds the user's choice from the mode menu.
type Selection struct {
	Mode  t2048.Mode
	Level int // 0 = start from beginning, 1-10 = specific level
}

// GameID returns the registry ID of the selected mode.
func (s Selection) GameID() string {
	if s.Mode == t2048.ModeEndless {
		return "2048_endless"
	}
	return "2048"
}

// ModeModel lets users choose game mode and starting level.
type ModeModel struct {
	cursor        int
	inLevelSelect bool
	levels        table.Model
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     Selection
	choosing      bool
	quitting      bool
	back          bool
}

// NewModeModel creates a new mode selection model. The level table shows
// targets for a size×size board.
func NewModeModel(width, height, size int) ModeModel {
	return ModeModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		levels:    newLevelTable(height, size),
		choosing:  true,
	}
}

// newLevelTable lists the campaign levels with their targets.
func newLevelTable(height, size int) table.Model {
	if size < t2048.MinBoardSize {
		size = core.DefaultBoardSize
	}

	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Level", Width: 20},
		{Title: "Target", Width: 8},
		{Title: "4s", Width: 5},
	}

	rows := make([]table.Row, 0, t2048.LevelCount())
	for i := range t2048.LevelCount() {
		lvl := t2048.GetLevel(i)
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", lvl.ID),
			lvl.Name,
			fmt.Sprintf("%d", lvl.TargetFor(size)),
			fmt.Sprintf("%.0f%%", lvl.Spawn4*100),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(max(height-8, 3), len(rows)+1)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the model.
func (m ModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inLevelSelect {
			return m.handleLevelSelectKey(msg)
		}
		return m.handleModeSelectKey(m.keyMapper.MapKeyToMenuAction(msg))
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m ModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(modeItems)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			return m.choose(Selection{Mode: t2048.ModeCampaign})
		case 1:
			return m.choose(Selection{Mode: t2048.ModeEndless})
		case 2:
			m.inLevelSelect = true
			m.levels.GotoTop()
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m ModeModel) handleLevelSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionSelect:
		return m.choose(Selection{
			Mode:  t2048.ModeCampaign,
			Level: m.levels.Cursor() + 1, // 1-indexed
		})
	case MenuActionBack:
		m.inLevelSelect = false
		return m, nil
	}

	var cmd tea.Cmd
	m.levels, cmd = m.levels.Update(msg)
	return m, cmd
}

func (m ModeModel) choose(sel Selection) (tea.Model, tea.Cmd) {
	m.choosing = false
	m.selection = sel
	return m, tea.Quit
}

// View renders the mode/level selection.
func (m ModeModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m ModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("2 0 4 8", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	for i, mode := range modeItems {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+mode, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width)))

	return b.String()
}

func (m ModeModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("SELECT LEVEL", m.width)))
	b.WriteString("\n\n")
	b.WriteString(m.levels.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/↓: Navigate  |  Enter: Select  |  Esc: Back  |  Q: Quit"))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m ModeModel) Selected() *Selection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m ModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ModeModel) WantsBack() bool {
	return m.back
}

// RunModeSelector runs the mode selection and returns the selection,
// or nil when the user left without choosing.
func RunModeSelector(cfg core.RuntimeConfig) (*Selection, error) {
	p := tea.NewProgram(
		NewModeModel(cfg.ScreenW, cfg.ScreenH, cfg.BoardSize),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(ModeModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
