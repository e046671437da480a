package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

func newTestModel(t *testing.T) (Model, *t2048.Game) {
	t.Helper()

	game := t2048.NewEndless()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, BoardSize: 4, Seed: 99}
	m := NewModel(game, cfg, nil)
	m.Init()
	return m, game
}

func sendKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelQuit(t *testing.T) {
	m, game := newTestModel(t)

	m, cmd := sendKey(m, runeKey("x"))
	if cmd == nil {
		t.Fatal("Quit key should return a command")
	}
	if !m.quitting || !game.QuitRequested() {
		t.Error("Quit key should stop the model and flag the game")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestModelRestartKeepsFixedSeed(t *testing.T) {
	m, game := newTestModel(t)
	initial := game.Board().Values()

	for _, k := range []string{"a", "w", "d", "s"} {
		m, _ = sendKey(m, runeKey(k))
	}
	m, _ = sendKey(m, runeKey("r"))

	after := game.Board().Values()
	for r := range initial {
		for c := range initial[r] {
			if initial[r][c] != after[r][c] {
				t.Fatalf("Restart with a fixed seed should replay the same board:\n%v\nvs\n%v", initial, after)
			}
		}
	}
	if m.gameState.Score != 0 {
		t.Errorf("Score after restart = %d, want 0", m.gameState.Score)
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t)

	out := m.View()
	for _, want := range []string{"Score: 0", "Endless", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestModelResizeKeepsBoard(t *testing.T) {
	m, game := newTestModel(t)

	for _, k := range []string{"a", "s", "d", "w"} {
		m, _ = sendKey(m, runeKey(k))
	}

	before := game.Board().Values()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	after := game.Board().Values()
	for r := range before {
		for c := range before[r] {
			if before[r][c] != after[r][c] {
				t.Fatal("Resize should not reset a game in progress")
			}
		}
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30-helpHeight {
		t.Errorf("Screen = %dx%d, want 100x%d", m.screen.Width(), m.screen.Height(), 30-helpHeight)
	}
}

func TestModeModelSelection(t *testing.T) {
	m := NewModeModel(80, 24, 4)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	mm := next.(ModeModel)

	if cmd == nil {
		t.Error("Choosing a mode should quit the selector")
	}
	sel := mm.Selected()
	if sel == nil || sel.Mode != t2048.ModeEndless || sel.GameID() != "2048_endless" {
		t.Errorf("Selected() = %+v, want endless", sel)
	}
}

func TestModeModelLevelSelect(t *testing.T) {
	var next tea.Model = NewModeModel(80, 24, 4)

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !next.(ModeModel).inLevelSelect {
		t.Fatal("Third entry should open level select")
	}
	if !strings.Contains(next.View(), "Warm-up") {
		t.Error("Level table should list level names")
	}

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sel := next.(ModeModel).Selected()
	if sel == nil || sel.Mode != t2048.ModeCampaign || sel.Level != 3 {
		t.Errorf("Selected() = %+v, want campaign level 3", sel)
	}
	if sel.GameID() != "2048" {
		t.Errorf("GameID() = %s, want 2048", sel.GameID())
	}
}

func TestModeModelBack(t *testing.T) {
	var next tea.Model = NewModeModel(80, 24, 4)
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})

	mm := next.(ModeModel)
	if !mm.WantsBack() || mm.Selected() != nil {
		t.Error("Esc should leave without a selection")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColored(2, 0, "cd", core.ColorRed)
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen produced %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("Line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "xyz") {
		t.Errorf("Line 1 = %q", lines[1])
	}
}
