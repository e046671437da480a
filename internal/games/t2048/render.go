package t2048

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 4 // Title, mode, score and level rows
)

// boardExtent returns the drawn width and height of a size×size grid.
func boardExtent(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// tileColor maps a tile value to its display color.
func tileColor(v uint) core.Color {
	switch v {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorBrightWhite
	case 8:
		return core.ColorYellow
	case 16:
		return core.ColorOrange
	case 32:
		return core.ColorRed
	case 64:
		return core.ColorBrightRed
	case 128:
		return core.ColorBrightYellow
	case 256:
		return core.ColorGreen
	case 512:
		return core.ColorBrightGreen
	case 1024:
		return core.ColorCyan
	case 2048:
		return core.ColorBrightCyan
	}
	return core.ColorBrightMagenta
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardExtent(g.board.Size())
	area := core.NewRect((g.screenW-boardW)/2, hudHeight+1, boardW, boardH)

	g.renderHUD(dst, area)
	g.renderBoard(dst, area.X, area.Y)
	g.renderOverlays(dst, area)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, mode, score and progress, one per row above
// the board.
func (g *Game) renderHUD(dst *core.Screen, area core.Rect) {
	drawCentered(dst, area, 0, "2048", core.ColorBrightYellow)

	modeStr := "Campaign"
	if g.mode == ModeEndless {
		modeStr = "Endless"
	}
	drawCentered(dst, area, 1, modeStr, core.ColorGray)
	drawCentered(dst, area, 2, fmt.Sprintf("Score: %d", g.board.Score()), core.ColorDefault)

	var infoStr string
	if g.mode == ModeCampaign {
		infoStr = fmt.Sprintf("Level %d/%d  Target: %d", g.levelIndex+1, LevelCount(), g.currentTarget)
	} else {
		infoStr = fmt.Sprintf("Max: %d", g.board.MaxTile())
	}
	drawCentered(dst, area, 3, infoStr, core.ColorDefault)
}

// drawCentered draws text on row y centered over area's columns. Text wider
// than the screen starts at column 0.
func drawCentered(dst *core.Screen, area core.Rect, y int, text string, c core.Color) {
	n := utf8.RuneCountInString(text)
	r := core.CenteredRect(core.NewRect(area.X, y, area.W, 1), n, 1)
	dst.DrawTextColored(core.Clamp(r.X, 0, max(dst.Width()-n, 0)), y, text, c)
}

// renderBoard draws the grid lines and the tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	n := g.board.Size()

	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.SetColored(px, py, gridCorner(x, y, n), core.ColorGray)
			if x < n {
				dst.DrawHLine(px+1, py, cellWidth-1, '─', core.ColorGray)
			}
			if y < n {
				dst.DrawVLine(px, py+1, cellHeight-1, '│', core.ColorGray)
			}
		}
	}

	for y := range n {
		for x := range n {
			val := g.board.Value(y, x)
			if val == 0 {
				continue
			}

			valStr := strconv.FormatUint(uint64(val), 10)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)
			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, tileColor(val))
		}
	}
}

func gridCorner(x, y, n int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == n:
		return '┐'
	case y == n && x == 0:
		return '└'
	case y == n && x == n:
		return '┘'
	case y == 0:
		return '┬'
	case y == n:
		return '┴'
	case x == 0:
		return '├'
	case x == n:
		return '┤'
	}
	return '┼'
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, area core.Rect) {
	switch {
	case g.paused:
		drawOverlay(dst, area, "PAUSED", "Press P to resume")
	case g.levelCleared:
		targetStr := fmt.Sprintf("Target %d reached!", g.currentTarget)
		if g.levelIndex >= LevelCount()-1 {
			drawOverlay(dst, area, targetStr, "Final level complete!", "Press Enter")
		} else {
			nextStr := fmt.Sprintf("Next: Level %d", g.levelIndex+2)
			drawOverlay(dst, area, targetStr, nextStr, "Press Enter")
		}
	case g.won:
		drawOverlay(dst, area, "CAMPAIGN COMPLETE!", fmt.Sprintf("Score: %d", g.board.Score()), "Press R to restart")
	case g.gameOver:
		drawOverlay(dst, area, "GAME OVER", fmt.Sprintf("Score: %d", g.board.Score()), "Press R to restart")
	}
}

// drawOverlay draws a text box centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.CenteredRect(area, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(box.X+2+(maxLen-len(line))/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | P: Pause | R: Restart | Q/X: Quit"
}
