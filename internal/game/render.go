package game

import (
	"fmt"

	"github.com/velikanov/blockfall/internal/core"
	"github.com/velikanov/blockfall/internal/engine"
)

// Each field cell is drawn two runes wide so the board looks roughly
// square in a terminal font.
const cellWidth = 2

const (
	blockRune = '█'
	ghostRune = '░'
)

// Render draws the full frame: the walled field with the stack, ghost
// and active piece, plus the side panel with previews and stats.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	fieldX := 1
	fieldY := 1
	innerW := engine.FieldWidth * cellWidth

	dst.DrawBox(fieldX, fieldY, innerW+2, engine.FieldHeight+2)

	g.renderStack(dst, fieldX+1, fieldY+1)
	if g.tuning.ShowGhost && !g.state.GameOver {
		g.renderPiece(dst, fieldX+1, fieldY+1, g.state.Active.Ghost, ghostRune, core.ColorGray)
	}
	g.renderPiece(dst, fieldX+1, fieldY+1, g.state.Active.Piece, blockRune, core.ColorDefault)

	panelX := fieldX + innerW + 4
	g.renderPanel(dst, panelX, fieldY)

	switch {
	case g.state.GameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  (R to restart)", g.state.Metrics.Score))
	case g.state.Paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderStack draws the locked cells of the play field.
func (g *Game) renderStack(dst *core.Screen, ox, oy int) {
	for y, row := range g.state.Field.Grid {
		for x, cell := range row {
			if !cell.Filled {
				continue
			}
			for i := 0; i < cellWidth; i++ {
				dst.SetColored(ox+x*cellWidth+i, oy+y, blockRune, cell.Color)
			}
		}
	}
}

// renderPiece draws a tetromino in field coordinates. Cells above the
// field top are clipped. A zero color falls back to the cell's own.
func (g *Game) renderPiece(dst *core.Screen, ox, oy int, p engine.Tetromino, r rune, override core.Color) {
	for y, row := range p.Grid {
		for x, cell := range row {
			if !cell.Filled {
				continue
			}
			at := p.Pos.Add(core.Pos{X: x, Y: y})
			if at.Y < 0 {
				continue
			}
			color := cell.Color
			if override != core.ColorDefault {
				color = override
			}
			for i := 0; i < cellWidth; i++ {
				dst.SetColored(ox+at.X*cellWidth+i, oy+at.Y, r, color)
			}
		}
	}
}

// renderPanel draws the next/hold previews and the session stats.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	m := g.state.Metrics

	dst.DrawText(x, y, "NEXT")
	g.renderPreview(dst, x, y+1, g.state.Next, true)

	dst.DrawText(x, y+6, "HOLD")
	if g.state.Hold.Occupied {
		g.renderPreview(dst, x, y+7, g.state.Hold.Piece, !g.state.Hold.Used)
	}

	statsY := y + 12
	dst.DrawText(x, statsY, fmt.Sprintf("Score  %d", m.Score))
	dst.DrawText(x, statsY+1, fmt.Sprintf("Best   %d", core.Max(m.HiScore, m.Score)))
	dst.DrawText(x, statsY+2, fmt.Sprintf("Level  %d", m.Level))
	dst.DrawText(x, statsY+3, fmt.Sprintf("Lines  %d", m.RowsCleared))
	dst.DrawText(x, statsY+4, fmt.Sprintf("Combo  %d", m.Combo))
	dst.DrawText(x, statsY+5, fmt.Sprintf("Time   %s", formatClock(m.CurrentMs-m.StartMs)))
	if m.ClearAction != "" {
		dst.DrawText(x, statsY+7, m.ClearAction)
	}
}

// renderPreview draws a small piece preview at its natural shape size.
// A dimmed preview marks a hold slot that cannot be used yet.
func (g *Game) renderPreview(dst *core.Screen, x, y int, p engine.Tetromino, bright bool) {
	for py, row := range p.Grid {
		for px, cell := range row {
			if !cell.Filled {
				continue
			}
			r := blockRune
			c := cell.Color
			if !bright {
				r = ghostRune
				c = core.ColorGray
			}
			for i := 0; i < cellWidth; i++ {
				dst.SetColored(x+px*cellWidth+i, y+py, r, c)
			}
		}
	}
}

// renderOverlay draws a centered two-line message box over the frame.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := core.Max(len(line1), len(line2))
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ')
	dst.DrawBox(boxX, boxY, boxW, boxH)
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}

// formatClock renders milliseconds as m:ss.
func formatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
