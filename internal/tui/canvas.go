package tui

import (
	"strings"

	"github.com/SzymonKubica/game-console-sub000/internal/console"
	"github.com/SzymonKubica/game-console-sub000/internal/grid"
)

// Canvas is an in-memory console.Display. The controller paints into it and
// View renders it on every frame.
type Canvas struct {
	rows, cols int
	cells      []console.Color
}

func NewCanvas(rows, cols int) *Canvas {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Canvas{rows: rows, cols: cols, cells: make([]console.Color, rows*cols)}
}

func (c *Canvas) Initialize() error      { return nil }
func (c *Canvas) Dimensions() (int, int) { return c.rows, c.cols }

func (c *Canvas) Clear(col console.Color) {
	for i := range c.cells {
		c.cells[i] = col
	}
}

// PaintCell ignores positions outside the canvas; the board may be pinned
// larger than the terminal.
func (c *Canvas) PaintCell(p grid.Position, col console.Color) {
	if p.Row < 0 || p.Row >= c.rows || p.Col < 0 || p.Col >= c.cols {
		return
	}
	c.cells[p.Row*c.cols+p.Col] = col
}

func (c *Canvas) At(p grid.Position) console.Color {
	return c.cells[p.Row*c.cols+p.Col]
}

// Render draws the canvas, styling runs of equal color together.
func (c *Canvas) Render(t Theme, indent string) string {
	var b strings.Builder
	for r := 0; r < c.rows; r++ {
		b.WriteString(indent)
		row := c.cells[r*c.cols : (r+1)*c.cols]
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end] == row[start] {
				end++
			}
			b.WriteString(t.style(row[start]).Render(strings.Repeat(glyph(row[start]), end-start)))
			start = end
		}
		b.WriteString("\n")
	}
	return b.String()
}
