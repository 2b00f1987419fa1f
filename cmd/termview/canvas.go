package main

import "math"

// densityRamp maps cell coverage to characters, sparse to dense.
var densityRamp = []rune(" .:-=+*#%@")

// Canvas accumulates scene pixels into terminal cells. Each cell covers
// cellW x cellH scene pixels.
type Canvas struct {
	cols, rows   int
	cellW, cellH float64
	perCell      float64 // Dots that make a cell fully dense

	density []float64
	glyph   []rune
	alpha   []float64
}

// NewCanvas creates a canvas of cols x rows cells.
func NewCanvas(cols, rows int, cellW, cellH, perCell float64) *Canvas {
	c := &Canvas{cellW: cellW, cellH: cellH, perCell: max(perCell, 1)}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell grid and clears it.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	n := c.cols * c.rows
	c.density = make([]float64, n)
	c.glyph = make([]rune, n)
	c.alpha = make([]float64, n)
}

// Size returns the grid size in cells.
func (c *Canvas) Size() (int, int) { return c.cols, c.rows }

// Viewport returns the scene size in pixels covered by the grid.
func (c *Canvas) Viewport() (int, int) {
	return int(float64(c.cols) * c.cellW), int(float64(c.rows) * c.cellH)
}

// Clear resets every cell.
func (c *Canvas) Clear() {
	clear(c.density)
	clear(c.glyph)
	clear(c.alpha)
}

// index returns the cell holding scene point (x, y).
func (c *Canvas) index(x, y float64) (int, bool) {
	if math.IsNaN(x) || math.IsNaN(y) || x < 0 || y < 0 {
		return 0, false
	}
	col, row := int(x/c.cellW), int(y/c.cellH)
	if col >= c.cols || row >= c.rows {
		return 0, false
	}
	return row*c.cols + col, true
}

// AddDot adds a particle of alpha in [0, 255] at (x, y).
func (c *Canvas) AddDot(x, y, alpha float64) {
	if i, ok := c.index(x, y); ok {
		c.density[i] += alpha / 255
	}
}

// SetGlyph places r at (x, y), keeping the more opaque glyph on collision.
func (c *Canvas) SetGlyph(x, y float64, r rune, alpha float64) {
	i, ok := c.index(x, y)
	if !ok || alpha <= c.alpha[i] {
		return
	}
	c.glyph[i] = r
	c.alpha[i] = alpha
}

// Empty reports whether the cell at (x, y) holds nothing yet. Points
// outside the grid are not empty.
func (c *Canvas) Empty(x, y float64) bool {
	i, ok := c.index(x, y)
	return ok && c.glyph[i] == 0 && c.density[i] == 0
}

// At returns the character for a cell and its intensity in [0, 1].
// Glyphs win over dots.
func (c *Canvas) At(col, row int) (rune, float64) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return ' ', 0
	}
	i := row*c.cols + col
	if c.glyph[i] != 0 {
		return c.glyph[i], min(c.alpha[i]/255, 1)
	}

	coverage := min(c.density[i]/c.perCell, 1)
	if coverage <= 0 {
		return ' ', 0
	}
	idx := int(math.Ceil(coverage * float64(len(densityRamp)-1)))
	return densityRamp[idx], coverage
}
