package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/randomlogo/internal/palette"
	"github.com/san-kum/randomlogo/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	// Colors holds the color of every character cell.
	Colors [][]palette.RGB
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]palette.RGB, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]palette.RGB, w)
	}
	c.Clear()
	return c
}

// Set sets a dot at (x, y) in sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = palette.RGB{}
		}
	}
}

// Dots counts the set dots.
func (c *Canvas) Dots() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := int(r - brailleBlank); bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Styled renders the canvas with every character in its cell color.
func (c *Canvas) Styled() string {
	var b strings.Builder
	for row := range c.Grid {
		for col, r := range c.Grid[row] {
			if r == brailleBlank {
				b.WriteRune(r)
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Colors[row][col].Hex()))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FromAccumulator downsamples acc onto a cols x rows canvas. A dot is set
// when any cell of its block was visited; a character takes the mean color
// of the cells under it. cols and rows are raised to at least 1.
func FromAccumulator(acc *render.Accumulator, cols, rows int) *Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	c := NewCanvas(cols, rows)
	w, h := acc.Width(), acc.Height()
	dotsX, dotsY := cols*2, rows*4
	sums := make([][4]uint64, cols*rows)

	for y := 0; y < h; y++ {
		dy := y * dotsY / h
		for x := 0; x < w; x++ {
			cell := acc.At(x, y)
			if cell.Count == 0 {
				continue
			}
			dx := x * dotsX / w
			c.Set(dx, dy)
			s := &sums[(dy/4)*cols+dx/2]
			s[0] += cell.Count
			s[1] += cell.R
			s[2] += cell.G
			s[3] += cell.B
		}
	}

	for i, s := range sums {
		if s[0] == 0 {
			continue
		}
		c.Colors[i/cols][i%cols] = palette.RGB{R: uint8(s[1] / s[0]), G: uint8(s[2] / s[0]), B: uint8(s[3] / s[0])}
	}
	return c
}
