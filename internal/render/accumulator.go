package render

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/san-kum/randomlogo/internal/palette"
)

// Cell is one pixel's visit count and summed map colors.
type Cell struct {
	Count   uint64
	R, G, B uint64
}

// Mean returns the average color of the cell and false when it was never
// visited.
func (c Cell) Mean() (palette.RGB, bool) {
	if c.Count == 0 {
		return palette.RGB{}, false
	}
	return palette.RGB{
		R: uint8(c.R / c.Count),
		G: uint8(c.G / c.Count),
		B: uint8(c.B / c.Count),
	}, true
}

// Accumulator is a row-major height x width grid of cells.
type Accumulator struct {
	width, height int
	cells         []Cell
}

func NewAccumulator(width, height int) *Accumulator {
	return &Accumulator{width: width, height: height, cells: make([]Cell, width*height)}
}

func (a *Accumulator) Width() int  { return a.width }
func (a *Accumulator) Height() int { return a.height }

func (a *Accumulator) At(x, y int) Cell {
	return a.cells[y*a.width+x]
}

// Add records one visit of color c at (x, y).
func (a *Accumulator) Add(x, y int, c palette.RGB) {
	cell := &a.cells[y*a.width+x]
	cell.Count++
	cell.R += uint64(c.R)
	cell.G += uint64(c.G)
	cell.B += uint64(c.B)
}

func (a *Accumulator) inBounds(x, y int) bool {
	return x >= 0 && x < a.width && y >= 0 && y < a.height
}

// Merge adds other into a cell by cell.
func (a *Accumulator) Merge(other *Accumulator) error {
	if a.width != other.width || a.height != other.height {
		return fmt.Errorf("merge %dx%d into %dx%d", other.width, other.height, a.width, a.height)
	}
	for i, c := range other.cells {
		dst := &a.cells[i]
		dst.Count += c.Count
		dst.R += c.R
		dst.G += c.G
		dst.B += c.B
	}
	return nil
}

func (a *Accumulator) TotalCount() uint64 {
	var n uint64
	for _, c := range a.cells {
		n += c.Count
	}
	return n
}

func (a *Accumulator) MaxCount() uint64 {
	var m uint64
	for _, c := range a.cells {
		m = max(m, c.Count)
	}
	return m
}

// Visited counts the cells hit at least once.
func (a *Accumulator) Visited() int {
	n := 0
	for _, c := range a.cells {
		if c.Count > 0 {
			n++
		}
	}
	return n
}

func (a *Accumulator) Equal(other *Accumulator) bool {
	if a.width != other.width || a.height != other.height {
		return false
	}
	for i := range a.cells {
		if a.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// RowProfile returns the visit count of every row, top to bottom.
func (a *Accumulator) RowProfile() []float64 {
	out := make([]float64, a.height)
	for y := 0; y < a.height; y++ {
		for _, c := range a.cells[y*a.width : (y+1)*a.width] {
			out[y] += float64(c.Count)
		}
	}
	return out
}

// ColumnProfile returns the visit count of every column, left to right.
func (a *Accumulator) ColumnProfile() []float64 {
	out := make([]float64, a.width)
	for i, c := range a.cells {
		out[i%a.width] += float64(c.Count)
	}
	return out
}

var accMagic = [4]byte{'R', 'L', 'A', '1'}

const cellBytes = 32

var errBadEncoding = errors.New("render: malformed accumulator encoding")

// MarshalBinary encodes the accumulator as a magic, two little-endian uint32
// dimensions and four uint64 per cell.
func (a *Accumulator) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 12+len(a.cells)*cellBytes)
	buf = append(buf, accMagic[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(a.width))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(a.height))
	for _, c := range a.cells {
		buf = binary.LittleEndian.AppendUint64(buf, c.Count)
		buf = binary.LittleEndian.AppendUint64(buf, c.R)
		buf = binary.LittleEndian.AppendUint64(buf, c.G)
		buf = binary.LittleEndian.AppendUint64(buf, c.B)
	}
	return buf, nil
}

func (a *Accumulator) UnmarshalBinary(data []byte) error {
	if len(data) < 12 || [4]byte(data[:4]) != accMagic {
		return errBadEncoding
	}
	w := uint64(binary.LittleEndian.Uint32(data[4:]))
	h := uint64(binary.LittleEndian.Uint32(data[8:]))
	body := data[12:]
	// Both factors fit in 32 bits, so w*h cannot overflow; the body length
	// bounds it before anything is allocated.
	if uint64(len(body))%cellBytes != 0 || w*h != uint64(len(body))/cellBytes {
		return errBadEncoding
	}
	cells := make([]Cell, w*h)
	for i := range cells {
		b := body[i*cellBytes:]
		cells[i] = Cell{
			Count: binary.LittleEndian.Uint64(b),
			R:     binary.LittleEndian.Uint64(b[8:]),
			G:     binary.LittleEndian.Uint64(b[16:]),
			B:     binary.LittleEndian.Uint64(b[24:]),
		}
	}
	a.width, a.height, a.cells = int(w), int(h), cells
	return nil
}
