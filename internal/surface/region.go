// Package surface implements window.Surface on top of concrete terminal
// backends: the in-memory core.Screen buffer used by the Bubble Tea and SSH
// platforms, and a tcell screen for direct terminal play.
//
// A surface is a curses-style sub-window: a rectangle at a fixed terminal
// offset with its own cursor. Writes that fall outside the rectangle are
// clipped rather than wrapped.
package surface

import (
	"errors"
	"fmt"
)

// Corner is the glyph Box puts where two edges meet.
const Corner = '+'

// ErrClosed is returned when writing to a surface after Close.
var ErrClosed = errors.New("surface: closed")

// Region is a rectangular sub-window onto a backend cell grid.
type Region struct {
	rows, cols int
	top, left  int
	row, col   int
	closed     bool

	set  func(x, y int, r rune) // absolute terminal coordinates
	show func() error
}

func newRegion(rows, cols, top, left int, set func(x, y int, r rune), show func() error) (*Region, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("surface: invalid size %dx%d", cols, rows)
	}
	return &Region{
		rows: rows,
		cols: cols,
		top:  top,
		left: left,
		set:  set,
		show: show,
	}, nil
}

// Size returns the region size in rows and columns.
func (r *Region) Size() (rows, cols int) {
	return r.rows, r.cols
}

// Origin returns the terminal row and column of the region's top-left cell.
func (r *Region) Origin() (top, left int) {
	return r.top, r.left
}

// Cursor returns the current cursor position relative to the region.
func (r *Region) Cursor() (row, col int) {
	return r.row, r.col
}

// put writes one cell, clipped to the region.
func (r *Region) put(row, col int, ch rune) {
	if row < 0 || row >= r.rows || col < 0 || col >= r.cols {
		return
	}
	r.set(r.left+col, r.top+row, ch)
}

// Box outlines the region: vertical on the side columns, horizontal on the
// top and bottom rows, Corner where they meet.
func (r *Region) Box(vertical, horizontal rune) {
	if r.closed {
		return
	}
	last, right := r.rows-1, r.cols-1
	for col := 1; col < right; col++ {
		r.put(0, col, horizontal)
		r.put(last, col, horizontal)
	}
	for row := 1; row < last; row++ {
		r.put(row, 0, vertical)
		r.put(row, right, vertical)
	}
	r.put(0, 0, Corner)
	r.put(0, right, Corner)
	r.put(last, 0, Corner)
	r.put(last, right, Corner)
}

// Move positions the cursor. Positions outside the region are allowed;
// subsequent writes there are clipped.
func (r *Region) Move(row, col int) {
	r.row = row
	r.col = col
}

// AddStr writes s one rune per cell from the cursor and advances it.
func (r *Region) AddStr(s string) error {
	if r.closed {
		return ErrClosed
	}
	for _, ch := range s {
		r.put(r.row, r.col, ch)
		r.col++
	}
	return nil
}

// Refresh flushes the backend.
func (r *Region) Refresh() error {
	if r.closed {
		return ErrClosed
	}
	if r.show == nil {
		return nil
	}
	return r.show()
}

// Close releases the region. The backend itself stays usable; other
// regions on it are unaffected.
func (r *Region) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.closed = true
	return nil
}
