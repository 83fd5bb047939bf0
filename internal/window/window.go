// Package window provides a rectangular tile surface that renders a fixed
// grid of runes each frame and hands the rows to a terminal drawing surface.
//
// A Window knows nothing about games. What appears in each cell is decided by
// its TileRenderer; games plug in a renderer that reads their own state.
// The drawing surface is acquired lazily on the first Draw (or an explicit
// Open) and must be released with Close.
package window

import (
	"errors"
	"strings"
)

// Border glyphs passed to Surface.Box.
const (
	BorderVertical   = '|'
	BorderHorizontal = '-'
)

// DefaultTile is the rune emitted for cells the renderer does not override.
const DefaultTile = ' '

var (
	// ErrInvalidSize is returned by Open when the grid has no cells.
	ErrInvalidSize = errors.New("window: grid size must be positive")

	// ErrNoOpener is returned by Open when the window has no Opener.
	ErrNoOpener = errors.New("window: no surface opener")
)

// TileRenderer decides the rune shown at grid cell (x, y).
// It is only called with 0 <= x < XSize and 0 <= y < YSize.
type TileRenderer interface {
	TileAt(x, y int) rune
}

// TileFunc adapts a plain function to TileRenderer.
type TileFunc func(x, y int) rune

// TileAt calls f(x, y).
func (f TileFunc) TileAt(x, y int) rune {
	return f(x, y)
}

// Surface is the terminal drawing target a window writes into.
// Coordinates are relative to the surface origin.
type Surface interface {
	// Box draws a border around the surface edge.
	Box(vertical, horizontal rune)
	// Move positions the output cursor.
	Move(row, col int)
	// AddStr writes s at the cursor.
	AddStr(s string) error
	// Refresh flushes pending writes to the display.
	Refresh() error
	// Close releases the surface.
	Close() error
}

// Opener creates surfaces of the given size at the given terminal offset.
type Opener interface {
	Open(rows, cols, top, left int) (Surface, error)
}

// OpenerFunc adapts a plain function to Opener.
type OpenerFunc func(rows, cols, top, left int) (Surface, error)

// Open calls f(rows, cols, top, left).
func (f OpenerFunc) Open(rows, cols, top, left int) (Surface, error) {
	return f(rows, cols, top, left)
}

// Window is a grid of XSize columns by YSize rows placed at (Top, Left).
type Window struct {
	XSize, YSize int  // Grid size in cells
	Top, Left    int  // Terminal origin offset
	Border       bool // Reserve a margin and draw a box around the grid

	// DefaultTile is returned by the base tile rule.
	DefaultTile rune

	// Tiles overrides the base tile rule when set.
	Tiles TileRenderer

	opener  Opener
	surface Surface
}

// New creates a window with the border on and a space as the default tile.
// Sizes are not validated here; Open rejects grids without cells.
func New(open Opener, xsize, ysize, top, left int) *Window {
	return &Window{
		XSize:       xsize,
		YSize:       ysize,
		Top:         top,
		Left:        left,
		Border:      true,
		DefaultTile: DefaultTile,
		opener:      open,
	}
}

// TileAt is the base tile rule: every cell shows DefaultTile.
func (w *Window) TileAt(_, _ int) rune {
	return w.DefaultTile
}

// tile resolves a cell through the configured renderer.
func (w *Window) tile(x, y int) rune {
	if w.Tiles != nil {
		return w.Tiles.TileAt(x, y)
	}
	return w.TileAt(x, y)
}

// RenderLine returns row y as XSize runes in ascending column order.
func (w *Window) RenderLine(y int) string {
	var sb strings.Builder
	sb.Grow(max(w.XSize, 0))
	for x := 0; x < w.XSize; x++ {
		sb.WriteRune(w.tile(x, y))
	}
	return sb.String()
}

// Render returns all YSize rows in ascending order.
// The result does not depend on Border.
func (w *Window) Render() []string {
	lines := make([]string, 0, max(w.YSize, 0))
	for y := 0; y < w.YSize; y++ {
		lines = append(lines, w.RenderLine(y))
	}
	return lines
}

// Open acquires the drawing surface if the window does not hold one yet.
//
// The surface gets one extra row and column for the cursor origin, plus one
// more of each when Border is set, and sits one cell below and right of
// (Top, Left).
func (w *Window) Open() (Surface, error) {
	if w.surface != nil {
		return w.surface, nil
	}
	if w.XSize <= 0 || w.YSize <= 0 {
		return nil, ErrInvalidSize
	}
	if w.opener == nil {
		return nil, ErrNoOpener
	}

	b := 0
	if w.Border {
		b = 1
	}
	s, err := w.opener.Open(w.YSize+b+1, w.XSize+b+1, w.Top+1, w.Left+1)
	if err != nil {
		return nil, err
	}
	if w.Border {
		s.Box(BorderVertical, BorderHorizontal)
	}
	w.surface = s
	return s, nil
}

// IsOpen reports whether the window currently holds a surface.
func (w *Window) IsOpen() bool {
	return w.surface != nil
}

// Draw renders the grid and writes it to the surface, one row per line
// starting at row 1, column 1, then refreshes once.
// Surface errors are returned as-is and abort the frame.
func (w *Window) Draw() error {
	lines := w.Render()

	s, err := w.Open()
	if err != nil {
		return err
	}

	for i, line := range lines {
		s.Move(i+1, 1)
		if err := s.AddStr(line); err != nil {
			return err
		}
	}
	return s.Refresh()
}

// Close releases the surface. The next Draw acquires a fresh one.
// Closing a window that holds no surface does nothing.
func (w *Window) Close() error {
	if w.surface == nil {
		return nil
	}
	s := w.surface
	w.surface = nil
	return s.Close()
}
