package surface

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-paddle/internal/window"
)

// NewTcell creates a region on a tcell screen drawn with style.
// Refresh calls screen.Show, so each window's Draw makes its rows visible.
func NewTcell(screen tcell.Screen, style tcell.Style, rows, cols, top, left int) (*Region, error) {
	set := func(x, y int, r rune) {
		screen.SetContent(x, y, r, nil, style)
	}
	show := func() error {
		screen.Show()
		return nil
	}
	return newRegion(rows, cols, top, left, set, show)
}

// NewTcellOpener returns an opener that places windows on screen.
// The screen must already be initialized; closing a window never
// finalizes it.
func NewTcellOpener(screen tcell.Screen, style tcell.Style) window.Opener {
	return window.OpenerFunc(func(rows, cols, top, left int) (window.Surface, error) {
		r, err := NewTcell(screen, style, rows, cols, top, left)
		if err != nil {
			return nil, err
		}
		return r, nil
	})
}
