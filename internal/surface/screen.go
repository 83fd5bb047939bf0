package surface

import (
	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/window"
)

// NewScreen creates a region on an in-memory screen buffer.
// Refresh is a no-op; the platform presents the buffer itself.
func NewScreen(dst *core.Screen, rows, cols, top, left int) (*Region, error) {
	return newRegion(rows, cols, top, left, dst.Set, nil)
}

// NewScreenOpener returns an opener that places windows on dst.
func NewScreenOpener(dst *core.Screen) window.Opener {
	return window.OpenerFunc(func(rows, cols, top, left int) (window.Surface, error) {
		r, err := NewScreen(dst, rows, cols, top, left)
		if err != nil {
			return nil, err
		}
		return r, nil
	})
}
