package window

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Surface that logs every call.
type recorder struct {
	calls    []string
	addErr   error
	closeErr error
	closed   bool
}

func (r *recorder) Box(v, h rune) { r.calls = append(r.calls, fmt.Sprintf("box %c%c", v, h)) }
func (r *recorder) Move(row, col int) {
	r.calls = append(r.calls, fmt.Sprintf("move %d,%d", row, col))
}

func (r *recorder) AddStr(s string) error {
	r.calls = append(r.calls, "add "+s)
	return r.addErr
}

func (r *recorder) Refresh() error {
	r.calls = append(r.calls, "refresh")
	return nil
}

func (r *recorder) Close() error {
	r.closed = true
	return r.closeErr
}

// opener hands out recorders and remembers the requested geometry.
type opener struct {
	opened  []*recorder
	sizes   [][4]int
	openErr error
	next    *recorder
}

func (o *opener) Open(rows, cols, top, left int) (Surface, error) {
	if o.openErr != nil {
		return nil, o.openErr
	}
	r := o.next
	if r == nil {
		r = &recorder{}
	}
	o.next = nil
	o.opened = append(o.opened, r)
	o.sizes = append(o.sizes, [4]int{rows, cols, top, left})
	return r, nil
}

func TestNewDefaults(t *testing.T) {
	w := New(nil, 10, 4, 0, 0)
	assert.True(t, w.Border)
	assert.Equal(t, ' ', w.DefaultTile)
	assert.False(t, w.IsOpen())
}

func TestRenderDefaultGrid(t *testing.T) {
	for _, border := range []bool{true, false} {
		t.Run(fmt.Sprintf("border=%v", border), func(t *testing.T) {
			w := New(nil, 5, 2, 0, 0)
			w.Border = border

			rows := w.Render()
			require.Len(t, rows, 2)
			for _, row := range rows {
				assert.Equal(t, "     ", row)
			}
		})
	}
}

func TestRenderCustomDefaultTile(t *testing.T) {
	w := New(nil, 3, 3, 0, 0)
	w.DefaultTile = '.'
	assert.Equal(t, []string{"...", "...", "..."}, w.Render())
}

func TestRenderTileOverride(t *testing.T) {
	w := New(nil, 5, 3, 0, 0)
	w.Tiles = TileFunc(func(x, y int) rune {
		if x == 2 && y == 1 {
			return '#'
		}
		return w.TileAt(x, y)
	})

	assert.Equal(t, []string{"     ", "  #  ", "     "}, w.Render())
}

func TestRenderVisitsCellsInOrder(t *testing.T) {
	var visited []string
	w := New(nil, 3, 2, 0, 0)
	w.Tiles = TileFunc(func(x, y int) rune {
		visited = append(visited, fmt.Sprintf("%d,%d", x, y))
		return rune('a' + x + 3*y)
	})

	assert.Equal(t, []string{"abc", "def"}, w.Render())
	assert.Equal(t, []string{"0,0", "1,0", "2,0", "0,1", "1,1", "2,1"}, visited)
}

func TestRenderLineLength(t *testing.T) {
	w := New(nil, 7, 1, 0, 0)
	w.Tiles = TileFunc(func(int, int) rune { return '█' })

	line := w.RenderLine(0)
	assert.Equal(t, 7, len([]rune(line)))
	assert.Equal(t, strings.Repeat("█", 7), line)
}

func TestRenderNonPositiveSize(t *testing.T) {
	w := New(nil, 0, -3, 0, 0)
	assert.Empty(t, w.Render())
	assert.Equal(t, "", w.RenderLine(0))
}

func TestOpenGeometry(t *testing.T) {
	tests := []struct {
		name   string
		border bool
		want   [4]int
	}{
		{"with border", true, [4]int{5, 8, 3, 6}},
		{"without border", false, [4]int{4, 7, 3, 6}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := &opener{}
			w := New(o, 6, 3, 2, 5)
			w.Border = tc.border

			_, err := w.Open()
			require.NoError(t, err)
			require.Len(t, o.sizes, 1)
			assert.Equal(t, tc.want, o.sizes[0])

			if tc.border {
				assert.Equal(t, []string{"box |-"}, o.opened[0].calls)
			} else {
				assert.Empty(t, o.opened[0].calls)
			}
		})
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	o := &opener{}
	w := New(o, 2, 2, 0, 0)

	s1, err := w.Open()
	require.NoError(t, err)
	s2, err := w.Open()
	require.NoError(t, err)

	assert.Same(t, s1, s2)
	assert.Len(t, o.opened, 1)
	assert.True(t, w.IsOpen())
}

func TestOpenErrors(t *testing.T) {
	boom := errors.New("no tty")

	_, err := New(&opener{}, 0, 2, 0, 0).Open()
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = New(nil, 2, 2, 0, 0).Open()
	assert.ErrorIs(t, err, ErrNoOpener)

	w := New(&opener{openErr: boom}, 2, 2, 0, 0)
	_, err = w.Open()
	assert.Same(t, boom, err)
	assert.False(t, w.IsOpen())
}

func TestDrawWritesRowsThenRefreshes(t *testing.T) {
	o := &opener{}
	w := New(o, 3, 2, 0, 0)
	w.Tiles = TileFunc(func(x, y int) rune {
		if x == y {
			return 'x'
		}
		return '.'
	})

	require.NoError(t, w.Draw())
	require.Len(t, o.opened, 1)
	assert.Equal(t, []string{
		"box |-",
		"move 1,1", "add x..",
		"move 2,1", "add .x.",
		"refresh",
	}, o.opened[0].calls)
}

func TestDrawReusesSurface(t *testing.T) {
	o := &opener{}
	w := New(o, 1, 1, 0, 0)
	w.Border = false

	require.NoError(t, w.Draw())
	require.NoError(t, w.Draw())

	require.Len(t, o.opened, 1)
	assert.Equal(t, []string{"move 1,1", "add  ", "refresh", "move 1,1", "add  ", "refresh"}, o.opened[0].calls)
}

func TestDrawPropagatesSurfaceErrors(t *testing.T) {
	boom := errors.New("write failed")
	o := &opener{next: &recorder{addErr: boom}}
	w := New(o, 2, 2, 0, 0)

	err := w.Draw()
	assert.Same(t, boom, err)
	assert.NotContains(t, o.opened[0].calls, "refresh")
}

func TestCloseReleasesAndReopens(t *testing.T) {
	o := &opener{}
	w := New(o, 2, 1, 0, 0)

	require.NoError(t, w.Draw())
	first := o.opened[0]

	require.NoError(t, w.Close())
	assert.True(t, first.closed)
	assert.False(t, w.IsOpen())

	require.NoError(t, w.Draw())
	require.Len(t, o.opened, 2)
	assert.NotSame(t, first, o.opened[1])
}

func TestCloseWithoutSurface(t *testing.T) {
	o := &opener{}
	w := New(o, 2, 1, 0, 0)
	assert.NoError(t, w.Close())
	assert.Empty(t, o.opened)
}

func TestCloseReturnsSurfaceError(t *testing.T) {
	boom := errors.New("close failed")
	o := &opener{next: &recorder{closeErr: boom}}
	w := New(o, 2, 1, 0, 0)
	_, err := w.Open()
	require.NoError(t, err)

	assert.Same(t, boom, w.Close())
	assert.False(t, w.IsOpen(), "handle is cleared even when close fails")
}

func TestOpenerFunc(t *testing.T) {
	var got [4]int
	f := OpenerFunc(func(rows, cols, top, left int) (Surface, error) {
		got = [4]int{rows, cols, top, left}
		return &recorder{}, nil
	})

	w := New(f, 4, 2, 1, 1)
	w.Border = false
	require.NoError(t, w.Draw())
	assert.Equal(t, [4]int{3, 5, 2, 2}, got)
}
