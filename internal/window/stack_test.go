package window

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackDrawsInOrder(t *testing.T) {
	o := &opener{}
	var s Stack
	s.Push(New(o, 1, 1, 0, 0))
	s.Push(New(o, 2, 1, 0, 10))
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.Draw())
	require.Len(t, o.sizes, 2)
	assert.Equal(t, 1, o.sizes[0][3])
	assert.Equal(t, 11, o.sizes[1][3])
}

func TestStackDrawStopsAtFirstError(t *testing.T) {
	o := &opener{}
	var s Stack
	s.Push(New(o, 0, 1, 0, 0))
	s.Push(New(o, 2, 1, 0, 0))

	assert.ErrorIs(t, s.Draw(), ErrInvalidSize)
	assert.Empty(t, o.opened)
}

func TestStackCloseJoinsErrors(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	o := &opener{}
	var s Stack
	a := s.Push(New(o, 1, 1, 0, 0))
	b := s.Push(New(o, 1, 1, 0, 0))
	c := s.Push(New(o, 1, 1, 0, 0))

	o.next = &recorder{closeErr: first}
	_, err := a.Open()
	require.NoError(t, err)
	_, err = b.Open()
	require.NoError(t, err)
	o.next = &recorder{closeErr: second}
	_, err = c.Open()
	require.NoError(t, err)

	err = s.Close()
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.False(t, a.IsOpen())
	assert.False(t, b.IsOpen())
	assert.False(t, c.IsOpen())
	assert.True(t, o.opened[1].closed)
	assert.Equal(t, 3, s.Len(), "closed windows stay in the stack")
}

func TestStackReopensAfterClose(t *testing.T) {
	o := &opener{}
	var s Stack
	w := s.Push(New(o, 1, 1, 0, 0))

	require.NoError(t, s.Draw())
	require.NoError(t, s.Close())
	require.NoError(t, s.Draw())

	assert.True(t, w.IsOpen())
	assert.Len(t, o.opened, 2)
}

func TestStackClear(t *testing.T) {
	o := &opener{}
	var s Stack
	w := s.Push(New(o, 1, 1, 0, 0))
	require.NoError(t, s.Draw())

	require.NoError(t, s.Clear())
	assert.False(t, w.IsOpen())
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.Draw())
	assert.Len(t, o.opened, 1, "cleared stack draws nothing")
}
