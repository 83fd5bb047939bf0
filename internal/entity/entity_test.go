package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAndDefault(t *testing.T) {
	e := New(3, 7)
	assert.Equal(t, 3.0, e.X)
	assert.Equal(t, 7.0, e.Y)
	assert.Zero(t, e.SpeedX)
	assert.Zero(t, e.SpeedY)

	d := Default()
	x, y := d.Position()
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 1.0, y)
	vx, vy := d.Velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)
}

func TestStepIntegratesVelocity(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, vx, vy float64
	}{
		{"stationary", 5, 5, 0, 0},
		{"right and down", 5, 5, 50, 30},
		{"left and up", 10, 10, -25, -40},
		{"fractional start", 2.37, 12.81, 7, -3},
		{"x unbounded", -40, 3, -100, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := Entity{X: tc.x0, Y: tc.y0, SpeedX: tc.vx, SpeedY: tc.vy}
			e.Step()

			assert.Equal(t, tc.x0+tc.vx*0.01, e.X)
			assert.Equal(t, tc.y0+tc.vy*0.01, e.Y)
			assert.Equal(t, tc.vy, e.SpeedY, "speedy must be untouched away from the bounds")
		})
	}
}

func TestStepBoundaryStop(t *testing.T) {
	tests := []struct {
		name      string
		y, vy     float64
		wantY     float64
		wantSpeed float64
	}{
		{"past bottom moving down", MaxY + 1, 1, MaxY + 1, 0},
		{"past top moving up", MinY - 1, -1, MinY - 1, 0},
		{"far past bottom", 40, 5, 40, 0},
		{"past bottom moving up keeps going", MaxY + 1, -100, MaxY, -100},
		{"past top moving down keeps going", MinY - 1, 100, MinY, 100},
		{"at max still drifts", MaxY, 100, MaxY + 1, 100},
		{"at min still drifts", MinY, -100, MinY - 1, -100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := Entity{X: 4, Y: tc.y, SpeedX: 10, SpeedY: tc.vy}
			e.Step()

			assert.Equal(t, tc.wantY, e.Y)
			assert.Equal(t, tc.wantSpeed, e.SpeedY)
			assert.Equal(t, 4.1, e.X, "x keeps moving")
		})
	}
}

func TestStepCoastsToStop(t *testing.T) {
	e := New(0, MaxY)
	e.SpeedY = 50

	for range 10 {
		e.Step()
	}

	assert.Zero(t, e.SpeedY)
	assert.GreaterOrEqual(t, e.Y, float64(MaxY+1))
	assert.Less(t, e.Y, float64(MaxY+2))
}

func TestStop(t *testing.T) {
	e := Entity{X: 1, Y: 1, SpeedX: -12.5, SpeedY: 99}
	e.Stop()
	assert.Zero(t, e.SpeedX)
	assert.Zero(t, e.SpeedY)

	e.Stop()
	assert.Zero(t, e.SpeedX)
	assert.Zero(t, e.SpeedY)
}

func TestUpDown(t *testing.T) {
	tests := []struct {
		name  string
		y     float64
		move  func(*Entity)
		wantY float64
	}{
		{"up from min is a no-op", MinY, (*Entity).Up, MinY},
		{"up from 5", 5, (*Entity).Up, 4},
		{"up from 1 reaches min", 1, (*Entity).Up, 0},
		{"up from fraction below 1 stays on row 0", 0.5, (*Entity).Up, -0.5},
		{"up from fraction above -1 is a no-op", -0.5, (*Entity).Up, -0.5},
		{"down from max is a no-op", MaxY, (*Entity).Down, MaxY},
		{"down from 5", 5, (*Entity).Down, 6},
		{"down from 24 reaches max", 24, (*Entity).Down, MaxY},
		{"down from fraction above 24 lands on row 25", 24.5, (*Entity).Down, 25.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := Entity{Y: tc.y, SpeedY: 7}
			tc.move(&e)
			assert.Equal(t, tc.wantY, e.Y)
			assert.Equal(t, 7.0, e.SpeedY, "nudges do not touch velocity")
		})
	}
}

func TestIsAt(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		cx   int
		cy   int
		want bool
	}{
		{"truncates fraction", 3.99, 4.0, 3, 4, true},
		{"next column", 4.0, 4.0, 3, 4, false},
		{"exact cell", 0, 0, 0, 0, true},
		{"negative truncates toward zero", -0.5, 2.2, 0, 2, true},
		{"negative not floor", -1.5, 2, -2, 2, false},
		{"negative whole", -1.5, 2, -1, 2, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := New(tc.x, tc.y)
			assert.Equal(t, tc.want, e.IsAt(tc.cx, tc.cy))
		})
	}
}

func TestRowCol(t *testing.T) {
	e := New(7.8, 2.1)
	assert.Equal(t, 7, e.Col())
	assert.Equal(t, 2, e.Row())
}

func TestEmbeddingSatisfiesMovable(t *testing.T) {
	type paddle struct {
		Entity
		height int
	}

	p := &paddle{Entity: New(2, 10), height: 4}
	var m Movable = p

	m.Up()
	assert.Equal(t, 9.0, p.Y)

	p.SetVelocity(0, -100)
	m.Step()
	assert.Equal(t, 8.0, p.Y)
	assert.True(t, m.IsAt(2, 8))
}
