// Package entity provides the motion model shared by everything that moves
// on the tile grid: continuous position, velocity integrated per tick, and
// discrete cell queries against that continuous position.
//
// It has no rendering or terminal dependencies. Games embed Entity in their
// own object types (paddles, balls) and drive it from the game loop.
package entity

// Vertical bounds on the discrete row index. They are fixed for every
// entity and cannot be reconfigured.
const (
	MinY = 0
	MaxY = 25
)

// Default starting position used by Default.
const (
	DefaultX = 1
	DefaultY = 1
)

// TickScale converts velocity (cells per 100 ticks) into a per-tick offset.
const TickScale = 0.01

// Movable is the capability set of any positioned object that moves on the
// grid. *Entity implements it, as does any struct embedding Entity.
type Movable interface {
	// Step advances the object by one simulation tick.
	Step()
	// Stop zeroes both velocity components.
	Stop()
	// Up moves one row up if the destination stays in bounds.
	Up()
	// Down moves one row down if the destination stays in bounds.
	Down()
	// IsAt reports whether the truncated position equals (x, y).
	IsAt(x, y int) bool
	// Position returns the continuous position.
	Position() (x, y float64)
	// Velocity returns the velocity in cells per 100 ticks.
	Velocity() (vx, vy float64)
}

// Entity holds the position and velocity of a moving object.
// The zero value is a stopped entity at (0, 0).
type Entity struct {
	X, Y           float64 // Continuous position; fraction is sub-cell motion
	SpeedX, SpeedY float64 // Cells per 100 ticks
}

var _ Movable = (*Entity)(nil)

// New creates an entity at the given position with zero velocity.
func New(x, y float64) Entity {
	return Entity{X: x, Y: y}
}

// Default creates an entity at (DefaultX, DefaultY) with zero velocity.
func Default() Entity {
	return New(DefaultX, DefaultY)
}

// IsAt reports whether the entity occupies cell (x, y).
// Position is truncated toward zero, not rounded, so X = -0.5 is in column 0.
func (e *Entity) IsAt(x, y int) bool {
	return int(e.X) == x && int(e.Y) == y
}

// Col returns the truncated column of the entity.
func (e *Entity) Col() int {
	return int(e.X)
}

// Row returns the truncated row of the entity.
func (e *Entity) Row() int {
	return int(e.Y)
}

// Step advances the entity by one tick.
//
// Vertical drift stops once the entity has reached one row past either bound.
// The check looks at the position before this tick's increment, so the entity
// can sit anywhere in [MinY-1, MaxY+1] after drifting. Nothing bounds X.
func (e *Entity) Step() {
	if e.SpeedY > 0 && e.Y >= MaxY+1 || e.SpeedY < 0 && e.Y <= MinY-1 {
		e.SpeedY = 0
	}
	e.X += e.SpeedX * TickScale
	e.Y += e.SpeedY * TickScale
}

// Stop zeroes both velocity components.
func (e *Entity) Stop() {
	e.SpeedX = 0
	e.SpeedY = 0
}

// Up moves the entity one row up unless the destination row leaves [MinY, MaxY].
func (e *Entity) Up() {
	if int(e.Y-1) < MinY {
		return
	}
	e.Y--
}

// Down moves the entity one row down unless the destination row leaves [MinY, MaxY].
func (e *Entity) Down() {
	if int(e.Y+1) > MaxY {
		return
	}
	e.Y++
}

// Position returns the continuous position.
func (e *Entity) Position() (x, y float64) {
	return e.X, e.Y
}

// Velocity returns the velocity in cells per 100 ticks.
func (e *Entity) Velocity() (vx, vy float64) {
	return e.SpeedX, e.SpeedY
}

// SetVelocity replaces both velocity components.
func (e *Entity) SetVelocity(vx, vy float64) {
	e.SpeedX = vx
	e.SpeedY = vy
}
