// Package core holds the types shared by games and platforms: the runtime
// config, per-player input frames and the in-memory screen buffer.
// It does not depend on any terminal library.
package core

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
