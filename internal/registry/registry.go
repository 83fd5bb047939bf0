// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-paddle/internal/core"
)

// Game is the interface every game must implement.
// Games hold pure simulation state plus the windows that present it; the
// platform owns input mapping, timing and the drawing backend.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "pong").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	// Any windows from a previous Reset are closed and recreated on
	// cfg.Surface.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.MultiInputFrame) core.StepResult

	// Render draws the current frame through the game's windows.
	// Errors come from the drawing surface and abort the frame.
	Render() error

	// Close releases the game's drawing surfaces.
	// The platform calls it on every exit path.
	Close() error

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Match is the outcome of a two-sided game once it is over.
type Match struct {
	Opponent string // "cpu" or "p2"
	Score1   int
	Score2   int
	Winner   int // 1 or 2
	Ticks    int
}

// MatchReporter is implemented by games with a winner.
// Match returns false while the game is still running.
type MatchReporter interface {
	Match() (Match, bool)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
