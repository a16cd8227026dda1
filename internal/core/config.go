package core

// ReferenceTickRate is the frame rate that all frame-count tunables assume.
const ReferenceTickRate = 60

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: ReferenceTickRate,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Rate returns the tick rate, falling back to the reference rate when unset.
func (c RuntimeConfig) Rate() int {
	if c.TickRate <= 0 {
		return ReferenceTickRate
	}
	return c.TickRate
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current run score
	Round    int  // Current round number
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState
	// RoundCleared is set on the tick a round transition begins.
	RoundCleared bool
	// Ended is set on the tick the run becomes game over.
	Ended bool
}
