package state

// GameState represents the current state of the playing scene
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateTransition // Fading out of a completed level into the next one
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateTransition:
		return "Transition"
	default:
		return "Unknown"
	}
}

// Simulating reports whether the world is stepped in this state
func (s GameState) Simulating() bool {
	return s == StatePlaying
}
