package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_String(t *testing.T) {
	tests := []struct {
		state    GameState
		expected string
	}{
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateTransition, "Transition"},
		{GameState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestGameStateConstants(t *testing.T) {
	// Zero value is the playing state
	var zero GameState
	assert.Equal(t, StatePlaying, zero)
	assert.Equal(t, GameState(1), StatePaused)
	assert.Equal(t, GameState(2), StateTransition)
}

func TestGameState_Simulating(t *testing.T) {
	assert.True(t, StatePlaying.Simulating())
	assert.False(t, StatePaused.Simulating())
	assert.False(t, StateTransition.Simulating())
}
