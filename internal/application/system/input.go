package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/crumble/internal/domain/entity"
)

// KeyQuery reports a key's state
type KeyQuery func(key ebiten.Key) bool

// InputSystem maps the keyboard onto player controls and host actions
type InputSystem struct {
	pressed     KeyQuery
	justPressed KeyQuery
}

// NewInputSystem creates an input system reading the live ebiten keyboard
func NewInputSystem() *InputSystem {
	return NewInputSystemWith(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed)
}

// NewInputSystemWith creates an input system over custom key queries
func NewInputSystemWith(pressed, justPressed KeyQuery) *InputSystem {
	return &InputSystem{pressed: pressed, justPressed: justPressed}
}

// InputState holds the current input state
type InputState struct {
	Controls entity.Controls

	// Edge-triggered host actions
	Pause   bool
	Restart bool
	Skip    bool // Jump to the next level
	Debug   bool
}

// GetInput reads the current input state.
// Arrow keys and WASD both drive movement; Space also jumps.
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Controls: entity.Controls{
			Up:    s.any(s.pressed, ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeySpace),
			Down:  s.any(s.pressed, ebiten.KeyArrowDown, ebiten.KeyS),
			Left:  s.any(s.pressed, ebiten.KeyArrowLeft, ebiten.KeyA),
			Right: s.any(s.pressed, ebiten.KeyArrowRight, ebiten.KeyD),
		},
		Pause:   s.any(s.justPressed, ebiten.KeyEscape, ebiten.KeyP),
		Restart: s.justPressed(ebiten.KeyR),
		Skip:    s.justPressed(ebiten.KeyN),
		Debug:   s.justPressed(ebiten.KeyF3),
	}
}

func (s *InputSystem) any(query KeyQuery, keys ...ebiten.Key) bool {
	for _, k := range keys {
		if query(k) {
			return true
		}
	}
	return false
}
