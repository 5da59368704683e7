// Package scene defines the Scene interface for game screens.
//
// The playing screen is the only scene today; the interface keeps the game loop
// independent of it so a title or level-select screen can be slotted in later.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents a game screen.
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update advances the scene.
	// dt is in frame units: 1.0 is one 60th of a second.
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene.
	// Use this for flushing recordings or releasing resources.
	OnExit()
}
