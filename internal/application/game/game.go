// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/crumble/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int

	maxDT   float64 // Upper bound on one frame's dt, in frame units
	fixedDT float64 // When > 0, used instead of the wall clock
	now     func() time.Time
	last    time.Time
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int, maxDT float64) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		maxDT:   maxDT,
		now:     time.Now,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.frameDT())
	if err != nil {
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// frameDT converts the wall-clock time since the previous update into frame units
func (g *Game) frameDT() float64 {
	if g.fixedDT > 0 {
		return g.fixedDT
	}

	t := g.now()
	defer func() { g.last = t }()
	if g.last.IsZero() {
		return 1
	}

	dt := t.Sub(g.last).Seconds() * 60
	if dt < 0 {
		return 0
	}
	if g.maxDT > 0 && dt > g.maxDT {
		return g.maxDT
	}
	return dt
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT fixes the delta time used for updates, bypassing the clock.
// Zero restores wall-clock timing.
func (g *Game) SetDT(dt float64) {
	g.fixedDT = dt
}

// SetClock replaces the time source (for tests)
func (g *Game) SetClock(now func() time.Time) {
	g.now = now
	g.last = time.Time{}
}
