package system

import "github.com/younwookim/crumble/internal/domain/entity"

// Event is something the simulation reports to the host after a step
type Event interface {
	isEvent()
}

// TileDestroyed is raised when an armed tile's timer runs out and it leaves the grid.
// It carries the particles to spawn; the host may also play a sound.
type TileDestroyed struct {
	Coord   entity.Coord
	Type    entity.TileType
	Center  entity.Vec2 // Pixel center of the removed tile
	Kickups []entity.Kickup
	Sparks  []entity.Spark
}

func (TileDestroyed) isEvent() {}

// ScreenShakeRequest asks the host to raise screen shake to at least Min
type ScreenShakeRequest struct {
	Min float64
}

func (ScreenShakeRequest) isEvent() {}

// Landed is raised when the player resolves a downward collision
type Landed struct {
	Pos         entity.Vec2 // Center of the tile landed on
	ImpactSpeed float64     // Downward speed just before the collision
}

func (Landed) isEvent() {}

// Respawned is raised when the player fell below the level and was reset
type Respawned struct {
	From entity.Vec2
}

func (Respawned) isEvent() {}

// LevelComplete is raised when the player touches a portal tile
type LevelComplete struct {
	Portal entity.Coord
}

func (LevelComplete) isEvent() {}
