// Package world wires the simulation systems together and advances them one frame at a time.
//
// The host owns timing, input and drawing. Each frame it calls Step with the elapsed
// time (dt = 1.0 is one 60th of a second) and the current controls, then reads the
// grid, player and particles back out to draw them.
package world

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/younwookim/crumble/internal/application/system"
	"github.com/younwookim/crumble/internal/domain/entity"
	"github.com/younwookim/crumble/internal/infrastructure/config"
)

// World holds one level's simulation state
type World struct {
	config *config.TuningConfig
	rng    *rand.Rand

	grid        *entity.TileMap
	player      *entity.Player
	destruction *system.DestructionSystem
	physics     *system.PhysicsSystem
	particles   *system.ParticleSystem

	level       *config.LevelConfig
	floorY      float64 // Pixel y of the bottom edge of the lowest loaded row
	completed   bool
	screenShake float64

	// OnTileDestroyed is invoked once per removed tile (audio trigger); may be nil
	OnTileDestroyed func(ev system.TileDestroyed)
}

// New creates an empty world. Call LoadLevel before stepping it.
func New(cfg *config.TuningConfig, rng *rand.Rand) (*World, error) {
	palette, err := cfg.Destruction.ParsePalette()
	if err != nil {
		return nil, err
	}
	smokeColor, err := config.ParseHexColor(cfg.Particles.Smoke.Color)
	if err != nil {
		return nil, fmt.Errorf("smoke color: %w", err)
	}

	grid := entity.NewTileMap()
	spawn := entity.Vec2{X: cfg.Player.SpawnX, Y: cfg.Player.SpawnY}
	size := entity.Vec2{X: cfg.Player.Width, Y: cfg.Player.Height}

	w := &World{
		config:    cfg,
		rng:       rng,
		grid:      grid,
		player:    entity.NewPlayer(spawn, size, cfg.Jump.AirborneSentinel),
		particles: system.NewParticleSystem(cfg, grid, rng, smokeColor),
	}

	w.destruction = system.NewDestructionSystem(cfg, grid, rng, palette)
	w.destruction.OnScreenShake = w.RequestScreenShake
	w.destruction.OnDestroyed = func(ev system.TileDestroyed) {
		if w.OnTileDestroyed != nil {
			w.OnTileDestroyed(ev)
		}
	}
	w.physics = system.NewPhysicsSystem(cfg, w.destruction)

	return w, nil
}

// LoadLevel replaces the grid with level and puts the player at its spawn point.
// Particles and screen shake are cleared. On error the current level is kept.
func (w *World) LoadLevel(level *config.LevelConfig) error {
	if err := system.LoadLevel(w.grid, level); err != nil {
		return err
	}

	spawn := entity.Vec2{X: w.config.Player.SpawnX, Y: w.config.Player.SpawnY}
	if level.Level.Spawn != nil {
		spawn = entity.Vec2{X: level.Level.Spawn[0], Y: level.Level.Spawn[1]}
	}
	w.player.SetSpawn(spawn, w.config.Jump.AirborneSentinel)

	w.floorY = spawn.Y
	if _, hi, ok := w.grid.Bounds(); ok {
		w.floorY = float64((hi.Y + 1) * entity.TileSize)
	}

	w.level = level
	w.completed = false
	w.screenShake = 0
	w.particles.Clear()
	return nil
}

// Restart reloads the current level from its description
func (w *World) Restart() error {
	if w.level == nil {
		return nil
	}
	log.Debug("Restarting level", "level", w.level.Name)
	return w.LoadLevel(w.level)
}

// Step advances the simulation by dt frame units.
// Order is fixed: destruction, player, particles, then level checks.
func (w *World) Step(dt float64, controls entity.Controls) []system.Event {
	var events []system.Event

	for _, ev := range w.destruction.Update(dt / 60) {
		w.particles.Spawn(ev)
		events = append(events, ev, system.ScreenShakeRequest{Min: w.destruction.ScreenShake()})
	}

	w.player.Controls = controls
	wasGrounded := w.physics.Grounded(w.player)
	landing := w.physics.Update(w.player, dt, w.grid)
	if landing.Landed && !wasGrounded {
		events = append(events, system.Landed{Pos: landing.Pos, ImpactSpeed: landing.ImpactSpeed})
		if landing.ImpactSpeed >= w.config.Physics.LandingDustSpeed {
			w.spawnLandingDust()
		}
	}

	w.particles.Update(dt)

	if w.player.Pos.Y > w.floorY+w.config.Physics.RespawnDepth {
		from := w.player.Pos
		w.player.Respawn(w.config.Jump.AirborneSentinel)
		log.Debug("Player fell out of the level", "x", from.X, "y", from.Y)
		events = append(events, system.Respawned{From: from})
	}

	if !w.completed {
		if portal, ok := w.touchingPortal(); ok {
			w.completed = true
			events = append(events, system.LevelComplete{Portal: portal})
		}
	}

	w.screenShake = max(0, w.screenShake-w.config.Feedback.ShakeDecay*dt)
	return events
}

// RequestScreenShake raises the shake magnitude to at least min
func (w *World) RequestScreenShake(min float64) {
	w.screenShake = max(w.screenShake, min)
}

// spawnLandingDust puffs 2-3 smoke clouds out from the player's feet
func (w *World) spawnLandingDust() {
	box := w.player.AABB()
	feet := entity.Vec2{X: box.Center().X, Y: box.Bottom()}

	n := 2 + w.rng.Intn(2)
	for i := 0; i < n; i++ {
		vel := entity.Vec2{
			X: (w.rng.Float64() - 0.5) * 1.5,
			Y: -0.2 - w.rng.Float64()*0.3,
		}
		w.particles.AddSmoke(feet, vel)
	}
}

// touchingPortal returns the portal tile overlapping the player, if any
func (w *World) touchingPortal() (entity.Coord, bool) {
	box := w.player.AABB()
	for _, t := range w.grid.TilesAround(box.Center()) {
		if t.Type == entity.TilePortal && box.Overlaps(t.Rect()) {
			return t.Pos, true
		}
	}
	return entity.Coord{}, false
}

// Grid returns the tile map (read-only for the host)
func (w *World) Grid() *entity.TileMap {
	return w.grid
}

// Player returns the player body (read-only for the host)
func (w *World) Player() *entity.Player {
	return w.player
}

// Particles returns the particle system (read-only for the host)
func (w *World) Particles() *system.ParticleSystem {
	return w.particles
}

// ScreenShake returns the current shake magnitude
func (w *World) ScreenShake() float64 {
	return w.screenShake
}

// Level returns the loaded level description, or nil before the first load
func (w *World) Level() *config.LevelConfig {
	return w.level
}

// Completed reports whether the player has reached a portal in this level
func (w *World) Completed() bool {
	return w.completed
}
