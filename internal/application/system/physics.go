package system

import (
	"math"

	"github.com/younwookim/crumble/internal/domain/entity"
	"github.com/younwookim/crumble/internal/infrastructure/config"
)

// CollisionGrid supplies the solid rectangles near a pixel position
type CollisionGrid interface {
	PhysicsRectsAround(p entity.Vec2) []entity.Rect
}

// WalkListener is told where the player landed
type WalkListener interface {
	MarkWalkedOn(p entity.Vec2)
}

// Landing describes a downward collision resolved during one update
type Landing struct {
	Landed      bool
	ImpactSpeed float64     // Downward speed just before the collision
	Pos         entity.Vec2 // Center of the last tile landed on
}

// PhysicsSystem moves the player body and resolves it against the tile grid
type PhysicsSystem struct {
	movement *config.MovementConfig
	jump     *config.JumpConfig
	physics  *config.PhysicsSettings

	walk WalkListener
}

// NewPhysicsSystem creates a new physics system.
// walk may be nil when nothing reacts to landings.
func NewPhysicsSystem(cfg *config.TuningConfig, walk WalkListener) *PhysicsSystem {
	return &PhysicsSystem{
		movement: &cfg.Movement,
		jump:     &cfg.Jump,
		physics:  &cfg.Physics,
		walk:     walk,
	}
}

// Update applies one step of input, gravity and collision to the player
func (s *PhysicsSystem) Update(player *entity.Player, dt float64, grid CollisionGrid) Landing {
	s.applyHorizontal(player, dt)
	s.applyVertical(player, dt)

	// X is fully resolved before Y is attempted; this keeps corners from catching
	s.moveX(player, dt, grid)
	return s.moveY(player, dt, grid)
}

// Grounded reports whether the player may jump this frame
func (s *PhysicsSystem) Grounded(player *entity.Player) bool {
	return player.Grounded(s.jump.GroundEpsilon)
}

// applyHorizontal handles horizontal acceleration, deceleration and friction
func (s *PhysicsSystem) applyHorizontal(player *entity.Player, dt float64) {
	m := s.movement
	dir := player.Controls.Horizontal()
	target := dir * m.RunSpeed

	grounded := s.Grounded(player)
	accel, decel, decay := m.Acceleration, m.Deceleration, m.Friction
	if !grounded {
		accel, decel, decay = m.AirAcceleration, m.AirDeceleration, m.AirResistance
	}

	if dir != 0 {
		player.Vel.X = approach(player.Vel.X, target, accel*dt)
	} else {
		player.Vel.X = approach(player.Vel.X, 0, decel*dt)
		// Only ground friction snaps a slow drift to a stop
		if grounded && math.Abs(player.Vel.X) < m.StopEpsilon {
			player.Vel.X = 0
		}
	}

	player.Vel.X *= entity.Decay(decay, dt)

	if math.Abs(player.Vel.X) > m.MaxSpeed {
		player.Vel.X = math.Copysign(m.MaxSpeed, player.Vel.X)
	}
}

// applyVertical applies gravity and the jump impulse
func (s *PhysicsSystem) applyVertical(player *entity.Player, dt float64) {
	player.Vel.Y += s.physics.Gravity * dt
	if player.Vel.Y > s.physics.MaxFallSpeed {
		player.Vel.Y = s.physics.MaxFallSpeed
	}

	player.Falling += dt

	if player.Controls.Up && s.Grounded(player) {
		player.Vel.Y = s.jump.Power
		player.Falling = s.jump.AirborneSentinel
	}
}

// moveX moves the player horizontally and pushes it out of overlapping rects
func (s *PhysicsSystem) moveX(player *entity.Player, dt float64, grid CollisionGrid) {
	dx := player.Vel.X * dt
	player.Pos.X += dx

	box := player.AABB()
	for _, rect := range grid.PhysicsRectsAround(box.Center()) {
		if !box.Overlaps(rect) {
			continue
		}
		if dx > 0 {
			box.X = rect.X - box.W
		} else if dx < 0 {
			box.X = rect.Right()
		}
		player.Pos.X = box.X
		player.Vel.X = 0
	}
}

// moveY moves the player vertically and pushes it out of overlapping rects.
// A downward push is a landing.
func (s *PhysicsSystem) moveY(player *entity.Player, dt float64, grid CollisionGrid) Landing {
	var landing Landing

	dy := player.Vel.Y * dt
	impact := player.Vel.Y
	player.Pos.Y += dy

	box := player.AABB()
	for _, rect := range grid.PhysicsRectsAround(box.Center()) {
		if !box.Overlaps(rect) {
			continue
		}
		if dy > 0 {
			box.Y = rect.Y - box.H
			player.Falling = 0

			landing = Landing{Landed: true, ImpactSpeed: impact, Pos: rect.Center()}
			if s.walk != nil {
				s.walk.MarkWalkedOn(rect.Center())
			}
		} else if dy < 0 {
			box.Y = rect.Bottom()
		}
		player.Pos.Y = box.Y
		player.Vel.Y = 0
	}

	return landing
}

// approach moves v toward target by at most step
func approach(v, target, step float64) float64 {
	if v < target {
		return math.Min(v+step, target)
	}
	return math.Max(v-step, target)
}
