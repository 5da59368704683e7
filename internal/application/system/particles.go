package system

import (
	"image/color"
	"math/rand"

	"github.com/younwookim/crumble/internal/domain/entity"
	"github.com/younwookim/crumble/internal/infrastructure/config"
)

// SolidChecker reports the solid tile covering a pixel, if any
type SolidChecker interface {
	SolidCheck(p entity.Vec2) (*entity.Tile, bool)
}

// ParticleCounts is a snapshot of live particle totals
type ParticleCounts struct {
	Kickups int
	Sparks  int
	Smokes  int
}

// Total returns the sum over all kinds
func (c ParticleCounts) Total() int {
	return c.Kickups + c.Sparks + c.Smokes
}

// ParticleSystem owns the kickup, spark and smoke collections.
// Expired particles are removed in the same pass that detects them.
type ParticleSystem struct {
	kickupParams entity.KickupParams
	sparkParams  entity.SparkParams
	smokeParams  entity.SmokeParams
	smokeConfig  config.SmokeConfig
	sparkScale   float64
	smokeColor   color.RGBA

	solid SolidChecker
	rng   *rand.Rand

	kickups []entity.Kickup
	sparks  []entity.Spark
	smokes  []entity.Smoke
}

// NewParticleSystem creates an empty particle system.
// solid is queried by kickups for bounces.
func NewParticleSystem(cfg *config.TuningConfig, solid SolidChecker, rng *rand.Rand, smokeColor color.RGBA) *ParticleSystem {
	p := cfg.Particles
	return &ParticleSystem{
		kickupParams: entity.KickupParams{
			Gravity:     p.Kickup.Gravity,
			Shrink:      p.Kickup.Shrink,
			Restitution: p.Kickup.Restitution,
			Damping:     p.Kickup.Damping,
		},
		sparkParams: entity.SparkParams{
			TurnRate:         p.Spark.TurnRate,
			Friction:         p.Spark.Friction,
			Gravity:          p.Spark.Gravity,
			TerminalVelocity: p.Spark.TerminalVelocity,
			Decay:            p.Spark.Decay,
		},
		smokeParams: entity.SmokeParams{
			Damping:     p.Smoke.Damping,
			Duration:    p.Smoke.Duration,
			EaseDivisor: p.Smoke.EaseDivisor,
		},
		smokeConfig: p.Smoke,
		sparkScale:  p.Spark.Scale,
		smokeColor:  smokeColor,
		solid:       solid,
		rng:         rng,
		kickups:     make([]entity.Kickup, 0, 256),
		sparks:      make([]entity.Spark, 0, 256),
		smokes:      make([]entity.Smoke, 0, 16),
	}
}

// Spawn appends the particles carried by a destruction event
func (s *ParticleSystem) Spawn(ev TileDestroyed) {
	s.kickups = append(s.kickups, ev.Kickups...)
	for _, sp := range ev.Sparks {
		if s.sparkScale > 0 {
			sp.Scale *= s.sparkScale
		}
		s.sparks = append(s.sparks, sp)
	}
}

// AddSmoke appends one puff at pos drifting with vel.
// Its spin-down target is picked here, at least two full turns.
func (s *ParticleSystem) AddSmoke(pos, vel entity.Vec2) {
	s.smokes = append(s.smokes, entity.Smoke{
		Pos:            pos,
		Vel:            vel,
		Size:           s.smokeConfig.Size,
		TargetRotation: 720 + s.rng.Float64()*360,
		Color:          s.smokeColor,
	})
}

// Update advances every particle by dt and drops the expired ones
func (s *ParticleSystem) Update(dt float64) {
	isSolid := func(p entity.Vec2) bool {
		_, ok := s.solid.SolidCheck(p)
		return ok
	}

	// Reverse traversal: the swapped-in tail element has already been visited.
	for i := len(s.kickups) - 1; i >= 0; i-- {
		if s.kickups[i].Update(dt, isSolid, s.kickupParams) {
			last := len(s.kickups) - 1
			s.kickups[i] = s.kickups[last]
			s.kickups = s.kickups[:last]
		}
	}

	for i := len(s.sparks) - 1; i >= 0; i-- {
		if s.sparks[i].Update(dt, s.sparkParams) {
			last := len(s.sparks) - 1
			s.sparks[i] = s.sparks[last]
			s.sparks = s.sparks[:last]
		}
	}

	for i := len(s.smokes) - 1; i >= 0; i-- {
		if s.smokes[i].Update(dt, s.smokeParams) {
			last := len(s.smokes) - 1
			s.smokes[i] = s.smokes[last]
			s.smokes = s.smokes[:last]
		}
	}
}

// Counts returns how many particles of each kind are alive
func (s *ParticleSystem) Counts() ParticleCounts {
	return ParticleCounts{
		Kickups: len(s.kickups),
		Sparks:  len(s.sparks),
		Smokes:  len(s.smokes),
	}
}

// Clear drops every particle (level change)
func (s *ParticleSystem) Clear() {
	s.kickups = s.kickups[:0]
	s.sparks = s.sparks[:0]
	s.smokes = s.smokes[:0]
}

// Kickups returns the live kickups (read-only)
func (s *ParticleSystem) Kickups() []entity.Kickup {
	return s.kickups
}

// Sparks returns the live sparks (read-only)
func (s *ParticleSystem) Sparks() []entity.Spark {
	return s.sparks
}

// Smokes returns the live smoke puffs (read-only)
func (s *ParticleSystem) Smokes() []entity.Smoke {
	return s.smokes
}

// SmokeDuration returns the age at which smoke is fully faded, for drawing
func (s *ParticleSystem) SmokeDuration() float64 {
	return s.smokeParams.Duration
}
