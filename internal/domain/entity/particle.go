package entity

import (
	"image/color"
	"math"
)

// Kickup is a debris pixel thrown out of a destroyed tile.
// It bounces off solid tiles and shrinks until it disappears.
type Kickup struct {
	Pos         Vec2
	Vel         Vec2
	Size        float64
	InitialSize float64
	Color       color.RGBA
}

// KickupParams tunes kickup dynamics (per frame unit)
type KickupParams struct {
	Gravity     float64 // added to Vel.Y
	Shrink      float64 // subtracted from Size
	Restitution float64 // velocity kept on the bounced axis
	Damping     float64 // factor applied to the other axis on bounce
}

// Update advances the particle. isSolid reports whether a pixel is inside a solid tile.
// Returns true once the particle has expired.
func (k *Kickup) Update(dt float64, isSolid func(Vec2) bool, p KickupParams) bool {
	k.Pos.X += k.Vel.X * dt
	if isSolid(k.Pos) {
		k.Pos.X -= k.Vel.X * dt
		k.Vel.X = -k.Vel.X * p.Restitution
		k.Vel.Y *= p.Damping
	}

	k.Pos.Y += k.Vel.Y * dt
	if isSolid(k.Pos) {
		k.Pos.Y -= k.Vel.Y * dt
		k.Vel.Y = -k.Vel.Y * p.Restitution
		k.Vel.X *= p.Damping
	}

	k.Vel.Y += p.Gravity * dt
	k.Size -= p.Shrink * dt
	return k.Size <= 0
}

// Alpha returns the draw opacity (0-1), proportional to remaining size
func (k *Kickup) Alpha() float64 {
	if k.InitialSize <= 0 {
		return 0
	}
	return clamp01(k.Size / k.InitialSize)
}

// Spark is a directional streak stored in polar form
type Spark struct {
	Pos    Vec2
	Angle  float64 // radians
	Speed  float64
	Scale  float64
	Color  color.RGBA
	Spinny bool
}

// SparkParams tunes spark dynamics (per frame unit)
type SparkParams struct {
	TurnRate         float64 // radians turned toward straight down
	Friction         float64 // horizontal decay factor
	Gravity          float64
	TerminalVelocity float64 // max downward component
	Decay            float64 // subtracted from Speed
}

// Velocity returns the cartesian velocity derived from angle and speed
func (s *Spark) Velocity() Vec2 {
	return Vec2{X: math.Cos(s.Angle) * s.Speed, Y: math.Sin(s.Angle) * s.Speed}
}

// PointTowards turns the spark toward target by rate*dt, snapping when within rate
func (s *Spark) PointTowards(target, rate, dt float64) {
	diff := math.Mod(target-s.Angle+math.Pi*3, math.Pi*2)
	if diff < 0 {
		diff += math.Pi * 2
	}
	diff -= math.Pi

	if math.Abs(diff) < rate {
		s.Angle = target
		return
	}
	s.Angle += rate * signOf(diff) * dt
}

// Update advances the spark. Returns true once it has expired.
func (s *Spark) Update(dt float64, p SparkParams) bool {
	s.Pos = s.Pos.Add(s.Velocity().Scale(dt))

	s.PointTowards(math.Pi/2, p.TurnRate, dt)

	v := s.Velocity()
	v.Y = math.Min(p.TerminalVelocity, v.Y+p.Gravity*dt)
	v.X *= Decay(p.Friction, dt)
	s.Angle = math.Atan2(v.Y, v.X)
	s.Speed = v.Len()

	s.Speed -= p.Decay * dt
	return s.Speed <= 0
}

// Polygon returns the spark outline: 4 points, or 6 for the spinny variant
func (s *Spark) Polygon() []Vec2 {
	at := func(angle, length float64) Vec2 {
		return Vec2{X: s.Pos.X + math.Cos(angle)*length, Y: s.Pos.Y + math.Sin(angle)*length}
	}

	if !s.Spinny {
		l := s.Speed * s.Scale
		return []Vec2{
			at(s.Angle, l),
			at(s.Angle+math.Pi/2, l*0.5),
			at(s.Angle, -l*3.5),
			at(s.Angle-math.Pi/2, l*0.5),
		}
	}

	wobble := math.Sin(s.Speed*20) * math.Pi * 0.5
	return []Vec2{
		at(s.Angle+wobble, s.Speed*3),
		at(s.Angle+math.Pi*0.125, s.Speed*2),
		at(s.Angle+math.Pi*0.5, s.Speed*0.5),
		at(s.Angle+math.Pi, s.Speed*3),
		at(s.Angle-math.Pi*0.5, s.Speed*0.5),
		at(s.Angle-math.Pi*0.125, s.Speed*2),
	}
}

// Smoke is a rising puff that spins down, grows and fades out
type Smoke struct {
	Pos            Vec2
	Vel            Vec2
	Size           float64
	Rotation       float64 // degrees
	TargetRotation float64 // degrees, picked once at spawn
	Age            float64
	Color          color.RGBA
}

// SmokeParams tunes smoke dynamics (per frame unit)
type SmokeParams struct {
	Damping     float64 // velocity decay factor
	Duration    float64 // age at which the puff is fully faded
	EaseDivisor float64 // rotation closes 1/EaseDivisor of the gap per frame
}

// Update advances the puff. Returns true once it has expired.
func (s *Smoke) Update(dt float64, p SmokeParams) bool {
	s.Pos = s.Pos.Add(s.Vel.Scale(dt))
	s.Vel = s.Vel.Scale(Decay(p.Damping, dt))
	s.Age += dt
	s.Rotation += (s.TargetRotation - s.Rotation) / p.EaseDivisor * dt
	return s.Age > p.Duration
}

// Alpha returns the draw opacity, fading linearly to zero at duration
func (s *Smoke) Alpha(duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return clamp01(1 - s.Age/duration)
}

// Extent returns the drawn edge length, growing with age
func (s *Smoke) Extent(duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return 1 + s.Size*math.Min(s.Age/duration, 1)
}

// signOf returns the sign of v, treating zero as positive
func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
