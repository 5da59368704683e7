package entity

// Controls holds the four independent directional inputs
type Controls struct {
	Up, Down, Left, Right bool
}

// Horizontal returns -1, 0 or 1 from the opposing left/right inputs.
// Both or neither pressed yields 0.
func (c Controls) Horizontal() float64 {
	switch {
	case c.Left && !c.Right:
		return -1
	case c.Right && !c.Left:
		return 1
	default:
		return 0
	}
}

// Player represents the player's physics body.
// Pos is the top-left corner of the AABB in pixels; velocity is pixels per frame unit.
type Player struct {
	Pos  Vec2
	Vel  Vec2
	Size Vec2

	// Falling counts frame units since the last ground contact
	Falling float64

	Controls Controls
	Spawn    Vec2
}

// NewPlayer creates a player at the spawn point.
// The body starts airborne so it cannot jump before touching ground.
func NewPlayer(spawn, size Vec2, airborne float64) *Player {
	return &Player{
		Pos:     spawn,
		Size:    size,
		Spawn:   spawn,
		Falling: airborne,
	}
}

// AABB returns the body's collision box
func (p *Player) AABB() Rect {
	return Rect{X: p.Pos.X, Y: p.Pos.Y, W: p.Size.X, H: p.Size.Y}
}

// Center returns the center of the AABB
func (p *Player) Center() Vec2 {
	return p.AABB().Center()
}

// Grounded reports whether the last ground contact is within eps frame units.
// The window doubles as coyote time.
func (p *Player) Grounded(eps float64) bool {
	return p.Falling < eps
}

// Respawn moves the body back to spawn and clears its motion
func (p *Player) Respawn(airborne float64) {
	p.Pos = p.Spawn
	p.Vel = Vec2{}
	p.Falling = airborne
}

// SetSpawn changes the spawn point and respawns there (level transition)
func (p *Player) SetSpawn(spawn Vec2, airborne float64) {
	p.Spawn = spawn
	p.Respawn(airborne)
}
