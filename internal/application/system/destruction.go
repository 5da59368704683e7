package system

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/younwookim/crumble/internal/domain/entity"
	"github.com/younwookim/crumble/internal/infrastructure/config"
)

// destructionBlock is the 3x3 block armed by a landing, relative to the landing cell.
// It sits one cell above the landing so the row stood on and the two above it crumble.
// Row-major, top-left first; the index sets the stagger.
var destructionBlock = [9]entity.Coord{
	{X: -1, Y: -2}, {X: 0, Y: -2}, {X: 1, Y: -2},
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0},
}

var sparkColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// DestructionSystem arms destructible tiles that were walked on and removes them
// when their timers run out
type DestructionSystem struct {
	config  *config.DestructionConfig
	grid    *entity.TileMap
	rng     *rand.Rand
	palette []color.RGBA

	// Event callbacks
	OnDestroyed   func(ev TileDestroyed)
	OnScreenShake func(min float64)
}

// NewDestructionSystem creates a destruction system over grid.
// An empty palette falls back to white debris.
func NewDestructionSystem(cfg *config.TuningConfig, grid *entity.TileMap, rng *rand.Rand, palette []color.RGBA) *DestructionSystem {
	if len(palette) == 0 {
		palette = []color.RGBA{sparkColor}
	}
	return &DestructionSystem{
		config:  &cfg.Destruction,
		grid:    grid,
		rng:     rng,
		palette: palette,
	}
}

// MarkWalkedOn arms the destructible tiles in the block around a landing position.
// Tiles that are already armed keep their timers.
func (s *DestructionSystem) MarkWalkedOn(landing entity.Vec2) {
	base := entity.CoordAt(landing)

	for i, off := range destructionBlock {
		tile, ok := s.grid.Get(base.Add(off))
		if !ok || !tile.Type.IsDestructible() || tile.WalkedOn {
			continue
		}
		tile.WalkedOn = true
		tile.DestructionTimer = s.config.BaseTime + float64(i)*s.config.Stagger
	}
}

// Update counts down armed tiles by dtSeconds and removes the expired ones.
// Armed tiles are visited in row-major order so seeded runs stay reproducible.
func (s *DestructionSystem) Update(dtSeconds float64) []TileDestroyed {
	armed := s.grid.Armed()
	if len(armed) == 0 {
		return nil
	}

	var destroyed []TileDestroyed
	for _, c := range armed {
		tile, ok := s.grid.Get(c)
		if !ok || !tile.Type.IsDestructible() {
			continue
		}

		tile.DestructionTimer -= dtSeconds
		if tile.DestructionTimer > 0 {
			continue
		}

		s.grid.Remove(c)
		destroyed = append(destroyed, s.destroyEvent(tile))
	}

	if len(destroyed) == 0 {
		return nil
	}

	s.grid.RecomputeAutoTile()
	log.Debug("Tiles destroyed", "count", len(destroyed), "remaining", s.grid.Len())

	for _, ev := range destroyed {
		if s.OnScreenShake != nil {
			s.OnScreenShake(s.config.ScreenShake)
		}
		if s.OnDestroyed != nil {
			s.OnDestroyed(ev)
		}
	}
	return destroyed
}

// ScreenShake returns the shake floor requested per destroyed tile
func (s *DestructionSystem) ScreenShake() float64 {
	return s.config.ScreenShake
}

func (s *DestructionSystem) destroyEvent(tile *entity.Tile) TileDestroyed {
	center := tile.Rect().Center()

	kickups := make([]entity.Kickup, s.randCount(s.config.KickupMin, s.config.KickupMax))
	for i := range kickups {
		dir := s.randAngle()
		jitter := s.rng.Float64() * entity.TileSize / 2
		size := s.randRange(s.config.KickupSizeMin, s.config.KickupSizeMax)
		speed := s.rng.Float64() * s.config.KickupSpeed

		kickups[i] = entity.Kickup{
			Pos:         center.Add(entity.Vec2{X: math.Cos(dir), Y: math.Sin(dir)}.Scale(jitter)),
			Vel:         entity.Vec2{X: math.Cos(dir), Y: math.Sin(dir)}.Scale(speed),
			Size:        size,
			InitialSize: size,
			Color:       s.palette[s.rng.Intn(len(s.palette))],
		}
	}

	sparks := make([]entity.Spark, s.randCount(s.config.SparkMin, s.config.SparkMax))
	for i := range sparks {
		sparks[i] = entity.Spark{
			Pos:    center,
			Angle:  s.randAngle(),
			Speed:  s.randRange(s.config.SparkSpeedMin, s.config.SparkSpeedMax),
			Scale:  1,
			Color:  sparkColor,
			Spinny: s.spinny(i),
		}
	}

	return TileDestroyed{
		Coord:   tile.Pos,
		Type:    tile.Type,
		Center:  center,
		Kickups: kickups,
		Sparks:  sparks,
	}
}

// spinny picks the sparks drawn with the six-point outline
func (s *DestructionSystem) spinny(i int) bool {
	n := s.config.SpinnyEvery
	return n > 0 && (i+1)%n == 0
}

// randCount returns an integer in [lo, hi]
func (s *DestructionSystem) randCount(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *DestructionSystem) randRange(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *DestructionSystem) randAngle() float64 {
	return s.rng.Float64() * 2 * math.Pi
}
