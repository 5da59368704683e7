package entity

import (
	"errors"
	"fmt"
	"math"
)

// TileSize is the edge length of one grid cell in pixels
const TileSize = 8

var (
	// ErrUnknownTileType is returned when a level names a tile type that does not exist
	ErrUnknownTileType = errors.New("unknown tile type")
	// ErrInvalidVariant is returned when a variant index is out of range for its type
	ErrInvalidVariant = errors.New("invalid tile variant")
)

// Coord is an integer grid coordinate (tile space, not pixel space)
type Coord struct {
	X, Y int
}

// CoordAt converts a pixel position to the grid cell containing it
func CoordAt(p Vec2) Coord {
	return Coord{
		X: int(math.Floor(p.X / TileSize)),
		Y: int(math.Floor(p.Y / TileSize)),
	}
}

// Add returns c offset by o
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Rect returns the pixel-space box covered by the cell
func (c Coord) Rect() Rect {
	return Rect{X: float64(c.X * TileSize), Y: float64(c.Y * TileSize), W: TileSize, H: TileSize}
}

// Center returns the pixel-space center of the cell
func (c Coord) Center() Vec2 {
	return c.Rect().Center()
}

// Less orders coordinates row-major (Y first, then X)
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// TileType represents the type of a tile
type TileType int

const (
	TileStone TileType = iota
	TileCloud
	TileGrass
	TilePortal
	TileDecor
)

var tileTypeNames = map[TileType]string{
	TileStone:  "stone",
	TileCloud:  "cloud",
	TileGrass:  "grass",
	TilePortal: "portal",
	TileDecor:  "decor",
}

// ParseTileType converts a level-file type name into a TileType
func ParseTileType(name string) (TileType, error) {
	for t, n := range tileTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTileType, name)
}

// String returns the level-file name of the type
func (t TileType) String() string {
	if n, ok := tileTypeNames[t]; ok {
		return n
	}
	return "unknown"
}

// IsSolid reports whether the player and kickup debris collide with the type
func (t TileType) IsSolid() bool {
	return t == TileStone || t == TileCloud
}

// IsDestructible reports whether walking on the type arms its destruction timer
func (t TileType) IsDestructible() bool {
	return t == TileCloud
}

// IsAutoTiled reports whether the variant is derived from neighbours
func (t TileType) IsAutoTiled() bool {
	return t == TileStone || t == TileCloud
}

// VariantCount returns how many visual variants exist for the type
func (t TileType) VariantCount() int {
	switch {
	case t.IsAutoTiled():
		return len(autoTileVariants)
	case t == TilePortal:
		return 1
	default:
		return 4
	}
}

// ValidateVariant checks that v is a usable variant index for the type
func (t TileType) ValidateVariant(v int) error {
	if v < 0 || v >= t.VariantCount() {
		return fmt.Errorf("%w: %s has %d variants, got %d", ErrInvalidVariant, t, t.VariantCount(), v)
	}
	return nil
}

// Tile represents a single on-grid tile in the level
type Tile struct {
	Type    TileType
	Variant int
	Pos     Coord

	// Destruction state. WalkedOn never resets while the tile exists.
	WalkedOn         bool
	DestructionTimer float64 // seconds
}

// Armed reports whether the tile is counting down to removal
func (t *Tile) Armed() bool {
	return t.WalkedOn && t.Type.IsDestructible()
}

// Rect returns the tile's collision box in pixel space
func (t *Tile) Rect() Rect {
	return t.Pos.Rect()
}

// Decoration is a purely visual off-grid tile
type Decoration struct {
	Type    TileType
	Variant int
	Pos     Vec2
}
