package entity

import (
	"math"
	"sort"
)

// neighborhood is the fixed 3x3 offset set (center included) used by spatial queries
var neighborhood = [9]Coord{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {0, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// TileMap is sparse tile storage keyed by grid coordinate.
// A tile is part of the level if and only if it is present in the map.
type TileMap struct {
	tiles   map[Coord]*Tile
	offGrid []Decoration
}

// NewTileMap creates an empty tile map
func NewTileMap() *TileMap {
	return &TileMap{tiles: make(map[Coord]*Tile)}
}

// Load replaces all tiles and decorations.
// Every tile starts pristine (not walked on, timer zero).
func (m *TileMap) Load(tiles []Tile, decorations []Decoration) {
	m.tiles = make(map[Coord]*Tile, len(tiles))
	for _, t := range tiles {
		t.WalkedOn = false
		t.DestructionTimer = 0
		tile := t
		m.tiles[t.Pos] = &tile
	}
	m.offGrid = append([]Decoration(nil), decorations...)
}

// Get returns the tile at c
func (m *TileMap) Get(c Coord) (*Tile, bool) {
	t, ok := m.tiles[c]
	return t, ok
}

// Remove deletes the tile at c. Removing an absent tile is a no-op.
func (m *TileMap) Remove(c Coord) {
	delete(m.tiles, c)
}

// Len returns the number of on-grid tiles
func (m *TileMap) Len() int {
	return len(m.tiles)
}

// Decorations returns the off-grid decorations (read-only)
func (m *TileMap) Decorations() []Decoration {
	return m.offGrid
}

// TilesAround returns the existing tiles in the 3x3 cell block around a pixel position.
// Order is unspecified.
func (m *TileMap) TilesAround(p Vec2) []*Tile {
	center := CoordAt(p)
	out := make([]*Tile, 0, len(neighborhood))
	for _, off := range neighborhood {
		if t, ok := m.tiles[center.Add(off)]; ok {
			out = append(out, t)
		}
	}
	return out
}

// PhysicsRectsAround returns collision boxes of solid tiles around a pixel position
func (m *TileMap) PhysicsRectsAround(p Vec2) []Rect {
	var rects []Rect
	for _, t := range m.TilesAround(p) {
		if t.Type.IsSolid() {
			rects = append(rects, t.Rect())
		}
	}
	return rects
}

// SolidCheck returns the tile at the cell containing p if it is solid
func (m *TileMap) SolidCheck(p Vec2) (*Tile, bool) {
	t, ok := m.tiles[CoordAt(p)]
	if !ok || !t.Type.IsSolid() {
		return nil, false
	}
	return t, true
}

// TilesIn returns the tiles whose cells intersect r, scanning row-major.
// Used by the renderer to draw only the visible range.
func (m *TileMap) TilesIn(r Rect) []*Tile {
	lo := CoordAt(Vec2{X: r.X, Y: r.Y})
	hi := CoordAt(Vec2{X: r.Right(), Y: r.Bottom()})

	var out []*Tile
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			if t, ok := m.tiles[Coord{x, y}]; ok {
				out = append(out, t)
			}
		}
	}
	return out
}

// Bounds returns the smallest and largest occupied coordinates.
// ok is false for an empty map.
func (m *TileMap) Bounds() (lo, hi Coord, ok bool) {
	if len(m.tiles) == 0 {
		return Coord{}, Coord{}, false
	}
	lo = Coord{math.MaxInt, math.MaxInt}
	hi = Coord{math.MinInt, math.MinInt}
	for c := range m.tiles {
		lo.X = min(lo.X, c.X)
		lo.Y = min(lo.Y, c.Y)
		hi.X = max(hi.X, c.X)
		hi.Y = max(hi.Y, c.Y)
	}
	return lo, hi, true
}

// Snapshot returns a copy of every tile sorted row-major
func (m *TileMap) Snapshot() []Tile {
	out := make([]Tile, 0, len(m.tiles))
	for _, t := range m.tiles {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pos.Less(out[j].Pos) })
	return out
}

// Armed returns the coordinates of tiles counting down to removal, sorted row-major
func (m *TileMap) Armed() []Coord {
	var out []Coord
	for c, t := range m.tiles {
		if t.Armed() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
