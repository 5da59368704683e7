package entity

// autoTileVariants maps a 4-character adjacency code to a zero-based variant.
// Characters are left, up, right, down; '1' means that neighbour exists and is auto-tiled.
var autoTileVariants = map[string]int{
	"0011": 0,  // top-left
	"1011": 1,  // top
	"1001": 2,  // top-right
	"0001": 3,  // column top
	"0111": 4,  // left
	"1111": 5,  // center
	"1101": 6,  // right
	"0101": 7,  // column middle
	"0110": 8,  // bottom-left
	"1110": 9,  // bottom
	"1100": 10, // bottom-right
	"0100": 11, // column bottom
	"0010": 12, // row left end
	"1010": 13, // row middle
	"1000": 14, // row right end
	"0000": 15, // isolated
}

// auto-tile neighbour order: left, up, right, down
var autoTileDirs = [4]Coord{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}

// AdjacencyCode builds the 4-character neighbour code for the tile at c
func (m *TileMap) AdjacencyCode(c Coord) string {
	var code [4]byte
	for i, d := range autoTileDirs {
		code[i] = '0'
		if n, ok := m.tiles[c.Add(d)]; ok && n.Type.IsAutoTiled() {
			code[i] = '1'
		}
	}
	return string(code[:])
}

// RecomputeAutoTile reassigns the variant of every auto-tiled tile from its neighbours.
// Variants depend only on tile presence and type, so repeated calls are idempotent.
func (m *TileMap) RecomputeAutoTile() {
	for c, t := range m.tiles {
		if !t.Type.IsAutoTiled() {
			continue
		}
		t.Variant = autoTileVariants[m.AdjacencyCode(c)]
	}
}

// ExposedEdges reports which sides of an auto-tiled variant have no neighbour.
// Unknown variants report every side exposed.
func ExposedEdges(variant int) (left, up, right, down bool) {
	for code, v := range autoTileVariants {
		if v == variant {
			return code[0] == '0', code[1] == '0', code[2] == '0', code[3] == '0'
		}
	}
	return true, true, true, true
}
