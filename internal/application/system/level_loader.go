package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/younwookim/crumble/internal/domain/entity"
	"github.com/younwookim/crumble/internal/infrastructure/config"
)

// ErrDuplicateTile is returned when two on-grid tiles share a coordinate
var ErrDuplicateTile = errors.New("duplicate tile position")

// BuildLevel converts a LevelConfig into validated tiles and decorations.
// Type names and variant indices are checked here rather than trusted at draw time.
func BuildLevel(cfg *config.LevelConfig) ([]entity.Tile, []entity.Decoration, error) {
	tiles := make([]entity.Tile, 0, len(cfg.Level.Tiles))
	seen := make(map[entity.Coord]struct{}, len(cfg.Level.Tiles))

	for i, tc := range cfg.Level.Tiles {
		tileType, err := entity.ParseTileType(tc.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("tile %d: %w", i, err)
		}
		if err := tileType.ValidateVariant(tc.Variant); err != nil {
			return nil, nil, fmt.Errorf("tile %d: %w", i, err)
		}

		pos := entity.Coord{X: tc.Pos[0], Y: tc.Pos[1]}
		if _, dup := seen[pos]; dup {
			return nil, nil, fmt.Errorf("tile %d at (%d,%d): %w", i, pos.X, pos.Y, ErrDuplicateTile)
		}
		seen[pos] = struct{}{}

		tiles = append(tiles, entity.Tile{
			Type:    tileType,
			Variant: tc.Variant,
			Pos:     pos,
		})
	}

	decorations := make([]entity.Decoration, 0, len(cfg.Level.OffGrid))
	for i, dc := range cfg.Level.OffGrid {
		tileType, err := entity.ParseTileType(dc.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("off_grid %d: %w", i, err)
		}
		if err := tileType.ValidateVariant(dc.Variant); err != nil {
			return nil, nil, fmt.Errorf("off_grid %d: %w", i, err)
		}

		decorations = append(decorations, entity.Decoration{
			Type:    tileType,
			Variant: dc.Variant,
			Pos:     entity.Vec2{X: dc.Pos[0], Y: dc.Pos[1]},
		})
	}

	return tiles, decorations, nil
}

// LoadLevel validates cfg and replaces the contents of grid with it.
// On error the grid is left untouched.
func LoadLevel(grid *entity.TileMap, cfg *config.LevelConfig) error {
	tiles, decorations, err := BuildLevel(cfg)
	if err != nil {
		return fmt.Errorf("level %s: %w", cfg.Name, err)
	}

	log.Info("Loading level data", "level", cfg.Name, "tiles", len(tiles), "off_grid", len(decorations))
	grid.Load(tiles, decorations)
	return nil
}
