package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/younwookim/crumble/internal/application/system"
	"github.com/younwookim/crumble/internal/domain/entity"
	"github.com/younwookim/crumble/internal/infrastructure/config"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <level-file>",
		Short: "Validate a level description and print tile statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), args[0])
		},
	}
}

// levelStats summarizes a validated level
type levelStats struct {
	Tiles        int
	Decorations  int
	ByType       map[entity.TileType]int
	Destructible int
	Portals      int
	Min, Max     entity.Coord
	// Auto-tiled tiles whose authored variant differs from their neighbours
	VariantDrift int
}

func collectStats(lvl *config.LevelConfig) (levelStats, error) {
	tiles, decorations, err := system.BuildLevel(lvl)
	if err != nil {
		return levelStats{}, err
	}

	grid := entity.NewTileMap()
	grid.Load(tiles, decorations)

	st := levelStats{
		Tiles:       len(tiles),
		Decorations: len(decorations),
		ByType:      make(map[entity.TileType]int),
	}
	st.Min, st.Max, _ = grid.Bounds()

	authored := grid.Snapshot()
	grid.RecomputeAutoTile()
	recomputed := grid.Snapshot()

	for i, t := range authored {
		st.ByType[t.Type]++
		if t.Type.IsDestructible() {
			st.Destructible++
		}
		if t.Type == entity.TilePortal {
			st.Portals++
		}
		if t.Variant != recomputed[i].Variant {
			st.VariantDrift++
		}
	}
	return st, nil
}

func runCheck(out io.Writer, path string) error {
	lvl, err := config.LoadLevelFile(path)
	if err != nil {
		return err
	}
	st, err := collectStats(lvl)
	if err != nil {
		return err
	}

	types := make([]entity.TileType, 0, len(st.ByType))
	for t := range st.ByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	fmt.Fprintf(out, "level: %s\n", lvl.Name)
	fmt.Fprintf(out, "tiles: %d\n", st.Tiles)
	fmt.Fprintf(out, "off_grid: %d\n", st.Decorations)
	for _, t := range types {
		fmt.Fprintf(out, "  %s: %d\n", t, st.ByType[t])
	}
	fmt.Fprintf(out, "destructible: %d\n", st.Destructible)
	fmt.Fprintf(out, "portals: %d\n", st.Portals)
	if st.Tiles > 0 {
		fmt.Fprintf(out, "bounds: (%d,%d)-(%d,%d)\n", st.Min.X, st.Min.Y, st.Max.X, st.Max.Y)
	}
	_, err = fmt.Fprintf(out, "variant drift: %d\n", st.VariantDrift)
	return err
}
