package replay

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/younwookim/crumble/internal/application/system"
	"github.com/younwookim/crumble/internal/application/world"
	"github.com/younwookim/crumble/internal/domain/entity"
)

// Summary describes the state of a world after a headless replay
type Summary struct {
	Frames          int
	Player          entity.Vec2
	TilesRemaining  int
	TilesDestroyed  int
	Landings        int
	Respawns        int
	Restarts        int
	LevelsCompleted int
}

// String formats the summary for terminal output
func (s Summary) String() string {
	return fmt.Sprintf("frames=%d player=(%.2f,%.2f) tiles=%d destroyed=%d landings=%d respawns=%d restarts=%d completed=%d",
		s.Frames, s.Player.X, s.Player.Y, s.TilesRemaining, s.TilesDestroyed,
		s.Landings, s.Respawns, s.Restarts, s.LevelsCompleted)
}

// Run feeds every remaining recorded frame to w.
// w must already hold the recorded level and be seeded with the recorded seed.
func Run(w *world.World, r *Replayer) (Summary, error) {
	var sum Summary

	for {
		fi, ok := r.Next()
		if !ok {
			break
		}

		if fi.RS {
			if err := w.Restart(); err != nil {
				return sum, fmt.Errorf("frame %d: %w", fi.F, err)
			}
			sum.Restarts++
		}

		for _, ev := range w.Step(fi.DT, fi.Controls()) {
			switch ev.(type) {
			case system.TileDestroyed:
				sum.TilesDestroyed++
			case system.Landed:
				sum.Landings++
			case system.Respawned:
				sum.Respawns++
			case system.LevelComplete:
				sum.LevelsCompleted++
			}
		}
		sum.Frames++
	}

	sum.Player = w.Player().Pos
	sum.TilesRemaining = w.Grid().Len()
	log.Debug("Replay finished", "level", r.Level(), "frames", sum.Frames, "destroyed", sum.TilesDestroyed)
	return sum, nil
}
