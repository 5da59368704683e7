package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/younwookim/crumble/internal/application/replay"
	"github.com/younwookim/crumble/internal/application/world"
	"github.com/younwookim/crumble/internal/infrastructure/config"
)

// errUnknownLevel is returned when a recording names a level that cannot be found
var errUnknownLevel = errors.New("recorded level not available")

func newReplayCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file>",
		Short: "Play back a recorded level attempt without a window and print the outcome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.OutOrStdout(), args[0], root.tuning, root.level)
		},
	}
}

// runReplay replays the recording at path. levelFile, when set, supplies the level
// instead of looking the recorded name up among the configured levels.
func runReplay(out io.Writer, path, tuningPath, levelFile string) error {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return err
	}

	cfg, levels, err := loadConfig(tuningPath)
	if err != nil {
		return err
	}

	var level *config.LevelConfig
	if levelFile != "" {
		if level, err = config.LoadLevelFile(levelFile); err != nil {
			return err
		}
	} else {
		for _, lvl := range levels {
			if lvl.Name == data.Level {
				level = lvl
				break
			}
		}
	}
	if level == nil {
		return fmt.Errorf("%w: %q", errUnknownLevel, data.Level)
	}

	w, err := world.New(cfg, rand.New(rand.NewSource(data.Seed)))
	if err != nil {
		return err
	}
	if err := w.LoadLevel(level); err != nil {
		return err
	}

	sum, err := replay.Run(w, replay.NewReplayer(*data))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "level=%s seed=%d %s\n", level.Name, data.Seed, sum)
	return err
}
