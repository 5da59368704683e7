package main

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/crumble/internal/application/game"
	"github.com/younwookim/crumble/internal/application/scene/playing"
	"github.com/younwookim/crumble/internal/infrastructure/config"
)

type rootOptions struct {
	debug  bool
	tuning string
	level  string
	seed   int64
	record string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "crumble",
		Short:        "Platformer where clouds crumble under your feet",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogger(cmd.ErrOrStderr(), opts.debug)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	pf.StringVar(&opts.tuning, "tuning", "", "tuning JSON file (defaults to the built-in tuning)")
	pf.StringVar(&opts.level, "level", "", "level name or level file to start on")

	f := cmd.Flags()
	f.Int64Var(&opts.seed, "seed", 0, "random seed (0 picks one from the clock)")
	f.StringVar(&opts.record, "record", "", "record input to this file (one file per level)")

	cmd.AddCommand(newReplayCmd(opts), newCheckCmd())
	return cmd
}

// loadConfig reads the embedded configs, with an optional tuning file on top
func loadConfig(tuningPath string) (*config.TuningConfig, []*config.LevelConfig, error) {
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, nil, fmt.Errorf("config subfs: %w", err)
	}
	loader := config.NewFSLoader(fsys)

	if tuningPath == "" {
		return loader.LoadAll()
	}

	tuning, err := config.LoadTuningFile(tuningPath)
	if err != nil {
		return nil, nil, err
	}
	levels := make([]*config.LevelConfig, 0, len(tuning.Levels))
	for _, name := range tuning.Levels {
		lvl, err := loader.LoadLevel(name)
		if err != nil {
			return nil, nil, err
		}
		levels = append(levels, lvl)
	}
	return tuning, levels, nil
}

// resolveLevel picks the starting level. arg may name a configured level or a file on disk;
// an unreadable file falls back to the configured levels with a warning.
func resolveLevel(arg string, levels []*config.LevelConfig) ([]*config.LevelConfig, int) {
	if arg == "" {
		return levels, 0
	}
	for i, lvl := range levels {
		if lvl.Name == arg {
			return levels, i
		}
	}

	log.Info("Loading level data", "path", arg)
	lvl, err := config.LoadLevelFile(arg)
	if err != nil {
		log.Warn("Falling back to built-in levels", "path", arg, "err", err)
		return levels, 0
	}
	return append([]*config.LevelConfig{lvl}, levels...), 0
}

func runPlay(opts *rootOptions) error {
	cfg, levels, err := loadConfig(opts.tuning)
	if err != nil {
		return err
	}
	levels, start := resolveLevel(opts.level, levels)

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Debug("Starting", "seed", seed, "levels", len(levels))

	scene, err := playing.New(cfg, levels, playing.Options{
		Seed:       seed,
		RecordPath: opts.record,
		StartLevel: start,
	})
	if err != nil {
		return err
	}

	d := cfg.Display
	g := game.New(scene, d.ScreenWidth, d.ScreenHeight, d.MaxFrameDT)

	ebiten.SetWindowSize(d.ScreenWidth*d.Scale, d.ScreenHeight*d.Scale)
	ebiten.SetWindowTitle("crumble")
	ebiten.SetTPS(d.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	scene.OnExit()
	return nil
}
