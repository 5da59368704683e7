// Package playing provides the main gameplay scene.
package playing

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/younwookim/crumble/internal/application/replay"
	"github.com/younwookim/crumble/internal/application/scene"
	"github.com/younwookim/crumble/internal/application/state"
	"github.com/younwookim/crumble/internal/application/system"
	"github.com/younwookim/crumble/internal/application/world"
	"github.com/younwookim/crumble/internal/domain/entity"
	"github.com/younwookim/crumble/internal/infrastructure/config"
)

// ErrNoLevels is returned when the scene is created without any level
var ErrNoLevels = errors.New("no levels to play")

// InputReader supplies one frame of input
type InputReader interface {
	GetInput() system.InputState
}

// Options configures a Playing scene
type Options struct {
	Seed       int64
	RecordPath string      // Empty disables recording
	Input      InputReader // Defaults to the live keyboard
	StartLevel int
}

// Playing is the main gameplay scene
type Playing struct {
	config  *config.TuningConfig
	levels  []*config.LevelConfig
	current int

	world *world.World
	state state.GameState
	input InputReader

	screenW int
	screenH int

	// Camera top-left in world pixels, eased toward the player
	camera entity.Vec2
	// Draw-only randomness; never shared with the world so replays stay exact
	shakeRng *rand.Rand

	transitionLeft float64 // frame units until the next level loads
	debug          bool

	seed       int64
	recorder   *replay.Recorder
	recordPath string
}

// New creates a new Playing scene over levels, which are played in order and wrap
func New(cfg *config.TuningConfig, levels []*config.LevelConfig, opts Options) (*Playing, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}

	input := opts.Input
	if input == nil {
		input = system.NewInputSystem()
	}

	p := &Playing{
		config:     cfg,
		levels:     levels,
		state:      state.StatePlaying,
		input:      input,
		screenW:    cfg.Display.ScreenWidth,
		screenH:    cfg.Display.ScreenHeight,
		shakeRng:   rand.New(rand.NewSource(opts.Seed ^ 0x5eed)),
		seed:       opts.Seed,
		recordPath: opts.RecordPath,
	}

	start := opts.StartLevel % len(levels)
	if start < 0 {
		start += len(levels)
	}
	if err := p.loadLevel(start); err != nil {
		return nil, err
	}
	return p, nil
}

// levelSeed derives the world seed for a level so each level's recording stands alone
func (p *Playing) levelSeed(index int) int64 {
	return p.seed + int64(index)
}

// loadLevel builds a fresh world for levels[index]
func (p *Playing) loadLevel(index int) error {
	lvl := p.levels[index]
	seed := p.levelSeed(index)

	w, err := world.New(p.config, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	if err := w.LoadLevel(lvl); err != nil {
		return err
	}

	p.world = w
	p.current = index
	p.state = state.StatePlaying
	p.transitionLeft = 0
	p.camera = p.cameraTarget()

	if p.recordPath != "" {
		p.recorder = replay.NewRecorder(seed, lvl.Name)
		log.Info("Recording enabled", "level", lvl.Name, "seed", seed)
	}
	return nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	in := p.input.GetInput()
	if in.Debug {
		p.debug = !p.debug
	}

	switch p.state {
	case state.StatePlaying:
		return nil, p.updatePlaying(in, dt)
	case state.StatePaused:
		if in.Restart {
			if err := p.restart(); err != nil {
				return nil, err
			}
			p.state = state.StatePlaying
		} else if in.Pause {
			p.state = state.StatePlaying
		}
	case state.StateTransition:
		p.transitionLeft -= dt
		if p.transitionLeft <= 0 {
			next := (p.current + 1) % len(p.levels)
			if err := p.loadLevel(next); err != nil {
				return nil, fmt.Errorf("load level %s: %w", p.levels[next].Name, err)
			}
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying(in system.InputState, dt float64) error {
	if in.Pause {
		p.state = state.StatePaused
		return nil
	}
	if in.Skip {
		p.beginTransition()
		return nil
	}
	if in.Restart {
		if err := p.restart(); err != nil {
			return err
		}
	}

	if p.recorder != nil {
		p.recorder.RecordFrame(in.Controls, dt)
	}

	for _, ev := range p.world.Step(dt, in.Controls) {
		switch ev := ev.(type) {
		case system.LevelComplete:
			log.Info("Level complete", "level", p.Level().Name, "portal_x", ev.Portal.X, "portal_y", ev.Portal.Y)
			p.beginTransition()
		case system.Respawned:
			log.Debug("Respawned", "from_y", ev.From.Y)
		}
	}

	p.updateCamera(dt)
	return nil
}

// restart reloads the current level and flags the recording
func (p *Playing) restart() error {
	if err := p.world.Restart(); err != nil {
		return err
	}
	if p.recorder != nil {
		p.recorder.MarkRestart()
	}
	p.camera = p.cameraTarget()
	return nil
}

// beginTransition saves any recording and starts the fade to the next level
func (p *Playing) beginTransition() {
	p.saveRecording()
	p.state = state.StateTransition
	p.transitionLeft = p.config.Feedback.TransitionFrames
}

// cameraTarget centers the view on the player
func (p *Playing) cameraTarget() entity.Vec2 {
	c := p.world.Player().Center()
	return entity.Vec2{
		X: c.X - float64(p.screenW)/2,
		Y: c.Y - float64(p.screenH)/2,
	}
}

// updateCamera closes a fraction of the gap to the target each frame unit
func (p *Playing) updateCamera(dt float64) {
	target := p.cameraTarget()
	fb := p.config.Feedback
	p.camera.X += (target.X - p.camera.X) * min(1, fb.CameraLerpX*dt)
	p.camera.Y += (target.Y - p.camera.Y) * min(1, fb.CameraLerpY*dt)
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() || p.recorder.FrameCount() == 0 {
		return
	}

	filename := recordingName(p.recordPath, p.Level().Name)
	if err := p.recorder.Save(filename); err != nil {
		log.Error("Failed to save recording", "file", filename, "err", err)
	} else {
		log.Info("Recording saved", "file", filename, "frames", p.recorder.FrameCount())
	}
	p.recorder.Stop()
}

// recordingName inserts the level name before the extension: run.json -> run-0.json
func recordingName(path, level string) string {
	if path == "" {
		path = replay.GenerateFilename()
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + level + ext
}

// OnEnter implements scene.Scene
func (p *Playing) OnEnter() {
	log.Debug("Entering playing scene", "level", p.Level().Name)
}

// OnExit flushes the recording (implements scene.Scene)
func (p *Playing) OnExit() {
	p.saveRecording()
}

// World returns the current level's world
func (p *Playing) World() *world.World {
	return p.world
}

// Level returns the level being played
func (p *Playing) Level() *config.LevelConfig {
	return p.levels[p.current]
}

// State returns the scene state
func (p *Playing) State() state.GameState {
	return p.state
}

// Camera returns the camera's top-left corner in world pixels
func (p *Playing) Camera() entity.Vec2 {
	return p.camera
}
