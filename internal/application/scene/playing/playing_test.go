package playing

import (
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/crumble/internal/application/replay"
	"github.com/younwookim/crumble/internal/application/scene"
	"github.com/younwookim/crumble/internal/application/state"
	"github.com/younwookim/crumble/internal/application/system"
	"github.com/younwookim/crumble/internal/application/world"
	"github.com/younwookim/crumble/internal/domain/entity"
	"github.com/younwookim/crumble/internal/infrastructure/config"
)

// scriptedInput replays a fixed list of input states, then reports no input
type scriptedInput struct {
	frames []system.InputState
	next   int
}

func (s *scriptedInput) GetInput() system.InputState {
	if s.next >= len(s.frames) {
		return system.InputState{}
	}
	in := s.frames[s.next]
	s.next++
	return in
}

func (s *scriptedInput) push(in ...system.InputState) {
	s.frames = append(s.frames, in...)
}

// createFloorLevel creates a stone floor with a cloud section
func createFloorLevel() *config.LevelConfig {
	spawn := [2]float64{20, 60}
	lvl := &config.LevelConfig{Name: "floor", Level: config.LevelData{Spawn: &spawn}}
	for x := 0; x < 10; x++ {
		tileType := "stone"
		if x < 5 {
			tileType = "cloud"
		}
		lvl.Level.Tiles = append(lvl.Level.Tiles, config.TileConfig{Pos: [2]int{x, 10}, Type: tileType})
	}
	return lvl
}

// createPortalLevel spawns the player overlapping a portal
func createPortalLevel() *config.LevelConfig {
	spawn := [2]float64{17, 14}
	lvl := &config.LevelConfig{Name: "exit", Level: config.LevelData{Spawn: &spawn}}
	for x := 0; x < 6; x++ {
		lvl.Level.Tiles = append(lvl.Level.Tiles, config.TileConfig{Pos: [2]int{x, 4}, Type: "stone"})
	}
	lvl.Level.Tiles = append(lvl.Level.Tiles, config.TileConfig{Pos: [2]int{2, 2}, Type: "portal"})
	return lvl
}

func createTestPlaying(t *testing.T, opts Options) (*Playing, *scriptedInput) {
	t.Helper()
	input := &scriptedInput{}
	opts.Input = input
	p, err := New(config.DefaultTuning(), []*config.LevelConfig{createFloorLevel(), createPortalLevel()}, opts)
	require.NoError(t, err)
	return p, input
}

func update(t *testing.T, p *Playing, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := p.Update(1)
		require.NoError(t, err)
	}
}

func TestPlaying_ImplementsScene(t *testing.T) {
	var _ scene.Scene = (*Playing)(nil)
}

func TestNewPlaying(t *testing.T) {
	p, _ := createTestPlaying(t, Options{Seed: 1})

	assert.Equal(t, "floor", p.Level().Name)
	assert.Equal(t, state.StatePlaying, p.State())
	assert.Equal(t, entity.Vec2{X: 20, Y: 60}, p.World().Player().Pos)
	assert.Nil(t, p.recorder)
}

func TestNewPlaying_Errors(t *testing.T) {
	_, err := New(config.DefaultTuning(), nil, Options{Input: &scriptedInput{}})
	assert.ErrorIs(t, err, ErrNoLevels)

	bad := &config.LevelConfig{Name: "bad", Level: config.LevelData{Tiles: []config.TileConfig{{Type: "lava"}}}}
	_, err = New(config.DefaultTuning(), []*config.LevelConfig{bad}, Options{Input: &scriptedInput{}})
	assert.ErrorIs(t, err, entity.ErrUnknownTileType)
}

func TestNewPlaying_StartLevelWraps(t *testing.T) {
	p, _ := createTestPlaying(t, Options{StartLevel: 3})
	assert.Equal(t, "exit", p.Level().Name)

	p, _ = createTestPlaying(t, Options{StartLevel: -1})
	assert.Equal(t, "exit", p.Level().Name)
}

func TestPlaying_Update_StepsWorld(t *testing.T) {
	p, _ := createTestPlaying(t, Options{})

	next, err := p.Update(1)

	assert.NoError(t, err)
	assert.Nil(t, next, "Should return nil when continuing to play")
	assert.InDelta(t, 60.1, p.World().Player().Pos.Y, 1e-9)
}

func TestPlaying_CameraEasesTowardPlayer(t *testing.T) {
	p, _ := createTestPlaying(t, Options{})

	// Centered on the player at load: center (23.5, 66) minus half the 320x240 screen
	require.Equal(t, entity.Vec2{X: -136.5, Y: -54}, p.Camera())

	update(t, p, 1)

	// Player fell 0.1; the camera closes 5% of that vertically
	assert.InDelta(t, -54+0.1*0.05, p.Camera().Y, 1e-9)
	assert.InDelta(t, -136.5, p.Camera().X, 1e-9)
}

func TestPlaying_PauseFreezesWorld(t *testing.T) {
	p, input := createTestPlaying(t, Options{})
	input.push(system.InputState{Pause: true})

	update(t, p, 1)
	assert.Equal(t, state.StatePaused, p.State())

	update(t, p, 10)
	assert.Equal(t, 60.0, p.World().Player().Pos.Y, "world does not advance while paused")

	input.push(system.InputState{Pause: true})
	update(t, p, 1)
	assert.Equal(t, state.StatePlaying, p.State())
}

func TestPlaying_RestartFromPause(t *testing.T) {
	p, input := createTestPlaying(t, Options{})
	update(t, p, 20)
	require.NotEqual(t, 60.0, p.World().Player().Pos.Y)

	input.push(system.InputState{Pause: true}, system.InputState{Restart: true})
	update(t, p, 2)

	assert.Equal(t, state.StatePlaying, p.State())
	assert.Equal(t, entity.Vec2{X: 20, Y: 60}, p.World().Player().Pos)
}

func TestPlaying_SkipTransitionsToNextLevel(t *testing.T) {
	p, input := createTestPlaying(t, Options{})
	input.push(system.InputState{Skip: true})

	update(t, p, 1)
	assert.Equal(t, state.StateTransition, p.State())
	assert.Equal(t, "floor", p.Level().Name)

	update(t, p, 29)
	assert.Equal(t, state.StateTransition, p.State(), "fade still running")

	update(t, p, 1)
	assert.Equal(t, state.StatePlaying, p.State())
	assert.Equal(t, "exit", p.Level().Name)
}

func TestPlaying_PortalCompletesAndWraps(t *testing.T) {
	p, _ := createTestPlaying(t, Options{StartLevel: 1})

	update(t, p, 1)
	assert.Equal(t, state.StateTransition, p.State())

	update(t, p, 30)
	assert.Equal(t, state.StatePlaying, p.State())
	assert.Equal(t, "floor", p.Level().Name, "levels wrap around")
}

func TestPlaying_DebugToggle(t *testing.T) {
	p, input := createTestPlaying(t, Options{})
	input.push(system.InputState{Debug: true}, system.InputState{}, system.InputState{Debug: true})

	update(t, p, 1)
	assert.True(t, p.debug)
	update(t, p, 2)
	assert.False(t, p.debug)
}

func TestPlaying_RecordingReplaysExactly(t *testing.T) {
	dir := t.TempDir()
	p, input := createTestPlaying(t, Options{Seed: 77, RecordPath: filepath.Join(dir, "run.json")})
	require.NotNil(t, p.recorder)

	for i := 0; i < 200; i++ {
		input.push(system.InputState{
			Controls: entity.Controls{Right: i > 60 && i < 90, Up: i == 95},
			Restart:  i == 150,
		})
	}
	update(t, p, 200)
	assert.Equal(t, 200, p.recorder.FrameCount())

	p.OnExit()

	data, err := replay.LoadReplay(filepath.Join(dir, "run-floor.json"))
	require.NoError(t, err)
	assert.Equal(t, int64(77), data.Seed)
	assert.Equal(t, "floor", data.Level)

	w, err := world.New(config.DefaultTuning(), rand.New(rand.NewSource(data.Seed)))
	require.NoError(t, err)
	require.NoError(t, w.LoadLevel(createFloorLevel()))

	sum, err := replay.Run(w, replay.NewReplayer(*data))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Restarts)
	assert.Equal(t, p.World().Player().Pos, sum.Player)
	assert.Equal(t, p.World().Grid().Snapshot(), w.Grid().Snapshot())
}

func TestPlaying_OnExitWithoutRecorder(t *testing.T) {
	p, _ := createTestPlaying(t, Options{})
	update(t, p, 2)

	assert.NotPanics(t, func() {
		p.OnEnter()
		p.OnExit()
	})
}

func TestRecordingName(t *testing.T) {
	assert.Equal(t, "run-0.json", recordingName("run.json", "0"))
	assert.Equal(t, filepath.Join("out", "trace-1"), recordingName(filepath.Join("out", "trace"), "1"))

	generated := recordingName("", "2")
	assert.True(t, strings.HasPrefix(generated, "replay_"))
	assert.True(t, strings.HasSuffix(generated, "-2.json"))
}
