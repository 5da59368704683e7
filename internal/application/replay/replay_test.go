package replay

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/crumble/internal/application/world"
	"github.com/younwookim/crumble/internal/domain/entity"
	"github.com/younwookim/crumble/internal/infrastructure/config"
)

// createCloudLevel builds a cloud ledge over a stone floor
func createCloudLevel() *config.LevelConfig {
	spawn := [2]float64{20, 60}
	lvl := &config.LevelConfig{Name: "ledge", Level: config.LevelData{Spawn: &spawn}}
	for x := 0; x < 20; x++ {
		lvl.Level.Tiles = append(lvl.Level.Tiles,
			config.TileConfig{Pos: [2]int{x, 10}, Type: "cloud"},
			config.TileConfig{Pos: [2]int{x, 14}, Type: "stone"},
		)
	}
	return lvl
}

func createTestWorld(t *testing.T, seed int64) *world.World {
	t.Helper()
	w, err := world.New(config.DefaultTuning(), rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	require.NoError(t, w.LoadLevel(createCloudLevel()))
	return w
}

func TestFrameInput_Controls(t *testing.T) {
	fi := FrameInput{L: true, U: true}
	assert.Equal(t, entity.Controls{Left: true, Up: true}, fi.Controls())
}

func TestRecorder_RecordFrame(t *testing.T) {
	rec := NewRecorder(42, "0")

	rec.RecordFrame(entity.Controls{Left: true}, 1)
	rec.MarkRestart()
	rec.RecordFrame(entity.Controls{Right: true, Up: true}, 0.5)
	rec.RecordFrame(entity.Controls{}, 1)

	data := rec.Data()
	assert.Equal(t, Version, data.Version)
	assert.Equal(t, int64(42), data.Seed)
	assert.Equal(t, "0", data.Level)
	require.Len(t, data.Frames, 3)

	assert.Equal(t, FrameInput{F: 0, L: true, DT: 1}, data.Frames[0])
	assert.Equal(t, FrameInput{F: 1, R: true, U: true, RS: true, DT: 0.5}, data.Frames[1])
	assert.False(t, data.Frames[2].RS, "restart flag applies to one frame")
}

func TestRecorder_Stop(t *testing.T) {
	rec := NewRecorder(1, "0")
	rec.RecordFrame(entity.Controls{}, 1)

	rec.Stop()
	rec.RecordFrame(entity.Controls{}, 1)

	assert.False(t, rec.IsRecording())
	assert.Equal(t, 1, rec.FrameCount())
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	rec := NewRecorder(7, "1")
	for i := 0; i < 10; i++ {
		rec.RecordFrame(entity.Controls{Right: i%2 == 0}, 1.0/3)
	}

	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, rec.Save(path))

	loaded, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, rec.Data(), *loaded)
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder(1, "0")
	err := rec.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestLoadReplay_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadReplay(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"frames": [`), 0o644))
	_, err = LoadReplay(bad)
	assert.ErrorContains(t, err, "failed to decode replay")
}

func TestReplayer_Next(t *testing.T) {
	data := ReplayData{
		Seed:  42,
		Level: "test",
		Frames: []FrameInput{
			{F: 0, L: true, DT: 1},
			{F: 1, R: true, U: true, DT: 1},
		},
	}
	r := NewReplayer(data)

	fi, ok := r.Next()
	require.True(t, ok)
	assert.True(t, fi.L)

	fi, ok = r.Next()
	require.True(t, ok)
	assert.True(t, fi.U)
	assert.Equal(t, 2, r.CurrentFrame())

	_, ok = r.Next()
	assert.False(t, ok, "past the end")

	r.Reset()
	assert.Equal(t, 0, r.CurrentFrame())
	assert.Equal(t, 2, r.TotalFrames())
	assert.Equal(t, int64(42), r.Seed())
	assert.Equal(t, "test", r.Level())
}

func TestCreateTestReplayData(t *testing.T) {
	data := CreateTestReplayData(60, "test", entity.Controls{Right: true})

	assert.Equal(t, Version, data.Version)
	assert.Equal(t, int64(12345), data.Seed)
	require.Len(t, data.Frames, 60)

	for i, frame := range data.Frames {
		assert.Equal(t, i, frame.F, "Frame number mismatch at index %d", i)
		assert.True(t, frame.R)
		assert.Equal(t, 1.0, frame.DT)
	}
}

func TestRun_ReproducesLiveSession(t *testing.T) {
	const seed = 99
	live := createTestWorld(t, seed)
	rec := NewRecorder(seed, "ledge")

	for i := 0; i < 300; i++ {
		controls := entity.Controls{Right: i > 30 && i < 80, Up: i == 120, Left: i > 150 && i < 170}
		dt := 1.0
		if i%7 == 0 {
			dt = 1.5
		}
		rec.RecordFrame(controls, dt)
		live.Step(dt, controls)
	}

	replayed := createTestWorld(t, seed)
	sum, err := Run(replayed, NewReplayer(rec.Data()))
	require.NoError(t, err)

	assert.Equal(t, 300, sum.Frames)
	assert.Equal(t, live.Player().Pos, sum.Player)
	assert.Equal(t, live.Grid().Len(), sum.TilesRemaining)
	assert.Equal(t, live.Grid().Snapshot(), replayed.Grid().Snapshot())
	assert.Positive(t, sum.TilesDestroyed, "standing on clouds crumbles them")
	assert.Equal(t, 40-sum.TilesRemaining, sum.TilesDestroyed)
}

func TestRun_AppliesRestarts(t *testing.T) {
	data := CreateTestReplayData(150, "ledge", entity.Controls{})
	data.Frames[149].RS = true

	w := createTestWorld(t, data.Seed)
	sum, err := Run(w, NewReplayer(data))
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Restarts)
	assert.Equal(t, 40, sum.TilesRemaining, "restart restored the crumbled clouds")
	assert.Positive(t, sum.TilesDestroyed)
}

func TestSummary_String(t *testing.T) {
	s := Summary{Frames: 10, Player: entity.Vec2{X: 1.5, Y: 2}, TilesRemaining: 3, TilesDestroyed: 4}
	out := s.String()

	assert.True(t, strings.HasPrefix(out, "frames=10 player=(1.50,2.00) tiles=3 destroyed=4"))
}
