package engine

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/furl/common"
	"github.com/Carmen-Shannon/furl/engine/develop"
	"github.com/Carmen-Shannon/furl/engine/renderer"
	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/Carmen-Shannon/furl/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRunHeadlessAdvancesTheClock(t *testing.T) {
	a, _, _ := newApp(t, scene.NameRainbowCactus)
	e := NewEngine(a, WithTickRate(50), WithLogger(quiet))

	require.NoError(t, e.RunHeadless(5))
	assert.Equal(t, uint64(5), a.Frames())
	assert.InDelta(t, 0.08, a.Clock().Time(), 1e-9)
	assert.InDelta(t, 0.02, a.Clock().Delta(), 1e-9)
}

func TestRunWithoutWindow(t *testing.T) {
	a, _, _ := newApp(t, scene.NameEmpty)
	assert.ErrorIs(t, NewEngine(a).Run(), ErrNoWindow)
}

func TestHandleKey(t *testing.T) {
	a, _, _ := newApp(t, scene.NameEmpty)
	e := NewEngine(a, WithLogger(quiet))

	e.HandleKey(common.KeySpace)
	assert.True(t, a.Clock().Paused())
	e.HandleKey(common.KeySpace)
	assert.False(t, a.Clock().Paused())

	e.HandleKey(common.KeyC)
	e.HandleKey(common.KeyG)
	e.HandleKey(common.KeyG)
	e.HandleKey(common.KeyL)
	e.HandleKey(common.KeyW)
	want := develop.Develop{
		Camera:    develop.CameraOrthographicFront,
		Guides:    develop.GuidesAll10m,
		Lod:       develop.LodAll0,
		Wireframe: develop.WireframeDots,
	}
	assert.Equal(t, want, e.Develop())

	require.NoError(t, e.RunHeadless(1))
	assert.Equal(t, want, a.Develop(), "the next frame sees the overrides")
}

func TestHeldKeyActsOnce(t *testing.T) {
	a, _, _ := newApp(t, scene.NameEmpty)
	e := NewEngine(a, WithLogger(quiet)).(*engine)

	for range 5 {
		e.keyDown(common.KeySpace)
		e.keyDown(common.KeyG)
	}
	assert.True(t, a.Clock().Paused(), "repeats do not toggle pause back")
	assert.Equal(t, develop.GuidesNone, e.Develop().Guides)

	e.keyUp(common.KeySpace)
	e.keyUp(common.KeyG)
	e.keyDown(common.KeySpace)
	e.keyDown(common.KeyG)
	assert.False(t, a.Clock().Paused())
	assert.Equal(t, develop.GuidesAll10m, e.Develop().Guides)
}

func TestEscapeQuits(t *testing.T) {
	a, _, _ := newApp(t, scene.NameEmpty)
	e := NewEngine(a, WithLogger(quiet))

	e.HandleKey(common.KeyEsc)
	e.Quit()
	require.NoError(t, e.RunHeadless(10))
	assert.Zero(t, a.Frames())
}

func TestPresetKeyLoadsPresetValues(t *testing.T) {
	a, _, _ := newApp(t, scene.NameAloneFurl)
	e := NewEngine(a, WithLogger(quiet))

	e.HandleKey(common.Key2)
	require.NoError(t, e.RunHeadless(1))

	want, err := a.Scene().PresetValues(1)
	require.NoError(t, err)
	assert.Equal(t, want, a.Scene().Parameters().Values())
}

func TestPresetKeyOutOfRange(t *testing.T) {
	a, _, _ := newApp(t, scene.NameRainbowCactus)
	e := NewEngine(a, WithLogger(quiet), WithParameters(""))

	e.HandleKey(common.Key8)
	require.NoError(t, e.RunHeadless(1))
	assert.Equal(t, uint64(1), a.Frames())
}

func TestSetParametersKeepsTheLatest(t *testing.T) {
	a, _, _ := newApp(t, scene.NameAloneFurl)
	e := NewEngine(a, WithLogger(quiet), WithParameters("0.125"))

	require.NoError(t, e.RunHeadless(1))
	vec := a.Scene().Parameters()
	assert.Equal(t, float32(0.125), vec.At(0))

	e.SetParameters("1")
	e.SetParameters("2")
	require.NoError(t, e.RunHeadless(1))
	assert.Equal(t, float32(2), vec.At(0))
	assert.Equal(t, 2, vec.Parses())
}

func TestFramePanicIsRecovered(t *testing.T) {
	a, rec, _ := newApp(t, scene.NameRainbowCactus, renderer.WithPolicy(glapi.PolicyAllPhases))
	e := NewEngine(a, WithLogger(quiet))

	rec.InjectError(glapi.InvalidOperation)
	err := e.RunHeadless(3)
	require.ErrorIs(t, err, ErrFramePanic)
	assert.Contains(t, err.Error(), "Clear")
	assert.Zero(t, a.Frames())

	assert.NoError(t, e.RunHeadless(3), "a quit engine runs no further frames")
}

func TestRunHeadlessReadsTheParameterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "furl.params")
	require.NoError(t, os.WriteFile(path, []byte(" 3, 4\n"), 0o644))

	a, _, _ := newApp(t, scene.NameAloneFurl)
	e := NewEngine(a, WithLogger(quiet), WithParameterFile(path))

	require.NoError(t, e.RunHeadless(1))
	vec := a.Scene().Parameters()
	assert.Equal(t, float32(3), vec.At(0))
	assert.Equal(t, float32(4), vec.At(1))
}

func TestRunHeadlessMissingParameterFile(t *testing.T) {
	a, _, _ := newApp(t, scene.NameEmpty)
	e := NewEngine(a, WithLogger(quiet), WithParameterFile(filepath.Join(t.TempDir(), "missing")))

	err := e.RunHeadless(1)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, a.Frames())
}

func TestWatchParameterFileFollowsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "furl.params")
	require.NoError(t, os.WriteFile(path, []byte("1,2"), 0o644))

	got := make(chan string, 16)
	stop, err := watchParameterFile(path, quiet, func(raw string) { got <- raw })
	require.NoError(t, err)
	defer stop()

	assert.Equal(t, "1,2", <-got)

	require.NoError(t, os.WriteFile(path, []byte("5,6\n"), 0o644))
	require.Eventually(t, func() bool {
		for {
			select {
			case raw := <-got:
				if raw == "5,6" {
					return true
				}
			default:
				return false
			}
		}
	}, 5*time.Second, 10*time.Millisecond)
}
