package engine

import (
	"bytes"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/scene"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeadless(t *testing.T, options ...EngineBuilderOption) (Engine, camera.CameraController) {
	t.Helper()
	ctrl := camera.NewCameraController(
		camera.WithPosition(common.P3(3200, 1700, 2400)),
		camera.WithTarget(common.P3(0, 0, 1000)),
	)
	cam := camera.NewCamera(camera.WithController(ctrl))
	sc := scene.NewScene("main")
	sc.Add(scene.Node{Name: "box", Kind: scene.KindBox, Visible: true, Size: common.P3(10, 10, 10)})

	opts := append([]EngineBuilderOption{WithScene(sc), WithCamera(cam)}, options...)
	return NewEngine(opts...), ctrl
}

func TestFrameRunsTickBeforeCameraUpdate(t *testing.T) {
	e, ctrl := newHeadless(t)

	var got []time.Duration
	e.SetTickCallback(func(dt time.Duration) {
		got = append(got, dt)
		ctrl.SetView(common.P3(0, -10, 0), common.P3(0, 0, 0))
	})

	require.NoError(t, e.Frame(16*time.Millisecond))
	require.NoError(t, e.Frame(17*time.Millisecond))
	assert.Equal(t, []time.Duration{16 * time.Millisecond, 17 * time.Millisecond}, got)

	// camera uniform reflects the controller state set during the tick
	u := e.Camera().Uniform()
	assert.InDelta(t, -10, u.CameraPosition[1], 1e-4)
}

func TestFrameWithoutRendererIsHeadless(t *testing.T) {
	e, _ := newHeadless(t)
	assert.Nil(t, e.Window())
	assert.Nil(t, e.Renderer())
	assert.NoError(t, e.Frame(time.Millisecond))
}

func TestProfilerLogsThroughEngineLogger(t *testing.T) {
	var buf bytes.Buffer
	e, _ := newHeadless(t, WithLogger(zerolog.New(&buf)), WithProfiling(true, time.Nanosecond))

	require.NoError(t, e.Frame(time.Millisecond))
	time.Sleep(time.Millisecond)
	require.NoError(t, e.Frame(time.Millisecond))
	assert.Contains(t, buf.String(), `"message":"profiler"`)

	buf.Reset()
	e.DisableProfiler()
	time.Sleep(time.Millisecond)
	require.NoError(t, e.Frame(time.Millisecond))
	assert.Empty(t, buf.String())
}

func TestProfilerLoggerIndependentOfOptionOrder(t *testing.T) {
	var buf bytes.Buffer
	e, _ := newHeadless(t, WithProfiling(true, time.Nanosecond), WithLogger(zerolog.New(&buf)))

	require.NoError(t, e.Frame(time.Millisecond))
	time.Sleep(time.Millisecond)
	require.NoError(t, e.Frame(time.Millisecond))
	assert.Contains(t, buf.String(), `"message":"profiler"`)
}

func TestSetRenderFrameLimit(t *testing.T) {
	e, _ := newHeadless(t, WithRenderFrameLimit(50))
	impl := e.(*engine)
	assert.Equal(t, 20*time.Millisecond, impl.renderFrameLimit)

	e.SetRenderFrameLimit(0)
	assert.Zero(t, impl.renderFrameLimit)
}

func TestNewEnginePanicsWithoutSceneOrCamera(t *testing.T) {
	assert.Panics(t, func() { NewEngine(WithCamera(camera.NewCamera())) })
	assert.Panics(t, func() { NewEngine(WithScene(scene.NewScene("main"))) })
}
