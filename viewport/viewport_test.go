package viewport

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/oliverbestmann/vitrine/scene"
	"github.com/oliverbestmann/vitrine/tick"
	"github.com/oliverbestmann/vitrine/tick/ticktest"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	renders int
	width   uint32
	height  uint32
	resizes int
	err     error
}

func (r *recordingRenderer) Render(*scene.Scene, *scene.PerspectiveCamera) error {
	r.renders += 1
	return r.err
}

func (r *recordingRenderer) SetSize(width, height uint32) {
	r.width, r.height = width, height
	r.resizes += 1
}

type countingControls struct {
	updates int
}

func (c *countingControls) Update() bool {
	c.updates += 1
	return false
}

type fixedContainer struct {
	width, height uint32
}

func (c *fixedContainer) Size() (uint32, uint32) {
	return c.width, c.height
}

type recordingPlayback struct {
	deltas []float64
}

func (p *recordingPlayback) Update(delta float64) {
	p.deltas = append(p.deltas, delta)
}

type fixture struct {
	host      *ticktest.Host
	ctx       *Context
	renderer  *recordingRenderer
	controls  *countingControls
	container *fixedContainer
}

func newFixture() *fixture {
	host := ticktest.NewHost()

	f := &fixture{
		host:      host,
		renderer:  &recordingRenderer{},
		controls:  &countingControls{},
		container: &fixedContainer{width: 800, height: 600},
	}

	f.ctx = &Context{
		Scene:     scene.New(),
		Camera:    scene.NewPerspectiveCamera(45, 1, 0.1, 1000),
		Renderer:  f.renderer,
		Controls:  f.controls,
		Clock:     tick.NewFrameClock(host.Clock),
		Container: f.container,
	}

	return f
}

func TestValidate(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.ctx.Validate())

	f.ctx.Renderer = nil
	require.ErrorIs(t, f.ctx.Validate(), ErrIncompleteContext)
}

func TestDriverFrameOrder(t *testing.T) {
	f := newFixture()
	driver := NewDriver(f.ctx, DefaultSpin)

	task := driver.Start(f.host)
	defer task.Stop()

	f.host.Frames(3, 16*time.Millisecond)

	require.Equal(t, 3, f.renderer.renders)
	require.Equal(t, 3, f.controls.updates)
	require.Equal(t, uint64(3), driver.Frames())
	require.Equal(t, 1, f.host.PendingFrames())
}

func TestDriverWithoutModelDoesNotRotate(t *testing.T) {
	f := newFixture()
	driver := NewDriver(f.ctx, DefaultSpin)
	driver.Start(f.host)

	f.host.Frames(100, 16*time.Millisecond)

	require.False(t, driver.HasModel())
	require.Equal(t, 0.0, driver.Transform.Y)
	require.False(t, driver.Animation.Active())
	require.Equal(t, 100, f.renderer.renders)
}

func TestRotationIsPureFunctionOfFrameCount(t *testing.T) {
	for _, step := range []time.Duration{time.Millisecond, 16 * time.Millisecond, 250 * time.Millisecond} {
		f := newFixture()
		driver := NewDriver(f.ctx, DefaultSpin)

		model := scene.NewNode("model")
		driver.SetModel(model, nil)
		driver.Start(f.host)

		const frames = 2000
		f.host.Frames(frames, step)

		expected := math.Mod(frames*0.005, 2*math.Pi)
		require.InDelta(t, expected, driver.Transform.Y, 1e-9, "step %s", step)
		require.InDelta(t, 0, driver.Transform.X, 1e-12)

		// pushed to the model node
		require.Equal(t, driver.Transform.Rotation(), model.Rotation)
	}
}

func TestSetModelAddsToScene(t *testing.T) {
	f := newFixture()
	driver := NewDriver(f.ctx, DefaultSpin)

	first := scene.NewNode("first")
	driver.SetModel(first, nil)
	require.True(t, f.ctx.Scene.Contains(first))

	second := scene.NewNode("second")
	driver.SetModel(second, nil)
	require.False(t, f.ctx.Scene.Contains(first))
	require.True(t, f.ctx.Scene.Contains(second))
}

func TestDriverPropagatesDeltaToPlayback(t *testing.T) {
	f := newFixture()
	driver := NewDriver(f.ctx, DefaultSpin)
	driver.Start(f.host)

	// frames without a model still consume the clock
	f.host.Frames(2, time.Second)

	playback := &recordingPlayback{}
	driver.SetModel(scene.NewNode("model"), playback)

	f.host.Frames(2, 20*time.Millisecond)

	require.Len(t, playback.deltas, 2)
	require.InDelta(t, 0.02, playback.deltas[0], 1e-9)
	require.InDelta(t, 0.02, playback.deltas[1], 1e-9)
}

func TestDriverStopsOnRenderError(t *testing.T) {
	f := newFixture()
	driver := NewDriver(f.ctx, DefaultSpin)
	task := driver.Start(f.host)

	f.host.Frame()

	f.renderer.err = errors.New("device lost")
	f.host.Frame()

	require.ErrorContains(t, task.Err(), "device lost")
	require.Equal(t, 0, f.host.PendingFrames())
	require.Equal(t, uint64(1), driver.Frames())
}

func TestResizeReactor(t *testing.T) {
	f := newFixture()
	reactor := NewResizeReactor(f.ctx)

	f.container.width, f.container.height = 1024, 768
	reactor.Resize()

	for range 5 {
		f.container.width += 10
		reactor.Resize()
	}

	f.container.width, f.container.height = 1920, 1080
	reactor.Resize()

	require.Equal(t, float32(1920)/float32(1080), f.ctx.Camera.Aspect)
	require.Equal(t, uint32(1920), f.renderer.width)
	require.Equal(t, uint32(1080), f.renderer.height)

	// idempotent
	projection := f.ctx.Camera.Projection()
	reactor.Resize()
	require.Equal(t, projection, f.ctx.Camera.Projection())
	require.Equal(t, uint32(1920), f.renderer.width)
}

func TestResizeIgnoresEmptyContainer(t *testing.T) {
	f := newFixture()
	reactor := NewResizeReactor(f.ctx)

	reactor.Resize()
	resizes := f.renderer.resizes
	aspect := f.ctx.Camera.Aspect

	f.container.height = 0
	reactor.Resize()

	require.Equal(t, resizes, f.renderer.resizes)
	require.Equal(t, aspect, f.ctx.Camera.Aspect)
	require.False(t, math.IsNaN(float64(f.ctx.Camera.Projection()[0])))
}

func TestWrapAngle(t *testing.T) {
	require.InDelta(t, 0.5, wrapAngle(2*math.Pi+0.5), 1e-12)
	require.InDelta(t, 2*math.Pi-0.5, wrapAngle(-0.5), 1e-12)
}
