package orbit

import (
	"math"
	"testing"

	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/vitrine/scene"
	"github.com/stretchr/testify/require"
)

type scriptedSource struct {
	pointers []Pointer
}

func (s *scriptedSource) Pointer() Pointer {
	if len(s.pointers) == 0 {
		return Pointer{}
	}

	pointer := s.pointers[0]
	s.pointers = s.pointers[1:]
	return pointer
}

func newCamera() *scene.PerspectiveCamera {
	camera := scene.NewPerspectiveCamera(45, 1, 0.1, 1000)
	camera.Position = glm.Vec3f{0, 1, 5}
	return camera
}

func distance(camera *scene.PerspectiveCamera) float64 {
	return float64(camera.Position.Sub(DefaultOptions.Target).Length())
}

func TestIdleControlsKeepCamera(t *testing.T) {
	camera := newCamera()
	controls := New(camera, nil, DefaultOptions)

	start := camera.Position

	require.False(t, controls.Update())
	require.InDeltaSlice(t, start[:], camera.Position[:], 1e-5)
	require.Equal(t, DefaultOptions.Target, camera.Target)
}

func TestDampingConverges(t *testing.T) {
	camera := newCamera()
	source := &scriptedSource{pointers: []Pointer{{Dragging: true, DeltaX: 100, Height: 600}}}
	controls := New(camera, source, DefaultOptions)

	radius := distance(camera)

	var moves int
	for range 1000 {
		if controls.Update() {
			moves += 1
		}

		// the orbit radius and target never change while rotating
		require.InDelta(t, radius, distance(camera), 1e-4)
		require.Equal(t, DefaultOptions.Target, camera.Target)
	}

	// the motion keeps going for a while after the drag ended
	require.Greater(t, moves, 10)
	require.False(t, controls.Update())

	// total rotation approaches the undamped rotation
	_, theta, _ := spherical(camera.Position.Sub(DefaultOptions.Target))
	require.InDelta(t, -2*math.Pi*100/600, theta, 1e-3)
}

func TestWithoutDampingAppliesAtOnce(t *testing.T) {
	camera := newCamera()
	opts := DefaultOptions
	opts.DampingFactor = 0

	controls := New(camera, nil, opts)
	controls.Rotate(150, 0, 600)

	require.True(t, controls.Update())
	require.False(t, controls.Update())

	_, theta, _ := spherical(camera.Position.Sub(DefaultOptions.Target))
	require.InDelta(t, -math.Pi/2, theta, 1e-4)
}

func TestDollyClampsDistance(t *testing.T) {
	camera := newCamera()
	controls := New(camera, nil, DefaultOptions)

	for range 200 {
		controls.Dolly(1)
		controls.Update()
	}

	require.InDelta(t, DefaultOptions.MinDistance, distance(camera), 1e-4)

	for range 500 {
		controls.Dolly(-1)
		controls.Update()
	}

	require.InDelta(t, DefaultOptions.MaxDistance, distance(camera), 1e-3)
}

func TestPolarAngleIsClamped(t *testing.T) {
	camera := newCamera()
	opts := DefaultOptions
	opts.DampingFactor = 0

	controls := New(camera, nil, opts)
	controls.Rotate(0, 10_000, 600)
	controls.Update()

	_, _, phi := spherical(camera.Position.Sub(DefaultOptions.Target))
	require.InDelta(t, minPolar, phi, 1e-3)
}

func TestResetRestoresHome(t *testing.T) {
	camera := newCamera()
	controls := New(camera, nil, DefaultOptions)

	controls.Rotate(200, 50, 600)
	controls.Dolly(10)
	for range 100 {
		controls.Update()
	}

	require.NotEqual(t, glm.Vec3f{0, 1, 5}, camera.Position)

	controls.Reset()
	require.Equal(t, glm.Vec3f{0, 1, 5}, camera.Position)

	// nothing left to apply
	require.False(t, controls.Update())
}
