package lighting

import (
	"math"
	"testing"
	"unsafe"

	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/vitrine/scene"
	"github.com/stretchr/testify/require"
)

func TestLayoutMatchesShader(t *testing.T) {
	require.Equal(t, uintptr(48), unsafe.Sizeof(PointLight{}))
	require.Equal(t, uintptr(64), unsafe.Sizeof(SpotLight{}))
	require.Equal(t, uintptr(64+16+16+16+4*48+4*64), unsafe.Sizeof(Frame{}))
	require.Equal(t, uintptr(160), unsafe.Sizeof(Object{}))
}

func TestPackFrame(t *testing.T) {
	sc := scene.New()
	sc.AddAmbient(scene.AmbientLight{Color: scene.Color{1, 1, 1}, Intensity: 0.5})
	sc.AddPoint(scene.PointLight{Color: scene.ColorHex(0x4444ff), Intensity: 1.5, Position: glm.Vec3f{-5, 2, 5}})
	sc.AddSpot(scene.SpotLight{
		Color:     scene.Color{1, 1, 1},
		Intensity: 2,
		Position:  glm.Vec3f{5, 10, 5},
		Angle:     math.Pi / 6,
		Penumbra:  1,
	})

	camera := scene.NewPerspectiveCamera(45, 1, 0.1, 1000)
	camera.Position = glm.Vec3f{0, 1, 5}

	frame := PackFrame(sc, camera, true)

	require.Equal(t, [4]uint32{1, 1, 1, 0}, frame.Counts)
	require.Equal(t, glm.Vec4f{0.5, 0.5, 0.5, 1}, frame.Ambient)
	require.Equal(t, float32(1.5), frame.Points[0].Position[3])
	require.Equal(t, glm.Vec4f{0, 1, 5, 1}, frame.CameraPosition)

	// spot light points towards the origin
	direction := frame.Spots[0].Direction
	require.InDelta(t, -10/math.Sqrt(150), direction[1], 1e-5)
	require.InDelta(t, math.Cos(math.Pi/6), frame.Spots[0].Cone[0], 1e-5)
	require.InDelta(t, 1, frame.Spots[0].Cone[1], 1e-6)
}

func TestPackFrameDropsExcessLights(t *testing.T) {
	sc := scene.New()
	for range MaxPointLights + 3 {
		sc.AddPoint(scene.PointLight{Intensity: 1})
	}

	frame := PackFrame(sc, scene.NewPerspectiveCamera(45, 1, 0.1, 10), false)
	require.Equal(t, uint32(MaxPointLights), frame.Counts[0])
	require.Equal(t, uint32(0), frame.Counts[2])
}

func TestPackObject(t *testing.T) {
	world := glm.ScaleMat4[float32](1.5, 1.5, 1.5)
	object := PackObject(world, scene.DefaultMaterial)

	require.Equal(t, world, object.Model)
	require.InDelta(t, 1/1.5, object.Normal[0], 1e-6)
	require.Equal(t, glm.Vec4f{0.5, 0, 0, 0}, object.Material)
}
