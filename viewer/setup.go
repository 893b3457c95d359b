package viewer

import (
	"math"

	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/vitrine/scene"
)

// NewScene returns the showcase scene: a near black background lit by a
// soft ambient light, a white spot from above and two colored points.
func NewScene() *scene.Scene {
	sc := scene.New()
	sc.Background = scene.ColorHex(0x050505)

	white := scene.ColorHex(0xffffff)

	sc.AddAmbient(scene.AmbientLight{Color: white, Intensity: 0.5})

	sc.AddSpot(scene.SpotLight{
		Color:     white,
		Intensity: 2,
		Position:  glm.Vec3f{5, 10, 5},
		Angle:     math.Pi / 6,
		Penumbra:  1,
	})

	sc.AddPoint(scene.PointLight{
		Color:     scene.ColorHex(0x4444ff),
		Intensity: 1.5,
		Position:  glm.Vec3f{-5, 2, 5},
	})

	sc.AddPoint(scene.PointLight{
		Color:     scene.ColorHex(0xff4444),
		Intensity: 1.5,
		Position:  glm.Vec3f{5, -2, 5},
	})

	return sc
}

// NewCamera returns a camera slightly above the model, looking at target.
func NewCamera(aspect float32, target glm.Vec3f) *scene.PerspectiveCamera {
	camera := scene.NewPerspectiveCamera(45, aspect, 0.1, 1000)
	camera.Position = glm.Vec3f{0, 1, 5}
	camera.Target = target

	return camera
}

// FallbackMesh is shown if no model source is configured.
func FallbackMesh() *scene.Mesh {
	return scene.NoiseBlob(scene.NoiseBlobOptions{
		Subdivisions: 4,
		Radius:       0.8,
		Amplitude:    0.2,
	})
}
