// Package lighting packs scene lights, camera and materials into the
// uniform layout of the mesh shader.
package lighting

import (
	"log/slog"
	"structs"

	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/vitrine/scene"
)

const (
	MaxPointLights = 4
	MaxSpotLights  = 4
)

type PointLight struct {
	_ structs.HostLayout

	// xyz position, w intensity
	Position glm.Vec4f

	// rgb color, w cutoff distance
	Color glm.Vec4f

	// x decay
	Params glm.Vec4f
}

type SpotLight struct {
	_ structs.HostLayout

	// xyz position, w intensity
	Position glm.Vec4f

	// rgb color, w cutoff distance
	Color glm.Vec4f

	// xyz normalized direction, w decay
	Direction glm.Vec4f

	// x cos of outer angle, y cos of inner angle
	Cone glm.Vec4f
}

// Frame holds everything that is constant during one frame.
type Frame struct {
	_ structs.HostLayout

	ViewProjection glm.Mat4f
	CameraPosition glm.Vec4f

	// rgb sum of all ambient lights
	Ambient glm.Vec4f

	// point light count, spot light count, srgb encoding flag, unused
	Counts [4]uint32

	Points [MaxPointLights]PointLight
	Spots  [MaxSpotLights]SpotLight
}

// Object holds the per draw values.
type Object struct {
	_ structs.HostLayout

	Model     glm.Mat4f
	Normal    glm.Mat4f
	BaseColor glm.Vec4f

	// x roughness, y metallic
	Material glm.Vec4f
}

// PackFrame converts the lights of sc and the camera. Lights beyond
// the supported count are dropped with a warning.
func PackFrame(sc *scene.Scene, camera *scene.PerspectiveCamera, encodeSRGB bool) Frame {
	frame := Frame{
		ViewProjection: camera.ViewProjection(),
		CameraPosition: camera.Position.Extend(1),
	}

	var ambient scene.Color
	for _, light := range sc.Ambient {
		ambient = ambient.Add(light.Color.MulScalar(light.Intensity))
	}

	frame.Ambient = ambient.Extend(1)

	if len(sc.Points) > MaxPointLights || len(sc.Spots) > MaxSpotLights {
		slog.Warn("Too many lights, dropping some",
			slog.Int("points", len(sc.Points)),
			slog.Int("spots", len(sc.Spots)),
		)
	}

	for idx, light := range sc.Points[:min(len(sc.Points), MaxPointLights)] {
		frame.Points[idx] = PointLight{
			Position: light.Position.Extend(light.Intensity),
			Color:    light.Color.Extend(light.Distance),
			Params:   glm.Vec4f{light.Decay, 0, 0, 0},
		}

		frame.Counts[0] += 1
	}

	for idx, light := range sc.Spots[:min(len(sc.Spots), MaxSpotLights)] {
		outer, inner := light.ConeCos()

		frame.Spots[idx] = SpotLight{
			Position:  light.Position.Extend(light.Intensity),
			Color:     light.Color.Extend(0),
			Direction: light.Target.Sub(light.Position).Normalize().Extend(light.Decay),
			Cone:      glm.Vec4f{outer, inner, 0, 0},
		}

		frame.Counts[1] += 1
	}

	if encodeSRGB {
		frame.Counts[2] = 1
	}

	return frame
}

func PackObject(world glm.Mat4f, material scene.Material) Object {
	return Object{
		Model:     world,
		Normal:    glm.NormalMatrix(world),
		BaseColor: material.BaseColor,
		Material:  glm.Vec4f{material.Roughness, material.Metallic, 0, 0},
	}
}
