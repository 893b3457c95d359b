package scene

import "github.com/oliverbestmann/vitrine/glm"

// Color is a linear rgb color.
type Color = glm.Vec3f

// ColorHex splits a 0xRRGGBB value into its channels.
func ColorHex(hex uint32) Color {
	return Color{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

type AmbientLight struct {
	Color     Color
	Intensity float32
}

type PointLight struct {
	Color     Color
	Intensity float32
	Position  glm.Vec3f

	// zero means no distance cutoff
	Distance float32
	Decay    float32
}

type SpotLight struct {
	Color     Color
	Intensity float32
	Position  glm.Vec3f
	Target    glm.Vec3f

	// half angle of the cone
	Angle glm.Rad

	// fraction of the cone that fades out, in [0, 1]
	Penumbra float32
	Decay    float32
}

// ConeCos returns the cosine of the outer and inner cone angle.
func (s SpotLight) ConeCos() (outer, inner float32) {
	outer = glmCos(s.Angle)
	inner = glmCos(s.Angle * glm.Rad(1-s.Penumbra))
	return
}
