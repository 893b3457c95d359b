package glm

import "golang.org/x/mobile/exp/f32"

// fastSincos computes sin and cos in float32 precision.
func fastSincos(r Rad) (sin, cos float32) {
	return f32.Sin(float32(r)), f32.Cos(float32(r))
}
