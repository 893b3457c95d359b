package viewport

import (
	"math"

	"github.com/oliverbestmann/vitrine/glm"
)

// Spin is the fixed rotation added to the model on every frame, in radians.
// It is applied per frame, not per second, so the rotation speed follows
// the display refresh rate.
type Spin struct {
	X, Y float64
}

var DefaultSpin = Spin{Y: 0.005}

// ModelTransform accumulates the procedural rotation of the model.
type ModelTransform struct {
	Spin Spin

	// angles in [0, 2π)
	X, Y float64
}

func (m *ModelTransform) Advance() {
	m.X = wrapAngle(m.X + m.Spin.X)
	m.Y = wrapAngle(m.Y + m.Spin.Y)
}

func (m *ModelTransform) Rotation() glm.Quaternionf {
	return glm.QuaternionFromEuler[float32](glm.Rad(m.X), glm.Rad(m.Y), 0)
}

func wrapAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}

	return angle
}
