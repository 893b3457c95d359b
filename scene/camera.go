package scene

import "github.com/oliverbestmann/vitrine/glm"

type PerspectiveCamera struct {
	FovY   glm.Rad
	Aspect float32
	Near   float32
	Far    float32

	Position glm.Vec3f
	Target   glm.Vec3f
	Up       glm.Vec3f

	projection glm.Mat4f
}

func NewPerspectiveCamera(fovYDeg, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FovY:   glm.DegToRad(fovYDeg),
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     glm.Vec3f{0, 1, 0},
	}

	c.UpdateProjectionMatrix()

	return c
}

// SetAspect changes the aspect ratio. The projection matrix
// only changes after calling UpdateProjectionMatrix.
func (c *PerspectiveCamera) SetAspect(aspect float32) {
	c.Aspect = aspect
}

func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = glm.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) Projection() glm.Mat4f {
	return c.projection
}

func (c *PerspectiveCamera) View() glm.Mat4f {
	return glm.LookAt(c.Position, c.Target, c.Up)
}

func (c *PerspectiveCamera) ViewProjection() glm.Mat4f {
	return c.projection.Mul(c.View())
}
