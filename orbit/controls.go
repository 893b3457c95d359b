// Package orbit moves a camera on a sphere around a fixed target,
// driven by mouse drag and scroll wheel.
package orbit

import (
	"math"

	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/vitrine/scene"
)

// Pointer is the accumulated pointer input since the last update.
type Pointer struct {
	// true while the primary button is held
	Dragging bool

	// cursor movement in pixels
	DeltaX, DeltaY float32

	// scroll wheel movement, positive values zoom in
	Scroll float32

	// height of the viewport in pixels to scale rotation speed
	Height float32
}

type PointerSource interface {
	Pointer() Pointer
}

type Options struct {
	Target glm.Vec3f

	// 0 disables damping
	DampingFactor float64

	MinDistance float64
	MaxDistance float64

	RotateSpeed float64
	ZoomSpeed   float64
}

var DefaultOptions = Options{
	Target:        glm.Vec3f{0, 0.5, 0},
	DampingFactor: 0.05,
	MinDistance:   1,
	MaxDistance:   20,
	RotateSpeed:   1,
	ZoomSpeed:     1,
}

const (
	// camera movements below this distance do not count as moved
	moveThreshold = 1e-4

	// keeps the camera from flipping over the poles
	minPolar = 1e-3
	maxPolar = math.Pi - minPolar
)

// Controls implements orbiting without panning. The target never moves.
type Controls struct {
	camera *scene.PerspectiveCamera
	source PointerSource
	opts   Options

	// pending change in azimuth and polar angle
	deltaTheta float64
	deltaPhi   float64

	scale float64

	// camera position restored by Reset
	home glm.Vec3f
}

// New creates controls for the camera. The initial orbit is taken
// from the current camera position. source may be nil.
func New(camera *scene.PerspectiveCamera, source PointerSource, opts Options) *Controls {
	if opts.RotateSpeed == 0 {
		opts.RotateSpeed = 1
	}

	if opts.ZoomSpeed == 0 {
		opts.ZoomSpeed = 1
	}

	if opts.MaxDistance == 0 {
		opts.MaxDistance = math.Inf(1)
	}

	camera.Target = opts.Target

	return &Controls{
		camera: camera,
		source: source,
		opts:   opts,
		scale:  1,
		home:   camera.Position,
	}
}

// Reset moves the camera back to where it was when the controls were
// created and drops any pending motion.
func (c *Controls) Reset() {
	c.camera.Position = c.home
	c.camera.Target = c.opts.Target

	c.deltaTheta = 0
	c.deltaPhi = 0
	c.scale = 1
}

// Rotate queues a rotation for a drag of dx, dy pixels in a viewport
// of the given height.
func (c *Controls) Rotate(dx, dy, height float32) {
	if height <= 0 {
		return
	}

	c.deltaTheta -= 2 * math.Pi * float64(dx) / float64(height) * c.opts.RotateSpeed
	c.deltaPhi -= 2 * math.Pi * float64(dy) / float64(height) * c.opts.RotateSpeed
}

// Dolly queues a zoom. Positive steps move the camera closer.
func (c *Controls) Dolly(steps float32) {
	if steps == 0 {
		return
	}

	c.scale *= math.Pow(0.95, float64(steps)*c.opts.ZoomSpeed)
}

// Update applies pending input to the camera and reports whether the
// camera moved.
func (c *Controls) Update() bool {
	if c.source != nil {
		pointer := c.source.Pointer()
		if pointer.Dragging {
			c.Rotate(pointer.DeltaX, pointer.DeltaY, pointer.Height)
		}

		c.Dolly(pointer.Scroll)
	}

	offset := c.camera.Position.Sub(c.opts.Target)

	radius, theta, phi := spherical(offset)

	factor := 1.0
	if c.opts.DampingFactor > 0 {
		factor = c.opts.DampingFactor
	}

	theta += c.deltaTheta * factor
	phi = clamp(phi+c.deltaPhi*factor, minPolar, maxPolar)
	radius = clamp(radius*c.scale, c.opts.MinDistance, c.opts.MaxDistance)

	position := c.opts.Target.Add(cartesian(radius, theta, phi))
	moved := position.Sub(c.camera.Position).Length() > moveThreshold

	c.camera.Position = position
	c.camera.Target = c.opts.Target

	if c.opts.DampingFactor > 0 {
		c.deltaTheta *= 1 - c.opts.DampingFactor
		c.deltaPhi *= 1 - c.opts.DampingFactor
	} else {
		c.deltaTheta = 0
		c.deltaPhi = 0
	}

	c.scale = 1

	return moved
}

// spherical converts offset to radius, azimuth around y and polar
// angle from the y axis.
func spherical(offset glm.Vec3f) (radius, theta, phi float64) {
	x, y, z := float64(offset[0]), float64(offset[1]), float64(offset[2])

	radius = math.Sqrt(x*x + y*y + z*z)
	if radius == 0 {
		return 0, 0, math.Pi / 2
	}

	theta = math.Atan2(x, z)
	phi = math.Atan2(math.Sqrt(x*x+z*z), y)
	return
}

func cartesian(radius, theta, phi float64) glm.Vec3f {
	sinPhi := math.Sin(phi)

	return glm.Vec3f{
		float32(radius * sinPhi * math.Sin(theta)),
		float32(radius * math.Cos(phi)),
		float32(radius * sinPhi * math.Cos(theta)),
	}
}

func clamp(value, lo, hi float64) float64 {
	return max(lo, min(hi, value))
}
