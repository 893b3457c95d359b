package pulse

import (
	"github.com/oliverbestmann/vitrine/glm"
)

type numeric interface {
	glm.Numeric
}

type Rectangle2f = Rectangle2[float32]

// Rectangle2 is an axis aligned rectangle. With y pointing down, Min is
// the top left corner.
type Rectangle2[T numeric] struct {
	Min glm.Vec2[T]
	Max glm.Vec2[T]
}

func RectangleFromXYWH[T numeric](x, y, w, h T) Rectangle2[T] {
	return Rectangle2[T]{
		Min: glm.Vec2[T]{x, y},
		Max: glm.Vec2[T]{x + w, y + h},
	}
}

func (r Rectangle2[T]) Size() glm.Vec2[T] {
	return r.Max.Sub(r.Min)
}

func (r Rectangle2[T]) Width() T {
	return r.Max[0] - r.Min[0]
}

func (r Rectangle2[T]) Height() T {
	return r.Max[1] - r.Min[1]
}

// Contains reports whether other lies completely inside r.
func (r Rectangle2[T]) Contains(other Rectangle2[T]) bool {
	return other.Min[0] >= r.Min[0] && other.Min[1] >= r.Min[1] &&
		other.Max[0] <= r.Max[0] && other.Max[1] <= r.Max[1]
}

// Triangles returns the corners of two triangles covering the
// rectangle: top left, top right, bottom right, then top left, bottom
// right, bottom left.
func (r Rectangle2[T]) Triangles() [6]glm.Vec2[T] {
	tl := r.Min
	tr := glm.Vec2[T]{r.Max[0], r.Min[1]}
	br := r.Max
	bl := glm.Vec2[T]{r.Min[0], r.Max[1]}

	return [6]glm.Vec2[T]{tl, tr, br, tl, br, bl}
}
