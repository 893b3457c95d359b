package glm

import "math"

type Vec3[T Numeric] [3]T

func (lhs Vec3[T]) Add(rhs Vec3[T]) Vec3[T] {
	return Vec3[T]{
		lhs[0] + rhs[0],
		lhs[1] + rhs[1],
		lhs[2] + rhs[2],
	}
}

func (lhs Vec3[T]) Sub(rhs Vec3[T]) Vec3[T] {
	return Vec3[T]{
		lhs[0] - rhs[0],
		lhs[1] - rhs[1],
		lhs[2] - rhs[2],
	}
}

func (lhs Vec3[T]) MulScalar(s T) Vec3[T] {
	return Vec3[T]{
		lhs[0] * s,
		lhs[1] * s,
		lhs[2] * s,
	}
}

func (lhs Vec3[T]) Mul(rhs Vec3[T]) Vec3[T] {
	return Vec3[T]{
		lhs[0] * rhs[0],
		lhs[1] * rhs[1],
		lhs[2] * rhs[2],
	}
}

func (lhs Vec3[T]) Dot(rhs Vec3[T]) T {
	return lhs[0]*rhs[0] + lhs[1]*rhs[1] + lhs[2]*rhs[2]
}

func (lhs Vec3[T]) Cross(rhs Vec3[T]) Vec3[T] {
	return Vec3[T]{
		lhs[1]*rhs[2] - rhs[1]*lhs[2],
		lhs[2]*rhs[0] - rhs[2]*lhs[0],
		lhs[0]*rhs[1] - rhs[0]*lhs[1],
	}
}

func (lhs Vec3[T]) Length() T {
	return T(math.Sqrt(float64(lhs.Dot(lhs))))
}

// Normalize returns the unit vector of lhs. The zero vector stays zero.
func (lhs Vec3[T]) Normalize() Vec3[T] {
	length := lhs.Length()
	if length == 0 {
		return lhs
	}

	return lhs.MulScalar(1 / length)
}

// Lerp interpolates linearly between lhs and rhs.
func (lhs Vec3[T]) Lerp(rhs Vec3[T], t T) Vec3[T] {
	return lhs.Add(rhs.Sub(lhs).MulScalar(t))
}

func (lhs Vec3[T]) Extend(w T) Vec4[T] {
	return Vec4[T]{lhs[0], lhs[1], lhs[2], w}
}

func (lhs Vec3[T]) XYZ() (x, y, z T) {
	x = lhs[0]
	y = lhs[1]
	z = lhs[2]
	return
}
