package glm

import "math"

// Quaternion is a rotation with vector part V and scalar part S.
type Quaternion[T float] struct {
	V Vec3[T]
	S T
}

func IdentityQuaternion[T float]() Quaternion[T] {
	return Quaternion[T]{S: 1}
}

func QuaternionFromAxisAngle[T float](axis Vec3[T], angle Rad) Quaternion[T] {
	s, c := fastSincos(angle * 0.5)
	return Quaternion[T]{V: axis.Normalize().MulScalar(T(s)), S: T(c)}
}

// QuaternionFromEuler builds a rotation applying x first, then y, then z.
func QuaternionFromEuler[T float](x, y, z Rad) Quaternion[T] {
	qx := QuaternionFromAxisAngle(Vec3[T]{1, 0, 0}, x)
	qy := QuaternionFromAxisAngle(Vec3[T]{0, 1, 0}, y)
	qz := QuaternionFromAxisAngle(Vec3[T]{0, 0, 1}, z)

	return qz.Mul(qy).Mul(qx)
}

func (lhs Quaternion[T]) Mul(rhs Quaternion[T]) Quaternion[T] {
	return Quaternion[T]{
		V: rhs.V.MulScalar(lhs.S).
			Add(lhs.V.MulScalar(rhs.S)).
			Add(lhs.V.Cross(rhs.V)),
		S: lhs.S*rhs.S - lhs.V.Dot(rhs.V),
	}
}

func (lhs Quaternion[T]) Dot(rhs Quaternion[T]) T {
	return lhs.V.Dot(rhs.V) + lhs.S*rhs.S
}

func (lhs Quaternion[T]) Normalize() Quaternion[T] {
	length := T(math.Sqrt(float64(lhs.Dot(lhs))))
	if length == 0 {
		return IdentityQuaternion[T]()
	}

	return Quaternion[T]{V: lhs.V.MulScalar(1 / length), S: lhs.S / length}
}

// Rotate applies the rotation to v.
func (lhs Quaternion[T]) Rotate(v Vec3[T]) Vec3[T] {
	t := lhs.V.Cross(v).MulScalar(2)
	return v.Add(t.MulScalar(lhs.S)).Add(lhs.V.Cross(t))
}

// Slerp interpolates along the shortest arc between lhs and rhs.
func (lhs Quaternion[T]) Slerp(rhs Quaternion[T], t T) Quaternion[T] {
	cos := lhs.Dot(rhs)
	if cos < 0 {
		rhs = Quaternion[T]{V: rhs.V.MulScalar(-1), S: -rhs.S}
		cos = -cos
	}

	// nearly parallel, fall back to nlerp
	if cos > 0.9995 {
		return Quaternion[T]{
			V: lhs.V.Lerp(rhs.V, t),
			S: lhs.S + (rhs.S-lhs.S)*t,
		}.Normalize()
	}

	theta := math.Acos(float64(cos))
	sin := math.Sin(theta)
	a := T(math.Sin((1-float64(t))*theta) / sin)
	b := T(math.Sin(float64(t)*theta) / sin)

	return Quaternion[T]{
		V: lhs.V.MulScalar(a).Add(rhs.V.MulScalar(b)),
		S: lhs.S*a + rhs.S*b,
	}
}
