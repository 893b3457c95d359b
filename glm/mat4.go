package glm

// Mat4 is a column major 4x4 matrix.
type Mat4[T Numeric] [16]T

// Mat4Of builds a matrix from its four columns.
func Mat4Of[T Numeric](columns [4][4]T) Mat4[T] {
	var m Mat4[T]
	for c := range 4 {
		copy(m[c*4:c*4+4], columns[c][:])
	}

	return m
}

func Mat4FromQuaternion[T float](quat Quaternion[T]) Mat4[T] {
	x2 := quat.V[0] + quat.V[0]
	y2 := quat.V[1] + quat.V[1]
	z2 := quat.V[2] + quat.V[2]

	xx2 := x2 * quat.V[0]
	xy2 := x2 * quat.V[1]
	xz2 := x2 * quat.V[2]

	yy2 := y2 * quat.V[1]
	yz2 := y2 * quat.V[2]
	zz2 := z2 * quat.V[2]

	sy2 := y2 * quat.S
	sz2 := z2 * quat.S
	sx2 := x2 * quat.S

	return Mat4[T]{
		1 - yy2 - zz2, xy2 + sz2, xz2 - sy2, 0,
		xy2 - sz2, 1 - xx2 - zz2, yz2 + sx2, 0,
		xz2 + sy2, yz2 - sx2, 1 - xx2 - yy2, 0,
		0, 0, 0, 1,
	}
}

// ComposeMat4 builds translation * rotation * scale.
func ComposeMat4[T float](translation Vec3[T], rotation Quaternion[T], scale Vec3[T]) Mat4[T] {
	m := Mat4FromQuaternion(rotation)

	for c := range 3 {
		for r := range 3 {
			m[c*4+r] *= scale[c]
		}
	}

	m[12] = translation[0]
	m[13] = translation[1]
	m[14] = translation[2]

	return m
}

func IdentityMat4[T Numeric]() Mat4[T] {
	return Mat4[T]{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func TranslationMat4[T Numeric](x, y, z T) Mat4[T] {
	return Mat4[T]{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func RotationYMat4[T float](angle Rad) Mat4[T] {
	fs, fc := fastSincos(angle)
	s := T(fs)
	c := T(fc)

	return Mat4[T]{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func ScaleMat4[T Numeric](x, y, z T) Mat4[T] {
	return Mat4[T]{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

func (lhs Mat4[T]) Mul(rhs Mat4[T]) Mat4[T] {
	return Mat4[T]{
		lhs[0]*rhs[0] + lhs[4]*rhs[1] + lhs[8]*rhs[2] + lhs[12]*rhs[3],
		lhs[1]*rhs[0] + lhs[5]*rhs[1] + lhs[9]*rhs[2] + lhs[13]*rhs[3],
		lhs[2]*rhs[0] + lhs[6]*rhs[1] + lhs[10]*rhs[2] + lhs[14]*rhs[3],
		lhs[3]*rhs[0] + lhs[7]*rhs[1] + lhs[11]*rhs[2] + lhs[15]*rhs[3],
		lhs[0]*rhs[4] + lhs[4]*rhs[5] + lhs[8]*rhs[6] + lhs[12]*rhs[7],
		lhs[1]*rhs[4] + lhs[5]*rhs[5] + lhs[9]*rhs[6] + lhs[13]*rhs[7],
		lhs[2]*rhs[4] + lhs[6]*rhs[5] + lhs[10]*rhs[6] + lhs[14]*rhs[7],
		lhs[3]*rhs[4] + lhs[7]*rhs[5] + lhs[11]*rhs[6] + lhs[15]*rhs[7],
		lhs[0]*rhs[8] + lhs[4]*rhs[9] + lhs[8]*rhs[10] + lhs[12]*rhs[11],
		lhs[1]*rhs[8] + lhs[5]*rhs[9] + lhs[9]*rhs[10] + lhs[13]*rhs[11],
		lhs[2]*rhs[8] + lhs[6]*rhs[9] + lhs[10]*rhs[10] + lhs[14]*rhs[11],
		lhs[3]*rhs[8] + lhs[7]*rhs[9] + lhs[11]*rhs[10] + lhs[15]*rhs[11],
		lhs[0]*rhs[12] + lhs[4]*rhs[13] + lhs[8]*rhs[14] + lhs[12]*rhs[15],
		lhs[1]*rhs[12] + lhs[5]*rhs[13] + lhs[9]*rhs[14] + lhs[13]*rhs[15],
		lhs[2]*rhs[12] + lhs[6]*rhs[13] + lhs[10]*rhs[14] + lhs[14]*rhs[15],
		lhs[3]*rhs[12] + lhs[7]*rhs[13] + lhs[11]*rhs[14] + lhs[15]*rhs[15],
	}
}

func (lhs Mat4[T]) Transform(rhs Vec4[T]) Vec4[T] {
	return Vec4[T]{
		lhs[0]*rhs[0] + lhs[4]*rhs[1] + lhs[8]*rhs[2] + lhs[12]*rhs[3],
		lhs[1]*rhs[0] + lhs[5]*rhs[1] + lhs[9]*rhs[2] + lhs[13]*rhs[3],
		lhs[2]*rhs[0] + lhs[6]*rhs[1] + lhs[10]*rhs[2] + lhs[14]*rhs[3],
		lhs[3]*rhs[0] + lhs[7]*rhs[1] + lhs[11]*rhs[2] + lhs[15]*rhs[3],
	}
}

// TransformPoint applies the full affine transform to p.
func (lhs Mat4[T]) TransformPoint(p Vec3[T]) Vec3[T] {
	return lhs.Transform(p.Extend(1)).Truncate()
}

func (lhs Mat4[T]) Transpose() Mat4[T] {
	var result Mat4[T]
	for col := range 4 {
		for row := range 4 {
			result[row*4+col] = lhs[col*4+row]
		}
	}

	return result
}

// NormalMatrix returns the inverse transpose of the upper 3x3 part,
// padded to a 4x4 matrix. A singular matrix yields the zero matrix.
func NormalMatrix[T float](m Mat4[T]) Mat4[T] {
	a, b, c := m[0], m[4], m[8]
	d, e, f := m[1], m[5], m[9]
	g, h, i := m[2], m[6], m[10]

	// cofactors
	ca, cb, cc := e*i-f*h, -(d*i - f*g), d*h-e*g
	cd, ce, cf := -(b*i - c*h), a*i-c*g, -(a*h - b*g)
	cg, ch, ci := b*f-c*e, -(a*f - c*d), a*e-b*d

	det := a*ca + b*cb + c*cc
	if det == 0 {
		return Mat4[T]{}
	}

	inv := 1 / det

	// the inverse transpose is the cofactor matrix divided by the determinant
	return Mat4[T]{
		ca * inv, cd * inv, cg * inv, 0,
		cb * inv, ce * inv, ch * inv, 0,
		cc * inv, cf * inv, ci * inv, 0,
		0, 0, 0, 1,
	}
}
