package glm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireVec3(t *testing.T, expected, actual Vec3f) {
	t.Helper()

	for i := range 3 {
		require.InDelta(t, expected[i], actual[i], 1e-4, "component %d of %v", i, actual)
	}
}

func TestRotationYMat4(t *testing.T) {
	m := RotationYMat4[float32](math.Pi / 2)

	// +x rotates onto -z for a right handed y rotation
	requireVec3(t, Vec3f{0, 0, -1}, m.TransformPoint(Vec3f{1, 0, 0}))
	requireVec3(t, Vec3f{0, 1, 0}, m.TransformPoint(Vec3f{0, 1, 0}))
}

func TestQuaternionMatchesMatrix(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3f{0, 1, 0}, math.Pi/2)
	m := RotationYMat4[float32](math.Pi / 2)

	p := Vec3f{1, 2, 3}
	requireVec3(t, m.TransformPoint(p), q.Rotate(p))
	requireVec3(t, m.TransformPoint(p), Mat4FromQuaternion(q).TransformPoint(p))
}

func TestQuaternionFromEulerOrder(t *testing.T) {
	x := QuaternionFromAxisAngle(Vec3f{1, 0, 0}, 0.3)
	y := QuaternionFromAxisAngle(Vec3f{0, 1, 0}, 0.7)

	p := Vec3f{0.2, -1, 0.5}
	expected := y.Rotate(x.Rotate(p))

	requireVec3(t, expected, QuaternionFromEuler[float32](0.3, 0.7, 0).Rotate(p))
}

func TestSlerpEndpoints(t *testing.T) {
	a := IdentityQuaternion[float32]()
	b := QuaternionFromAxisAngle(Vec3f{0, 0, 1}, math.Pi/2)

	p := Vec3f{1, 0, 0}
	requireVec3(t, p, a.Slerp(b, 0).Rotate(p))
	requireVec3(t, Vec3f{0, 1, 0}, a.Slerp(b, 1).Rotate(p))

	half := float32(math.Sqrt2 / 2)
	requireVec3(t, Vec3f{half, half, 0}, a.Slerp(b, 0.5).Rotate(p))
}

func TestComposeMat4(t *testing.T) {
	m := ComposeMat4(
		Vec3f{0, -0.5, 0},
		QuaternionFromAxisAngle(Vec3f{0, 1, 0}, math.Pi),
		Vec3f{1.5, 1.5, 1.5},
	)

	requireVec3(t, Vec3f{-1.5, -0.5, 0}, m.TransformPoint(Vec3f{1, 0, 0}))
	requireVec3(t, Vec3f{0, 1, 0}, m.TransformPoint(Vec3f{0, 1, 0}))
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective[float32](DegToRad[float32](45), 16.0/9.0, 0.1, 1000)

	project := func(z float32) float32 {
		clip := proj.Transform(Vec4f{0, 0, z, 1})
		return clip[2] / clip[3]
	}

	require.InDelta(t, 0, project(-0.1), 1e-4)
	require.InDelta(t, 1, project(-1000), 1e-4)
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3f{0, 1, 5}
	view := LookAt(eye, Vec3f{0, 0.5, 0}, Vec3f{0, 1, 0})

	requireVec3(t, Vec3f{}, view.TransformPoint(eye))

	// the target lands on the negative z axis
	target := view.TransformPoint(Vec3f{0, 0.5, 0})
	require.InDelta(t, 0, target[0], 1e-4)
	require.InDelta(t, 0, target[1], 1e-4)
	require.Less(t, target[2], float32(0))
}

func TestNormalMatrixUndoesNonUniformScale(t *testing.T) {
	m := ComposeMat4(Vec3f{3, 0, 0}, QuaternionFromAxisAngle(Vec3f{0, 1, 0}, 0.4), Vec3f{2, 1, 1})
	n := NormalMatrix(m)

	// a normal stays perpendicular to a transformed tangent
	tangent := Vec3f{1, 1, 0}
	normal := Vec3f{1, -1, 0}

	transformedTangent := m.Transform(tangent.Extend(0)).Truncate()
	transformedNormal := n.Transform(normal.Extend(0)).Truncate()

	require.InDelta(t, 0, transformedTangent.Dot(transformedNormal), 1e-5)

	require.Equal(t, Mat4f{}, NormalMatrix(ScaleMat4[float32](0, 1, 1)))
}

func TestTranspose(t *testing.T) {
	m := TranslationMat4[float32](1, 2, 3)
	require.Equal(t, m, m.Transpose().Transpose())
	require.Equal(t, float32(1), m.Transpose()[3])
}
