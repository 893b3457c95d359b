package scene

import (
	"structs"

	"github.com/oliverbestmann/vitrine/glm"
)

// Vertex is laid out exactly as the mesh shader expects it.
type Vertex struct {
	_ structs.HostLayout

	Position glm.Vec3f
	Normal   glm.Vec3f
}

type Material struct {
	BaseColor glm.Vec4f
	Roughness float32
	Metallic  float32
}

var DefaultMaterial = Material{
	BaseColor: glm.Vec4f{0.8, 0.8, 0.8, 1},
	Roughness: 0.5,
}

// Mesh is an indexed triangle list. The renderer uploads a mesh once and
// identifies it by pointer, so a Mesh must not be mutated after it was
// rendered the first time.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material Material
}

// ComputeNormals replaces all vertex normals by area weighted face normals.
func (m *Mesh) ComputeNormals() {
	for idx := range m.Vertices {
		m.Vertices[idx].Normal = glm.Vec3f{}
	}

	for idx := 0; idx+2 < len(m.Indices); idx += 3 {
		ia, ib, ic := m.Indices[idx], m.Indices[idx+1], m.Indices[idx+2]

		a := m.Vertices[ia].Position
		b := m.Vertices[ib].Position
		c := m.Vertices[ic].Position

		// not normalized, the length is twice the triangle area
		normal := b.Sub(a).Cross(c.Sub(a))

		m.Vertices[ia].Normal = m.Vertices[ia].Normal.Add(normal)
		m.Vertices[ib].Normal = m.Vertices[ib].Normal.Add(normal)
		m.Vertices[ic].Normal = m.Vertices[ic].Normal.Add(normal)
	}

	for idx := range m.Vertices {
		m.Vertices[idx].Normal = m.Vertices[idx].Normal.Normalize()
	}
}
