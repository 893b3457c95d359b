package scene

import (
	"math"

	"github.com/furui/fastnoiselite-go"
	"github.com/oliverbestmann/vitrine/glm"
)

type NoiseBlobOptions struct {
	// number of times the icosahedron gets subdivided
	Subdivisions int

	Radius float32

	// relative displacement of the surface, 0.2 moves vertices by up to 20%
	Amplitude float32

	Frequency float32
	Material  Material
}

// NoiseBlob builds a sphere whose surface is displaced by fractal
// OpenSimplex2 noise.
func NoiseBlob(opts NoiseBlobOptions) *Mesh {
	if opts.Radius == 0 {
		opts.Radius = 1
	}

	if opts.Frequency == 0 {
		opts.Frequency = 1.5
	}

	if opts.Material == (Material{}) {
		opts.Material = DefaultMaterial
	}

	noise := fastnoiselite.NewNoise()
	noise.SetNoiseType(fastnoiselite.NoiseTypeOpenSimplex2)
	noise.FractalType = fastnoiselite.FractalTypeFBm
	noise.Frequency = float64(opts.Frequency)
	noise.SetFractalOctaves(3)

	mesh := Icosphere(opts.Subdivisions)
	mesh.Name = "NoiseBlob"
	mesh.Material = opts.Material

	for idx := range mesh.Vertices {
		dir := mesh.Vertices[idx].Position
		x, y, z := dir.XYZ()

		n := float32(noise.GetNoise3D(
			fastnoiselite.FNLfloat(x),
			fastnoiselite.FNLfloat(y),
			fastnoiselite.FNLfloat(z),
		))

		mesh.Vertices[idx].Position = dir.MulScalar(opts.Radius * (1 + opts.Amplitude*n))
	}

	mesh.ComputeNormals()

	return mesh
}

// Icosphere returns a unit sphere made from a subdivided icosahedron.
func Icosphere(subdivisions int) *Mesh {
	t := float32((1 + math.Sqrt(5)) / 2)

	positions := []glm.Vec3f{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}

	for idx := range positions {
		positions[idx] = positions[idx].Normalize()
	}

	indices := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for range subdivisions {
		midpoints := map[[2]uint32]uint32{}

		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{min(a, b), max(a, b)}
			if idx, ok := midpoints[key]; ok {
				return idx
			}

			mid := positions[a].Add(positions[b]).MulScalar(0.5).Normalize()
			positions = append(positions, mid)

			idx := uint32(len(positions) - 1)
			midpoints[key] = idx
			return idx
		}

		var next []uint32
		for idx := 0; idx < len(indices); idx += 3 {
			a, b, c := indices[idx], indices[idx+1], indices[idx+2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)

			next = append(next,
				a, ab, ca,
				b, bc, ab,
				c, ca, bc,
				ab, bc, ca,
			)
		}

		indices = next
	}

	vertices := make([]Vertex, len(positions))
	for idx, pos := range positions {
		vertices[idx] = Vertex{Position: pos, Normal: pos}
	}

	return &Mesh{
		Name:     "Icosphere",
		Vertices: vertices,
		Indices:  indices,
		Material: DefaultMaterial,
	}
}
