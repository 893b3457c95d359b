package asset

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/oliverbestmann/vitrine/anim"
	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/vitrine/scene"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var ErrNoScene = errors.New("document has no scene")

// Model is a decoded document ready to be added to a scene.
type Model struct {
	Root  *scene.Node
	Clips []*anim.Clip
}

type converter struct {
	doc    *gltf.Document
	nodes  map[int]*scene.Node
	meshes map[int][]*scene.Mesh
}

// Convert builds the node hierarchy of the default scene of doc and
// converts all animations targeting it.
func Convert(doc *gltf.Document) (*Model, error) {
	if len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}

	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}

	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("scene %d: %w", sceneIdx, ErrNoScene)
	}

	c := &converter{
		doc:    doc,
		nodes:  map[int]*scene.Node{},
		meshes: map[int][]*scene.Mesh{},
	}

	gs := doc.Scenes[sceneIdx]

	name := gs.Name
	if name == "" {
		name = "model"
	}

	root := scene.NewNode(name)
	for _, nodeIdx := range gs.Nodes {
		node, err := c.node(nodeIdx)
		if err != nil {
			return nil, err
		}

		root.Add(node)
	}

	model := &Model{Root: root}

	for idx, ga := range doc.Animations {
		clip, err := c.clip(ga)
		if err != nil {
			return nil, fmt.Errorf("animation %d: %w", idx, err)
		}

		if clip != nil {
			model.Clips = append(model.Clips, clip)
		}
	}

	return model, nil
}

func (c *converter) node(idx int) (*scene.Node, error) {
	if idx < 0 || idx >= len(c.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}

	if _, seen := c.nodes[idx]; seen {
		return nil, fmt.Errorf("node %d referenced twice", idx)
	}

	gn := c.doc.Nodes[idx]

	node := scene.NewNode(gn.Name)
	c.nodes[idx] = node

	if gn.Matrix != gltf.DefaultMatrix && gn.Matrix != [16]float64{} {
		node.Translation, node.Rotation, node.Scale = decompose(gn.Matrix)
	} else {
		node.Translation = vec3(gn.TranslationOrDefault())
		node.Rotation = quaternion(gn.RotationOrDefault())
		node.Scale = vec3(gn.ScaleOrDefault())
	}

	if gn.Mesh != nil {
		meshes, err := c.mesh(*gn.Mesh)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", gn.Name, err)
		}

		for primIdx, mesh := range meshes {
			if primIdx == 0 {
				node.Mesh = mesh
				continue
			}

			// every further primitive hangs below the node
			child := scene.NewNode(fmt.Sprintf("%s#%d", gn.Name, primIdx))
			child.Mesh = mesh
			node.Add(child)
		}
	}

	for _, childIdx := range gn.Children {
		child, err := c.node(childIdx)
		if err != nil {
			return nil, err
		}

		node.Add(child)
	}

	return node, nil
}

func (c *converter) mesh(idx int) ([]*scene.Mesh, error) {
	if meshes, ok := c.meshes[idx]; ok {
		return meshes, nil
	}

	if idx < 0 || idx >= len(c.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", idx)
	}

	gm := c.doc.Meshes[idx]

	var meshes []*scene.Mesh
	for primIdx, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			slog.Warn("Skip non triangle primitive",
				slog.String("mesh", gm.Name),
				slog.Int("primitive", primIdx),
			)

			continue
		}

		mesh, err := c.primitive(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", gm.Name, primIdx, err)
		}

		mesh.Name = gm.Name
		meshes = append(meshes, mesh)
	}

	c.meshes[idx] = meshes

	return meshes, nil
}

func (c *converter) primitive(prim *gltf.Primitive) (*scene.Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("no position attribute")
	}

	positions, err := modeler.ReadPosition(c.doc, c.doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(c.doc, c.doc.Accessors[normIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(c.doc, c.doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for idx := range indices {
			indices[idx] = uint32(idx)
		}
	}

	for _, index := range indices {
		if int(index) >= len(positions) {
			return nil, fmt.Errorf("index %d out of range", index)
		}
	}

	vertices := make([]scene.Vertex, len(positions))
	for idx, pos := range positions {
		vertices[idx].Position = glm.Vec3f(pos)
	}

	for idx := range min(len(normals), len(vertices)) {
		vertices[idx].Normal = glm.Vec3f(normals[idx])
	}

	mesh := &scene.Mesh{
		Vertices: vertices,
		Indices:  indices,
		Material: c.material(prim.Material),
	}

	if len(normals) != len(positions) {
		mesh.ComputeNormals()
	}

	return mesh, nil
}

func (c *converter) material(idx *int) scene.Material {
	if idx == nil || *idx < 0 || *idx >= len(c.doc.Materials) {
		return scene.DefaultMaterial
	}

	pbr := c.doc.Materials[*idx].PBRMetallicRoughness
	if pbr == nil {
		return scene.DefaultMaterial
	}

	base := pbr.BaseColorFactorOrDefault()

	return scene.Material{
		BaseColor: glm.Vec4f{float32(base[0]), float32(base[1]), float32(base[2]), float32(base[3])},
		Roughness: float32(pbr.RoughnessFactorOrDefault()),
		Metallic:  float32(pbr.MetallicFactorOrDefault()),
	}
}

func vec3(v [3]float64) glm.Vec3f {
	return glm.Vec3f{float32(v[0]), float32(v[1]), float32(v[2])}
}

func quaternion(q [4]float64) glm.Quaternionf {
	return glm.Quaternionf{
		V: glm.Vec3f{float32(q[0]), float32(q[1]), float32(q[2])},
		S: float32(q[3]),
	}
}

// decompose splits a column major affine matrix without shear into
// translation, rotation and scale.
func decompose(m [16]float64) (glm.Vec3f, glm.Quaternionf, glm.Vec3f) {
	translation := glm.Vec3f{float32(m[12]), float32(m[13]), float32(m[14])}

	sx := math.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2])
	sy := math.Sqrt(m[4]*m[4] + m[5]*m[5] + m[6]*m[6])
	sz := math.Sqrt(m[8]*m[8] + m[9]*m[9] + m[10]*m[10])

	// a mirrored basis flips one axis
	det := m[0]*(m[5]*m[10]-m[9]*m[6]) - m[4]*(m[1]*m[10]-m[9]*m[2]) + m[8]*(m[1]*m[6]-m[5]*m[2])
	if det < 0 {
		sx = -sx
	}

	scale := glm.Vec3f{float32(sx), float32(sy), float32(sz)}

	if sx == 0 || sy == 0 || sz == 0 {
		return translation, glm.IdentityQuaternion[float32](), scale
	}

	// rotation matrix entries, row r column c
	r00, r10, r20 := m[0]/sx, m[1]/sx, m[2]/sx
	r01, r11, r21 := m[4]/sy, m[5]/sy, m[6]/sy
	r02, r12, r22 := m[8]/sz, m[9]/sz, m[10]/sz

	var x, y, z, w float64

	trace := r00 + r11 + r22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		w = 0.25 / s
		x = (r21 - r12) * s
		y = (r02 - r20) * s
		z = (r10 - r01) * s

	case r00 > r11 && r00 > r22:
		s := 2 * math.Sqrt(1+r00-r11-r22)
		w = (r21 - r12) / s
		x = 0.25 * s
		y = (r01 + r10) / s
		z = (r02 + r20) / s

	case r11 > r22:
		s := 2 * math.Sqrt(1+r11-r00-r22)
		w = (r02 - r20) / s
		x = (r01 + r10) / s
		y = 0.25 * s
		z = (r12 + r21) / s

	default:
		s := 2 * math.Sqrt(1+r22-r00-r11)
		w = (r10 - r01) / s
		x = (r02 + r20) / s
		y = (r12 + r21) / s
		z = 0.25 * s
	}

	rotation := quaternion([4]float64{x, y, z, w}).Normalize()

	return translation, rotation, scale
}
