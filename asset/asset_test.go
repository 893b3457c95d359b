package asset

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/oliverbestmann/vitrine/anim"
	"github.com/oliverbestmann/vitrine/glm"
	"github.com/oliverbestmann/vitrine/tick/ticktest"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/require"
)

func triangleDocument() *gltf.Document {
	doc := gltf.NewDocument()

	positions := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	indices := modeler.WriteIndices(doc, []uint32{0, 1, 2})

	doc.Meshes = []*gltf.Mesh{{
		Name: "Triangle",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: map[string]int{gltf.POSITION: positions},
		}},
	}}

	doc.Nodes = []*gltf.Node{
		{Name: "Body", Mesh: gltf.Index(0), Children: []int{1}, Translation: [3]float64{0, 1, 0}},
		{Name: "Wing", Scale: [3]float64{2, 2, 2}, Rotation: [4]float64{0, 0, 0, 1}},
	}

	doc.Scenes[0].Nodes = []int{0}

	times := modeler.WriteAccessor(doc, gltf.TargetNone, []float32{0, 1})
	values := modeler.WriteAccessor(doc, gltf.TargetNone, [][3]float32{{0, 1, 0}, {0, 3, 0}})

	doc.Animations = []*gltf.Animation{{
		Name:     "Hover",
		Samplers: []*gltf.AnimationSampler{{Input: times, Output: values}},
		Channels: []*gltf.AnimationChannel{{
			Sampler: 0,
			Target:  gltf.AnimationChannelTarget{Node: gltf.Index(0), Path: gltf.TRSTranslation},
		}},
	}}

	return doc
}

func TestConvert(t *testing.T) {
	model, err := Convert(triangleDocument())
	require.NoError(t, err)

	body := model.Root.Find("Body")
	require.NotNil(t, body)
	require.Equal(t, glm.Vec3f{0, 1, 0}, body.Translation)

	require.NotNil(t, body.Mesh)
	require.Len(t, body.Mesh.Vertices, 3)
	require.Equal(t, []uint32{0, 1, 2}, body.Mesh.Indices)

	// normals are computed if missing
	require.InDelta(t, 1, body.Mesh.Vertices[0].Normal[2], 1e-6)

	wing := body.Find("Wing")
	require.NotNil(t, wing)
	require.Equal(t, glm.Vec3f{2, 2, 2}, wing.Scale)

	require.Len(t, model.Clips, 1)
	require.Equal(t, "Hover", model.Clips[0].Name)
	require.Equal(t, float32(1), model.Clips[0].Duration)
	require.Same(t, body, model.Clips[0].Channels[0].Target)
	require.Equal(t, anim.PathTranslation, model.Clips[0].Channels[0].Path)
}

func TestConvertWithoutScene(t *testing.T) {
	_, err := Convert(&gltf.Document{})
	require.ErrorIs(t, err, ErrNoScene)

	doc := triangleDocument()
	doc.Scene = gltf.Index(4)

	_, err = Convert(doc)
	require.ErrorIs(t, err, ErrNoScene)
}

func TestConvertRejectsCycles(t *testing.T) {
	doc := triangleDocument()
	doc.Nodes[1].Children = []int{0}

	_, err := Convert(doc)
	require.ErrorContains(t, err, "referenced twice")
}

func TestDecompose(t *testing.T) {
	rotation := glm.QuaternionFromAxisAngle(glm.Vec3f{0, 1, 0}, math.Pi/3)
	matrix := glm.ComposeMat4(glm.Vec3f{1, 2, 3}, rotation, glm.Vec3f{2, 2, 2})

	var m [16]float64
	for idx := range m {
		m[idx] = float64(matrix[idx])
	}

	translation, q, scale := decompose(m)

	require.InDeltaSlice(t, []float32{1, 2, 3}, translation[:], 1e-5)
	require.InDeltaSlice(t, []float32{2, 2, 2}, scale[:], 1e-5)
	require.InDelta(t, 1, math.Abs(float64(q.Dot(rotation))), 1e-5)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.glb")
	require.NoError(t, gltf.SaveBinary(triangleDocument(), path))

	var fractions []float64
	loader := &Loader{OnProgress: func(fraction float64) { fractions = append(fractions, fraction) }}

	model, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, model.Root.Find("Wing"))

	require.NotEmpty(t, fractions)
	require.Equal(t, 1.0, fractions[len(fractions)-1])
	require.IsIncreasing(t, fractions)
}

func TestLoadAsyncReportsErrorOnHostThread(t *testing.T) {
	host := ticktest.NewHost()

	var loaded bool
	var loadErr error

	loader := &Loader{
		OnLoad:  func(*Model) { loaded = true },
		OnError: func(err error) { loadErr = err },
	}

	done := loader.LoadAsync(context.Background(), host, filepath.Join(t.TempDir(), "missing.glb"))
	<-done

	// nothing runs before the host drains its queue
	require.NoError(t, loadErr)

	require.Equal(t, 1, host.Drain())
	require.False(t, loaded)
	require.ErrorIs(t, loadErr, os.ErrNotExist)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.glb")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a model"), 0o644))

	_, err := (&Loader{}).Load(context.Background(), path)
	require.Error(t, err)
}
