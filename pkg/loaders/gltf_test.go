package loaders

import (
	"path/filepath"
	"testing"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// triangleDocument returns a document whose single node places a right
// triangle in the z=0 plane, moved by the node's transform
func triangleDocument(node *gltf.Node) *gltf.Document {
	doc := gltf.NewDocument()
	positions := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	indices := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	doc.Meshes = []*gltf.Mesh{{
		Name: "triangle",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: map[string]int{gltf.POSITION: positions},
		}},
	}}
	node.Mesh = gltf.Index(0)
	doc.Nodes = []*gltf.Node{node}
	doc.Scenes[0].Nodes = []int{0}
	return doc
}

func TestAddDocument_Translation(t *testing.T) {
	doc := triangleDocument(&gltf.Node{Name: "moved", Translation: [3]float64{0, 0, -5}})
	g := geometry.NewGraph()

	root, err := AddDocument(doc, g)
	require.NoError(t, err)
	assert.Equal(t, []geometry.ShapeID{root}, g.Roots())

	children := g.Children(root)
	require.Len(t, children, 1)
	assert.Equal(t, "moved", g.Name(children[0]))
	assert.True(t, g.Transform(children[0]).Equal(core.Translation(0, 0, -5)))

	xs := g.IntersectWorld(core.NewRay(core.NewVec3(0.25, 0.25, 0), core.NewVec3(0, 0, -1)))
	require.Len(t, xs, 1)
	assert.InDelta(t, 5.0, xs[0].T, 1e-6)

	// Counter-clockwise winding faces +z
	assertVecNear(t, core.NewVec3(0, 0, 1), g.NormalAt(xs[0].Shape, core.NewVec3(0.25, 0.25, -5)))
}

func TestAddDocument_RotationAndScale(t *testing.T) {
	// A quarter turn about y maps +x to -z; scaling by 2 first doubles the triangle
	half := 0.7071067811865476
	doc := triangleDocument(&gltf.Node{
		Rotation: [4]float64{0, half, 0, half},
		Scale:    [3]float64{2, 2, 2},
	})
	g := geometry.NewGraph()

	root, err := AddDocument(doc, g)
	require.NoError(t, err)
	node := g.Children(root)[0]

	assertVecNear(t, core.NewVec3(0, 0, -2), g.Transform(node).ApplyPoint(core.NewVec3(1, 0, 0)))
	assertVecNear(t, core.NewVec3(0, 2, 0), g.Transform(node).ApplyPoint(core.NewVec3(0, 1, 0)))
}

func TestAddDocument_Matrix(t *testing.T) {
	doc := triangleDocument(&gltf.Node{Matrix: [16]float64(core.Translation(1, 2, 3).Matrix())})
	g := geometry.NewGraph()

	root, err := AddDocument(doc, g)
	require.NoError(t, err)
	assert.True(t, g.Transform(g.Children(root)[0]).Equal(core.Translation(1, 2, 3)))
}

func TestAddDocument_NestedNodesAndSkippedPrimitives(t *testing.T) {
	doc := triangleDocument(&gltf.Node{Name: "parent", Children: []int{1}})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "child", Mesh: gltf.Index(0), Translation: [3]float64{1, 0, 0}})
	doc.Meshes[0].Primitives = append(doc.Meshes[0].Primitives, &gltf.Primitive{
		Mode:       gltf.PrimitiveLines,
		Attributes: map[string]int{gltf.POSITION: 0},
	})

	g := geometry.NewGraph()
	root, stats, err := NewGLTFLoader(zap.NewNop()).AddDocument(doc, g)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Nodes)
	assert.Equal(t, 2, stats.Triangles)
	assert.Equal(t, 2, stats.SkippedPrimitives)

	parent := g.Children(root)[0]
	child := geometry.NoShape
	for _, id := range g.Children(parent) {
		if g.Name(id) == "child" {
			child = id
		}
	}
	require.NotEqual(t, geometry.NoShape, child)
	assert.True(t, g.Includes(root, child))
}

func TestAddDocument_Errors(t *testing.T) {
	t.Run("No scenes", func(t *testing.T) {
		doc := triangleDocument(&gltf.Node{})
		doc.Scenes = nil
		_, err := AddDocument(doc, geometry.NewGraph())
		assert.ErrorIs(t, err, ErrNoScene)
	})

	t.Run("Node cycle", func(t *testing.T) {
		doc := triangleDocument(&gltf.Node{Children: []int{0}})
		_, err := AddDocument(doc, geometry.NewGraph())
		assert.ErrorIs(t, err, geometry.ErrCycle)
	})

	t.Run("Missing node", func(t *testing.T) {
		doc := triangleDocument(&gltf.Node{Children: []int{7}})
		_, err := AddDocument(doc, geometry.NewGraph())
		assert.Error(t, err)
	})

	t.Run("Missing positions", func(t *testing.T) {
		doc := triangleDocument(&gltf.Node{})
		doc.Meshes[0].Primitives[0].Attributes = map[string]int{}
		_, err := AddDocument(doc, geometry.NewGraph())
		assert.Error(t, err)
	})

	t.Run("Singular scale", func(t *testing.T) {
		doc := triangleDocument(&gltf.Node{Scale: [3]float64{1, 0, 1}})
		_, err := AddDocument(doc, geometry.NewGraph())
		assert.ErrorIs(t, err, core.ErrSingularTransform)
	})
}

func TestLoadGLTF_BinaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.glb")
	require.NoError(t, gltf.SaveBinary(triangleDocument(&gltf.Node{Name: "saved"}), path))

	g := geometry.NewGraph()
	root, err := LoadGLTF(path, g)
	require.NoError(t, err)
	assert.Equal(t, path, g.Name(root))

	xs := g.IntersectWorld(core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)))
	assert.Len(t, xs, 1)
}

func TestLoadGLTF_InvalidPath(t *testing.T) {
	_, err := LoadGLTF(filepath.Join(t.TempDir(), "missing.gltf"), geometry.NewGraph())
	assert.Error(t, err)
}

func assertVecNear(t *testing.T, expected, actual core.Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, 1e-6, "x")
	assert.InDelta(t, expected.Y, actual.Y, 1e-6, "y")
	assert.InDelta(t, expected.Z, actual.Z, 1e-6, "z")
}
