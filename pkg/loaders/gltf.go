package loaders

import (
	"errors"
	"fmt"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

// ErrNoScene is returned for glTF documents without any scene to instantiate
var ErrNoScene = errors.New("gltf document has no scene")

// GLTFStats summarizes what was built from a glTF document
type GLTFStats struct {
	Nodes             int // glTF nodes turned into groups
	Triangles         int // Triangles added to the graph
	Degenerate        int // Degenerate faces skipped
	SkippedPrimitives int // Primitives that are not triangle lists
}

// GLTFLoader adds glTF scenes to a shape graph
type GLTFLoader struct {
	logger *zap.Logger
}

// NewGLTFLoader creates a loader. A nil logger discards output.
func NewGLTFLoader(logger *zap.Logger) *GLTFLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GLTFLoader{logger: logger}
}

// LoadGLTF opens a .gltf or .glb file and adds its default scene to graph
func LoadGLTF(path string, graph *geometry.Graph) (geometry.ShapeID, error) {
	id, _, err := NewGLTFLoader(nil).Load(path, graph)
	return id, err
}

// AddDocument adds the default scene of an already decoded document to graph
func AddDocument(doc *gltf.Document, graph *geometry.Graph) (geometry.ShapeID, error) {
	id, _, err := NewGLTFLoader(nil).AddDocument(doc, graph)
	return id, err
}

// Load opens a .gltf or .glb file and adds its default scene to graph
func (l *GLTFLoader) Load(path string, graph *geometry.Graph) (geometry.ShapeID, GLTFStats, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return geometry.NoShape, GLTFStats{}, fmt.Errorf("open gltf: %w", err)
	}

	id, stats, err := l.AddDocument(doc, graph)
	if err != nil {
		return geometry.NoShape, stats, fmt.Errorf("load %s: %w", path, err)
	}
	graph.SetName(id, path)

	l.logger.Info("Loaded glTF model",
		zap.String("path", path),
		zap.Int("nodes", stats.Nodes),
		zap.Int("triangles", stats.Triangles),
		zap.Int("degenerate", stats.Degenerate),
		zap.Int("skippedPrimitives", stats.SkippedPrimitives))
	return id, stats, nil
}

// AddDocument adds the default scene of doc to graph. The scene becomes a
// group whose children mirror the glTF node tree, each node carrying its own
// transform. Only triangle-list primitives are turned into shapes.
func (l *GLTFLoader) AddDocument(doc *gltf.Document, graph *geometry.Graph) (geometry.ShapeID, GLTFStats, error) {
	var stats GLTFStats
	if len(doc.Scenes) == 0 {
		return geometry.NoShape, stats, ErrNoScene
	}

	sceneIndex := 0
	if doc.Scene != nil {
		sceneIndex = *doc.Scene
	}
	if sceneIndex < 0 || sceneIndex >= len(doc.Scenes) {
		return geometry.NoShape, stats, fmt.Errorf("default scene %d out of range: %w", sceneIndex, ErrNoScene)
	}
	scene := doc.Scenes[sceneIndex]

	root := graph.AddGroup()
	graph.SetName(root, scene.Name)
	visiting := make(map[int]bool)
	for _, nodeIndex := range scene.Nodes {
		child, err := l.addNode(doc, graph, nodeIndex, visiting, &stats)
		if err != nil {
			return geometry.NoShape, stats, err
		}
		if err := graph.AddChild(root, child); err != nil {
			return geometry.NoShape, stats, err
		}
	}
	return root, stats, nil
}

// addNode turns one glTF node and its subtree into a group
func (l *GLTFLoader) addNode(doc *gltf.Document, graph *geometry.Graph, index int, visiting map[int]bool, stats *GLTFStats) (geometry.ShapeID, error) {
	if index < 0 || index >= len(doc.Nodes) {
		return geometry.NoShape, fmt.Errorf("node index %d out of range", index)
	}
	if visiting[index] {
		return geometry.NoShape, fmt.Errorf("node %d: %w", index, geometry.ErrCycle)
	}
	visiting[index] = true
	defer delete(visiting, index)

	node := doc.Nodes[index]
	group := graph.AddGroup()
	graph.SetName(group, node.Name)
	stats.Nodes++

	transform, err := nodeTransform(node)
	if err != nil {
		return geometry.NoShape, fmt.Errorf("node %d transform: %w", index, err)
	}
	graph.SetTransform(group, transform)

	if node.Mesh != nil {
		if err := l.addMesh(doc, graph, group, *node.Mesh, stats); err != nil {
			return geometry.NoShape, fmt.Errorf("node %d: %w", index, err)
		}
	}

	for _, childIndex := range node.Children {
		child, err := l.addNode(doc, graph, childIndex, visiting, stats)
		if err != nil {
			return geometry.NoShape, err
		}
		if err := graph.AddChild(group, child); err != nil {
			return geometry.NoShape, err
		}
	}
	return group, nil
}

// addMesh adds every triangle primitive of a glTF mesh under group
func (l *GLTFLoader) addMesh(doc *gltf.Document, graph *geometry.Graph, group geometry.ShapeID, meshIndex int, stats *GLTFStats) error {
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", meshIndex)
	}
	mesh := doc.Meshes[meshIndex]

	for i, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			l.logger.Debug("Skipping non-triangle primitive",
				zap.String("mesh", mesh.Name), zap.Int("primitive", i), zap.Int("mode", int(prim.Mode)))
			stats.SkippedPrimitives++
			continue
		}

		vertices, faces, err := readPrimitive(doc, prim)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
		}

		id, meshStats, err := graph.AddTriangleMesh(vertices, faces, nil)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
		}
		graph.SetName(id, mesh.Name)
		if err := graph.AddChild(group, id); err != nil {
			return err
		}
		stats.Triangles += meshStats.Triangles
		stats.Degenerate += meshStats.Degenerate
	}
	return nil
}

// readPrimitive returns the positions and triangle indices of a primitive.
// Primitives without indices are read as consecutive vertex triples.
func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) ([]core.Vec3, []int, error) {
	posIndex, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil, errors.New("primitive has no POSITION attribute")
	}
	if posIndex < 0 || posIndex >= len(doc.Accessors) {
		return nil, nil, fmt.Errorf("position accessor %d out of range", posIndex)
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIndex], nil)
	if err != nil {
		return nil, nil, fmt.Errorf("read positions: %w", err)
	}
	vertices := make([]core.Vec3, len(positions))
	for i, p := range positions {
		vertices[i] = core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2]))
	}

	var faces []int
	if prim.Indices != nil {
		if *prim.Indices < 0 || *prim.Indices >= len(doc.Accessors) {
			return nil, nil, fmt.Errorf("index accessor %d out of range", *prim.Indices)
		}
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, nil, fmt.Errorf("read indices: %w", err)
		}
		faces = make([]int, len(indices))
		for i, index := range indices {
			faces[i] = int(index)
		}
	} else {
		faces = make([]int, len(vertices)-len(vertices)%3)
		for i := range faces {
			faces[i] = i
		}
	}
	return vertices, faces, nil
}

// nodeTransform returns the node's matrix, or its translation, rotation and
// scale composed as T * R * S when no matrix is given
func nodeTransform(node *gltf.Node) (core.Transform, error) {
	matrix := node.MatrixOrDefault()
	if matrix != gltf.DefaultMatrix {
		return core.FromMatrix(matrix)
	}

	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()

	rotation := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize()
	m := mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(rotation.Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
	return core.NewTransform(m)
}
