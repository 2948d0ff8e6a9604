package loaders

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/material"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrUnknownMaterial is returned when a shape names a material the file does not define
var ErrUnknownMaterial = errors.New("unknown material")

// ErrInvalidMaterial is returned for a material with out-of-range properties
var ErrInvalidMaterial = errors.New("invalid material")

// SceneFile is a YAML scene description: a camera, named materials and a
// tree of shapes
type SceneFile struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Group       string                  `yaml:"group"`
	Camera      *CameraSpec             `yaml:"camera"`
	Light       *[3]float64             `yaml:"light"`
	Materials   map[string]MaterialSpec `yaml:"materials"`
	Shapes      []ShapeSpec             `yaml:"shapes"`
}

// CameraSpec describes the camera of a scene file
type CameraSpec struct {
	Center      [3]float64 `yaml:"center"`
	LookAt      [3]float64 `yaml:"lookAt"`
	Up          [3]float64 `yaml:"up"`
	Width       int        `yaml:"width"`
	AspectRatio float64    `yaml:"aspectRatio"`
	VFov        float64    `yaml:"vfov"` // Degrees
}

// MaterialSpec describes a named material. Unset fields keep the defaults of material.New.
type MaterialSpec struct {
	Color           *[3]float64 `yaml:"color"`
	Reflective      float64     `yaml:"reflective"`
	Transparency    float64     `yaml:"transparency"`
	RefractiveIndex *float64    `yaml:"refractiveIndex"`
}

// TransformStep is one entry of a shape's transform list. Exactly one field is set.
// Steps apply in order, so the first step listed acts on the shape first.
type TransformStep struct {
	Translate *[3]float64 `yaml:"translate"`
	Scale     *[3]float64 `yaml:"scale"`
	RotateX   *float64    `yaml:"rotateX"` // Degrees
	RotateY   *float64    `yaml:"rotateY"`
	RotateZ   *float64    `yaml:"rotateZ"`
	Shear     *[6]float64 `yaml:"shear"` // xy xz yx yz zx zy
}

// ShapeSpec describes one node of the shape tree
type ShapeSpec struct {
	Type        string          `yaml:"type"` // sphere, plane, cube, cylinder, cone, triangle, group, csg, mesh
	Name        string          `yaml:"name"`
	Material    string          `yaml:"material"`
	CastsShadow *bool           `yaml:"castsShadow"`
	Transform   []TransformStep `yaml:"transform"`

	// Cylinders and cones
	Minimum *float64 `yaml:"minimum"`
	Maximum *float64 `yaml:"maximum"`
	Closed  bool     `yaml:"closed"`

	// Triangles
	Points [][3]float64 `yaml:"points"`

	// Groups
	Children []ShapeSpec `yaml:"children"`

	// CSG
	Operation string     `yaml:"operation"`
	Left      *ShapeSpec `yaml:"left"`
	Right     *ShapeSpec `yaml:"right"`

	// Meshes, relative to the scene file
	Path string `yaml:"path"`
}

// LoadSceneFile reads and decodes a YAML scene file
func LoadSceneFile(path string) (*SceneFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scene, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scene, nil
}

// ParseSceneFile decodes a YAML scene description. Unknown keys are rejected.
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var scene SceneFile
	if err := decoder.Decode(&scene); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return &scene, nil
}

// LightPosition returns the scene's point light, if it has one
func (f *SceneFile) LightPosition() (core.Vec3, bool) {
	if f.Light == nil {
		return core.Vec3{}, false
	}
	return vec(*f.Light), true
}

// sceneBuilder carries what Build needs while walking the shape tree
type sceneBuilder struct {
	graph     *geometry.Graph
	baseDir   string
	materials map[string]*material.Material
	logger    *zap.Logger
}

// Build adds every top-level shape of the file to graph and returns their IDs.
// Mesh paths are resolved relative to baseDir. Materials are shared handles,
// so shapes naming the same material share one *material.Material.
func (f *SceneFile) Build(graph *geometry.Graph, baseDir string, logger *zap.Logger) ([]geometry.ShapeID, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &sceneBuilder{
		graph:     graph,
		baseDir:   baseDir,
		materials: make(map[string]*material.Material, len(f.Materials)),
		logger:    logger,
	}
	for name, spec := range f.Materials {
		mat, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("materials.%s: %w", name, err)
		}
		b.materials[name] = mat
	}

	ids := make([]geometry.ShapeID, 0, len(f.Shapes))
	for i := range f.Shapes {
		id, err := b.build(&f.Shapes[i], fmt.Sprintf("shapes[%d]", i), nil)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (m MaterialSpec) build() (*material.Material, error) {
	if m.Reflective < 0 || m.Reflective > 1 {
		return nil, fmt.Errorf("%w: reflective %v outside [0, 1]", ErrInvalidMaterial, m.Reflective)
	}
	if m.Transparency < 0 || m.Transparency > 1 {
		return nil, fmt.Errorf("%w: transparency %v outside [0, 1]", ErrInvalidMaterial, m.Transparency)
	}
	if m.RefractiveIndex != nil && !(*m.RefractiveIndex > 0) {
		return nil, fmt.Errorf("%w: refractive index %v must be positive", ErrInvalidMaterial, *m.RefractiveIndex)
	}

	mat := material.New()
	if m.Color != nil {
		mat.Color = vec(*m.Color)
	}
	mat.Reflective = m.Reflective
	mat.Transparency = m.Transparency
	if m.RefractiveIndex != nil {
		mat.RefractiveIndex = *m.RefractiveIndex
	}
	return mat, nil
}

// build adds one shape spec and its subtree to the graph. Shapes without a
// material of their own use the nearest ancestor's.
func (b *sceneBuilder) build(spec *ShapeSpec, path string, inherited *material.Material) (geometry.ShapeID, error) {
	if spec.Name != "" {
		path = spec.Name
	}

	transform, err := buildTransform(spec.Transform)
	if err != nil {
		return geometry.NoShape, fmt.Errorf("%s: %w", path, err)
	}

	mat := inherited
	if spec.Material != "" {
		var ok bool
		if mat, ok = b.materials[spec.Material]; !ok {
			return geometry.NoShape, fmt.Errorf("%s: %w %q", path, ErrUnknownMaterial, spec.Material)
		}
	}

	id, err := b.buildShape(spec, path, mat)
	if err != nil {
		return geometry.NoShape, err
	}

	if spec.Name != "" {
		b.graph.SetName(id, spec.Name)
	}
	b.graph.SetTransform(id, transform)
	if mat != nil {
		b.graph.SetMaterial(id, mat)
	}
	if spec.CastsShadow != nil {
		b.graph.SetCastsShadow(id, *spec.CastsShadow)
	}
	return id, nil
}

func (b *sceneBuilder) buildShape(spec *ShapeSpec, path string, mat *material.Material) (geometry.ShapeID, error) {
	switch strings.ToLower(spec.Type) {
	case "sphere":
		return b.graph.Add(geometry.NewSphere()), nil
	case "plane":
		return b.graph.Add(geometry.NewPlane()), nil
	case "cube":
		return b.graph.Add(geometry.NewCube()), nil
	case "cylinder":
		minimum, maximum := limits(spec)
		return b.graph.Add(geometry.NewTruncatedCylinder(minimum, maximum, spec.Closed)), nil
	case "cone":
		minimum, maximum := limits(spec)
		return b.graph.Add(geometry.NewTruncatedCone(minimum, maximum, spec.Closed)), nil

	case "triangle":
		if len(spec.Points) != 3 {
			return geometry.NoShape, fmt.Errorf("%s: triangle needs 3 points, got %d", path, len(spec.Points))
		}
		triangle := geometry.NewTriangle(vec(spec.Points[0]), vec(spec.Points[1]), vec(spec.Points[2]))
		if triangle.IsDegenerate() {
			return geometry.NoShape, fmt.Errorf("%s: degenerate triangle", path)
		}
		return b.graph.Add(triangle), nil

	case "group":
		group := b.graph.AddGroup()
		for i := range spec.Children {
			child, err := b.build(&spec.Children[i], fmt.Sprintf("%s.children[%d]", path, i), mat)
			if err != nil {
				return geometry.NoShape, err
			}
			if err := b.graph.AddChild(group, child); err != nil {
				return geometry.NoShape, fmt.Errorf("%s: %w", path, err)
			}
		}
		return group, nil

	case "csg":
		op, err := geometry.ParseCSGOperation(spec.Operation)
		if err != nil {
			return geometry.NoShape, fmt.Errorf("%s: %w", path, err)
		}
		if spec.Left == nil || spec.Right == nil {
			return geometry.NoShape, fmt.Errorf("%s: csg needs left and right operands", path)
		}
		left, err := b.build(spec.Left, path+".left", mat)
		if err != nil {
			return geometry.NoShape, err
		}
		right, err := b.build(spec.Right, path+".right", mat)
		if err != nil {
			return geometry.NoShape, err
		}
		id, err := b.graph.AddCSG(op, left, right)
		if err != nil {
			return geometry.NoShape, fmt.Errorf("%s: %w", path, err)
		}
		return id, nil

	case "mesh":
		return b.buildMesh(spec, path, mat)

	default:
		return geometry.NoShape, fmt.Errorf("%s: unknown shape type %q", path, spec.Type)
	}
}

// buildMesh loads a PLY or glTF model referenced by the scene file
func (b *sceneBuilder) buildMesh(spec *ShapeSpec, path string, mat *material.Material) (geometry.ShapeID, error) {
	if spec.Path == "" {
		return geometry.NoShape, fmt.Errorf("%s: mesh needs a path", path)
	}
	meshPath := spec.Path
	if !filepath.IsAbs(meshPath) {
		meshPath = filepath.Join(b.baseDir, meshPath)
	}

	switch strings.ToLower(filepath.Ext(meshPath)) {
	case ".ply":
		id, err := AddPLY(meshPath, b.graph, mat, b.logger)
		if err != nil {
			return geometry.NoShape, fmt.Errorf("%s: %w", path, err)
		}
		return id, nil
	case ".gltf", ".glb":
		id, _, err := NewGLTFLoader(b.logger).Load(meshPath, b.graph)
		if err != nil {
			return geometry.NoShape, fmt.Errorf("%s: %w", path, err)
		}
		if mat != nil {
			setMaterialTree(b.graph, id, mat)
		}
		return id, nil
	default:
		return geometry.NoShape, fmt.Errorf("%s: unsupported mesh format %q", path, filepath.Ext(meshPath))
	}
}

// setMaterialTree points a shape and all its descendants at mat
func setMaterialTree(g *geometry.Graph, id geometry.ShapeID, mat *material.Material) {
	g.SetMaterial(id, mat)
	for _, child := range g.Children(id) {
		setMaterialTree(g, child, mat)
	}
}

// limits returns the y extent of a cylinder or cone, unbounded where not set
func limits(spec *ShapeSpec) (float64, float64) {
	minimum, maximum := math.Inf(-1), math.Inf(1)
	if spec.Minimum != nil {
		minimum = *spec.Minimum
	}
	if spec.Maximum != nil {
		maximum = *spec.Maximum
	}
	return minimum, maximum
}

// buildTransform composes the steps so that the first step listed applies first
func buildTransform(steps []TransformStep) (core.Transform, error) {
	result := core.Identity()
	for i, step := range steps {
		var next core.Transform
		var err error
		set := 0
		if step.Translate != nil {
			next = core.Translation(step.Translate[0], step.Translate[1], step.Translate[2])
			set++
		}
		if step.Scale != nil {
			s := step.Scale
			next, err = core.NewTransform(mgl64.Scale3D(s[0], s[1], s[2]))
			set++
		}
		if step.RotateX != nil {
			next = core.RotationX(radians(*step.RotateX))
			set++
		}
		if step.RotateY != nil {
			next = core.RotationY(radians(*step.RotateY))
			set++
		}
		if step.RotateZ != nil {
			next = core.RotationZ(radians(*step.RotateZ))
			set++
		}
		if step.Shear != nil {
			h := step.Shear
			next, err = core.NewTransform(mgl64.Mat4FromRows(
				mgl64.Vec4{1, h[0], h[1], 0},
				mgl64.Vec4{h[2], 1, h[3], 0},
				mgl64.Vec4{h[4], h[5], 1, 0},
				mgl64.Vec4{0, 0, 0, 1},
			))
			set++
		}
		if err != nil {
			return core.Transform{}, fmt.Errorf("transform[%d]: %w", i, err)
		}
		if set != 1 {
			return core.Transform{}, fmt.Errorf("transform[%d]: expected exactly one operation, got %d", i, set)
		}
		result = result.Then(next)
	}
	return result, nil
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
