package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/material"
	"github.com/df07/go-raytracer-core/pkg/renderer"
	"go.uber.org/zap"
)

// ErrUnknownScene is returned by Create for names it does not recognize
var ErrUnknownScene = errors.New("unknown scene")

// Scene is a shape graph together with the camera and light used to render it
type Scene struct {
	Name          string
	Description   string
	Graph         *geometry.Graph
	CameraConfig  renderer.CameraConfig
	LightPosition core.Vec3
}

// Camera builds the scene's camera
func (s *Scene) Camera() (*renderer.Camera, error) {
	return renderer.NewCamera(s.CameraConfig)
}

// Options returns the default trace options for mode, lit by the scene's light
func (s *Scene) Options(mode renderer.Mode) renderer.Options {
	options := renderer.DefaultOptions()
	options.Mode = mode
	options.LightPosition = s.LightPosition
	return options
}

// Raytracer builds a raytracer for the scene in the given mode
func (s *Scene) Raytracer(mode renderer.Mode) (*renderer.Raytracer, error) {
	camera, err := s.Camera()
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	return renderer.NewRaytracer(s.Graph, camera, s.Options(mode)), nil
}

// PrimitiveCount returns the number of leaf primitives in the scene
func (s *Scene) PrimitiveCount() int {
	count := 0
	var walk func(id geometry.ShapeID)
	walk = func(id geometry.ShapeID) {
		switch {
		case s.Graph.IsGroup(id):
			for _, child := range s.Graph.Children(id) {
				walk(child)
			}
		case s.Graph.IsCSG(id):
			_, left, right, _ := s.Graph.CSG(id)
			walk(left)
			walk(right)
		default:
			count++
		}
	}
	for _, root := range s.Graph.Roots() {
		walk(root)
	}
	return count
}

// defaultLight is the point light shared by the built-in scenes
var defaultLight = core.NewVec3(-10, 10, -10)

// cameraConfig applies the first override, if any, to defaults
func cameraConfig(defaults renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) > 0 {
		return renderer.MergeCameraConfig(defaults, overrides[0])
	}
	return defaults
}

// Create builds a scene by name. Names ending in .yaml or .yml are read as
// scene files; "mesh" loads modelPath. Camera overrides apply to every scene.
func Create(name, modelPath string, logger *zap.Logger, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		return NewFileScene(name, logger, cameraOverrides...)
	}

	switch name {
	case "default", "basic", "":
		return NewDefaultScene(cameraOverrides...), nil
	case "nested-glass":
		return NewNestedGlassScene(cameraOverrides...), nil
	case "cornell-box":
		return NewCornellScene(cameraOverrides...), nil
	case "sphere-grid":
		return NewSphereGridScene(cameraOverrides...), nil
	case "triangle-mesh":
		return NewTriangleMeshScene(cameraOverrides...), nil
	case "cylinders":
		return NewCylinderScene(cameraOverrides...), nil
	case "cones":
		return NewConeScene(cameraOverrides...), nil
	case "mesh":
		if modelPath == "" {
			return nil, errors.New("mesh scene needs a model path")
		}
		return NewMeshScene(modelPath, logger, cameraOverrides...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
}

// place adds p to g with transform t and material m
func place(g *geometry.Graph, p geometry.Primitive, t core.Transform, m *material.Material) geometry.ShapeID {
	id := g.Add(p)
	g.SetTransform(id, t)
	if m != nil {
		g.SetMaterial(id, m)
	}
	return id
}

// matte returns an opaque material of the given color
func matte(color core.Vec3) *material.Material {
	m := material.New()
	m.Color = color
	return m
}

// mirror returns an opaque material that reflects the given fraction of light
func mirror(color core.Vec3, reflective float64) *material.Material {
	m := matte(color)
	m.Reflective = reflective
	return m
}

// group and csg panic on graph errors: the built-in scenes only combine
// freshly added shapes, so an error here is a programming mistake.

func group(g *geometry.Graph, children ...geometry.ShapeID) geometry.ShapeID {
	id := g.AddGroup()
	if err := g.AddChildren(id, children...); err != nil {
		panic(fmt.Sprintf("scene: %v", err))
	}
	return id
}

func csg(g *geometry.Graph, op geometry.CSGOperation, left, right geometry.ShapeID) geometry.ShapeID {
	id, err := g.AddCSG(op, left, right)
	if err != nil {
		panic(fmt.Sprintf("scene: %v", err))
	}
	return id
}
