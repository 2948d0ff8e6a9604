package scene

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/loaders"
	"github.com/df07/go-raytracer-core/pkg/renderer"
	"go.uber.org/zap"
)

// ErrUnsupportedModel is returned for model files that are neither PLY nor glTF
var ErrUnsupportedModel = errors.New("unsupported model format")

// LoadModel adds the PLY or glTF model at path to g, choosing the loader by
// file extension, and returns the model's root group
func LoadModel(path string, g *geometry.Graph, logger *zap.Logger) (geometry.ShapeID, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ply":
		return loaders.AddPLY(path, g, mirror(core.NewVec3(0.7, 0.5, 0.2), 0.4), logger)
	case ".gltf", ".glb":
		id, _, err := loaders.NewGLTFLoader(logger).Load(path, g)
		return id, err
	default:
		return geometry.NoShape, fmt.Errorf("%w: %q", ErrUnsupportedModel, ext)
	}
}

// NewMeshScene loads a model and stands it on a floor, scaled to two units
// tall and centered on the origin, with the camera framing it
func NewMeshScene(path string, logger *zap.Logger, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := geometry.NewGraph()
	place(g, geometry.NewPlane(), core.Identity(), matte(core.NewVec3(0.6, 0.6, 0.6)))

	model, err := LoadModel(path, g, logger)
	if err != nil {
		return nil, fmt.Errorf("mesh scene: %w", err)
	}

	bounds := g.WorldBounds(model)
	if !bounds.IsValid() {
		return nil, fmt.Errorf("mesh scene: %s has no geometry", path)
	}
	size := bounds.Size()
	if !(size.Y > 0) || math.IsInf(size.Y, 0) {
		return nil, fmt.Errorf("mesh scene: %s has height %v", path, size.Y)
	}

	// Center on the origin in x and z with the lowest point on the floor
	const height = 2.0
	scale := height / size.Y
	center := bounds.Center()
	fit := core.Translation(-center.X, -bounds.Min.Y, -center.Z).Then(core.Scaling(scale, scale, scale))
	g.SetTransform(model, g.Transform(model).Then(fit))

	config := cameraConfig(renderer.CameraConfig{
		Center:      core.NewVec3(0, height*0.75, height*2.5),
		LookAt:      core.NewVec3(0, height/2, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       600,
		AspectRatio: 4.0 / 3.0,
		VFov:        40.0,
	}, cameraOverrides)

	logger.Info("Built mesh scene",
		zap.String("path", path),
		zap.Float64("scale", scale))

	return &Scene{
		Name:          filepath.Base(path),
		Description:   "Model loaded from " + path,
		Graph:         g,
		CameraConfig:  config,
		LightPosition: defaultLight,
	}, nil
}
