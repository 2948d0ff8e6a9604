package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/loaders"
	"github.com/df07/go-raytracer-core/pkg/renderer"
	"go.uber.org/zap"
)

// fileCameraDefaults fills in whatever a scene file's camera leaves unset
var fileCameraDefaults = renderer.CameraConfig{
	Center:      core.NewVec3(0, 1.5, 5),
	LookAt:      core.NewVec3(0, 1, 0),
	Up:          core.NewVec3(0, 1, 0),
	Width:       400,
	AspectRatio: 16.0 / 9.0,
	VFov:        45.0,
}

// NewFileScene builds a scene from a YAML scene file. Mesh paths in the file
// are relative to the file's directory.
func NewFileScene(path string, logger *zap.Logger, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	file, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}

	g := geometry.NewGraph()
	if _, err := file.Build(g, filepath.Dir(path), logger); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	config := fileCameraDefaults
	if file.Camera != nil {
		config = renderer.MergeCameraConfig(config, fileCameraConfig(file.Camera))
	}
	config = cameraConfig(config, cameraOverrides)

	light, ok := file.LightPosition()
	if !ok {
		light = defaultLight
	}

	name := file.Name
	if name == "" {
		name = titleCase(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}

	s := &Scene{
		Name:          name,
		Description:   file.Description,
		Graph:         g,
		CameraConfig:  config,
		LightPosition: light,
	}
	logger.Info("Loaded scene file",
		zap.String("path", path),
		zap.String("name", name),
		zap.Int("shapes", g.Len()))
	return s, nil
}

func fileCameraConfig(spec *loaders.CameraSpec) renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:      core.NewVec3(spec.Center[0], spec.Center[1], spec.Center[2]),
		LookAt:      core.NewVec3(spec.LookAt[0], spec.LookAt[1], spec.LookAt[2]),
		Up:          core.NewVec3(spec.Up[0], spec.Up[1], spec.Up[2]),
		Width:       spec.Width,
		AspectRatio: spec.AspectRatio,
		VFov:        spec.VFov,
	}
}
