package scene

import (
	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/material"
	"github.com/df07/go-raytracer-core/pkg/renderer"
)

// NewNestedGlassScene creates three overlapping glass spheres of increasing
// refractive index over a plane, the arrangement that exercises how n1 and n2
// are chosen when a ray is inside several transparent shapes at once
func NewNestedGlassScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	config := cameraConfig(renderer.CameraConfig{
		Center:      core.NewVec3(0, 1, 6),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}, cameraOverrides)

	g := geometry.NewGraph()
	s := &Scene{
		Name:          "Nested Glass",
		Description:   "Three overlapping glass spheres with indices 1.5, 2.0 and 2.5",
		Graph:         g,
		CameraConfig:  config,
		LightPosition: defaultLight,
	}

	place(g, geometry.NewPlane(), core.Identity(), mirror(core.NewVec3(0.9, 0.9, 0.9), 0.2))

	spheres := []struct {
		name  string
		index float64
		x     float64
		tint  core.Vec3
	}{
		{"glass", material.Glass, -0.8, core.NewVec3(0.9, 0.95, 1)},
		{"dense glass", 2.0, 0, core.NewVec3(1, 0.95, 0.9)},
		{"heavy glass", 2.5, 0.8, core.NewVec3(0.95, 1, 0.9)},
	}
	for _, sphere := range spheres {
		m := material.NewDielectric(sphere.index)
		m.Color = sphere.tint
		m.Reflective = 0.1

		id := place(g, geometry.NewSphere(), core.Translation(sphere.x, 1, 0), m)
		g.SetName(id, sphere.name)
		g.SetCastsShadow(id, false)
	}

	return s
}
