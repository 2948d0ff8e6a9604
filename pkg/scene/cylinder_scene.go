package scene

import (
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/material"
	"github.com/df07/go-raytracer-core/pkg/renderer"
)

// NewCylinderScene creates a scene of capped and open cylinders
func NewCylinderScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	config := cameraConfig(renderer.CameraConfig{
		Center:      core.NewVec3(0, 1.5, 4),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        50.0,
	}, cameraOverrides)

	g := geometry.NewGraph()
	s := &Scene{
		Name:          "Cylinders",
		Description:   "Capped and open cylinders in several orientations",
		Graph:         g,
		CameraConfig:  config,
		LightPosition: core.NewVec3(3, 5, 3),
	}

	gray := matte(core.NewVec3(0.5, 0.5, 0.5))
	red := matte(core.NewVec3(0.8, 0.2, 0.2))
	blue := matte(core.NewVec3(0.2, 0.2, 0.8))
	gold := mirror(core.NewVec3(0.8, 0.6, 0.2), 0.5)
	glass := material.NewGlass()

	place(g, geometry.NewPlane(), core.Identity(), gray)

	// An open tube tipped toward the camera so it can be seen through
	g.SetName(place(g, geometry.NewTruncatedCylinder(-1.75, 1.75, false),
		core.Scaling(0.35, 1, 0.35).
			Then(core.RotationX(math.Pi/2-0.1)).
			Then(core.Translation(-0.15, 1.1, 0.25)),
		gold), "tube")

	// Tall capped cylinder standing on the floor
	g.SetName(place(g, geometry.NewTruncatedCylinder(0, 2, true),
		core.Scaling(0.5, 1, 0.5).Then(core.Translation(1.8, 0, 0)),
		red), "tall cylinder")

	// Lying along x so both end caps face sideways
	g.SetName(place(g, geometry.NewTruncatedCylinder(-0.5, 0.5, true),
		core.Scaling(0.3, 1, 0.3).
			Then(core.RotationZ(math.Pi/2)).
			Then(core.Translation(-2, 0.3, 0)),
		blue), "log")

	glassCylinder := place(g, geometry.NewTruncatedCylinder(0, 0.6, true),
		core.Scaling(0.2, 1, 0.2).Then(core.Translation(0.5, 0, 1)),
		glass)
	g.SetName(glassCylinder, "glass cylinder")
	g.SetCastsShadow(glassCylinder, false)

	return s
}
