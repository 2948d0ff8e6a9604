package scene

import (
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/material"
	"github.com/df07/go-raytracer-core/pkg/renderer"
)

// NewConeScene creates a scene of pointed cones and frustums
func NewConeScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	config := cameraConfig(renderer.CameraConfig{
		Center:      core.NewVec3(0, 2, 5),
		LookAt:      core.NewVec3(0, 0.8, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}, cameraOverrides)

	g := geometry.NewGraph()
	s := &Scene{
		Name:          "Cones",
		Description:   "Pointed cones, frustums and a glass cone stacked on a frustum",
		Graph:         g,
		CameraConfig:  config,
		LightPosition: core.NewVec3(3, 5, 3),
	}

	gray := matte(core.NewVec3(0.5, 0.5, 0.5))
	red := matte(core.NewVec3(0.8, 0.2, 0.2))
	blue := matte(core.NewVec3(0.2, 0.2, 0.8))
	green := matte(core.NewVec3(0.2, 0.8, 0.2))
	gold := mirror(core.NewVec3(0.8, 0.6, 0.2), 0.5)
	glass := material.NewGlass()

	place(g, geometry.NewPlane(), core.Identity(), gray)

	// The unit cone's radius equals |y|, so [-1, 0] is a pointed cone of
	// height 1 with its base at y = -1
	pointed := geometry.NewTruncatedCone(-1, 0, true)

	g.SetName(place(g, pointed,
		core.Scaling(0.5, 2, 0.5).Then(core.Translation(0, 2, 0)),
		red), "center cone")

	// A wide frustum with a glass cone continuing it upward
	g.SetName(place(g, geometry.NewTruncatedCone(-1.6, -1, true),
		core.Scaling(0.5, 1, 0.5).Then(core.Translation(2, 1.6, 0)),
		blue), "frustum")
	glassCone := place(g, pointed,
		core.Scaling(0.5, 1.2, 0.5).Then(core.Translation(2, 1.8, 0)),
		glass)
	g.SetName(glassCone, "glass cone")
	g.SetCastsShadow(glassCone, false)

	// Tilted back so the base cap faces the camera
	g.SetName(place(g, geometry.NewTruncatedCone(-1, -0.4, true),
		core.Scaling(0.5, 1, 0.5).
			Then(core.RotationX(-math.Pi/3)).
			Then(core.Translation(-2, 1.2, -0.5)),
		gold), "tilted frustum")

	// Open at both ends
	g.SetName(place(g, geometry.NewTruncatedCone(-1, -0.3, false),
		core.Scaling(0.4, 1.2, 0.4).
			Then(core.RotationZ(-0.25)).
			Then(core.Translation(-1.2, 1.2, 1)),
		green), "open frustum")

	// Two cones joined at their apexes
	g.SetName(place(g, geometry.NewTruncatedCone(-1, 1, true),
		core.Scaling(0.3, 0.4, 0.3).Then(core.Translation(0.9, 0.4, 1.5)),
		gold), "hourglass")

	return s
}
