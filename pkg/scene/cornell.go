package scene

import (
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/material"
	"github.com/df07/go-raytracer-core/pkg/renderer"
)

// NewCornellScene creates a Cornell box: a red and a green wall, a white
// floor, ceiling and back wall, a tall block, a mirror ball and a glass ball
func NewCornellScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	config := cameraConfig(renderer.CameraConfig{
		Center:      core.NewVec3(0, 2.75, 10.5), // In front of the open side
		LookAt:      core.NewVec3(0, 2.75, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        40.0,
	}, cameraOverrides)

	g := geometry.NewGraph()
	s := &Scene{
		Name:          "Cornell Box",
		Description:   "Cornell box with a block, a mirror ball and a glass ball",
		Graph:         g,
		CameraConfig:  config,
		LightPosition: core.NewVec3(0, 5.2, 0), // Just below the ceiling
	}

	white := matte(core.NewVec3(0.73, 0.73, 0.73))
	red := matte(core.NewVec3(0.65, 0.05, 0.05))
	green := matte(core.NewVec3(0.12, 0.45, 0.15))

	// The box spans x in [-2.75, 2.75], y in [0, 5.5] and z in [-2.75, 2.75]
	const half = 2.75
	walls := []struct {
		name      string
		transform core.Transform
		material  *material.Material
	}{
		{"floor", core.Identity(), white},
		{"ceiling", core.Translation(0, 2*half, 0), white},
		{"back wall", core.RotationX(math.Pi / 2).Then(core.Translation(0, 0, -half)), white},
		{"left wall", core.RotationZ(math.Pi / 2).Then(core.Translation(-half, 0, 0)), red},
		{"right wall", core.RotationZ(math.Pi / 2).Then(core.Translation(half, 0, 0)), green},
	}
	room := make([]geometry.ShapeID, 0, len(walls))
	for _, wall := range walls {
		id := place(g, geometry.NewPlane(), wall.transform, wall.material)
		g.SetName(id, wall.name)
		room = append(room, id)
	}
	g.SetName(group(g, room...), "room")

	g.SetName(place(g, geometry.NewCube(),
		core.Scaling(0.8, 1.65, 0.8).
			Then(core.RotationY(math.Pi/8)).
			Then(core.Translation(-1, 1.65, -1)),
		white), "tall block")

	g.SetName(place(g, geometry.NewSphere(),
		core.Scaling(0.8, 0.8, 0.8).Then(core.Translation(1.1, 0.8, -0.6)),
		mirror(core.NewVec3(0.8, 0.8, 0.9), 0.95)), "mirror ball")

	glass := place(g, geometry.NewSphere(),
		core.Scaling(0.7, 0.7, 0.7).Then(core.Translation(0.2, 0.7, 1.4)),
		material.NewGlass())
	g.SetName(glass, "glass ball")
	g.SetCastsShadow(glass, false)

	return s
}
