package scene

import (
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/material"
	"github.com/df07/go-raytracer-core/pkg/renderer"
)

// NewDefaultScene creates a scene with one of every primitive, a nested
// group and a glass lens built by CSG
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	config := cameraConfig(renderer.CameraConfig{
		Center:      core.NewVec3(0, 2.5, 7), // Above and in front of the shapes
		LookAt:      core.NewVec3(0, 0.75, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        50.0,
	}, cameraOverrides)

	g := geometry.NewGraph()
	s := &Scene{
		Name:          "Default Scene",
		Description:   "Every primitive, a nested group and a glass lens",
		Graph:         g,
		CameraConfig:  config,
		LightPosition: defaultLight,
	}

	// Create materials
	floor := mirror(core.NewVec3(0.8, 0.8, 0.7), 0.1)
	red := matte(core.NewVec3(0.8, 0.25, 0.2))
	blue := matte(core.NewVec3(0.2, 0.3, 0.8))
	gold := mirror(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	silver := mirror(core.NewVec3(0.8, 0.8, 0.8), 0.9)
	glass := material.NewGlass()

	g.SetName(place(g, geometry.NewPlane(), core.Identity(), floor), "floor")

	g.SetName(place(g, geometry.NewSphere(), core.Translation(-2.5, 1, -1), red), "red sphere")

	g.SetName(place(g, geometry.NewCube(),
		core.Scaling(0.75, 0.75, 0.75).
			Then(core.RotationY(math.Pi/6)).
			Then(core.Translation(2.5, 0.75, -1.5)),
		blue), "blue cube")

	g.SetName(place(g, geometry.NewTruncatedCylinder(0, 1.5, true),
		core.Scaling(0.5, 1, 0.5).Then(core.Translation(1, 0, -3.5)),
		gold), "gold cylinder")

	// The cone's apex is at the origin, so min -1 puts the base at y = 0 after lifting
	g.SetName(place(g, geometry.NewTruncatedCone(-1, 0, true),
		core.Scaling(0.6, 1.5, 0.6).Then(core.Translation(-1, 1.5, -3.5)),
		silver), "silver cone")

	hexagon := newHexagon(g, gold)
	g.SetTransform(hexagon, core.Scaling(0.5, 0.5, 0.5).Then(core.Translation(0, 0.125, -1.5)))
	g.SetName(hexagon, "hexagon")

	lens := newLens(g, glass)
	g.SetTransform(lens, core.Scaling(1, 1, 0.4).Then(core.Translation(-0.75, 1, 1.5)))
	g.SetName(lens, "lens")

	bubble := newHollowSphere(g, glass, blue)
	g.SetTransform(bubble, core.Scaling(0.6, 0.6, 0.6).Then(core.Translation(1.25, 0.6, 1.25)))
	g.SetName(bubble, "glass bubble")

	return s
}

// newHexagon builds a ring of six corner spheres joined by cylinder edges,
// each side its own subgroup, lying in the xz plane with radius 1
func newHexagon(g *geometry.Graph, m *material.Material) geometry.ShapeID {
	sides := make([]geometry.ShapeID, 0, 6)
	for n := 0; n < 6; n++ {
		corner := place(g, geometry.NewSphere(),
			core.Scaling(0.25, 0.25, 0.25).Then(core.Translation(0, 0, -1)), m)

		edge := place(g, geometry.NewTruncatedCylinder(0, 1, false),
			core.Scaling(0.25, 1, 0.25).
				Then(core.RotationZ(-math.Pi/2)).
				Then(core.RotationY(-math.Pi/6)).
				Then(core.Translation(0, 0, -1)), m)

		side := group(g, corner, edge)
		g.SetTransform(side, core.RotationY(float64(n)*math.Pi/3))
		sides = append(sides, side)
	}
	return group(g, sides...)
}

// newLens builds a biconvex lens as the overlap of two unit spheres
// offset along z. The lens casts no shadow.
func newLens(g *geometry.Graph, m *material.Material) geometry.ShapeID {
	front := place(g, geometry.NewSphere(), core.Translation(0, 0, -0.5), m)
	back := place(g, geometry.NewSphere(), core.Translation(0, 0, 0.5), m)
	lens := csg(g, geometry.CSGIntersection, front, back)
	g.SetMaterial(lens, m)
	g.SetCastsShadow(lens, false)
	return lens
}

// newHollowSphere builds a glass shell around an air gap holding a small
// opaque core, the nested transparent case the refraction mode follows
func newHollowSphere(g *geometry.Graph, glass, inner *material.Material) geometry.ShapeID {
	air := material.NewDielectric(material.Air)

	shell := place(g, geometry.NewSphere(), core.Identity(), glass)
	gap := place(g, geometry.NewSphere(), core.Scaling(0.9, 0.9, 0.9), air)
	center := place(g, geometry.NewSphere(), core.Scaling(0.5, 0.5, 0.5), inner)

	g.SetCastsShadow(shell, false)
	g.SetCastsShadow(gap, false)
	return group(g, shell, gap, center)
}
