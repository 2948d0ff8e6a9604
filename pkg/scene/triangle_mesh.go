package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/material"
	"github.com/df07/go-raytracer-core/pkg/renderer"
)

// NewTriangleMeshScene creates a scene of closed triangle meshes: a box,
// a pyramid and a glass icosahedron
func NewTriangleMeshScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	config := cameraConfig(renderer.CameraConfig{
		Center:      core.NewVec3(0, 2, 6),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       600,
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}, cameraOverrides)

	g := geometry.NewGraph()
	s := &Scene{
		Name:          "Triangle Meshes",
		Description:   "A box, a pyramid and a glass icosahedron built from triangles",
		Graph:         g,
		CameraConfig:  config,
		LightPosition: core.NewVec3(2, 6, 3),
	}

	place(g, geometry.NewPlane(), core.Identity(), matte(core.NewVec3(0.7, 0.7, 0.7)))

	box := mustMesh(g, "box", boxMesh, mirror(core.NewVec3(0.8, 0.2, 0.2), 0.2))
	g.SetTransform(box, core.Scaling(0.5, 0.5, 0.5).
		Then(core.RotationY(math.Pi/6)).
		Then(core.Translation(-2, 0.5, 0)))

	pyramid := mustMesh(g, "pyramid", pyramidMesh, matte(core.NewVec3(0.2, 0.3, 0.8)))
	g.SetTransform(pyramid, core.Scaling(0.75, 2, 0.75).
		Then(core.RotationY(math.Pi/4)))

	glass := material.NewGlass()
	icosahedron := mustMesh(g, "icosahedron", icosahedronMesh, glass)
	g.SetTransform(icosahedron, core.Scaling(0.8, 0.8, 0.8).
		Then(core.RotationY(math.Pi/3)).
		Then(core.Translation(2, 0.8, 0)))
	g.SetCastsShadow(icosahedron, false)

	return s
}

// meshFunc returns vertices and counter-clockwise triangle indices
type meshFunc func() ([]core.Vec3, []int)

func mustMesh(g *geometry.Graph, name string, mesh meshFunc, m *material.Material) geometry.ShapeID {
	vertices, faces := mesh()
	id, _, err := g.AddTriangleMesh(vertices, faces, m)
	if err != nil {
		panic(fmt.Sprintf("scene: %s mesh: %v", name, err))
	}
	g.SetName(id, name)
	return id
}

// boxMesh spans [-1, 1] on every axis
func boxMesh() ([]core.Vec3, []int) {
	vertices := []core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}
	faces := []int{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
	}
	return vertices, faces
}

// pyramidMesh has a square base in y = 0 spanning [-1, 1] and its apex at y = 1
func pyramidMesh() ([]core.Vec3, []int) {
	vertices := []core.Vec3{
		core.NewVec3(-1, 0, -1),
		core.NewVec3(1, 0, -1),
		core.NewVec3(1, 0, 1),
		core.NewVec3(-1, 0, 1),
		core.NewVec3(0, 1, 0), // apex
	}
	faces := []int{
		0, 1, 2, 0, 2, 3, // base
		1, 0, 4, // back
		2, 1, 4, // right
		3, 2, 4, // front
		0, 3, 4, // left
	}
	return vertices, faces
}

// icosahedronMesh has its vertices on the unit sphere
func icosahedronMesh() ([]core.Vec3, []int) {
	phi := (1 + math.Sqrt(5)) / 2
	scale := 1 / math.Sqrt(1+phi*phi)

	raw := []core.Vec3{
		core.NewVec3(-1, phi, 0), core.NewVec3(1, phi, 0),
		core.NewVec3(-1, -phi, 0), core.NewVec3(1, -phi, 0),
		core.NewVec3(0, -1, phi), core.NewVec3(0, 1, phi),
		core.NewVec3(0, -1, -phi), core.NewVec3(0, 1, -phi),
		core.NewVec3(phi, 0, -1), core.NewVec3(phi, 0, 1),
		core.NewVec3(-phi, 0, -1), core.NewVec3(-phi, 0, 1),
	}
	vertices := make([]core.Vec3, len(raw))
	for i, v := range raw {
		vertices[i] = v.Multiply(scale)
	}

	faces := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return vertices, faces
}
