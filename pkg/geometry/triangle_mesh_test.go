package geometry

import (
	"fmt"
	"testing"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitCubeMesh is a closed cube from (-1,-1,-1) to (1,1,1) with outward winding
func unitCubeMesh() ([]core.Vec3, []int) {
	vertices := []core.Vec3{
		core.NewVec3(-1, -1, -1), core.NewVec3(1, -1, -1), core.NewVec3(1, 1, -1), core.NewVec3(-1, 1, -1),
		core.NewVec3(-1, -1, 1), core.NewVec3(1, -1, 1), core.NewVec3(1, 1, 1), core.NewVec3(-1, 1, 1),
	}
	faces := []int{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
	}
	return vertices, faces
}

func TestAddTriangleMesh(t *testing.T) {
	g := NewGraph()
	vertices, faces := unitCubeMesh()
	glass := material.NewGlass()

	mesh, stats, err := g.AddTriangleMesh(vertices, faces, glass)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Triangles)
	assert.Equal(t, 0, stats.Degenerate)
	assert.True(t, g.IsGroup(mesh))
	assert.Same(t, glass, g.Material(mesh))

	xs := g.IntersectWorld(ray(0.1, 0.2, -5, 0, 0, 1))
	assertTs(t, []float64{4, 6}, tsOf(xs))
	for _, x := range xs {
		assert.Same(t, glass, g.Material(x.Shape))
	}

	// Entering through the back face the normal faces the eye and points outward
	comps := g.PrepareHit(xs[0], ray(0.1, 0.2, -5, 0, 0, 1), xs)
	assert.False(t, comps.Inside)
	assertVec(t, core.NewVec3(0, 0, -1), comps.NormalVector)
	assert.Equal(t, material.Glass, comps.N2)
}

func TestAddTriangleMesh_Errors(t *testing.T) {
	vertices, _ := unitCubeMesh()

	tests := []struct {
		name  string
		faces []int
	}{
		{"Not a multiple of three", []int{0, 1}},
		{"Index out of range", []int{0, 1, 8}},
		{"Negative index", []int{0, -1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph()
			id, _, err := g.AddTriangleMesh(vertices, tt.faces, nil)
			assert.Error(t, err)
			assert.Equal(t, NoShape, id)
			assert.Equal(t, 0, g.Len())
		})
	}
}

func TestAddTriangleMesh_SkipsDegenerate(t *testing.T) {
	g := NewGraph()
	vertices := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0)}

	_, stats, err := g.AddTriangleMesh(vertices, []int{0, 1, 2, 0, 1, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Triangles)
	assert.Equal(t, 1, stats.Degenerate)
}

func TestDivide(t *testing.T) {
	g := NewGraph()
	group := g.AddGroup()
	for i := 0; i < 20; i++ {
		s := g.Add(NewSphere())
		g.SetTransform(s, core.Scaling(0.4, 0.4, 0.4).Then(core.Translation(float64(i), 0, 0)))
		require.NoError(t, g.AddChild(group, s))
	}
	floor := g.Add(NewPlane())
	g.SetTransform(floor, core.Translation(0, -1, 0))
	require.NoError(t, g.AddChild(group, floor))

	r := ray(7, 5, 0, 0, -1, 0)
	before := g.Intersect(group, r)

	g.Divide(group, 4)

	after := g.Intersect(group, r)
	assert.Equal(t, before, after)
	assertTs(t, []float64{4.6, 5.4, 6}, tsOf(after))

	children := g.Children(group)
	require.Len(t, children, 3)
	assert.True(t, g.IsGroup(children[0]))
	assert.True(t, g.IsGroup(children[1]))
	assert.Equal(t, floor, children[2], "unbounded children stay at the top")
	assert.Equal(t, []ShapeID{group}, g.Roots())

	for _, id := range []ShapeID{children[0], children[1]} {
		assert.LessOrEqual(t, len(g.Children(id)), 10)
		parent, _ := g.Parent(id)
		assert.Equal(t, group, parent)
	}
}

func TestDivide_SmallGroupUnchanged(t *testing.T) {
	g := NewGraph()
	group := g.AddGroup()
	a, b := g.Add(NewSphere()), g.Add(NewCube())
	require.NoError(t, g.AddChildren(group, a, b))

	g.Divide(group, 4)
	assert.Equal(t, []ShapeID{a, b}, g.Children(group))
}

// Mesh loaders keep vertices in file units and fit the model with a scale,
// so the object-space ray gets as short as the triangles get small.
func TestAddTriangleMesh_SmallTrianglesScaledUp(t *testing.T) {
	rays := []struct {
		name string
		ray  core.Ray
	}{
		{"Head on", ray(0, 0, -5, 0, 0, 1)},
		{"Oblique", ray(0.3, 0.2, -5, -0.06, -0.04, 1)},
	}

	for _, edge := range []float64{0.1, 0.01, 1e-3, 1e-5} {
		g := NewGraph()
		vertices := []core.Vec3{
			core.NewVec3(-edge, -edge, 0), core.NewVec3(edge, -edge, 0), core.NewVec3(0, edge, 0),
		}
		mesh, _, err := g.AddTriangleMesh(vertices, []int{0, 1, 2}, nil)
		require.NoError(t, err)
		g.SetTransform(mesh, core.Scaling(1/edge, 1/edge, 1/edge))

		for _, r := range rays {
			t.Run(fmt.Sprintf("%s edge %g", r.name, edge), func(t *testing.T) {
				assertTs(t, []float64{5}, tsOf(g.IntersectWorld(r.ray)))
			})
		}
	}
}
