package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAABB_EmptyAndAddPoint(t *testing.T) {
	box := EmptyAABB()
	assert.False(t, box.IsValid())

	box = box.AddPoint(NewVec3(-5, 2, 0)).AddPoint(NewVec3(7, 0, -3))
	assert.Equal(t, NewVec3(-5, 0, -3), box.Min)
	assert.Equal(t, NewVec3(7, 2, 0), box.Max)
}

func TestAABB_Union(t *testing.T) {
	a := NewAABB(NewVec3(-5, -2, 0), NewVec3(7, 4, 4))
	b := NewAABB(NewVec3(8, -7, -2), NewVec3(14, 2, 8))

	u := a.Union(b)
	assert.Equal(t, NewVec3(-5, -7, -2), u.Min)
	assert.Equal(t, NewVec3(14, 4, 8), u.Max)

	assert.Equal(t, a, EmptyAABB().Union(a))
}

func TestAABB_Contains(t *testing.T) {
	box := NewAABB(NewVec3(5, -2, 0), NewVec3(11, 4, 7))

	tests := []struct {
		point    Vec3
		expected bool
	}{
		{NewVec3(5, -2, 0), true},
		{NewVec3(11, 4, 7), true},
		{NewVec3(8, 1, 3), true},
		{NewVec3(3, 0, 3), false},
		{NewVec3(8, -4, 3), false},
		{NewVec3(8, 1, -1), false},
		{NewVec3(13, 1, 3), false},
		{NewVec3(8, 5, 3), false},
		{NewVec3(8, 1, 8), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, box.Contains(tt.point), "point %v", tt.point)
	}

	assert.True(t, box.ContainsBox(NewAABB(NewVec3(6, -1, 1), NewVec3(10, 3, 6))))
	assert.False(t, box.ContainsBox(NewAABB(NewVec3(4, -3, -1), NewVec3(10, 3, 6))))
}

func TestAABB_Transform(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	transform := RotationY(math.Pi / 4).Then(RotationX(math.Pi / 4))

	result := box.Transform(transform)
	assert.True(t, result.Min.ApproxEqual(NewVec3(-1.41421, -1.70711, -1.70711)), "min %v", result.Min)
	assert.True(t, result.Max.ApproxEqual(NewVec3(1.41421, 1.70711, 1.70711)), "max %v", result.Max)

	moved := box.Transform(Translation(1, 2, 3).Then(Scaling(2, 2, 2)))
	assert.True(t, moved.Min.ApproxEqual(NewVec3(0, 2, 4)), "min %v", moved.Min)
	assert.True(t, moved.Max.ApproxEqual(NewVec3(4, 6, 8)), "max %v", moved.Max)
}

func TestAABB_TransformInfinite(t *testing.T) {
	inf := math.Inf(1)
	plane := NewAABB(NewVec3(-inf, 0, -inf), NewVec3(inf, 0, inf))

	// Translating along Y keeps the plane flat
	moved := plane.Transform(Translation(0, 2, 0))
	assert.Equal(t, 2.0, moved.Min.Y)
	assert.Equal(t, 2.0, moved.Max.Y)
	assert.True(t, math.IsInf(moved.Min.X, -1))
	assert.True(t, math.IsInf(moved.Max.Z, 1))

	// Tilting the plane makes Y unbounded without NaN
	tilted := plane.Transform(RotationX(math.Pi / 4))
	for axis := 0; axis < 3; axis++ {
		assert.False(t, math.IsNaN(tilted.Min.Component(axis)))
		assert.False(t, math.IsNaN(tilted.Max.Component(axis)))
	}
	assert.True(t, math.IsInf(tilted.Min.Y, -1))
	assert.True(t, math.IsInf(tilted.Max.Y, 1))
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(5, -2, 0), NewVec3(11, 4, 7))
	inf := math.Inf(1)

	tests := []struct {
		name      string
		origin    Vec3
		direction Vec3
		expected  bool
	}{
		{"Through the middle", NewVec3(15, 1, 2), NewVec3(-1, 0, 0), true},
		{"From below", NewVec3(7, 6, 5), NewVec3(0, -1, 0), true},
		{"Along Z", NewVec3(9, -1, -8), NewVec3(0, 0, 1), true},
		{"Parallel outside", NewVec3(9, 0, -8), NewVec3(0, 1, 0), false},
		{"Miss diagonally", NewVec3(-10, -10, -10), NewVec3(-1, -1, -1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(tt.origin, tt.direction.Normalize())
			assert.Equal(t, tt.expected, box.Hit(ray, -inf, inf))
		})
	}

	assert.False(t, EmptyAABB().Hit(NewRay(Vec3{}, NewVec3(0, 0, 1)), -inf, inf))
}

func TestAABB_HitShortDirection(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	inf := math.Inf(1)

	// A ray moved into the space of a node scaled up by 1e12
	short := NewRay(NewVec3(0.5, 0.5, -1), NewVec3(0, 0, 1e-12))
	assert.True(t, box.Hit(short, 0, inf))

	beside := NewRay(NewVec3(2, 0.5, -1), NewVec3(0, 0, 1e-12))
	assert.False(t, box.Hit(beside, 0, inf))
}
