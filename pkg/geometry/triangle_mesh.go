package geometry

import (
	"fmt"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/material"
)

// MeshStats describes what AddTriangleMesh built
type MeshStats struct {
	Triangles  int // Triangles added to the graph
	Degenerate int // Faces skipped because their vertices were collinear
}

// AddTriangleMesh adds a group holding one Triangle per face and splits it
// into a bounding hierarchy. faces holds vertex indices, three per triangle.
// Every triangle shares mat; a nil mat keeps the default material.
func (g *Graph) AddTriangleMesh(vertices []core.Vec3, faces []int, mat *material.Material) (ShapeID, MeshStats, error) {
	var stats MeshStats
	if len(faces)%3 != 0 {
		return NoShape, stats, fmt.Errorf("mesh has %d face indices, not a multiple of 3", len(faces))
	}
	for i, index := range faces {
		if index < 0 || index >= len(vertices) {
			return NoShape, stats, fmt.Errorf("face index %d at position %d out of range [0, %d)", index, i, len(vertices))
		}
	}

	group := g.AddGroup()
	if mat != nil {
		g.SetMaterial(group, mat)
	}

	for i := 0; i < len(faces); i += 3 {
		triangle := NewTriangle(vertices[faces[i]], vertices[faces[i+1]], vertices[faces[i+2]])
		if triangle.IsDegenerate() {
			stats.Degenerate++
			continue
		}

		id := g.Add(triangle)
		if mat != nil {
			g.SetMaterial(id, mat)
		}
		if err := g.AddChild(group, id); err != nil {
			return NoShape, stats, err
		}
		stats.Triangles++
	}

	g.Divide(group, leafThreshold)
	return group, stats, nil
}
