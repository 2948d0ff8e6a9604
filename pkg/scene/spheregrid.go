package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/renderer"
)

// sphereGridSize is the number of spheres along each side of the grid
const sphereGridSize = 10

// oklchToRGB converts an OKLCH color to clamped linear RGB.
// l is lightness in [0, 1], c is chroma, h is hue in degrees.
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cubed LMS
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b
	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	return core.NewVec3(
		clampUnit(+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc),
		clampUnit(-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc),
		clampUnit(-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc),
	)
}

func clampUnit(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// NewSphereGridScene creates a grid of colored spheres, one group per row,
// with the whole grid divided into a bounding hierarchy
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	config := cameraConfig(renderer.CameraConfig{
		Center:      core.NewVec3(4.5, 6, 18), // Back and above the grid
		LookAt:      core.NewVec3(4.5, 0.8, 4.5),
		Up:          core.NewVec3(0, 1, 0),
		Width:       800,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}, cameraOverrides)

	g := geometry.NewGraph()
	s := &Scene{
		Name:          "Sphere Grid",
		Description:   fmt.Sprintf("%dx%d grid of colored spheres", sphereGridSize, sphereGridSize),
		Graph:         g,
		CameraConfig:  config,
		LightPosition: core.NewVec3(20, 25, 20),
	}

	place(g, geometry.NewPlane(), core.Identity(), matte(core.NewVec3(0.5, 0.5, 0.5)))

	const radius = 0.35
	rows := make([]geometry.ShapeID, 0, sphereGridSize)
	for i := 0; i < sphereGridSize; i++ {
		row := make([]geometry.ShapeID, 0, sphereGridSize)
		for j := 0; j < sphereGridSize; j++ {
			// Hue varies across x, chroma across z
			hue := float64(i) / float64(sphereGridSize-1) * 360.0
			chroma := 0.05 + float64(j)/float64(sphereGridSize-1)*0.2
			lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)

			m := mirror(oklchToRGB(lightness, chroma, hue), 0.1*float64((i+j)%3))
			row = append(row, place(g, geometry.NewSphere(),
				core.Scaling(radius, radius, radius).Then(core.Translation(float64(i), radius, float64(j))),
				m))
		}
		id := group(g, row...)
		g.SetName(id, fmt.Sprintf("row %d", i))
		rows = append(rows, id)
	}

	grid := group(g, rows...)
	g.SetName(grid, "grid")
	g.Divide(grid, 4)

	return s
}
