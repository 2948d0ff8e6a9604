package renderer

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
)

// Mode selects which property of the first hit a pixel shows
type Mode int

const (
	ModeNormal     Mode = iota // World normal mapped to RGB
	ModeDepth                  // Distance to the hit, near is bright
	ModeFresnel                // Schlick reflectance at the hit
	ModeRefraction             // Color seen through transparent surfaces
	ModeShadow                 // Material color, darkened where the light is blocked
)

var modeNames = map[Mode]string{
	ModeNormal:     "normal",
	ModeDepth:      "depth",
	ModeFresnel:    "fresnel",
	ModeRefraction: "refraction",
	ModeShadow:     "shadow",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name to a Mode
func ParseMode(name string) (Mode, error) {
	for mode, modeName := range modeNames {
		if strings.EqualFold(name, modeName) {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q", name)
}

// ModeNames lists every mode name in declaration order
func ModeNames() []string {
	names := make([]string, 0, len(modeNames))
	for m := ModeNormal; m <= ModeShadow; m++ {
		names = append(names, m.String())
	}
	return names
}

// Options controls how the raytracer shades hits
type Options struct {
	Mode          Mode
	MaxDistance   float64   // Depth mode maps this distance to black
	MaxBounces    int       // Transparent surfaces followed in refraction mode
	LightPosition core.Vec3 // Point light used by shadow mode
	TopColor      core.Vec3 // Background color looking straight up
	BottomColor   core.Vec3 // Background color looking straight down
}

// DefaultOptions returns options suitable for the built-in scenes
func DefaultOptions() Options {
	return Options{
		Mode:          ModeNormal,
		MaxDistance:   20,
		MaxBounces:    8,
		LightPosition: core.NewVec3(-10, 10, -10),
		TopColor:      core.NewVec3(0.5, 0.7, 1.0),
		BottomColor:   core.NewVec3(1, 1, 1),
	}
}

// Sample is the traced result for a single camera ray
type Sample struct {
	Color                    core.Vec3
	Hit                      bool
	Rays                     int // Rays cast, including refracted and reflected ones
	Intersections            int // Crossings found over all rays cast
	TotalInternalReflections int
}

// Raytracer traces rays against a shape graph. It only reads the graph, so one
// Raytracer can be shared by all render workers.
type Raytracer struct {
	graph   *geometry.Graph
	camera  *Camera
	options Options
}

// NewRaytracer creates a raytracer for the graph as seen by camera
func NewRaytracer(graph *geometry.Graph, camera *Camera, options Options) *Raytracer {
	return &Raytracer{
		graph:   graph,
		camera:  camera,
		options: options,
	}
}

// Camera returns the camera rays are generated from
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Options returns the shading options
func (rt *Raytracer) Options() Options {
	return rt.options
}

// TracePixel traces the ray through the center of pixel (x, y)
func (rt *Raytracer) TracePixel(x, y int) Sample {
	return rt.Trace(rt.camera.RayForPixel(x, y))
}

// Trace finds the visible hit along ray and shades it according to the mode
func (rt *Raytracer) Trace(ray core.Ray) Sample {
	xs := rt.graph.IntersectWorld(ray)
	sample := Sample{Rays: 1, Intersections: len(xs)}

	hit, ok := geometry.Hit(xs)
	if !ok {
		sample.Color = rt.backgroundGradient(ray)
		return sample
	}

	sample.Hit = true
	comps := rt.graph.PrepareHit(hit, ray, xs)
	sample.Color = rt.shade(&sample, comps)
	return sample
}

func (rt *Raytracer) shade(sample *Sample, comps geometry.PreparedHit) core.Vec3 {
	switch rt.options.Mode {
	case ModeDepth:
		v := 1 - clamp(comps.T/rt.options.MaxDistance)
		return core.NewVec3(v, v, v)

	case ModeFresnel:
		if comps.TotalInternalReflection() {
			sample.TotalInternalReflections++
		}
		r := comps.Schlick()
		return core.NewVec3(r, r, r)

	case ModeRefraction:
		return rt.followRefraction(sample, comps)

	case ModeShadow:
		c := rt.graph.Material(comps.Shape).Color
		if rt.graph.Occluded(comps.OverPoint, rt.options.LightPosition) {
			return c.Multiply(0.25)
		}
		return c

	default:
		// Map each normal component from [-1, 1] to [0, 1]
		return comps.NormalVector.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
	}
}

// followRefraction bends the ray through transparent surfaces, reflecting it
// wherever total internal reflection occurs, and returns the color of the first
// opaque surface reached or the background
func (rt *Raytracer) followRefraction(sample *Sample, comps geometry.PreparedHit) core.Vec3 {
	for bounce := 0; ; bounce++ {
		mat := rt.graph.Material(comps.Shape)
		if mat.Transparency <= 0 || bounce >= rt.options.MaxBounces {
			return mat.Color
		}

		next, ok := comps.RefractedRay()
		if !ok {
			sample.TotalInternalReflections++
			next = core.NewRay(comps.OverPoint, comps.ReflectVector)
		}

		xs := rt.graph.IntersectWorld(next)
		sample.Rays++
		sample.Intersections += len(xs)

		hit, found := geometry.Hit(xs)
		if !found {
			return rt.backgroundGradient(next)
		}
		comps = rt.graph.PrepareHit(hit, next, xs)
	}
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return rt.options.BottomColor.Multiply(1.0 - t).Add(rt.options.TopColor.Multiply(t))
}

// vec3ToColor converts a Vec3 color to RGBA with clamping
func vec3ToColor(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(255 * clamp(c.X))),
		G: uint8(math.Round(255 * clamp(c.Y))),
		B: uint8(math.Round(255 * clamp(c.Z))),
		A: 255,
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
