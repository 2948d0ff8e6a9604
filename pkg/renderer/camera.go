package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction (usually (0,1,0))
	Width       int       // Image width in pixels, height derived from aspect ratio
	AspectRatio float64   // Aspect ratio (width/height)
	VFov        float64   // Vertical field of view in degrees
}

// Camera turns pixel coordinates into world-space rays through pixel centers
type Camera struct {
	config     CameraConfig
	width      int
	height     int
	halfWidth  float64
	halfHeight float64
	pixelSize  float64
	view       core.Transform
	origin     core.Vec3
}

// NewCamera validates the configuration and precomputes the view transform
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width <= 0 {
		return nil, fmt.Errorf("camera width must be positive, got %d", config.Width)
	}
	if !(config.AspectRatio > 0) {
		return nil, fmt.Errorf("camera aspect ratio must be positive, got %v", config.AspectRatio)
	}
	if !(config.VFov > 0 && config.VFov < 180) {
		return nil, fmt.Errorf("camera vertical field of view must be in (0, 180) degrees, got %v", config.VFov)
	}

	height := int(math.Round(float64(config.Width) / config.AspectRatio))
	if height < 1 {
		return nil, errors.New("camera image height rounds to zero")
	}

	view, err := core.ViewTransform(config.Center, config.LookAt, config.Up)
	if err != nil {
		return nil, fmt.Errorf("camera view: %w", err)
	}

	halfHeight := math.Tan(config.VFov * math.Pi / 360)
	halfWidth := halfHeight * float64(config.Width) / float64(height)

	return &Camera{
		config:     config,
		width:      config.Width,
		height:     height,
		halfWidth:  halfWidth,
		halfHeight: halfHeight,
		pixelSize:  2 * halfWidth / float64(config.Width),
		view:       view,
		origin:     view.InversePoint(core.Vec3{}),
	}, nil
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.height }

// PixelSize returns the size of one pixel on the image plane one unit in front of the camera
func (c *Camera) PixelSize() float64 { return c.pixelSize }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// Contains reports whether (x, y) is a pixel of the image
func (c *Camera) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// RayForPixel returns the normalized world ray through the center of pixel (x, y).
// Pixel (0, 0) is the top-left corner of the image.
func (c *Camera) RayForPixel(x, y int) core.Ray {
	// Offset from the image edge to the pixel center
	xOffset := (float64(x) + 0.5) * c.pixelSize
	yOffset := (float64(y) + 0.5) * c.pixelSize

	// Camera space looks down -z with +x to the right and the image plane at z = -1
	cameraX := xOffset - c.halfWidth
	cameraY := c.halfHeight - yOffset

	pixel := c.view.InversePoint(core.NewVec3(cameraX, cameraY, -1))
	return core.NewRay(c.origin, pixel.Subtract(c.origin).Normalize())
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	return result
}
