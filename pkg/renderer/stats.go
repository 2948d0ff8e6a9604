package renderer

import (
	"image"
	"time"

	"go.uber.org/zap/zapcore"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels              int           // Pixels traced
	Hits                     int           // Pixels whose camera ray hit a shape
	Rays                     int           // Rays cast, including secondary rays
	Intersections            int           // Ray-surface crossings found
	TotalInternalReflections int           // Hits that could not transmit light
	Tiles                    int           // Tiles completed
	Duration                 time.Duration // Wall time of the render
}

// AddSample folds one traced pixel into the statistics
func (s *RenderStats) AddSample(sample Sample) {
	s.TotalPixels++
	if sample.Hit {
		s.Hits++
	}
	s.Rays += sample.Rays
	s.Intersections += sample.Intersections
	s.TotalInternalReflections += sample.TotalInternalReflections
}

// Merge adds the counters of another tile's statistics
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.Hits += other.Hits
	s.Rays += other.Rays
	s.Intersections += other.Intersections
	s.TotalInternalReflections += other.TotalInternalReflections
	s.Tiles += other.Tiles
}

// HitRatio is the fraction of pixels that hit geometry
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.TotalPixels)
}

// MarshalLogObject lets the stats be logged with zap.Object
func (s RenderStats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("pixels", s.TotalPixels)
	enc.AddInt("hits", s.Hits)
	enc.AddFloat64("hitRatio", s.HitRatio())
	enc.AddInt("rays", s.Rays)
	enc.AddInt("intersections", s.Intersections)
	enc.AddInt("totalInternalReflections", s.TotalInternalReflections)
	enc.AddInt("tiles", s.Tiles)
	enc.AddDuration("duration", s.Duration)
	return nil
}

// AverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func AverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
		}
	}
	return total / float64(bounds.Dx()*bounds.Dy())
}
