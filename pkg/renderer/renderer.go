package renderer

import (
	"context"
	"image"
	"time"

	"go.uber.org/zap"
)

// Config controls how an image is split up and rendered in parallel
type Config struct {
	TileSize   int // Tile edge in pixels
	NumWorkers int // Number of parallel workers (0 = auto-detect CPU count)
}

// DefaultConfig returns the default render configuration
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0,
	}
}

// Renderer renders a full image by tracing tiles on a worker pool
type Renderer struct {
	raytracer *Raytracer
	config    Config
	logger    *zap.Logger
}

// NewRenderer creates a renderer for the raytracer. A nil logger discards output.
func NewRenderer(raytracer *Raytracer, config Config, logger *zap.Logger) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		raytracer: raytracer,
		config:    config,
		logger:    logger,
	}
}

// Render traces every pixel of the camera image. If ctx is canceled the
// remaining tiles are skipped and the context error is returned along with the
// partially rendered image.
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	start := time.Now()
	camera := r.raytracer.Camera()
	img := image.NewRGBA(image.Rect(0, 0, camera.Width(), camera.Height()))
	tiles := NewTileGrid(camera.Width(), camera.Height(), r.config.TileSize)

	pool := NewWorkerPool(r.raytracer, len(tiles), r.config.NumWorkers)
	pool.Start(ctx)

	r.logger.Info("Rendering",
		zap.Int("width", camera.Width()),
		zap.Int("height", camera.Height()),
		zap.Int("tiles", len(tiles)),
		zap.Int("workers", pool.GetNumWorkers()),
		zap.Stringer("mode", r.raytracer.Options().Mode))

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Image: img})
	}

	var stats RenderStats
	var firstErr error
	for range tiles {
		result, _ := pool.GetResult()
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.Merge(result.Stats)
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	if firstErr != nil {
		r.logger.Warn("Render stopped early", zap.Error(firstErr), zap.Object("stats", stats))
		return img, stats, firstErr
	}

	r.logger.Info("Render complete",
		zap.Object("stats", stats),
		zap.Float64("averageLuminance", AverageLuminance(img)))
	return img, stats, nil
}

// RenderBounds traces the pixels inside bounds into img
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, img *image.RGBA) RenderStats {
	var stats RenderStats
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sample := rt.TracePixel(x, y)
			img.SetRGBA(x, y, vec3ToColor(sample.Color))
			stats.AddSample(sample)
		}
	}
	return stats
}
