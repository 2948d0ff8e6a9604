package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestAverageLuminance(t *testing.T) {
	// Red 0.2126, green 0.7152, blue 0.0722, black 0: averages to 0.25
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	assert.InDelta(t, 0.25, AverageLuminance(img), 1e-4)
}

func TestAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	assert.InDelta(t, 1.0, AverageLuminance(img), 1e-4)
}

func TestAverageLuminance_Empty(t *testing.T) {
	assert.Equal(t, 0.0, AverageLuminance(image.NewRGBA(image.Rectangle{})))
}

func TestRenderStats_AddSampleAndMerge(t *testing.T) {
	var tile RenderStats
	tile.AddSample(Sample{Color: core.NewVec3(1, 0, 0), Hit: true, Rays: 3, Intersections: 4, TotalInternalReflections: 1})
	tile.AddSample(Sample{Rays: 1})
	tile.Tiles = 1

	assert.Equal(t, 2, tile.TotalPixels)
	assert.Equal(t, 1, tile.Hits)
	assert.Equal(t, 4, tile.Rays)
	assert.Equal(t, 4, tile.Intersections)
	assert.Equal(t, 1, tile.TotalInternalReflections)
	assert.InDelta(t, 0.5, tile.HitRatio(), 1e-12)

	var total RenderStats
	total.Merge(tile)
	total.Merge(tile)
	assert.Equal(t, 4, total.TotalPixels)
	assert.Equal(t, 2, total.Hits)
	assert.Equal(t, 8, total.Rays)
	assert.Equal(t, 2, total.Tiles)
}

func TestRenderStats_HitRatioEmpty(t *testing.T) {
	assert.Equal(t, 0.0, RenderStats{}.HitRatio())
}
