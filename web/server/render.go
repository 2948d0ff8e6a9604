package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-raytracer-core/pkg/renderer"
)

// consoleBuffer bounds the log entries kept for one render
const consoleBuffer = 64

var renderCounter atomic.Uint64

// RenderStatsResponse is the JSON form of renderer.RenderStats
type RenderStatsResponse struct {
	TotalPixels              int     `json:"totalPixels"`
	Hits                     int     `json:"hits"`
	HitRatio                 float64 `json:"hitRatio"`
	Rays                     int     `json:"rays"`
	Intersections            int     `json:"intersections"`
	TotalInternalReflections int     `json:"totalInternalReflections"`
	Tiles                    int     `json:"tiles"`
	AverageLuminance         float64 `json:"averageLuminance"`
}

// RenderResponse is returned by /api/render when format=json
type RenderResponse struct {
	Scene      string              `json:"scene"`
	Mode       string              `json:"mode"`
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
	Primitives int                 `json:"primitives"`
	ImageData  string              `json:"imageData"` // Base64 encoded PNG
	Stats      RenderStatsResponse `json:"stats"`
	ElapsedMs  int64               `json:"elapsedMs"`
	Console    []ConsoleMessage    `json:"console"`
}

// handleRender renders a scene and returns it as a PNG, or as JSON with
// statistics and the render's log when format=json
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseSceneRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "png" && format != "json" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: unknown format %q", format))
		return
	}

	renderID := "render-" + strconv.FormatUint(renderCounter.Add(1), 10)
	consoleChan := make(chan ConsoleMessage, consoleBuffer)
	logger := NewWebLogger(s.logger, renderID, consoleChan)

	sc, rt, err := s.raytracer(req, logger)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err.Error())
		return
	}

	startTime := time.Now()
	img, stats, err := renderer.NewRenderer(rt, s.config.RendererConfig(), logger).Render(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Render canceled by client")
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	if format == "json" {
		imageData, err := imageToBase64PNG(img)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, RenderResponse{
			Scene:      sc.Name,
			Mode:       req.Mode.String(),
			Width:      img.Bounds().Dx(),
			Height:     img.Bounds().Dy(),
			Primitives: sc.PrimitiveCount(),
			ImageData:  imageData,
			Stats: RenderStatsResponse{
				TotalPixels:              stats.TotalPixels,
				Hits:                     stats.Hits,
				HitRatio:                 stats.HitRatio(),
				Rays:                     stats.Rays,
				Intersections:            stats.Intersections,
				TotalInternalReflections: stats.TotalInternalReflections,
				Tiles:                    stats.Tiles,
				AverageLuminance:         renderer.AverageLuminance(img),
			},
			ElapsedMs: time.Since(startTime).Milliseconds(),
			Console:   drainConsole(consoleChan),
		})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(time.Since(startTime).Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
