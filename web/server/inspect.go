package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-raytracer-core/pkg/renderer"
	"go.uber.org/zap"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Scene  string `json:"scene"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	renderer.Inspection
	MaterialType string `json:"materialType,omitempty"`
	HexColor     string `json:"hexColor,omitempty"`
}

// handleInspect reports what the camera ray through pixel (x, y) hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	req, err := s.parseSceneRequest(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	x, err := parseRequiredIntParam(values, "x")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseRequiredIntParam(values, "y")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sc, rt, err := s.raytracer(req, s.logger)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err.Error())
		return
	}

	inspection, err := rt.Inspect(x, y)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	response := InspectResponse{
		Scene:      sc.Name,
		Width:      rt.Camera().Width(),
		Height:     rt.Camera().Height(),
		Inspection: inspection,
	}
	if inspection.Hit {
		response.MaterialType = materialType(inspection)
		response.HexColor = hexColor(inspection.Color)
	}

	s.logger.Debug("Inspected pixel",
		zap.String("scene", sc.Name),
		zap.Int("x", x),
		zap.Int("y", y),
		zap.Bool("hit", inspection.Hit))
	writeJSON(w, http.StatusOK, response)
}

// materialType classifies the hit surface for display
func materialType(in renderer.Inspection) string {
	if in.Transparency > 0 {
		return "transparent"
	}
	return "opaque"
}

func hexColor(c [3]float64) string {
	channel := func(v float64) int {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 255
		}
		return int(v * 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c[0]), channel(c[1]), channel(c[2]))
}

func parseRequiredIntParam(values url.Values, key string) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, raw)
	}
	return parsed, nil
}
