package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/df07/go-raytracer-core/internal/config"
	"github.com/df07/go-raytracer-core/pkg/renderer"
	"github.com/df07/go-raytracer-core/pkg/scene"
	"go.uber.org/zap"
)

const defaultScene = "default"

// Server handles the render, inspect and scene listing endpoints
type Server struct {
	config *config.Config
	logger *zap.Logger
	mux    *http.ServeMux
}

// NewServer creates a server for cfg. A nil logger discards output.
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		config: cfg,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is canceled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.String("addr", httpServer.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files in the scenes directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.config.Server.ScenesDir)
	if err != nil {
		s.logger.Error("Listing scenes failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// sceneRequest holds the parameters shared by render and inspect
type sceneRequest struct {
	Scene string
	Width int // 0 keeps the scene's width
	Mode  renderer.Mode
}

// parseSceneRequest parses the scene, width and mode parameters
func (s *Server) parseSceneRequest(values url.Values) (sceneRequest, error) {
	req := sceneRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, s.config.Server.MaxWidth); err != nil {
		return req, err
	}

	modeName := values.Get("mode")
	if modeName == "" {
		modeName = s.config.Render.Mode
	}
	if req.Mode, err = renderer.ParseMode(modeName); err != nil {
		return req, err
	}
	return req, nil
}

// createScene builds a built-in scene or a scene file from the scenes
// directory. Arbitrary paths are not accepted.
func (s *Server) createScene(req sceneRequest, logger *zap.Logger) (*scene.Scene, error) {
	overrides := renderer.CameraConfig{Width: req.Width}

	for _, info := range scene.BuiltinScenes() {
		if info.ID == req.Scene {
			return scene.Create(info.ID, "", logger, overrides)
		}
	}

	files, err := scene.ListFileScenes(s.config.Server.ScenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == req.Scene || filepath.Base(info.FilePath) == req.Scene {
			return scene.Create(info.FilePath, "", logger, overrides)
		}
	}
	return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, req.Scene)
}

// raytracer builds the scene and a raytracer for it
func (s *Server) raytracer(req sceneRequest, logger *zap.Logger) (*scene.Scene, *renderer.Raytracer, error) {
	sc, err := s.createScene(req, logger)
	if err != nil {
		return nil, nil, err
	}
	options, err := s.config.RenderOptions()
	if err != nil {
		return nil, nil, err
	}
	options.Mode = req.Mode
	options.LightPosition = sc.LightPosition

	camera, err := sc.Camera()
	if err != nil {
		return nil, nil, err
	}
	return sc, renderer.NewRaytracer(sc.Graph, camera, options), nil
}

// sceneErrorStatus maps a scene creation error to an HTTP status
func sceneErrorStatus(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
