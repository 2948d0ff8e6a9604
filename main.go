package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/df07/go-raytracer-core/internal/config"
	"github.com/df07/go-raytracer-core/internal/logger"
	"github.com/df07/go-raytracer-core/pkg/renderer"
	"github.com/df07/go-raytracer-core/pkg/scene"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout)
	logger.Sync()
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line
type options struct {
	configPath string
	inspect    string
	list       bool
	flags      *flag.FlagSet
}

// parseFlags reads args into cfg, leaving settings whose flags were not given untouched
func parseFlags(args []string, stdout io.Writer) (*config.Config, options, error) {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stdout)

	var opts options
	opts.flags = fs
	defaults := config.Default()

	fs.StringVar(&opts.configPath, "config", "", "YAML config file (default ./"+config.DefaultPath+" if present)")
	sceneName := fs.String("scene", defaults.Render.Scene, "Built-in scene name or path to a .yaml scene file")
	model := fs.String("model", "", "PLY or glTF model for the mesh scene")
	mode := fs.String("mode", defaults.Render.Mode, "Render mode: "+strings.Join(renderer.ModeNames(), ", "))
	width := fs.Int("width", 0, "Image width in pixels (0 keeps the scene's width)")
	workers := fs.Int("workers", 0, "Render workers (0 = one per CPU)")
	tileSize := fs.Int("tile-size", defaults.Render.TileSize, "Tile edge in pixels")
	outputDir := fs.String("output", defaults.Render.OutputDir, "Directory renders are written under")
	logLevel := fs.String("log-level", defaults.Logging.Level, "Log level: debug, info, warn or error")
	logFile := fs.String("log-file", "", "Also write JSON logs to this rotating file")
	fs.StringVar(&opts.inspect, "inspect", "", "Print the shading details of pixel \"x,y\" as JSON instead of rendering")
	fs.BoolVar(&opts.list, "list", false, "List the available scenes and exit")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, opts, err
	}
	if *help {
		printHelp(fs, stdout)
		return nil, opts, flag.ErrHelp
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, opts, err
	}

	// Flags given on the command line override the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Render.Scene = *sceneName
		case "model":
			cfg.Render.Model = *model
		case "mode":
			cfg.Render.Mode = *mode
		case "width":
			cfg.Render.Width = *width
		case "workers":
			cfg.Render.Workers = *workers
		case "tile-size":
			cfg.Render.TileSize = *tileSize
		case "output":
			cfg.Render.OutputDir = *outputDir
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-file":
			cfg.Logging.LogFile = *logFile
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, opts, err
	}
	return cfg, opts, nil
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w, "  mesh           A PLY or glTF model given by -model")
	fmt.Fprintln(w, "  <file>.yaml    A scene file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to <output>/<scene>/render_<timestamp>.png")
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}
	log := logger.Log

	if opts.list {
		return listScenes(cfg.Server.ScenesDir, stdout)
	}

	var overrides renderer.CameraConfig
	overrides.Width = cfg.Render.Width
	selected, err := scene.Create(cfg.Render.Scene, cfg.Render.Model, log, overrides)
	if err != nil {
		return err
	}

	traceOptions, err := cfg.RenderOptions()
	if err != nil {
		return err
	}
	traceOptions.LightPosition = selected.LightPosition

	camera, err := selected.Camera()
	if err != nil {
		return err
	}
	rt := renderer.NewRaytracer(selected.Graph, camera, traceOptions)

	log.Info("Scene ready",
		zap.String("scene", selected.Name),
		zap.Int("primitives", selected.PrimitiveCount()),
		zap.Int("width", camera.Width()),
		zap.Int("height", camera.Height()),
		zap.Stringer("mode", traceOptions.Mode))

	if opts.inspect != "" {
		return inspectPixel(rt, opts.inspect, stdout)
	}

	img, _, err := renderer.NewRenderer(rt, cfg.RendererConfig(), log).Render(ctx)
	if err != nil {
		return err
	}

	filename, err := savePNG(img, filepath.Join(cfg.Render.OutputDir, outputName(cfg.Render.Scene)), time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", filename)
	return nil
}

func listScenes(dir string, w io.Writer) error {
	response, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	for _, group := range response.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-24s %s\n", info.ID, info.Description)
		}
	}
	return nil
}

// parsePixel parses "x,y"
func parsePixel(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("pixel %q is not of the form x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, fmt.Errorf("pixel x: %w", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, fmt.Errorf("pixel y: %w", err)
	}
	return x, y, nil
}

func inspectPixel(rt *renderer.Raytracer, pixel string, w io.Writer) error {
	x, y, err := parsePixel(pixel)
	if err != nil {
		return err
	}
	inspection, err := rt.Inspect(x, y)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(inspection)
}

// outputName turns a scene name or scene file path into a directory name
func outputName(sceneName string) string {
	base := filepath.Base(sceneName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// savePNG writes img to dir/render_<timestamp>.png and returns the file name
func savePNG(img image.Image, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("saving PNG: %w", err)
	}
	return filename, file.Close()
}
