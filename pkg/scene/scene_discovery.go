package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scene types reported by discovery
const (
	TypeBuiltin = "builtin"
	TypeFile    = "file"
)

const builtinGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Create
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // TypeBuiltin or TypeFile
	FilePath    string `json:"filePath"`    // Scene file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// BuiltinScenes lists the scenes Create builds without a file
func BuiltinScenes() []SceneInfo {
	builtin := []SceneInfo{
		{ID: "default", Name: "Default Scene", Description: "Every primitive, a nested group and a glass lens"},
		{ID: "nested-glass", Name: "Nested Glass", Description: "Overlapping glass spheres of increasing refractive index"},
		{ID: "cornell-box", Name: "Cornell Box", Description: "Cornell box with a block, a mirror ball and a glass ball"},
		{ID: "sphere-grid", Name: "Sphere Grid", Description: "10x10 grid of colored spheres in a bounding hierarchy"},
		{ID: "triangle-mesh", Name: "Triangle Meshes", Description: "A box, a pyramid and a glass icosahedron built from triangles"},
		{ID: "cylinders", Name: "Cylinders", Description: "Capped and open cylinders in several orientations"},
		{ID: "cones", Name: "Cones", Description: "Pointed cones, frustums and a glass cone"},
	}
	for i := range builtin {
		builtin[i].Group = builtinGroup
		builtin[i].Type = TypeBuiltin
	}
	return builtin
}

// sceneMetadata is the part of a scene file discovery reads
type sceneMetadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Group       string `yaml:"group"`
}

// ListFileScenes returns the .yaml and .yml scene files in dir, sorted by name.
// A missing directory yields an empty list.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []SceneInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		info, err := ParseSceneMetadata(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneMetadata reads the name, description and group of a scene file,
// falling back to the file name and a default group
func ParseSceneMetadata(path string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:       path,
		Name:     titleCase(base),
		Group:    "Scene Files",
		Type:     TypeFile,
		FilePath: path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return info, fmt.Errorf("failed to read scene metadata: %w", err)
	}

	var meta sceneMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return info, fmt.Errorf("%s: %w", path, err)
	}
	if name := strings.TrimSpace(meta.Name); name != "" {
		info.Name = name
	}
	if group := strings.TrimSpace(meta.Group); group != "" {
		info.Group = group
	}
	info.Description = strings.TrimSpace(meta.Description)
	return info, nil
}

// ListAllScenes returns the built-in scenes and the scene files in dir,
// grouped by category with the built-in group first
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return response, err
	}

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range append(BuiltinScenes(), fileScenes...) {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	var groupNames []string
	for name := range groupMap {
		if name != builtinGroup {
			groupNames = append(groupNames, name)
		}
	}
	sort.Strings(groupNames)
	groupNames = append([]string{builtinGroup}, groupNames...)

	for _, name := range groupNames {
		if scenes, ok := groupMap[name]; ok {
			response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: scenes})
		}
	}
	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
