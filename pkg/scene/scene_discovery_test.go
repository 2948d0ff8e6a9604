package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, titleCase(tc.input))
		})
	}
}

func writeScene(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		file     string
		content  string
		expected SceneInfo
	}{
		{
			file:    "complete.yaml",
			content: "name: Cornell Box\ndescription: Classic box\ngroup: Boxes\nshapes: []\n",
			expected: SceneInfo{
				Name:        "Cornell Box",
				Description: "Classic box",
				Group:       "Boxes",
			},
		},
		{
			file:    "partial.yaml",
			content: "name: Lens\n",
			expected: SceneInfo{
				Name:  "Lens",
				Group: "Scene Files",
			},
		},
		{
			file:    "no_metadata.yml",
			content: "shapes:\n  - type: sphere\n",
			expected: SceneInfo{
				Name:  "No Metadata",
				Group: "Scene Files",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			path := writeScene(t, dir, tc.file, tc.content)
			tc.expected.ID = path
			tc.expected.FilePath = path
			tc.expected.Type = TypeFile

			info, err := ParseSceneMetadata(path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, info)
		})
	}
}

func TestParseSceneMetadata_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ParseSceneMetadata(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ParseSceneMetadata(writeScene(t, dir, "broken.yaml", "name: [unterminated\n"))
	assert.Error(t, err)
}

func TestListFileScenes(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "b.yaml", "name: Beta\n")
	writeScene(t, dir, "a.yml", "name: Alpha\n")
	writeScene(t, dir, "notes.txt", "not a scene")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	scenes, err := ListFileScenes(dir)
	require.NoError(t, err)
	require.Len(t, scenes, 2)
	assert.Equal(t, "Alpha", scenes[0].Name)
	assert.Equal(t, "Beta", scenes[1].Name)
}

func TestListFileScenes_MissingDirectory(t *testing.T) {
	scenes, err := ListFileScenes(filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)
	assert.NotNil(t, scenes)
	assert.Empty(t, scenes)
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "lens.yaml", "name: Lens\ngroup: Optics\n")
	writeScene(t, dir, "room.yaml", "name: Room\n")

	response, err := ListAllScenes(dir)
	require.NoError(t, err)

	names := make([]string, len(response.Groups))
	for i, group := range response.Groups {
		names[i] = group.Name
	}
	assert.Equal(t, []string{builtinGroup, "Optics", "Scene Files"}, names)

	builtin := response.Groups[0].Scenes
	assert.Len(t, builtin, len(BuiltinScenes()))
	for _, info := range builtin {
		assert.Equal(t, TypeBuiltin, info.Type)
		_, err := Create(info.ID, "", nil)
		assert.NoError(t, err, info.ID)
	}

	assert.Equal(t, "Lens", response.Groups[1].Scenes[0].Name)
	assert.Equal(t, TypeFile, response.Groups[2].Scenes[0].Type)
}
