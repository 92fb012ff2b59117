package scene

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmdl/go-diorama-raytracer/pkg/core"
)

// nopLogger silences build logging in tests
type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}

const testSceneTOML = `
[camera]
eye = [0.0, 4.0, 10.0]
center = [0.0, 0.0, 0.0]
fov_degrees = 60.0

[sky]
color = [0.1, 0.2, 0.3]

[ambient]
color = [1.0, 1.0, 1.0]
intensity = 0.2

[[material]]
name = "grass"
diffuse = [0.3, 0.6, 0.25]
albedo = [0.9, 0.05, 0.0, 0.0]

[[material]]
name = "mirror"
diffuse = [0.9, 0.9, 0.9]
specular = 128.0
albedo = [0.05, 0.6, 0.9, 0.0]

[[block]]
material = "grass"
min = [-1.0, 0.0, -1.0]
max = [1.0, 1.0, 1.0]

[[fill]]
material = "grass"
from = [0, 0, 0]
to = [1, 0, 1]

[[sphere]]
material = "mirror"
center = [0.0, 2.0, 0.0]
radius = 0.5

[[light]]
position = [5.0, 10.0, 5.0]
color = [1.0, 1.0, 1.0]
intensity = 1.0
`

func writeSceneFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	return path
}

func TestLoadSceneFile(t *testing.T) {
	path := writeSceneFile(t, testSceneTOML)

	s, camera, fov, err := LoadSceneFile(path, nopLogger{})
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}

	// 1 block + 2x1x2 fill + 1 sphere
	if s.PrimitiveCount() != 6 {
		t.Errorf("Expected 6 primitives, got %d", s.PrimitiveCount())
	}
	if len(s.Lights()) != 1 {
		t.Errorf("Expected 1 light, got %d", len(s.Lights()))
	}
	if s.AmbientIntensity() != 0.2 {
		t.Errorf("Expected ambient intensity 0.2, got %f", s.AmbientIntensity())
	}
	if s.SkyColor().Subtract(core.NewVec3(0.1, 0.2, 0.3)).Length() > 1e-9 {
		t.Errorf("Unexpected sky color %v", s.SkyColor())
	}
	if camera.Eye.Subtract(core.NewVec3(0, 4, 10)).Length() > 1e-9 {
		t.Errorf("Unexpected camera eye %v", camera.Eye)
	}
	if math.Abs(fov-math.Pi/3) > 1e-9 {
		t.Errorf("Expected fov pi/3, got %f", fov)
	}
}

func TestLoadSceneFile_TexturedMaterial(t *testing.T) {
	dir := t.TempDir()

	// 1x1 red texture next to the scene file
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(filepath.Join(dir, "red.png"))
	if err != nil {
		t.Fatalf("Failed to create texture: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode texture: %v", err)
	}
	f.Close()

	content := `
[[material]]
name = "bricks"
texture = "red.png"
uv = "strip"

[[block]]
material = "bricks"
min = [0.0, 0.0, 0.0]
max = [1.0, 1.0, 1.0]
`
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	s, _, _, err := LoadSceneFile(path, nopLogger{})
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}
	if s.PrimitiveCount() != 1 {
		t.Fatalf("Expected 1 primitive, got %d", s.PrimitiveCount())
	}
}

func TestLoadSceneFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "invalid toml",
			content: "[[block\n",
		},
		{
			name: "unknown material",
			content: `
[[block]]
material = "nope"
min = [0.0, 0.0, 0.0]
max = [1.0, 1.0, 1.0]
`,
		},
		{
			name: "missing texture file",
			content: `
[[material]]
name = "tex"
texture = "missing.png"
`,
		},
		{
			name: "bad vector arity",
			content: `
[[light]]
position = [1.0, 2.0]
intensity = 1.0
`,
		},
		{
			name: "negative sphere radius",
			content: `
[[material]]
name = "m"
diffuse = [1.0, 1.0, 1.0]

[[sphere]]
material = "m"
center = [0.0, 0.0, 0.0]
radius = -1.0
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSceneFile(t, tt.content)
			if _, _, _, err := LoadSceneFile(path, nopLogger{}); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadSceneFile_MissingFile(t *testing.T) {
	if _, _, _, err := LoadSceneFile(filepath.Join(t.TempDir(), "nope.toml"), nopLogger{}); err == nil {
		t.Error("Expected an error for a missing scene file")
	}
}
