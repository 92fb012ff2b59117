package loaders

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

// writePNG encodes a test image fixture to disk
func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()
}

// TestLoadTexture creates a test PNG and verifies loading
func TestLoadTexture(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.png")

	// 2x2 image: white, red / green, blue
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	writePNG(t, testFile, img)

	texture, err := LoadTexture(testFile, 0)
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}

	if texture.Width != 2 || texture.Height != 2 {
		t.Errorf("Expected 2x2 texture, got %dx%d", texture.Width, texture.Height)
	}
	if len(texture.Pixels) != 4 {
		t.Errorf("Expected 4 pixels, got %d", len(texture.Pixels))
	}

	checkColor := func(name string, got, expected core.Vec3) {
		const tolerance = 0.01
		if math.Abs(got.X-expected.X) > tolerance ||
			math.Abs(got.Y-expected.Y) > tolerance ||
			math.Abs(got.Z-expected.Z) > tolerance {
			t.Errorf("%s: expected %v, got %v", name, expected, got)
		}
	}

	// Row-major order, row 0 first
	checkColor("top-left", texture.Pixels[0], core.NewVec3(1, 1, 1))
	checkColor("top-right", texture.Pixels[1], core.NewVec3(1, 0, 0))
	checkColor("bottom-left", texture.Pixels[2], core.NewVec3(0, 1, 0))
	checkColor("bottom-right", texture.Pixels[3], core.NewVec3(0, 0, 1))
}

// TestLoadTexture_Downscale verifies oversized images are capped
func TestLoadTexture_Downscale(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "big.png")

	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	writePNG(t, testFile, img)

	texture, err := LoadTexture(testFile, 16)
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}

	// The long axis is capped, the short axis keeps the aspect ratio
	if texture.Width != 16 || texture.Height != 8 {
		t.Errorf("Expected 16x8 texture, got %dx%d", texture.Width, texture.Height)
	}
}

func TestLoadTexture_MissingFile(t *testing.T) {
	_, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png"), 0)
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadTexture_CorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "corrupt.png")
	if err := os.WriteFile(testFile, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := LoadTexture(testFile, 0)
	if err == nil {
		t.Error("Expected error for corrupt file")
	}
}
