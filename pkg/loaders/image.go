package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/rmdl/go-diorama-raytracer/pkg/core"
	"github.com/rmdl/go-diorama-raytracer/pkg/material"
)

// LoadTexture loads an image file (PNG, JPEG, WebP or BMP) into a
// sampleable texture. Images larger than maxDimension on either axis
// are downscaled to fit, preserving aspect ratio; maxDimension <= 0
// disables scaling.
func LoadTexture(filename string, maxDimension int) (*material.Texture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode auto-detects the format from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	img = capSize(img, maxDimension)

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return material.NewTexture(width, height, pixels), nil
}

// capSize downscales an image so neither dimension exceeds the limit
func capSize(img image.Image, maxDimension int) image.Image {
	if maxDimension <= 0 {
		return img
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxDimension && bounds.Dy() <= maxDimension {
		return img
	}
	if bounds.Dx() >= bounds.Dy() {
		return resize.Resize(uint(maxDimension), 0, img, resize.Bilinear)
	}
	return resize.Resize(0, uint(maxDimension), img, resize.Bilinear)
}
