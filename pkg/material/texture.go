package material

import (
	"github.com/rmdl/go-diorama-raytracer/pkg/core"
)

// Texture owns a decoded width×height color buffer. It is decoded once
// at scene-build time and shared by reference across every material
// that uses the same source image; it is immutable thereafter.
type Texture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 = top
}

// NewTexture creates a texture from a decoded pixel buffer
func NewTexture(width, height int, pixels []core.Vec3) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Sample returns the nearest pixel color for normalized (u, v).
// Out-of-range coordinates are clamped, never an error; v is inverted
// because texture row 0 is the top of the image.
func (t *Texture) Sample(u, v float64) core.Vec3 {
	u = clampFloat(u, 0, 1)
	v = clampFloat(v, 0, 1)

	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))

	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	return t.Pixels[y*t.Width+x]
}

func clampFloat(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
