package renderer

import (
	"github.com/rmdl/go-diorama-raytracer/pkg/core"
)

// Framebuffer is the render target: a flat, row-major array of packed
// 24-bit RGB values (0xRRGGBB). Workers write disjoint row ranges, so
// a frame needs no synchronization beyond the render join.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewFramebuffer creates a framebuffer with the given dimensions
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// Clear fills the framebuffer with a solid packed color
func (fb *Framebuffer) Clear(packed uint32) {
	for i := range fb.Pixels {
		fb.Pixels[i] = packed
	}
}

// SetPixel writes a packed color at (x, y); out-of-bounds writes are dropped
func (fb *Framebuffer) SetPixel(x, y int, packed uint32) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = packed
}

// At returns the packed color at (x, y), or 0 when out of bounds
func (fb *Framebuffer) At(x, y int) uint32 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0
	}
	return fb.Pixels[y*fb.Width+x]
}

// PackColor converts a [0,1] color vector to packed 24-bit RGB,
// clamping each channel
func PackColor(color core.Vec3) uint32 {
	c := color.Clamp(0, 1)
	r := uint32(255 * c.X)
	g := uint32(255 * c.Y)
	b := uint32(255 * c.Z)
	return r<<16 | g<<8 | b
}

// UnpackColor splits a packed 24-bit RGB value into its channels
func UnpackColor(packed uint32) (r, g, b uint8) {
	return uint8(packed >> 16), uint8(packed >> 8), uint8(packed)
}
