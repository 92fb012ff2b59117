package renderer

import (
	"testing"

	"github.com/rmdl/go-diorama-raytracer/pkg/core"
)

func TestPackColor(t *testing.T) {
	tests := []struct {
		name     string
		color    core.Vec3
		expected uint32
	}{
		{"black", core.NewVec3(0, 0, 0), 0x000000},
		{"white", core.NewVec3(1, 1, 1), 0xFFFFFF},
		{"red", core.NewVec3(1, 0, 0), 0xFF0000},
		{"green", core.NewVec3(0, 1, 0), 0x00FF00},
		{"blue", core.NewVec3(0, 0, 1), 0x0000FF},
		{"mid gray", core.NewVec3(0.5, 0.5, 0.5), 0x7F7F7F},
		{"clamped above", core.NewVec3(2, 3, 4), 0xFFFFFF},
		{"clamped below", core.NewVec3(-1, -0.5, 0), 0x000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if packed := PackColor(tt.color); packed != tt.expected {
				t.Errorf("Expected 0x%06X, got 0x%06X", tt.expected, packed)
			}
		})
	}
}

func TestUnpackColor(t *testing.T) {
	r, g, b := UnpackColor(0x4080C0)
	if r != 0x40 || g != 0x80 || b != 0xC0 {
		t.Errorf("Expected (0x40, 0x80, 0xC0), got (0x%02X, 0x%02X, 0x%02X)", r, g, b)
	}
}

func TestFramebuffer_SetPixelAndAt(t *testing.T) {
	fb := NewFramebuffer(4, 3)

	fb.SetPixel(2, 1, 0xABCDEF)
	if got := fb.At(2, 1); got != 0xABCDEF {
		t.Errorf("Expected 0xABCDEF, got 0x%06X", got)
	}

	// Row-major layout
	if fb.Pixels[1*4+2] != 0xABCDEF {
		t.Error("Pixel not stored at row-major index")
	}
}

func TestFramebuffer_IgnoresOutOfBounds(t *testing.T) {
	fb := NewFramebuffer(2, 2)

	fb.SetPixel(-1, 0, 0xFFFFFF)
	fb.SetPixel(0, -1, 0xFFFFFF)
	fb.SetPixel(2, 0, 0xFFFFFF)
	fb.SetPixel(0, 2, 0xFFFFFF)

	for i, p := range fb.Pixels {
		if p != 0 {
			t.Errorf("Pixel %d modified by out-of-bounds write", i)
		}
	}

	if fb.At(5, 5) != 0 {
		t.Error("Out-of-bounds read should return zero")
	}
}

func TestFramebuffer_Clear(t *testing.T) {
	fb := NewFramebuffer(3, 3)
	for i := range fb.Pixels {
		fb.Pixels[i] = 0x123456
	}

	fb.Clear(0x69A0E4)

	for i, p := range fb.Pixels {
		if p != 0x69A0E4 {
			t.Errorf("Pixel %d not cleared: 0x%06X", i, p)
		}
	}
}
