package lights

import (
	"github.com/rmdl/go-diorama-raytracer/pkg/core"
)

// Light is a point light source
type Light struct {
	Position  core.Vec3
	Color     core.Vec3
	Intensity float64 // Scalar brightness (>= 0)
}

// NewLight creates a new point light
func NewLight(position, color core.Vec3, intensity float64) Light {
	return Light{Position: position, Color: color, Intensity: intensity}
}
