package scene

import (
	"github.com/rmdl/go-diorama-raytracer/pkg/core"
	"github.com/rmdl/go-diorama-raytracer/pkg/material"
	"github.com/rmdl/go-diorama-raytracer/pkg/renderer"
)

// NewDefaultScene builds the built-in diorama: a grass platform with a
// stone pillar, a water pool, a glass block, a glowing lantern block
// and a mirror sphere. All materials are flat colors, so the scene
// renders without any asset files on disk.
func NewDefaultScene() (*Scene, *renderer.Camera) {
	s := NewScene()
	s.SetAmbient(core.NewVec3(1, 1, 1), 0.15)

	grass := material.NewMaterial(core.NewVec3(0.30, 0.62, 0.25), 8, material.NewAlbedo(0.9, 0.05, 0, 0), 1.0)
	dirt := material.NewMaterial(core.NewVec3(0.45, 0.32, 0.20), 4, material.NewAlbedo(0.9, 0.02, 0, 0), 1.0)
	stone := material.NewMaterial(core.NewVec3(0.55, 0.55, 0.58), 16, material.NewAlbedo(0.8, 0.15, 0.05, 0), 1.0)
	water := material.NewMaterial(core.NewVec3(0.15, 0.35, 0.60), 64, material.NewAlbedo(0.2, 0.3, 0.1, 0.5), 1.33)
	glass := material.NewMaterial(core.NewVec3(0.95, 0.95, 0.95), 96, material.NewAlbedo(0.0, 0.5, 0.1, 0.8), 1.5)
	mirror := material.NewMaterial(core.NewVec3(0.9, 0.9, 0.9), 128, material.NewAlbedo(0.05, 0.6, 0.9, 0), 1.0)
	lantern := material.NewEmissiveMaterial(
		core.NewVec3(0.95, 0.85, 0.55),
		core.NewVec3(1.0, 0.85, 0.55),
		16, material.NewAlbedo(0.9, 0.05, 0, 0))

	// Grass platform, 8x8 unit blocks, with a dirt layer underneath
	for x := -4; x < 4; x++ {
		for z := -4; z < 4; z++ {
			min := core.NewVec3(float64(x), -1, float64(z))
			s.AddCube(min, min.Add(core.NewVec3(1, 1, 1)), grass)
			below := core.NewVec3(float64(x), -2, float64(z))
			s.AddCube(below, below.Add(core.NewVec3(1, 1, 1)), dirt)
		}
	}

	// Water pool sunk into one corner of the platform
	s.AddCube(core.NewVec3(1, -0.85, 1), core.NewVec3(3, 0, 3), water)

	// Stone pillar
	for y := 0; y < 3; y++ {
		min := core.NewVec3(-3, float64(y), -3)
		s.AddCube(min, min.Add(core.NewVec3(1, 1, 1)), stone)
	}

	// Glass block next to the pool, lantern on top of the pillar
	s.AddCube(core.NewVec3(0, 0, 2), core.NewVec3(1, 1, 3), glass)
	s.AddCube(core.NewVec3(-3, 3, -3), core.NewVec3(-2, 4, -2), lantern)

	// Mirror sphere floating above the platform center
	s.AddSphere(core.NewVec3(0.5, 1.6, -0.5), 0.8, mirror)

	// Key light high to the side, dim fill from the opposite direction
	s.AddLight(core.NewVec3(8, 12, 6), core.NewVec3(1, 1, 0.95), 1.0)
	s.AddLight(core.NewVec3(-6, 5, -8), core.NewVec3(0.7, 0.75, 0.9), 0.25)

	camera := renderer.NewCamera(
		core.NewVec3(7, 5, 9),
		core.NewVec3(0, 0.5, 0),
		core.NewVec3(0, 1, 0),
	)
	return s, camera
}
