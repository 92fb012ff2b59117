package scene

import (
	"testing"

	"github.com/rmdl/go-diorama-raytracer/pkg/core"
	"github.com/rmdl/go-diorama-raytracer/pkg/material"
)

func TestScene_Defaults(t *testing.T) {
	s := NewScene()

	expected := core.NewVec3(69.0/255.0, 142.0/255.0, 228.0/255.0)
	if s.SkyColor().Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected default sky %v, got %v", expected, s.SkyColor())
	}
	if s.SkyTexture() != nil {
		t.Error("Expected no sky texture by default")
	}
	if s.AmbientIntensity() != 0 {
		t.Errorf("Expected zero ambient intensity, got %f", s.AmbientIntensity())
	}
	if s.PrimitiveCount() != 0 || len(s.Lights()) != 0 {
		t.Error("Expected empty scene")
	}
}

func TestScene_AddPrimitives(t *testing.T) {
	s := NewScene()
	mat := material.NewMaterial(core.NewVec3(1, 0, 0), 0, material.NewAlbedo(1, 0, 0, 0), 1.0)

	s.AddCube(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), mat)
	s.AddSphere(core.NewVec3(0, 3, 0), 1, mat)

	if s.PrimitiveCount() != 2 {
		t.Errorf("Expected 2 primitives, got %d", s.PrimitiveCount())
	}
	if len(s.Lights()) != 0 {
		t.Error("Non-emissive primitives must not synthesize lights")
	}
}

func TestScene_EmissivePrimitiveSynthesizesLight(t *testing.T) {
	s := NewScene()
	glow := material.NewEmissiveMaterial(
		core.NewVec3(1, 1, 1),
		core.NewVec3(1.0, 0.9, 0.7),
		0, material.NewAlbedo(1, 0, 0, 0))

	s.AddCube(core.NewVec3(2, 2, 2), core.NewVec3(4, 4, 4), glow)

	if len(s.Lights()) != 1 {
		t.Fatalf("Expected 1 synthesized light, got %d", len(s.Lights()))
	}
	light := s.Lights()[0]

	// Light sits at the cube center, colored by the emission
	if light.Position.Subtract(core.NewVec3(3, 3, 3)).Length() > 1e-9 {
		t.Errorf("Expected light at cube center, got %v", light.Position)
	}
	if light.Color.Subtract(glow.Emissive).Length() > 1e-9 {
		t.Errorf("Expected light color %v, got %v", glow.Emissive, light.Color)
	}
	if light.Intensity <= 0 || light.Intensity > 1 {
		t.Errorf("Expected intensity in (0, 1], got %f", light.Intensity)
	}
}

func TestNewDefaultScene(t *testing.T) {
	s, camera := NewDefaultScene()

	if s.PrimitiveCount() == 0 {
		t.Fatal("Default scene has no primitives")
	}
	if len(s.Lights()) < 2 {
		t.Errorf("Expected key and fill lights, got %d", len(s.Lights()))
	}
	if camera == nil {
		t.Fatal("Default scene has no camera")
	}

	// The lantern block must have synthesized a third light
	if len(s.Lights()) < 3 {
		t.Errorf("Expected the lantern to add a light, got %d lights", len(s.Lights()))
	}
}
