package scene

import (
	"github.com/rmdl/go-diorama-raytracer/pkg/core"
	"github.com/rmdl/go-diorama-raytracer/pkg/geometry"
	"github.com/rmdl/go-diorama-raytracer/pkg/lights"
	"github.com/rmdl/go-diorama-raytracer/pkg/material"
)

// defaultSkyColor is the flat environment color used when no skybox
// texture is configured
var defaultSkyColor = core.NewVec3(69.0/255.0, 142.0/255.0, 228.0/255.0)

// Scene holds the world a renderer traces: primitives, point lights,
// ambient term and environment. It is immutable once handed to a
// renderer; all mutation happens through the builder methods before
// the first frame.
type Scene struct {
	shapes           []geometry.Shape
	lightList        []lights.Light
	ambientColor     core.Vec3
	ambientIntensity float64
	skyColor         core.Vec3
	skyTexture       *material.Texture
}

// NewScene creates an empty scene with the default sky and a white,
// zero-intensity ambient term
func NewScene() *Scene {
	return &Scene{
		shapes:       make([]geometry.Shape, 0),
		lightList:    make([]lights.Light, 0),
		ambientColor: core.NewVec3(1, 1, 1),
		skyColor:     defaultSkyColor,
	}
}

// Shapes returns the primitives in the scene
func (s *Scene) Shapes() []geometry.Shape { return s.shapes }

// Lights returns the point lights in the scene
func (s *Scene) Lights() []lights.Light { return s.lightList }

// AmbientColor returns the ambient light color
func (s *Scene) AmbientColor() core.Vec3 { return s.ambientColor }

// AmbientIntensity returns the ambient light intensity
func (s *Scene) AmbientIntensity() float64 { return s.ambientIntensity }

// SkyColor returns the flat environment color
func (s *Scene) SkyColor() core.Vec3 { return s.skyColor }

// SkyTexture returns the equirectangular skybox texture, or nil when
// the scene uses the flat sky color
func (s *Scene) SkyTexture() *material.Texture { return s.skyTexture }

// SetAmbient configures the ambient light term
func (s *Scene) SetAmbient(color core.Vec3, intensity float64) {
	s.ambientColor = color
	s.ambientIntensity = intensity
}

// SetSkyColor sets the flat environment color
func (s *Scene) SetSkyColor(color core.Vec3) {
	s.skyColor = color
}

// SetSkyTexture installs an equirectangular skybox texture
func (s *Scene) SetSkyTexture(texture *material.Texture) {
	s.skyTexture = texture
}

// AddLight adds a point light to the scene
func (s *Scene) AddLight(position, color core.Vec3, intensity float64) {
	s.lightList = append(s.lightList, lights.NewLight(position, color, intensity))
}

// AddCube adds an axis-aligned cube. Emissive materials also
// synthesize a point light at the cube's center so glowing blocks
// illuminate their surroundings.
func (s *Scene) AddCube(min, max core.Vec3, mat *material.Material) *geometry.Cube {
	cube := geometry.NewCube(min, max, mat)
	s.shapes = append(s.shapes, cube)
	if mat.IsEmissive() {
		center := min.Add(max).Multiply(0.5)
		s.addEmissiveLight(center, mat.Emissive)
	}
	return cube
}

// AddSphere adds a sphere. Emissive materials also synthesize a point
// light at the sphere's center.
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat *material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.shapes = append(s.shapes, sphere)
	if mat.IsEmissive() {
		s.addEmissiveLight(center, mat.Emissive)
	}
	return sphere
}

// addEmissiveLight creates the point light backing an emissive
// primitive. Intensity follows the emission's luminance so dim glows
// cast dim light.
func (s *Scene) addEmissiveLight(center, emissive core.Vec3) {
	intensity := emissive.Luminance()
	if intensity > 1 {
		intensity = 1
	}
	s.lightList = append(s.lightList, lights.NewLight(center, emissive, intensity))
}

// PrimitiveCount returns the number of primitives in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.shapes)
}
