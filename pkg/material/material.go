package material

import (
	"github.com/rmdl/go-diorama-raytracer/pkg/core"
)

// Albedo holds the four weights controlling how much of a surface's
// appearance comes from each lighting contribution
type Albedo struct {
	Diffuse      float64
	Specular     float64
	Reflective   float64
	Transmissive float64
}

// NewAlbedo creates an albedo weight vector
func NewAlbedo(diffuse, specular, reflective, transmissive float64) Albedo {
	return Albedo{
		Diffuse:      diffuse,
		Specular:     specular,
		Reflective:   reflective,
		Transmissive: transmissive,
	}
}

// Material describes the shading parameters of a surface.
// Materials are shared by pointer across every primitive of the same
// block type; they are immutable once the scene is built.
type Material struct {
	Diffuse         core.Vec3 // Base color, used when Texture is nil
	Texture         *Texture  // Optional texture overriding the base color
	Specular        float64   // Specular exponent (>= 0)
	Albedo          Albedo    // Contribution weights
	RefractiveIndex float64   // Index of refraction (> 0, 1.0 = vacuum)
	Emissive        core.Vec3 // Emitted color, zero means non-emissive
}

// NewMaterial creates a constant-color material
func NewMaterial(diffuse core.Vec3, specular float64, albedo Albedo, refractiveIndex float64) *Material {
	return &Material{
		Diffuse:         diffuse,
		Specular:        specular,
		Albedo:          albedo,
		RefractiveIndex: refractiveIndex,
	}
}

// NewTexturedMaterial creates a material whose diffuse color comes from a texture
func NewTexturedMaterial(texture *Texture, specular float64, albedo Albedo, refractiveIndex float64) *Material {
	return &Material{
		Diffuse:         core.NewVec3(1, 1, 1),
		Texture:         texture,
		Specular:        specular,
		Albedo:          albedo,
		RefractiveIndex: refractiveIndex,
	}
}

// NewEmissiveMaterial creates a light-emitting material
func NewEmissiveMaterial(diffuse, emissive core.Vec3, specular float64, albedo Albedo) *Material {
	return &Material{
		Diffuse:         diffuse,
		Specular:        specular,
		Albedo:          albedo,
		RefractiveIndex: 1.0,
		Emissive:        emissive,
	}
}

// DiffuseColor returns the base color at surface coordinates (u, v).
// Textured materials sample the texture; others return the constant color.
func (m *Material) DiffuseColor(u, v float64) core.Vec3 {
	if m.Texture != nil {
		return m.Texture.Sample(u, v)
	}
	return m.Diffuse
}

// IsEmissive reports whether the material emits light
func (m *Material) IsEmissive() bool {
	return m.Emissive.X > 0 || m.Emissive.Y > 0 || m.Emissive.Z > 0
}

// Intersection is the result of a ray-primitive query: the hit point,
// the unit surface normal, the distance along the ray (> 0 when valid),
// the surface (u, v) and the hit material. A nil Intersection is the
// "no hit" sentinel; records are never mutated after creation.
type Intersection struct {
	Point    core.Vec3
	Normal   core.Vec3
	T        float64
	U, V     float64
	Material *Material
}
