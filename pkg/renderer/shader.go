package renderer

import (
	"math"
	"sync/atomic"

	"github.com/rmdl/go-diorama-raytracer/pkg/core"
	"github.com/rmdl/go-diorama-raytracer/pkg/geometry"
	"github.com/rmdl/go-diorama-raytracer/pkg/lights"
	"github.com/rmdl/go-diorama-raytracer/pkg/material"
)

// MaxDepth bounds the reflection/refraction recursion. Rays at this
// depth return the environment color without tracing.
const MaxDepth = 3

// bias is the offset applied along the surface normal to secondary ray
// origins to prevent immediate self-intersection.
const bias = 1e-3

// Emissive falloff constants for 1 / (1 + k1*d + k2*d²)
const (
	emissiveLinearFalloff    = 0.09
	emissiveQuadraticFalloff = 0.032
)

// warmTone is mixed into emissive colors before attenuation so glowing
// blocks read warm at a distance.
var warmTone = core.NewVec3(1.0, 0.85, 0.6)

// Scene interface to avoid a circular import with the scene package
type Scene interface {
	Shapes() []geometry.Shape
	Lights() []lights.Light
	AmbientColor() core.Vec3
	AmbientIntensity() float64
	SkyColor() core.Vec3
	SkyTexture() *material.Texture
}

// Shader evaluates light transport for single rays. It reads only
// immutable scene state, so one Shader may be shared by every worker
// rendering a frame.
type Shader struct {
	scene Scene
	rays  atomic.Int64
}

// NewShader creates a shader over a scene
func NewShader(scene Scene) *Shader {
	return &Shader{scene: scene}
}

// RayCount returns the number of rays cast since the last ResetStats
func (s *Shader) RayCount() int64 {
	return s.rays.Load()
}

// ResetStats clears the ray counter
func (s *Shader) ResetStats() {
	s.rays.Store(0)
}

// CastRay returns the color seen along a ray. Depth counts recursive
// calls; at MaxDepth the environment color is returned directly, so
// the recursion always terminates.
func (s *Shader) CastRay(ray core.Ray, depth int) core.Vec3 {
	if depth >= MaxDepth {
		return s.environment(ray.Direction)
	}
	s.rays.Add(1)

	hit := s.nearestHit(ray)
	if hit == nil {
		return s.environment(ray.Direction)
	}

	mat := hit.Material
	viewDir := ray.Origin.Subtract(hit.Point).Normalize()
	diffuseColor := mat.DiffuseColor(hit.U, hit.V)

	// Direct lighting starts from the ambient term
	total := s.scene.AmbientColor().Multiply(s.scene.AmbientIntensity())

	for _, light := range s.scene.Lights() {
		lightDir := light.Position.Subtract(hit.Point).Normalize()
		reflectDir := reflectVector(lightDir.Negate(), hit.Normal).Normalize()

		shadow := s.castShadow(hit, light)
		lightIntensity := light.Intensity * (1 - shadow)

		diffuseIntensity := math.Min(math.Max(hit.Normal.Dot(lightDir), 0), 1)
		total = total.Add(diffuseColor.Multiply(mat.Albedo.Diffuse * diffuseIntensity * lightIntensity))

		specularIntensity := math.Pow(math.Max(viewDir.Dot(reflectDir), 0), mat.Specular)
		total = total.Add(light.Color.Multiply(mat.Albedo.Specular * specularIntensity * lightIntensity))
	}

	if mat.IsEmissive() {
		distance := hit.Point.Subtract(ray.Origin).Length()
		attenuation := 1 / (1 + emissiveLinearFalloff*distance + emissiveQuadraticFalloff*distance*distance)
		glow := mat.Emissive.Lerp(warmTone, 0.3)
		total = total.Add(glow.Multiply(attenuation))
	}

	fresnel := schlick(ray.Direction, hit.Normal, mat.RefractiveIndex)

	var reflectColor core.Vec3
	if mat.Albedo.Reflective > 0 {
		dir := reflectVector(ray.Direction, hit.Normal).Normalize()
		origin := offsetPoint(hit.Point, hit.Normal, dir)
		reflectColor = s.CastRay(core.NewRay(origin, dir), depth+1)
	}

	var refractColor core.Vec3
	if mat.Albedo.Transmissive > 0 {
		dir := refractVector(ray.Direction, hit.Normal, mat.RefractiveIndex).Normalize()
		origin := offsetPoint(hit.Point, hit.Normal, dir)
		refractColor = s.CastRay(core.NewRay(origin, dir), depth+1)
	}

	// Fresnel-weighted combination. The weights are normalized so the
	// three contributions stay coherent even when albedo components do
	// not sum to 1; scenes are tuned against this exact behavior.
	kr := fresnel * mat.Albedo.Reflective
	kt := (1 - fresnel) * mat.Albedo.Transmissive
	kd := math.Max(0, 1-mat.Albedo.Reflective-mat.Albedo.Transmissive)

	weight := kr + kt + kd
	if weight <= 0 {
		return total.Clamp(0, 1)
	}

	color := total.Multiply(kd / weight).
		Add(reflectColor.Multiply(kr / weight)).
		Add(refractColor.Multiply(kt / weight))

	return color.Clamp(0, 1)
}

// nearestHit linearly scans all primitives for the closest positive hit
func (s *Shader) nearestHit(ray core.Ray) *material.Intersection {
	var nearest *material.Intersection
	zbuffer := math.Inf(1)

	for _, shape := range s.scene.Shapes() {
		if hit, isHit := shape.Intersect(ray); isHit && hit.T < zbuffer {
			zbuffer = hit.T
			nearest = hit
		}
	}

	return nearest
}

// castShadow returns the shadow intensity in [0, 0.5] for a hit point
// and a light: 0 when nothing blocks the light, and a soft
// distance-weighted partial occlusion from the first blocker otherwise.
func (s *Shader) castShadow(hit *material.Intersection, light lights.Light) float64 {
	toLight := light.Position.Subtract(hit.Point)
	lightDistance := toLight.Length()
	lightDir := toLight.Normalize()

	shadowRay := core.NewRay(hit.Point.Add(hit.Normal.Multiply(bias)), lightDir)

	for _, shape := range s.scene.Shapes() {
		blocker, isHit := shape.Intersect(shadowRay)
		if !isHit || blocker.T >= lightDistance {
			continue
		}
		ratio := blocker.T / lightDistance
		// Near-light blockers push the curve negative; the result is
		// clamped to [0, 0.5]
		intensity := 0.5 - math.Min(ratio*ratio, 1)
		return math.Min(math.Max(intensity, 0), 0.5)
	}

	return 0
}

// environment returns the color for rays that hit nothing: a sample
// from the equirectangular skybox when one is set, else the flat sky
// constant.
func (s *Shader) environment(direction core.Vec3) core.Vec3 {
	tex := s.scene.SkyTexture()
	if tex == nil {
		return s.scene.SkyColor()
	}

	dir := direction.Normalize()
	u := 0.5 + math.Atan2(dir.X, dir.Z)/(2*math.Pi)
	v := 0.5 - math.Asin(math.Max(-1, math.Min(1, dir.Y)))/math.Pi
	return tex.Sample(u, v)
}

// reflectVector mirrors an incident direction about a normal
func reflectVector(incident, normal core.Vec3) core.Vec3 {
	return incident.Subtract(normal.Multiply(2 * incident.Dot(normal)))
}

// refractVector bends an incident direction through a surface with the
// given refractive index, flipping the normal and inverting the index
// ratio when exiting. Total internal reflection substitutes a mirror
// reflection.
func refractVector(incident, normal core.Vec3, index float64) core.Vec3 {
	cosi := math.Max(-1, math.Min(1, incident.Dot(normal)))

	n := normal
	eta := 1 / index
	if cosi > 0 {
		// Exiting the material
		n = normal.Negate()
		eta = index
	} else {
		cosi = -cosi
	}

	k := 1 - eta*eta*(1-cosi*cosi)
	if k <= 0 {
		return reflectVector(incident, n)
	}

	return incident.Multiply(eta).Add(n.Multiply(eta*cosi - math.Sqrt(k)))
}

// schlick approximates Fresnel reflectance; the result is always in [0, 1]
func schlick(incident, normal core.Vec3, index float64) float64 {
	cosTheta := math.Min(math.Max(incident.Dot(normal.Negate()), 0), 1)
	r0 := (1 - index) / (1 + index)
	r0 *= r0
	reflectance := r0 + (1-r0)*math.Pow(1-cosTheta, 5)
	return math.Min(math.Max(reflectance, 0), 1)
}

// offsetPoint displaces a secondary ray origin off the surface, on the
// side of the surface the new ray travels toward
func offsetPoint(point, normal, direction core.Vec3) core.Vec3 {
	if direction.Dot(normal) < 0 {
		return point.Subtract(normal.Multiply(bias))
	}
	return point.Add(normal.Multiply(bias))
}
