package geometry

import (
	"math"

	"github.com/rmdl/go-diorama-raytracer/pkg/core"
	"github.com/rmdl/go-diorama-raytracer/pkg/material"
)

// Sphere is a sphere with a center and a positive radius
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

// Intersect solves |O + tD - C|² = r² for the nearest positive root
func (s *Sphere) Intersect(ray core.Ray) (*material.Intersection, bool) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return nil, false
	}

	t := (-b - math.Sqrt(discriminant)) / (2 * a)
	if t <= 0 {
		return nil, false
	}

	point := ray.At(t)
	normal := point.Subtract(s.Center).Normalize()
	u, v := sphericalUV(normal)

	return &material.Intersection{
		Point:    point,
		Normal:   normal,
		T:        t,
		U:        u,
		V:        v,
		Material: s.Material,
	}, true
}

// sphericalUV maps a unit direction from the sphere center to
// equirectangular texture coordinates
func sphericalUV(dir core.Vec3) (float64, float64) {
	u := 0.5 + math.Atan2(dir.Z, dir.X)/(2*math.Pi)
	v := 0.5 - math.Asin(math.Max(-1, math.Min(1, dir.Y)))/math.Pi
	return u, v
}
