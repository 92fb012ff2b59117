package geometry

import (
	"github.com/rmdl/go-diorama-raytracer/pkg/core"
	"github.com/rmdl/go-diorama-raytracer/pkg/material"
)

// Shape interface for primitives that can be hit by rays.
// Intersect never fails: it returns (nil, false) when the ray misses
// or when the nearest hit lies behind the ray origin.
type Shape interface {
	Intersect(ray core.Ray) (*material.Intersection, bool)
}
