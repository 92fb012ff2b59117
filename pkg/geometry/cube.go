package geometry

import (
	"math"

	"github.com/rmdl/go-diorama-raytracer/pkg/core"
	"github.com/rmdl/go-diorama-raytracer/pkg/material"
)

// faceEpsilon is the tolerance used to decide which face plane a hit
// point lies on when selecting the surface normal.
const faceEpsilon = 1e-3

// UVScheme selects how a cube face maps to texture coordinates
type UVScheme int

const (
	// UVAtlasGrid maps the six faces into a 3-column by 4-row texture
	// atlas, the cross-shaped layout block textures are drawn in.
	UVAtlasGrid UVScheme = iota
	// UVAtlasStrip maps the six faces into six equal horizontal bands
	// stacked vertically, keyed by face.
	UVAtlasStrip
)

// Cube is an axis-aligned box between a min and max corner (min < max
// component-wise) with a single material on all faces.
type Cube struct {
	Min      core.Vec3
	Max      core.Vec3
	Material *material.Material
	Scheme   UVScheme
}

// NewCube creates a new axis-aligned cube
func NewCube(min, max core.Vec3, mat *material.Material) *Cube {
	return &Cube{Min: min, Max: max, Material: mat}
}

// Intersect tests the ray against the cube using the slab method.
// Zero direction components produce signed infinities in the
// reciprocal; IEEE comparison rules make the slab bounds come out
// right, so they are deliberately not special-cased.
func (c *Cube) Intersect(ray core.Ray) (*material.Intersection, bool) {
	invX := 1.0 / ray.Direction.X
	invY := 1.0 / ray.Direction.Y
	invZ := 1.0 / ray.Direction.Z

	tx1 := (c.Min.X - ray.Origin.X) * invX
	tx2 := (c.Max.X - ray.Origin.X) * invX
	ty1 := (c.Min.Y - ray.Origin.Y) * invY
	ty2 := (c.Max.Y - ray.Origin.Y) * invY
	tz1 := (c.Min.Z - ray.Origin.Z) * invZ
	tz2 := (c.Max.Z - ray.Origin.Z) * invZ

	tEnter := math.Max(math.Max(math.Min(tx1, tx2), math.Min(ty1, ty2)), math.Min(tz1, tz2))
	tExit := math.Min(math.Min(math.Max(tx1, tx2), math.Max(ty1, ty2)), math.Max(tz1, tz2))

	if !(tEnter < tExit && tExit > 0) {
		return nil, false
	}
	if tEnter <= 0 {
		// Origin inside the cube: the nearest boundary is behind or at
		// the origin, which the contract treats as a miss.
		return nil, false
	}

	point := ray.At(tEnter)
	normal := c.faceNormal(point)
	u, v := c.uv(point, normal)

	return &material.Intersection{
		Point:    point,
		Normal:   normal,
		T:        tEnter,
		U:        u,
		V:        v,
		Material: c.Material,
	}, true
}

// faceNormal picks the face whose plane the point lies closest to,
// testing axes in x, y, z order.
func (c *Cube) faceNormal(point core.Vec3) core.Vec3 {
	switch {
	case math.Abs(point.X-c.Min.X) < faceEpsilon:
		return core.NewVec3(-1, 0, 0)
	case math.Abs(point.X-c.Max.X) < faceEpsilon:
		return core.NewVec3(1, 0, 0)
	case math.Abs(point.Y-c.Min.Y) < faceEpsilon:
		return core.NewVec3(0, -1, 0)
	case math.Abs(point.Y-c.Max.Y) < faceEpsilon:
		return core.NewVec3(0, 1, 0)
	case math.Abs(point.Z-c.Min.Z) < faceEpsilon:
		return core.NewVec3(0, 0, -1)
	default:
		return core.NewVec3(0, 0, 1)
	}
}

// uv maps a surface point to normalized texture coordinates using the
// cube's atlas scheme. The mapping is a pure function of the point and
// the face: the same physical point always yields the same (u, v).
func (c *Cube) uv(point, normal core.Vec3) (float64, float64) {
	size := c.Max.Subtract(c.Min)
	local := point.Subtract(c.Min)

	// In-face coordinates in [0,1]
	lx := local.X / size.X
	ly := local.Y / size.Y
	lz := local.Z / size.Z

	if c.Scheme == UVAtlasStrip {
		return c.stripUV(normal, lx, ly, lz)
	}
	return c.gridUV(normal, lx, ly, lz)
}

// gridUV implements the 3-column by 4-row atlas layout. Each face
// occupies one cell of the grid, keyed by which face normal fired.
func (c *Cube) gridUV(normal core.Vec3, lx, ly, lz float64) (float64, float64) {
	const columns = 3.0
	const rows = 4.0
	colWidth := 1.0 / columns
	rowHeight := 1.0 / rows

	var u, v float64
	switch {
	case normal.X > 0: // right face, column 3 row 2
		u = ly*colWidth + 2*colWidth
		v = (1-lz)*rowHeight + rowHeight
	case normal.X < 0: // left face, column 1 row 2
		u = (1 - ly) * colWidth
		v = (1-lz)*rowHeight + rowHeight
	case normal.Y > 0: // top face, column 2 row 4
		u = lx*colWidth + colWidth
		v = lz*rowHeight + 3*rowHeight
	case normal.Y < 0: // bottom face, column 2 row 2
		u = lx*colWidth + colWidth
		v = lz*rowHeight + rowHeight
	case normal.Z > 0: // front face, column 2 row 1
		u = lx*colWidth + colWidth
		v = (1 - ly) * rowHeight
	default: // back face, column 2 row 3
		u = lx*colWidth + colWidth
		v = ly*rowHeight + 2*rowHeight
	}

	// Atlas rows count from the top of the image; flip into UV space
	// where v=0 is the bottom.
	return u, 1 - v
}

// stripUV implements the six-band vertical atlas: face i occupies the
// horizontal band [i/6, (i+1)/6) counted from the top of the image.
func (c *Cube) stripUV(normal core.Vec3, lx, ly, lz float64) (float64, float64) {
	const bands = 6.0

	var face float64
	var fu, fv float64
	switch {
	case normal.X > 0:
		face, fu, fv = 0, lz, ly
	case normal.X < 0:
		face, fu, fv = 1, 1-lz, ly
	case normal.Y > 0:
		face, fu, fv = 2, lx, lz
	case normal.Y < 0:
		face, fu, fv = 3, lx, 1-lz
	case normal.Z > 0:
		face, fu, fv = 4, lx, ly
	default:
		face, fu, fv = 5, 1-lx, ly
	}

	return fu, 1 - (face+(1-fv))/bands
}
