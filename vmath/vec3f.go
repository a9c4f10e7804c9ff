package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector in world units
// +X right, +Y up, +Z toward the viewer in overview framing
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FCross(a, b Vec3F) Vec3F {
	return Vec3F{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FDist returns Euclidean distance between two points
func V3FDist(a, b Vec3F) float64 {
	return V3FMag(V3FSub(a, b))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FLerp interpolates a→b, t unclamped
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3FBezier2 evaluates a quadratic Bézier p0→p2 with control p1 at t
func V3FBezier2(p0, p1, p2 Vec3F, t float64) Vec3F {
	u := 1 - t
	a := u * u
	b := 2 * u * t
	c := t * t
	return Vec3F{
		a*p0.X + b*p1.X + c*p2.X,
		a*p0.Y + b*p1.Y + c*p2.Y,
		a*p0.Z + b*p1.Z + c*p2.Z,
	}
}

// V3FCentroid returns the arithmetic mean, zero vector for empty input
func V3FCentroid(points []Vec3F) Vec3F {
	if len(points) == 0 {
		return Vec3F{}
	}
	var sum Vec3F
	for _, p := range points {
		sum = V3FAdd(sum, p)
	}
	return V3FScale(sum, 1/float64(len(points)))
}

// V3FBounds returns the axis-aligned min/max corners, ok false for empty input
func V3FBounds(points []Vec3F) (lo, hi Vec3F, ok bool) {
	if len(points) == 0 {
		return Vec3F{}, Vec3F{}, false
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		lo.Z = math.Min(lo.Z, p.Z)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
		hi.Z = math.Max(hi.Z, p.Z)
	}
	return lo, hi, true
}

// V3FNear reports component-wise equality within eps
func V3FNear(a, b Vec3F, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}
