package vmath

import (
	"math"
)

// Spherical is a Y-up spherical coordinate triple
// Polar is measured from +Y, Azimuth around +Y starting at +Z
type Spherical struct {
	Radius  float64
	Azimuth float64
	Polar   float64
}

// SphericalFromOffset converts a Cartesian offset into spherical coordinates
// Zero offset yields zero radius with polar at the equator
func SphericalFromOffset(v Vec3F) Spherical {
	r := V3FMag(v)
	if r == 0 {
		return Spherical{Polar: math.Pi / 2}
	}
	return Spherical{
		Radius:  r,
		Azimuth: math.Atan2(v.X, v.Z),
		Polar:   math.Acos(Clamp(v.Y/r, -1, 1)),
	}
}

// Offset converts back to a Cartesian offset from the orbit center
func (s Spherical) Offset() Vec3F {
	sinP := math.Sin(s.Polar)
	return Vec3F{
		X: s.Radius * sinP * math.Sin(s.Azimuth),
		Y: s.Radius * math.Cos(s.Polar),
		Z: s.Radius * sinP * math.Cos(s.Azimuth),
	}
}
