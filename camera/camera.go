// Package camera defines camera poses, viewport geometry and perspective projection
package camera

import (
	"math"

	"github.com/lixenwraith/constellation/vmath"
)

// nearPlane is the minimum view depth for a point to project
const nearPlane = 0.01

// Pose is a camera position and the point it looks at
type Pose struct {
	Position vmath.Vec3F
	Target   vmath.Vec3F
}

// Distance from position to target
func (p Pose) Distance() float64 {
	return vmath.V3FDist(p.Position, p.Target)
}

// Lerp blends two poses component-wise
func (p Pose) Lerp(to Pose, t float64) Pose {
	return Pose{
		Position: vmath.V3FLerp(p.Position, to.Position, t),
		Target:   vmath.V3FLerp(p.Target, to.Target, t),
	}
}

// Viewport is the render surface size in pixels
type Viewport struct {
	Width, Height float64
}

// Aspect returns width/height, 1 for a degenerate viewport
func (v Viewport) Aspect() float64 {
	if v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// Valid reports whether both dimensions are positive
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Lens describes the perspective projection
type Lens struct {
	FOV float64 // vertical, degrees
}

// TanHalf returns tan(fov/2)
func (l Lens) TanHalf() float64 {
	return math.Tan(vmath.DegToRad(l.FOV) / 2)
}

// WorldPerPixel is the world size of one pixel at the given view depth
func (l Lens) WorldPerPixel(depth float64, vp Viewport) float64 {
	if vp.Height <= 0 {
		return 0
	}
	return 2 * depth * l.TanHalf() / vp.Height
}

// basis returns the camera forward/right/up unit vectors for a Y-up world
func basis(p Pose) (fwd, right, up vmath.Vec3F) {
	fwd = vmath.V3FNormalize(vmath.V3FSub(p.Target, p.Position))
	if fwd == (vmath.Vec3F{}) {
		fwd = vmath.Vec3F{Z: -1}
	}
	worldUp := vmath.Vec3F{Y: 1}
	right = vmath.V3FCross(fwd, worldUp)
	if vmath.V3FMag(right) < 1e-9 {
		// Looking straight up or down
		right = vmath.Vec3F{X: 1}
	}
	right = vmath.V3FNormalize(right)
	up = vmath.V3FCross(right, fwd)
	return fwd, right, up
}

// Project maps a world point to viewport pixels, +y down
// depth is the distance along the view axis; ok is false behind the near plane
func Project(p Pose, l Lens, vp Viewport, point vmath.Vec3F) (x, y, depth float64, ok bool) {
	fwd, right, up := basis(p)
	rel := vmath.V3FSub(point, p.Position)

	depth = vmath.V3FDot(rel, fwd)
	if depth <= nearPlane || !vp.Valid() {
		return 0, 0, depth, false
	}

	th := l.TanHalf()
	ndcX := vmath.V3FDot(rel, right) / (depth * th * vp.Aspect())
	ndcY := vmath.V3FDot(rel, up) / (depth * th)

	x = (ndcX + 1) / 2 * vp.Width
	y = (1 - ndcY) / 2 * vp.Height
	return x, y, depth, true
}
