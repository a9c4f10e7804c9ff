// Package orbit converts drag and wheel input into a damped spherical orbit around a focus point
package orbit

import (
	"math"

	"github.com/lixenwraith/constellation/camera"
	"github.com/lixenwraith/constellation/parameter"
	"github.com/lixenwraith/constellation/vmath"
)

// Tuning holds orbit input and smoothing constants
type Tuning struct {
	RotateSpeed  float64 `mapstructure:"rotateSpeed"`
	ZoomSpeed    float64 `mapstructure:"zoomSpeed"`
	MinRadius    float64 `mapstructure:"minRadius"`
	MaxRadius    float64 `mapstructure:"maxRadius"`
	PolarEpsilon float64 `mapstructure:"polarEpsilon"`
	Damping      float64 `mapstructure:"damping"`
}

// DefaultTuning returns the parameter defaults
func DefaultTuning() Tuning {
	return Tuning{
		RotateSpeed:  parameter.OrbitRotateSpeed,
		ZoomSpeed:    parameter.OrbitZoomSpeed,
		MinRadius:    parameter.OrbitMinRadius,
		MaxRadius:    parameter.OrbitMaxRadius,
		PolarEpsilon: parameter.OrbitPolarEpsilon,
		Damping:      parameter.OrbitDamping,
	}
}

// Controller is the manual camera
type Controller struct {
	Tuning Tuning

	focus     vmath.Vec3F
	spherical vmath.Spherical
	active    bool
	snapped   bool
}

// New returns an inactive controller
func New(t Tuning) *Controller {
	return &Controller{Tuning: t}
}

// Active reports whether manual control is engaged
func (c *Controller) Active() bool { return c.active }

// Spherical returns the current orbit triple
func (c *Controller) Spherical() vmath.Spherical { return c.spherical }

// Focus returns the orbit center
func (c *Controller) Focus() vmath.Vec3F { return c.focus }

// Activate takes over from pose, orbiting its target
// The next Update snaps to the computed pose
func (c *Controller) Activate(from camera.Pose) {
	c.focus = from.Target
	c.spherical = vmath.SphericalFromOffset(vmath.V3FSub(from.Position, from.Target))
	c.spherical.Radius = c.clampRadius(c.spherical.Radius)
	c.spherical.Polar = c.clampPolar(c.spherical.Polar)
	c.active = true
	c.snapped = false
}

// Deactivate releases control; the caller restores its autopilot pose
func (c *Controller) Deactivate() {
	c.active = false
	c.snapped = false
}

// Drag rotates by pixel deltas: horizontal drives azimuth, vertical drives polar
func (c *Controller) Drag(dx, dy float64) {
	if !c.active {
		return
	}
	c.spherical.Azimuth = math.Remainder(c.spherical.Azimuth-dx*c.Tuning.RotateSpeed, 2*math.Pi)
	c.spherical.Polar = c.clampPolar(c.spherical.Polar - dy*c.Tuning.RotateSpeed)
}

// Zoom scales the radius, positive delta moves out
func (c *Controller) Zoom(delta float64) {
	if !c.active {
		return
	}
	factor := 1 + delta*c.Tuning.ZoomSpeed
	if factor <= 0 {
		factor = c.Tuning.ZoomSpeed
	}
	c.spherical.Radius = c.clampRadius(c.spherical.Radius * factor)
}

// Desired returns the undamped pose for the current spherical triple
func (c *Controller) Desired() camera.Pose {
	return camera.Pose{
		Position: vmath.V3FAdd(c.focus, c.spherical.Offset()),
		Target:   c.focus,
	}
}

// Update returns the camera pose for this frame
// First frame after activation snaps, later frames close Damping of the remaining gap
func (c *Controller) Update(current camera.Pose) camera.Pose {
	desired := c.Desired()
	if !c.snapped {
		c.snapped = true
		return desired
	}
	k := vmath.Clamp01(c.Tuning.Damping)
	return camera.Pose{
		Position: vmath.V3FLerp(current.Position, desired.Position, k),
		Target:   vmath.V3FLerp(current.Target, desired.Target, k),
	}
}

func (c *Controller) clampPolar(p float64) float64 {
	eps := c.Tuning.PolarEpsilon
	if eps <= 0 || eps >= math.Pi/2 {
		eps = parameter.OrbitPolarEpsilon
	}
	return vmath.Clamp(p, eps, math.Pi-eps)
}

func (c *Controller) clampRadius(r float64) float64 {
	lo, hi := c.Tuning.MinRadius, c.Tuning.MaxRadius
	if hi < lo {
		lo, hi = hi, lo
	}
	return vmath.Clamp(r, lo, hi)
}
