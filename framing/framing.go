// Package framing solves camera distance and offset so a set of stars fills the HUD rectangle
package framing

import (
	"math"

	"github.com/lixenwraith/constellation/camera"
	"github.com/lixenwraith/constellation/parameter"
	"github.com/lixenwraith/constellation/vmath"
)

// Calculator frames subjects looking down -Z
type Calculator struct {
	Lens            camera.Lens
	Fill            float64 // target fraction of the HUD
	MinDistance     float64 // floor for multi-point subjects
	ComfortDistance float64 // fixed distance for a zero-extent subject
	Default         camera.Pose
}

// Result of a framing solve
type Result struct {
	Pose     camera.Pose
	Distance float64 // from the camera to the subject's front plane
	OffsetX  float64 // world shift applied to camera and target
	OffsetY  float64
	Default  bool // true when the input was empty and Pose is the fallback
}

// DefaultPose is the overview pose used before anything is placed
func DefaultPose() camera.Pose {
	return camera.Pose{
		Position: vmath.Vec3F{X: parameter.CameraDefaultX, Y: parameter.CameraDefaultY, Z: parameter.CameraDefaultZ},
		Target:   vmath.Vec3F{X: parameter.CameraDefaultX, Y: parameter.CameraDefaultY, Z: parameter.CameraDefaultTargetZ},
	}
}

// NewCalculator returns a calculator with the tuned defaults
func NewCalculator() *Calculator {
	return FromTuning(DefaultTuning())
}

// Tuning is the configurable part of a calculator
type Tuning struct {
	FOV             float64 `mapstructure:"fov"`
	Fill            float64 `mapstructure:"fill"`
	MinDistance     float64 `mapstructure:"minDistance"`
	ComfortDistance float64 `mapstructure:"comfortDistance"`
}

// DefaultTuning returns the parameter defaults
func DefaultTuning() Tuning {
	return Tuning{
		FOV:             parameter.CameraFOV,
		Fill:            parameter.FramingFill,
		MinDistance:     parameter.FramingMinDistance,
		ComfortDistance: parameter.FramingComfortDistance,
	}
}

// FromTuning builds a calculator with the default overview pose
func FromTuning(t Tuning) *Calculator {
	return &Calculator{
		Lens:            camera.Lens{FOV: t.FOV},
		Fill:            t.Fill,
		MinDistance:     t.MinDistance,
		ComfortDistance: t.ComfortDistance,
		Default:         DefaultPose(),
	}
}

// Point frames a single star
func (c *Calculator) Point(p vmath.Vec3F, vp camera.Viewport, hud camera.HUD) Result {
	return c.Frame([]vmath.Vec3F{p}, vp, hud)
}

// Frame solves for the pose that centers points inside hud
// Empty input, an unusable viewport or an empty HUD return the default pose
func (c *Calculator) Frame(points []vmath.Vec3F, vp camera.Viewport, hud camera.HUD) Result {
	lo, hi, ok := vmath.V3FBounds(points)
	if !ok || !vp.Valid() || hud.Height() <= 0 || hud.Width() <= 0 {
		return Result{Pose: c.Default, Distance: c.Default.Distance(), Default: true}
	}

	center := vmath.V3FScale(vmath.V3FAdd(lo, hi), 0.5)
	w := hi.X - lo.X
	h := hi.Y - lo.Y

	var d float64
	if w == 0 && h == 0 {
		d = c.ComfortDistance
	} else {
		fill := c.Fill
		if fill <= 0 {
			fill = 1
		}
		// HUD world height at distance d is hudH * 2*d*tan(fov/2) / vpH; solve subject = fill * HUD
		k := 2 * c.Lens.TanHalf() / vp.Height
		dH := h / (fill * hud.Height() * k)
		dW := w / (fill * hud.Width() * k)
		d = math.Max(math.Max(dH, dW), c.MinDistance)
	}

	// Offset is measured at the subject's center plane so the center lands on the HUD center
	camZ := hi.Z + d
	centerDepth := camZ - center.Z
	wpp := c.Lens.WorldPerPixel(centerDepth, vp)
	pxX, pxY := hud.Offset(vp)

	// Subject must appear pxY below center: raise the camera by that much; likewise shift left for +pxX
	offX := -pxX * wpp
	offY := pxY * wpp

	return Result{
		Pose: camera.Pose{
			Position: vmath.Vec3F{X: center.X + offX, Y: center.Y + offY, Z: camZ},
			Target:   vmath.Vec3F{X: center.X + offX, Y: center.Y + offY, Z: center.Z},
		},
		Distance: d,
		OffsetX:  offX,
		OffsetY:  offY,
	}
}
