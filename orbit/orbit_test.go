package orbit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/constellation/camera"
	"github.com/lixenwraith/constellation/vmath"
)

func overview() camera.Pose {
	return camera.Pose{Position: vmath.Vec3F{Z: 80}, Target: vmath.Vec3F{}}
}

func TestDrag_PolarAlwaysClamped(t *testing.T) {
	c := New(DefaultTuning())
	c.Activate(overview())
	eps := c.Tuning.PolarEpsilon

	rng := vmath.NewFastRand(11)
	for i := 0; i < 5000; i++ {
		dx := rng.Range(-400, 400)
		dy := rng.Range(-400, 400)
		c.Drag(dx, dy)
		p := c.Spherical().Polar
		require.GreaterOrEqual(t, p, eps, "drag %d", i)
		require.LessOrEqual(t, p, math.Pi-eps, "drag %d", i)
	}

	// Slam into each pole
	c.Drag(0, 1e6)
	assert.Equal(t, eps, c.Spherical().Polar)
	c.Drag(0, -1e6)
	assert.Equal(t, math.Pi-eps, c.Spherical().Polar)
}

func TestZoom_RadiusClamped(t *testing.T) {
	c := New(DefaultTuning())
	c.Activate(overview())

	for i := 0; i < 100; i++ {
		c.Zoom(5)
	}
	assert.Equal(t, c.Tuning.MaxRadius, c.Spherical().Radius)

	for i := 0; i < 100; i++ {
		c.Zoom(-5)
	}
	assert.Equal(t, c.Tuning.MinRadius, c.Spherical().Radius)
}

func TestUpdate_SnapsThenDamps(t *testing.T) {
	c := New(DefaultTuning())
	start := overview()
	c.Activate(start)

	// Activation from an on-axis pose reproduces it
	first := c.Update(start)
	assert.True(t, vmath.V3FNear(start.Position, first.Position, 1e-9))

	c.Drag(100, 0)
	desired := c.Desired()
	second := c.Update(first)

	gapBefore := vmath.V3FDist(first.Position, desired.Position)
	gapAfter := vmath.V3FDist(second.Position, desired.Position)
	assert.InDelta(t, gapBefore*(1-c.Tuning.Damping), gapAfter, 1e-9)

	// Converges
	pose := second
	for i := 0; i < 300; i++ {
		pose = c.Update(pose)
	}
	assert.True(t, vmath.V3FNear(desired.Position, pose.Position, 1e-6))
}

func TestActivate_ResnapsAfterDeactivate(t *testing.T) {
	c := New(DefaultTuning())
	c.Activate(overview())
	c.Update(overview())
	c.Deactivate()
	assert.False(t, c.Active())

	far := camera.Pose{Position: vmath.Vec3F{X: 40, Y: 30, Z: 40}, Target: vmath.Vec3F{X: 1}}
	c.Activate(far)
	got := c.Update(overview())
	assert.True(t, vmath.V3FNear(far.Position, got.Position, 1e-9))
	assert.Equal(t, far.Target, c.Focus())
}

func TestInactive_IgnoresInput(t *testing.T) {
	c := New(DefaultTuning())
	c.Drag(10, 10)
	c.Zoom(1)
	assert.Equal(t, vmath.Spherical{}, c.Spherical())
}

func TestActivate_ClampsOutOfBandPose(t *testing.T) {
	c := New(DefaultTuning())
	// Straight above the focus and closer than the minimum radius
	c.Activate(camera.Pose{Position: vmath.Vec3F{Y: 1}, Target: vmath.Vec3F{}})
	s := c.Spherical()
	assert.Equal(t, c.Tuning.MinRadius, s.Radius)
	assert.Equal(t, c.Tuning.PolarEpsilon, s.Polar)
}
