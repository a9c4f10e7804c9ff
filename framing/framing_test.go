package framing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/constellation/camera"
	"github.com/lixenwraith/constellation/vmath"
)

func testSetup() (*Calculator, camera.Viewport, camera.HUD) {
	c := NewCalculator()
	vp := camera.Viewport{Width: 1200, Height: 800}
	// Tall header, short nav: HUD center sits below the viewport center
	hud := camera.HUDFromChrome(vp, 220, 60)
	return c, vp, hud
}

func TestFrame_EmptyReturnsDefaultPose(t *testing.T) {
	c, vp, hud := testSetup()

	r := c.Frame(nil, vp, hud)
	assert.True(t, r.Default)
	assert.Equal(t, DefaultPose(), r.Pose)
	assert.False(t, math.IsNaN(r.Distance))
	assert.False(t, math.IsNaN(r.Pose.Position.Z))
}

func TestFrame_DegenerateViewportReturnsDefault(t *testing.T) {
	c, _, _ := testSetup()
	r := c.Frame([]vmath.Vec3F{{X: 1}}, camera.Viewport{}, camera.HUD{})
	assert.True(t, r.Default)
}

func TestFrame_SinglePointUsesComfortDistanceAndLandsInHUD(t *testing.T) {
	c, vp, hud := testSetup()
	p := vmath.Vec3F{X: 3, Y: -4, Z: 2}

	r := c.Point(p, vp, hud)
	require.False(t, r.Default)
	assert.Equal(t, c.ComfortDistance, r.Distance)

	x, y, depth, ok := camera.Project(r.Pose, c.Lens, vp, p)
	require.True(t, ok)
	assert.InDelta(t, c.ComfortDistance, depth, 1e-9)
	assert.True(t, hud.Contains(x, y), "projected (%.1f, %.1f) outside HUD %+v", x, y, hud)

	cx, cy := hud.Center()
	assert.InDelta(t, cx, x, 1e-6)
	assert.InDelta(t, cy, y, 1e-6)
}

func TestFrame_FlatSetFillsHUDFraction(t *testing.T) {
	c, vp, hud := testSetup()
	points := []vmath.Vec3F{
		{X: -40, Y: -10}, {X: 40, Y: 10}, {X: 0, Y: 25}, {X: 5, Y: -25},
	}

	r := c.Frame(points, vp, hud)
	require.False(t, r.Default)
	assert.GreaterOrEqual(t, r.Distance, c.MinDistance)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		x, y, _, ok := camera.Project(r.Pose, c.Lens, vp, p)
		require.True(t, ok)
		assert.True(t, hud.Contains(x, y), "projected (%.1f, %.1f) outside HUD", x, y)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	// Binding axis fills exactly Fill of the HUD, the other at most
	fillW := (maxX - minX) / hud.Width()
	fillH := (maxY - minY) / hud.Height()
	assert.InDelta(t, c.Fill, math.Max(fillW, fillH), 1e-6)
	assert.LessOrEqual(t, fillW, c.Fill+1e-9)
	assert.LessOrEqual(t, fillH, c.Fill+1e-9)

	// Centered vertically within the HUD rather than the viewport
	_, cy := hud.Center()
	assert.InDelta(t, cy, (minY+maxY)/2, 1e-6)
}

func TestFrame_SmallSubjectRespectsFloor(t *testing.T) {
	c, vp, hud := testSetup()
	points := []vmath.Vec3F{{X: -0.5}, {X: 0.5}}

	r := c.Frame(points, vp, hud)
	assert.Equal(t, c.MinDistance, r.Distance)
}

func TestFrame_DepthExtentStaysInsideHUD(t *testing.T) {
	c, vp, hud := testSetup()
	points := []vmath.Vec3F{
		{X: -8, Y: 3, Z: 6}, {X: 9, Y: -6, Z: 10}, {X: 30, Y: 12, Z: -10}, {X: -25, Y: -20, Z: -8},
	}

	r := c.Frame(points, vp, hud)
	for _, p := range points {
		x, y, _, ok := camera.Project(r.Pose, c.Lens, vp, p)
		require.True(t, ok)
		assert.True(t, hud.Contains(x, y), "projected (%.1f, %.1f) outside HUD", x, y)
	}

	// Looks straight down -Z
	assert.Equal(t, r.Pose.Position.X, r.Pose.Target.X)
	assert.Equal(t, r.Pose.Position.Y, r.Pose.Target.Y)
	assert.Greater(t, r.Pose.Position.Z, r.Pose.Target.Z)
}

func TestFrame_SymmetricHUDHasNoOffset(t *testing.T) {
	c := NewCalculator()
	vp := camera.Viewport{Width: 400, Height: 300}
	r := c.Point(vmath.Vec3F{X: 1, Y: 2}, vp, camera.FullHUD(vp))
	assert.InDelta(t, 0, r.OffsetX, 1e-12)
	assert.InDelta(t, 0, r.OffsetY, 1e-12)
}
