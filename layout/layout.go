// Package layout places stars by rejection sampling inside annular bands
package layout

import (
	"math"

	"github.com/lixenwraith/constellation/parameter"
	"github.com/lixenwraith/constellation/vmath"
)

// Band is an annulus in the XY plane with a depth window on Z
type Band struct {
	MinRadius float64 `mapstructure:"minRadius"`
	MaxRadius float64 `mapstructure:"maxRadius"`
	MinZ      float64 `mapstructure:"minZ"`
	MaxZ      float64 `mapstructure:"maxZ"`
}

// Contains reports whether p lies in the band, with eps slack
func (b Band) Contains(p vmath.Vec3F, eps float64) bool {
	r := math.Hypot(p.X, p.Y)
	return r >= b.MinRadius-eps && r <= b.MaxRadius+eps && p.Z >= b.MinZ-eps && p.Z <= b.MaxZ+eps
}

// Generator samples well-separated points
// Exhausting the attempt budget accepts the best candidate seen; clustering is a visual degradation, not an error
type Generator struct {
	Rand          *vmath.FastRand
	MinSeparation float64
	Attempts      int
}

// NewGenerator returns a generator with the default budget
func NewGenerator(seed uint64, minSeparation float64) *Generator {
	return &Generator{
		Rand:          vmath.NewFastRand(seed),
		MinSeparation: minSeparation,
		Attempts:      parameter.LayoutAttempts,
	}
}

// Candidate draws one uniform-by-area point from the band
func (g *Generator) Candidate(b Band) vmath.Vec3F {
	lo, hi := b.MinRadius*b.MinRadius, b.MaxRadius*b.MaxRadius
	r := math.Sqrt(g.Rand.Range(lo, hi))
	theta := g.Rand.Range(0, 2*math.Pi)
	return vmath.Vec3F{
		X: r * math.Cos(theta),
		Y: r * math.Sin(theta),
		Z: g.Rand.Range(b.MinZ, b.MaxZ),
	}
}

// Sample returns a point in b at least MinSeparation from every point in existing
// Returns ok false when the budget ran out and the best candidate was used instead
func (g *Generator) Sample(b Band, existing []vmath.Vec3F) (p vmath.Vec3F, ok bool) {
	attempts := g.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var best vmath.Vec3F
	bestGap := -1.0

	for i := 0; i < attempts; i++ {
		c := g.Candidate(b)
		gap := nearest(c, existing)
		if gap >= g.MinSeparation {
			return c, true
		}
		if gap > bestGap {
			best, bestGap = c, gap
		}
	}
	return best, false
}

// Scatter samples n mutually separated points in b
func (g *Generator) Scatter(n int, b Band) []vmath.Vec3F {
	out := make([]vmath.Vec3F, 0, n)
	for i := 0; i < n; i++ {
		p, _ := g.Sample(b, out)
		out = append(out, p)
	}
	return out
}

// nearest returns the smallest distance from p to any point, +Inf when empty
func nearest(p vmath.Vec3F, points []vmath.Vec3F) float64 {
	minSq := math.Inf(1)
	for _, q := range points {
		if d := vmath.V3FMagSq(vmath.V3FSub(p, q)); d < minSq {
			minSq = d
		}
	}
	return math.Sqrt(minSq)
}

// Centered translates points so their XY centroid is the origin
// Z is preserved so shells keep their depth separation; the input slice is not modified
func Centered(points []vmath.Vec3F) []vmath.Vec3F {
	if len(points) == 0 {
		return nil
	}
	c := vmath.V3FCentroid(points)
	out := make([]vmath.Vec3F, len(points))
	for i, p := range points {
		out[i] = vmath.Vec3F{X: p.X - c.X, Y: p.Y - c.Y, Z: p.Z}
	}
	return out
}

// CenterOffset is the translation Centered applies, for callers that center a subset
func CenterOffset(points []vmath.Vec3F) vmath.Vec3F {
	c := vmath.V3FCentroid(points)
	return vmath.Vec3F{X: -c.X, Y: -c.Y}
}
