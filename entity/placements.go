package entity

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/constellation/vmath"
)

// Placements maps entity ID to placement
// Treated as immutable: every With* method returns a fresh map
type Placements map[uuid.UUID]Placement

// Clone returns a shallow copy; Constellation pointers are shared since they are frozen once set
func (ps Placements) Clone() Placements {
	out := make(Placements, len(ps))
	for k, v := range ps {
		out[k] = v
	}
	return out
}

// WithVisited marks an entity as visited
func (ps Placements) WithVisited(id uuid.UUID) Placements {
	p, ok := ps[id]
	if !ok || p.Visited {
		return ps
	}
	out := ps.Clone()
	p.Visited = true
	out[id] = p
	return out
}

// WithCategory assigns a category, generating the constellation position on first assignment only
// gen is not called when a position already exists
func (ps Placements) WithCategory(id uuid.UUID, c Category, gen func(Category) vmath.Vec3F) Placements {
	p, ok := ps[id]
	if !ok || !c.Valid() {
		return ps
	}
	out := ps.Clone()
	p.Category = c
	if p.Constellation == nil {
		pos := gen(c)
		p.Constellation = &pos
	}
	out[id] = p
	return out
}

// Remaining counts entities without a constellation position
func (ps Placements) Remaining() int {
	n := 0
	for _, p := range ps {
		if !p.Placed() {
			n++
		}
	}
	return n
}

// InCategory returns constellation positions of entities in c, ordered by roster
func (ps Placements) InCategory(roster []Entity, c Category) []vmath.Vec3F {
	var out []vmath.Vec3F
	for _, e := range roster {
		p, ok := ps[e.ID]
		if ok && p.Placed() && p.Category == c {
			out = append(out, *p.Constellation)
		}
	}
	return out
}
