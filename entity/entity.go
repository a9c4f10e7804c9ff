// Package entity holds the people placed as stars and their per-session placement records
package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lixenwraith/constellation/vmath"
)

// Entity is a person rendered as a star
type Entity struct {
	ID    uuid.UUID
	Name  string
	Photo string // Path or URL, may be empty
}

// Spec is the configuration form of an entity, ID optional
type Spec struct {
	ID    string `mapstructure:"id"`
	Name  string `mapstructure:"name"`
	Photo string `mapstructure:"photo"`
}

// StableID derives a deterministic ID from the name so roster reloads keep identity
func StableID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(strings.TrimSpace(name))))
}

// NewRoster builds entities from specs, rejecting empty names and duplicate IDs
func NewRoster(specs []Spec) ([]Entity, error) {
	roster := make([]Entity, 0, len(specs))
	seen := make(map[uuid.UUID]string, len(specs))

	for i, s := range specs {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("roster entry %d: empty name", i)
		}

		id := StableID(name)
		if s.ID != "" {
			parsed, err := uuid.Parse(s.ID)
			if err != nil {
				return nil, fmt.Errorf("roster entry %d (%s): %w", i, name, err)
			}
			id = parsed
		}

		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("roster entry %d (%s): duplicate id %s (also %s)", i, name, id, prev)
		}
		seen[id] = name

		roster = append(roster, Entity{ID: id, Name: name, Photo: s.Photo})
	}
	return roster, nil
}

// Category is the social distance shell a person is assigned to
type Category int

const (
	CategoryNone Category = iota
	CategoryInner
	CategoryMiddle
	CategoryOuter
)

// Categories lists the assignable shells, innermost first
var Categories = []Category{CategoryInner, CategoryMiddle, CategoryOuter}

func (c Category) String() string {
	switch c {
	case CategoryInner:
		return "inner"
	case CategoryMiddle:
		return "middle"
	case CategoryOuter:
		return "outer"
	default:
		return "none"
	}
}

// Valid reports whether c is an assignable shell
func (c Category) Valid() bool {
	return c >= CategoryInner && c <= CategoryOuter
}

// Placement is the mutable per-session record of one entity
type Placement struct {
	Initial       vmath.Vec3F
	Constellation *vmath.Vec3F // nil until the first category assignment
	Category      Category
	Visited       bool
}

// Placed reports whether the entity has a frozen constellation position
func (p Placement) Placed() bool {
	return p.Constellation != nil
}
