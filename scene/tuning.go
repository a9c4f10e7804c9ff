package scene

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/constellation/flight"
	"github.com/lixenwraith/constellation/framing"
	"github.com/lixenwraith/constellation/layout"
	"github.com/lixenwraith/constellation/orbit"
	"github.com/lixenwraith/constellation/parameter"
)

// Tuning aggregates every configurable constant the director hands to its components
type Tuning struct {
	Flight  flight.Tuning  `mapstructure:"flight"`
	Orbit   orbit.Tuning   `mapstructure:"orbit"`
	Framing framing.Tuning `mapstructure:"framing"`
	Bands   layout.Bands   `mapstructure:"bands"`

	MinSeparation float64 `mapstructure:"minSeparation"`
	Attempts      int     `mapstructure:"attempts"`
}

// DefaultTuning returns the parameter defaults
func DefaultTuning() Tuning {
	return Tuning{
		Flight:        flight.DefaultTuning(),
		Orbit:         orbit.DefaultTuning(),
		Framing:       framing.DefaultTuning(),
		Bands:         layout.DefaultBands(),
		MinSeparation: parameter.LayoutMinSeparation,
		Attempts:      parameter.LayoutAttempts,
	}
}

// ErrInvalidTuning is returned by Validate for values the camera math cannot use
var ErrInvalidTuning = errors.New("invalid tuning")

func invalid(field string, v any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalidTuning, field, v)
}

// Validate rejects values that would stall a segment or produce a non-finite pose
func (t Tuning) Validate() error {
	f := t.Flight
	switch {
	case f.TakeoffFrames <= 0:
		return invalid("flight.takeoffFrames", f.TakeoffFrames)
	case f.ReturnFrames <= 0:
		return invalid("flight.returnFrames", f.ReturnFrames)
	case f.SpeedFar <= 0:
		return invalid("flight.speedFar", f.SpeedFar)
	case f.SpeedMid <= 0:
		return invalid("flight.speedMid", f.SpeedMid)
	case f.SpeedNear <= 0:
		return invalid("flight.speedNear", f.SpeedNear)
	case f.SpeedFinal <= 0:
		return invalid("flight.speedFinal", f.SpeedFinal)
	case f.ReturnSnapEpsilon < 0 || f.ReturnSnapEpsilon >= 1:
		return invalid("flight.returnSnapEpsilon", f.ReturnSnapEpsilon)
	}

	fr := t.Framing
	switch {
	case fr.FOV <= 0 || fr.FOV >= 180:
		return invalid("framing.fov", fr.FOV)
	case fr.Fill <= 0:
		return invalid("framing.fill", fr.Fill)
	case fr.MinDistance < 0:
		return invalid("framing.minDistance", fr.MinDistance)
	case fr.ComfortDistance <= 0:
		return invalid("framing.comfortDistance", fr.ComfortDistance)
	}

	o := t.Orbit
	switch {
	case o.MinRadius <= 0:
		return invalid("orbit.minRadius", o.MinRadius)
	case o.MaxRadius < o.MinRadius:
		return invalid("orbit.maxRadius", o.MaxRadius)
	case o.Damping <= 0 || o.Damping > 1:
		return invalid("orbit.damping", o.Damping)
	}

	for _, nb := range []struct {
		name string
		band layout.Band
	}{
		{"uncharted", t.Bands.Uncharted},
		{"inner", t.Bands.Inner},
		{"middle", t.Bands.Middle},
		{"outer", t.Bands.Outer},
	} {
		name, b := nb.name, nb.band
		switch {
		case b.MinRadius < 0:
			return invalid("bands."+name+".minRadius", b.MinRadius)
		case b.MaxRadius < b.MinRadius:
			return invalid("bands."+name+".maxRadius", b.MaxRadius)
		case b.MaxZ < b.MinZ:
			return invalid("bands."+name+".maxZ", b.MaxZ)
		}
	}

	switch {
	case t.Attempts <= 0:
		return invalid("attempts", t.Attempts)
	case t.MinSeparation < 0:
		return invalid("minSeparation", t.MinSeparation)
	}
	return nil
}
