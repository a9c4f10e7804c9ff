// Package scene owns one placement session: roster, placements, journey phase and the two camera controllers
package scene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/constellation/camera"
	"github.com/lixenwraith/constellation/entity"
	"github.com/lixenwraith/constellation/flight"
	"github.com/lixenwraith/constellation/framing"
	"github.com/lixenwraith/constellation/journey"
	"github.com/lixenwraith/constellation/layout"
	"github.com/lixenwraith/constellation/orbit"
	"github.com/lixenwraith/constellation/vmath"
)

var (
	// ErrNothingToVisit is returned by BeginVisiting when every entity is placed
	ErrNothingToVisit = errors.New("no unplaced entity to visit")

	// ErrInvalidCategory is returned by Assign for CategoryNone or out of range values
	ErrInvalidCategory = errors.New("invalid category")
)

// Metrics receives journey counters
type Metrics interface {
	Transition(phase string)
	Segment(mode string)
}

// Sound plays the flight cues
type Sound interface {
	Arrival()
	Takeoff()
}

// Options are the optional collaborators of a director
type Options struct {
	Seed    uint64
	Logger  *zerolog.Logger
	Metrics Metrics
	Sound   Sound
}

// OverlayEntry is one projected star for HUD label placement
type OverlayEntry struct {
	ID       uuid.UUID
	Name     string
	X, Y     float64
	Distance float64
	Nearest  bool

	Category entity.Category
	Placed   bool
	Subject  bool
}

// FrameResult is the per-frame output
type FrameResult struct {
	Phase   journey.Phase
	Pose    camera.Pose
	Overlay []OverlayEntry
}

// Director is the single writer of session state
// All methods must be called from the frame loop goroutine
type Director struct {
	tuning Tuning
	roster []entity.Entity

	placements entity.Placements
	state      journey.State
	subject    int // roster index of the current flight subject, -1 when none

	gen     *layout.Generator
	framing *framing.Calculator
	flight  *flight.Controller
	orbit   *orbit.Controller
	pose    camera.Pose

	pending []journey.Event

	lastTick uint64
	ticked   bool
	last     FrameResult

	log     zerolog.Logger
	metrics Metrics
	sound   Sound
}

// NewDirector scatters the roster in the uncharted band and starts in Intro at the overview pose
func NewDirector(roster []entity.Entity, t Tuning, opts Options) *Director {
	d := &Director{
		tuning:  t,
		roster:  append([]entity.Entity(nil), roster...),
		state:   journey.Initial(),
		subject: -1,
		metrics: opts.Metrics,
		sound:   opts.Sound,
		log:     zerolog.Nop(),
	}
	if opts.Logger != nil {
		d.log = opts.Logger.With().Str("component", "scene").Logger()
	}
	if d.metrics == nil {
		d.metrics = nopMetrics{}
	}
	if d.sound == nil {
		d.sound = nopSound{}
	}

	d.gen = layout.NewGenerator(opts.Seed, t.MinSeparation)
	d.gen.Attempts = t.Attempts
	d.framing = framing.FromTuning(t.Framing)
	d.orbit = orbit.New(t.Orbit)
	d.flight = flight.NewController(t.Flight, d.framing, flight.Callbacks{
		OnTakeoffComplete: func() { d.queue(journey.EventTakeoffComplete, flight.ModeTakeoff) },
		OnApproaching:     func(string) { d.pending = append(d.pending, journey.Event{Kind: journey.EventApproaching}) },
		OnArrived:         func(string) { d.queue(journey.EventArrived, flight.ModeFlying) },
		OnReturnComplete:  func() { d.queue(journey.EventReturnComplete, flight.ModeReturning) },
	})
	d.pose = d.flight.Pose()

	initial := d.gen.Scatter(len(d.roster), t.Bands.Uncharted)
	d.placements = make(entity.Placements, len(d.roster))
	for i, e := range d.roster {
		d.placements[e.ID] = entity.Placement{Initial: initial[i]}
	}

	d.log.Debug().Int("entities", len(d.roster)).Uint64("seed", opts.Seed).Msg("director created")
	return d
}

func (d *Director) queue(kind journey.EventKind, completed flight.Mode) {
	d.metrics.Segment(completed.String())
	d.pending = append(d.pending, journey.Event{Kind: kind})
}

// --- Accessors ---

// State returns the journey state
func (d *Director) State() journey.State { return d.state }

// Phase returns the current journey phase
func (d *Director) Phase() journey.Phase { return d.state.Phase }

// Pose returns the last rendered camera pose
func (d *Director) Pose() camera.Pose { return d.pose }

// Roster returns the entities in display order
func (d *Director) Roster() []entity.Entity { return d.roster }

// Placements returns the current placement map; callers must not modify it
func (d *Director) Placements() entity.Placements { return d.placements }

// Remaining counts entities not yet placed
func (d *Director) Remaining() int { return d.placements.Remaining() }

// Tuning returns the active tuning
func (d *Director) Tuning() Tuning { return d.tuning }

// Lens returns the projection lens shared with framing
func (d *Director) Lens() camera.Lens { return d.framing.Lens }

// FlightState exposes the scripted camera scalars for HUD display
func (d *Director) FlightState() flight.State { return d.flight.State() }

// Subject returns the entity currently being visited
func (d *Director) Subject() (entity.Entity, bool) {
	if d.subject < 0 {
		return entity.Entity{}, false
	}
	return d.roster[d.subject], true
}

// Available lists the user actions accepted now
func (d *Director) Available() []journey.EventKind {
	out := journey.Available(d.state)
	if d.nextUnplaced() >= 0 {
		return out
	}
	filtered := out[:0]
	for _, k := range out {
		if k != journey.EventBeginVisiting {
			filtered = append(filtered, k)
		}
	}
	return filtered
}

// SetTuning swaps constants between frames
// Bands apply to positions generated from now on; existing positions are never resampled
func (d *Director) SetTuning(t Tuning) {
	d.tuning = t
	d.flight.Tuning = t.Flight
	d.orbit.Tuning = t.Orbit

	d.framing.Lens = camera.Lens{FOV: t.Framing.FOV}
	d.framing.Fill = t.Framing.Fill
	d.framing.MinDistance = t.Framing.MinDistance
	d.framing.ComfortDistance = t.Framing.ComfortDistance

	d.gen.MinSeparation = t.MinSeparation
	d.gen.Attempts = t.Attempts
	d.log.Info().Msg("tuning reloaded")
}

// --- Actions ---

// AdvanceIntro leaves the intro screen
func (d *Director) AdvanceIntro() error {
	return d.apply(journey.Event{Kind: journey.EventAdvanceIntro})
}

// BeginVisiting starts the first flight toward the next unplaced entity
func (d *Director) BeginVisiting() error {
	ev := journey.Event{Kind: journey.EventBeginVisiting}
	if !journey.CanTransition(d.state, ev) {
		return d.apply(ev)
	}
	if d.nextUnplaced() < 0 {
		d.log.Warn().Msg("begin visiting with nothing left to place")
		return ErrNothingToVisit
	}
	return d.apply(ev)
}

// Assign places the current subject in c
// The constellation position is generated on the first assignment only; the last assignment starts the return
func (d *Director) Assign(c entity.Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, c)
	}
	gate := journey.Event{Kind: journey.EventAssignCategory, Remaining: 1}
	if !journey.CanTransition(d.state, gate) {
		return d.apply(gate)
	}
	if d.subject < 0 {
		return ErrNothingToVisit
	}

	e := d.roster[d.subject]
	d.placements = d.placements.WithCategory(e.ID, c, d.generate)
	d.log.Debug().Str("entity", e.Name).Stringer("category", c).Msg("assigned")

	return d.apply(journey.Event{Kind: journey.EventAssignCategory, Remaining: d.placements.Remaining()})
}

// Continue takes off toward the next unplaced entity
func (d *Director) Continue() error {
	return d.apply(journey.Event{Kind: journey.EventContinue})
}

// ZoomOut returns to the overview of the placed set
func (d *Director) ZoomOut() error {
	return d.apply(journey.Event{Kind: journey.EventZoomOut})
}

// ToggleManual enters or leaves manual orbit review
func (d *Director) ToggleManual() error {
	return d.apply(journey.Event{Kind: journey.EventToggleManual})
}

// Drag forwards pointer deltas to the orbit while reviewing
func (d *Director) Drag(dx, dy float64) {
	if d.state.Phase == journey.PhaseManualReview {
		d.orbit.Drag(dx, dy)
	}
}

// Zoom forwards wheel deltas to the orbit while reviewing
func (d *Director) Zoom(delta float64) {
	if d.state.Phase == journey.PhaseManualReview {
		d.orbit.Zoom(delta)
	}
}

// --- Frame ---

// Frame advances the active camera by one tick and returns the pose and label overlay
// A repeated tick returns the previous result unchanged
func (d *Director) Frame(tick uint64, vp camera.Viewport, hud camera.HUD) FrameResult {
	if d.ticked && tick == d.lastTick {
		return d.last
	}
	d.lastTick, d.ticked = tick, true

	if d.state.Phase == journey.PhaseManualReview {
		d.pose = d.orbit.Update(d.pose)
	} else {
		d.pose = d.flight.Update(flight.Env{
			Tick:     tick,
			Viewport: vp,
			HUD:      hud,
			Placed:   d.placedPositions(),
		})
	}

	// Controller callbacks were queued during the update; apply them now that it returned
	events := d.pending
	d.pending = nil
	for _, ev := range events {
		_ = d.apply(ev)
	}

	d.last = FrameResult{
		Phase:   d.state.Phase,
		Pose:    d.pose,
		Overlay: d.overlay(vp),
	}
	return d.last
}

// Positions returns the display position of every roster entity
// Uncharted stars sit at their initial position, placed stars at the XY-centered constellation position
func (d *Director) Positions() []vmath.Vec3F {
	offset := layout.CenterOffset(d.placedRaw())
	out := make([]vmath.Vec3F, len(d.roster))
	for i, e := range d.roster {
		p := d.placements[e.ID]
		if p.Placed() {
			out[i] = vmath.V3FAdd(*p.Constellation, offset)
		} else {
			out[i] = p.Initial
		}
	}
	return out
}

func (d *Director) overlay(vp camera.Viewport) []OverlayEntry {
	positions := d.Positions()
	out := make([]OverlayEntry, 0, len(positions))
	nearest := -1

	for i, p := range positions {
		x, y, _, ok := camera.Project(d.pose, d.framing.Lens, vp, p)
		if !ok || x < 0 || y < 0 || x > vp.Width || y > vp.Height {
			continue
		}
		e := d.roster[i]
		pl := d.placements[e.ID]
		entry := OverlayEntry{
			ID:       e.ID,
			Name:     e.Name,
			X:        x,
			Y:        y,
			Distance: vmath.V3FDist(d.pose.Position, p),
			Category: pl.Category,
			Placed:   pl.Placed(),
			Subject:  i == d.subject,
		}
		if nearest < 0 || entry.Distance < out[nearest].Distance {
			nearest = len(out)
		}
		out = append(out, entry)
	}
	if nearest >= 0 {
		out[nearest].Nearest = true
	}
	return out
}

// --- Transitions ---

func (d *Director) apply(ev journey.Event) error {
	prev := d.state
	next, err := journey.Next(prev, ev)
	if err != nil {
		d.log.Warn().Err(err).Msg("event ignored")
		return err
	}
	d.state = next
	d.metrics.Transition(next.Phase.String())
	d.log.Debug().
		Stringer("from", prev.Phase).
		Stringer("to", next.Phase).
		Stringer("event", ev.Kind).
		Msg("phase transition")

	if prev.Phase == journey.PhaseManualReview {
		d.orbit.Deactivate()
		d.flight.SetPose(d.flight.Autopilot())
		d.pose = d.flight.Pose()
	}

	switch next.Phase {
	case journey.PhaseFlying:
		d.enterFlying(ev.Kind == journey.EventTakeoffComplete)

	case journey.PhaseArrived:
		if d.subject >= 0 {
			d.placements = d.placements.WithVisited(d.roster[d.subject].ID)
		}
		d.sound.Arrival()

	case journey.PhaseTakeoff:
		d.enterTakeoff()

	case journey.PhaseReturning, journey.PhaseJourneyComplete:
		d.flight.BeginReturn()

	case journey.PhaseSelecting, journey.PhaseFinale:
		d.subject = -1

	case journey.PhaseManualReview:
		d.flight.SaveAutopilot(d.pose)
		d.orbit.Activate(d.pose)
	}
	return nil
}

func (d *Director) enterFlying(fromTakeoff bool) {
	if !fromTakeoff {
		d.subject = d.nextUnplaced()
	}
	if d.subject < 0 {
		d.log.Warn().Msg("flight without subject")
		return
	}
	d.flight.BeginFlight(d.target(d.subject), fromTakeoff)
	d.log.Debug().Str("subject", d.roster[d.subject].Name).Bool("fromTakeoff", fromTakeoff).Msg("flight started")
}

func (d *Director) enterTakeoff() {
	departing := flight.Target{Position: d.flight.Pose().Target}
	if d.subject >= 0 {
		departing.Name = d.roster[d.subject].Name
	}
	d.subject = d.nextUnplaced()
	if d.subject < 0 {
		d.log.Warn().Msg("takeoff without next subject")
		return
	}
	d.flight.BeginTakeoff(departing, d.target(d.subject))
	d.sound.Takeoff()
}

func (d *Director) target(i int) flight.Target {
	e := d.roster[i]
	p := d.placements[e.ID]
	pos := p.Initial
	if p.Placed() {
		pos = d.Positions()[i]
	}
	return flight.Target{Name: e.Name, Position: pos}
}

// nextUnplaced returns the first unplaced roster index, -1 when all are placed
func (d *Director) nextUnplaced() int {
	for i, e := range d.roster {
		if !d.placements[e.ID].Placed() {
			return i
		}
	}
	return -1
}

// generate samples a constellation position away from others in the same shell
func (d *Director) generate(c entity.Category) vmath.Vec3F {
	p, ok := d.gen.Sample(d.tuning.Bands.ForCategory(c), d.placements.InCategory(d.roster, c))
	if !ok {
		d.log.Info().Stringer("category", c).Msg("separation budget exhausted, using best candidate")
	}
	return p
}

func (d *Director) placedRaw() []vmath.Vec3F {
	var out []vmath.Vec3F
	for _, e := range d.roster {
		if p := d.placements[e.ID]; p.Placed() {
			out = append(out, *p.Constellation)
		}
	}
	return out
}

func (d *Director) placedPositions() []vmath.Vec3F {
	return layout.Centered(d.placedRaw())
}

type nopMetrics struct{}

func (nopMetrics) Transition(string) {}
func (nopMetrics) Segment(string)    {}

type nopSound struct{}

func (nopSound) Arrival() {}
func (nopSound) Takeoff() {}
