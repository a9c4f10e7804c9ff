// Package flight drives the scripted camera: takeoff pull-back, Bézier transit and return to overview
package flight

import (
	"github.com/lixenwraith/constellation/camera"
	"github.com/lixenwraith/constellation/framing"
	"github.com/lixenwraith/constellation/vmath"
)

// Mode is the active flight segment
type Mode int

const (
	ModeIdle Mode = iota
	ModeTakeoff
	ModeFlying
	ModeReturning
)

func (m Mode) String() string {
	switch m {
	case ModeTakeoff:
		return "takeoff"
	case ModeFlying:
		return "flying"
	case ModeReturning:
		return "returning"
	default:
		return "idle"
	}
}

// ProgressDone marks a segment whose completion callback already ran
// Any progress at or above it is frozen
const ProgressDone = 2.0

// progressEpsilon absorbs float accumulation so N increments of 1/N reach 1
const progressEpsilon = 1e-9

// Target is a named point the camera flies to
type Target struct {
	Name     string
	Position vmath.Vec3F
}

// Callbacks fire at most once per segment
// They run synchronously inside Update; callers must not start a new segment from inside them
type Callbacks struct {
	OnTakeoffComplete func()
	OnApproaching     func(name string)
	OnArrived         func(name string)
	OnReturnComplete  func()
}

// Env is the per-frame input
type Env struct {
	Tick     uint64 // a repeated tick is a duplicate callback and does not advance progress
	Viewport camera.Viewport
	HUD      camera.HUD
	Placed   []vmath.Vec3F // framing subject for the return segment
}

// State holds the per-segment animation scalars, reset by every Begin call
type State struct {
	Mode        Mode
	Progress    float64
	Start       vmath.Vec3F
	Control     vmath.Vec3F
	End         vmath.Vec3F
	LookStart   vmath.Vec3F
	LookEnd     vmath.Vec3F
	FromTakeoff bool
	Total       float64 // straight-line start→end distance at flight start
	Subject     Target

	approached bool
	arrived    bool
}

// Done reports whether the segment's completion branch has run
func (s State) Done() bool {
	return s.Progress >= ProgressDone
}

// Controller owns the scripted camera pose
type Controller struct {
	Tuning    Tuning
	Framing   *framing.Calculator
	Callbacks Callbacks

	state     State
	pose      camera.Pose
	autopilot camera.Pose

	lastTick uint64
	ticked   bool
}

// NewController starts idle at the framing default pose
func NewController(t Tuning, fc *framing.Calculator, cb Callbacks) *Controller {
	return &Controller{
		Tuning:    t,
		Framing:   fc,
		Callbacks: cb,
		pose:      fc.Default,
		autopilot: fc.Default,
	}
}

// Pose returns the last computed pose
func (c *Controller) Pose() camera.Pose { return c.pose }

// State returns a copy of the segment scalars
func (c *Controller) State() State { return c.state }

// Autopilot returns the most recently saved automatic pose
func (c *Controller) Autopilot() camera.Pose { return c.autopilot }

// SetPose moves the camera without starting a segment
func (c *Controller) SetPose(p camera.Pose) {
	c.pose = p
	c.state = State{Mode: ModeIdle}
}

// SaveAutopilot records p as the pose to resume after manual control
func (c *Controller) SaveAutopilot(p camera.Pose) { c.autopilot = p }

// BeginTakeoff pulls back from the departing star toward +Z and turns to face next
func (c *Controller) BeginTakeoff(departing, next Target) {
	start := c.pose.Position
	c.state = State{
		Mode:      ModeTakeoff,
		Start:     start,
		End:       vmath.V3FAdd(start, vmath.Vec3F{Z: c.Tuning.TakeoffPullBack}),
		LookStart: departing.Position,
		LookEnd:   next.Position,
		Subject:   next,
	}
}

// BeginFlight starts a Bézier transit from the current pose to stand-off in front of subject
// fromTakeoff selects the midpoint control and the front-loaded look blend
func (c *Controller) BeginFlight(subject Target, fromTakeoff bool) {
	start := c.pose.Position
	end := vmath.V3FAdd(subject.Position, vmath.Vec3F{Z: c.Tuning.ArrivalOffset})

	var control vmath.Vec3F
	if fromTakeoff {
		control = vmath.V3FLerp(start, end, 0.5)
	} else {
		control = vmath.V3FLerp(start, end, c.Tuning.FirstFlightControlWeight)
	}

	c.state = State{
		Mode:        ModeFlying,
		Start:       start,
		Control:     control,
		End:         end,
		LookStart:   c.pose.Target,
		LookEnd:     subject.Position,
		FromTakeoff: fromTakeoff,
		Total:       vmath.V3FDist(start, end),
		Subject:     subject,
	}
}

// BeginReturn starts the transit back to the framing of the placed set
func (c *Controller) BeginReturn() {
	c.state = State{
		Mode:      ModeReturning,
		Start:     c.pose.Position,
		LookStart: c.pose.Target,
	}
}

// Update advances the active segment by one frame and returns the camera pose
func (c *Controller) Update(env Env) camera.Pose {
	if c.ticked && env.Tick == c.lastTick {
		return c.pose
	}
	c.lastTick, c.ticked = env.Tick, true

	if c.state.Done() {
		return c.pose
	}

	switch c.state.Mode {
	case ModeTakeoff:
		c.updateTakeoff()
	case ModeFlying:
		c.updateFlying(env)
	case ModeReturning:
		c.updateReturning(env)
	}
	return c.pose
}

func (c *Controller) updateTakeoff() {
	s := &c.state
	s.Progress = advance(s.Progress, step(c.Tuning.TakeoffFrames))

	look := s.LookStart
	if hold := c.Tuning.TakeoffLookHold; s.Progress > hold {
		look = vmath.V3FLerp(s.LookStart, s.LookEnd, vmath.Smoothstep(vmath.Remap01(s.Progress, hold, 1)))
	}
	c.pose = camera.Pose{
		Position: vmath.V3FLerp(s.Start, s.End, s.Progress),
		Target:   look,
	}

	if s.Progress >= 1 {
		s.Progress = ProgressDone
		if cb := c.Callbacks.OnTakeoffComplete; cb != nil {
			cb()
		}
	}
}

func (c *Controller) updateFlying(env Env) {
	s := &c.state
	t := c.Tuning

	if s.Progress < 1 {
		remaining := vmath.V3FDist(c.pose.Position, s.End)
		s.Progress = advance(s.Progress, t.speed(remaining, s.Total))
	}
	p := s.Progress
	pos := vmath.V3FBezier2(s.Start, s.Control, s.End, p)

	var blend float64
	if s.FromTakeoff {
		front := t.LookFrontLoad
		if front < 1 {
			front = 1
		}
		blend = vmath.Smoothstep(p * front)
	} else {
		blend = vmath.EaseInOutQuad(vmath.Remap01(p, t.LookDelayStart, t.LookDelayEnd))
	}
	look := vmath.V3FLerp(s.LookStart, s.LookEnd, blend)

	// Second half: tilt the look point so the subject settles at the HUD center instead of the viewport center
	if p > t.CorrectionStart && env.Viewport.Valid() {
		_, pxY := env.HUD.Offset(env.Viewport)
		wpp := c.Framing.Lens.WorldPerPixel(t.ArrivalOffset, env.Viewport)
		k := vmath.Smoothstep(vmath.Remap01(p, t.CorrectionStart, 1))
		look.Y += k * pxY * wpp
	}

	c.pose = camera.Pose{Position: pos, Target: look}

	remaining := vmath.V3FDist(pos, s.End)
	if !s.approached && (p >= t.ApproachProgress || remaining < t.ApproachDistance) {
		s.approached = true
		if cb := c.Callbacks.OnApproaching; cb != nil {
			cb(s.Subject.Name)
		}
	}
	if !s.arrived && (p >= t.ArriveProgress || remaining < t.ArriveDistance) {
		s.arrived = true
		if cb := c.Callbacks.OnArrived; cb != nil {
			cb(s.Subject.Name)
		}
	}
}

func (c *Controller) updateReturning(env Env) {
	s := &c.state
	target := c.Framing.Frame(env.Placed, env.Viewport, env.HUD).Pose

	s.Progress = advance(s.Progress, step(c.Tuning.ReturnFrames))
	s.LookEnd = target.Target
	s.End = target.Position

	if s.Progress >= 1-c.Tuning.ReturnSnapEpsilon {
		c.pose = target
		c.autopilot = target
		s.Progress = ProgressDone
		if cb := c.Callbacks.OnReturnComplete; cb != nil {
			cb()
		}
		return
	}

	from := camera.Pose{Position: s.Start, Target: s.LookStart}
	c.pose = from.Lerp(target, vmath.EaseOutCubic(s.Progress))
}

// advance adds inc and saturates at exactly 1
func advance(progress, inc float64) float64 {
	p := progress + inc
	if p >= 1-progressEpsilon {
		return 1
	}
	return p
}
