// Package journey is the pure phase state machine that gates controls and camera behavior
package journey

// Phase is the active step of the placement journey
type Phase int

const (
	PhaseIntro Phase = iota
	PhaseSelecting
	PhaseFlying
	PhaseApproaching
	PhaseArrived
	PhasePlaced
	PhaseTakeoff
	PhaseReturning
	PhaseJourneyComplete
	PhaseFinale
	PhaseManualReview
)

var phaseNames = [...]string{
	PhaseIntro:           "Intro",
	PhaseSelecting:       "Selecting",
	PhaseFlying:          "Flying",
	PhaseApproaching:     "Approaching",
	PhaseArrived:         "Arrived",
	PhasePlaced:          "Placed",
	PhaseTakeoff:         "Takeoff",
	PhaseReturning:       "Returning",
	PhaseJourneyComplete: "JourneyComplete",
	PhaseFinale:          "Finale",
	PhaseManualReview:    "ManualReview",
}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Unknown"
}

// Scripted reports whether the flight controller drives the camera in this phase
func (p Phase) Scripted() bool {
	return p != PhaseManualReview
}

// EventKind enumerates user actions and controller callbacks
type EventKind int

const (
	EventAdvanceIntro EventKind = iota + 1
	EventBeginVisiting
	EventApproaching
	EventArrived
	EventAssignCategory
	EventContinue
	EventTakeoffComplete
	EventZoomOut
	EventReturnComplete
	EventToggleManual
)

var eventNames = map[EventKind]string{
	EventAdvanceIntro:    "AdvanceIntro",
	EventBeginVisiting:   "BeginVisiting",
	EventApproaching:     "Approaching",
	EventArrived:         "Arrived",
	EventAssignCategory:  "AssignCategory",
	EventContinue:        "Continue",
	EventTakeoffComplete: "TakeoffComplete",
	EventZoomOut:         "ZoomOut",
	EventReturnComplete:  "ReturnComplete",
	EventToggleManual:    "ToggleManual",
}

func (k EventKind) String() string {
	if s, ok := eventNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Event is one input to the state machine
// Remaining is the count of unplaced entities after an AssignCategory is applied
type Event struct {
	Kind      EventKind
	Remaining int
}

// State is the machine state; Resume is the phase ManualReview returns to
type State struct {
	Phase  Phase
	Resume Phase
}

// Initial is the session start state
func Initial() State {
	return State{Phase: PhaseIntro}
}
