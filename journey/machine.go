package journey

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition is returned for an event the current phase does not accept
var ErrIllegalTransition = errors.New("illegal transition")

// transitions maps phase and event to the next phase for the unconditional edges
// AssignCategory and ToggleManual depend on event payload or state and are resolved in Next
var transitions = map[Phase]map[EventKind]Phase{
	PhaseIntro: {
		EventAdvanceIntro: PhaseSelecting,
	},
	PhaseSelecting: {
		EventBeginVisiting: PhaseFlying,
		EventZoomOut:       PhaseReturning,
	},
	PhaseFlying: {
		EventApproaching: PhaseApproaching,
		EventArrived:     PhaseArrived,
	},
	PhaseApproaching: {
		EventArrived: PhaseArrived,
	},
	PhaseArrived: {
		EventZoomOut: PhaseReturning,
	},
	PhasePlaced: {
		EventContinue: PhaseTakeoff,
		EventZoomOut:  PhaseReturning,
	},
	PhaseTakeoff: {
		EventTakeoffComplete: PhaseFlying,
	},
	PhaseReturning: {
		EventReturnComplete: PhaseSelecting,
	},
	PhaseJourneyComplete: {
		EventReturnComplete: PhaseFinale,
	},
	// Re-runs the finale zoom-out from wherever the camera was left
	PhaseFinale: {
		EventZoomOut: PhaseJourneyComplete,
	},
}

// manualFrom lists phases from which manual review can be toggled on
var manualFrom = map[Phase]bool{
	PhaseSelecting: true,
	PhaseFinale:    true,
}

// Next applies ev to s
// The input state is never modified; an illegal event returns s unchanged with ErrIllegalTransition
func Next(s State, ev Event) (State, error) {
	switch ev.Kind {
	case EventAssignCategory:
		if s.Phase != PhaseArrived {
			return s, illegal(s, ev)
		}
		if ev.Remaining <= 0 {
			return State{Phase: PhaseJourneyComplete}, nil
		}
		return State{Phase: PhasePlaced}, nil

	case EventToggleManual:
		if s.Phase == PhaseManualReview {
			return State{Phase: s.Resume}, nil
		}
		if manualFrom[s.Phase] {
			return State{Phase: PhaseManualReview, Resume: s.Phase}, nil
		}
		return s, illegal(s, ev)
	}

	if to, ok := transitions[s.Phase][ev.Kind]; ok {
		return State{Phase: to}, nil
	}
	return s, illegal(s, ev)
}

// CanTransition reports whether ev would be accepted in s
func CanTransition(s State, ev Event) bool {
	_, err := Next(s, ev)
	return err == nil
}

// Available lists the user-facing events accepted in s, for control gating
func Available(s State) []EventKind {
	user := []EventKind{
		EventAdvanceIntro, EventBeginVisiting, EventAssignCategory,
		EventContinue, EventZoomOut, EventToggleManual,
	}
	var out []EventKind
	for _, k := range user {
		if CanTransition(s, Event{Kind: k, Remaining: 1}) {
			out = append(out, k)
		}
	}
	return out
}

func illegal(s State, ev Event) error {
	return fmt.Errorf("%w: %s in %s", ErrIllegalTransition, ev.Kind, s.Phase)
}
