package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/constellation/entity"
	"github.com/lixenwraith/constellation/parameter"
	"github.com/lixenwraith/constellation/scene"
)

// Action is a user intent decoded from a terminal event
type Action int

const (
	ActionNone Action = iota
	ActionAdvance
	ActionBegin
	ActionAssign
	ActionContinue
	ActionZoomOut
	ActionToggleManual
	ActionDrag
	ActionZoom
	ActionResize
	ActionQuit
)

// Input is one decoded event
type Input struct {
	Action   Action
	Category entity.Category
	DX, DY   float64 // virtual pixels, for ActionDrag
	Delta    float64 // wheel notches, positive zooms out
}

// keyOrbitStep is the virtual pixel drag applied per arrow key press
const keyOrbitStep = 12

// InputMapper decodes tcell events, tracking mouse drag state between events
type InputMapper struct {
	dragging     bool
	lastX, lastY int
}

// Map decodes ev
func (m *InputMapper) Map(ev tcell.Event) Input {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return mapKey(ev)
	case *tcell.EventMouse:
		return m.mapMouse(ev)
	case *tcell.EventResize:
		return Input{Action: ActionResize}
	}
	return Input{}
}

func mapKey(ev *tcell.EventKey) Input {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Input{Action: ActionQuit}
	case tcell.KeyEnter:
		return Input{Action: ActionAdvance}
	case tcell.KeyLeft:
		return Input{Action: ActionDrag, DX: -keyOrbitStep}
	case tcell.KeyRight:
		return Input{Action: ActionDrag, DX: keyOrbitStep}
	case tcell.KeyUp:
		return Input{Action: ActionDrag, DY: -keyOrbitStep}
	case tcell.KeyDown:
		return Input{Action: ActionDrag, DY: keyOrbitStep}
	case tcell.KeyRune:
	default:
		return Input{}
	}

	switch ev.Rune() {
	case 'q':
		return Input{Action: ActionQuit}
	case ' ':
		return Input{Action: ActionAdvance}
	case 'b':
		return Input{Action: ActionBegin}
	case '1':
		return Input{Action: ActionAssign, Category: entity.CategoryInner}
	case '2':
		return Input{Action: ActionAssign, Category: entity.CategoryMiddle}
	case '3':
		return Input{Action: ActionAssign, Category: entity.CategoryOuter}
	case 'n':
		return Input{Action: ActionContinue}
	case 'z':
		return Input{Action: ActionZoomOut}
	case 'm':
		return Input{Action: ActionToggleManual}
	case '+', '=':
		return Input{Action: ActionZoom, Delta: -1}
	case '-':
		return Input{Action: ActionZoom, Delta: 1}
	}
	return Input{}
}

func (m *InputMapper) mapMouse(ev *tcell.EventMouse) Input {
	x, y := ev.Position()
	btn := ev.Buttons()

	switch {
	case btn&tcell.WheelUp != 0:
		return Input{Action: ActionZoom, Delta: -1}
	case btn&tcell.WheelDown != 0:
		return Input{Action: ActionZoom, Delta: 1}
	case btn&tcell.Button1 != 0:
		if !m.dragging {
			m.dragging = true
			m.lastX, m.lastY = x, y
			return Input{}
		}
		dx := float64((x - m.lastX) * parameter.CellPixelsX)
		dy := float64((y - m.lastY) * parameter.CellPixelsY)
		m.lastX, m.lastY = x, y
		if dx == 0 && dy == 0 {
			return Input{}
		}
		return Input{Action: ActionDrag, DX: dx, DY: dy}
	default:
		m.dragging = false
		return Input{}
	}
}

// Apply performs in on d and reports whether the viewer should quit
// Rejected actions return the director's error; the caller decides whether to surface it
func Apply(d *scene.Director, in Input) (quit bool, err error) {
	switch in.Action {
	case ActionQuit:
		return true, nil
	case ActionAdvance:
		err = d.AdvanceIntro()
	case ActionBegin:
		err = d.BeginVisiting()
	case ActionAssign:
		err = d.Assign(in.Category)
	case ActionContinue:
		err = d.Continue()
	case ActionZoomOut:
		err = d.ZoomOut()
	case ActionToggleManual:
		err = d.ToggleManual()
	case ActionDrag:
		d.Drag(in.DX, in.DY)
	case ActionZoom:
		d.Zoom(in.Delta)
	}
	return false, err
}
