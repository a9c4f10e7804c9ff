package render

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/constellation/entity"
	"github.com/lixenwraith/constellation/journey"
	"github.com/lixenwraith/constellation/parameter"
	"github.com/lixenwraith/constellation/scene"
)

func newDirector(t *testing.T, n int) *scene.Director {
	t.Helper()
	specs := make([]entity.Spec, 0, n)
	for _, name := range []string{"Ada", "Grace", "Linus", "Margaret", "Dennis"}[:n] {
		specs = append(specs, entity.Spec{Name: name})
	}
	roster, err := entity.NewRoster(specs)
	require.NoError(t, err)
	return scene.NewDirector(roster, scene.DefaultTuning(), scene.Options{Seed: 7})
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestMapKeys(t *testing.T) {
	var m InputMapper
	tests := []struct {
		name string
		ev   tcell.Event
		want Input
	}{
		{"space", key(' '), Input{Action: ActionAdvance}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Input{Action: ActionAdvance}},
		{"begin", key('b'), Input{Action: ActionBegin}},
		{"inner", key('1'), Input{Action: ActionAssign, Category: entity.CategoryInner}},
		{"middle", key('2'), Input{Action: ActionAssign, Category: entity.CategoryMiddle}},
		{"outer", key('3'), Input{Action: ActionAssign, Category: entity.CategoryOuter}},
		{"continue", key('n'), Input{Action: ActionContinue}},
		{"zoom out", key('z'), Input{Action: ActionZoomOut}},
		{"manual", key('m'), Input{Action: ActionToggleManual}},
		{"zoom in", key('+'), Input{Action: ActionZoom, Delta: -1}},
		{"zoom back", key('-'), Input{Action: ActionZoom, Delta: 1}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), Input{Action: ActionDrag, DX: -keyOrbitStep}},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), Input{Action: ActionDrag, DY: keyOrbitStep}},
		{"q", key('q'), Input{Action: ActionQuit}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Input{Action: ActionQuit}},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), Input{Action: ActionQuit}},
		{"unbound", key('x'), Input{}},
		{"resize", tcell.NewEventResize(100, 30), Input{Action: ActionResize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Map(tt.ev))
		})
	}
}

func TestMapMouseDrag(t *testing.T) {
	var m InputMapper

	press := m.Map(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	assert.Equal(t, ActionNone, press.Action, "first press only anchors the drag")

	move := m.Map(tcell.NewEventMouse(13, 9, tcell.Button1, tcell.ModNone))
	assert.Equal(t, Input{
		Action: ActionDrag,
		DX:     3 * parameter.CellPixelsX,
		DY:     -1 * parameter.CellPixelsY,
	}, move)

	still := m.Map(tcell.NewEventMouse(13, 9, tcell.Button1, tcell.ModNone))
	assert.Equal(t, ActionNone, still.Action)

	m.Map(tcell.NewEventMouse(13, 9, tcell.ButtonNone, tcell.ModNone))
	again := m.Map(tcell.NewEventMouse(20, 20, tcell.Button1, tcell.ModNone))
	assert.Equal(t, ActionNone, again.Action, "release resets the anchor")
}

func TestMapMouseWheel(t *testing.T) {
	var m InputMapper
	assert.Equal(t, Input{Action: ActionZoom, Delta: -1}, m.Map(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone)))
	assert.Equal(t, Input{Action: ActionZoom, Delta: 1}, m.Map(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone)))
}

func TestApplyDrivesDirector(t *testing.T) {
	d := newDirector(t, 2)

	quit, err := Apply(d, Input{Action: ActionAdvance})
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, journey.PhaseSelecting, d.Phase())

	quit, err = Apply(d, Input{Action: ActionBegin})
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, journey.PhaseFlying, d.Phase())

	_, err = Apply(d, Input{Action: ActionContinue})
	assert.True(t, errors.Is(err, journey.ErrIllegalTransition))
	assert.Equal(t, journey.PhaseFlying, d.Phase())

	// Drag and zoom outside manual review are ignored, not errors
	_, err = Apply(d, Input{Action: ActionDrag, DX: 5})
	assert.NoError(t, err)

	quit, err = Apply(d, Input{Action: ActionQuit})
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestStatusOf(t *testing.T) {
	d := newDirector(t, 3)
	require.NoError(t, d.AdvanceIntro())
	require.NoError(t, d.BeginVisiting())

	st := StatusOf(d)
	assert.Equal(t, journey.PhaseFlying, st.Phase)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 0, st.Placed)
	assert.Equal(t, "Ada", st.Subject)
}
