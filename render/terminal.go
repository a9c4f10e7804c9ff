// Package render draws director frames to a tcell surface or an RGBA image
package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/constellation/camera"
	"github.com/lixenwraith/constellation/entity"
	"github.com/lixenwraith/constellation/journey"
	"github.com/lixenwraith/constellation/parameter"
	"github.com/lixenwraith/constellation/scene"
)

// Surface is the part of tcell.Screen the terminal renderer draws on
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// Status is the HUD text state that is not part of the frame result
type Status struct {
	Phase    journey.Phase
	Subject  string
	Placed   int
	Total    int
	Controls []journey.EventKind
	Message  string
}

// StatusOf collects the HUD state from a director
func StatusOf(d *scene.Director) Status {
	s := Status{
		Phase:    d.Phase(),
		Total:    len(d.Roster()),
		Controls: d.Available(),
	}
	s.Placed = s.Total - d.Remaining()
	if e, ok := d.Subject(); ok {
		s.Subject = e.Name
	}
	return s
}

// TerminalViewport converts a cell grid into the virtual pixel viewport and HUD rectangle
func TerminalViewport(cols, rows int) (camera.Viewport, camera.HUD) {
	vp := camera.Viewport{
		Width:  float64(cols * parameter.CellPixelsX),
		Height: float64(rows * parameter.CellPixelsY),
	}
	hud := camera.HUDFromChrome(vp,
		float64(parameter.HeaderRows*parameter.CellPixelsY),
		float64(parameter.NavRows*parameter.CellPixelsY))
	return vp, hud
}

var (
	rgbBackground = tcell.NewRGBColor(12, 14, 28)
	rgbHeader     = tcell.NewRGBColor(235, 235, 245)
	rgbDim        = tcell.NewRGBColor(110, 110, 130)
	rgbAccent     = tcell.NewRGBColor(255, 200, 80)
	rgbUncharted  = tcell.NewRGBColor(150, 150, 170)
	rgbInner      = tcell.NewRGBColor(255, 210, 90)
	rgbMiddle     = tcell.NewRGBColor(110, 210, 255)
	rgbOuter      = tcell.NewRGBColor(190, 140, 255)
)

// CategoryColor returns the star color for a shell
func CategoryColor(c entity.Category) tcell.Color {
	switch c {
	case entity.CategoryInner:
		return rgbInner
	case entity.CategoryMiddle:
		return rgbMiddle
	case entity.CategoryOuter:
		return rgbOuter
	default:
		return rgbUncharted
	}
}

// Glyph picks the star rune: subject, then nearest, then placed
func Glyph(e scene.OverlayEntry) rune {
	switch {
	case e.Subject:
		return parameter.GlyphSubject
	case e.Nearest:
		return parameter.GlyphNearest
	case e.Placed:
		return parameter.GlyphPlaced
	default:
		return parameter.GlyphUncharted
	}
}

// Terminal draws one frame into a surface
type Terminal struct {
	base tcell.Style
}

// NewTerminal returns a renderer with the dark sky background
func NewTerminal() *Terminal {
	return &Terminal{base: tcell.StyleDefault.Background(rgbBackground)}
}

// Draw clears s and renders stars, labels, header and nav panel
func (t *Terminal) Draw(s Surface, fr scene.FrameResult, st Status) {
	w, h := s.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.SetContent(x, y, ' ', nil, t.base)
		}
	}

	top := parameter.HeaderRows
	bottom := h - parameter.NavRows
	showAll := st.Phase == journey.PhaseFinale || st.Phase == journey.PhaseManualReview

	for _, e := range fr.Overlay {
		cx := int(e.X) / parameter.CellPixelsX
		cy := int(e.Y) / parameter.CellPixelsY
		if cx < 0 || cx >= w || cy < top || cy >= bottom {
			continue
		}

		style := t.base.Foreground(CategoryColor(e.Category))
		if e.Subject || e.Nearest {
			style = style.Bold(true)
		}
		s.SetContent(cx, cy, Glyph(e), nil, style)

		if e.Subject || e.Nearest || (showAll && e.Placed) {
			t.text(s, cx+2, cy, w, e.Name, t.base.Foreground(rgbDim))
		}
	}

	t.header(s, w, st)
	t.nav(s, w, h, st)
}

func (t *Terminal) header(s Surface, w int, st Status) {
	title := t.base.Foreground(rgbHeader).Bold(true)
	t.text(s, 1, 0, w, "constellation", title)

	right := fmt.Sprintf("%s  %d/%d placed", st.Phase, st.Placed, st.Total)
	t.text(s, w-len([]rune(right))-1, 0, w, right, t.base.Foreground(rgbAccent))

	t.text(s, 1, 1, w, Prompt(st), t.base.Foreground(rgbHeader))
}

func (t *Terminal) nav(s Surface, w, h int, st Status) {
	y := h - parameter.NavRows
	if y < parameter.HeaderRows {
		return
	}
	rule := t.base.Foreground(rgbDim)
	for x := 0; x < w; x++ {
		s.SetContent(x, y, '─', nil, rule)
	}

	t.text(s, 1, y+1, w, ControlLine(st.Controls), t.base.Foreground(rgbHeader))

	info := "q:quit"
	if st.Phase == journey.PhaseManualReview {
		info = "drag/arrows:orbit  wheel/+-:zoom  " + info
	}
	if st.Message != "" {
		info = st.Message + "  " + info
	}
	t.text(s, 1, y+2, w, info, rule)
}

// text writes str from x, clipped at w
func (t *Terminal) text(s Surface, x, y, w int, str string, style tcell.Style) {
	for _, r := range str {
		if x >= w {
			return
		}
		if x >= 0 {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

// Prompt is the second header line for a phase
func Prompt(st Status) string {
	switch st.Phase {
	case journey.PhaseIntro:
		return "Place the people you know as stars. Press space to begin."
	case journey.PhaseSelecting:
		if st.Placed == 0 {
			return "Uncharted stars drift far away. Press b to visit the first."
		}
		return "Your constellation so far. Press b to keep visiting."
	case journey.PhaseFlying, journey.PhaseTakeoff:
		return "Flying to " + st.Subject + "..."
	case journey.PhaseApproaching:
		return "Approaching " + st.Subject
	case journey.PhaseArrived:
		return "How close is " + st.Subject + "?  1:inner  2:middle  3:outer"
	case journey.PhasePlaced:
		return st.Subject + " placed. Press n for the next star or z to zoom out."
	case journey.PhaseReturning, journey.PhaseJourneyComplete:
		return "Zooming out..."
	case journey.PhaseFinale:
		return "Every star is placed. Press m to look around or z to reframe."
	case journey.PhaseManualReview:
		return "Manual review"
	default:
		return ""
	}
}

var controlLabels = map[journey.EventKind]string{
	journey.EventAdvanceIntro:   "space:start",
	journey.EventBeginVisiting:  "b:visit",
	journey.EventAssignCategory: "1/2/3:assign",
	journey.EventContinue:       "n:next",
	journey.EventZoomOut:        "z:zoom out",
	journey.EventToggleManual:   "m:manual",
}

// ControlLine lists the accepted actions
func ControlLine(controls []journey.EventKind) string {
	parts := make([]string, 0, len(controls))
	for _, k := range controls {
		if l, ok := controlLabels[k]; ok {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, "  ")
}
