package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/constellation/entity"
	"github.com/lixenwraith/constellation/journey"
	"github.com/lixenwraith/constellation/parameter"
	"github.com/lixenwraith/constellation/scene"
)

// gridSurface is a Surface backed by a plain cell grid
type gridSurface struct {
	w, h   int
	runes  [][]rune
	styles [][]tcell.Style
}

func newGridSurface(w, h int) *gridSurface {
	g := &gridSurface{w: w, h: h}
	g.runes = make([][]rune, h)
	g.styles = make([][]tcell.Style, h)
	for y := range g.runes {
		g.runes[y] = make([]rune, w)
		g.styles[y] = make([]tcell.Style, w)
	}
	return g
}

func (g *gridSurface) SetContent(x, y int, r rune, _ []rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.runes[y][x] = r
	g.styles[y][x] = style
}

func (g *gridSurface) Size() (int, int) { return g.w, g.h }

func (g *gridSurface) row(y int) string { return string(g.runes[y]) }

func TestTerminalViewport(t *testing.T) {
	vp, hud := TerminalViewport(80, 24)

	if vp.Width != 80*parameter.CellPixelsX || vp.Height != 24*parameter.CellPixelsY {
		t.Errorf("Viewport %vx%v", vp.Width, vp.Height)
	}
	if hud.Top != float64(parameter.HeaderRows*parameter.CellPixelsY) {
		t.Errorf("HUD top %v", hud.Top)
	}
	if hud.Bottom != vp.Height-float64(parameter.NavRows*parameter.CellPixelsY) {
		t.Errorf("HUD bottom %v", hud.Bottom)
	}
}

func TestGlyphPriority(t *testing.T) {
	tests := []struct {
		name  string
		entry scene.OverlayEntry
		want  rune
	}{
		{"uncharted", scene.OverlayEntry{}, parameter.GlyphUncharted},
		{"placed", scene.OverlayEntry{Placed: true}, parameter.GlyphPlaced},
		{"nearest over placed", scene.OverlayEntry{Placed: true, Nearest: true}, parameter.GlyphNearest},
		{"subject over nearest", scene.OverlayEntry{Nearest: true, Subject: true}, parameter.GlyphSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Glyph(tt.entry); got != tt.want {
				t.Errorf("Glyph = %c, want %c", got, tt.want)
			}
		})
	}
}

func TestTerminalDrawStarsAndLabels(t *testing.T) {
	g := newGridSurface(80, 24)
	fr := scene.FrameResult{
		Phase: journey.PhaseArrived,
		Overlay: []scene.OverlayEntry{
			{Name: "Ada", X: 40, Y: 20, Subject: true, Nearest: true},
			{Name: "Grace", X: 10, Y: 30, Placed: true, Category: entity.CategoryMiddle},
			{Name: "Hidden", X: 10, Y: 1}, // header row, clipped
		},
	}
	st := Status{Phase: journey.PhaseArrived, Subject: "Ada", Total: 2, Controls: []journey.EventKind{journey.EventAssignCategory}}

	NewTerminal().Draw(g, fr, st)

	if g.runes[10][40] != parameter.GlyphSubject {
		t.Errorf("Expected subject glyph at (40,10), got %c", g.runes[10][40])
	}
	if !strings.Contains(g.row(10), "Ada") {
		t.Errorf("Subject label missing: %q", g.row(10))
	}

	if g.runes[15][10] != parameter.GlyphPlaced {
		t.Errorf("Expected placed glyph at (10,15), got %c", g.runes[15][10])
	}
	fg, _, _ := g.styles[15][10].Decompose()
	if fg != CategoryColor(entity.CategoryMiddle) {
		t.Errorf("Placed star color %v, want middle", fg)
	}
	if strings.Contains(g.row(15), "Grace") {
		t.Error("Placed labels are only shown in the finale")
	}

	if strings.Contains(g.row(0), "Hidden") || g.runes[0][10] == parameter.GlyphUncharted {
		t.Error("Star in header row should be clipped")
	}
	if !strings.Contains(g.row(0), "Arrived") || !strings.Contains(g.row(0), "0/2 placed") {
		t.Errorf("Header row: %q", g.row(0))
	}
	if !strings.Contains(g.row(1), "How close is Ada?") {
		t.Errorf("Prompt row: %q", g.row(1))
	}
	if !strings.Contains(g.row(24-parameter.NavRows+1), "1/2/3:assign") {
		t.Errorf("Control row: %q", g.row(24-parameter.NavRows+1))
	}
}

func TestTerminalFinaleLabelsAllPlaced(t *testing.T) {
	g := newGridSurface(80, 24)
	fr := scene.FrameResult{Overlay: []scene.OverlayEntry{
		{Name: "Grace", X: 10, Y: 30, Placed: true, Category: entity.CategoryOuter},
		{Name: "Linus", X: 50, Y: 30, Placed: true, Category: entity.CategoryInner},
	}}

	NewTerminal().Draw(g, fr, Status{Phase: journey.PhaseFinale, Placed: 2, Total: 2})

	row := g.row(15)
	if !strings.Contains(row, "Grace") || !strings.Contains(row, "Linus") {
		t.Errorf("Finale should label every placed star: %q", row)
	}
}

func TestTerminalDrawSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	h := newDirector(t, 3)
	vp, hud := TerminalViewport(screen.Size())
	fr := h.Frame(1, vp, hud)

	NewTerminal().Draw(screen, fr, StatusOf(h))
	screen.Show()

	mainc, _, style, _ := screen.GetContent(1, 0)
	if mainc != 'c' {
		t.Errorf("Expected title at (1,0), got %c", mainc)
	}
	_, bg, _ := style.Decompose()
	if bg != rgbBackground {
		t.Errorf("Expected sky background, got %v", bg)
	}
}

func TestControlLineAndPrompt(t *testing.T) {
	line := ControlLine([]journey.EventKind{journey.EventContinue, journey.EventZoomOut, journey.EventTakeoffComplete})
	if line != "n:next  z:zoom out" {
		t.Errorf("ControlLine = %q", line)
	}

	for p := journey.PhaseIntro; p <= journey.PhaseManualReview; p++ {
		if Prompt(Status{Phase: p, Subject: "Ada"}) == "" {
			t.Errorf("Empty prompt for %v", p)
		}
	}
	if Prompt(Status{Phase: journey.PhaseSelecting, Placed: 1}) == Prompt(Status{Phase: journey.PhaseSelecting}) {
		t.Error("Selecting prompt should change once a star is placed")
	}
}
