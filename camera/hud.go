package camera

// HUD is the pixel rectangle left for the subject between the header and the nav panel
type HUD struct {
	Top, Bottom, Left, Right float64
}

// HUDFromChrome builds the HUD from the measured header and nav panel heights
// Heights larger than the viewport collapse the HUD to a line instead of inverting it
func HUDFromChrome(vp Viewport, headerHeight, navHeight float64) HUD {
	top := headerHeight
	bottom := vp.Height - navHeight
	if bottom < top {
		mid := (top + bottom) / 2
		top, bottom = mid, mid
	}
	return HUD{Top: top, Bottom: bottom, Left: 0, Right: vp.Width}
}

// Width in pixels
func (h HUD) Width() float64 { return h.Right - h.Left }

// Height in pixels
func (h HUD) Height() float64 { return h.Bottom - h.Top }

// Center returns the HUD center in viewport pixels
func (h HUD) Center() (x, y float64) {
	return (h.Left + h.Right) / 2, (h.Top + h.Bottom) / 2
}

// Offset returns the HUD center minus the viewport center, +y down
func (h HUD) Offset(vp Viewport) (dx, dy float64) {
	cx, cy := h.Center()
	return cx - vp.Width/2, cy - vp.Height/2
}

// Contains reports whether a pixel lies inside the rectangle
func (h HUD) Contains(x, y float64) bool {
	return x >= h.Left && x <= h.Right && y >= h.Top && y <= h.Bottom
}

// FullHUD covers the whole viewport
func FullHUD(vp Viewport) HUD {
	return HUD{Top: 0, Bottom: vp.Height, Left: 0, Right: vp.Width}
}
