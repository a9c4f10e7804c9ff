package render

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/constellation/camera"
	"github.com/lixenwraith/constellation/entity"
	"github.com/lixenwraith/constellation/journey"
	"github.com/lixenwraith/constellation/parameter"
	"github.com/lixenwraith/constellation/scene"
	"github.com/lixenwraith/constellation/vmath"
)

// Format of an encoded snapshot
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ParseFormat accepts png or webp, case-insensitive
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatWebP:
		return FormatWebP, nil
	}
	return "", fmt.Errorf("unsupported snapshot format %q", s)
}

// Encode writes img in the given format
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	case FormatPNG:
		return png.Encode(w, img)
	}
	return fmt.Errorf("unsupported snapshot format %q", f)
}

// SnapshotViewport returns the viewport and HUD for a raster of w by h pixels
func SnapshotViewport(w, h int) (camera.Viewport, camera.HUD) {
	vp := camera.Viewport{Width: float64(w), Height: float64(h)}
	return vp, camera.HUDFromChrome(vp, parameter.SnapshotHeaderPx, parameter.SnapshotNavPx)
}

var (
	pxBackground = color.RGBA{12, 14, 28, 255}
	pxChrome     = color.RGBA{22, 24, 44, 255}
	pxText       = color.RGBA{235, 235, 245, 255}
	pxDim        = color.RGBA{110, 110, 130, 255}
	pxAccent     = color.RGBA{255, 200, 80, 255}
)

// categoryRGBA mirrors CategoryColor for raster output
func categoryRGBA(c entity.Category) color.RGBA {
	r, g, b := CategoryColor(c).RGB()
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

// Raster draws frames into RGBA images
type Raster struct {
	photos *PhotoCache
	photo  map[uuid.UUID]string
}

// NewRaster binds the roster photos to a cache; photos may be nil
func NewRaster(roster []entity.Entity, photos *PhotoCache) *Raster {
	r := &Raster{photos: photos, photo: make(map[uuid.UUID]string, len(roster))}
	for _, e := range roster {
		if e.Photo != "" {
			r.photo[e.ID] = e.Photo
		}
	}
	return r
}

// Draw renders fr at w by h pixels
func (r *Raster) Draw(fr scene.FrameResult, st Status, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(pxBackground), image.Point{}, draw.Src)

	_, hud := SnapshotViewport(w, h)
	showAll := st.Phase == journey.PhaseFinale || st.Phase == journey.PhaseManualReview

	// Far stars first so near discs overlap them
	stars := slices.Clone(fr.Overlay)
	slices.SortStableFunc(stars, func(a, b scene.OverlayEntry) int {
		return cmp.Compare(b.Distance, a.Distance)
	})

	for _, e := range stars {
		if !hud.Contains(e.X, e.Y) {
			continue
		}
		rad := DiscRadius(e.Distance)
		cx, cy := int(math.Round(e.X)), int(math.Round(e.Y))

		if thumb := r.thumbnail(e.ID); thumb != nil && (e.Subject || e.Nearest || e.Placed) {
			half := parameter.PhotoThumbPx / 2
			dst := image.Rect(cx-half, cy-half, cx+half, cy+half)
			draw.CatmullRom.Scale(img, dst, thumb, thumb.Bounds(), draw.Over, nil)
		} else {
			fillDisc(img, cx, cy, rad, categoryRGBA(e.Category))
		}

		if e.Subject || e.Nearest || (showAll && e.Placed) {
			label(img, cx+rad+4, cy+4, e.Name, pxDim)
		}
	}

	r.chrome(img, w, h, st)
	return img
}

func (r *Raster) thumbnail(id uuid.UUID) image.Image {
	if r.photos == nil {
		return nil
	}
	path, ok := r.photo[id]
	if !ok {
		return nil
	}
	return r.photos.Get(path)
}

func (r *Raster) chrome(img *image.RGBA, w, h int, st Status) {
	header := image.Rect(0, 0, w, parameter.SnapshotHeaderPx)
	nav := image.Rect(0, h-parameter.SnapshotNavPx, w, h)
	draw.Draw(img, header, image.NewUniform(pxChrome), image.Point{}, draw.Src)
	draw.Draw(img, nav, image.NewUniform(pxChrome), image.Point{}, draw.Src)

	label(img, 16, 24, "constellation", pxText)
	right := fmt.Sprintf("%s  %d/%d placed", st.Phase, st.Placed, st.Total)
	label(img, w-16-textWidth(right), 24, right, pxAccent)
	label(img, 16, 52, Prompt(st), pxText)

	label(img, 16, h-parameter.SnapshotNavPx+32, ControlLine(st.Controls), pxText)
	if st.Message != "" {
		label(img, 16, h-parameter.SnapshotNavPx+60, st.Message, pxDim)
	}
}

// DiscRadius shrinks star discs with distance, clamped to a readable range
func DiscRadius(distance float64) int {
	if distance <= 0 {
		return parameter.PhotoThumbPx / 2
	}
	r := 2400 / distance
	return int(math.Round(vmath.Clamp(r, 2, parameter.PhotoThumbPx/2)))
}

func fillDisc(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	b := img.Bounds()
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > r*r || !(image.Point{X: x, Y: y}).In(b) {
				continue
			}
			img.SetRGBA(x, y, c)
		}
	}
}

// label draws s with its baseline at y
func label(img *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}
