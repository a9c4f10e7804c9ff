package render

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/lixenwraith/constellation/entity"
	"github.com/lixenwraith/constellation/journey"
	"github.com/lixenwraith/constellation/parameter"
	"github.com/lixenwraith/constellation/scene"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" WebP ")
	require.NoError(t, err)
	assert.Equal(t, FormatWebP, f)

	f, err = ParseFormat("png")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestDiscRadius(t *testing.T) {
	assert.Equal(t, parameter.PhotoThumbPx/2, DiscRadius(0))
	assert.Equal(t, parameter.PhotoThumbPx/2, DiscRadius(1))
	assert.Equal(t, 2, DiscRadius(1e6))
	assert.GreaterOrEqual(t, DiscRadius(200), DiscRadius(800), "nearer stars are never smaller")
}

func TestRasterDrawsDiscAndChrome(t *testing.T) {
	const w, h = 400, 300
	r := NewRaster(nil, nil)
	fr := scene.FrameResult{Overlay: []scene.OverlayEntry{
		{Name: "Ada", X: 200, Y: 150, Distance: 100, Placed: true, Category: entity.CategoryInner},
		{Name: "Chrome", X: 200, Y: 10, Distance: 100, Placed: true, Category: entity.CategoryOuter},
	}}

	img := r.Draw(fr, Status{Phase: journey.PhaseFinale, Placed: 2, Total: 2}, w, h)
	require.Equal(t, image.Rect(0, 0, w, h), img.Bounds())

	assert.Equal(t, categoryRGBA(entity.CategoryInner), img.RGBAAt(200, 150), "disc center")
	assert.Equal(t, pxChrome, img.RGBAAt(w-2, 2), "header bar")
	assert.NotEqual(t, categoryRGBA(entity.CategoryOuter), img.RGBAAt(200, 10), "stars behind the header are skipped")
	assert.Equal(t, pxBackground, img.RGBAAt(50, 120), "empty sky")
}

func TestRasterNearStarDrawnLast(t *testing.T) {
	r := NewRaster(nil, nil)
	fr := scene.FrameResult{Overlay: []scene.OverlayEntry{
		{X: 200, Y: 150, Distance: 50, Placed: true, Category: entity.CategoryInner},
		{X: 200, Y: 150, Distance: 500, Placed: true, Category: entity.CategoryOuter},
	}}

	img := r.Draw(fr, Status{}, 400, 300)
	assert.Equal(t, categoryRGBA(entity.CategoryInner), img.RGBAAt(200, 150))
}

func TestRasterPhotoThumbnail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ada.png")

	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	red := color.RGBA{255, 0, 0, 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetRGBA(x, y, red)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	roster, err := entity.NewRoster([]entity.Spec{{Name: "Ada", Photo: path}})
	require.NoError(t, err)

	cache := NewPhotoCache(zerolog.Nop())
	r := NewRaster(roster, cache)
	fr := scene.FrameResult{Overlay: []scene.OverlayEntry{
		{ID: roster[0].ID, Name: "Ada", X: 200, Y: 150, Distance: 100, Subject: true},
	}}

	img := r.Draw(fr, Status{}, 400, 300)
	assert.Equal(t, red, img.RGBAAt(200, 150))
	assert.Equal(t, 1, cache.Len())
}

func TestPhotoCacheRemembersFailures(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))

	c := NewPhotoCache(zerolog.Nop())
	assert.Nil(t, c.Get(bad))
	assert.Nil(t, c.Get(filepath.Join(dir, "missing.jpg")))
	assert.Nil(t, c.Get("https://example.com/a.png"))
	assert.Nil(t, c.Get(""))
	assert.Equal(t, 3, c.Len(), "empty path is never cached")

	// Replacing the file does not trigger a retry
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	require.NoError(t, os.WriteFile(bad, buf.Bytes(), 0o644))
	assert.Nil(t, c.Get(bad))
}

func TestEncodeFormats(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))

	var p bytes.Buffer
	require.NoError(t, Encode(&p, img, FormatPNG))
	_, err := png.Decode(&p)
	require.NoError(t, err)

	var w bytes.Buffer
	require.NoError(t, Encode(&w, img, FormatWebP))
	require.Greater(t, w.Len(), 12)
	assert.Equal(t, "RIFF", string(w.Bytes()[:4]))
	assert.Equal(t, "WEBP", string(w.Bytes()[8:12]))

	assert.Error(t, Encode(&w, img, Format("gif")))
}

func TestPhotoCacheDecodesEveryFormat(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.NRGBA{200, 40, 40, 255})
		}
	}

	tests := []struct {
		file   string
		encode func(io.Writer, image.Image) error
	}{
		{"ada.png", png.Encode},
		{"ada.webp", func(w io.Writer, m image.Image) error { return Encode(w, m, FormatWebP) }},
		{"ada.jpg", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }},
		{"ada.bmp", bmp.Encode},
		{"ada.tga", tga.Encode},
		// Content wins over a misleading extension
		{"webp-named.png", func(w io.Writer, m image.Image) error { return Encode(w, m, FormatWebP) }},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.encode(&buf, src))
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			img := NewPhotoCache(zerolog.Nop()).Get(path)
			require.NotNil(t, img)
			assert.Equal(t, src.Bounds(), img.Bounds())
		})
	}
}
