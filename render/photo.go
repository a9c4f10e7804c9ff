package render

import (
	"bufio"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ftrvxmtrx/tga"
	"github.com/rs/zerolog"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// errUnknownPhotoFormat is returned for files that match no known header
var errUnknownPhotoFormat = errors.New("unknown photo format")

// photoFormat matches a file header; '?' in magic matches any byte
type photoFormat struct {
	name   string
	magic  string
	decode func(io.Reader) (image.Image, error)
}

// TGA has no header magic, so it is selected by extension only and never sniffed
var photoFormats = []photoFormat{
	{"png", "\x89PNG\r\n\x1a\n", png.Decode},
	{"jpeg", "\xff\xd8", jpeg.Decode},
	{"webp", "RIFF????WEBP", webp.Decode},
	{"bmp", "BM????\x00\x00\x00\x00", bmp.Decode},
}

func (p photoFormat) match(head []byte) bool {
	if len(head) < len(p.magic) {
		return false
	}
	for i := 0; i < len(p.magic); i++ {
		if p.magic[i] != '?' && p.magic[i] != head[i] {
			return false
		}
	}
	return true
}

// decodePhoto picks a decoder from the file extension (tga) or the header bytes
func decodePhoto(path string, r io.Reader) (image.Image, string, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := tga.Decode(r)
		return img, "tga", err
	}

	br := bufio.NewReader(r)
	head, err := br.Peek(12)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", err
	}
	for _, p := range photoFormats {
		if p.match(head) {
			img, err := p.decode(br)
			return img, p.name, err
		}
	}
	return nil, "", errUnknownPhotoFormat
}

// PhotoCache decodes star photos once per path
// Failed or remote photos are remembered as nil so a broken file is not retried every frame
type PhotoCache struct {
	mu     sync.Mutex
	images map[string]image.Image
	log    zerolog.Logger
}

// NewPhotoCache creates an empty cache
func NewPhotoCache(log zerolog.Logger) *PhotoCache {
	return &PhotoCache{
		images: make(map[string]image.Image),
		log:    log.With().Str("component", "photo").Logger(),
	}
}

// Get returns the decoded photo for path or nil
func (c *PhotoCache) Get(path string) image.Image {
	if path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.images[path]; ok {
		return img
	}

	img := c.load(path)
	c.images[path] = img
	return img
}

// Len counts cached paths, including failures
func (c *PhotoCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}

func (c *PhotoCache) load(path string) image.Image {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		c.log.Debug().Str("photo", path).Msg("remote photo skipped")
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		c.log.Warn().Err(err).Str("photo", path).Msg("photo unavailable")
		return nil
	}
	defer f.Close()

	img, format, err := decodePhoto(path, f)
	if err != nil {
		c.log.Warn().Err(err).Str("photo", path).Msg("photo decode failed")
		return nil
	}
	c.log.Debug().Str("photo", path).Str("format", format).Msg("photo loaded")
	return img
}
