package parameter

import "time"

// Terminal layout
// One cell is treated as 1x2 pixels so projection math stays square
const (
	// HeaderRows reserved at the top for the title and phase line
	HeaderRows = 2

	// NavRows reserved at the bottom for the control panel
	NavRows = 3

	// CellPixelsX and CellPixelsY are the virtual pixel size of one terminal cell
	CellPixelsX = 1
	CellPixelsY = 2
)

// Frame loop
const (
	// TargetFPS for the interactive viewer
	TargetFPS = 30

	// FramePeriod between ticks
	FramePeriod = time.Second / TargetFPS

	// SnapshotMaxFrames bounds the headless journey so a stuck phase cannot hang the command
	SnapshotMaxFrames = 20000
)

// Star glyphs
const (
	GlyphUncharted = '·'
	GlyphPlaced    = '✦'
	GlyphSubject   = '✶'
	GlyphNearest   = '★'
)

// Session defaults
const (
	// DefaultSeed makes unconfigured runs reproducible
	DefaultSeed = 20240917

	// DefaultLogFile receives logs while tcell owns the terminal
	DefaultLogFile = "constellation.log"

	// Snapshot raster defaults
	SnapshotWidth  = 1200
	SnapshotHeight = 800

	// Snapshot chrome in pixels, standing in for the header and nav panel
	SnapshotHeaderPx = 72
	SnapshotNavPx    = 120

	// PhotoThumbPx is the edge length of a star's photo thumbnail in snapshots
	PhotoThumbPx = 28
)
