package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/constellation/camera"
	"github.com/lixenwraith/constellation/entity"
	"github.com/lixenwraith/constellation/journey"
	"github.com/lixenwraith/constellation/parameter"
	"github.com/lixenwraith/constellation/render"
	"github.com/lixenwraith/constellation/scene"
	"github.com/lixenwraith/constellation/telemetry"
)

var (
	snapOut    string
	snapWidth  int
	snapHeight int
	snapFormat string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Run a scripted journey headlessly and render the finale to an image",
	Long: `snapshot visits every roster entry in order, assigning shells in rotation
(inner, middle, outer), waits for the zoom-out to settle and writes the finale
frame as png or webp. The same seed and roster always give the same image.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSnapshot(snapshotOptions{
			Out:    snapOut,
			Width:  snapWidth,
			Height: snapHeight,
			Format: snapFormat,
		})
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapOut, "out", "o", "constellation.webp", "Output image path")
	snapshotCmd.Flags().IntVar(&snapWidth, "width", parameter.SnapshotWidth, "Image width in pixels")
	snapshotCmd.Flags().IntVar(&snapHeight, "height", parameter.SnapshotHeight, "Image height in pixels")
	snapshotCmd.Flags().StringVarP(&snapFormat, "format", "f", "", "png or webp (default from the output extension)")
}

type snapshotOptions struct {
	Out           string
	Width, Height int
	Format        string
}

// errJourneyStalled means the scripted journey did not reach the finale within the frame budget
var errJourneyStalled = errors.New("journey did not reach the finale")

func runSnapshot(opts snapshotOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid snapshot size %dx%d", opts.Width, opts.Height)
	}
	name := opts.Format
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.Out)), ".")
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		return err
	}

	roster, err := cfg.Entities()
	if err != nil {
		return err
	}

	metrics, err := telemetry.New()
	if err != nil {
		logger.Warn().Err(err).Msg("telemetry disabled")
	}
	director := scene.NewDirector(roster, cfg.Tuning, scene.Options{
		Seed:    cfg.Seed,
		Logger:  &logger,
		Metrics: metrics,
	})

	vp, hud := render.SnapshotViewport(opts.Width, opts.Height)
	fr, frames, err := scriptJourney(director, vp, hud, parameter.SnapshotMaxFrames)
	if err != nil {
		return err
	}

	img := render.NewRaster(roster, render.NewPhotoCache(logger)).Draw(fr, render.StatusOf(director), opts.Width, opts.Height)

	f, err := os.Create(opts.Out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", opts.Out, err)
	}
	if err := render.Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", opts.Out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info().Str("out", opts.Out).Str("format", string(format)).Int("frames", frames).Msg("snapshot written")
	fmt.Println(summary(director, opts.Out, frames))
	return nil
}

// scriptJourney drives the director like a user who accepts every prompt, rotating shells per assignment
func scriptJourney(d *scene.Director, vp camera.Viewport, hud camera.HUD, maxFrames int) (scene.FrameResult, int, error) {
	var (
		fr       scene.FrameResult
		assigned int
		log      = logger.With().Str("component", "script").Logger()
	)

	for tick := uint64(1); tick <= uint64(maxFrames); tick++ {
		var err error
		switch d.Phase() {
		case journey.PhaseIntro:
			err = d.AdvanceIntro()
		case journey.PhaseSelecting:
			err = d.BeginVisiting()
		case journey.PhaseArrived:
			err = d.Assign(entity.Categories[assigned%len(entity.Categories)])
			assigned++
		case journey.PhasePlaced:
			err = d.Continue()
		}
		if err != nil {
			return fr, int(tick), fmt.Errorf("scripted %v: %w", d.Phase(), err)
		}

		fr = d.Frame(tick, vp, hud)
		if fr.Phase == journey.PhaseFinale {
			return fr, int(tick), nil
		}
	}
	log.Error().Stringer("phase", d.Phase()).Int("frames", maxFrames).Msg("scripted journey stalled")
	return fr, maxFrames, fmt.Errorf("%w after %d frames (stuck in %v)", errJourneyStalled, maxFrames, d.Phase())
}

var (
	summaryTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	summaryDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	summaryShell = map[entity.Category]lipgloss.Style{
		entity.CategoryInner:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD25A")),
		entity.CategoryMiddle: lipgloss.NewStyle().Foreground(lipgloss.Color("#6ED2FF")),
		entity.CategoryOuter:  lipgloss.NewStyle().Foreground(lipgloss.Color("#BE8CFF")),
	}
	summaryBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// summary lists every star by shell
func summary(d *scene.Director, out string, frames int) string {
	placements := d.Placements()
	lines := []string{summaryTitle.Render("constellation")}
	for _, c := range entity.Categories {
		var names []string
		for _, e := range d.Roster() {
			if placements[e.ID].Category == c {
				names = append(names, e.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		lines = append(lines, summaryShell[c].Render(fmt.Sprintf("%-6s", c))+"  "+strings.Join(names, ", "))
	}
	lines = append(lines, summaryDim.Render(fmt.Sprintf("%s  %d frames", out, frames)))
	return summaryBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
