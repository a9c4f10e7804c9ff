package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/constellation/audio"
	"github.com/lixenwraith/constellation/journey"
	"github.com/lixenwraith/constellation/parameter"
	"github.com/lixenwraith/constellation/render"
	"github.com/lixenwraith/constellation/scene"
	"github.com/lixenwraith/constellation/telemetry"
)

// messageFrames keeps a rejected-action note on screen for about two seconds
const messageFrames = 2 * parameter.TargetFPS

// runViewer is the interactive tcell frame loop
func runViewer() error {
	roster, err := cfg.Entities()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	// Panic recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nCONSTELLATION CRASHED: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	screen.EnableMouse()
	screen.HideCursor()

	// Audio is optional
	acfg := audio.DefaultConfig()
	acfg.Enabled = cfg.Audio
	acfg.MasterVolume = cfg.Volume
	sound := audio.NewSoundManager(acfg)
	if err := sound.Initialize(); err != nil {
		logger.Warn().Err(err).Msg("audio initialization failed, continuing without audio")
	}
	defer sound.Cleanup()

	metrics, err := telemetry.New()
	if err != nil {
		logger.Warn().Err(err).Msg("telemetry disabled")
	}

	director := scene.NewDirector(roster, cfg.Tuning, scene.Options{
		Seed:    cfg.Seed,
		Logger:  &logger,
		Metrics: metrics,
		Sound:   sound,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloads := loader.Watch(ctx, logger)

	eventChan := make(chan tcell.Event, 256)
	go func() {
		for {
			ev := screen.PollEvent()
			// PollEvent returns nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(parameter.FramePeriod)
	defer ticker.Stop()

	var (
		mapper   render.InputMapper
		term     = render.NewTerminal()
		tick     uint64
		message  string
		messageT int
	)

	for {
		select {
		case t := <-reloads:
			director.SetTuning(t)
			message, messageT = "tuning reloaded", messageFrames

		case <-ticker.C:
			// Drain pending input before advancing the frame
		drain:
			for {
				select {
				case ev := <-eventChan:
					in := mapper.Map(ev)
					if in.Action == render.ActionResize {
						screen.Sync()
						continue
					}
					quit, err := render.Apply(director, in)
					if quit {
						logger.Info().Stringer("phase", director.Phase()).Msg("viewer closed")
						return nil
					}
					if err != nil {
						message, messageT = rejected(err), messageFrames
					}
				default:
					break drain
				}
			}

			tick++
			vp, hud := render.TerminalViewport(screen.Size())
			fr := director.Frame(tick, vp, hud)

			st := render.StatusOf(director)
			if messageT > 0 {
				messageT--
				st.Message = message
			}
			term.Draw(screen, fr, st)
			screen.Show()
		}
	}
}

// rejected turns a director error into a short HUD note
func rejected(err error) string {
	switch {
	case errors.Is(err, scene.ErrNothingToVisit):
		return "nothing left to visit"
	case errors.Is(err, journey.ErrIllegalTransition):
		return "not available now"
	default:
		return err.Error()
	}
}
