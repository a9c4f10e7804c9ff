// Package audio plays short synthesized cues for arrivals and takeoffs
// Audio is optional: every method is a no-op until Initialize succeeds
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/constellation/parameter"
	"github.com/lixenwraith/constellation/vmath"
)

// Config for the cue synthesizer
type Config struct {
	Enabled      bool
	SampleRate   int
	MasterVolume float64
}

// DefaultConfig returns the parameter defaults
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		SampleRate:   parameter.AudioSampleRate,
		MasterVolume: parameter.AudioMasterVolume,
	}
}

// SoundManager owns the speaker and its mixer
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
	played      int
}

// NewSoundManager creates an uninitialized manager
func NewSoundManager(cfg Config) *SoundManager {
	cfg.MasterVolume = vmath.Clamp01(cfg.MasterVolume)
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	return &SoundManager{cfg: cfg, mixer: &beep.Mixer{}}
}

// Initialize opens the speaker; disabled config is a successful no-op
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
// beep has no speaker Close here; clearing the mixer leaves it silent
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Arrival plays the arrival bell
func (sm *SoundManager) Arrival() {
	sm.play(ArrivalBell(sm.cfg))
}

// Takeoff plays the takeoff whoosh
func (sm *SoundManager) Takeoff() {
	sm.play(TakeoffWhoosh(sm.cfg))
}

// Played counts cues handed to the mixer
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played++
}
