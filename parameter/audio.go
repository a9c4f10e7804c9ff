package parameter

import "time"

// Audio cue envelopes
const (
	AudioSampleRate = 44100

	// BellDuration shapes the arrival chime
	BellDuration           = 600 * time.Millisecond
	BellAttack             = 5 * time.Millisecond
	BellFundamentalRelease = 550 * time.Millisecond
	BellOvertoneRelease    = 300 * time.Millisecond

	// WhooshDuration shapes the takeoff noise sweep
	WhooshDuration = 350 * time.Millisecond
	WhooshAttack   = 60 * time.Millisecond
	WhooshRelease  = 250 * time.Millisecond

	// AudioMasterVolume default, 0.0-1.0
	AudioMasterVolume = 0.5
)
