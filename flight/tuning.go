package flight

import (
	"github.com/lixenwraith/constellation/parameter"
)

// Tuning holds the empirically tuned flight constants
type Tuning struct {
	TakeoffPullBack float64 `mapstructure:"takeoffPullBack"`
	TakeoffFrames   int     `mapstructure:"takeoffFrames"`
	TakeoffLookHold float64 `mapstructure:"takeoffLookHold"`

	ArrivalOffset            float64 `mapstructure:"arrivalOffset"`
	FirstFlightControlWeight float64 `mapstructure:"firstFlightControlWeight"`

	SpeedFar      float64 `mapstructure:"speedFar"`
	SpeedMid      float64 `mapstructure:"speedMid"`
	SpeedNear     float64 `mapstructure:"speedNear"`
	SpeedFinal    float64 `mapstructure:"speedFinal"`
	TierFar       float64 `mapstructure:"tierFar"`
	TierMid       float64 `mapstructure:"tierMid"`
	TierNear      float64 `mapstructure:"tierNear"`
	LongDistance  float64 `mapstructure:"longDistance"`
	LongSpeedMult float64 `mapstructure:"longSpeedMult"`

	ApproachProgress float64 `mapstructure:"approachProgress"`
	ApproachDistance float64 `mapstructure:"approachDistance"`
	ArriveProgress   float64 `mapstructure:"arriveProgress"`
	ArriveDistance   float64 `mapstructure:"arriveDistance"`

	LookFrontLoad   float64 `mapstructure:"lookFrontLoad"`
	LookDelayStart  float64 `mapstructure:"lookDelayStart"`
	LookDelayEnd    float64 `mapstructure:"lookDelayEnd"`
	CorrectionStart float64 `mapstructure:"correctionStart"`

	ReturnFrames      int     `mapstructure:"returnFrames"`
	ReturnSnapEpsilon float64 `mapstructure:"returnSnapEpsilon"`
}

// DefaultTuning returns the parameter defaults
func DefaultTuning() Tuning {
	return Tuning{
		TakeoffPullBack: parameter.TakeoffPullBack,
		TakeoffFrames:   parameter.TakeoffFrames,
		TakeoffLookHold: parameter.TakeoffLookHold,

		ArrivalOffset:            parameter.ArrivalOffset,
		FirstFlightControlWeight: parameter.FirstFlightControlWeight,

		SpeedFar:      parameter.FlightSpeedFar,
		SpeedMid:      parameter.FlightSpeedMid,
		SpeedNear:     parameter.FlightSpeedNear,
		SpeedFinal:    parameter.FlightSpeedFinal,
		TierFar:       parameter.FlightTierFar,
		TierMid:       parameter.FlightTierMid,
		TierNear:      parameter.FlightTierNear,
		LongDistance:  parameter.FlightLongDistance,
		LongSpeedMult: parameter.FlightLongSpeedMult,

		ApproachProgress: parameter.FlightApproachProgress,
		ApproachDistance: parameter.FlightApproachDistance,
		ArriveProgress:   parameter.FlightArriveProgress,
		ArriveDistance:   parameter.FlightArriveDistance,

		LookFrontLoad:   parameter.FlightLookFrontLoad,
		LookDelayStart:  parameter.FlightLookDelayStart,
		LookDelayEnd:    parameter.FlightLookDelayEnd,
		CorrectionStart: parameter.FlightCorrectionStart,

		ReturnFrames:      parameter.ReturnFrames,
		ReturnSnapEpsilon: parameter.ReturnSnapEpsilon,
	}
}

// speed returns the per-frame progress increment for the remaining distance
func (t Tuning) speed(remaining, total float64) float64 {
	var s float64
	switch {
	case remaining > t.TierFar:
		s = t.SpeedFar
	case remaining > t.TierMid:
		s = t.SpeedMid
	case remaining > t.TierNear:
		s = t.SpeedNear
	default:
		s = t.SpeedFinal
	}
	if total > t.LongDistance {
		s *= t.LongSpeedMult
	}
	if s < minSpeed {
		s = minSpeed
	}
	return s
}

// minSpeed keeps a misconfigured tier from stalling a flight
const minSpeed = 1e-4

// step converts a frame count into a per-frame increment, at least one frame
func step(frames int) float64 {
	if frames < 1 {
		frames = 1
	}
	return 1 / float64(frames)
}
