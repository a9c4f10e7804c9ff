package parameter

// Lens & framing
// Values are tuned visually; treat them as starting points for the config file, not derived constants
const (
	// CameraFOV is the vertical field of view in degrees
	CameraFOV = 60.0

	// FramingFill is the fraction of the HUD rectangle a framed subject should occupy
	FramingFill = 0.8

	// FramingMinDistance is the floor distance for multi-star framing
	// Keeps a small constellation from being zoomed in until photos pixelate
	FramingMinDistance = 18.0

	// FramingComfortDistance is used for a single-star subject where the fit formula degenerates
	FramingComfortDistance = 24.0

	// Default overview pose, used when nothing is placed yet
	CameraDefaultX       = 0.0
	CameraDefaultY       = 0.0
	CameraDefaultZ       = 120.0
	CameraDefaultTargetZ = 0.0
)

// Flight: takeoff
const (
	// TakeoffPullBack is the distance the camera backs away along +Z from the departing star
	TakeoffPullBack = 14.0

	// TakeoffFrames is the number of progress increments to complete a takeoff
	TakeoffFrames = 45

	// TakeoffLookHold is the progress fraction during which the look target stays on the departing star
	TakeoffLookHold = 0.7
)

// Flight: transit
const (
	// ArrivalOffset is the stand-off distance in front of the subject along +Z at flight end
	ArrivalOffset = 7.0

	// FirstFlightControlWeight places the Bézier control this fraction along start→end
	// Low value keeps the first flight hugging its start, then swooping in
	FirstFlightControlWeight = 0.15

	// Speed tiers: progress increment per frame selected by remaining distance to the end point
	FlightSpeedFar      = 0.011
	FlightSpeedMid      = 0.008
	FlightSpeedNear     = 0.0055
	FlightSpeedFinal    = 0.0035
	FlightTierFar       = 45.0
	FlightTierMid       = 22.0
	FlightTierNear      = 9.0
	FlightLongDistance  = 70.0
	FlightLongSpeedMult = 0.65

	// FlightApproachProgress and FlightApproachDistance trigger the approaching callback (either suffices)
	FlightApproachProgress = 0.6
	FlightApproachDistance = 16.0

	// FlightArriveProgress and FlightArriveDistance trigger the arrived callback (either suffices)
	FlightArriveProgress = 0.95
	FlightArriveDistance = 0.75

	// FlightLookFrontLoad compresses the post-takeoff look blend into the first 1/N of the flight
	FlightLookFrontLoad = 2.0

	// Overview look blend window for the first flight (delayed start)
	FlightLookDelayStart = 0.1
	FlightLookDelayEnd   = 0.7

	// FlightCorrectionStart is the progress from which the HUD pixel correction blends in
	FlightCorrectionStart = 0.5
)

// Flight: return to overview
const (
	// ReturnFrames is the number of progress increments for the return transit
	ReturnFrames = 90

	// ReturnSnapEpsilon is the rounding tolerance below 1 at which the return snaps to its target
	ReturnSnapEpsilon = 1e-3
)

// Manual orbit
const (
	// OrbitRotateSpeed is radians per pixel of drag
	OrbitRotateSpeed = 0.008

	// OrbitZoomSpeed is the fractional radius change per wheel notch
	OrbitZoomSpeed = 0.1

	// OrbitMinRadius and OrbitMaxRadius clamp the orbit radius
	OrbitMinRadius = 10.0
	OrbitMaxRadius = 260.0

	// OrbitPolarEpsilon keeps the polar angle away from the poles
	OrbitPolarEpsilon = 0.05

	// OrbitDamping is the per-frame fraction of the remaining distance covered after the first frame
	OrbitDamping = 0.15
)
