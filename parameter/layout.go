package parameter

// Layout bands: annulus in XY plus a depth window on Z
// Uncharted sits behind every placed shell; placed categories get closer annuli and nearer depth
const (
	// LayoutAttempts is the rejection-sampling budget per point
	LayoutAttempts = 50

	// LayoutMinSeparation is the minimum same-band spacing between stars
	LayoutMinSeparation = 6.0

	// Uncharted scatter (far annulus)
	UnchartedMinRadius = 40.0
	UnchartedMaxRadius = 70.0
	UnchartedMinZ      = -34.0
	UnchartedMaxZ      = -14.0

	// Inner shell (closest acquaintances)
	InnerMinRadius = 5.0
	InnerMaxRadius = 12.0
	InnerMinZ      = 6.0
	InnerMaxZ      = 10.0

	// Middle shell
	MiddleMinRadius = 15.0
	MiddleMaxRadius = 24.0
	MiddleMinZ      = -2.0
	MiddleMaxZ      = 2.0

	// Outer shell
	OuterMinRadius = 27.0
	OuterMaxRadius = 38.0
	OuterMinZ      = -12.0
	OuterMaxZ      = -7.0
)
