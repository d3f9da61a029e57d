package constants

// Coulomb model
const (
	// CoulombK is the electrostatic constant in N·m²/C², rounded as in classroom use
	CoulombK = 9e9

	// SeparationEpsilon is the distance below which a force is undefined
	SeparationEpsilon = 1e-9

	// CentralChargeQ is the default magnitude of the fixed charge at the origin
	CentralChargeQ = 1.0
)

// Placement bounds in world units
const (
	BoundsMinX = -8.0
	BoundsMaxX = 8.0
	BoundsMinY = -5.0
	BoundsMaxY = 5.0

	// New charges appear inside this smaller region
	SpawnMinX = -3.0
	SpawnMaxX = 3.0
	SpawnMinY = -2.0
	SpawnMaxY = 2.0
)

// Store limits
const (
	// MaxCharges caps the sequence; 0 disables the cap
	MaxCharges = 12

	// DefaultMagnitude pre-fills the add form
	DefaultMagnitude = "1"
)

// Number formatting
const (
	SciDigits   = 2
	AngleDigits = 2
)
