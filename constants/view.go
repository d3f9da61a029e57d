package constants

// Canvas geometry in pixels; one terminal cell is 1 px wide and 2 px tall
const (
	ChargeRadius   = 2
	CentralRadius  = 3
	ArrowLength    = 8
	NetArrowLength = 12
	ArrowHead      = 3

	// Dash pattern for guide lines, on then off
	DashOn  = 3
	DashOff = 2
)

// Pointer hit testing in pixels
const (
	HitRadius   = 3.0
	HoverRadius = 4.0
)

// Layout in cells
const (
	PanelWidth     = 44
	PanelMinWidth  = 30
	CanvasMinWidth = 20
	StatusHeight   = 1
	FieldWidth     = 9
	RowFieldWidth  = 7
)
