package gridfinity

// Published Gridfinity standard dimensions. All values are millimetres
// unless noted, angles are degrees.
const (
	// GridPitch is the modular grid cell size.
	GridPitch = 42.0
	// GridCornerRadius is the outer corner radius of a grid cell.
	GridCornerRadius = 4.0
	// GridTolerance is the clearance between a base and its baseplate.
	GridTolerance = 0.5
	// HeightUnit is the vertical module; bin heights are multiples of it.
	HeightUnit = 7.0

	// PlatformHeight is the flat platform above the foot profile.
	PlatformHeight = 2.8
	// HoleFromSide is the inset of screw/magnet holes from the block side.
	HoleFromSide = 8.0

	MagnetRadius = 3.25
	MagnetDepth  = 2.4
	ScrewRadius  = 1.5
	ScrewDepth   = 6.0

	// Stacking lip profile segments, bottom to top.
	LipHeight1      = 0.7
	LipHeight2      = 1.8
	LipHeight3Bin   = 1.9
	LipHeight3Plate = 2.15
	// LipOffset shrinks the bin-side profile for stacking clearance.
	LipOffset = 0.25

	LabelWidth  = 12.0
	LabelAngle  = 36.0
	ScoopRadius = 5.0

	// Compartment walls and inner fillet.
	CompartmentInnerRadius = 1.8
	InnerWall              = 1.2
	OuterWall              = 0.95

	// PlateBottomHeight is the default slab height of a full baseplate block.
	PlateBottomHeight = 6.4

	// PlateEdgeRadius rounds the outer vertical edges of a baseplate.
	PlateEdgeRadius = 4.0
)

// footHeight is the height of the stacking foot profile under a base.
const footHeight = LipHeight1 + LipHeight2 + LipHeight3Bin

// plateProfileHeight is the height of the baseplate-side stacking profile.
const plateProfileHeight = LipHeight1 + LipHeight2 + LipHeight3Plate
