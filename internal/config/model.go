package config

// Model is the unified representation of every part declared in the loaded
// definition files.
type Model struct {
	Parts []*Part
}

// PartKind discriminates the root object a part declares.
type PartKind string

const (
	KindBase      PartKind = "base"
	KindBasePlate PartKind = "baseplate"
	KindBin       PartKind = "bin"
)

// Part is one declared part: a grid definition plus features and, for bins,
// height and compartments.
type Part struct {
	Kind PartKind
	Name string

	// GridX/GridY declare an equal rectangular grid; Cells an explicit
	// occupancy matrix. The two are mutually exclusive.
	GridX, GridY int
	Cells        [][]bool

	Features []*Feature

	// Bin fields.
	HeightMM     float64
	HeightUnits  int
	Lip          bool
	Compartments *Compartments

	// Baseplate fields.
	PlateBlock  string
	PlateBottom float64
}

// Feature is one declared feature with its optional numeric overrides; zero
// values mean the standard dimensions.
type Feature struct {
	Kind     string
	Location string

	Radius     float64
	Depth      float64
	SinkRadius float64
	SinkAngle  float64
	BoreRadius float64
	BoreDepth  float64
	Offset     float64
	NX, NY     int
}

// Compartments declares the subdivision of a bin's top face.
type Compartments struct {
	DivX, DivY int
	Cells      [][]int
	List       []*Compartment

	InnerWall float64
	OuterWall float64
}

// Compartment declares one compartment's features.
type Compartment struct {
	Label *Label
	Scoop *Scoop
}

// Label declares a label shelf; a zero angle means the standard angle.
type Label struct {
	Angle float64
}

// Scoop declares a scoop ramp; zero values mean the standard dimensions.
type Scoop struct {
	Radius         float64
	WallCorrection float64
}
