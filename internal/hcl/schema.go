package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes all possible top-level blocks from any definition file.
type fileRoot struct {
	Bins       []*binBlock       `hcl:"bin,block"`
	Bases      []*baseBlock      `hcl:"base,block"`
	BasePlates []*baseplateBlock `hcl:"baseplate,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

type baseBlock struct {
	Name     string          `hcl:"name,label"`
	GridX    *int            `hcl:"grid_x,optional"`
	GridY    *int            `hcl:"grid_y,optional"`
	Cells    hcl.Expression  `hcl:"cells,optional"`
	Features []*featureBlock `hcl:"feature,block"`
}

type binBlock struct {
	Name         string             `hcl:"name,label"`
	GridX        *int               `hcl:"grid_x,optional"`
	GridY        *int               `hcl:"grid_y,optional"`
	Cells        hcl.Expression     `hcl:"cells,optional"`
	HeightMM     *float64           `hcl:"height_mm,optional"`
	HeightUnits  *int               `hcl:"height_units,optional"`
	Features     []*featureBlock    `hcl:"feature,block"`
	Compartments *compartmentsBlock `hcl:"compartments,block"`
	Lip          *lipBlock          `hcl:"lip,block"`
}

type baseplateBlock struct {
	Name     string          `hcl:"name,label"`
	GridX    *int            `hcl:"grid_x,optional"`
	GridY    *int            `hcl:"grid_y,optional"`
	Cells    hcl.Expression  `hcl:"cells,optional"`
	Block    *string         `hcl:"block,optional"`
	Bottom   *float64        `hcl:"bottom_height,optional"`
	Features []*featureBlock `hcl:"feature,block"`
}

type featureBlock struct {
	Kind     string  `hcl:"kind,label"`
	Location *string `hcl:"location,optional"`

	Radius     *float64 `hcl:"radius,optional"`
	Depth      *float64 `hcl:"depth,optional"`
	SinkRadius *float64 `hcl:"sink_radius,optional"`
	SinkAngle  *float64 `hcl:"sink_angle,optional"`
	BoreRadius *float64 `hcl:"bore_radius,optional"`
	BoreDepth  *float64 `hcl:"bore_depth,optional"`
	Offset     *float64 `hcl:"offset,optional"`
	NX         *int     `hcl:"nx,optional"`
	NY         *int     `hcl:"ny,optional"`
}

type compartmentsBlock struct {
	DivX         *int                `hcl:"div_x,optional"`
	DivY         *int                `hcl:"div_y,optional"`
	Cells        hcl.Expression      `hcl:"cells,optional"`
	InnerWall    *float64            `hcl:"inner_wall,optional"`
	OuterWall    *float64            `hcl:"outer_wall,optional"`
	Compartments []*compartmentBlock `hcl:"compartment,block"`
}

type compartmentBlock struct {
	Label *labelBlock `hcl:"label,block"`
	Scoop *scoopBlock `hcl:"scoop,block"`
}

type labelBlock struct {
	Angle *float64 `hcl:"angle,optional"`
}

type scoopBlock struct {
	Radius         *float64 `hcl:"radius,optional"`
	WallCorrection *float64 `hcl:"wall_correction,optional"`
}

type lipBlock struct{}
