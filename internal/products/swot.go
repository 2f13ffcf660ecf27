package products

import (
	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/field"
)

const swotTimeLayout = "20060102T150405"

var (
	productLevels  = []string{"L1A", "L1B", "L2", "L3", "L4"}
	productSubsets = []string{"Basic", "Expert", "WindWave", "Unsmoothed", "Technical", "Light", "Extended"}
)

// swotFields are the fields shared by the SWOT LR products.
type swotFields struct {
	cycleNumber *field.Integer
	passNumber  *field.Integer
	time        *field.Period
	level       *field.Enum
	subset      *field.Enum
}

func newSwotFields() swotFields {
	return swotFields{
		cycleNumber: field.NewInteger("cycle_number", field.WithDescription(
			"Cycle number of the half orbit. A half orbit is identified using a cycle number and a pass number.")).WithWidth(3),
		passNumber: field.NewInteger("pass_number", field.WithDescription(
			"Pass number of the half orbit. A half orbit is identified using a cycle number and a pass number.")).WithWidth(3),
		time:  field.NewPeriod("time", swotTimeLayout, field.WithDescription("Period covered by the file.")),
		level: field.NewEnum("level", productLevels, field.WithDescription("Product level of the data.")),
		subset: field.NewEnum("subset", productSubsets, field.WithDescription(
			"Subset of the LR Karin products. The Basic, Expert and Technical subsets are defined on a reference grid, "+
				"whereas the Unsmoothed subset is defined on a different grid for each cycle.")),
	}
}

func (f swotFields) subsetFolder() *convention.Convention {
	return convention.MustNew(`(?P<subset>[A-Za-z]+)`, []field.Field{f.subset}, "{subset}")
}

func (f swotFields) cycleFolder() *convention.Convention {
	return convention.MustNew(`cycle_(?P<cycle_number>\d{3})`, []field.Field{f.cycleNumber}, "cycle_{cycle_number}")
}
