package products

import (
	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/layout"
	"github.com/fcollections/fcollections/internal/resolve"
)

// Temporalities of the SWOT L3 products: calibrated on the reprocessed (MY) or
// the near real time (NRT) nadir data.
var temporalities = []string{"REPROC", "FORWARD"}

// NewSwotL3LRSSH returns the SWOT KaRIn L3 LR SSH product. Its folders are
// v<version>/<subset>/[<temporality>/]cycle_<cycle>/<file>, the temporality
// level being introduced with the version 3 layout.
func NewSwotL3LRSSH() *database.Product {
	f := newSwotFields()
	version := NewSemVerField("version")

	file := convention.MustNew(
		`SWOT_(?P<level>L[1-4][AB]?)_LR_SSH_(?P<subset>[A-Za-z]+)_(?P<cycle_number>\d{3})_(?P<pass_number>\d{3})_`+
			`(?P<time>\d{8}T\d{6}_\d{8}T\d{6})_v(?P<version>\d+\.\d+(?:\.\d+)?)\.nc`,
		[]field.Field{f.cycleNumber, f.passNumber, f.time, f.level, f.subset, version},
		"SWOT_{level}_LR_SSH_{subset}_{cycle_number}_{pass_number}_{time}_v{version}.nc",
	)

	return &database.Product{
		Name:        SwotL3LRSSH,
		Description: "SWOT KaRIn low rate sea surface height, level 3",
		Convention:  file,
		Layouts:     f.avisoL3Layouts(version, file),
		Unmixer: &resolve.SubsetsUnmixer{
			PartitionKeys: []string{"version", "subset"},
			AutoPickLast:  []string{"version"},
		},
		SortKeys:  []string{"time"},
		TimeField: "time",
	}
}

// avisoL3Layouts returns the AVISO layouts shared by the SWOT L3 products, the
// newest first.
func (f swotFields) avisoL3Layouts(version *SemVerField, file *convention.Convention) []*layout.Layout {
	versionFolder := convention.MustNew(`v(?P<version>\d+_\d+(?:_\d+)?)`, []field.Field{version.WithSeparator("_")}, "v{version}")
	temporality := field.NewEnum("temporality", temporalities, field.WithDescription(
		"Temporality of the product: reprocessed data calibrated on the multi-year nadir dataset, "+
			"or forward data calibrated on the near real time nadir dataset.")).WithCase(field.CaseLower)
	temporalityFolder := convention.MustNew(`(?P<temporality>reproc|forward)`, []field.Field{temporality}, "{temporality}")

	return []*layout.Layout{
		layout.MustNew(versionFolder, f.subsetFolder(), temporalityFolder, f.cycleFolder(), file).Named("aviso_v3"),
		layout.MustNew(versionFolder, f.subsetFolder(), f.cycleFolder(), file).Named("aviso_v2"),
	}
}
