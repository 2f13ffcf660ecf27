package products

import (
	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/layout"
	"github.com/fcollections/fcollections/internal/resolve"
)

// NewSwotL2LRSSH returns the SWOT KaRIn L2 LR SSH product, laid out as
// <crid>/<subset>/cycle_<cycle>/<file>.
func NewSwotL2LRSSH() *database.Product {
	f := newSwotFields()
	version := NewL2VersionField("version")

	file := convention.MustNew(
		`SWOT_(?P<level>L[1-4][AB]?)_LR_SSH_(?P<subset>[A-Za-z]+)_(?P<cycle_number>\d{3})_(?P<pass_number>\d{3})_`+
			`(?P<time>\d{8}T\d{6}_\d{8}T\d{6})_(?P<version>P[IG][A-Z]\d_\d{2})\.nc`,
		[]field.Field{f.cycleNumber, f.passNumber, f.time, f.level, f.subset, version},
		"SWOT_{level}_LR_SSH_{subset}_{cycle_number}_{pass_number}_{time}_{version}.nc",
	)

	crid := convention.MustNew(`(?P<version>P[IG][A-Z]\d)`, []field.Field{version.CRIDOnly()}, "{version}")

	return &database.Product{
		Name:        SwotL2LRSSH,
		Description: "SWOT KaRIn low rate sea surface height, level 2",
		Convention:  file,
		Layouts: []*layout.Layout{
			layout.MustNew(crid, f.subsetFolder(), f.cycleFolder(), file).Named("aviso"),
		},
		Unmixer: &resolve.SubsetsUnmixer{PartitionKeys: []string{"level", "subset"}},
		// A subset holds several versions of the same half orbit.
		Deduplicator: &resolve.Deduplicator{
			Unique:       []string{"cycle_number", "pass_number"},
			AutoPickLast: []string{"version"},
		},
		SortKeys:  []string{"time"},
		TimeField: "time",
	}
}
