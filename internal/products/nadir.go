package products

import (
	"strings"
	"time"

	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/layout"
	"github.com/fcollections/fcollections/internal/resolve"
)

const nadirDateLayout = "20060102"

// delays are the Copernicus Marine timeliness labels.
var delays = []string{"NRT", "DT", "MY", "MYINT"}

// NewL3Nadir returns the Copernicus Marine L3 along-track nadir SSH product.
// Files are either flat or laid out as <dataset id>/<year>/<month>/<file>.
func NewL3Nadir() *database.Product {
	delay := field.NewEnum("delay", delays, field.WithDescription("Delay.")).WithCase(field.CaseLower)
	mission := field.NewString("mission", field.WithDescription("Altimetry mission in the file, e.g. j3g or s6a_hr."))
	level := field.NewEnum("product_level", productLevels, field.WithDescription("Product level of the data.")).
		WithCase(field.CaseLower)
	resolution := field.NewInteger("resolution", field.WithDefault(1), field.WithDescription(
		"Data resolution in Hz. Nadir products may be sampled at 1Hz, 5Hz or 20Hz depending on the level and dataset."))
	daily := field.NewPeriodDelta("time", nadirDateLayout, 24*time.Hour, field.WithDescription("Period covered by the file."))
	production := field.NewDateTime("production_date", []string{nadirDateLayout}, field.WithDescription(
		"Production date of a given file. The same granule is regenerated multiple times with updated corrections. "+
			"Hence there can be multiple files for the same period, but with a different production date."))

	file := convention.MustNew(
		`(?P<delay>[a-z]+)_global_(?P<mission>[a-z0-9_]+)_(?:hr_)?phy_(?:aux_)?(?P<product_level>l[1-4][ab]?)_`+
			`(?:(?P<resolution>\d+)hz_)?(?P<time>\d{8})_(?P<production_date>\d{8})\.nc`,
		[]field.Field{delay, mission, level, resolution, daily, production},
		"{delay}_global_{mission}_phy_{product_level}_{resolution}hz_{time}_{production_date}.nc",
	)

	datasetID := convention.MustNew(
		`cmems_obs-sl_glo_phy-ssh_(?:nrt|my)_(?P<mission>[a-z0-9-]+)-l3-duacs_PT[0-9.]+S(?:-i)?(?:_\d{6})?`,
		[]field.Field{newMissionFolderField(mission)},
		"",
	)
	year := convention.MustNew(`(?P<year>\d{4})`, []field.Field{field.NewInteger("year")}, "{year}")
	month := convention.MustNew(`(?P<month>\d{2})`, []field.Field{field.NewInteger("month").WithWidth(2)}, "{month}")

	return &database.Product{
		Name:        L3Nadir,
		Description: "Copernicus Marine along-track nadir sea surface height, level 3",
		Convention:  file,
		Layouts: []*layout.Layout{
			layout.MustNew(datasetID, year, month, file).Named("cmems"),
			layout.MustNew(file).Named("flat"),
		},
		Unmixer:      &resolve.SubsetsUnmixer{PartitionKeys: []string{"mission", "resolution"}},
		Deduplicator: &resolve.Deduplicator{Unique: []string{"time"}, AutoPickLast: []string{"production_date"}},
		SortKeys:     []string{"time"},
		TimeField:    "time",
	}
}

// missionFolderField reads missions spelled with dashes in dataset ids
// (s6a-hr) and underscores in file names (s6a_hr).
type missionFolderField struct {
	*field.String
}

func newMissionFolderField(mission *field.String) missionFolderField {
	return missionFolderField{String: mission}
}

func (f missionFolderField) Decode(raw string) (any, error) {
	return f.String.Decode(strings.ReplaceAll(raw, "-", "_"))
}

func (f missionFolderField) Encode(value any) (string, error) {
	text, err := f.String.Encode(value)
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(text, "_", "-"), nil
}
