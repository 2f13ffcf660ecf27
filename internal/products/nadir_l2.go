package products

import (
	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/layout"
)

const l2NadirTimeLayout = "20060102_150405"

// nadirDataTypes are the SWOT nadir altimeter timelinesses: interim (IPN) and
// final (GPN) geophysical data records.
var nadirDataTypes = []string{"GPN", "IPN"}

// NewL2Nadir returns the SWOT nadir altimeter L2 product. Files are stored flat
// or under cycle_<cycle> folders.
func NewL2Nadir() *database.Product {
	f := newSwotFields()
	f.time = field.NewPeriod("time", l2NadirTimeLayout, field.WithDescription("Period covered by the file."))
	dataType := field.NewEnum("data_type", nadirDataTypes, field.WithDescription(
		"Timeliness of the nadir geophysical data record: GPN for the final GDR, IPN for the interim IGDR."))

	file := convention.MustNew(
		`SWOT_(?P<data_type>GPN|IPN)_2PfP(?P<cycle_number>\d{3})_(?P<pass_number>\d{3})_`+
			`(?P<time>\d{8}_\d{6}_\d{8}_\d{6})\.nc`,
		[]field.Field{dataType, f.cycleNumber, f.passNumber, f.time},
		"SWOT_{data_type}_2PfP{cycle_number}_{pass_number}_{time}.nc",
	)

	return &database.Product{
		Name:        L2Nadir,
		Description: "SWOT nadir altimeter sea surface height, level 2",
		Convention:  file,
		Layouts: []*layout.Layout{
			layout.MustNew(f.cycleFolder(), file).Named("cycles"),
			layout.MustNew(file).Named("flat"),
		},
		SortKeys:  []string{"time"},
		TimeField: "time",
	}
}
