package products

import (
	"time"

	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/layout"
)

// swotPhases are the SWOT mission phases naming the folders of the L4 maps
// merging KaRIn data.
var swotPhases = []string{"calval", "science"}

// NewGriddedSLA returns the DUACS L4 gridded sea level anomaly product. Daily
// maps are named after their day, sub daily ones after their first hour.
func NewGriddedSLA() *database.Product {
	delay := field.NewEnum("delay", delays, field.WithDescription("Delay.")).WithCase(field.CaseLower)
	area := field.NewString("area", field.WithDescription("Geographical area of the map, e.g. global or europe."))
	daily := field.NewPeriodDelta("time", nadirDateLayout, 24*time.Hour, field.WithDescription("Period covered by the file.")).
		WithAlternateLayouts("20060102T15")
	production := field.NewDateTime("production_date", []string{nadirDateLayout}, field.WithDescription(
		"Production date of a given file. The same map is regenerated multiple times with updated inputs."))

	file := convention.MustNew(
		`(?P<delay>[a-z]+)_(?P<area>[a-z]+)_allsat_phy_l4_(?P<time>\d{8}(?:T\d{2})?)_(?P<production_date>\d{8})\.nc`,
		[]field.Field{delay, area, daily, production},
		"{delay}_{area}_allsat_phy_l4_{time}_{production_date}.nc",
	)

	version := convention.MustNew(`v(?P<version>[^/]+)`, []field.Field{field.NewString("version", field.WithDescription(
		"Version of the mapping experiment."))}, "v{version}")
	method := convention.MustNew(`(?P<method>4dvarnet|4dvarqg|miost)`, []field.Field{field.NewString("method", field.WithDescription(
		"Mapping method: 4dvarnet, 4dvarqg or miost."))}, "{method}")
	phase := convention.MustNew(`(?P<phase>[a-z]+)`, []field.Field{field.NewEnum("phase", swotPhases, field.WithDescription(
		"SWOT mission phase covered by the maps."))}, "{phase}")

	return &database.Product{
		Name:        GriddedSLA,
		Description: "DUACS multi mission gridded sea level anomalies, level 4",
		Convention:  file,
		Layouts: []*layout.Layout{
			layout.MustNew(version, method, phase, file).Named("aviso_l4_swot"),
			layout.MustNew(file).Named("flat"),
		},
		SortKeys:  []string{"time"},
		TimeField: "time",
	}
}
