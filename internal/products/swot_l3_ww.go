package products

import (
	"strings"

	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/resolve"
)

// NewSwotL3LRWindWave returns the SWOT KaRIn L3 wind and wave product. The
// Light subset is left out of the file names, the Extended one is spelled out.
// Folders follow the L3 SSH layouts.
func NewSwotL3LRWindWave() *database.Product {
	f := newSwotFields()
	version := NewSemVerField("version")
	subset := field.NewEnum("subset", productSubsets, field.WithDefault("Light"), field.WithDescription(
		"Subset of the wind and wave product. The Light subset holds the main variables, "+
			"the Extended subset adds the spectra."))
	f.subset = subset

	file := convention.MustNew(
		`SWOT_L3_LR_WIND_WAVE_(?P<subset>Extended_)?(?P<cycle_number>\d{3})_(?P<pass_number>\d{3})_`+
			`(?P<time>\d{8}T\d{6}_\d{8}T\d{6})_v(?P<version>\d+\.\d+(?:\.\d+)?)\.nc`,
		[]field.Field{f.cycleNumber, f.passNumber, f.time, newOptionalLabelField(subset), version},
		"SWOT_L3_LR_WIND_WAVE_{subset}{cycle_number}_{pass_number}_{time}_v{version}.nc",
	)

	return &database.Product{
		Name:        SwotL3LRWindWave,
		Description: "SWOT KaRIn low rate wind speed and significant wave height, level 3",
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

// optionalLabelField reads an enum label that file names omit when it is the
// default one. Present labels are followed by an underscore.
type optionalLabelField struct {
	*field.Enum
}

func newOptionalLabelField(enum *field.Enum) optionalLabelField {
	return optionalLabelField{Enum: enum}
}

func (f optionalLabelField) Decode(raw string) (any, error) {
	return f.Enum.Decode(strings.TrimSuffix(raw, "_"))
}

func (f optionalLabelField) Encode(value any) (string, error) {
	if def, ok := f.Default(); ok && value == def {
		return "", nil
	}

	text, err := f.Enum.Encode(value)
	if err != nil {
		return "", err
	}

	return text + "_", nil
}
