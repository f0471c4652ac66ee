package autosales

import (
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Parse reads the automobile sales CSV. Columns not listed in RequiredColumns are ignored;
// a missing required column or an unparsable Year/Recession cell is an error.
func Parse(r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			ColYear:                   series.Int,
			ColMonth:                  series.String,
			ColVehicleType:            series.String,
			ColAutomobileSales:        series.Float,
			ColAdvertisingExpenditure: series.Float,
			ColRecession:              series.Int,
			ColUnemploymentRate:       series.Float,
		}),
	)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "failed to read autosales csv")
	}

	if missing := lo.Without(RequiredColumns, df.Names()...); len(missing) > 0 {
		return nil, errors.Errorf("autosales csv is missing required columns: %s", strings.Join(missing, ", "))
	}

	years, err := df.Col(ColYear).Int()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse column %s", ColYear)
	}
	recession, err := df.Col(ColRecession).Int()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse column %s", ColRecession)
	}
	months := df.Col(ColMonth).Records()
	vehicleTypes := df.Col(ColVehicleType).Records()
	sales := df.Col(ColAutomobileSales).Float()
	expenditure := df.Col(ColAdvertisingExpenditure).Float()
	unemployment := df.Col(ColUnemploymentRate).Float()

	rows := make([]Record, df.Nrow())
	for i := range rows {
		rows[i] = Record{
			Year:                   years[i],
			Month:                  strings.TrimSpace(months[i]),
			VehicleType:            strings.TrimSpace(vehicleTypes[i]),
			AutomobileSales:        sales[i],
			AdvertisingExpenditure: expenditure[i],
			Recession:              recession[i] == 1,
			UnemploymentRate:       unemployment[i],
		}
	}

	return &Table{rows: rows}, nil
}
