package energy

import (
	"io"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Parse reads the household energy CSV. Rows whose DateTime does not parse are dropped;
// unparsable measurements become NaN.
func Parse(r io.Reader) (*Table, error) {
	return ParseSample(r, 1, 0)
}

// ParseSample is Parse over a seeded sample of the raw CSV rows. Sampling happens before
// rows with a bad DateTime are dropped, so the table may hold fewer than round(fraction*n)
// readings.
func ParseSample(r io.Reader, fraction float64, seed int64) (*Table, error) {
	types := map[string]series.Type{ColDateTime: series.String}
	for _, c := range MeasureColumns {
		types[c] = series.Float
	}
	df := dataframe.ReadCSV(r, dataframe.HasHeader(true), dataframe.WithTypes(types))
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "failed to read energy csv")
	}
	if missing := lo.Without(RequiredColumns, df.Names()...); len(missing) > 0 {
		return nil, errors.Errorf("energy csv is missing required columns: %s", strings.Join(missing, ", "))
	}

	times := df.Col(ColDateTime).Records()
	columns := lo.Map(MeasureColumns, func(c string, _ int) []float64 { return df.Col(c).Float() })

	rows := sampleIndices(df.Nrow(), fraction, seed)
	readings := make([]Reading, 0, len(rows))
	for _, i := range rows {
		ts, err := time.Parse(DateTimeLayout, strings.TrimSpace(times[i]))
		if err != nil {
			continue
		}
		reading := Reading{Time: ts}
		for j := range columns {
			reading.Values[j] = columns[j][i]
		}
		readings = append(readings, reading)
	}
	return &Table{readings: readings}, nil
}
