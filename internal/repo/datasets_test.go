package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/autodash/internal/app/appconfig"
	"exusiai.dev/autodash/internal/infra"
)

const (
	autosalesCSV = "Year,Month,Recession,Automobile_Sales,Advertising_Expenditure,Vehicle_Type,unemployment_rate\n" +
		"2008,Jan,1,100,10,Sports,5.4\n" +
		"2009,Feb,1,200,20,Sports,6.0\n"
	energyCSV = "DateTime,Global_active_power,Global_reactive_power,Voltage,Global_intensity,Sub_metering_1,Sub_metering_2,Sub_metering_3\n" +
		"2007-01-01 00:00:00,1.0,0.1,240,4.2,0,1,17\n" +
		"2007-01-01 00:01:00,1.2,0.1,241,5.0,0,1,17\n" +
		"2007-01-02 00:00:00,2.0,0.2,239,8.4,1,0,18\n" +
		"2007-01-02 00:01:00,2.2,0.2,238,9.2,1,0,18\n"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDatasets(t *testing.T) {
	dir := t.TempDir()
	conf := &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		AutosalesSource:      writeFile(t, dir, "autosales.csv", autosalesCSV),
		EnergySource:         writeFile(t, dir, "energy.csv", energyCSV),
		EnergySampleFraction: 0.5,
	}}

	d, err := LoadDatasets(context.Background(), conf, infra.NewSource(conf))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Autosales.Len())
	assert.Equal(t, 2, d.Energy.Len())
}

func TestLoadDatasetsWithoutEnergy(t *testing.T) {
	conf := &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		AutosalesSource:      writeFile(t, t.TempDir(), "autosales.csv", autosalesCSV),
		EnergySampleFraction: 1,
	}}

	d, err := LoadDatasets(context.Background(), conf, infra.NewSource(conf))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Autosales.Len())
	assert.Nil(t, d.Energy)
}

func TestLoadDatasetsFailures(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]appconfig.ConfigSpec{
		"missing autosales": {
			AutosalesSource: filepath.Join(dir, "nope.csv"),
		},
		"malformed autosales": {
			AutosalesSource: writeFile(t, dir, "bad.csv", "Year,Month\n2008,Jan\n"),
		},
		"missing energy": {
			AutosalesSource: writeFile(t, dir, "ok.csv", autosalesCSV),
			EnergySource:    filepath.Join(dir, "nope.csv"),
		},
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			conf := &appconfig.Config{ConfigSpec: spec}
			_, err := LoadDatasets(context.Background(), conf, infra.NewSource(conf))
			assert.Error(t, err)
		})
	}
}
