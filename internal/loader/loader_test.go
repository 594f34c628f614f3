package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "region,population,income_per_capita,mortality_rate,life_expectancy," +
	"income,jobs,housing,health,education,environment,safety,civic_engagement," +
	"accessibility,community,life_satisfaction"

func writeCSV(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regions.csv")
	content := strings.Join(append([]string{header}, rows...), "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t,
		"Aguascalientes,1312544,9920,4.9,75.6,5.9,6.4,6.8,6.5,5.8,6.1,6.9,4.2,6.3,6.0,7.1",
		"Chiapas,5217908,3420,5.9,72.9,1.8,3.4,2.9,3.8,2.6,6.8,6.4,5.3,2.4,6.5,5.8",
	)

	table, err := Load(path, Options{})
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	r := table.Regions[0]
	assert.Equal(t, "Aguascalientes", r.Name)
	assert.Equal(t, 1312544.0, r.Population)
	assert.Equal(t, 9920.0, r.IncomePerCapita)
	assert.Equal(t, 5.9, r.Income)
	assert.Equal(t, 7.1, r.LifeSatisfaction)

	// Source order is preserved.
	assert.Equal(t, "Chiapas", table.Regions[1].Name)
	assert.NotNil(t, table.Find("Chiapas"))
	assert.Nil(t, table.Find("Oaxaca"))
}

func TestLoadMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.csv")
	bad := strings.Replace(header, "life_satisfaction", "happiness", 1)
	require.NoError(t, os.WriteFile(path, []byte(bad+"\nA,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1\n"), 0o644))

	_, err := Load(path, Options{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), `"life_satisfaction"`)
}

func TestLoadDataQualityErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{
			"missing value",
			"Colima,711235,9150,5.0,75.4,5.7,,6.1,6.2,5.7,6.3,5.5,5.1,5.9,6.2,7.0",
			"missing value",
		},
		{
			"non-numeric",
			"Colima,711235,9150,5.0,75.4,high,6.2,6.1,6.2,5.7,6.3,5.5,5.1,5.9,6.2,7.0",
			"not a number",
		},
		{
			"non-finite",
			"Colima,711235,9150,5.0,75.4,NaN,6.2,6.1,6.2,5.7,6.3,5.5,5.1,5.9,6.2,7.0",
			"non-finite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, tt.row)
			_, err := Load(path, Options{})
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrDataQuality))
			assert.Contains(t, err.Error(), `"Colima"`)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDuplicateRegion(t *testing.T) {
	row := "Sonora,2850330,10470,5.2,75.0,6.2,6.4,6.1,6.2,5.8,5.7,4.9,4.0,5.9,5.5,7.1"
	path := writeCSV(t, row, row)

	_, err := Load(path, Options{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), `"Sonora"`)
}

func TestLoadEmptyTable(t *testing.T) {
	path := writeCSV(t)

	_, err := Load(path, Options{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrSchema))
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	_, err := Load(path, Options{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), ".json")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), Options{})
	require.Error(t, err)
}

func TestLoadBundledDataset(t *testing.T) {
	table, err := Load(filepath.Join("..", "..", "data", "mexico_regions.csv"), Options{})
	require.NoError(t, err)

	assert.Equal(t, 32, table.Len())
	df := table.Find("Distrito Federal")
	require.NotNil(t, df)
	assert.Greater(t, df.IncomePerCapita, 0.0)
	for _, r := range table.Regions {
		for _, v := range r.IndicatorValues() {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 10.0)
		}
	}
}
