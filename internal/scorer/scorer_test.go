package scorer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/regiondev/internal/config"
	"github.com/sells-group/regiondev/internal/model"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()

	assert.InDelta(t, 1.0, w.Material.Income+w.Material.Jobs+w.Material.Housing, 1e-12)
	assert.InDelta(t, 1.0, w.Quality.Health+w.Quality.Education+w.Quality.Environment+w.Quality.Safety+w.Quality.Civic, 1e-12)
	assert.InDelta(t, 1.0, w.Subjectivity.Community+w.Subjectivity.Satisfaction, 1e-12)
	assert.InDelta(t, 1.0, w.Development.Material+w.Development.Quality+w.Development.Subjectivity, 1e-12)

	require.NoError(t, ValidateWeights(w))
}

func TestValidateWeights(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.WeightsConfig)
		wantErr string
	}{
		{"defaults valid", func(w *config.WeightsConfig) {}, ""},
		{"material off by a little", func(w *config.WeightsConfig) {
			w.Material.Housing = 0.11
		}, "material weights must sum to 1.0"},
		{"negative quality weight", func(w *config.WeightsConfig) {
			w.Quality.Safety = -0.05
			w.Quality.Health = 0.45
		}, "quality weights must be >= 0"},
		{"development not normalized", func(w *config.WeightsConfig) {
			w.Development.Subjectivity = 0.3
		}, "development weights must sum to 1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.mutate(&w)
			err := ValidateWeights(w)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestScoreDevelopmentModelFormula(t *testing.T) {
	table := &model.Table{Regions: []model.Region{
		{
			Name:   "Queretaro",
			Income: 6.4, Jobs: 6.5, Housing: 6.5,
			Health: 6.6, Education: 6.1, Environment: 6.0, Safety: 6.3, CivicEngagement: 4.6,
			Community: 6.1, LifeSatisfaction: 7.3,
			Accessibility: 6.2,
		},
	}}

	scored, err := Score(table, DefaultWeights())
	require.NoError(t, err)
	require.Equal(t, 1, scored.Len())

	s := scored.Regions[0].Scores
	assert.InDelta(t, 0.45*6.4+0.45*6.5+0.10*6.5, s.Material, 1e-9)
	assert.InDelta(t, 0.35*6.6+0.30*6.1+0.25*6.0+0.05*6.3+0.05*4.6, s.Quality, 1e-9)
	assert.InDelta(t, 0.30*6.1+0.70*7.3, s.Subjectivity, 1e-9)
	assert.InDelta(t, 0.4*s.Material+0.4*s.Quality+0.2*s.Subjectivity, s.DevelopmentModel, 1e-9)
}

// A region with every indicator at 10 must score 10 across the board:
// each weight group sums to 1, so no rescaling can occur.
func TestScorePreservesScale(t *testing.T) {
	full := model.Region{Name: "full"}
	full.Income, full.Jobs, full.Housing = 10, 10, 10
	full.Health, full.Education, full.Environment, full.Safety, full.CivicEngagement = 10, 10, 10, 10, 10
	full.Community, full.LifeSatisfaction = 10, 10
	full.Accessibility = 10

	scored, err := Score(&model.Table{Regions: []model.Region{full}}, DefaultWeights())
	require.NoError(t, err)

	s := scored.Regions[0].Scores
	assert.InDelta(t, 10.0, s.Material, 1e-9)
	assert.InDelta(t, 10.0, s.Quality, 1e-9)
	assert.InDelta(t, 10.0, s.Subjectivity, 1e-9)
	assert.InDelta(t, 10.0, s.DevelopmentModel, 1e-9)
}

func TestScoreSyntheticMaterial(t *testing.T) {
	regions := make([]model.Region, 3)
	values := []float64{10, 10, 0}
	for i, v := range values {
		regions[i] = model.Region{Name: string(rune('A' + i))}
		regions[i].Income, regions[i].Jobs, regions[i].Housing = v, v, v
	}

	scored, err := Score(&model.Table{Regions: regions}, DefaultWeights())
	require.NoError(t, err)

	for i, want := range []float64{10, 10, 0} {
		assert.InDelta(t, want, scored.Regions[i].Scores.Material, 1e-9)
	}
}

func TestScoreRejectsNonFinite(t *testing.T) {
	r := model.Region{Name: "broken"}
	r.Income = math.NaN()

	_, err := Score(&model.Table{Regions: []model.Region{r}}, DefaultWeights())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Contains(t, err.Error(), "non-finite")
}

func TestScoreEmptyTable(t *testing.T) {
	_, err := Score(&model.Table{}, DefaultWeights())
	require.Error(t, err)
}

func TestScoreDoesNotMutateInput(t *testing.T) {
	r := model.Region{Name: "A", Income: 5, Jobs: 5, Housing: 5}
	table := &model.Table{Regions: []model.Region{r}}

	_, err := Score(table, DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, r, table.Regions[0])
}
