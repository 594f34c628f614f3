// Package scorer derives the weighted composite development scores from
// the loaded regional table.
package scorer

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/regiondev/internal/config"
	"github.com/sells-group/regiondev/internal/model"
)

// weightTolerance bounds how far a weight group may drift from 1.0.
const weightTolerance = 1e-9

// Score computes the three sub-indices and the aggregate development
// score for every region and returns a new scored table. The input table
// is not modified. Indicators are assumed pre-scaled 0-10; no
// normalization is re-applied here.
func Score(table *model.Table, w config.WeightsConfig) (*model.ScoredTable, error) {
	if err := ValidateWeights(w); err != nil {
		return nil, err
	}
	if table == nil || table.Len() == 0 {
		return nil, eris.New("scorer: empty table")
	}

	scored := &model.ScoredTable{Regions: make([]model.ScoredRegion, 0, table.Len())}
	for _, r := range table.Regions {
		for _, v := range r.IndicatorValues() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, eris.Errorf("scorer: region %q: non-finite indicator value", r.Name)
			}
		}

		s := model.Scores{
			Material: w.Material.Income*r.Income +
				w.Material.Jobs*r.Jobs +
				w.Material.Housing*r.Housing,
			Quality: w.Quality.Health*r.Health +
				w.Quality.Education*r.Education +
				w.Quality.Environment*r.Environment +
				w.Quality.Safety*r.Safety +
				w.Quality.Civic*r.CivicEngagement,
			Subjectivity: w.Subjectivity.Community*r.Community +
				w.Subjectivity.Satisfaction*r.LifeSatisfaction,
		}
		s.DevelopmentModel = w.Development.Material*s.Material +
			w.Development.Quality*s.Quality +
			w.Development.Subjectivity*s.Subjectivity

		scored.Regions = append(scored.Regions, model.ScoredRegion{Region: r, Scores: s})
	}

	zap.L().Debug("scorer: composite scores computed", zap.Int("regions", scored.Len()))
	return scored, nil
}

// DefaultWeights returns the fixed weighting of the development model.
// Each group sums to 1.0.
func DefaultWeights() config.WeightsConfig {
	return config.WeightsConfig{
		Material: config.MaterialWeights{
			Income:  0.45,
			Jobs:    0.45,
			Housing: 0.10,
		},
		Quality: config.QualityWeights{
			Health:      0.35,
			Education:   0.30,
			Environment: 0.25,
			Safety:      0.05,
			Civic:       0.05,
		},
		Subjectivity: config.SubjectivityWeights{
			Community:    0.30,
			Satisfaction: 0.70,
		},
		Development: config.DevelopmentWeights{
			Material:     0.40,
			Quality:      0.40,
			Subjectivity: 0.20,
		},
	}
}

// ValidateWeights checks that every weight is non-negative and that each
// group sums to exactly 1.0 within tolerance.
func ValidateWeights(w config.WeightsConfig) error {
	groups := []struct {
		name    string
		weights []float64
	}{
		{"material", []float64{w.Material.Income, w.Material.Jobs, w.Material.Housing}},
		{"quality", []float64{w.Quality.Health, w.Quality.Education, w.Quality.Environment, w.Quality.Safety, w.Quality.Civic}},
		{"subjectivity", []float64{w.Subjectivity.Community, w.Subjectivity.Satisfaction}},
		{"development", []float64{w.Development.Material, w.Development.Quality, w.Development.Subjectivity}},
	}

	for _, g := range groups {
		sum := 0.0
		for _, v := range g.weights {
			if v < 0 {
				return eris.Errorf("scorer: %s weights must be >= 0", g.name)
			}
			sum += v
		}
		if math.Abs(sum-1.0) > weightTolerance {
			return eris.Errorf("scorer: %s weights must sum to 1.0, got %.12f", g.name, sum)
		}
	}
	return nil
}
