// Package rank sorts scored regions by a named metric and slices
// top/bottom-N listings.
package rank

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/regiondev/internal/model"
)

// Entry is one row of a ranking: the region and the value of the ranked
// metric.
type Entry struct {
	Region model.ScoredRegion
	Value  float64
}

// keyFuncs maps ranking key names to accessors.
var keyFuncs = map[string]func(model.ScoredRegion) float64{
	"development_model": func(r model.ScoredRegion) float64 { return r.Scores.DevelopmentModel },
	"material":          func(r model.ScoredRegion) float64 { return r.Scores.Material },
	"quality":           func(r model.ScoredRegion) float64 { return r.Scores.Quality },
	"subjectivity":      func(r model.ScoredRegion) float64 { return r.Scores.Subjectivity },
	"population":        func(r model.ScoredRegion) float64 { return r.Population },
	"income_per_capita": func(r model.ScoredRegion) float64 { return r.IncomePerCapita },
	"mortality_rate":    func(r model.ScoredRegion) float64 { return r.MortalityRate },
	"life_expectancy":   func(r model.ScoredRegion) float64 { return r.LifeExpectancy },
	"income":            func(r model.ScoredRegion) float64 { return r.Income },
	"jobs":              func(r model.ScoredRegion) float64 { return r.Jobs },
	"housing":           func(r model.ScoredRegion) float64 { return r.Housing },
	"health":            func(r model.ScoredRegion) float64 { return r.Health },
	"education":         func(r model.ScoredRegion) float64 { return r.Education },
	"environment":       func(r model.ScoredRegion) float64 { return r.Environment },
	"safety":            func(r model.ScoredRegion) float64 { return r.Safety },
	"civic_engagement":  func(r model.ScoredRegion) float64 { return r.CivicEngagement },
	"accessibility":     func(r model.ScoredRegion) float64 { return r.Accessibility },
	"community":         func(r model.ScoredRegion) float64 { return r.Community },
	"life_satisfaction": func(r model.ScoredRegion) float64 { return r.LifeSatisfaction },
}

// Keys returns the valid ranking key names, sorted.
func Keys() []string {
	keys := make([]string, 0, len(keyFuncs))
	for k := range keyFuncs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Rank returns the first n entries of the table sorted by key. The sort
// is stable: equal keys keep input order. If n exceeds the table size,
// the whole table is returned.
func Rank(scored *model.ScoredTable, key string, desc bool, n int) ([]Entry, error) {
	f, ok := keyFuncs[key]
	if !ok {
		return nil, eris.Errorf("rank: unknown key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	if n < 0 {
		return nil, eris.Errorf("rank: n must be >= 0, got %d", n)
	}

	entries := make([]Entry, 0, scored.Len())
	for _, r := range scored.Regions {
		entries = append(entries, Entry{Region: r, Value: f(r)})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if desc {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Value < entries[j].Value
	})

	if n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

// Top returns the n highest-valued regions for key.
func Top(scored *model.ScoredTable, key string, n int) ([]Entry, error) {
	return Rank(scored, key, true, n)
}

// Bottom returns the n lowest-valued regions for key.
func Bottom(scored *model.ScoredTable, key string, n int) ([]Entry, error) {
	return Rank(scored, key, false, n)
}
