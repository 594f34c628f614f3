// Package model defines the regional well-being records and the derived
// tables that flow between pipeline stages. Stages never mutate a table
// they received; each one returns a new structure.
package model

// Region is one row of the regional well-being table. The eleven indicator
// fields are pre-normalized to a 0-10 scale by the source data; the raw
// fields (income per capita, mortality, life expectancy) are kept for
// display and ranking only and never enter the composite model.
type Region struct {
	Name       string
	Population float64

	// Raw display fields.
	IncomePerCapita float64
	MortalityRate   float64
	LifeExpectancy  float64

	// Indicators, 0-10.
	Income           float64
	Jobs             float64
	Housing          float64
	Health           float64
	Education        float64
	Environment      float64
	Safety           float64
	CivicEngagement  float64
	Accessibility    float64
	Community        float64
	LifeSatisfaction float64
}

// IndicatorNames returns the indicator column order used everywhere a
// region is turned into a numeric vector (scoring, PCA, reports).
func IndicatorNames() []string {
	return []string{
		"income", "jobs", "housing", "health", "education", "environment",
		"safety", "civic_engagement", "accessibility", "community",
		"life_satisfaction",
	}
}

// IndicatorValues returns the region's indicators in IndicatorNames order.
func (r Region) IndicatorValues() []float64 {
	return []float64{
		r.Income, r.Jobs, r.Housing, r.Health, r.Education, r.Environment,
		r.Safety, r.CivicEngagement, r.Accessibility, r.Community,
		r.LifeSatisfaction,
	}
}

// Table is the loaded input table: exactly one record per region, in
// source order.
type Table struct {
	Regions []Region
}

// Len returns the number of regions.
func (t Table) Len() int { return len(t.Regions) }

// Find returns the region with the given name, or nil.
func (t Table) Find(name string) *Region {
	for i := range t.Regions {
		if t.Regions[i].Name == name {
			return &t.Regions[i]
		}
	}
	return nil
}

// IndicatorMatrix returns the regions-by-indicators matrix in
// IndicatorNames column order.
func (t Table) IndicatorMatrix() [][]float64 {
	rows := make([][]float64, len(t.Regions))
	for i, r := range t.Regions {
		rows[i] = r.IndicatorValues()
	}
	return rows
}

// Scores holds the derived composite scores for one region. Computed once
// by the scorer and read-only afterwards.
type Scores struct {
	Material         float64
	Quality          float64
	Subjectivity     float64
	DevelopmentModel float64
}

// ScoredRegion pairs a region with its composite scores.
type ScoredRegion struct {
	Region
	Scores Scores
}

// ScoredTable is the scorer's output: same regions, same order, plus
// composite scores.
type ScoredTable struct {
	Regions []ScoredRegion
}

// Len returns the number of scored regions.
func (t ScoredTable) Len() int { return len(t.Regions) }

// ClusteredRegion joins a scored region with its cluster label and its
// coordinates on the first two principal components.
type ClusteredRegion struct {
	ScoredRegion
	Label int
	PC1   float64
	PC2   float64
}
