package pca

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRows is a small regions-by-indicators fixture with no special
// structure.
func fixedRows() [][]float64 {
	return [][]float64{
		{5.9, 6.4, 6.8, 6.5},
		{2.1, 3.7, 3.1, 4.0},
		{8.4, 7.3, 5.9, 7.1},
		{4.6, 5.2, 5.6, 5.7},
		{6.2, 6.3, 6.6, 6.4},
		{3.3, 4.3, 4.4, 4.9},
	}
}

func fixedNames() []string {
	return []string{"income", "jobs", "housing", "health"}
}

func TestRunVarianceSumsToHundred(t *testing.T) {
	res, err := Run(fixedRows(), fixedNames())
	require.NoError(t, err)

	sum := 0.0
	for _, v := range res.VarianceExplained {
		sum += v
	}
	assert.InDelta(t, 100.0, sum, 1e-6)
	assert.InDelta(t, res.VarianceExplained[0]+res.VarianceExplained[1], res.RetainedTwo, 1e-12)
}

func TestRunEigenvaluesDescending(t *testing.T) {
	res, err := Run(fixedRows(), fixedNames())
	require.NoError(t, err)

	for c := 1; c < res.Components(); c++ {
		assert.GreaterOrEqual(t, res.Eigenvalues[c-1], res.Eigenvalues[c])
	}
	for _, v := range res.Eigenvalues {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestRunDeterministic(t *testing.T) {
	first, err := Run(fixedRows(), fixedNames())
	require.NoError(t, err)
	second, err := Run(fixedRows(), fixedNames())
	require.NoError(t, err)

	assert.Equal(t, first.Eigenvalues, second.Eigenvalues)
	assert.Equal(t, first.Coordinates, second.Coordinates)
	assert.Equal(t, first.Loadings, second.Loadings)
}

// Two perfectly correlated columns collapse onto one component carrying
// all the variance.
func TestRunPerfectCorrelation(t *testing.T) {
	rows := [][]float64{
		{1, 2},
		{2, 4},
		{3, 6},
		{4, 8},
	}

	res, err := Run(rows, []string{"x", "double_x"})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, res.VarianceExplained[0], 1e-9)
	assert.InDelta(t, 2.0, res.Eigenvalues[0], 1e-9)
	assert.InDelta(t, 0.0, res.Eigenvalues[1], 1e-9)

	// Both variables load fully on the first component.
	assert.InDelta(t, 1.0, math.Abs(res.Loadings[0][0]), 1e-9)
	assert.InDelta(t, 1.0, math.Abs(res.Loadings[1][0]), 1e-9)
}

func TestRunRejectsConstantColumn(t *testing.T) {
	rows := [][]float64{
		{1, 7.0},
		{2, 7.0},
		{3, 7.0},
	}

	_, err := Run(rows, []string{"x", "flat"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrDegenerate))
	assert.Contains(t, err.Error(), `"flat"`)

	// No NaN/Inf escapes: the call fails outright instead.
	res, _ := Run(rows, []string{"x", "flat"})
	assert.Nil(t, res)
}

func TestRunInputValidation(t *testing.T) {
	tests := []struct {
		name  string
		rows  [][]float64
		names []string
	}{
		{"one row", [][]float64{{1, 2}}, []string{"a", "b"}},
		{"one variable", [][]float64{{1}, {2}}, []string{"a"}},
		{"ragged row", [][]float64{{1, 2}, {3}}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.rows, tt.names)
			require.Error(t, err)
		})
	}
}

func TestRunLoadingsBounded(t *testing.T) {
	res, err := Run(fixedRows(), fixedNames())
	require.NoError(t, err)

	// A loading is a correlation with a standardized variable, and per
	// variable the squared loadings across all components sum to 1.
	for j := range res.VarNames {
		sumSq := 0.0
		for c := 0; c < res.Components(); c++ {
			assert.LessOrEqual(t, math.Abs(res.Loadings[j][c]), 1.0+1e-9)
			sumSq += res.Loadings[j][c] * res.Loadings[j][c]
		}
		assert.InDelta(t, 1.0, sumSq, 1e-6)
	}
}

func TestPC2(t *testing.T) {
	res, err := Run(fixedRows(), fixedNames())
	require.NoError(t, err)

	x, y := res.PC2(0)
	assert.Equal(t, res.Coordinates[0][0], x)
	assert.Equal(t, res.Coordinates[0][1], y)
}
