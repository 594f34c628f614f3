// Package pca projects regions onto orthogonal variance-maximizing axes
// via correlation-matrix principal component analysis: standardize each
// indicator column, eigendecompose the correlation matrix, and project
// the standardized rows onto the components in descending-eigenvalue
// order.
package pca

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrDegenerate marks input the decomposition cannot accept: a constant
// column, or a matrix too small to decompose.
var ErrDegenerate = eris.New("degenerate input")

// Result holds the full decomposition. Components are ordered by
// descending eigenvalue; variance percentages sum to 100 over all
// components.
type Result struct {
	VarNames []string

	// Eigenvalues of the correlation matrix, descending.
	Eigenvalues []float64
	// VarianceExplained[c] is the percent of total variance carried by
	// component c.
	VarianceExplained []float64
	// RetainedTwo is the variance percentage retained by the first two
	// components, the figure reported as retained information.
	RetainedTwo float64

	// Loadings[j][c] is the correlation of variable j with component c
	// (eigenvector entry scaled by sqrt eigenvalue).
	Loadings [][]float64
	// Coordinates[i][c] is region i's coordinate on component c.
	Coordinates [][]float64
}

// Components returns the number of components (equal to the number of
// input variables).
func (r *Result) Components() int { return len(r.Eigenvalues) }

// PC2 returns region i's coordinates on the first two components.
func (r *Result) PC2(i int) (float64, float64) {
	return r.Coordinates[i][0], r.Coordinates[i][1]
}

// Run decomposes the regions-by-variables matrix. Every column must have
// nonzero variance; a constant column is rejected before standardization
// rather than dividing by zero.
func Run(rows [][]float64, varNames []string) (*Result, error) {
	n := len(rows)
	p := len(varNames)
	if n < 2 {
		return nil, eris.Wrapf(ErrDegenerate, "pca: need at least 2 rows, got %d", n)
	}
	if p < 2 {
		return nil, eris.Wrapf(ErrDegenerate, "pca: need at least 2 variables, got %d", p)
	}
	for i, row := range rows {
		if len(row) != p {
			return nil, eris.Errorf("pca: row %d has %d values, want %d", i, len(row), p)
		}
	}

	standardized, err := standardize(rows, varNames)
	if err != nil {
		return nil, err
	}

	corr := mat.NewSymDense(p, nil)
	stat.CorrelationMatrix(corr, standardized, nil)

	var eig mat.EigenSym
	if !eig.Factorize(corr, true) {
		return nil, eris.New("pca: eigendecomposition failed")
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// EigenSym returns ascending eigenvalues; reorder descending, keeping
	// equal eigenvalues in their solver order.
	order := make([]int, p)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	eigenvalues := make([]float64, p)
	ordered := mat.NewDense(p, p, nil)
	for c, src := range order {
		v := values[src]
		if v < 0 {
			// Rounding can push a zero eigenvalue slightly negative.
			v = 0
		}
		eigenvalues[c] = v
		for j := 0; j < p; j++ {
			ordered.Set(j, c, vectors.At(j, src))
		}
	}
	normalizeSigns(ordered)

	total := 0.0
	for _, v := range eigenvalues {
		total += v
	}
	variance := make([]float64, p)
	for c, v := range eigenvalues {
		variance[c] = v / total * 100
	}

	var proj mat.Dense
	proj.Mul(standardized, ordered)

	res := &Result{
		VarNames:          append([]string(nil), varNames...),
		Eigenvalues:       eigenvalues,
		VarianceExplained: variance,
		RetainedTwo:       variance[0] + variance[1],
		Loadings:          make([][]float64, p),
		Coordinates:       make([][]float64, n),
	}
	for j := 0; j < p; j++ {
		res.Loadings[j] = make([]float64, p)
		for c := 0; c < p; c++ {
			res.Loadings[j][c] = ordered.At(j, c) * math.Sqrt(eigenvalues[c])
		}
	}
	for i := 0; i < n; i++ {
		res.Coordinates[i] = make([]float64, p)
		for c := 0; c < p; c++ {
			res.Coordinates[i][c] = proj.At(i, c)
		}
	}

	zap.L().Debug("pca: decomposition complete",
		zap.Int("rows", n),
		zap.Int("variables", p),
		zap.Float64("retained_two_pct", res.RetainedTwo),
	)
	return res, nil
}

// standardize centers each column to zero mean and scales to unit
// variance, rejecting constant columns.
func standardize(rows [][]float64, varNames []string) (*mat.Dense, error) {
	n := len(rows)
	p := len(varNames)

	col := make([]float64, n)
	out := mat.NewDense(n, p, nil)
	for j := 0; j < p; j++ {
		for i := 0; i < n; i++ {
			col[i] = rows[i][j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			return nil, eris.Wrapf(ErrDegenerate, "pca: column %q has zero variance", varNames[j])
		}
		for i := 0; i < n; i++ {
			out.Set(i, j, (col[i]-mean)/std)
		}
	}
	return out, nil
}

// normalizeSigns flips each eigenvector so its largest-magnitude entry is
// positive. The decomposition is sign-ambiguous; fixing the convention
// keeps coordinates and loadings identical across runs.
func normalizeSigns(vectors *mat.Dense) {
	p, c := vectors.Dims()
	for k := 0; k < c; k++ {
		maxAbs, sign := 0.0, 1.0
		for j := 0; j < p; j++ {
			if a := math.Abs(vectors.At(j, k)); a > maxAbs {
				maxAbs = a
				if vectors.At(j, k) < 0 {
					sign = -1
				} else {
					sign = 1
				}
			}
		}
		if sign < 0 {
			for j := 0; j < p; j++ {
				vectors.Set(j, k, -vectors.At(j, k))
			}
		}
	}
}
