// Package cluster partitions regions in reduced-coordinate space with
// Lloyd's-style k-means: seeded random restarts, nearest-centroid
// assignment, centroid recomputation until assignments stabilize, and
// the minimum within-cluster-sum-of-squares restart kept.
package cluster

import (
	"math"
	"math/rand"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrDegenerate marks clustering input that cannot be partitioned: k
// outside [1, number of points], or invalid iteration/restart counts.
var ErrDegenerate = eris.New("degenerate input")

// Point is a position in the two-dimensional projection.
type Point struct {
	X float64
	Y float64
}

// Options configures a clustering run. The seed is part of the run
// configuration so two runs with the same seed produce the same
// region-to-label mapping.
type Options struct {
	K        int
	Seed     int64
	MaxIter  int
	Restarts int
}

// Result holds the chosen partition. Labels are 1..K and carry no
// semantic order; label numbers are an artifact of the seeded run.
type Result struct {
	Labels    []int
	Centroids []Point
	WSS       float64
	// Empty lists labels left without members, when every restart
	// degenerated.
	Empty []int
}

// Assign partitions the points into opts.K groups.
func Assign(points []Point, opts Options) (*Result, error) {
	n := len(points)
	if opts.K < 1 {
		return nil, eris.Wrapf(ErrDegenerate, "cluster: k must be >= 1, got %d", opts.K)
	}
	if opts.K > n {
		return nil, eris.Wrapf(ErrDegenerate, "cluster: k=%d exceeds %d points", opts.K, n)
	}
	if opts.MaxIter < 1 {
		return nil, eris.Wrapf(ErrDegenerate, "cluster: max iterations must be >= 1, got %d", opts.MaxIter)
	}
	if opts.Restarts < 1 {
		return nil, eris.Wrapf(ErrDegenerate, "cluster: restarts must be >= 1, got %d", opts.Restarts)
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	var best *Result
	for r := 0; r < opts.Restarts; r++ {
		cand := lloyd(points, opts.K, opts.MaxIter, rng)
		if better(cand, best) {
			best = cand
		}
	}

	if len(best.Empty) > 0 {
		zap.L().Warn("cluster: empty-cluster degeneracy in best solution",
			zap.Ints("empty_labels", best.Empty),
			zap.Int("k", opts.K),
		)
	}

	return best, nil
}

// better prefers complete partitions (no empty cluster) and, within the
// same completeness, lower total within-cluster sum of squares.
func better(cand, best *Result) bool {
	if best == nil {
		return true
	}
	candEmpty := len(cand.Empty) > 0
	bestEmpty := len(best.Empty) > 0
	if candEmpty != bestEmpty {
		return bestEmpty
	}
	return cand.WSS < best.WSS
}

// lloyd runs one restart: k distinct points drawn as initial centroids,
// then assign/recompute until assignments stop changing or the cap is
// hit.
func lloyd(points []Point, k, maxIter int, rng *rand.Rand) *Result {
	n := len(points)

	centroids := make([]Point, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = points[idx]
	}

	assignments := make([]int, n)
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			c := nearest(p, centroids)
			if iter == 0 || c != assignments[i] {
				changed = true
			}
			assignments[i] = c
		}
		if !changed {
			break
		}

		// Recompute centroids as the mean of assigned points. A cluster
		// that lost all members keeps its previous centroid.
		sums := make([]Point, k)
		counts := make([]int, k)
		for i, p := range points {
			c := assignments[i]
			sums[c].X += p.X
			sums[c].Y += p.Y
			counts[c]++
		}
		for c := 0; c < k; c++ {
			if counts[c] > 0 {
				centroids[c] = Point{X: sums[c].X / float64(counts[c]), Y: sums[c].Y / float64(counts[c])}
			}
		}
	}

	res := &Result{
		Labels:    make([]int, n),
		Centroids: centroids,
	}
	counts := make([]int, k)
	for i, p := range points {
		c := assignments[i]
		res.Labels[i] = c + 1
		counts[c]++
		dx := p.X - centroids[c].X
		dy := p.Y - centroids[c].Y
		res.WSS += dx*dx + dy*dy
	}
	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			res.Empty = append(res.Empty, c+1)
		}
	}
	return res
}

// nearest returns the index of the closest centroid by Euclidean
// distance, lowest index winning ties.
func nearest(p Point, centroids []Point) int {
	bestIdx := 0
	bestDist := math.Inf(1)
	for c, ct := range centroids {
		dx := p.X - ct.X
		dy := p.Y - ct.Y
		if d := dx*dx + dy*dy; d < bestDist {
			bestDist = d
			bestIdx = c
		}
	}
	return bestIdx
}
