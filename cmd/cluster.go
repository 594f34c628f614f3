package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/regiondev/internal/cluster"
	"github.com/sells-group/regiondev/internal/report"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Group regions by development profile",
	Long: `Run k-means over each region's coordinates on the first two principal
components and print the per-region cluster label table.

The seed is part of the run configuration: the same seed always yields
the same region-to-label mapping. Label numbers themselves are
arbitrary.`,
	RunE: runCluster,
}

func init() {
	f := clusterCmd.Flags()
	f.String("input", "", "path to the regional table (default: config input.path)")
	f.Int("k", 0, "number of clusters (default: config analysis.k)")
	f.Int64("seed", 0, "random seed (default: config analysis.seed)")
	f.Int("restarts", 0, "random restarts (default: config analysis.restarts)")
	f.Int("max-iter", 0, "iteration cap per restart (default: config analysis.max_iter)")

	rootCmd.AddCommand(clusterCmd)
}

// clusterOptions merges CLI flag overrides over the configured defaults.
// Only flags the user actually set override the config, so any value,
// including zero or negative ones, can be passed explicitly and is then
// validated downstream.
func clusterOptions(cmd *cobra.Command) cluster.Options {
	opts := cluster.Options{
		K:        cfg.Analysis.K,
		Seed:     cfg.Analysis.Seed,
		MaxIter:  cfg.Analysis.MaxIter,
		Restarts: cfg.Analysis.Restarts,
	}
	if cmd.Flags().Changed("k") {
		opts.K, _ = cmd.Flags().GetInt("k")
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Changed("restarts") {
		opts.Restarts, _ = cmd.Flags().GetInt("restarts")
	}
	if cmd.Flags().Changed("max-iter") {
		opts.MaxIter, _ = cmd.Flags().GetInt("max-iter")
	}
	return opts
}

func runCluster(cmd *cobra.Command, _ []string) error {
	scored, err := loadScored(cmd)
	if err != nil {
		return err
	}

	res, err := runPCA(scored)
	if err != nil {
		return err
	}

	points := make([]cluster.Point, scored.Len())
	for i := range points {
		x, y := res.PC2(i)
		points[i] = cluster.Point{X: x, Y: y}
	}

	opts := clusterOptions(cmd)
	assignment, err := cluster.Assign(points, opts)
	if err != nil {
		return err
	}

	zap.L().Info("cluster: assignment complete",
		zap.Int("k", opts.K),
		zap.Int64("seed", opts.Seed),
		zap.Float64("wss", assignment.WSS),
	)

	clustered := report.Join(scored, res, assignment)
	return report.WriteClusterTable(os.Stdout, clustered)
}
