package main

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/regiondev/internal/cluster"
	"github.com/sells-group/regiondev/internal/rank"
	"github.com/sells-group/regiondev/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Produce the full analysis artifact set",
	Long: `Run the whole pipeline and write every artifact: the multi-sheet
analysis workbook, the PCA-projection scatter plot colored by cluster,
the development score bar chart, and the markdown summary.

Artifacts:
  regional_development.xlsx
  development_clusters.png
  development_scores.png
  development_summary.md`,
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.String("input", "", "path to the regional table (default: config input.path)")
	f.String("out-dir", "", "artifact directory (default: config output.dir)")
	f.Int("k", 0, "number of clusters (default: config analysis.k)")
	f.Int64("seed", 0, "random seed (default: config analysis.seed)")
	f.Int("restarts", 0, "random restarts (default: config analysis.restarts)")
	f.Int("max-iter", 0, "iteration cap per restart (default: config analysis.max_iter)")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return eris.Wrapf(err, "report: create output dir %s", outDir)
	}

	log := zap.L().With(zap.String("command", "report"))

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
	assignment, err := cluster.Assign(points, clusterOptions(cmd))
	if err != nil {
		return err
	}
	clustered := report.Join(scored, res, assignment)

	ranking, err := rank.Top(scored, "development_model", scored.Len())
	if err != nil {
		return err
	}
	n := cfg.Ranking.N
	top, err := rank.Top(scored, "development_model", n)
	if err != nil {
		return err
	}
	bottom, err := rank.Bottom(scored, "development_model", n)
	if err != nil {
		return err
	}

	workbookPath := filepath.Join(outDir, "regional_development.xlsx")
	if err := report.BuildWorkbook(workbookPath, clustered, ranking, res); err != nil {
		return err
	}

	scatterPath := filepath.Join(outDir, "development_clusters.png")
	if err := report.ClusterScatterPlot(scatterPath, clustered); err != nil {
		return err
	}

	barPath := filepath.Join(outDir, "development_scores.png")
	if err := report.ScoreBarChart(barPath, ranking); err != nil {
		return err
	}

	mdPath := filepath.Join(outDir, "development_summary.md")
	mdFile, err := os.Create(mdPath)
	if err != nil {
		return eris.Wrapf(err, "report: create %s", mdPath)
	}
	defer mdFile.Close() //nolint:errcheck
	if err := report.WriteMarkdown(mdFile, top, bottom, res, clustered); err != nil {
		return err
	}

	log.Info("report: artifacts written",
		zap.String("workbook", workbookPath),
		zap.String("scatter", scatterPath),
		zap.String("bar_chart", barPath),
		zap.String("summary", mdPath),
	)
	return nil
}
