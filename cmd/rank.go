package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/regiondev/internal/rank"
	"github.com/sells-group/regiondev/internal/report"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank regions by a composite score or indicator",
	Long: `Score every region with the weighted development model and print the
top-N and bottom-N regions for the chosen key.

Examples:
  # Top and bottom 10 by aggregate development score
  regiondev rank

  # Rank by income per capita, top 5
  regiondev rank --key income_per_capita --n 5

  # Export the full descending ranking as CSV
  regiondev rank --n 32 --format csv --output ranking.csv

Valid keys: ` + strings.Join(rank.Keys(), ", "),
	RunE: runRank,
}

func init() {
	f := rankCmd.Flags()
	f.String("input", "", "path to the regional table (default: config input.path)")
	f.String("key", "", "ranking key (default: config ranking.key)")
	f.Int("n", 0, "number of regions in each listing (default: config ranking.n)")
	f.String("format", "table", "output format: table or csv")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(rankCmd)
}

// rankOptions merges the --key and --n flag overrides over the
// configured defaults. An explicitly set flag always wins, so --n 0 is a
// valid request for empty listings.
func rankOptions(cmd *cobra.Command) (key string, n int) {
	key = cfg.Ranking.Key
	n = cfg.Ranking.N
	if cmd.Flags().Changed("key") {
		key, _ = cmd.Flags().GetString("key")
	}
	if cmd.Flags().Changed("n") {
		n, _ = cmd.Flags().GetInt("n")
	}
	return key, n
}

func runRank(cmd *cobra.Command, _ []string) error {
	key, n := rankOptions(cmd)
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	if format != "table" && format != "csv" {
		return eris.Errorf("rank: --format must be table or csv (got %q)", format)
	}

	scored, err := loadScored(cmd)
	if err != nil {
		return err
	}

	top, err := rank.Top(scored, key, n)
	if err != nil {
		return err
	}
	bottom, err := rank.Bottom(scored, key, n)
	if err != nil {
		return err
	}

	zap.L().Info("rank: ranking complete",
		zap.String("key", key),
		zap.Int("n", n),
		zap.Int("regions", scored.Len()),
	)

	w := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "rank: create output file %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	if format == "csv" {
		return report.WriteRankingCSV(w, key, top)
	}

	if err := report.WriteRankingTable(w, fmt.Sprintf("Top %d by %s", len(top), key), top); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return report.WriteRankingTable(w, fmt.Sprintf("Bottom %d by %s", len(bottom), key), bottom)
}
