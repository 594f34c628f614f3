// Package report renders rankings, PCA summaries, cluster listings, the
// analysis workbook, and chart artifacts. Presentation only: nothing
// here computes, it reflects upstream data faithfully.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/regiondev/internal/cluster"
	"github.com/sells-group/regiondev/internal/model"
	"github.com/sells-group/regiondev/internal/pca"
	"github.com/sells-group/regiondev/internal/rank"
)

// printer formats populations and incomes with Spanish-locale grouping.
var printer = message.NewPrinter(language.Spanish)

// Join attaches cluster labels and first-two-component coordinates to the
// scored regions, preserving table order.
func Join(scored *model.ScoredTable, res *pca.Result, assignment *cluster.Result) []model.ClusteredRegion {
	joined := make([]model.ClusteredRegion, 0, scored.Len())
	for i, r := range scored.Regions {
		x, y := res.PC2(i)
		joined = append(joined, model.ClusteredRegion{
			ScoredRegion: r,
			Label:        assignment.Labels[i],
			PC1:          x,
			PC2:          y,
		})
	}
	return joined
}

// WriteRankingTable writes a plain-text ranking listing.
func WriteRankingTable(w io.Writer, title string, entries []rank.Entry) error {
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return eris.Wrap(err, "report: write table title")
	}
	header := fmt.Sprintf("%-4s %-22s %12s %10s %8s\n", "#", "Region", "Population", "Value", "DevModel")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "report: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 60)); err != nil {
		return eris.Wrap(err, "report: write table separator")
	}

	for i, e := range entries {
		line := fmt.Sprintf("%-4d %-22s %12s %10.2f %8.2f\n",
			i+1, e.Region.Name, formatCount(e.Region.Population), e.Value,
			e.Region.Scores.DevelopmentModel)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "report: write table row")
		}
	}
	return nil
}

// WriteRankingCSV writes a ranking as CSV with a header row. The
// aggregate development score is always included; when it is itself the
// ranked key, the column appears once.
func WriteRankingCSV(w io.Writer, key string, entries []rank.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"rank", "region", "population", key}
	if key != "development_model" {
		header = append(header, "development_model")
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write CSV header")
	}
	for i, e := range entries {
		row := []string{
			fmt.Sprintf("%d", i+1),
			e.Region.Name,
			fmt.Sprintf("%.0f", e.Region.Population),
			fmt.Sprintf("%.4f", e.Value),
		}
		if key != "development_model" {
			row = append(row, fmt.Sprintf("%.4f", e.Region.Scores.DevelopmentModel))
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write CSV row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush CSV")
}

// WritePCASummary writes eigenvalues, variance explained, and loadings.
func WritePCASummary(w io.Writer, res *pca.Result) error {
	if _, err := fmt.Fprintln(w, "Principal components (correlation matrix)"); err != nil {
		return eris.Wrap(err, "report: write pca title")
	}
	if _, err := fmt.Fprintf(w, "%-6s %12s %12s %12s\n", "Comp", "Eigenvalue", "Var %", "Cum %"); err != nil {
		return eris.Wrap(err, "report: write pca header")
	}
	cum := 0.0
	for c := 0; c < res.Components(); c++ {
		cum += res.VarianceExplained[c]
		if _, err := fmt.Fprintf(w, "PC%-4d %12.4f %12.2f %12.2f\n",
			c+1, res.Eigenvalues[c], res.VarianceExplained[c], cum); err != nil {
			return eris.Wrap(err, "report: write pca row")
		}
	}
	if _, err := fmt.Fprintf(w, "\nFirst two components retain %.2f%% of total variance.\n\n",
		res.RetainedTwo); err != nil {
		return eris.Wrap(err, "report: write pca retained")
	}

	if _, err := fmt.Fprintf(w, "%-18s %10s %10s\n", "Variable", "PC1", "PC2"); err != nil {
		return eris.Wrap(err, "report: write loadings header")
	}
	for j, name := range res.VarNames {
		if _, err := fmt.Fprintf(w, "%-18s %10.3f %10.3f\n",
			name, res.Loadings[j][0], res.Loadings[j][1]); err != nil {
			return eris.Wrap(err, "report: write loadings row")
		}
	}
	return nil
}

// WriteClusterTable writes the per-region label table grouped by label.
// Label numbers are run artifacts, so groups are ordered by label only
// for readability.
func WriteClusterTable(w io.Writer, regions []model.ClusteredRegion) error {
	groups := make(map[int][]model.ClusteredRegion)
	labels := make([]int, 0)
	for _, r := range regions {
		if _, seen := groups[r.Label]; !seen {
			labels = append(labels, r.Label)
		}
		groups[r.Label] = append(groups[r.Label], r)
	}
	sort.Ints(labels)

	for _, label := range labels {
		members := groups[label]
		if _, err := fmt.Fprintf(w, "Cluster %d (%d regions)\n", label, len(members)); err != nil {
			return eris.Wrap(err, "report: write cluster header")
		}
		for _, r := range members {
			if _, err := fmt.Fprintf(w, "  %-22s dev=%5.2f  pc=(%.3f, %.3f)\n",
				r.Name, r.Scores.DevelopmentModel, r.PC1, r.PC2); err != nil {
				return eris.Wrap(err, "report: write cluster row")
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return eris.Wrap(err, "report: write cluster spacer")
		}
	}
	return nil
}

func formatCount(v float64) string {
	return printer.Sprintf("%d", int64(v))
}
