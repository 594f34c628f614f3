package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/regiondev/internal/model"
	"github.com/sells-group/regiondev/internal/pca"
	"github.com/sells-group/regiondev/internal/rank"
)

// WriteMarkdown writes the analyst-facing summary: top and bottom
// rankings, retained-variance figure, and per-cluster membership.
func WriteMarkdown(w io.Writer, top, bottom []rank.Entry, res *pca.Result, clustered []model.ClusteredRegion) error {
	var b strings.Builder

	b.WriteString("# Regional Development Analysis\n\n")
	b.WriteString("## Development score ranking\n\n")

	b.WriteString("### Top regions\n\n")
	writeMarkdownRanking(&b, top)

	b.WriteString("\n### Bottom regions\n\n")
	writeMarkdownRanking(&b, bottom)

	b.WriteString("\n## Principal components\n\n")
	fmt.Fprintf(&b, "The first two components retain **%.2f%%** of total variance.\n\n", res.RetainedTwo)
	b.WriteString("| Component | Eigenvalue | Variance % |\n")
	b.WriteString("|-----------|-----------:|-----------:|\n")
	for c := 0; c < res.Components(); c++ {
		fmt.Fprintf(&b, "| PC%d | %.4f | %.2f |\n", c+1, res.Eigenvalues[c], res.VarianceExplained[c])
	}

	b.WriteString("\n## Clusters\n\n")
	b.WriteString("Label numbers are artifacts of the seeded run and carry no order.\n\n")

	groups := make(map[int][]model.ClusteredRegion)
	labels := make([]int, 0)
	for _, r := range clustered {
		if _, seen := groups[r.Label]; !seen {
			labels = append(labels, r.Label)
		}
		groups[r.Label] = append(groups[r.Label], r)
	}
	sort.Ints(labels)
	for _, label := range labels {
		names := make([]string, 0, len(groups[label]))
		for _, r := range groups[label] {
			names = append(names, r.Name)
		}
		fmt.Fprintf(&b, "- **Cluster %d** (%d): %s\n", label, len(names), strings.Join(names, ", "))
	}

	fmt.Fprintf(&b, "\n---\n*Generated %s*\n", time.Now().Format("2 January 2006"))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return eris.Wrap(err, "report: write markdown")
	}
	return nil
}

func writeMarkdownRanking(b *strings.Builder, entries []rank.Entry) {
	b.WriteString("| # | Region | Population | Development score |\n")
	b.WriteString("|---|--------|-----------:|------------------:|\n")
	for i, e := range entries {
		fmt.Fprintf(b, "| %d | %s | %s | %.2f |\n",
			i+1, e.Region.Name, formatCount(e.Region.Population), e.Region.Scores.DevelopmentModel)
	}
}
