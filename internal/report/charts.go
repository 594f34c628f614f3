package report

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sells-group/regiondev/internal/model"
	"github.com/sells-group/regiondev/internal/rank"
)

// clusterPalette colors glyphs per cluster label. Labels beyond the
// palette wrap around.
var clusterPalette = []color.RGBA{
	{R: 0, G: 100, B: 0, A: 255},
	{R: 178, G: 34, B: 34, A: 255},
	{R: 65, G: 105, B: 225, A: 255},
	{R: 255, G: 140, B: 0, A: 255},
	{R: 128, G: 0, B: 128, A: 255},
	{R: 0, G: 139, B: 139, A: 255},
}

// ClusterScatterPlot draws the regions in PC1/PC2 space, one glyph color
// per cluster label, with region name labels and a grid.
func ClusterScatterPlot(path string, clustered []model.ClusteredRegion) error {
	p := plot.New()
	p.Title.Text = "Regions by Development Profile (PCA projection)"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "PC1"
	p.Y.Label.Text = "PC2"

	byLabel := make(map[int]plotter.XYs)
	var labelOrder []int
	for _, r := range clustered {
		if _, seen := byLabel[r.Label]; !seen {
			labelOrder = append(labelOrder, r.Label)
		}
		byLabel[r.Label] = append(byLabel[r.Label], plotter.XY{X: r.PC1, Y: r.PC2})
	}
	sort.Ints(labelOrder)

	for _, label := range labelOrder {
		scatter, err := plotter.NewScatter(byLabel[label])
		if err != nil {
			return eris.Wrap(err, "report: build scatter")
		}
		scatter.GlyphStyle.Color = clusterPalette[(label-1)%len(clusterPalette)]
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add(fmt.Sprintf("Cluster %d", label), scatter)
	}

	points := make(plotter.XYs, len(clustered))
	names := make([]string, len(clustered))
	for i, r := range clustered {
		points[i] = plotter.XY{X: r.PC1, Y: r.PC2}
		names[i] = r.Name
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: names})
	if err != nil {
		return eris.Wrap(err, "report: build scatter labels")
	}
	p.Add(labels)
	p.Add(plotter.NewGrid())

	if err := p.Save(12*vg.Inch, 9*vg.Inch, path); err != nil {
		return eris.Wrapf(err, "report: save scatter %s", path)
	}
	return nil
}

// ScoreBarChart draws the ranked development scores as a bar chart with
// rotated region labels.
func ScoreBarChart(path string, ranking []rank.Entry) error {
	p := plot.New()
	p.Title.Text = "Development Score by Region"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Development score (0-10)"

	values := make(plotter.Values, len(ranking))
	names := make([]string, len(ranking))
	for i, e := range ranking {
		values[i] = e.Region.Scores.DevelopmentModel
		names[i] = e.Region.Name
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return eris.Wrap(err, "report: build bar chart")
	}
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Min = 0

	if err := p.Save(16*vg.Inch, 8*vg.Inch, path); err != nil {
		return eris.Wrapf(err, "report: save bar chart %s", path)
	}
	return nil
}
