package report

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/sells-group/regiondev/internal/model"
	"github.com/sells-group/regiondev/internal/pca"
	"github.com/sells-group/regiondev/internal/rank"
)

// BuildWorkbook writes the multi-sheet analysis workbook: composite
// scores, the development ranking, PCA components and loadings, and the
// cluster assignment table.
func BuildWorkbook(path string, clustered []model.ClusteredRegion, ranking []rank.Entry, res *pca.Result) error {
	f := excelize.NewFile()

	if err := writeScoresSheet(f, clustered); err != nil {
		return err
	}
	if err := writeRankingSheet(f, ranking); err != nil {
		return err
	}
	if err := writePCASheets(f, res); err != nil {
		return err
	}
	if err := writeClusterSheet(f, clustered); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return eris.Wrapf(err, "report: save workbook %s", path)
	}
	return nil
}

func writeScoresSheet(f *excelize.File, clustered []model.ClusteredRegion) error {
	const sheet = "Scores"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return eris.Wrap(err, "report: rename scores sheet")
	}

	headers := []string{"Region", "Population", "Income per Capita", "Material",
		"Quality", "Subjectivity", "Development Score"}
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return err
	}

	for i, r := range clustered {
		row := i + 2
		setRow(f, sheet, row,
			r.Name, r.Population, r.IncomePerCapita,
			r.Scores.Material, r.Scores.Quality, r.Scores.Subjectivity,
			r.Scores.DevelopmentModel)
	}
	return nil
}

func writeRankingSheet(f *excelize.File, ranking []rank.Entry) error {
	const sheet = "Rankings"
	if _, err := f.NewSheet(sheet); err != nil {
		return eris.Wrap(err, "report: add rankings sheet")
	}

	headers := []string{"Rank", "Region", "Development Score", "Material", "Quality", "Subjectivity"}
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return err
	}

	for i, e := range ranking {
		row := i + 2
		setRow(f, sheet, row,
			i+1, e.Region.Name, e.Region.Scores.DevelopmentModel,
			e.Region.Scores.Material, e.Region.Scores.Quality, e.Region.Scores.Subjectivity)
	}
	return nil
}

func writePCASheets(f *excelize.File, res *pca.Result) error {
	const components = "PCA_Components"
	if _, err := f.NewSheet(components); err != nil {
		return eris.Wrap(err, "report: add components sheet")
	}
	if err := writeHeaderRow(f, components, []string{"Component", "Eigenvalue", "Variance %", "Cumulative %"}); err != nil {
		return err
	}
	cum := 0.0
	for c := 0; c < res.Components(); c++ {
		cum += res.VarianceExplained[c]
		setRow(f, components, c+2,
			fmt.Sprintf("PC%d", c+1), res.Eigenvalues[c], res.VarianceExplained[c], cum)
	}

	const loadings = "PCA_Loadings"
	if _, err := f.NewSheet(loadings); err != nil {
		return eris.Wrap(err, "report: add loadings sheet")
	}
	loadingHeaders := []string{"Variable"}
	for c := 0; c < res.Components(); c++ {
		loadingHeaders = append(loadingHeaders, fmt.Sprintf("PC%d", c+1))
	}
	if err := writeHeaderRow(f, loadings, loadingHeaders); err != nil {
		return err
	}
	for j, name := range res.VarNames {
		values := []any{name}
		for c := 0; c < res.Components(); c++ {
			values = append(values, res.Loadings[j][c])
		}
		setRow(f, loadings, j+2, values...)
	}
	return nil
}

func writeClusterSheet(f *excelize.File, clustered []model.ClusteredRegion) error {
	const sheet = "Clusters"
	if _, err := f.NewSheet(sheet); err != nil {
		return eris.Wrap(err, "report: add clusters sheet")
	}

	headers := []string{"Region", "Cluster", "PC1", "PC2", "Development Score"}
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return err
	}

	for i, r := range clustered {
		setRow(f, sheet, i+2, r.Name, r.Label, r.PC1, r.PC2, r.Scores.DevelopmentModel)
	}
	return nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return eris.Wrap(err, "report: header cell name")
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return eris.Wrapf(err, "report: write header %q", header)
		}
		if err := f.SetColWidth(sheet, cell[:1], cell[:1], 18); err != nil {
			return eris.Wrap(err, "report: set column width")
		}
	}
	return nil
}

// setRow writes values left to right starting at column A. Cell write
// errors on an in-memory workbook only occur for invalid coordinates, so
// they are ignored here and surface at save time.
func setRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		_ = f.SetCellValue(sheet, cell, v)
	}
}
