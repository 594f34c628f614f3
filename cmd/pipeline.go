package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/regiondev/internal/loader"
	"github.com/sells-group/regiondev/internal/model"
	"github.com/sells-group/regiondev/internal/pca"
	"github.com/sells-group/regiondev/internal/scorer"
)

// loadTable reads the input table named by --input, falling back to the
// configured path.
func loadTable(cmd *cobra.Command) (*model.Table, error) {
	path, _ := cmd.Flags().GetString("input")
	if path == "" {
		path = cfg.Input.Path
	}
	return loader.Load(path, loader.Options{Sheet: cfg.Input.Sheet})
}

// loadScored runs the loader and the composite scorer.
func loadScored(cmd *cobra.Command) (*model.ScoredTable, error) {
	table, err := loadTable(cmd)
	if err != nil {
		return nil, err
	}
	return scorer.Score(table, cfg.Weights)
}

// runPCA decomposes the indicator matrix of a scored table.
func runPCA(scored *model.ScoredTable) (*pca.Result, error) {
	rows := make([][]float64, scored.Len())
	for i, r := range scored.Regions {
		rows[i] = r.IndicatorValues()
	}
	return pca.Run(rows, model.IndicatorNames())
}
