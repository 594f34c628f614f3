package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/regiondev/internal/report"
)

var pcaCmd = &cobra.Command{
	Use:   "pca",
	Short: "Principal component analysis of the regional indicators",
	Long: `Standardize the eleven 0-10 indicator columns, eigendecompose their
correlation matrix, and print eigenvalues, percent variance explained,
variable loadings, and per-region component coordinates.`,
	RunE: runPCACmd,
}

func init() {
	f := pcaCmd.Flags()
	f.String("input", "", "path to the regional table (default: config input.path)")
	f.Int("components", 0, "coordinate columns to print (default: config analysis.components)")

	rootCmd.AddCommand(pcaCmd)
}

func runPCACmd(cmd *cobra.Command, _ []string) error {
	components, _ := cmd.Flags().GetInt("components")
	if components == 0 {
		components = cfg.Analysis.Components
	}

	scored, err := loadScored(cmd)
	if err != nil {
		return err
	}

	res, err := runPCA(scored)
	if err != nil {
		return err
	}
	if components < 1 || components > res.Components() {
		return eris.Errorf("pca: --components must be in [1, %d], got %d", res.Components(), components)
	}

	zap.L().Info("pca: decomposition complete",
		zap.Int("components", res.Components()),
		zap.Float64("retained_two_pct", res.RetainedTwo),
	)

	if err := report.WritePCASummary(os.Stdout, res); err != nil {
		return err
	}

	fmt.Printf("\n%-22s", "Region")
	for c := 0; c < components; c++ {
		fmt.Printf(" %9s", fmt.Sprintf("PC%d", c+1))
	}
	fmt.Println()
	for i, r := range scored.Regions {
		fmt.Printf("%-22s", r.Name)
		for c := 0; c < components; c++ {
			fmt.Printf(" %9.3f", res.Coordinates[i][c])
		}
		fmt.Println()
	}
	return nil
}
