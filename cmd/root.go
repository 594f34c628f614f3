package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/regiondev/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "regiondev",
	Short: "Regional development analysis for Mexico",
	Long:  "Loads the Mexican regional well-being table, derives weighted composite development scores, ranks regions, runs PCA over the indicators, and clusters regions by development profile.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
