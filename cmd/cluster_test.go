//go:build !integration

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/regiondev/internal/config"
)

// newClusterFlagsCmd creates a fresh cobra.Command with the same flags as
// clusterCmd, so tests don't share mutable flag state.
func newClusterFlagsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test-cluster"}
	cmd.Flags().Int("k", 0, "")
	cmd.Flags().Int64("seed", 0, "")
	cmd.Flags().Int("restarts", 0, "")
	cmd.Flags().Int("max-iter", 0, "")
	return cmd
}

func analysisConfig() *config.Config {
	return &config.Config{
		Analysis: config.AnalysisConfig{
			Components: 2,
			K:          5,
			Seed:       42,
			Restarts:   10,
			MaxIter:    100,
		},
	}
}

func TestClusterCmd_Metadata(t *testing.T) {
	assert.Equal(t, "cluster", clusterCmd.Use)
	assert.NotEmpty(t, clusterCmd.Short)

	for _, name := range []string{"input", "k", "seed", "restarts", "max-iter"} {
		assert.NotNil(t, clusterCmd.Flags().Lookup(name), name)
	}
}

func TestClusterOptions_Defaults(t *testing.T) {
	cfg = analysisConfig()
	cmd := newClusterFlagsCmd()

	opts := clusterOptions(cmd)
	assert.Equal(t, 5, opts.K)
	assert.Equal(t, int64(42), opts.Seed)
	assert.Equal(t, 10, opts.Restarts)
	assert.Equal(t, 100, opts.MaxIter)
}

func TestClusterOptions_FlagOverrides(t *testing.T) {
	cfg = analysisConfig()
	cmd := newClusterFlagsCmd()
	require.NoError(t, cmd.Flags().Set("k", "3"))
	require.NoError(t, cmd.Flags().Set("seed", "7"))
	require.NoError(t, cmd.Flags().Set("restarts", "2"))
	require.NoError(t, cmd.Flags().Set("max-iter", "20"))

	opts := clusterOptions(cmd)
	assert.Equal(t, 3, opts.K)
	assert.Equal(t, int64(7), opts.Seed)
	assert.Equal(t, 2, opts.Restarts)
	assert.Equal(t, 20, opts.MaxIter)
}

// An explicitly set flag wins even when its value matches a sentinel-ish
// zero or negative number; validation happens downstream.
func TestClusterOptions_ExplicitZeroAndNegative(t *testing.T) {
	cfg = analysisConfig()
	cmd := newClusterFlagsCmd()
	require.NoError(t, cmd.Flags().Set("seed", "-1"))
	require.NoError(t, cmd.Flags().Set("k", "0"))

	opts := clusterOptions(cmd)
	assert.Equal(t, int64(-1), opts.Seed)
	assert.Equal(t, 0, opts.K)
}
