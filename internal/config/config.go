// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Input    InputConfig    `yaml:"input" mapstructure:"input"`
	Weights  WeightsConfig  `yaml:"weights" mapstructure:"weights"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Ranking  RankingConfig  `yaml:"ranking" mapstructure:"ranking"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// InputConfig locates the regional table.
type InputConfig struct {
	Path  string `yaml:"path" mapstructure:"path"`
	Sheet string `yaml:"sheet" mapstructure:"sheet"` // xlsx only; empty = first sheet
}

// WeightsConfig holds the composite score weights. Each group must sum
// to exactly 1.0.
type WeightsConfig struct {
	Material     MaterialWeights     `yaml:"material" mapstructure:"material"`
	Quality      QualityWeights      `yaml:"quality" mapstructure:"quality"`
	Subjectivity SubjectivityWeights `yaml:"subjectivity" mapstructure:"subjectivity"`
	Development  DevelopmentWeights  `yaml:"development" mapstructure:"development"`
}

// MaterialWeights weight the material living conditions sub-index.
type MaterialWeights struct {
	Income  float64 `yaml:"income" mapstructure:"income"`
	Jobs    float64 `yaml:"jobs" mapstructure:"jobs"`
	Housing float64 `yaml:"housing" mapstructure:"housing"`
}

// QualityWeights weight the quality of life sub-index.
type QualityWeights struct {
	Health      float64 `yaml:"health" mapstructure:"health"`
	Education   float64 `yaml:"education" mapstructure:"education"`
	Environment float64 `yaml:"environment" mapstructure:"environment"`
	Safety      float64 `yaml:"safety" mapstructure:"safety"`
	Civic       float64 `yaml:"civic" mapstructure:"civic"`
}

// SubjectivityWeights weight the subjective well-being sub-index.
type SubjectivityWeights struct {
	Community    float64 `yaml:"community" mapstructure:"community"`
	Satisfaction float64 `yaml:"satisfaction" mapstructure:"satisfaction"`
}

// DevelopmentWeights combine the three sub-indices into the aggregate
// development score.
type DevelopmentWeights struct {
	Material     float64 `yaml:"material" mapstructure:"material"`
	Quality      float64 `yaml:"quality" mapstructure:"quality"`
	Subjectivity float64 `yaml:"subjectivity" mapstructure:"subjectivity"`
}

// AnalysisConfig configures PCA and clustering.
type AnalysisConfig struct {
	Components int   `yaml:"components" mapstructure:"components"`
	K          int   `yaml:"k" mapstructure:"k"`
	Seed       int64 `yaml:"seed" mapstructure:"seed"`
	Restarts   int   `yaml:"restarts" mapstructure:"restarts"`
	MaxIter    int   `yaml:"max_iter" mapstructure:"max_iter"`
}

// RankingConfig configures the default ranking listing.
type RankingConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
	N   int    `yaml:"n" mapstructure:"n"`
}

// OutputConfig configures where report artifacts are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REGIONDEV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.path", "data/mexico_regions.csv")
	v.SetDefault("weights.material.income", 0.45)
	v.SetDefault("weights.material.jobs", 0.45)
	v.SetDefault("weights.material.housing", 0.10)
	v.SetDefault("weights.quality.health", 0.35)
	v.SetDefault("weights.quality.education", 0.30)
	v.SetDefault("weights.quality.environment", 0.25)
	v.SetDefault("weights.quality.safety", 0.05)
	v.SetDefault("weights.quality.civic", 0.05)
	v.SetDefault("weights.subjectivity.community", 0.30)
	v.SetDefault("weights.subjectivity.satisfaction", 0.70)
	v.SetDefault("weights.development.material", 0.40)
	v.SetDefault("weights.development.quality", 0.40)
	v.SetDefault("weights.development.subjectivity", 0.20)
	v.SetDefault("analysis.components", 2)
	v.SetDefault("analysis.k", 5)
	v.SetDefault("analysis.seed", 42)
	v.SetDefault("analysis.restarts", 10)
	v.SetDefault("analysis.max_iter", 100)
	v.SetDefault("ranking.key", "development_model")
	v.SetDefault("ranking.n", 10)
	v.SetDefault("output.dir", "out")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
