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
	Pipeline   PipelineConfig   `yaml:"pipeline" mapstructure:"pipeline"`
	AreaFilter AreaFilterConfig `yaml:"area_filter" mapstructure:"area_filter"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// PipelineConfig configures the success-rate pipeline.
type PipelineConfig struct {
	OutputPrefix   string `yaml:"output_prefix" mapstructure:"output_prefix"`
	ConnectedSheet string `yaml:"connected_sheet" mapstructure:"connected_sheet"`
	IntentionSheet string `yaml:"intention_sheet" mapstructure:"intention_sheet"`
}

// AreaFilterConfig configures the area blocklist partitioner. BlockedAreas is
// a comma-separated list with no built-in default: the blocklist is
// deployment data, not code.
type AreaFilterConfig struct {
	BlockedAreas string `yaml:"blocked_areas" mapstructure:"blocked_areas"`
	AreaColumn   int    `yaml:"area_column" mapstructure:"area_column"`
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
	v.SetEnvPrefix("MODELRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("pipeline.output_prefix", "results")
	v.SetDefault("pipeline.connected_sheet", "接通")
	v.SetDefault("pipeline.intention_sheet", "A")
	v.SetDefault("area_filter.area_column", 2)

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
