package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "surveycli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// AnalysisConfig contains tunables for the questionnaire analysis operations
type AnalysisConfig struct {
	// MaxMissingGrades is the largest number of unanswered questions a
	// participant may have and still receive a score.
	MaxMissingGrades int `yaml:"max_missing_grades" envconfig:"MAX_MISSING_GRADES" default:"1" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/analyzer.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataFile   string `yaml:"data_file" envconfig:"DATA_FILE" default:"data.json" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports" validate:"required"`
}

// Load loads configuration from environment variables and an optional config file
func Load() (*Config, error) {
	return LoadFrom(defaultConfigFile)
}

// LoadFrom loads configuration, merging the YAML file at configFile (if it
// exists) under values taken from the environment. Environment wins.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SURVEY", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileConfig, err := loadFromFile(configFile)
			if err != nil {
				return nil, apperrors.NewConfigError("failed to load config from file", err)
			}
			cfg = mergeConfigs(*fileConfig, cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

const defaultConfigFile = "surveycli.yml"

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Analysis.MaxMissingGrades == 1 && fileConfig.Analysis.MaxMissingGrades != 0 {
		envConfig.Analysis.MaxMissingGrades = fileConfig.Analysis.MaxMissingGrades
	}
	if envConfig.Logging.Level == "info" && fileConfig.Logging.Level != "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == "json" && fileConfig.Logging.Format != "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if envConfig.Logging.Output == "console" && fileConfig.Logging.Output != "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if envConfig.Paths.DataFile == "data.json" && fileConfig.Paths.DataFile != "" {
		envConfig.Paths.DataFile = fileConfig.Paths.DataFile
	}
	if envConfig.Paths.ReportsDir == "reports" && fileConfig.Paths.ReportsDir != "" {
		envConfig.Paths.ReportsDir = fileConfig.Paths.ReportsDir
	}

	return envConfig
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// ReportPath returns the path of a report file inside the reports directory
func (c *Config) ReportPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Paths.ReportsDir, name)
}

// EnsureReportsDir creates the reports directory if it does not exist
func (c *Config) EnsureReportsDir() error {
	if err := os.MkdirAll(c.Paths.ReportsDir, 0755); err != nil {
		return fmt.Errorf("failed to create reports directory %s: %w", c.Paths.ReportsDir, err)
	}
	return nil
}
