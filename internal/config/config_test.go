package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "surveycli/internal/errors"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Analysis.MaxMissingGrades)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "data.json", cfg.Paths.DataFile)
	assert.Equal(t, "reports", cfg.Paths.ReportsDir)
}

func TestLoadFrom_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "surveycli.yml")
	content := `
analysis:
  max_missing_grades: 3
logging:
  level: debug
paths:
  data_file: responses.json
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := LoadFrom(configFile)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Analysis.MaxMissingGrades)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "responses.json", cfg.Paths.DataFile)
	// untouched values keep their defaults
	assert.Equal(t, "reports", cfg.Paths.ReportsDir)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "surveycli.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging:\n  level: debug\n"), 0644))

	t.Setenv("SURVEY_LOGGING_LEVEL", "warn")

	cfg, err := LoadFrom(configFile)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		envKey  string
		envVal  string
	}{
		{
			name:   "negative missing-grade threshold",
			envKey: "SURVEY_ANALYSIS_MAX_MISSING_GRADES",
			envVal: "-1",
		},
		{
			name:   "unknown log level",
			envKey: "SURVEY_LOGGING_LEVEL",
			envVal: "verbose",
		},
		{
			name:   "unknown log format",
			envKey: "SURVEY_LOGGING_FORMAT",
			envVal: "xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envKey, tt.envVal)

			_, err := LoadFrom("")
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
		})
	}
}

func TestConfig_ReportPath(t *testing.T) {
	cfg := &Config{Paths: PathsConfig{ReportsDir: "reports"}}

	assert.Equal(t, filepath.Join("reports", "scores.csv"), cfg.ReportPath("scores.csv"))
	abs := filepath.Join(string(filepath.Separator), "tmp", "out.csv")
	assert.Equal(t, abs, cfg.ReportPath(abs))
}
