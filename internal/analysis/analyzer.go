package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"surveycli/internal/dataset"
	apperrors "surveycli/internal/errors"
)

// HistogramRenderer is the plotting collaborator for the age distribution.
// The analyzer only hands it the collected ages, the fixed bin edges and the
// computed counts; what it draws with them is its own business.
type HistogramRenderer interface {
	RenderHistogram(ctx context.Context, ages []float64, edges []float64, counts []int) error
}

// Analyzer reads and analyzes data generated by the questionnaire
// experiment. It holds one loaded dataset; every operation reads the
// original table fresh, so repeated calls never compound.
type Analyzer struct {
	logger   *slog.Logger
	renderer HistogramRenderer
	path     string
	data     *dataset.Dataset
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used by analysis operations.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithRenderer injects the plotting collaborator used by AgeDistribution.
func WithRenderer(renderer HistogramRenderer) Option {
	return func(a *Analyzer) {
		a.renderer = renderer
	}
}

// New creates an analyzer for the questionnaire data file at path.
// It fails with an invalid-path error when path does not refer to an
// existing file; the data itself is not loaded until Load is called.
func New(path string, opts ...Option) (*Analyzer, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, apperrors.NewInvalidPathError("data file does not exist", err).
			WithContext("path", path)
	}
	if err != nil {
		return nil, apperrors.NewInvalidPathError("failed to stat data file", err).
			WithContext("path", path)
	}
	if info.IsDir() {
		return nil, apperrors.NewInvalidPathError("path is a directory, not a file", nil).
			WithContext("path", path)
	}

	a := &Analyzer{path: path}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a, nil
}

// Load parses the data file into the analyzer's dataset. Calling it again
// reloads from disk. On failure the previously loaded dataset is kept
// untouched.
func (a *Analyzer) Load(ctx context.Context) error {
	a.logger.InfoContext(ctx, "loading questionnaire data",
		slog.String("path", a.path))

	ds, err := dataset.Load(a.path)
	if err != nil {
		a.logger.ErrorContext(ctx, "failed to load questionnaire data",
			slog.String("path", a.path),
			slog.String("error", err.Error()))
		return err
	}

	a.data = ds
	a.logger.InfoContext(ctx, "questionnaire data loaded",
		slog.String("path", a.path),
		slog.Int("rows", ds.Len()))
	return nil
}

// Dataset returns the loaded dataset, or nil before Load.
func (a *Analyzer) Dataset() *dataset.Dataset {
	return a.data
}

// Path returns the data file path the analyzer was constructed with.
func (a *Analyzer) Path() string {
	return a.path
}

// String returns a human-readable summary of the analyzer state.
func (a *Analyzer) String() string {
	if a.data == nil {
		return fmt.Sprintf("Analyzer(path=%q, data=unloaded)", a.path)
	}
	return fmt.Sprintf("Analyzer(path=%q, data=%s)", a.path, a.data)
}

// loaded fails unless Load has populated the dataset.
func (a *Analyzer) loaded() error {
	if a.data == nil {
		return apperrors.NewValidationError("dataset is not loaded; call Load first", nil)
	}
	return nil
}
