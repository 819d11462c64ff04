package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"surveycli/internal/analysis"
	"surveycli/internal/dataset"
	apperrors "surveycli/internal/errors"
)

// CSVWriter exports analysis results as CSV files.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteScores writes the scored dataset to a CSV file, one row per
// participant. Missing values are written as empty cells.
func (w *CSVWriter) WriteScores(ctx context.Context, path string, ds *dataset.Dataset) error {
	w.logger.InfoContext(ctx, "writing scores CSV",
		slog.String("path", path),
		slog.Int("rows", ds.Len()))

	file, writer, err := w.create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	defer writer.Flush()

	header := []string{"id", "first_name", "last_name", "age", "gender", "email", "q1", "q2", "q3", "q4", "q5", "score"}
	if err := writer.Write(header); err != nil {
		return apperrors.NewStorageError("failed to write scores CSV header", err)
	}

	for i, rec := range ds.Records() {
		row := []string{
			strconv.Itoa(rec.ID),
			rec.FirstName,
			rec.LastName,
			formatOptional(rec.Age),
			rec.Gender,
			rec.Email,
		}
		for _, g := range rec.Grades() {
			row = append(row, formatOptional(g))
		}
		if rec.Score != nil {
			row = append(row, strconv.Itoa(int(*rec.Score)))
		} else {
			row = append(row, "")
		}

		if err := writer.Write(row); err != nil {
			return apperrors.NewStorageError("failed to write scores CSV row", err).
				WithContext("row", i)
		}
	}

	return writer.Error()
}

// WriteGroupMeans writes the grouped per-question means to a CSV file.
func (w *CSVWriter) WriteGroupMeans(ctx context.Context, path string, groups []analysis.GroupMeans) error {
	w.logger.InfoContext(ctx, "writing group means CSV",
		slog.String("path", path),
		slog.Int("groups", len(groups)))

	file, writer, err := w.create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	defer writer.Flush()

	header := []string{"gender", "over_40", "q1", "q2", "q3", "q4", "q5"}
	if err := writer.Write(header); err != nil {
		return apperrors.NewStorageError("failed to write group means CSV header", err)
	}

	for _, group := range groups {
		row := []string{group.Gender, strconv.FormatBool(group.Over40)}
		for _, mean := range group.Means {
			row = append(row, formatOptional(mean))
		}
		if err := writer.Write(row); err != nil {
			return apperrors.NewStorageError("failed to write group means CSV row", err)
		}
	}

	return writer.Error()
}

// create opens path for writing, creating the directory if needed.
func (w *CSVWriter) create(path string) (*os.File, *csv.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, apperrors.NewStorageError("failed to create output directory", err).
			WithContext("path", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to create CSV file", err).
			WithContext("path", path)
	}

	return file, csv.NewWriter(file), nil
}

// formatOptional renders an optional numeric value, empty when missing.
func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g", *v)
}
