package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"surveycli/internal/analysis"
	"surveycli/internal/dataset"
	apperrors "surveycli/internal/errors"
)

const (
	histogramSheet  = "AgeHistogram"
	scoresSheet     = "Scores"
	groupMeansSheet = "GroupMeans"
)

// ExcelReport accumulates analysis results into one Excel workbook.
//
// It doubles as the analyzer's plotting collaborator: RenderHistogram puts
// the age distribution on its own sheet with a column chart, so handing the
// report to analysis.WithRenderer is all the wiring the demonstration entry
// point needs.
type ExcelReport struct {
	logger *slog.Logger
	file   *excelize.File
}

// NewExcelReport creates an empty report workbook.
func NewExcelReport(logger *slog.Logger) *ExcelReport {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelReport{logger: logger, file: excelize.NewFile()}
}

// RenderHistogram writes the age bins and counts to the histogram sheet and
// draws a column chart next to them. It implements analysis.HistogramRenderer.
func (r *ExcelReport) RenderHistogram(ctx context.Context, ages []float64, edges []float64, counts []int) error {
	if _, err := r.file.NewSheet(histogramSheet); err != nil {
		return apperrors.NewStorageError("failed to create histogram sheet", err)
	}

	if err := r.file.SetSheetRow(histogramSheet, "A1", &[]interface{}{"bin", "count"}); err != nil {
		return apperrors.NewStorageError("failed to write histogram header", err)
	}
	for i, count := range counts {
		label := fmt.Sprintf("%g-%g", edges[i], edges[i+1])
		cell := fmt.Sprintf("A%d", i+2)
		if err := r.file.SetSheetRow(histogramSheet, cell, &[]interface{}{label, count}); err != nil {
			return apperrors.NewStorageError("failed to write histogram row", err)
		}
	}

	lastRow := len(counts) + 1
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", histogramSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", histogramSheet, lastRow),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", histogramSheet, lastRow),
			},
		},
		Title: []excelize.RichTextRun{
			{Text: "Age distribution"},
		},
	}
	if err := r.file.AddChart(histogramSheet, "D2", chart); err != nil {
		return apperrors.NewStorageError("failed to add histogram chart", err)
	}

	r.logger.InfoContext(ctx, "rendered age histogram",
		slog.Int("bins", len(counts)),
		slog.Int("ages", len(ages)))
	return nil
}

// AddScores writes the scored dataset to the scores sheet.
func (r *ExcelReport) AddScores(ctx context.Context, ds *dataset.Dataset) error {
	if _, err := r.file.NewSheet(scoresSheet); err != nil {
		return apperrors.NewStorageError("failed to create scores sheet", err)
	}

	header := []interface{}{"id", "first_name", "last_name", "age", "gender", "email", "q1", "q2", "q3", "q4", "q5", "score"}
	if err := r.file.SetSheetRow(scoresSheet, "A1", &header); err != nil {
		return apperrors.NewStorageError("failed to write scores header", err)
	}

	for i, rec := range ds.Records() {
		row := []interface{}{rec.ID, rec.FirstName, rec.LastName, optionalCell(rec.Age), rec.Gender, rec.Email}
		for _, g := range rec.Grades() {
			row = append(row, optionalCell(g))
		}
		if rec.Score != nil {
			row = append(row, int(*rec.Score))
		} else {
			row = append(row, nil)
		}

		cell := fmt.Sprintf("A%d", i+2)
		if err := r.file.SetSheetRow(scoresSheet, cell, &row); err != nil {
			return apperrors.NewStorageError("failed to write scores row", err).
				WithContext("row", i)
		}
	}

	r.logger.InfoContext(ctx, "added scores sheet", slog.Int("rows", ds.Len()))
	return nil
}

// AddGroupMeans writes the grouped per-question means to their sheet.
func (r *ExcelReport) AddGroupMeans(ctx context.Context, groups []analysis.GroupMeans) error {
	if _, err := r.file.NewSheet(groupMeansSheet); err != nil {
		return apperrors.NewStorageError("failed to create group means sheet", err)
	}

	header := []interface{}{"gender", "over_40", "q1", "q2", "q3", "q4", "q5"}
	if err := r.file.SetSheetRow(groupMeansSheet, "A1", &header); err != nil {
		return apperrors.NewStorageError("failed to write group means header", err)
	}

	for i, group := range groups {
		row := []interface{}{group.Gender, strconv.FormatBool(group.Over40)}
		for _, mean := range group.Means {
			row = append(row, optionalCell(mean))
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := r.file.SetSheetRow(groupMeansSheet, cell, &row); err != nil {
			return apperrors.NewStorageError("failed to write group means row", err)
		}
	}

	r.logger.InfoContext(ctx, "added group means sheet", slog.Int("groups", len(groups)))
	return nil
}

// Save writes the workbook to path and closes it.
func (r *ExcelReport) Save(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create report directory", err).
			WithContext("path", path)
	}

	// Drop the default sheet if any report sheet was written.
	if len(r.file.GetSheetList()) > 1 {
		if err := r.file.DeleteSheet("Sheet1"); err != nil {
			return apperrors.NewStorageError("failed to drop default sheet", err)
		}
	}

	if err := r.file.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save Excel report", err).
			WithContext("path", path)
	}
	if err := r.file.Close(); err != nil {
		return apperrors.NewStorageError("failed to close Excel report", err)
	}

	r.logger.InfoContext(ctx, "saved Excel report", slog.String("path", path))
	return nil
}

// optionalCell converts an optional float to an Excel cell value, leaving
// the cell empty when the value is missing.
func optionalCell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
