package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"surveycli/internal/analysis"
	"surveycli/internal/config"
	"surveycli/internal/exporter"
	"surveycli/internal/infrastructure"
)

func main() {
	inFile := flag.String("in", "", "questionnaire JSON file (defaults to the configured data file)")
	outDir := flag.String("out", "", "output directory for reports (defaults to the configured reports directory)")
	maxMissing := flag.Int("max-missing", -1, "maximum unanswered questions per participant before the score is withheld (defaults to the configured threshold)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	if *inFile != "" {
		cfg.Paths.DataFile = *inFile
	}
	if *outDir != "" {
		cfg.Paths.ReportsDir = *outDir
	}
	if *maxMissing >= 0 {
		cfg.Analysis.MaxMissingGrades = *maxMissing
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())

	if err := run(ctx, logger, cfg); err != nil {
		logger.ErrorContext(ctx, "analysis run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	if err := cfg.EnsureReportsDir(); err != nil {
		return err
	}

	report := exporter.NewExcelReport(logger)

	analyzer, err := analysis.New(cfg.Paths.DataFile,
		analysis.WithLogger(logger),
		analysis.WithRenderer(report),
	)
	if err != nil {
		return err
	}

	if err := analyzer.Load(ctx); err != nil {
		return err
	}
	logger.InfoContext(ctx, "analyzer ready", slog.String("state", analyzer.String()))

	counts, edges, err := analyzer.AgeDistribution(ctx)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "age distribution",
		slog.Any("counts", counts),
		slog.Any("bin_edges", edges))

	withMail, err := analyzer.RemoveRowsWithoutMail(ctx)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "email filtering done",
		slog.Int("rows_with_valid_mail", withMail.Len()))

	filled, imputedRows, err := analyzer.FillMissingGrades(ctx)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "grade imputation done",
		slog.Int("rows", filled.Len()),
		slog.Any("imputed_rows", imputedRows))

	scored, err := analyzer.ScoreSubjects(ctx, cfg.Analysis.MaxMissingGrades)
	if err != nil {
		return err
	}

	groups, err := analyzer.CorrelateGenderAge(ctx)
	if err != nil {
		return err
	}

	csvWriter := exporter.NewCSVWriter(logger)
	if err := csvWriter.WriteScores(ctx, cfg.ReportPath("scores.csv"), scored); err != nil {
		return err
	}
	if err := csvWriter.WriteGroupMeans(ctx, cfg.ReportPath("group_means.csv"), groups); err != nil {
		return err
	}

	if err := report.AddScores(ctx, scored); err != nil {
		return err
	}
	if err := report.AddGroupMeans(ctx, groups); err != nil {
		return err
	}
	reportPath := cfg.ReportPath("survey_report.xlsx")
	if err := report.Save(ctx, reportPath); err != nil {
		return err
	}

	logger.InfoContext(ctx, "analysis run complete",
		slog.Int("participants", analyzer.Dataset().Len()),
		slog.Int("groups", len(groups)),
		slog.String("report", reportPath))
	fmt.Println(analyzer.String())
	return nil
}
