package analysis

import (
	"context"
	"log/slog"
	"math"

	"surveycli/internal/dataset"
	apperrors "surveycli/internal/errors"
)

// DefaultMaxMissingGrades is the default number of unanswered questions a
// participant may have and still receive a score.
const DefaultMaxMissingGrades = 1

// ScoreSubjects computes each participant's score, the floored mean of their
// present grades, and returns a new dataset with the score column appended.
//
// A participant with more than maxAllowedMissing unanswered questions gets
// no score; the column value stays absent, not zero. Rows with all five
// grades missing never receive a score regardless of the threshold. Floored
// means beyond the uint8 range are clamped to 255 with a warning; the
// validated 0-100 grade range never reaches it.
func (a *Analyzer) ScoreSubjects(ctx context.Context, maxAllowedMissing int) (*dataset.Dataset, error) {
	if maxAllowedMissing < 0 {
		return nil, apperrors.NewValidationError("maxAllowedMissing must be non-negative", nil).
			WithContext("max_allowed_missing", maxAllowedMissing)
	}
	if err := a.loaded(); err != nil {
		return nil, err
	}
	if err := a.data.RequireColumns(dataset.GradeColumns...); err != nil {
		return nil, err
	}

	records := a.data.Records()
	scored := 0

	for i := range records {
		grades := records[i].Grades()

		sum := 0.0
		present := 0
		for _, g := range grades {
			if g != nil {
				sum += *g
				present++
			}
		}
		missing := len(grades) - present

		records[i].Score = nil
		if missing > maxAllowedMissing || present == 0 {
			continue
		}

		floored := math.Floor(sum / float64(present))
		if floored > math.MaxUint8 {
			a.logger.WarnContext(ctx, "score exceeds uint8 range, clamping",
				slog.Int("row", i),
				slog.Float64("score", floored))
			floored = math.MaxUint8
		}
		score := uint8(floored)
		records[i].Score = &score
		scored++
	}

	a.logger.InfoContext(ctx, "scored subjects",
		slog.Int("rows", len(records)),
		slog.Int("rows_scored", scored),
		slog.Int("max_allowed_missing", maxAllowedMissing))

	out := dataset.New(records, a.data.Columns())
	out.AddColumn("score")
	return out, nil
}
