package analysis

import (
	"context"
	"log/slog"

	"surveycli/internal/dataset"
)

// FillMissingGrades finds the participants that did not answer all five
// questions and fills each missing grade with the mean of that row's present
// grades. The mean is written unrounded.
//
// It returns the corrected dataset together with the ascending original row
// indices that actually had a value imputed. Rows with all five grades
// missing have an undefined mean; they are left as-is and are not reported.
func (a *Analyzer) FillMissingGrades(ctx context.Context) (*dataset.Dataset, []int, error) {
	if err := a.loaded(); err != nil {
		return nil, nil, err
	}
	if err := a.data.RequireColumns(dataset.GradeColumns...); err != nil {
		return nil, nil, err
	}

	records := a.data.Records()
	imputed := make([]int, 0)

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
		if present == len(grades) || present == 0 {
			continue
		}

		mean := sum / float64(present)
		for j, g := range grades {
			if g == nil {
				records[i].SetGrade(j, mean)
			}
		}
		imputed = append(imputed, i)
	}

	a.logger.InfoContext(ctx, "imputed missing grades",
		slog.Int("rows", len(records)),
		slog.Int("rows_imputed", len(imputed)))

	return dataset.New(records, a.data.Columns()), imputed, nil
}
