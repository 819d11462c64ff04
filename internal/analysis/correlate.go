package analysis

import (
	"context"
	"log/slog"
	"sort"

	"surveycli/internal/dataset"
)

// GroupMeans holds the per-question mean grades of one (gender, over-40)
// group. A nil mean marks a question no one in the group answered.
type GroupMeans struct {
	Gender string
	Over40 bool
	Means  [5]*float64
}

// CorrelateGenderAge groups participants by gender and by whether they are
// strictly older than 40, and computes the mean of each question's present
// grades per group. Rows with a missing age are excluded entirely.
//
// Groups are ordered by gender, then under-40 before over-40, so repeated
// calls produce identical output.
func (a *Analyzer) CorrelateGenderAge(ctx context.Context) ([]GroupMeans, error) {
	if err := a.loaded(); err != nil {
		return nil, err
	}
	cols := append([]string{"gender", "age"}, dataset.GradeColumns...)
	if err := a.data.RequireColumns(cols...); err != nil {
		return nil, err
	}

	type groupKey struct {
		gender string
		over40 bool
	}
	type groupAgg struct {
		sums   [5]float64
		counts [5]int
	}

	groups := make(map[groupKey]*groupAgg)
	dropped := 0
	for _, rec := range a.data.Records() {
		if rec.Age == nil {
			dropped++
			continue
		}
		key := groupKey{gender: rec.Gender, over40: *rec.Age > 40}
		agg, ok := groups[key]
		if !ok {
			agg = &groupAgg{}
			groups[key] = agg
		}
		for i, g := range rec.Grades() {
			if g != nil {
				agg.sums[i] += *g
				agg.counts[i]++
			}
		}
	}

	result := make([]GroupMeans, 0, len(groups))
	for key, agg := range groups {
		gm := GroupMeans{Gender: key.gender, Over40: key.over40}
		for i := range agg.sums {
			if agg.counts[i] > 0 {
				mean := agg.sums[i] / float64(agg.counts[i])
				gm.Means[i] = &mean
			}
		}
		result = append(result, gm)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Gender != result[j].Gender {
			return result[i].Gender < result[j].Gender
		}
		return !result[i].Over40 && result[j].Over40
	})

	a.logger.InfoContext(ctx, "correlated gender and age groups",
		slog.Int("groups", len(result)),
		slog.Int("rows_dropped_missing_age", dropped))

	return result, nil
}
