package analysis

import (
	"context"
	"log/slog"
)

// AgeBinEdges are the fixed decade bin edges of the age histogram.
var AgeBinEdges = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// AgeDistribution computes the participants' age histogram over the fixed
// decade bins. Rows with a missing age are skipped. Bins are left-inclusive
// and right-exclusive, except the last bin which also includes 100.
//
// When a renderer was injected it is asked to draw the histogram; a render
// failure is logged and does not fail the operation.
func (a *Analyzer) AgeDistribution(ctx context.Context) ([]int, []float64, error) {
	if err := a.loaded(); err != nil {
		return nil, nil, err
	}
	if err := a.data.RequireColumns("age"); err != nil {
		return nil, nil, err
	}

	var ages []float64
	counts := make([]int, len(AgeBinEdges)-1)
	for _, rec := range a.data.Records() {
		if rec.Age == nil {
			continue
		}
		age := *rec.Age
		ages = append(ages, age)
		if bin, ok := ageBin(age); ok {
			counts[bin]++
		}
	}

	edges := make([]float64, len(AgeBinEdges))
	copy(edges, AgeBinEdges)

	a.logger.InfoContext(ctx, "computed age distribution",
		slog.Int("rows", a.data.Len()),
		slog.Int("ages_counted", len(ages)))

	if a.renderer != nil {
		if err := a.renderer.RenderHistogram(ctx, ages, edges, counts); err != nil {
			a.logger.WarnContext(ctx, "histogram rendering failed",
				slog.String("error", err.Error()))
		}
	}

	return counts, edges, nil
}

// ageBin returns the bin index for an age, or false when the age falls
// outside the fixed edges.
func ageBin(age float64) (int, bool) {
	first := AgeBinEdges[0]
	last := AgeBinEdges[len(AgeBinEdges)-1]
	if age < first || age > last {
		return 0, false
	}
	// the final bin is closed on both sides
	if age == last {
		return len(AgeBinEdges) - 2, true
	}
	return int((age - first) / 10), true
}
