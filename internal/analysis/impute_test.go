package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "surveycli/internal/errors"
)

func TestFillMissingGrades(t *testing.T) {
	ctx := context.Background()
	analyzer := newLoadedAnalyzer(t, `[
		{"id": 1, "email": "a@b.c", "gender": "F", "q1": 10, "q2": null, "q3": 10, "q4": 10, "q5": 10},
		{"id": 2, "email": "d@e.f", "gender": "M", "q1": 20, "q2": 40, "q3": 60, "q4": 80, "q5": 100},
		{"id": 3, "email": "g@h.i", "gender": "F", "q1": null, "q2": 10, "q3": null, "q4": 15, "q5": null}
	]`)

	filled, indices, err := analyzer.FillMissingGrades(ctx)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, indices)

	// row 0: mean of the four present tens
	row0 := filled.Record(0)
	require.NotNil(t, row0.Q2)
	assert.Equal(t, 10.0, *row0.Q2)

	// row 1 fully answered, untouched
	row1 := filled.Record(1)
	assert.Equal(t, 20.0, *row1.Q1)
	assert.Equal(t, 100.0, *row1.Q5)

	// row 2: mean of 10 and 15 is 12.5, written unrounded into each gap
	row2 := filled.Record(2)
	for _, g := range []*float64{row2.Q1, row2.Q3, row2.Q5} {
		require.NotNil(t, g)
		assert.Equal(t, 12.5, *g)
	}

	// non-grade columns preserved unchanged
	assert.Equal(t, 3, row2.ID)
	assert.Equal(t, "g@h.i", row2.Email)

	// original untouched
	assert.Nil(t, analyzer.Dataset().Record(0).Q2)
}

func TestFillMissingGrades_AllGradesMissing(t *testing.T) {
	analyzer := newLoadedAnalyzer(t, `[
		{"id": 1, "email": "a@b.c", "q1": null, "q2": null, "q3": null, "q4": null, "q5": null},
		{"id": 2, "email": "d@e.f", "q1": 5, "q2": null, "q3": 5, "q4": 5, "q5": 5}
	]`)

	filled, indices, err := analyzer.FillMissingGrades(context.Background())
	require.NoError(t, err)

	// the undefined-mean row stays missing and is not reported
	assert.Equal(t, []int{1}, indices)
	row0 := filled.Record(0)
	assert.Equal(t, 5, row0.MissingGrades())
}

func TestFillMissingGrades_NoMissing(t *testing.T) {
	analyzer := newLoadedAnalyzer(t, `[
		{"email": "a@b.c", "q1": 1, "q2": 2, "q3": 3, "q4": 4, "q5": 5}
	]`)

	filled, indices, err := analyzer.FillMissingGrades(context.Background())
	require.NoError(t, err)
	assert.Empty(t, indices)
	assert.Equal(t, analyzer.Dataset().Records(), filled.Records())
}

func TestFillMissingGrades_MissingColumns(t *testing.T) {
	analyzer := newLoadedAnalyzer(t, `[{"email": "a@b.c", "q1": 1, "q2": 2}]`)

	_, _, err := analyzer.FillMissingGrades(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsSchema(err))
}
