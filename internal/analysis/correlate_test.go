package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "surveycli/internal/errors"
)

func TestCorrelateGenderAge(t *testing.T) {
	ctx := context.Background()
	analyzer := newLoadedAnalyzer(t, `[
		{"email": "a@b.c", "gender": "F", "age": 35, "q1": 10, "q2": 20, "q3": 30, "q4": 40, "q5": 50},
		{"email": "d@e.f", "gender": "F", "age": 45, "q1": 20, "q2": 20, "q3": 30, "q4": 40, "q5": 50},
		{"email": "g@h.i", "gender": "F", "age": null, "q1": 99, "q2": 99, "q3": 99, "q4": 99, "q5": 99}
	]`)

	groups, err := analyzer.CorrelateGenderAge(ctx)
	require.NoError(t, err)

	// the missing-age row is excluded entirely, so only two groups exist
	require.Len(t, groups, 2)

	under := groups[0]
	assert.Equal(t, "F", under.Gender)
	assert.False(t, under.Over40)
	require.NotNil(t, under.Means[0])
	assert.Equal(t, 10.0, *under.Means[0])

	over := groups[1]
	assert.Equal(t, "F", over.Gender)
	assert.True(t, over.Over40)
	require.NotNil(t, over.Means[0])
	assert.Equal(t, 20.0, *over.Means[0])
}

func TestCorrelateGenderAge_BoundaryAndOrdering(t *testing.T) {
	analyzer := newLoadedAnalyzer(t, `[
		{"email": "a@b.c", "gender": "M", "age": 41, "q1": 1, "q2": 1, "q3": 1, "q4": 1, "q5": 1},
		{"email": "d@e.f", "gender": "F", "age": 40, "q1": 2, "q2": 2, "q3": 2, "q4": 2, "q5": 2},
		{"email": "g@h.i", "gender": "M", "age": 20, "q1": 3, "q2": 3, "q3": 3, "q4": 3, "q5": 3},
		{"email": "j@k.l", "gender": "F", "age": 80, "q1": 4, "q2": 4, "q3": 4, "q4": 4, "q5": 4}
	]`)

	groups, err := analyzer.CorrelateGenderAge(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 4)

	// gender lexicographic, then under-40 before over-40;
	// age exactly 40 is NOT over 40
	wantOrder := []struct {
		gender string
		over40 bool
		q1     float64
	}{
		{gender: "F", over40: false, q1: 2},
		{gender: "F", over40: true, q1: 4},
		{gender: "M", over40: false, q1: 3},
		{gender: "M", over40: true, q1: 1},
	}
	for i, want := range wantOrder {
		assert.Equal(t, want.gender, groups[i].Gender, "group %d", i)
		assert.Equal(t, want.over40, groups[i].Over40, "group %d", i)
		require.NotNil(t, groups[i].Means[0], "group %d", i)
		assert.Equal(t, want.q1, *groups[i].Means[0], "group %d", i)
	}
}

func TestCorrelateGenderAge_MissingGradesWithinGroup(t *testing.T) {
	analyzer := newLoadedAnalyzer(t, `[
		{"email": "a@b.c", "gender": "F", "age": 30, "q1": 10, "q2": null, "q3": 30, "q4": 40, "q5": 50},
		{"email": "d@e.f", "gender": "F", "age": 31, "q1": 20, "q2": null, "q3": 60, "q4": 80, "q5": 100}
	]`)

	groups, err := analyzer.CorrelateGenderAge(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)

	group := groups[0]
	// mean of present values only
	require.NotNil(t, group.Means[0])
	assert.Equal(t, 15.0, *group.Means[0])
	// nobody answered q2: mean is undefined, not zero
	assert.Nil(t, group.Means[1])
	require.NotNil(t, group.Means[2])
	assert.Equal(t, 45.0, *group.Means[2])
}

func TestCorrelateGenderAge_AllAgesMissing(t *testing.T) {
	analyzer := newLoadedAnalyzer(t, `[
		{"email": "a@b.c", "gender": "F", "age": null, "q1": 1, "q2": 1, "q3": 1, "q4": 1, "q5": 1}
	]`)

	groups, err := analyzer.CorrelateGenderAge(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestCorrelateGenderAge_MissingColumns(t *testing.T) {
	analyzer := newLoadedAnalyzer(t, `[{"email": "a@b.c", "q1": 1}]`)

	_, err := analyzer.CorrelateGenderAge(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsSchema(err))
}
