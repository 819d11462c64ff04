package exporter

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveycli/internal/analysis"
	"surveycli/internal/dataset"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWriter_WriteScores(t *testing.T) {
	score := uint8(30)
	ds := dataset.New([]dataset.Record{
		{
			ID: 1, FirstName: "Dana", LastName: "Levi",
			Age: dataset.Float(24), Gender: "F", Email: "dana@mail.com",
			Q1: dataset.Float(10), Q2: dataset.Float(20), Q3: dataset.Float(30),
			Q4: dataset.Float(40), Q5: dataset.Float(50),
			Score: &score,
		},
		{
			ID: 2, FirstName: "Noa", LastName: "Bar",
			Gender: "F", Email: "noa@mail.com",
			Q2: dataset.Float(12.5),
		},
	}, []string{"id", "email"})

	path := filepath.Join(t.TempDir(), "out", "scores.csv")
	writer := NewCSVWriter(nil)
	require.NoError(t, writer.WriteScores(context.Background(), path, ds))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"id", "first_name", "last_name", "age", "gender", "email", "q1", "q2", "q3", "q4", "q5", "score"}, rows[0])
	assert.Equal(t, []string{"1", "Dana", "Levi", "24", "F", "dana@mail.com", "10", "20", "30", "40", "50", "30"}, rows[1])
	// missing values stay empty, not zero
	assert.Equal(t, []string{"2", "Noa", "Bar", "", "F", "noa@mail.com", "", "12.5", "", "", "", ""}, rows[2])
}

func TestCSVWriter_WriteGroupMeans(t *testing.T) {
	mean := 15.0
	groups := []analysis.GroupMeans{
		{Gender: "F", Over40: false, Means: [5]*float64{&mean, nil, nil, nil, nil}},
		{Gender: "F", Over40: true},
	}

	path := filepath.Join(t.TempDir(), "groups.csv")
	writer := NewCSVWriter(nil)
	require.NoError(t, writer.WriteGroupMeans(context.Background(), path, groups))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"gender", "over_40", "q1", "q2", "q3", "q4", "q5"}, rows[0])
	assert.Equal(t, []string{"F", "false", "15", "", "", "", ""}, rows[1])
	assert.Equal(t, []string{"F", "true", "", "", "", "", ""}, rows[2])
}
