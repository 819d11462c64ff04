package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "surveycli/internal/errors"
)

// Dataset is an ordered, in-memory table of questionnaire records. It also
// remembers which columns the source file actually provided, so operations
// can distinguish "column missing from the data" from "value missing in a
// row".
type Dataset struct {
	records []Record
	columns map[string]struct{}
}

var recordValidator = validator.New()

// New builds a dataset from records and the set of source column names.
func New(records []Record, columns []string) *Dataset {
	colSet := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		colSet[c] = struct{}{}
	}
	return &Dataset{records: records, columns: colSet}
}

// Load reads the file at path and parses it as a JSON array of participant
// objects. The column set is the union of keys seen across all objects.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read data file", err).
			WithContext("path", path)
	}

	// First pass keeps the raw objects so we know which columns the source
	// provided; a key that never appears is an absent column, not a missing
	// value.
	var rawRows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawRows); err != nil {
		return nil, apperrors.NewParsingError("data file is not a JSON array of objects", err).
			WithContext("path", path)
	}

	columns := make(map[string]struct{})
	for _, row := range rawRows {
		for key := range row {
			columns[key] = struct{}{}
		}
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apperrors.NewParsingError("data file does not match the questionnaire schema", err).
			WithContext("path", path)
	}

	for i := range records {
		if err := recordValidator.Struct(&records[i]); err != nil {
			return nil, apperrors.NewParsingError("record failed validation", err).
				WithContext("row", i)
		}
	}

	ds := &Dataset{records: records, columns: columns}
	return ds, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Record returns a deep copy of the i-th row.
func (d *Dataset) Record(i int) Record {
	return d.records[i].Clone()
}

// Records returns a deep copy of all rows in order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	for i, r := range d.records {
		out[i] = r.Clone()
	}
	return out
}

// Clone returns an independent copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	columns := make(map[string]struct{}, len(d.columns))
	for c := range d.columns {
		columns[c] = struct{}{}
	}
	return &Dataset{records: d.Records(), columns: columns}
}

// HasColumn reports whether the source data provided the named column.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.columns[name]
	return ok
}

// AddColumn registers a derived column on the dataset.
func (d *Dataset) AddColumn(name string) {
	if d.columns == nil {
		d.columns = make(map[string]struct{})
	}
	d.columns[name] = struct{}{}
}

// Columns returns the sorted column names.
func (d *Dataset) Columns() []string {
	out := make([]string, 0, len(d.columns))
	for c := range d.columns {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// RequireColumns fails with a schema error unless every named column was
// present in the source data.
func (d *Dataset) RequireColumns(names ...string) error {
	var missing []string
	for _, name := range names {
		if !d.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewSchemaError(
			fmt.Sprintf("dataset is missing required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("missing_columns", missing)
	}
	return nil
}

// String returns a short human-readable summary of the dataset.
func (d *Dataset) String() string {
	return fmt.Sprintf("Dataset(rows=%d, columns=%s)", len(d.records), strings.Join(d.Columns(), ","))
}
