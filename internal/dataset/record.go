package dataset

// GradeColumns lists the questionnaire grade columns in their survey order.
var GradeColumns = []string{"q1", "q2", "q3", "q4", "q5"}

// Record represents one participant's questionnaire response.
// Optional fields use pointers; nil means the value is missing, which is
// distinct from zero.
type Record struct {
	ID        int      `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Age       *float64 `json:"age" validate:"omitempty,gte=0"`
	Email     string   `json:"email"`
	Gender    string   `json:"gender"`
	Q1        *float64 `json:"q1" validate:"omitempty,gte=0,lte=100"`
	Q2        *float64 `json:"q2" validate:"omitempty,gte=0,lte=100"`
	Q3        *float64 `json:"q3" validate:"omitempty,gte=0,lte=100"`
	Q4        *float64 `json:"q4" validate:"omitempty,gte=0,lte=100"`
	Q5        *float64 `json:"q5" validate:"omitempty,gte=0,lte=100"`

	// Score is the derived per-subject summary grade. It is nil until a
	// scoring pass appends the column.
	Score *uint8 `json:"score,omitempty"`
}

// Grades returns pointers to the five grade values in survey order.
// Entries are nil where the participant did not answer.
func (r *Record) Grades() [5]*float64 {
	return [5]*float64{r.Q1, r.Q2, r.Q3, r.Q4, r.Q5}
}

// SetGrade sets the i-th grade (0-based) to v.
func (r *Record) SetGrade(i int, v float64) {
	value := v
	switch i {
	case 0:
		r.Q1 = &value
	case 1:
		r.Q2 = &value
	case 2:
		r.Q3 = &value
	case 3:
		r.Q4 = &value
	case 4:
		r.Q5 = &value
	}
}

// MissingGrades returns how many of the five grades are missing.
func (r *Record) MissingGrades() int {
	missing := 0
	for _, g := range r.Grades() {
		if g == nil {
			missing++
		}
	}
	return missing
}

// Clone returns a deep copy of the record; pointer fields are duplicated so
// mutating the copy never touches the original.
func (r Record) Clone() Record {
	clone := r
	clone.Age = clonePtr(r.Age)
	clone.Q1 = clonePtr(r.Q1)
	clone.Q2 = clonePtr(r.Q2)
	clone.Q3 = clonePtr(r.Q3)
	clone.Q4 = clonePtr(r.Q4)
	clone.Q5 = clonePtr(r.Q5)
	if r.Score != nil {
		score := *r.Score
		clone.Score = &score
	}
	return clone
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	value := *v
	return &value
}

// Float returns a pointer to v. It is a convenience for building records in
// code and tests.
func Float(v float64) *float64 {
	return &v
}
