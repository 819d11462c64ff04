// Package analysis implements the five questionnaire analysis operations on
// top of a loaded dataset.
//
// # Architecture
//
// One Analyzer wraps one dataset loaded from a JSON data file. The five
// operations are independent:
//
//  1. AgeDistribution: histogram of ages over fixed decade bins
//  2. RemoveRowsWithoutMail: drops rows with invalid email addresses
//  3. FillMissingGrades: imputes missing grades with the row's own mean
//  4. ScoreSubjects: floored mean score with a missing-answer threshold
//  5. CorrelateGenderAge: per-question means grouped by (gender, over-40)
//
// No operation mutates the loaded dataset; the cleaning operations return
// new datasets, and repeated calls read the original table fresh.
//
// # Usage
//
//	analyzer, err := analysis.New("data.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := analyzer.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	counts, edges, err := analyzer.AgeDistribution(ctx)
//
// # Error Handling
//
// Construction fails on a nonexistent path, Load fails on malformed JSON,
// and operations fail with schema errors when the data file lacks a column
// they need. All errors are typed (internal/errors) and immediate; there are
// no partial results.
package analysis
