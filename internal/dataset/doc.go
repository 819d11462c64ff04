// Package dataset holds the in-memory table of questionnaire responses.
//
// A Dataset is loaded once from a JSON array of participant objects and is
// never mutated by analysis operations; everything that "cleans" data works
// on deep copies. Missing values are represented as nil pointers on Record,
// never as zero or NaN, and the set of columns the source actually provided
// is tracked separately so an absent column can be reported as a schema
// error at first use.
package dataset
