package analysis

import (
	"context"
	"log/slog"
	"strings"

	"surveycli/internal/dataset"
)

// ValidateEmail reports whether an email address passes the questionnaire's
// validity rules, all of which must hold:
//
//   - exactly one "@" in the whole string;
//   - at least one "." anywhere in the string;
//   - the first character is neither "@" nor ".";
//   - the last character is neither "@" nor ".";
//   - the character immediately following the "@" is not ".".
//
// The last rule is deliberately narrow: only the position right after the
// "@" is checked, not every ".".
func ValidateEmail(email string) bool {
	if strings.Count(email, "@") != 1 {
		return false
	}
	if !strings.Contains(email, ".") {
		return false
	}
	if email[0] == '@' || email[0] == '.' {
		return false
	}
	last := email[len(email)-1]
	if last == '@' || last == '.' {
		return false
	}
	at := strings.IndexByte(email, '@')
	if at+1 < len(email) && email[at+1] == '.' {
		return false
	}
	return true
}

// RemoveRowsWithoutMail returns a new dataset keeping only the rows whose
// email passes ValidateEmail, re-indexed contiguously from zero. The loaded
// dataset is untouched.
func (a *Analyzer) RemoveRowsWithoutMail(ctx context.Context) (*dataset.Dataset, error) {
	if err := a.loaded(); err != nil {
		return nil, err
	}
	if err := a.data.RequireColumns("email"); err != nil {
		return nil, err
	}

	var kept []dataset.Record
	for _, rec := range a.data.Records() {
		if ValidateEmail(rec.Email) {
			kept = append(kept, rec)
		}
	}

	a.logger.InfoContext(ctx, "filtered rows with invalid emails",
		slog.Int("rows_in", a.data.Len()),
		slog.Int("rows_kept", len(kept)),
		slog.Int("rows_removed", a.data.Len()-len(kept)))

	return dataset.New(kept, a.data.Columns()), nil
}
