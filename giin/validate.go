package giin

import (
	"fmt"
	"io"
	"strings"
)

// Validator checks data rows against the field rules and the party allow-list.
type Validator struct {
	allowed         map[string]struct{}
	allowDuplicates bool
}

// NewValidator builds a validator from the party table and cfg.ExtraParties.
func NewValidator(cfg Config) *Validator {
	known := KnownParties()
	allowed := make(map[string]struct{}, len(known)+len(cfg.ExtraParties))
	for _, name := range known {
		allowed[name] = struct{}{}
	}
	for _, name := range cfg.ExtraParties {
		name = strings.TrimSpace(name)
		if name != "" {
			allowed[name] = struct{}{}
		}
	}
	return &Validator{allowed: allowed, allowDuplicates: cfg.AllowDuplicateIDs}
}

// ValidateRow returns the problems of a single row, or nil. A column count
// mismatch is reported alone since the remaining fields cannot be located.
func (v *Validator) ValidateRow(layout Layout, row Row) *RowError {
	if len(row.Fields) != layout.Width() {
		return &RowError{
			Line:    row.Line,
			Kind:    ErrRowShape,
			Reasons: []string{fmt.Sprintf("column count %d != %d", len(row.Fields), layout.Width())},
		}
	}
	var reasons []string
	if age := layout.Value(row, FieldAge); age != "" && !isDigits(age) {
		reasons = append(reasons, "age is not an integer")
	}
	party := layout.Value(row, FieldParty)
	if party == "" {
		party = UnknownParty
	}
	if _, ok := v.allowed[party]; !ok {
		reasons = append(reasons, fmt.Sprintf("unknown party '%s'", party))
	}
	if len(reasons) == 0 {
		return nil
	}
	return &RowError{Line: row.Line, Kind: ErrRowField, Reasons: reasons}
}

// ValidateRows checks every row and never stops at the first failure.
func (v *Validator) ValidateRows(layout Layout, rows []Row) []RowError {
	var errs []RowError
	seen := make(map[string]int, len(rows))
	reserved := groupKeys(layout, rows)
	for _, row := range rows {
		rowErr := v.ValidateRow(layout, row)
		if rowErr != nil && rowErr.Kind == ErrRowShape {
			errs = append(errs, *rowErr)
			continue
		}
		id := layout.Value(row, FieldID)
		if _, taken := reserved[id]; taken {
			if rowErr == nil {
				rowErr = &RowError{Line: row.Line, Kind: ErrRowField}
			}
			rowErr.Reasons = append(rowErr.Reasons, fmt.Sprintf("id '%s' collides with a group key", id))
		}
		if !v.allowDuplicates {
			if first, dup := seen[id]; dup {
				if rowErr == nil {
					rowErr = &RowError{Line: row.Line, Kind: ErrRowField}
				}
				rowErr.Reasons = append(rowErr.Reasons, fmt.Sprintf("duplicate id '%s' (first seen on line %d)", id, first))
			} else {
				seen[id] = row.Line
			}
		}
		if rowErr != nil {
			errs = append(errs, *rowErr)
		}
	}
	return errs
}

// groupKeys returns every top-level key the builder may emit for rows
// besides the candidate ids themselves.
func groupKeys(layout Layout, rows []Row) map[string]struct{} {
	keys := map[string]struct{}{
		DistrictCategoryKey:     {},
		ProportionalCategoryKey: {},
		ProportionalGroupKey:    {},
	}
	for _, key := range partyKeys {
		keys[key] = struct{}{}
	}
	if layout.HasReading() {
		for _, row := range KanaRows() {
			keys[row.Label] = struct{}{}
		}
	}
	for _, row := range rows {
		if len(row.Fields) != layout.Width() || IsProportional(layout.Value(row, FieldDistrict)) {
			continue
		}
		keys[NormalizePrefecture(layout.Value(row, FieldPrefecture))] = struct{}{}
	}
	return keys
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// Report is the outcome of header and row validation.
type Report struct {
	Layout    Layout
	HeaderErr *HeaderError
	Rows      int
	Errors    []RowError
	Warnings  []Diagnostic
}

// OK reports whether the file may be converted.
func (r *Report) OK() bool {
	return r.HeaderErr == nil && len(r.Errors) == 0
}

// Print writes the human-readable validation result.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "[Header Check]")
	if r.HeaderErr != nil {
		fmt.Fprintln(w, "  ERROR: header mismatch")
		for i, cols := range r.HeaderErr.Expected {
			label := "  Expected: "
			if i > 0 {
				label = "        or: "
			}
			fmt.Fprintf(w, "%s[%s]\n", label, joinColumns(cols))
		}
		fmt.Fprintf(w, "  Found:    [%s]\n", joinColumns(r.HeaderErr.Found))
		return
	}
	fmt.Fprintf(w, "  OK: header matches expected format (%s)\n", r.Layout)
	for _, e := range r.Errors {
		for _, reason := range e.Reasons {
			fmt.Fprintf(w, "Row %d: %s\n", e.Line, reason)
		}
	}
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "Validation completed with %d error rows\n", len(r.Errors))
		return
	}
	fmt.Fprintln(w, "Validation completed successfully")
}

// PrintWarnings writes non-fatal grouping diagnostics.
func (r *Report) PrintWarnings(w io.Writer) {
	for _, d := range r.Warnings {
		fmt.Fprintf(w, "Warning: row %d (id %s): %s\n", d.Line, d.ID, d.Message)
	}
}
