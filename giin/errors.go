package giin

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Error kinds reported by the conversion pipeline. Callers match them with errors.Is.
var (
	ErrFileNotFound   = errors.New("input file not found")
	ErrEmptyInput     = errors.New("CSV file is empty")
	ErrHeaderMismatch = errors.New("header mismatch")
	ErrRowShape       = errors.New("column count mismatch")
	ErrRowField       = errors.New("invalid field value")
	ErrValidation     = errors.New("validation failed")
	ErrDangling       = errors.New("group references a missing entry")
)

// HeaderError describes a header that matches none of the known layouts.
type HeaderError struct {
	Expected [][]string
	Found    []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("header mismatch: found [%s]", strings.Join(e.Found, ", "))
}

func (e *HeaderError) Unwrap() error { return ErrHeaderMismatch }

// RowError lists every problem found on a single data row.
type RowError struct {
	Line    int
	Kind    error
	Reasons []string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, strings.Join(e.Reasons, "; "))
}

func (e RowError) Unwrap() error { return e.Kind }

// ValidationError aborts output after row validation found problems.
type ValidationError struct {
	Report *Report
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d error rows", ErrValidation, len(e.Report.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
