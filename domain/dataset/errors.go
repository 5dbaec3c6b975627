package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks.
var (
	ErrSchema       = errors.New("schema mismatch")
	ErrLoad         = errors.New("dataset load failed")
	ErrUnknownField = errors.New("unknown numeric field")
	ErrNoValues     = errors.New("no values to summarize")
)

// SchemaError reports a source sheet that lacks required columns.
type SchemaError struct {
	Sheet   string
	Missing []Field
}

func (e *SchemaError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("sheet %q is missing required columns: %s", e.Sheet, strings.Join(names, ", "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// LoadError reports a source that could not be read. Sheet, Row and Column
// are set when the failure is tied to a specific cell.
type LoadError struct {
	Source string
	Sheet  string
	Row    int
	Column Field
	Err    error
}

func (e *LoadError) Error() string {
	var loc strings.Builder
	loc.WriteString(e.Source)
	if e.Sheet != "" {
		fmt.Fprintf(&loc, " sheet %q", e.Sheet)
	}
	if e.Row > 0 {
		fmt.Fprintf(&loc, " row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&loc, " column %s", e.Column)
	}
	return fmt.Sprintf("load %s: %v", loc.String(), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

func unknownField(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, name)
}
