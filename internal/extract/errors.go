package extract

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category name or value is not one of
// the supported report types. It is a configuration error and is never retried.
var ErrUnknownCategory = errors.New("unknown report category")

// ErrNoValue marks an empty or absent cell, as opposed to a numeric zero.
var ErrNoValue = errors.New("no value")

// ErrNotNumeric marks a cell that does not parse as a plain decimal.
var ErrNotNumeric = errors.New("not numeric")

// MissingColumnsError lists every required column absent from a headered table.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}
