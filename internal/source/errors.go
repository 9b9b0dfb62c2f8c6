package source

import (
	"errors"
	"fmt"
)

var (
	ErrMissingName   = errors.New("missing Name field")
	ErrEmptyName     = errors.New("empty Name value")
	ErrUnknownFormat = errors.New("unknown input format")
	ErrNoRecords     = errors.New("no host records")
)

// InputError wraps a failure to read host records. Row is the 1-based data
// record number, or 0 when the error is not tied to a record.
type InputError struct {
	Source string
	Row    int
	Err    error
}

func (e *InputError) Error() string {
	switch {
	case e.Source != "" && e.Row > 0:
		return fmt.Sprintf("%s: row %d: %v", e.Source, e.Row, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	case e.Source != "":
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
	return e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}
