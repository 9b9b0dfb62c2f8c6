package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ThomasCrouzet/invgen/internal/model"
)

// Resolve picks the source for an input. An explicit format wins over the
// file extension.
func Resolve(path, format string) (RegisteredSource, error) {
	if format != "" {
		for _, s := range All() {
			if s.Metadata().Name == strings.ToLower(format) {
				return s, nil
			}
		}
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range All() {
		for _, e := range s.Metadata().Extensions {
			if e == ext {
				return s, nil
			}
		}
	}
	return nil, fmt.Errorf("%w for %q (supported: %s)", ErrUnknownFormat, path, strings.Join(Formats(), ", "))
}

// Load reads every host record from path. Any problem with the file or with
// a single record fails the whole load.
func Load(path, format string) ([]model.HostRecord, error) {
	src, err := Resolve(path, format)
	if err != nil {
		return nil, &InputError{Source: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Source: path, Err: err}
	}
	defer f.Close()

	records, err := src.Read(f)
	if err != nil {
		var ierr *InputError
		if errors.As(err, &ierr) {
			ierr.Source = path
			return nil, ierr
		}
		return nil, &InputError{Source: path, Err: err}
	}
	return records, nil
}

// Validate checks that an input can be read without loading it.
func Validate(path, format string) []ValidationError {
	var errs []ValidationError
	if path == "" {
		return append(errs, ValidationError{
			Field:      "input",
			Message:    "input is required",
			Suggestion: "set input in invgen.yml or pass --input",
		})
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		errs = append(errs, ValidationError{
			Field:      "input",
			Message:    fmt.Sprintf("file not found: %s", path),
			Suggestion: "check the path or run 'invgen init' to reconfigure",
		})
	}
	if _, err := Resolve(path, format); err != nil {
		errs = append(errs, ValidationError{
			Field:      "format",
			Message:    err.Error(),
			Suggestion: "use a .csv or .json file, or set --format",
		})
	}
	return errs
}
