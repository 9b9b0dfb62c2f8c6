package inventory

import "fmt"

// SerializationError wraps a failure to encode the inventory.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("encoding inventory: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// WriteError wraps a failure to write the output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
