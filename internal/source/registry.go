// Package source reads host records from the supported input formats.
package source

import (
	"io"

	"github.com/ThomasCrouzet/invgen/internal/model"
)

// RegisteredSource defines the interface for self-registering record formats.
type RegisteredSource interface {
	Metadata() SourceMetadata
	Read(r io.Reader) ([]model.HostRecord, error)
}

// SourceMetadata describes a record format for selection and documentation.
type SourceMetadata struct {
	Name        string   // format key, e.g. "csv"
	DisplayName string   // human-readable, e.g. "CSV export"
	Description string   // one-line description
	Extensions  []string // file extensions handled, e.g. ".csv"
}

// ValidationError reports an input problem with a suggested fix.
type ValidationError struct {
	Field      string // config key, e.g. "input"
	Message    string // what's wrong
	Suggestion string // how to fix it
}

var registry []func() RegisteredSource

// Register adds a source factory to the global registry.
// Each format calls this in its init().
func Register(factory func() RegisteredSource) {
	registry = append(registry, factory)
}

// All returns fresh instances of every registered source.
func All() []RegisteredSource {
	out := make([]RegisteredSource, len(registry))
	for i, f := range registry {
		out[i] = f()
	}
	return out
}

// Formats returns the names of all registered formats.
func Formats() []string {
	var names []string
	for _, s := range All() {
		names = append(names, s.Metadata().Name)
	}
	return names
}
