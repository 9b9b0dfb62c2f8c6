package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ThomasCrouzet/invgen/internal/model"
)

func init() {
	Register(func() RegisteredSource { return &JSONSource{} })
}

// JSONSource reads host records from a JSON array of objects, or from a
// ServiceNow table API response of the form {"result": [...]}.
type JSONSource struct{}

func (js *JSONSource) Metadata() SourceMetadata {
	return SourceMetadata{
		Name:        "json",
		DisplayName: "JSON export",
		Description: "Reads host names from the name field of a JSON array or ServiceNow table response",
		Extensions:  []string{".json"},
	}
}

func (js *JSONSource) Read(r io.Reader) ([]model.HostRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &InputError{Err: err}
	}

	trimmed := bytes.TrimSpace(data)
	if isNull(trimmed) {
		return nil, &InputError{Err: ErrNoRecords}
	}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, &InputError{Err: fmt.Errorf("unmarshal: %w", err)}
		}
		result, ok := envelope["result"]
		if !ok || isNull(bytes.TrimSpace(result)) {
			return nil, &InputError{Err: fmt.Errorf("%w: object has no result array", ErrNoRecords)}
		}
		trimmed = result
	}

	var rows []map[string]any
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, &InputError{Err: fmt.Errorf("unmarshal: %w", err)}
	}

	records := make([]model.HostRecord, 0, len(rows))
	for i, row := range rows {
		name, err := rowName(row)
		if err != nil {
			return nil, &InputError{Row: i + 1, Err: err}
		}
		records = append(records, model.HostRecord{Name: name, Row: i + 1})
	}
	return records, nil
}

func isNull(data []byte) bool {
	return bytes.Equal(data, []byte("null"))
}

func rowName(row map[string]any) (string, error) {
	raw, ok := row["name"]
	if !ok {
		raw, ok = row["Name"]
	}
	if !ok || raw == nil {
		return "", ErrMissingName
	}
	name, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected a string, got %T", ErrMissingName, raw)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}
