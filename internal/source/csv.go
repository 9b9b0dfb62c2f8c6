package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ThomasCrouzet/invgen/internal/model"
)

func init() {
	Register(func() RegisteredSource { return &CSVSource{} })
}

// CSVSource reads host records from a CSV file with a header row.
// Only the Name column is used.
type CSVSource struct {
	// Column is the header holding the host name. Defaults to "Name".
	Column string
}

func (cs *CSVSource) Metadata() SourceMetadata {
	return SourceMetadata{
		Name:        "csv",
		DisplayName: "CSV export",
		Description: "Reads host names from the Name column of a CSV file with a header row",
		Extensions:  []string{".csv"},
	}
}

func (cs *CSVSource) column() string {
	if cs.Column == "" {
		return "Name"
	}
	return cs.Column
}

func (cs *CSVSource) Read(r io.Reader) ([]model.HostRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &InputError{Err: errors.New("no header row")}
	}
	if err != nil {
		return nil, &InputError{Err: fmt.Errorf("reading header: %w", err)}
	}

	idx := nameColumn(header, cs.column())
	if idx < 0 {
		return nil, &InputError{Err: fmt.Errorf("%w: no %q column in header", ErrMissingName, cs.column())}
	}

	var records []model.HostRecord
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &InputError{Row: row, Err: err}
		}
		if idx >= len(fields) {
			return nil, &InputError{Row: row, Err: ErrMissingName}
		}
		name := strings.TrimSpace(fields[idx])
		if name == "" {
			return nil, &InputError{Row: row, Err: ErrEmptyName}
		}
		records = append(records, model.HostRecord{Name: name, Row: row})
	}

	return records, nil
}

// nameColumn finds the name column, preferring an exact match over a
// case-insensitive one.
func nameColumn(header []string, column string) int {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i, h := range header {
		if strings.TrimSpace(h) == column {
			return i
		}
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), column) {
			return i
		}
	}
	return -1
}
