package model

// HostRecord is a single row read from a record source.
type HostRecord struct {
	Name string
	// Row is the 1-based position of the record in its source, used in
	// error messages.
	Row int
}
