package ui

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	out := FormatError("Failed to read input", "hosts.csv: row 2: missing Name field", "check the CSV header")
	assert.Contains(t, out, "Failed to read input")
	assert.Contains(t, out, "row 2: missing Name field")
	assert.Contains(t, out, "check the CSV header")

	out = FormatError("Failed", "", "")
	assert.NotContains(t, out, "Hint")
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	_ = w.Close()
	out, _ := io.ReadAll(r)
	return string(out)
}

func TestStatusLines(t *testing.T) {
	out := captureStdout(t, func() {
		StageDone("Read input", "hosts.csv (3 records)")
		ValidationOK("service", "platform")
		Warn("1 of 3 MAC addresses could not be looked up")
	})

	assert.Contains(t, out, "Read input")
	assert.Contains(t, out, "hosts.csv (3 records)")
	assert.Contains(t, out, "service: platform")
	assert.Contains(t, out, "Warning: 1 of 3 MAC addresses could not be looked up")
}
