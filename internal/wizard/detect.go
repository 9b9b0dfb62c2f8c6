package wizard

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// DetectionResult holds what was auto-detected in the working directory.
type DetectionResult struct {
	AnsibleAvailable bool     // ansible-inventory found in PATH
	Inputs           []string // candidate host exports
	Credentials      string   // CMDB credentials file, empty if none
}

// Detector abstracts filesystem and path lookups for testing.
type Detector interface {
	LookPath(name string) (string, error)
	Stat(path string) (os.FileInfo, error)
	Glob(pattern string) ([]string, error)
}

// OSDetector uses the real OS for detection.
type OSDetector struct{}

func (OSDetector) LookPath(name string) (string, error) { return exec.LookPath(name) }
func (OSDetector) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }
func (OSDetector) Glob(pattern string) ([]string, error) { return filepath.Glob(pattern) }

// Detect scans the working directory for host exports and credentials.
func Detect(d Detector) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}

	result := DetectionResult{}

	if _, err := d.LookPath("ansible-inventory"); err == nil {
		result.AnsibleAvailable = true
	}

	seen := make(map[string]bool)
	for _, pattern := range []string{"*.csv", "data/*.csv", "hosts.json", "cmdb_ci.json"} {
		matches, err := d.Glob(pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if info, err := d.Stat(m); err == nil && !info.IsDir() && !seen[m] {
				seen[m] = true
				result.Inputs = append(result.Inputs, m)
			}
		}
	}
	sort.Strings(result.Inputs)

	for _, p := range []string{"credentials.txt", "servicenow.txt", ".servicenow"} {
		if info, err := d.Stat(p); err == nil && !info.IsDir() {
			result.Credentials = p
			break
		}
	}

	return result
}
