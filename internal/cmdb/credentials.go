// Package cmdb looks up configuration items in a ServiceNow CMDB by MAC
// address.
package cmdb

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

// ErrInvalidMAC marks an entry of the MAC list that net.ParseMAC rejects.
var ErrInvalidMAC = errors.New("invalid MAC address")

// Credentials holds the CMDB endpoint and basic-auth login.
type Credentials struct {
	Endpoint string
	Username string
	Password string
}

// LoadCredentials reads a file holding the endpoint, username and password
// on its first three lines.
func LoadCredentials(path string) (Credentials, error) {
	lines, err := readLines(path)
	if err != nil {
		return Credentials{}, err
	}

	fields := []string{"endpoint", "username", "password"}
	values := make([]string, len(fields))
	for i, field := range fields {
		if i >= len(lines) || lines[i] == "" {
			return Credentials{}, fmt.Errorf("%s: line %d: missing %s", path, i+1, field)
		}
		values[i] = lines[i]
	}

	return Credentials{
		Endpoint: strings.TrimRight(values[0], "/"),
		Username: values[1],
		Password: values[2],
	}, nil
}

// LoadMACs reads one MAC address per line, skipping blank lines. Entries are
// returned as written; LookupAll parses them so that one bad line only fails
// its own lookup.
func LoadMACs(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	var macs []string
	for _, line := range lines {
		if line != "" {
			macs = append(macs, line)
		}
	}
	return macs, nil
}

// normalizeMAC returns mac in lowercase colon-separated form.
func normalizeMAC(mac string) (string, error) {
	hw, err := net.ParseMAC(mac)
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrInvalidMAC, mac)
	}
	return hw.String(), nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}
