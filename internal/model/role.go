package model

import "strings"

// Role is the server-type tag derived from a host name.
type Role string

const (
	RoleWeb Role = "webservers"
	RoleDB  Role = "dbservers"
	RoleApp Role = "appservers"
)

// datacenterLen is the number of leading characters that form a datacenter code.
const datacenterLen = 3

// rolePatterns is checked in order; the first keyword contained in the
// lowercased host name wins.
var rolePatterns = []struct {
	keyword string
	role    Role
}{
	{"web", RoleWeb},
	{"db", RoleDB},
}

// Classification is the grouping derived from a single host name.
type Classification struct {
	Datacenter string
	Role       Role
}

// Group returns the role-group key, e.g. "nyc_webservers".
func (c Classification) Group() string {
	return c.Datacenter + "_" + string(c.Role)
}

// Classify derives the datacenter code and role for a host name.
// Names shorter than three characters use the whole lowercased name as the
// datacenter code.
func Classify(hostname string) Classification {
	lower := strings.ToLower(hostname)
	return Classification{
		Datacenter: datacenterCode(lower),
		Role:       ClassifyRole(lower),
	}
}

// ClassifyRole determines the role for a host name based on keywords.
func ClassifyRole(hostname string) Role {
	lower := strings.ToLower(hostname)
	for _, p := range rolePatterns {
		if strings.Contains(lower, p.keyword) {
			return p.role
		}
	}
	return RoleApp
}

func datacenterCode(lower string) string {
	runes := []rune(lower)
	if len(runes) < datacenterLen {
		return lower
	}
	return string(runes[:datacenterLen])
}
