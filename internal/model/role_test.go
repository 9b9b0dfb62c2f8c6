package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRole(t *testing.T) {
	tests := []struct {
		hostname string
		expected Role
	}{
		{"nyc-web01", RoleWeb},
		{"NYC-WEB01", RoleWeb},
		{"sfo-webdb01", RoleWeb},
		{"lon-dbweb02", RoleWeb},
		{"nyc-db01", RoleDB},
		{"ams-DB-primary", RoleDB},
		{"nyc-app01", RoleApp},
		{"fra-cache03", RoleApp},
		{"we-b", RoleApp},
		{"d-b", RoleApp},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyRole(tt.hostname))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		hostname   string
		datacenter string
		role       Role
		group      string
	}{
		{"nyc-web01", "nyc", RoleWeb, "nyc_webservers"},
		{"SFO-db01", "sfo", RoleDB, "sfo_dbservers"},
		{"lonapp", "lon", RoleApp, "lon_appservers"},
		{"web", "web", RoleWeb, "web_webservers"},
		{"ab", "ab", RoleApp, "ab_appservers"},
		{"DB", "db", RoleDB, "db_dbservers"},
		{"x", "x", RoleApp, "x_appservers"},
		{"Ünï-web", "ünï", RoleWeb, "ünï_webservers"},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			c := Classify(tt.hostname)
			assert.Equal(t, tt.datacenter, c.Datacenter)
			assert.Equal(t, tt.role, c.Role)
			assert.Equal(t, tt.group, c.Group())
		})
	}
}

func TestClassifyIsDeterministicForShortNames(t *testing.T) {
	first := Classify("ab")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify("ab"))
	}
	assert.Equal(t, Classification{Datacenter: "ab", Role: RoleApp}, first)
}
