package inventory

import (
	"testing"

	"github.com/ThomasCrouzet/invgen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(names ...string) []model.HostRecord {
	out := make([]model.HostRecord, len(names))
	for i, n := range names {
		out[i] = model.HostRecord{Name: n, Row: i + 1}
	}
	return out
}

func TestBuildExample(t *testing.T) {
	inv, err := Build("platform", records("nyc-web01", "nyc-db01", "sfo-web01"))
	require.NoError(t, err)

	assert.Equal(t, String("PLATFORM"), inv.Vars["service_name"])
	assert.Len(t, inv.Vars, 1)
	assert.Equal(t, "platform", inv.Service.Name)
	assert.Equal(t, []string{"nyc", "sfo"}, inv.Datacenters())
	assert.Equal(t, []string{"nyc_dbservers", "nyc_webservers", "sfo_webservers"}, inv.Groups())
	assert.Equal(t, 3, inv.HostCount())

	expected := map[string]string{
		"nyc_webservers": "nyc-web01",
		"nyc_dbservers":  "nyc-db01",
		"sfo_webservers": "sfo-web01",
	}
	for group, host := range expected {
		rg, ok := inv.Lookup(group)
		require.True(t, ok, "group %s should exist", group)
		assert.Equal(t, map[string]Value{host: NoValue}, rg.Hosts)
		assert.Equal(t, map[string]Value{"server_type": String(string(rg.Role))}, rg.Vars)
		assert.Equal(t, group, rg.Name)
	}

	nyc := inv.Service.Datacenters["nyc"]
	assert.Len(t, nyc.Groups, 2)
	assert.Contains(t, nyc.Groups, "nyc_webservers")
	assert.Contains(t, nyc.Groups, "nyc_dbservers")
}

func TestNewRejectsEmptyService(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyService)

	_, err = Build("  ", records("nyc-web01"))
	assert.ErrorIs(t, err, ErrEmptyService)
}

func TestBuildRejectsEmptyHostname(t *testing.T) {
	_, err := Build("platform", records("nyc-web01", ""))
	require.ErrorIs(t, err, ErrEmptyHostname)
	assert.Contains(t, err.Error(), "record 2")
}

func TestInsertReusesGroups(t *testing.T) {
	inv, err := New("svc")
	require.NoError(t, err)

	inv.Insert(model.Classify("nyc-web01"), "nyc-web01")
	first := inv.Service.Datacenters["nyc"]
	firstGroup := first.Groups["nyc_webservers"]

	inv.Insert(model.Classify("nyc-web02"), "nyc-web02")
	assert.Same(t, first, inv.Service.Datacenters["nyc"])
	assert.Same(t, firstGroup, inv.Service.Datacenters["nyc"].Groups["nyc_webservers"])
	assert.Len(t, firstGroup.Hosts, 2)
}

func TestDuplicateHostsCollapse(t *testing.T) {
	inv, err := Build("svc", records("nyc-web01", "NYC-WEB01", "nyc-web01"))
	require.NoError(t, err)

	rg, ok := inv.Lookup("nyc_webservers")
	require.True(t, ok)
	assert.Equal(t, map[string]Value{"nyc-web01": NoValue}, rg.Hosts)
	assert.Equal(t, 1, inv.HostCount())
}

func TestBuildIsOrderIndependent(t *testing.T) {
	names := []string{"nyc-web01", "sfo-db02", "lon-app01", "nyc-db01", "sfo-web01", "nyc-web02"}
	reversed := make([]string, len(names))
	for i, n := range names {
		reversed[len(names)-1-i] = n
	}

	a, err := Build("svc", records(names...))
	require.NoError(t, err)
	b, err := Build("svc", records(reversed...))
	require.NoError(t, err)

	assert.Equal(t, a.Vars, b.Vars)
	assert.Equal(t, a.Service.Datacenters, b.Service.Datacenters)

	outA, err := Encode(a)
	require.NoError(t, err)
	outB, err := Encode(b)
	require.NoError(t, err)
	assert.Equal(t, string(outA), string(outB))
}

func TestGroupingSharesAndSeparates(t *testing.T) {
	inv, err := Build("svc", records("nyc-web01", "nyc-web02", "nyc-db01", "sfo-web01"))
	require.NoError(t, err)

	web, _ := inv.Lookup("nyc_webservers")
	assert.Contains(t, web.Hosts, "nyc-web01")
	assert.Contains(t, web.Hosts, "nyc-web02")

	db, _ := inv.Lookup("nyc_dbservers")
	assert.NotContains(t, db.Hosts, "nyc-web01")

	sfo, _ := inv.Lookup("sfo_webservers")
	assert.Equal(t, map[string]Value{"sfo-web01": NoValue}, sfo.Hosts)
}

func TestShortHostName(t *testing.T) {
	inv, err := Build("svc", records("ab"))
	require.NoError(t, err)

	assert.Equal(t, []string{"ab"}, inv.Datacenters())
	rg, ok := inv.Lookup("ab_appservers")
	require.True(t, ok)
	assert.Contains(t, rg.Hosts, "ab")
}

func TestSetVar(t *testing.T) {
	inv, err := New("svc")
	require.NoError(t, err)

	require.NoError(t, inv.SetVar("ansible_user", "deploy"))
	require.NoError(t, inv.SetVar("env", ""))
	assert.Equal(t, String("deploy"), inv.Vars["ansible_user"])
	assert.Equal(t, String(""), inv.Vars["env"])
	assert.False(t, inv.Vars["env"].IsNull())

	assert.ErrorIs(t, inv.SetVar("service_name", "x"), ErrReservedVar)
	assert.Error(t, inv.SetVar("", "x"))
	assert.Equal(t, String("SVC"), inv.Vars["service_name"])
}

func TestValue(t *testing.T) {
	assert.True(t, NoValue.IsNull())
	assert.False(t, String("").IsNull())
	assert.NotEqual(t, NoValue, String(""))
	assert.Equal(t, "x", String("x").String())
}
