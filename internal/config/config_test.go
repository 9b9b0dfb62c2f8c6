package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "inventory.yml", cfg.Output)
	assert.Equal(t, "", cfg.Input)
	assert.Equal(t, 1, cfg.Lookup.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFromYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
input: hosts.csv
output: out/inventory.yml
service: platform
vars:
  ansible_user: deploy
  env: ""
lookup:
  credentials: creds.txt
  concurrency: 4
  rate_per_second: 2.5
  timeout: 10s
log:
  level: debug
  pretty: true
`)))

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "hosts.csv", cfg.Input)
	assert.Equal(t, "out/inventory.yml", cfg.Output)
	assert.Equal(t, "platform", cfg.Service)
	assert.Equal(t, "deploy", cfg.Vars["ansible_user"])
	v2, ok := cfg.Vars["env"]
	assert.True(t, ok)
	assert.Equal(t, "", v2)
	assert.Equal(t, "creds.txt", cfg.Lookup.Credentials)
	assert.Equal(t, 4, cfg.Lookup.Concurrency)
	assert.InDelta(t, 2.5, cfg.Lookup.RatePerSecond, 0.001)
	assert.Equal(t, 10*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}
