package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/flowmap/internal/commuting"
	"github.com/psidex/flowmap/internal/flowgraph"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.Data.HTTPTimeout)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Address)
	assert.Equal(t, flowgraph.DefaultStyle(), cfg.Style)

	region, purpose, err := cfg.DefaultSelection()
	require.NoError(t, err)
	assert.Equal(t, commuting.Region(12), region)
	assert.Equal(t, commuting.Work, purpose)

	src := cfg.Data.Sources()
	assert.Equal(t, "data/commuting_2011_edges.json", src.Edges)
	assert.Empty(t, src.Boundaries)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowmap.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"

[data]
edges = "https://example.com/edges.json"
http_timeout = "3s"

[defaults]
region = 9
purpose = "Studio"

[style]
title = "Flussi pendolari"
`), 0o644))

	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://example.com/edges.json", cfg.Data.Edges)
	assert.Equal(t, "data/commuting_2011_nodes.json", cfg.Data.Nodes)
	assert.Equal(t, 3*time.Second, cfg.Data.HTTPTimeout)
	assert.Equal(t, "Flussi pendolari", cfg.Style.Title)
	assert.Equal(t, flowgraph.FieldColor, cfg.Style.EdgeColorField)

	region, purpose, err := cfg.DefaultSelection()
	require.NoError(t, err)
	assert.Equal(t, commuting.Region(9), region)
	assert.Equal(t, commuting.Study, purpose)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("FLOWMAP_SERVER_ADDRESS", "0.0.0.0:9000")
	t.Setenv("FLOWMAP_DEFAULTS_PURPOSE", "Total")

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address)
	_, purpose, err := cfg.DefaultSelection()
	require.NoError(t, err)
	assert.Equal(t, commuting.Total, purpose)
}

func TestNewViper_MissingFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*viper.Viper)
	}{
		{"bad log level", func(v *viper.Viper) { v.Set("log_level", "loud") }},
		{"no edges", func(v *viper.Viper) { v.Set("data.edges", "") }},
		{"zero timeout", func(v *viper.Viper) { v.Set("data.http_timeout", "0s") }},
		{"no address", func(v *viper.Viper) { v.Set("server.address", "") }},
		{"unknown region", func(v *viper.Viper) { v.Set("defaults.region", 30) }},
		{"unknown purpose", func(v *viper.Viper) { v.Set("defaults.purpose", "Leisure") }},
		{"bad style", func(v *viper.Viper) { v.Set("style.width_field", "flow") }},
		{"bad snapshot", func(v *viper.Viper) { v.Set("snapshot.width", 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			tt.mutate(v)
			_, err := LoadWithViper(v)
			assert.Error(t, err)
		})
	}
}
