package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

func TestConfigInitJSON(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "serve.json")
	cmd := &ConfigInit{Command: "serve", Format: "json", Output: dest}
	require.NoError(t, cmd.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal(data, &cfg))

	bridge, ok := cfg["bridge"].(map[string]any)
	require.True(t, ok, "serve config nests bridge settings")
	assert.Equal(t, "127.0.0.1:9049", bridge["addr"])
	assert.Equal(t, float64(64), bridge["clientBuffer"])
}

func TestConfigInitYAML(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "watch.yaml")
	cmd := &ConfigInit{Command: "watch", Format: "yaml", Output: dest}
	require.NoError(t, cmd.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, "127.0.0.1:9049", cfg["addr"])
}

func TestConfigInitTOML(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "simulate.toml")
	cmd := &ConfigInit{Command: "simulate", Format: "toml", Output: dest}
	require.NoError(t, cmd.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	tree, err := toml.LoadBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9049", tree.GetPath([]string{"bridge", "addr"}))
	assert.Equal(t, int64(8), tree.GetPath([]string{"engine", "batchCapacity"}))
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "serve.json")
	require.NoError(t, os.WriteFile(dest, []byte("{}"), 0o644))

	cmd := &ConfigInit{Command: "serve", Format: "json", Output: dest}
	assert.Error(t, cmd.Run())

	cmd.Force = true
	assert.NoError(t, cmd.Run())
}

func TestNormalizeFormat(t *testing.T) {
	assert.Equal(t, "yaml", normalizeFormat("yml"))
	assert.Equal(t, "yaml", normalizeFormat("YAML"))
	assert.Equal(t, "toml", normalizeFormat("toml"))
	assert.Equal(t, "json", normalizeFormat("JSON"))
	assert.Equal(t, "", normalizeFormat("ini"))
}

func TestLowerCamel(t *testing.T) {
	assert.Equal(t, "addr", lowerCamel("Addr"))
	assert.Equal(t, "clientBuffer", lowerCamel("ClientBuffer"))
	assert.Equal(t, "", lowerCamel(""))
}
