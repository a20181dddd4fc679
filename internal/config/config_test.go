package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLoader(home, wd string, env map[string]string) *Loader {
	l := NewLoader(nil)
	l.home = func() (string, error) { return home, nil }
	l.wd = func() (string, error) { return wd, nil }
	l.getenv = func(k string) string { return env[k] }
	return l
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	assert.Zero(t, cfg.Fetch.Timeout)
}

func TestLoadLayers(t *testing.T) {
	home, wd := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(home, UserConfigDir, UserConfigFile), "storage:\n  backend: bolt\n  dir: /from/user\nui:\n  theme: neon\n")
	writeFile(t, filepath.Join(wd, ProjectConfigFile), "storage:\n  dir: /from/project\nfetch:\n  timeout: 30s\n")

	cfg, err := testLoader(home, wd, map[string]string{EnvServerURL: "http://127.0.0.1:9000"}).Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendBolt, cfg.Storage.Backend)
	assert.Equal(t, "/from/project", cfg.Storage.Dir)
	assert.Equal(t, "neon", cfg.UI.Theme)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.Server.URL)
}

func TestLoadExplicitFileSkipsLookup(t *testing.T) {
	home, wd := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(wd, ProjectConfigFile), "ui:\n  theme: neon\n")
	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, explicit, "ui:\n  theme: mono\n")

	cfg, err := testLoader(home, wd, nil).Load(explicit)
	require.NoError(t, err)

	assert.Equal(t, "mono", cfg.UI.Theme)
}

func TestLoadRejectsInvalid(t *testing.T) {
	wd := t.TempDir()
	writeFile(t, filepath.Join(wd, ProjectConfigFile), "storage:\n  backend: postgres\n")

	_, err := testLoader(t.TempDir(), wd, nil).Load("")

	assert.ErrorContains(t, err, "storage")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := testLoader(t.TempDir(), t.TempDir(), nil).Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.True(t, os.IsNotExist(err))
}

func TestValidateServerURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.URL = "not a url at all"

	assert.ErrorContains(t, cfg.Validate(), "server")
}
