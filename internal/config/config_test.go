package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoops/internal/ops"
)

func TestLoadMissingDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
log_level: debug
unsupported_kinds: keep
preview_cache: false
defaults:
  simplify_epsilon: "0.5"
`), 0o644))
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "keep", cfg.UnsupportedKinds)
	assert.False(t, cfg.PreviewCache)
	assert.Equal(t, "0.5", cfg.Defaults.SimplifyEpsilon)
	assert.Len(t, cfg.RegistryOptions(), 3)

	d, err := ops.Default(cfg.RegistryOptions()...).Lookup(ops.SimplifyName)
	require.NoError(t, err)
	ui := ops.NewScriptSurface()
	d.New().RenderParameters(ui, nil)
	assert.True(t, ui.Enabled("Execute"))
}

func TestLoadInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(p, []byte("unsupported_kinds: maybe\n"), 0o644))
	_, err := Load(p)
	assert.ErrorContains(t, err, "unsupported-kind policy")
}
