package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/delaneyj/signalgraph/i18n"
	"github.com/delaneyj/signalgraph/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadOptionalDefaults(t *testing.T) {
	cfg, err := config.LoadOptional(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "signalgraph.yaml"), `
resources:
  - locales
locale: es
plural: cldr
log_level: debug
`)
	write(t, filepath.Join(dir, "locales", "en.yaml"), `hello: "Hello {name}"`)
	write(t, filepath.Join(dir, "locales", "es.yaml"), `hello: "Hola {name}"`)

	cfg, err := config.LoadOptional(dir)
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.Locale)
	assert.Equal(t, i18n.DefaultNamespace, cfg.Namespace)
	assert.Equal(t, []string{filepath.Join(dir, "locales")}, cfg.Resources)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	var buf bytes.Buffer
	cat, err := cfg.Catalog(cfg.Logger(&buf))
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "es"}, cat.Locales())
	assert.Contains(t, buf.String(), "translations loaded")

	s, err := cat.Translate(cfg.Locale, cfg.Namespace, "hello", i18n.Args{"name": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "Hola Ana", s)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signalgraph.toml")
	write(t, path, `
resources = ["/abs/en.json"]
namespace = "login"
metrics_addr = ":9090"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "login", cfg.Namespace)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, []string{"/abs/en.json"}, cfg.Resources)
	assert.Equal(t, "en", cfg.Locale)

	_, err = cfg.Catalog(slog.Default())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "bad-plural.yaml")
	write(t, path, "plural: arabic")
	_, err := config.Load(path)
	assert.ErrorContains(t, err, "plural")

	path = filepath.Join(dir, "bad-level.yaml")
	write(t, path, "log_level: loud")
	_, err = config.Load(path)
	assert.ErrorContains(t, err, "log level")

	path = filepath.Join(dir, "empty-locale.toml")
	write(t, path, `locale = " "`)
	_, err = config.Load(path)
	assert.ErrorContains(t, err, "locale")

	path = filepath.Join(dir, "config.json")
	write(t, path, "{}")
	_, err = config.Load(path)
	assert.ErrorContains(t, err, "unsupported")
}
