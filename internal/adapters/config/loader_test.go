package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bagel/internal/adapters/config"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoader(log)
}

func TestLoader_Load_Full(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "components"), 0o750))
	createFile(t, dir, domain.ConfigFileName, `
version: "1"
root: ./components
port: 4000
transport: websocket
renderer: stream
concurrency: 4
loader:
  extensions: [".js", ".mjs"]
  moduleDirectories: ["vendor"]
  useResolverCache: true
  cacheSize: 50
  cacheKey: content
  aliases:
    react: ./shims/react.js
  overrides:
    config: {env: test}
  transformers: [shebang]
plugins: [initialProps, tracing]
watch: true
log:
  level: debug
  json: true
`)

	cfg, err := newLoader(t).Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, filepath.Join(dir, "components"), cfg.Root)
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, domain.TransportWebSocket, cfg.Transport)
	assert.Equal(t, domain.RendererStream, cfg.Renderer)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, []string{".js", ".mjs"}, cfg.Loader.Extensions)
	assert.Equal(t, []string{"vendor"}, cfg.Loader.ModuleDirectories)
	assert.True(t, cfg.Loader.UseResolverCache)
	assert.Equal(t, 50, cfg.Loader.CacheSize)
	assert.Equal(t, domain.CacheKeyContent, cfg.Loader.CacheKey)
	assert.Equal(t, map[string]string{"react": "./shims/react.js"}, cfg.Loader.Aliases)
	assert.Equal(t, map[string]any{"config": map[string]any{"env": "test"}}, cfg.Loader.Overrides)
	assert.Equal(t, []string{"shebang"}, cfg.Loader.Transformers)
	assert.Equal(t, []string{"initialProps", "tracing"}, cfg.Plugins)
	assert.True(t, cfg.Watch)
	assert.Equal(t, domain.LogConfig{Level: domain.LogLevelDebug, JSON: true}, cfg.Log)
}

func TestLoader_Load_Defaults(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, domain.ConfigFileName, "version: \"1\"\n")

	cfg, err := newLoader(t).Load(dir, "")
	require.NoError(t, err)

	want := domain.DefaultConfig(dir)
	assert.Equal(t, want, cfg)
}

func TestLoader_Load_ExplicitZeroes(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, domain.ConfigFileName, "port: 0\nloader:\n  transformers: []\n")

	cfg, err := newLoader(t).Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Port)
	assert.Empty(t, cfg.Loader.Transformers)
}

func TestLoader_Load_NoFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := newLoader(t).Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(dir), cfg)
}

func TestLoader_Load_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "conf/custom.yaml", "port: 8080\n")

	cfg, err := newLoader(t).Load(dir, "conf/custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, filepath.Join(dir, "conf"), cfg.Dir)
	assert.Equal(t, filepath.Join(dir, "conf"), cfg.Root)
}

func TestLoader_Load_ExplicitPathMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := newLoader(t).Load(dir, "nope.yaml")
	require.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
}

func TestLoader_Load_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{"version", `version: "2"`, domain.ErrInvalidConfig.Error()},
		{"missing root", `root: ./nowhere`, domain.ErrInvalidConfig.Error()},
		{"port range", `port: 70000`, domain.ErrInvalidConfig.Error()},
		{"transport", `transport: grpc`, domain.ErrInvalidConfig.Error()},
		{"renderer", `renderer: vdom`, domain.ErrInvalidConfig.Error()},
		{"concurrency", `concurrency: -1`, domain.ErrInvalidConfig.Error()},
		{"extension", "loader:\n  extensions: [js]", domain.ErrInvalidConfig.Error()},
		{"cache size", "loader:\n  cacheSize: 0", domain.ErrInvalidConfig.Error()},
		{"cache key", "loader:\n  cacheKey: inode", domain.ErrInvalidConfig.Error()},
		{"log level", "log:\n  level: loud", domain.ErrInvalidConfig.Error()},
		{"yaml", "port: [", domain.ErrConfigParseFailed.Error()},
		{"type", "port: many", domain.ErrConfigParseFailed.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			createFile(t, dir, domain.ConfigFileName, tt.content)

			_, err := newLoader(t).Load(dir, "")
			require.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestLoader_DiscoverConfig(t *testing.T) {
	root := t.TempDir()
	want := createFile(t, root, domain.ConfigFileName, "")
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	got, err := newLoader(t).DiscoverConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoader_DiscoverConfig_Nearest(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "")
	want := createFile(t, root, filepath.Join("app", domain.ConfigFileName), "")

	got, err := newLoader(t).DiscoverConfig(filepath.Join(root, "app"))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoader_DiscoverConfig_SkipsDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, domain.ConfigFileName), 0o750))

	_, err := newLoader(t).DiscoverConfig(root)
	// A parent of the temp dir could hold a real bagel.yaml; only the directory itself must not match.
	if err == nil {
		return
	}
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoader_Load_DiscoversFromSubdirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "components"), 0o750))
	createFile(t, root, domain.ConfigFileName, "root: components\n")
	sub := filepath.Join(root, "components")

	cfg, err := newLoader(t).Load(sub, "")
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Dir)
	assert.Equal(t, sub, cfg.Root)
}
