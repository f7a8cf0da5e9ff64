package resolver_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bagel/internal/adapters/resolver"
	"go.trai.ch/bagel/internal/core/ports"
)

// setupTree writes files under a fresh temp dir and returns its real path.
func setupTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	for name, content := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return root
}

func TestIsRelative(t *testing.T) {
	tests := []struct {
		id       string
		relative bool
	}{
		{"./a", true},
		{"../a", true},
		{".", true},
		{"..", true},
		{"/abs/a", true},
		{`C:\a`, true},
		{"react", false},
		{"@scope/pkg", false},
		{".hidden", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.relative, resolver.IsRelative(tt.id))
		})
	}
}

func TestNodeResolver_Resolve(t *testing.T) {
	root := setupTree(t, map[string]string{
		"components/hero.js":                       "",
		"components/data.json":                     "{}",
		"components/card/index.js":                 "",
		"components/node_modules/lib/package.json": `{"main": "dist/lib.js"}`,
		"components/node_modules/lib/dist/lib.js":  "",
		"node_modules/shared/index.js":             "",
		"node_modules/bad-manifest/package.json":   "{",
		"node_modules/bad-manifest/index.js":       "",
	})
	dir := filepath.Join(root, "components")
	r := resolver.NewNodeResolver(resolver.WithExtensions(".js", ".json"))

	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{"extension probing", "./hero", filepath.Join(dir, "hero.js")},
		{"exact file", "./hero.js", filepath.Join(dir, "hero.js")},
		{"second extension", "./data", filepath.Join(dir, "data.json")},
		{"directory index", "./card", filepath.Join(dir, "card", "index.js")},
		{"package main", "lib", filepath.Join(dir, "node_modules", "lib", "dist", "lib.js")},
		{"walks up", "shared", filepath.Join(root, "node_modules", "shared", "index.js")},
		{"malformed manifest falls back to index", "bad-manifest", filepath.Join(root, "node_modules", "bad-manifest", "index.js")},
		{"absolute", filepath.Join(dir, "hero"), filepath.Join(dir, "hero.js")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := r.Resolve(tt.id, dir, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestNodeResolver_NotFound(t *testing.T) {
	root := setupTree(t, nil)
	r := resolver.NewNodeResolver()

	_, err := r.Resolve("./missing", root, nil)
	require.Error(t, err)

	var nf *resolver.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, resolver.CodeModuleNotFound, nf.Code())
	assert.Equal(t, "Cannot find module './missing' from '"+root+"'", err.Error())
}

func TestNodeResolver_Builtins(t *testing.T) {
	root := setupTree(t, nil)
	r := resolver.NewNodeResolver(resolver.WithBuiltins(func(id string) bool { return id == "util" }))

	p, err := r.Resolve("util", root, nil)
	require.NoError(t, err)
	assert.Equal(t, "util", p)
}

func TestNodeResolver_Symlink(t *testing.T) {
	root := setupTree(t, map[string]string{"real/comp.js": ""})
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")))

	p, err := resolver.NewNodeResolver().Resolve("./link/comp", root, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "real", "comp.js"), p)
}

func TestNodeResolver_CachesIdentifiersOnly(t *testing.T) {
	root := setupTree(t, map[string]string{
		"node_modules/lib/index.js": "",
		"local.js":                  "",
	})
	cache := resolver.NewCache()
	r := resolver.NewNodeResolver(resolver.WithCache(cache))

	_, err := r.Resolve("./local", root, nil)
	require.NoError(t, err)
	assert.Zero(t, cache.Len())

	first, err := r.Resolve("lib", root, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	// The cached answer is served even once the file is gone.
	require.NoError(t, os.RemoveAll(filepath.Join(root, "node_modules")))
	second, err := r.Resolve("lib", root, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	cache.Purge()
	_, err = r.Resolve("lib", root, nil)
	require.Error(t, err)
}

func TestChain(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	never := ports.ResolverFunc(func(string, string, any) (string, error) {
		calls++
		return "", nil
	})
	fixed := ports.ResolverFunc(func(id, _ string, _ any) (string, error) {
		if id == "x" {
			return "/x.js", nil
		}
		return "", nil
	})
	failing := ports.ResolverFunc(func(string, string, any) (string, error) { return "", boom })

	p, err := resolver.Chain(never, nil, fixed, failing).Resolve("x", "/", nil)
	require.NoError(t, err)
	assert.Equal(t, "/x.js", p)
	assert.Equal(t, 1, calls)

	_, err = resolver.Chain(never, fixed, failing).Resolve("y", "/", nil)
	require.ErrorIs(t, err, boom)

	p, err = resolver.Chain(never).Resolve("y", "/", nil)
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestAliases(t *testing.T) {
	r := resolver.Aliases("/srv/app", map[string]string{
		"layout": "./shared/layout.js",
		"abs":    "/opt/abs.js",
	})

	p, _ := r.Resolve("layout", "/anywhere", nil)
	assert.Equal(t, filepath.Clean("/srv/app/shared/layout.js"), p)
	p, _ = r.Resolve("abs", "/anywhere", nil)
	assert.Equal(t, filepath.Clean("/opt/abs.js"), p)
	p, _ = r.Resolve("other", "/anywhere", nil)
	assert.Empty(t, p)
}
