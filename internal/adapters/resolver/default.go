// Package resolver implements module resolution: the Node-style default
// resolver, aliases, and chaining of resolvers.
package resolver

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"syscall"

	"go.trai.ch/bagel/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Resolver = (*NodeResolver)(nil)

var relativeImport = regexp.MustCompile(`^(?:\.\.?(?:/|$)|/|([A-Za-z]:)?[\\/])`)

// IsRelative reports whether id is a path rather than an identifier.
func IsRelative(id string) bool {
	return relativeImport.MatchString(id)
}

// NodeResolver resolves module ids the way Node does: relative paths from the
// requesting directory, identifiers by walking up module directories.
type NodeResolver struct {
	extensions        []string
	moduleDirectories []string
	cache             *Cache
	isBuiltin         func(string) bool
}

// Option configures a NodeResolver.
type Option func(*NodeResolver)

// WithExtensions sets the extensions probed for extensionless ids.
func WithExtensions(exts ...string) Option {
	return func(r *NodeResolver) { r.extensions = exts }
}

// WithModuleDirectories sets the directory names searched for identifiers.
func WithModuleDirectories(dirs ...string) Option {
	return func(r *NodeResolver) { r.moduleDirectories = dirs }
}

// WithCache caches identifier lookups in c.
func WithCache(c *Cache) Option {
	return func(r *NodeResolver) { r.cache = c }
}

// WithBuiltins makes ids matching isBuiltin resolve to themselves when no file matches.
func WithBuiltins(isBuiltin func(string) bool) Option {
	return func(r *NodeResolver) { r.isBuiltin = isBuiltin }
}

// NewNodeResolver creates a NodeResolver probing ".js" in "node_modules" by default.
func NewNodeResolver(opts ...Option) *NodeResolver {
	r := &NodeResolver{
		extensions:        []string{".js"},
		moduleDirectories: []string{"node_modules"},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the real path of the file id refers to from fromDir.
func (r *NodeResolver) Resolve(id, fromDir string, _ any) (string, error) {
	relative := IsRelative(id)
	if !relative && r.cache != nil {
		if p, ok := r.cache.Get(id); ok {
			return p, nil
		}
	}

	p, err := r.resolve(id, fromDir, relative)
	if err != nil {
		return "", err
	}

	if !relative && r.cache != nil {
		r.cache.Set(id, p)
	}
	return p, nil
}

func (r *NodeResolver) resolve(id, fromDir string, relative bool) (string, error) {
	if relative {
		target := id
		if !filepath.IsAbs(target) {
			target = filepath.Join(fromDir, id)
		}
		p, err := r.tryResolve(target)
		if err != nil || p != "" {
			return p, err
		}
	} else {
		for _, dir := range modulePaths(fromDir, r.moduleDirectories) {
			p, err := r.tryResolve(filepath.Join(dir, id))
			if err != nil || p != "" {
				return p, err
			}
		}
	}

	if r.isBuiltin != nil && r.isBuiltin(id) {
		return id, nil
	}

	return "", &NotFoundError{ModuleID: id, BaseDir: fromDir}
}

func (r *NodeResolver) tryResolve(name string) (string, error) {
	ok, err := isDir(filepath.Dir(name))
	if err != nil || !ok {
		return "", err
	}

	p, err := r.resolveAsFile(name)
	if err == nil && p == "" {
		p, err = r.resolveAsDirectory(name)
	}
	if err != nil || p == "" {
		return "", err
	}

	// Dereference symlinks so one file never yields two module instances.
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to dereference module path"), "path", p)
	}
	return resolved, nil
}

func (r *NodeResolver) resolveAsFile(name string) (string, error) {
	ok, err := isFile(name)
	if err != nil || ok {
		return name, err
	}
	for _, ext := range r.extensions {
		ok, err := isFile(name + ext)
		if err != nil {
			return "", err
		}
		if ok {
			return name + ext, nil
		}
	}
	return "", nil
}

func (r *NodeResolver) resolveAsDirectory(name string) (string, error) {
	ok, err := isDir(name)
	if err != nil || !ok {
		return "", err
	}

	if main := packageMain(name); main != "" && main != "." {
		p, err := r.tryResolve(filepath.Join(name, main))
		if err != nil || p != "" {
			return p, err
		}
	}

	return r.resolveAsFile(filepath.Join(name, "index"))
}

// packageMain returns the main field of dir/package.json. Unreadable or
// malformed manifests count as having none.
func packageMain(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return ""
	}
	var pkg struct {
		Main string `json:"main"`
	}
	if json.Unmarshal(data, &pkg) != nil {
		return ""
	}
	return pkg.Main
}

// modulePaths lists the module directories to search from basedir up to the filesystem root.
func modulePaths(basedir string, moduleDirs []string) []string {
	abs, err := filepath.Abs(basedir)
	if err != nil {
		abs = basedir
	}

	var dirs []string
	for dir := abs; ; dir = filepath.Dir(dir) {
		for _, name := range moduleDirs {
			if filepath.Base(dir) == name {
				continue
			}
			dirs = append(dirs, filepath.Join(dir, name))
		}
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}
	return dirs
}

func isFile(p string) (bool, error) {
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat module path"), "path", p)
	}
	return info.Mode().IsRegular() || info.Mode()&fs.ModeNamedPipe != 0, nil
}

func isDir(p string) (bool, error) {
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat module directory"), "path", p)
	}
	return info.IsDir(), nil
}
