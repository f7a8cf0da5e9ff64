package loader

import (
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/dop251/goja"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/zerr"
)

// WrapperCache holds compiled module wrappers keyed by cache key. Programs
// are independent of any runtime, so one entry serves every load-graph.
type WrapperCache struct {
	programs *lru.Cache[string, *goja.Program]
}

// NewWrapperCache creates a WrapperCache bounded to size entries.
func NewWrapperCache(size int) (*WrapperCache, error) {
	programs, err := lru.New[string, *goja.Program](size)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create wrapper cache"), "size", size)
	}
	return &WrapperCache{programs: programs}, nil
}

// Get returns the program stored under key.
func (c *WrapperCache) Get(key string) (*goja.Program, bool) {
	return c.programs.Get(key)
}

// Add stores prog under key, evicting the least recently used entry when full.
func (c *WrapperCache) Add(key string, prog *goja.Program) {
	c.programs.Add(key, prog)
}

// Len returns the number of cached programs.
func (c *WrapperCache) Len() int {
	return c.programs.Len()
}

// Purge drops every cached program.
func (c *WrapperCache) Purge() {
	c.programs.Purge()
}

// CacheKey says whether and under which key a compiled wrapper is cached.
// The zero value is Bypass.
type CacheKey struct {
	key    string
	cached bool
}

// Bypass compiles the module on every require and never stores the result.
var Bypass = CacheKey{}

// Cached stores the compiled wrapper under key. An empty key is Bypass.
func Cached(key string) CacheKey {
	if key == "" {
		return Bypass
	}
	return CacheKey{key: key, cached: true}
}

// Get returns the key and whether caching applies.
func (k CacheKey) Get() (string, bool) {
	return k.key, k.cached
}

// KeyRequest is what a KeyFunc is given to derive a cache key.
type KeyRequest struct {
	ModuleID         string
	PathToSourceFile string
	RequestContext   any
}

// KeyFunc derives the cache key of a module.
type KeyFunc func(KeyRequest) CacheKey

// PathKey caches wrappers by resolved path.
func PathKey(req KeyRequest) CacheKey {
	return Cached(req.PathToSourceFile)
}

// ContentKey caches wrappers by path and content hash, so edited files are
// recompiled without purging the cache. Unreadable files bypass the cache.
func ContentKey(req KeyRequest) CacheKey {
	data, err := os.ReadFile(req.PathToSourceFile)
	if err != nil {
		return Bypass
	}
	return Cached(req.PathToSourceFile + "@" + strconv.FormatUint(xxhash.Sum64(data), 16))
}

// NoCacheKey never caches.
func NoCacheKey(KeyRequest) CacheKey {
	return Bypass
}
