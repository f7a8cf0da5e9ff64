package loader

import (
	"go.trai.ch/bagel/internal/adapters/resolver"
	"go.trai.ch/bagel/internal/adapters/transform"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
)

// FromConfig builds a Loader from the loader section of cfg.
func FromConfig(cfg *domain.Config, log ports.Logger, cache *resolver.Cache, extra ...Option) (*Loader, error) {
	lc := cfg.Loader
	builtins := NewBuiltins(log)

	transformers := make([]ports.Transformer, 0, len(lc.Transformers))
	for _, name := range lc.Transformers {
		t, ok := transform.Lookup(name)
		if !ok {
			return nil, domain.Annotate(domain.ErrInvalidConfig, "loader.transformers", name)
		}
		transformers = append(transformers, t)
	}

	var keyFn KeyFunc
	switch lc.CacheKey {
	case domain.CacheKeyPath, "":
		keyFn = PathKey
	case domain.CacheKeyContent:
		keyFn = ContentKey
	case domain.CacheKeyNone:
		keyFn = NoCacheKey
	default:
		return nil, domain.Annotate(domain.ErrInvalidConfig, "loader.cacheKey", lc.CacheKey)
	}

	opts := []Option{
		WithBuiltins(builtins),
		WithDefaultResolver(resolver.NewNodeResolver(
			resolver.WithExtensions(lc.Extensions...),
			resolver.WithModuleDirectories(lc.ModuleDirectories...),
			resolver.WithCache(cache),
			resolver.WithBuiltins(builtins.Has),
		)),
		WithTransformers(transformers...),
		WithCacheKey(keyFn),
		WithCacheSize(lc.CacheSize),
		WithResolverCache(lc.UseResolverCache),
		WithLazyObserver(LazyLoadTimer),
	}
	if len(lc.Aliases) > 0 {
		opts = append(opts, WithResolvers(resolver.Aliases(cfg.Dir, lc.Aliases)))
	}
	if len(lc.Overrides) > 0 {
		opts = append(opts, WithInterceptors(Overrides(lc.Overrides)))
	}

	return New(append(opts, extra...)...)
}
