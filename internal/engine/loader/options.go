package loader

import (
	"github.com/dop251/goja"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
)

// WrapFunc turns module source into an expression evaluating to the module
// factory, called with (exports, require, module, __filename, __dirname).
type WrapFunc func(source string) string

// CompileFunc compiles a wrapped module.
type CompileFunc func(filename, source string) (*goja.Program, error)

// LazyObserver is told about requires issued after the root module finished
// loading. The returned func is called once that require returns.
type LazyObserver func(reqCtx any) (done func())

type options struct {
	resolvers        []ports.Resolver
	defaultResolver  ports.Resolver
	interceptors     []Interceptor
	transformers     []ports.Transformer
	wrap             WrapFunc
	cacheKey         KeyFunc
	compile          CompileFunc
	cacheSize        int
	useResolverCache bool
	builtins         *Builtins
	lazy             LazyObserver
}

// Option configures a Loader.
type Option func(*options)

// WithResolvers sets the resolvers tried, in order, before the default resolver.
func WithResolvers(resolvers ...ports.Resolver) Option {
	return func(o *options) { o.resolvers = resolvers }
}

// WithDefaultResolver replaces the resolver tried last.
func WithDefaultResolver(r ports.Resolver) Option {
	return func(o *options) { o.defaultResolver = r }
}

// WithInterceptors sets the interceptors wrapped around every require, outermost first.
func WithInterceptors(interceptors ...Interceptor) Option {
	return func(o *options) { o.interceptors = interceptors }
}

// WithTransformers sets the source transformers, applied in order.
func WithTransformers(transformers ...ports.Transformer) Option {
	return func(o *options) { o.transformers = transformers }
}

// WithWrapModule replaces the CommonJS wrapper template.
func WithWrapModule(wrap WrapFunc) Option {
	return func(o *options) { o.wrap = wrap }
}

// WithCacheKey replaces the cache key derivation. The default is PathKey.
func WithCacheKey(fn KeyFunc) Option {
	return func(o *options) { o.cacheKey = fn }
}

// WithCompiler replaces the compile step.
func WithCompiler(fn CompileFunc) Option {
	return func(o *options) { o.compile = fn }
}

// WithCacheSize bounds the wrapper cache.
func WithCacheSize(size int) Option {
	return func(o *options) { o.cacheSize = size }
}

// WithResolverCache memoizes resolution by module name within each load-graph.
// Relative ids requested from different directories then share one answer.
func WithResolverCache(enable bool) Option {
	return func(o *options) { o.useResolverCache = enable }
}

// WithBuiltins replaces the builtin module table.
func WithBuiltins(b *Builtins) Option {
	return func(o *options) { o.builtins = b }
}

// WithLazyObserver observes requires issued after the root module loaded.
func WithLazyObserver(fn LazyObserver) Option {
	return func(o *options) { o.lazy = fn }
}

// DefaultWrap is the CommonJS wrapper.
func DefaultWrap(source string) string {
	return "(function (exports, require, module, __filename, __dirname) {\n" + source + "\n})"
}

func defaultCompile(filename, source string) (*goja.Program, error) {
	return goja.Compile(filename, source, false)
}

func defaultOptions() options {
	return options{
		wrap:      DefaultWrap,
		cacheKey:  PathKey,
		compile:   defaultCompile,
		cacheSize: domain.DefaultCacheSize,
	}
}
