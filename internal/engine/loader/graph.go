package loader

import (
	"os"
	"path/filepath"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/require"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/zerr"
)

// graph is the state of one Load call. It is only used by the goroutine
// that owns its runtime.
type graph struct {
	l      *Loader
	rt     *goja.Runtime
	native *require.RequireModule
	rootID string
	reqCtx any

	// registry maps resolved paths to module objects.
	registry    map[string]*goja.Object
	resolutions map[string]string

	depth  int
	loaded bool
}

func newGraph(l *Loader, rootID string, reqCtx any) *graph {
	rt := goja.New()
	return &graph{
		l:           l,
		rt:          rt,
		native:      l.opts.builtins.enable(rt),
		rootID:      rootID,
		reqCtx:      reqCtx,
		registry:    make(map[string]*goja.Object),
		resolutions: make(map[string]string),
	}
}

// require returns the intercepted require of the module at pathToParent.
func (g *graph) require(pathToParent, fromDir string) Next {
	return WrapRequire(func(moduleID string) (goja.Value, error) {
		return g.load(moduleID, pathToParent, fromDir)
	}, g.rt, g.reqCtx, g.l.opts.interceptors)
}

func (g *graph) load(moduleName, pathToParent, fromDir string) (goja.Value, error) {
	if moduleName == "" {
		return nil, domain.ErrModuleNameMissing
	}
	if g.l.opts.builtins.Has(moduleName) {
		return g.l.opts.builtins.require(g.native, moduleName)
	}

	if g.loaded && g.depth == 0 && g.l.opts.lazy != nil {
		done := g.l.opts.lazy(g.reqCtx)
		defer done()
	}
	g.depth++
	defer func() { g.depth-- }()

	filename, err := g.filename(moduleName, pathToParent, fromDir)
	if err != nil {
		return nil, err
	}

	if module, ok := g.registry[filename]; ok {
		return module.Get("exports"), nil
	}

	key := g.l.opts.cacheKey(KeyRequest{
		ModuleID:         moduleName,
		PathToSourceFile: filename,
		RequestContext:   g.reqCtx,
	})
	if err := g.execute(filename, key); err != nil {
		return nil, annotate(err, moduleName, pathToParent, g.rootID)
	}

	return g.registry[filename].Get("exports"), nil
}

func (g *graph) filename(moduleName, pathToParent, fromDir string) (string, error) {
	if !g.l.opts.useResolverCache {
		return g.resolve(moduleName, pathToParent, fromDir)
	}
	if filename, ok := g.resolutions[moduleName]; ok {
		return filename, nil
	}
	filename, err := g.resolve(moduleName, pathToParent, fromDir)
	if err != nil {
		return "", err
	}
	g.resolutions[moduleName] = filename
	return filename, nil
}

func (g *graph) resolve(moduleName, pathToParent, fromDir string) (string, error) {
	filename, err := g.l.resolve.Resolve(moduleName, fromDir, g.reqCtx)
	if err != nil {
		return "", resolveError(moduleName, pathToParent, err)
	}
	if filename == "" {
		return "", unresolvedError(moduleName, pathToParent)
	}
	return filename, nil
}

// execute runs the factory of filename. The module is registered before the
// factory runs so circular requires observe its partial exports.
func (g *graph) execute(filename string, key CacheKey) error {
	prog, err := g.program(filename, key)
	if err != nil {
		return err
	}

	wrapper, err := g.rt.RunProgram(prog)
	if err != nil {
		return err
	}
	factory, ok := goja.AssertFunction(wrapper)
	if !ok {
		return domain.Annotate(domain.ErrWrapperNotFunction, "path", filename)
	}

	exports := g.rt.NewObject()
	module := g.rt.NewObject()
	if err := module.Set("exports", exports); err != nil {
		return err
	}
	g.registry[filename] = module

	dir := filepath.Dir(filename)
	_, err = factory(goja.Undefined(),
		exports,
		g.jsRequire(filename, dir),
		module,
		g.rt.ToValue(filename),
		g.rt.ToValue(dir),
	)
	return err
}

func (g *graph) program(filename string, key CacheKey) (*goja.Program, error) {
	k, cached := key.Get()
	if cached {
		if prog, ok := g.l.wrappers.Get(k); ok {
			return prog, nil
		}
	}

	source, err := g.source(filename)
	if err != nil {
		return nil, err
	}
	prog, err := g.l.opts.compile(filename, g.l.opts.wrap(source))
	if err != nil {
		return nil, err
	}

	if cached {
		g.l.wrappers.Add(k, prog)
	}
	return prog, nil
}

func (g *graph) source(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", filename)
	}

	source := string(data)
	for _, t := range g.l.opts.transformers {
		res := t.Transform(domain.TransformInput{Path: filename, Source: source})
		if len(res.Errors) > 0 {
			return "", &TransformError{Path: filename, Errors: res.Errors}
		}
		source = res.TransformedSource
	}
	return source, nil
}

// jsRequire builds the require function handed to a module factory.
func (g *graph) jsRequire(pathToParent, fromDir string) *goja.Object {
	next := g.require(pathToParent, fromDir)

	fn := g.rt.ToValue(func(call goja.FunctionCall) goja.Value {
		v, err := next(stringArg(call))
		if err != nil {
			panic(g.rt.NewGoError(err))
		}
		if v == nil {
			return goja.Undefined()
		}
		return v
	}).(*goja.Object)

	_ = fn.Set("resolve", func(call goja.FunctionCall) goja.Value {
		p, err := g.l.resolve.Resolve(stringArg(call), fromDir, g.reqCtx)
		if err != nil {
			panic(g.rt.NewGoError(err))
		}
		if p == "" {
			return goja.Undefined()
		}
		return g.rt.ToValue(p)
	})

	return fn
}

func stringArg(call goja.FunctionCall) string {
	v := call.Argument(0)
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	return v.String()
}
