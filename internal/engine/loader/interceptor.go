package loader

import "github.com/dop251/goja"

// Next requires a module by id.
type Next func(moduleID string) (goja.Value, error)

// InterceptRequest is handed to an interceptor for each require call.
type InterceptRequest struct {
	ModuleID       string
	RequestContext any
	Runtime        *goja.Runtime
	Next           Next
}

// Interceptor either returns a value for the module, short-circuiting the
// require, or delegates to req.Next.
type Interceptor func(req InterceptRequest) (goja.Value, error)

// WrapRequire folds interceptors around require. The first interceptor is
// the outermost; require is called last.
func WrapRequire(require Next, rt *goja.Runtime, reqCtx any, interceptors []Interceptor) Next {
	next := require
	for i := len(interceptors) - 1; i >= 0; i-- {
		intercept, inner := interceptors[i], next
		next = func(moduleID string) (goja.Value, error) {
			return intercept(InterceptRequest{
				ModuleID:       moduleID,
				RequestContext: reqCtx,
				Runtime:        rt,
				Next:           inner,
			})
		}
	}
	return next
}

// Overrides short-circuits the listed module ids with fixed values.
func Overrides(values map[string]any) Interceptor {
	return func(req InterceptRequest) (goja.Value, error) {
		if v, ok := values[req.ModuleID]; ok {
			return req.Runtime.ToValue(v), nil
		}
		return req.Next(req.ModuleID)
	}
}
