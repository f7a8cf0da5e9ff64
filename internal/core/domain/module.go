package domain

import "github.com/dop251/goja"

// Module is the result of loading a root module: its exports and the runtime
// they live in. The runtime is owned by the job that loaded the module.
type Module struct {
	ID      string
	Runtime *goja.Runtime
	Exports goja.Value
}

// Export returns the named property of the module exports, or nil.
func (m *Module) Export(name string) goja.Value {
	if m == nil || m.Exports == nil {
		return nil
	}
	obj, ok := m.Exports.(*goja.Object)
	if !ok {
		return nil
	}
	v := obj.Get(name)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v
}

// Func returns the named exported function.
func (m *Module) Func(name string) (goja.Callable, bool) {
	v := m.Export(name)
	if v == nil {
		return nil, false
	}
	return goja.AssertFunction(v)
}

// RejectionError carries the reason a JavaScript promise was rejected with.
type RejectionError struct {
	Reason goja.Value
}

func (e *RejectionError) Error() string {
	if obj, ok := e.Reason.(*goja.Object); ok {
		if m := obj.Get("message"); m != nil && !goja.IsUndefined(m) {
			return m.String()
		}
	}
	if e.Reason == nil || goja.IsUndefined(e.Reason) {
		return ""
	}
	return e.Reason.String()
}

// Await unwraps v if it is a promise. goja runs queued jobs before a call
// from Go returns, so a promise still pending at that point never settles.
func Await(v goja.Value) (goja.Value, error) {
	if v == nil {
		return goja.Undefined(), nil
	}
	p, ok := v.Export().(*goja.Promise)
	if !ok {
		return v, nil
	}
	switch p.State() {
	case goja.PromiseStateFulfilled:
		return Await(p.Result())
	case goja.PromiseStateRejected:
		return nil, &RejectionError{Reason: p.Result()}
	default:
		return nil, ErrRenderPending
	}
}
