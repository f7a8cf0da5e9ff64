package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

// LoadError is an error annotated while unwinding a dependency graph.
// Root marks an error whose origin module was already named in the message.
type LoadError struct {
	Message string
	Code    string

	root  bool
	cause error
}

func (e *LoadError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.cause
}

// Root reports whether the error has been attributed to a module.
func (e *LoadError) Root() bool {
	return e.root
}

// TransformError reports the messages of a failing source transformer.
type TransformError struct {
	Path   string
	Errors []string
}

func (e *TransformError) Error() string {
	return "[LoadModule] Transform error(s):\n" + strings.Join(e.Errors, "\n")
}

func resolveError(moduleName, pathToParent string, err error) *LoadError {
	le := &LoadError{
		Message: fmt.Sprintf("Could not resolve module: %s, imported by %s\n%s", moduleName, pathToParent, messageOf(err)),
		root:    true,
		cause:   err,
	}
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		le.Code = coded.Code()
	}
	return le
}

func unresolvedError(moduleName, pathToParent string) *LoadError {
	return &LoadError{Message: fmt.Sprintf("Could not resolve module: %s, imported by %s", moduleName, pathToParent)}
}

// annotate names the failing module once, then each enclosing module on the
// way back to the root.
func annotate(err error, moduleName, pathToParent, rootID string) *LoadError {
	le, ok := asLoadError(err)
	if !ok {
		return &LoadError{
			Message: fmt.Sprintf("Error loading module %s from %s.\n%s", moduleName, pathToParent, messageOf(err)),
			root:    true,
			cause:   err,
		}
	}

	switch {
	case !le.root:
		le.root = true
		le.Message = fmt.Sprintf("Error loading module %s from %s.\n%s", moduleName, pathToParent, le.Message)
	case moduleName != rootID:
		le.Message = fmt.Sprintf("Error loading dependencies of %s.\n%s", pathToParent, le.Message)
	}
	return le
}

// asLoadError finds a LoadError in err, including one thrown through JavaScript.
func asLoadError(err error) (*LoadError, bool) {
	var le *LoadError
	if errors.As(err, &le) {
		return le, true
	}
	if goErr := thrownGoError(err); goErr != nil && errors.As(goErr, &le) {
		return le, true
	}
	return nil, false
}

// thrownGoError extracts the Go error carried by a GoError thrown in JavaScript.
func thrownGoError(err error) error {
	var ex *goja.Exception
	if !errors.As(err, &ex) {
		return nil
	}
	obj, ok := ex.Value().(*goja.Object)
	if !ok {
		return nil
	}
	v := obj.Get("value")
	if v == nil {
		return nil
	}
	goErr, _ := v.Export().(error)
	return goErr
}

// messageOf returns the JavaScript message of a thrown error, or err.Error().
func messageOf(err error) string {
	if goErr := thrownGoError(err); goErr != nil {
		return goErr.Error()
	}
	var ex *goja.Exception
	if errors.As(err, &ex) {
		if obj, ok := ex.Value().(*goja.Object); ok {
			if m := obj.Get("message"); m != nil && !goja.IsUndefined(m) {
				return m.String()
			}
		}
		if v := ex.Value(); v != nil {
			return v.String()
		}
	}
	return err.Error()
}
