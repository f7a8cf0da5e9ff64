package domain

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/dop251/goja"
	"go.trai.ch/zerr"
)

var (
	// ErrConfigNotFound is returned when no bagel.yaml can be found.
	ErrConfigNotFound = zerr.New("configuration file not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read configuration file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse configuration file")

	// ErrInvalidConfig is returned when a configuration value is out of range or unknown.
	ErrInvalidConfig = zerr.New("invalid configuration value")

	// ErrModuleNameMissing is returned when require is called without a module name.
	ErrModuleNameMissing = zerr.New("moduleName is not defined")

	// ErrSourceReadFailed is returned when a resolved module cannot be read from disk.
	ErrSourceReadFailed = zerr.New("failed to read module source")

	// ErrWrapperNotFunction is returned when a wrapped module does not evaluate to a function.
	ErrWrapperNotFunction = zerr.New("module wrapper did not evaluate to a function")

	// ErrNotRenderable is returned when a loaded module exposes nothing a renderer can call.
	ErrNotRenderable = zerr.New("module does not export a renderable component")

	// ErrRenderPending is returned when a component returns a promise that never settles.
	ErrRenderPending = zerr.New("render promise did not settle")

	// ErrMalformedRequest is returned when a batch request body is not valid JSON.
	ErrMalformedRequest = zerr.New("malformed batch request")

	// ErrUnknownTransport is returned when the configured transport is not supported.
	ErrUnknownTransport = zerr.New("unknown transport")

	// ErrUnknownPlugin is returned when the configuration names a plugin that does not exist.
	ErrUnknownPlugin = zerr.New("unknown plugin")

	// ErrBatchFailed is returned by one-shot rendering when the batch failed as a whole.
	// The failure has already been reported.
	ErrBatchFailed = zerr.New("batch failed")
)

// ErrorType classifies the pipeline stage an error was finalized in.
type ErrorType string

const (
	// ErrorTypeInvalidRequest marks malformed wire input.
	ErrorTypeInvalidRequest ErrorType = "INVALID_REQUEST"
	// ErrorTypeLoadingModule marks resolution, compilation and execution failures.
	ErrorTypeLoadingModule ErrorType = "LOADING_MODULE"
	// ErrorTypeRender marks renderer exceptions and stream errors.
	ErrorTypeRender ErrorType = "RENDER"
	// ErrorTypeJob marks failures of the job stage outside load and render.
	ErrorTypeJob ErrorType = "JOB"
	// ErrorTypeBatch marks failures of the batch stage.
	ErrorTypeBatch ErrorType = "BATCH"
)

// UnknownModuleName is the name reported when an error cannot be tied to a module.
const UnknownModuleName = "unknown module name"

const unknownErrorMessage = "unknown error message"

// ErrorResponse is a finalized, serializable pipeline error.
// Once an error carries a Type it passes through every outer stage unchanged.
type ErrorResponse struct {
	Name     string
	Type     ErrorType
	Message  string
	Stack    []string
	PID      int
	Code     int
	Metadata map[string]any

	cause error
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// Unwrap returns the error the response was built from.
func (e *ErrorResponse) Unwrap() error {
	return e.cause
}

// JobID returns the job id recorded in the error metadata, if any.
func (e *ErrorResponse) JobID() string {
	if id, ok := e.Metadata["jobId"].(string); ok {
		return id
	}
	return ""
}

// MarshalJSON flattens the metadata next to the error fields.
func (e *ErrorResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Metadata)+7)
	for k, v := range e.Metadata {
		out[k] = v
	}
	out["name"] = e.Name
	out["type"] = e.Type
	out["message"] = e.Message
	if len(e.Stack) > 0 {
		out["stack"] = e.Stack
	} else {
		out["stack"] = nil
	}
	out["pid"] = e.PID
	if e.Code != 0 {
		out["code"] = e.Code
	}
	return json.Marshal(out)
}

// Annotate attaches key and value to a sentinel error. The sentinel stays in
// the chain, so errors.Is still matches it, and the message is unchanged.
func Annotate(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}

// SerializeError converts any error into a typed ErrorResponse.
func SerializeError(err error, metadata map[string]any, name string, typ ErrorType, code int) *ErrorResponse {
	md := make(map[string]any, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}

	msg := messageOf(err)
	if msg == "" {
		msg = unknownErrorMessage
	}

	return &ErrorResponse{
		Name:     name,
		Type:     typ,
		Message:  msg,
		Stack:    stackOf(err),
		PID:      os.Getpid(),
		Code:     code,
		Metadata: md,
		cause:    err,
	}
}

// LoadModuleError tags err as a LOADING_MODULE failure of the named job.
func LoadModuleError(err error, metadata *Metadata, name string) *ErrorResponse {
	return SerializeError(err, metadata.Snapshot(), name, ErrorTypeLoadingModule, 0)
}

// RenderError tags err as a RENDER failure of the named job.
func RenderError(err error, metadata *Metadata, name string) *ErrorResponse {
	return SerializeError(err, metadata.Snapshot(), name, ErrorTypeRender, 0)
}

// JobError tags err as a JOB failure of the named job.
func JobError(err error, metadata *Metadata, name string) *ErrorResponse {
	return SerializeError(err, metadata.Snapshot(), name, ErrorTypeJob, 0)
}

// InvalidRequestError tags err as an INVALID_REQUEST failure.
func InvalidRequestError(err error, metadata map[string]any, name string) *ErrorResponse {
	return SerializeError(err, metadata, name, ErrorTypeInvalidRequest, 0)
}

// BatchError tags err as a BATCH failure. A zero code defaults to the
// error's own status code, or 500.
func BatchError(err error, ctx *BatchContext, code int) *ErrorResponse {
	if code == 0 {
		var sc interface{ StatusCode() int }
		if errors.As(err, &sc) {
			code = sc.StatusCode()
		}
	}
	if code == 0 {
		code = 500
	}
	var md *Metadata
	if ctx != nil {
		md = ctx.Metadata
	}
	return SerializeError(err, md.Snapshot(), UnknownModuleName, ErrorTypeBatch, code)
}

// AsErrorResponse reports whether err already carries a stage type.
func AsErrorResponse(err error) (*ErrorResponse, bool) {
	var resp *ErrorResponse
	if errors.As(err, &resp) && resp.Type != "" {
		return resp, true
	}
	return nil, false
}

func messageOf(err error) string {
	if err == nil {
		return ""
	}
	if ex, ok := err.(*goja.Exception); ok { //nolint:errorlint // only a bare exception carries the JS message
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

func stackOf(err error) []string {
	var ex *goja.Exception
	if !errors.As(err, &ex) {
		return nil
	}
	if obj, ok := ex.Value().(*goja.Object); ok {
		if s := obj.Get("stack"); s != nil && !goja.IsUndefined(s) {
			return splitStack(s.String())
		}
	}
	return splitStack(ex.String())
}

func splitStack(stack string) []string {
	var lines []string
	for _, line := range strings.Split(stack, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
