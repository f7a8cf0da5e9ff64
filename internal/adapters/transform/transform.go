// Package transform provides source transformers applied to modules before compilation.
package transform

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
)

// Func adapts a function to ports.Transformer.
type Func func(in domain.TransformInput) domain.TransformResult

// Transform calls f.
func (f Func) Transform(in domain.TransformInput) domain.TransformResult {
	return f(in)
}

var registry = map[string]ports.Transformer{
	"shebang": Func(Shebang),
	"json":    Func(JSON),
}

// Lookup returns the transformer registered under name.
func Lookup(name string) (ports.Transformer, bool) {
	t, ok := registry[name]
	return t, ok
}

// Shebang blanks a leading #! line, keeping line numbers intact.
func Shebang(in domain.TransformInput) domain.TransformResult {
	if !strings.HasPrefix(in.Source, "#!") {
		return domain.TransformResult{TransformedSource: in.Source}
	}
	if i := strings.IndexByte(in.Source, '\n'); i >= 0 {
		return domain.TransformResult{TransformedSource: in.Source[i:]}
	}
	return domain.TransformResult{}
}

// JSON turns a .json file into a module exporting its decoded value.
// Other files pass through unchanged.
func JSON(in domain.TransformInput) domain.TransformResult {
	if !strings.EqualFold(filepath.Ext(in.Path), ".json") {
		return domain.TransformResult{TransformedSource: in.Source}
	}
	if !json.Valid([]byte(in.Source)) {
		return domain.TransformResult{Errors: []string{"invalid JSON in " + in.Path}}
	}
	return domain.TransformResult{TransformedSource: "module.exports = " + strings.TrimSpace(in.Source) + ";"}
}
