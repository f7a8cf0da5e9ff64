package loader

import (
	"errors"
	"strings"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/buffer"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/process"
	"github.com/dop251/goja_nodejs/require"
	"github.com/dop251/goja_nodejs/url"
	"github.com/dop251/goja_nodejs/util"
	"go.trai.ch/bagel/internal/core/ports"
)

// Builtins is the table of native modules a loaded module may require by
// name. Builtins are consulted before resolution and never hit the disk.
type Builtins struct {
	registry *require.Registry
	names    map[string]struct{}
}

// NewBuiltins creates the default table. console output goes to log; a nil
// log keeps the stdout printer.
func NewBuiltins(log ports.Logger) *Builtins {
	b := &Builtins{
		registry: require.NewRegistry(),
		names:    make(map[string]struct{}),
	}

	if log != nil {
		b.Register(console.ModuleName, console.RequireWithPrinter(consolePrinter{log: log}))
	} else {
		b.Register(console.ModuleName, console.Require)
	}
	b.Register(util.ModuleName, util.Require)
	b.Register(buffer.ModuleName, buffer.Require)
	b.Register(url.ModuleName, url.Require)
	b.Register(process.ModuleName, process.Require)
	return b
}

// Register adds a native module under name.
func (b *Builtins) Register(name string, loader require.ModuleLoader) {
	b.registry.RegisterNativeModule(name, loader)
	b.names[name] = struct{}{}
}

// Has reports whether id names a builtin. The node: prefix is accepted.
func (b *Builtins) Has(id string) bool {
	if b == nil {
		return false
	}
	_, ok := b.names[strings.TrimPrefix(id, "node:")]
	return ok
}

// enable installs the table and a global console into rt.
func (b *Builtins) enable(rt *goja.Runtime) *require.RequireModule {
	mod := b.registry.Enable(rt)
	if _, ok := b.names[console.ModuleName]; ok {
		console.Enable(rt)
	}
	return mod
}

func (b *Builtins) require(mod *require.RequireModule, id string) (goja.Value, error) {
	return mod.Require(strings.TrimPrefix(id, "node:"))
}

// consolePrinter routes JavaScript console output to the logger.
type consolePrinter struct {
	log ports.Logger
}

func (p consolePrinter) Log(s string)  { p.log.Info(s) }
func (p consolePrinter) Warn(s string) { p.log.Warn(s) }

func (p consolePrinter) Error(s string) { p.log.Error(errors.New(s)) }
