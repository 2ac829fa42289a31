// Package di wires harborsync's services with samber/do.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handed to modules and handlers.
type Injector = do.Injector

// Module registers services on an injector.
type Module func(Injector) error

// Runtime holds the modules every invocation starts from.
type Runtime struct {
	modules []Module
}

// New creates a runtime from base modules.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// With returns a runtime whose invocations also apply modules after the base modules.
func (r *Runtime) With(modules ...Module) *Runtime {
	return &Runtime{modules: append(append([]Module{}, r.modules...), modules...)}
}

// Invoke builds a fresh injector from the base modules followed by extra, runs handler and
// shuts the injector down. Nil modules are skipped; a module error is returned unwrapped and
// the handler is not called.
func (r *Runtime) Invoke(handler func(Injector) error, extra ...Module) error {
	injector := do.New()

	defer func() { _ = injector.Shutdown() }()

	for _, module := range append(append([]Module{}, r.modules...), extra...) {
		if module == nil {
			continue
		}

		if err := module(injector); err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a handler to cobra's RunE signature.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
	extra ...Module,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		}, extra...)
	}
}
