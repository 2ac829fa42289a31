package di

import (
	"fmt"

	"github.com/devantler-tech/harborsync/pkg/apis/sync/v1alpha1"
	"github.com/devantler-tech/harborsync/pkg/client/harbor"
	"github.com/devantler-tech/harborsync/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ResolveTimer retrieves the timer dependency.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveConfig retrieves the loaded configuration.
func ResolveConfig(injector Injector) (*v1alpha1.Config, error) {
	config, err := do.Invoke[*v1alpha1.Config](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve config dependency: %w", err)
	}

	return config, nil
}

// ResolveLogger retrieves the diagnostics logger.
func ResolveLogger(injector Injector) (*logrus.Logger, error) {
	logger, err := do.Invoke[*logrus.Logger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}

// ResolveRegistryClient retrieves the SourceClient or DestinationClient.
func ResolveRegistryClient(injector Injector, name string) (*harbor.Client, error) {
	client, err := do.InvokeNamed[*harbor.Client](injector, name)
	if err != nil {
		return nil, fmt.Errorf("resolve %s dependency: %w", name, err)
	}

	return client, nil
}

// ResolveEngineFactory retrieves the replication engine factory.
func ResolveEngineFactory(injector Injector) (EngineFactory, error) {
	factory, err := do.Invoke[EngineFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve engine factory dependency: %w", err)
	}

	return factory, nil
}

// WithTimer decorates a handler to resolve and start the timer.
func WithTimer(
	handler func(cmd *cobra.Command, injector Injector, tmr timer.Timer) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		tmr, err := ResolveTimer(injector)
		if err != nil {
			return err
		}

		tmr.Start()

		return handler(cmd, injector, tmr)
	}
}
