package di

import (
	"fmt"
	"io"
	"os"

	"github.com/devantler-tech/harborsync/pkg/apis/sync/v1alpha1"
	"github.com/devantler-tech/harborsync/pkg/client/harbor"
	"github.com/devantler-tech/harborsync/pkg/client/oci"
	"github.com/devantler-tech/harborsync/pkg/svc/replication"
	"github.com/devantler-tech/harborsync/pkg/svc/transfer"
	"github.com/devantler-tech/harborsync/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// Names of the two registry clients.
const (
	SourceClient      = "registry.source"
	DestinationClient = "registry.destination"
)

// CopierFactory creates the image copier for a configuration.
type CopierFactory func(config *v1alpha1.Config) (transfer.Copier, error)

// EngineFactory creates a replication engine; opts are appended to the options derived
// from the configuration.
type EngineFactory func(opts ...replication.Option) (*replication.Engine, error)

// DefaultCopierFactory copies with go-containerregistry.
func DefaultCopierFactory(config *v1alpha1.Config) (transfer.Copier, error) {
	return oci.NewCopier(
		config.Source,
		config.Destination,
		config.Network,
		oci.WithDigestVerification(config.Replication.VerifyDigest),
	)
}

// NewRuntime constructs the runtime used by the root command. The configuration is added
// per invocation with ProvideConfig, once flags are parsed.
func NewRuntime(logOutput io.Writer) *Runtime {
	return New(
		provideTimer,
		provideLogger(logOutput),
		provideCopierFactory,
		provideRegistryClients,
		provideEngineFactory,
	)
}

// ProvideConfig registers a loaded configuration.
func ProvideConfig(config *v1alpha1.Config) Module {
	return func(i Injector) error {
		do.ProvideValue(i, config)

		return nil
	}
}

// OverrideCopierFactory replaces the copier factory, e.g. with a fake in tests.
func OverrideCopierFactory(factory CopierFactory) Module {
	return func(i Injector) error {
		do.Override(i, func(Injector) (CopierFactory, error) {
			return factory, nil
		})

		return nil
	}
}

func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

func provideLogger(output io.Writer) Module {
	if output == nil {
		output = os.Stderr
	}

	return func(i Injector) error {
		do.Provide(i, func(i Injector) (*logrus.Logger, error) {
			config, err := ResolveConfig(i)
			if err != nil {
				return nil, err
			}

			level, err := logrus.ParseLevel(string(config.LogLevel))
			if err != nil {
				return nil, fmt.Errorf("parse log level: %w", err)
			}

			logger := logrus.New()
			logger.SetOutput(output)
			logger.SetLevel(level)
			logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

			oci.ConfigureLogging(logger)

			return logger, nil
		})

		return nil
	}
}

func provideCopierFactory(i Injector) error {
	do.Provide(i, func(Injector) (CopierFactory, error) {
		return DefaultCopierFactory, nil
	})

	return nil
}

func provideRegistryClients(i Injector) error {
	register := func(name string, endpoint func(*v1alpha1.Config) v1alpha1.Endpoint) {
		do.ProvideNamed(i, name, func(i Injector) (*harbor.Client, error) {
			config, err := ResolveConfig(i)
			if err != nil {
				return nil, err
			}

			logger, err := ResolveLogger(i)
			if err != nil {
				return nil, err
			}

			client, err := harbor.NewClient(
				endpoint(config),
				config.Network,
				harbor.WithPageSize(config.Replication.PageSize),
				harbor.WithLogger(logger.WithField("registry", name)),
			)
			if err != nil {
				return nil, fmt.Errorf("create %s client: %w", name, err)
			}

			return client, nil
		})
	}

	register(SourceClient, func(c *v1alpha1.Config) v1alpha1.Endpoint { return c.Source })
	register(DestinationClient, func(c *v1alpha1.Config) v1alpha1.Endpoint { return c.Destination })

	return nil
}

func provideEngineFactory(i Injector) error {
	do.Provide(i, func(i Injector) (EngineFactory, error) {
		return func(opts ...replication.Option) (*replication.Engine, error) {
			return newEngine(i, opts...)
		}, nil
	})

	return nil
}

func newEngine(i Injector, opts ...replication.Option) (*replication.Engine, error) {
	config, err := ResolveConfig(i)
	if err != nil {
		return nil, err
	}

	logger, err := ResolveLogger(i)
	if err != nil {
		return nil, err
	}

	source, err := ResolveRegistryClient(i, SourceClient)
	if err != nil {
		return nil, err
	}

	destination, err := ResolveRegistryClient(i, DestinationClient)
	if err != nil {
		return nil, err
	}

	factory, err := do.Invoke[CopierFactory](i)
	if err != nil {
		return nil, fmt.Errorf("resolve copier factory dependency: %w", err)
	}

	copier, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("create image copier: %w", err)
	}

	base := []replication.Option{
		replication.WithConcurrency(config.Replication.Concurrency),
		replication.WithAllTags(config.Replication.AllTags),
		replication.WithDryRun(config.Replication.DryRun),
		replication.WithLogger(logger),
	}

	return replication.NewEngine(source, destination, copier, append(base, opts...)...), nil
}
