package configmanager

import (
	"fmt"

	"github.com/devantler-tech/harborsync/pkg/apis/sync/v1alpha1"
	"github.com/spf13/pflag"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"source":               KeySourceURL,
	"source-username":      KeySourceUsername,
	"source-password":      KeySourcePassword,
	"source-insecure":      KeySourceInsecure,
	"destination":          KeyDestinationURL,
	"destination-username": KeyDestinationUsername,
	"destination-password": KeyDestinationPassword,
	"destination-insecure": KeyDestinationInsecure,
	"proxy":                KeyProxy,
	"no-proxy":             KeyNoProxy,
	"project":              KeyProjects,
	"page-size":            KeyPageSize,
	"concurrency":          KeyConcurrency,
	"all-tags":             KeyAllTags,
	"dry-run":              KeyDryRun,
	"verify-digest":        KeyVerifyDigest,
	"log-level":            KeyLogLevel,
}

// AddFlags defines the configuration flags on flags and binds them to the manager's viper
// instance. Flag defaults mirror v1alpha1.NewConfig.
func (m *ConfigManager) AddFlags(flags *pflag.FlagSet) error {
	defaults := v1alpha1.NewConfig()

	flags.String("source", "", "source registry URL (https is assumed without a scheme)")
	flags.String("source-username", "", "source registry username")
	flags.String("source-password", "", "source registry password or robot token")
	flags.Bool("source-insecure", false, "skip TLS verification for the source registry")
	flags.String("destination", "", "destination registry URL (https is assumed without a scheme)")
	flags.String("destination-username", "", "destination registry username")
	flags.String("destination-password", "", "destination registry password or robot token")
	flags.Bool("destination-insecure", false, "skip TLS verification for the destination registry")
	flags.String("proxy", "", "proxy URL for every registry connection")
	flags.StringSlice("no-proxy", nil, "hosts or .domain suffixes that bypass the proxy")
	flags.StringSlice("project", nil, "replicate only these projects (repeatable)")
	flags.Int("page-size", defaults.Replication.PageSize, "registry API page size")
	flags.Int("concurrency", defaults.Replication.Concurrency, "repositories replicated in parallel")
	flags.Bool("all-tags", false, "replicate every tag of an artifact instead of its first tag")
	flags.Bool("dry-run", false, "plan without copying images")
	flags.Bool("verify-digest", false, "compare source and destination digests after every copy")

	logLevel := defaults.LogLevel
	flags.Var(&logLevel, "log-level", fmt.Sprintf("diagnostic log level %v", logLevel.ValidValues()))

	return m.BindFlags(flags)
}

// BindFlags binds every known flag present in flags to its configuration key.
func (m *ConfigManager) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}

		if err := m.Viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	return nil
}
