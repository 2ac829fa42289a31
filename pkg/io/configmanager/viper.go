package configmanager

import (
	"strings"

	"github.com/devantler-tech/harborsync/pkg/apis/sync/v1alpha1"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the config manager, e.g.
// HARBORSYNC_SOURCE_URL or HARBORSYNC_REPLICATION_CONCURRENCY.
const EnvPrefix = "HARBORSYNC"

// Configuration keys.
const (
	KeySourceURL           = "source.url"
	KeySourceUsername      = "source.username"
	KeySourcePassword      = "source.password"
	KeySourceInsecure      = "source.insecure"
	KeyDestinationURL      = "destination.url"
	KeyDestinationUsername = "destination.username"
	KeyDestinationPassword = "destination.password"
	KeyDestinationInsecure = "destination.insecure"
	KeyProxy               = "network.proxy"
	KeyNoProxy             = "network.noProxy"
	KeyProjects            = "replication.projects"
	KeyPageSize            = "replication.pageSize"
	KeyConcurrency         = "replication.concurrency"
	KeyAllTags             = "replication.allTags"
	KeyDryRun              = "replication.dryRun"
	KeyVerifyDigest        = "replication.verifyDigest"
	KeyLogLevel            = "logLevel"
)

// InitializeViper returns a viper instance that searches harborsync.{yaml,yml,json,toml}
// in the working directory and in $HOME/.config/harborsync, reads HARBORSYNC_* variables and
// knows the default of every key.
func InitializeViper() *viper.Viper {
	v := viper.New()

	v.SetConfigName(v1alpha1.DefaultConfigName)
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/" + v1alpha1.DefaultConfigName)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v, v1alpha1.NewConfig())

	return v
}

// setDefaults registers every key, which AutomaticEnv needs to find variables for keys that
// appear in neither the config file nor the flags.
func setDefaults(v *viper.Viper, defaults *v1alpha1.Config) {
	v.SetDefault(KeySourceURL, defaults.Source.URL)
	v.SetDefault(KeySourceUsername, defaults.Source.Username)
	v.SetDefault(KeySourcePassword, defaults.Source.Password)
	v.SetDefault(KeySourceInsecure, defaults.Source.Insecure)
	v.SetDefault(KeyDestinationURL, defaults.Destination.URL)
	v.SetDefault(KeyDestinationUsername, defaults.Destination.Username)
	v.SetDefault(KeyDestinationPassword, defaults.Destination.Password)
	v.SetDefault(KeyDestinationInsecure, defaults.Destination.Insecure)
	v.SetDefault(KeyProxy, defaults.Network.Proxy)
	v.SetDefault(KeyNoProxy, defaults.Network.NoProxy)
	v.SetDefault(KeyProjects, defaults.Replication.Projects)
	v.SetDefault(KeyPageSize, defaults.Replication.PageSize)
	v.SetDefault(KeyConcurrency, defaults.Replication.Concurrency)
	v.SetDefault(KeyAllTags, defaults.Replication.AllTags)
	v.SetDefault(KeyDryRun, defaults.Replication.DryRun)
	v.SetDefault(KeyVerifyDigest, defaults.Replication.VerifyDigest)
	v.SetDefault(KeyLogLevel, string(defaults.LogLevel))
}
