package configmanager

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/devantler-tech/harborsync/pkg/apis/sync/v1alpha1"
	"github.com/devantler-tech/harborsync/pkg/utils/notify"
	"github.com/devantler-tech/harborsync/pkg/utils/timer"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// Timer enables timing output in the success notification.
	Timer timer.Timer
	// Silent suppresses loading notifications.
	Silent bool
	// ConfigFile is an explicit config file path. It must exist when set.
	ConfigFile string
}

// ConfigManager loads and caches the harborsync configuration.
type ConfigManager struct {
	Viper  *viper.Viper
	Config *v1alpha1.Config
	Writer io.Writer

	loaded         bool
	configFileUsed string
}

// NewConfigManager creates a manager writing its notifications to writer.
func NewConfigManager(writer io.Writer) *ConfigManager {
	return &ConfigManager{
		Viper:  InitializeViper(),
		Config: v1alpha1.NewConfig(),
		Writer: writer,
	}
}

// Load reads, decodes and validates the configuration. Later calls return the cached result.
// Priority: defaults < config file < environment variables < flags. ${VAR} placeholders in
// the decoded values are expanded before validation.
func (m *ConfigManager) Load(opts LoadOptions) (*v1alpha1.Config, error) {
	if m.loaded {
		return m.Config, nil
	}

	if !opts.Silent {
		notify.Activityf(m.Writer, "loading configuration")
	}

	err := m.readConfig(opts)
	if err != nil {
		return nil, err
	}

	config := v1alpha1.NewConfig()

	err = m.Viper.Unmarshal(config, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			logLevelDecodeHook(),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	for _, name := range config.ExpandEnvVars() {
		if !opts.Silent {
			notify.Warningf(m.Writer, "environment variable %s is not set", name)
		}
	}

	err = config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}

	m.Config = config
	m.loaded = true

	if !opts.Silent {
		notify.SuccessWithTimerf(m.Writer, opts.Timer, "configuration loaded")
	}

	return m.Config, nil
}

// ConfigFileUsed returns the config file that was read, or an empty string.
func (m *ConfigManager) ConfigFileUsed() string {
	return m.configFileUsed
}

func (m *ConfigManager) readConfig(opts LoadOptions) error {
	if opts.ConfigFile != "" {
		m.Viper.SetConfigFile(opts.ConfigFile)
	}

	err := m.Viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile == "" && errors.As(err, &notFound) {
			if !opts.Silent {
				notify.Infof(m.Writer, "no config file found, using flags and environment")
			}

			return nil
		}

		return fmt.Errorf("failed to read config file: %w", err)
	}

	m.configFileUsed = m.Viper.ConfigFileUsed()

	if !opts.Silent {
		notify.Infof(m.Writer, "using config file %s", m.configFileUsed)
	}

	return nil
}

// logLevelDecodeHook accepts log levels in any case.
func logLevelDecodeHook() mapstructure.DecodeHookFuncType {
	target := reflect.TypeFor[v1alpha1.LogLevel]()

	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != target || from.Kind() != reflect.String {
			return data, nil
		}

		var level v1alpha1.LogLevel

		err := level.Set(reflect.ValueOf(data).String())
		if err != nil {
			return nil, fmt.Errorf("decode log level: %w", err)
		}

		return level, nil
	}
}
