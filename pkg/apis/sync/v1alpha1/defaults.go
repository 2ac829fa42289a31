package v1alpha1

const (
	// DefaultPageSize is the number of entries requested per page from the registry API.
	DefaultPageSize = 100
	// MaxPageSize is the largest page_size the Harbor v2.0 API accepts.
	MaxPageSize = 100
	// DefaultConcurrency processes repositories strictly one at a time.
	DefaultConcurrency = 1
	// DefaultConfigName is the config file name (without extension) searched by the config manager.
	DefaultConfigName = "harborsync"
	// APIBasePath is the path prefix of the Harbor v2.0 REST API.
	APIBasePath = "/api/v2.0"
)

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Replication: Replication{
			PageSize:    DefaultPageSize,
			Concurrency: DefaultConcurrency,
		},
		LogLevel: LogLevelWarn,
	}
}
