package v1alpha1

import "github.com/devantler-tech/harborsync/pkg/utils/envvar"

// ExpandEnvVars expands ${VAR} and ${VAR:-default} placeholders in the endpoint, network
// and project settings, so credentials can stay out of config files. It returns the
// referenced variables that were not set and had no default.
func (c *Config) ExpandEnvVars() []string {
	var unset []string

	expand := func(value *string) {
		unset = append(unset, envvar.Unset(*value)...)
		*value = envvar.Expand(*value)
	}

	for _, endpoint := range []*Endpoint{&c.Source, &c.Destination} {
		expand(&endpoint.URL)
		expand(&endpoint.Username)
		expand(&endpoint.Password)
	}

	expand(&c.Network.Proxy)

	for i := range c.Network.NoProxy {
		expand(&c.Network.NoProxy[i])
	}

	for i := range c.Replication.Projects {
		expand(&c.Replication.Projects[i])
	}

	return unset
}
