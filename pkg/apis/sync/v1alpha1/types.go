package v1alpha1

import (
	"fmt"
	"net/url"
	"strings"
)

// Config is the complete configuration of a replication run.
type Config struct {
	// Source is the registry artifacts are read from.
	Source Endpoint `json:"source" mapstructure:"source"`
	// Destination is the registry artifacts are replicated to.
	Destination Endpoint `json:"destination" mapstructure:"destination"`
	// Network holds proxy settings shared by both registries.
	Network Network `json:"network" mapstructure:"network"`
	// Replication holds the replication policy.
	Replication Replication `json:"replication" mapstructure:"replication"`
	// LogLevel is the diagnostic log level.
	LogLevel LogLevel `json:"logLevel" mapstructure:"logLevel"`
}

// Endpoint describes how to reach one registry.
type Endpoint struct {
	// URL is the registry address, e.g. "https://harbor.example.org". A missing scheme means https.
	URL string `json:"url" mapstructure:"url"`
	// Username is the basic-auth user.
	Username string `json:"username,omitempty" mapstructure:"username"`
	// Password is the basic-auth password or robot token.
	Password string `json:"-" mapstructure:"password"`
	// Insecure disables TLS certificate verification for this registry. Opt-in only.
	Insecure bool `json:"insecure,omitempty" mapstructure:"insecure"`
}

// Network configures egress for registry connections.
type Network struct {
	// Proxy is the proxy URL used for every registry connection. Empty means direct.
	Proxy string `json:"proxy,omitempty" mapstructure:"proxy"`
	// NoProxy lists hosts (or ".domain" suffixes) that bypass the proxy.
	NoProxy []string `json:"noProxy,omitempty" mapstructure:"noProxy"`
}

// Replication is the replication policy.
type Replication struct {
	// Projects restricts a full-scope run to these projects. Empty means every project.
	Projects []string `json:"projects,omitempty" mapstructure:"projects"`
	// PageSize is the registry API page size.
	PageSize int `json:"pageSize" mapstructure:"pageSize"`
	// Concurrency is the number of repositories processed in parallel.
	Concurrency int `json:"concurrency" mapstructure:"concurrency"`
	// AllTags replicates every tag of an artifact instead of only its first tag.
	AllTags bool `json:"allTags,omitempty" mapstructure:"allTags"`
	// DryRun plans without transferring.
	DryRun bool `json:"dryRun,omitempty" mapstructure:"dryRun"`
	// VerifyDigest compares source and destination digests after every copy.
	VerifyDigest bool `json:"verifyDigest,omitempty" mapstructure:"verifyDigest"`
}

// HasCredentials reports whether basic-auth credentials are configured.
func (e Endpoint) HasCredentials() bool {
	return e.Username != "" || e.Password != ""
}

// BaseURL returns the registry URL with a scheme and without a trailing slash.
func (e Endpoint) BaseURL() (string, error) {
	raw := strings.TrimSpace(e.URL)
	if raw == "" {
		return "", ErrInvalidURL
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidURL, e.URL, err)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, e.URL)
	}

	return strings.TrimSuffix(parsed.Scheme+"://"+parsed.Host+parsed.Path, "/"), nil
}

// Host returns the registry host[:port] used in image references.
func (e Endpoint) Host() string {
	base, err := e.BaseURL()
	if err != nil {
		return ""
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return ""
	}

	return parsed.Host
}
