// Package egress builds the HTTP transports used to reach registries.
//
// Proxy and TLS settings come from an explicit configuration value rather than the process
// environment, so the registry client and the image copier share the same egress rules
// without mutating global state.
package egress

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/devantler-tech/harborsync/pkg/apis/sync/v1alpha1"
	"golang.org/x/net/http/httpproxy"
)

// ProxyFunc returns the proxy selector for the network settings.
// It returns nil when no proxy is configured, which means direct connections.
func ProxyFunc(network v1alpha1.Network) (func(*http.Request) (*url.URL, error), error) {
	proxy := strings.TrimSpace(network.Proxy)
	if proxy == "" {
		return nil, nil
	}

	_, err := url.Parse(proxy)
	if err != nil {
		return nil, fmt.Errorf("parse proxy URL %q: %w", proxy, err)
	}

	noProxy := make([]string, 0, len(network.NoProxy))
	for _, host := range network.NoProxy {
		host = strings.TrimSpace(host)
		if host != "" {
			noProxy = append(noProxy, host)
		}
	}

	selector := (&httpproxy.Config{
		HTTPProxy:  proxy,
		HTTPSProxy: proxy,
		NoProxy:    strings.Join(noProxy, ","),
	}).ProxyFunc()

	return func(req *http.Request) (*url.URL, error) {
		return selector(req.URL)
	}, nil
}

// NewTransport returns a transport that applies the network proxy settings and, only when the
// endpoint opts in, skips TLS certificate verification.
func NewTransport(endpoint v1alpha1.Endpoint, network v1alpha1.Network) (*http.Transport, error) {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		base = &http.Transport{}
	}

	transport := base.Clone()

	proxy, err := ProxyFunc(network)
	if err != nil {
		return nil, err
	}

	transport.Proxy = proxy

	if endpoint.Insecure {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // Explicit per-registry opt-in.
		}
	}

	return transport, nil
}

// HostRouter dispatches requests to a per-host transport and falls back to a default one.
// It lets a single copy operation talk to two registries with different TLS settings.
type HostRouter struct {
	routes   map[string]http.RoundTripper
	fallback http.RoundTripper
}

// NewHostRouter creates a router with the given fallback transport.
func NewHostRouter(fallback http.RoundTripper) *HostRouter {
	return &HostRouter{
		routes:   map[string]http.RoundTripper{},
		fallback: fallback,
	}
}

// Route registers the transport used for requests to host (host[:port], case-insensitive).
func (r *HostRouter) Route(host string, transport http.RoundTripper) {
	r.routes[strings.ToLower(host)] = transport
}

// RoundTrip implements http.RoundTripper.
func (r *HostRouter) RoundTrip(req *http.Request) (*http.Response, error) {
	if transport, ok := r.routes[strings.ToLower(req.URL.Host)]; ok {
		return transport.RoundTrip(req) //nolint:wrapcheck // Transparent transport.
	}

	return r.fallback.RoundTrip(req) //nolint:wrapcheck // Transparent transport.
}
