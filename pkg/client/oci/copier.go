package oci

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/devantler-tech/harborsync/pkg/apis/sync/v1alpha1"
	"github.com/devantler-tech/harborsync/pkg/client/egress"
	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
)

// Copier copies tagged images between two registries without a local copy.
// A tag that points at an index is copied with every platform manifest it references.
type Copier struct {
	keychain      authn.Keychain
	transport     http.RoundTripper
	insecureHosts map[string]bool
	verifyDigest  bool
}

// CopierOption configures a Copier.
type CopierOption func(*Copier)

// WithKeychain replaces the keychain built from the endpoint credentials.
func WithKeychain(keychain authn.Keychain) CopierOption {
	return func(c *Copier) {
		c.keychain = keychain
	}
}

// WithTransport replaces the transport built from the endpoint and network settings.
func WithTransport(transport http.RoundTripper) CopierOption {
	return func(c *Copier) {
		c.transport = transport
	}
}

// WithDigestVerification makes Copy resolve both references after the copy and fail when
// their digests differ.
func WithDigestVerification(enabled bool) CopierOption {
	return func(c *Copier) {
		c.verifyDigest = enabled
	}
}

// NewCopier creates a copier for the source and destination endpoints. Each registry host
// gets its own credentials and TLS settings; other hosts (such as token services) use a
// verifying transport. Plain HTTP is allowed only for a registry that is marked insecure or
// whose URL uses the http scheme.
func NewCopier(
	source, destination v1alpha1.Endpoint,
	network v1alpha1.Network,
	opts ...CopierOption,
) (*Copier, error) {
	fallback, err := egress.NewTransport(v1alpha1.Endpoint{}, network)
	if err != nil {
		return nil, fmt.Errorf("create copier: %w", err)
	}

	router := egress.NewHostRouter(fallback)
	insecureHosts := map[string]bool{}

	for _, endpoint := range []v1alpha1.Endpoint{source, destination} {
		transport, err := egress.NewTransport(endpoint, network)
		if err != nil {
			return nil, fmt.Errorf("create copier: %w", err)
		}

		host := endpoint.Host()
		if host == "" {
			continue
		}

		router.Route(host, transport)

		if allowsPlainHTTP(endpoint) {
			insecureHosts[host] = true
		}
	}

	copier := &Copier{
		keychain:      NewKeychain(source, destination),
		transport:     router,
		insecureHosts: insecureHosts,
	}

	for _, opt := range opts {
		opt(copier)
	}

	return copier, nil
}

// Copy replicates src to dst, including every platform of a multi-platform image.
func (c *Copier) Copy(ctx context.Context, src, dst string) error {
	srcRef, err := c.parseReference(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopyFailed, err)
	}

	dstRef, err := c.parseReference(dst)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopyFailed, err)
	}

	err = c.copy(ctx, srcRef, dstRef)
	if err != nil {
		return fmt.Errorf("%w: %s -> %s: %w", ErrCopyFailed, src, dst, classifyRegistryError(err))
	}

	if c.verifyDigest {
		err = c.verify(ctx, src, dst)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCopyFailed, err)
		}
	}

	return nil
}

// VerifiesDigest reports whether Copy checks digests after copying.
func (c *Copier) VerifiesDigest() bool {
	return c.verifyDigest
}

func (c *Copier) copy(ctx context.Context, src, dst name.Reference) error {
	opts := c.remoteOptions(ctx)

	desc, err := remote.Get(src, opts...)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", src, err)
	}

	switch {
	case desc.MediaType.IsIndex():
		index, err := desc.ImageIndex()
		if err != nil {
			return fmt.Errorf("read index %s: %w", src, err)
		}

		return remote.WriteIndex(dst, index, opts...) //nolint:wrapcheck // Wrapped by Copy.
	case desc.MediaType.IsSchema1():
		return remote.Put(dst, desc, opts...) //nolint:wrapcheck // Wrapped by Copy.
	default:
		image, err := desc.Image()
		if err != nil {
			return fmt.Errorf("read image %s: %w", src, err)
		}

		return remote.Write(dst, image, opts...) //nolint:wrapcheck // Wrapped by Copy.
	}
}

func (c *Copier) remoteOptions(ctx context.Context) []remote.Option {
	return []remote.Option{
		remote.WithContext(ctx),
		remote.WithAuthFromKeychain(c.keychain),
		remote.WithTransport(c.transport),
	}
}

func allowsPlainHTTP(endpoint v1alpha1.Endpoint) bool {
	if endpoint.Insecure {
		return true
	}

	base, err := endpoint.BaseURL()

	return err == nil && strings.HasPrefix(base, "http://")
}
