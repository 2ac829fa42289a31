package oci

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
)

// Digest resolves an image reference to the digest of its manifest or index without
// downloading it.
func (c *Copier) Digest(ctx context.Context, ref string) (string, error) {
	parsed, err := c.parseReference(ref)
	if err != nil {
		return "", err
	}

	desc, err := remote.Head(parsed, c.remoteOptions(ctx)...)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", ref, classifyRegistryError(err))
	}

	return desc.Digest.String(), nil
}

// verify checks that dst resolves to the same digest as src.
func (c *Copier) verify(ctx context.Context, src, dst string) error {
	srcDigest, err := c.Digest(ctx, src)
	if err != nil {
		return err
	}

	dstDigest, err := c.Digest(ctx, dst)
	if err != nil {
		return err
	}

	if srcDigest != dstDigest {
		return fmt.Errorf("%w: %s is %s, %s is %s", ErrDigestMismatch, src, srcDigest, dst, dstDigest)
	}

	return nil
}

// parseReference parses ref, allowing plain HTTP only when its registry host opted in.
func (c *Copier) parseReference(ref string) (name.Reference, error) {
	parsed, err := name.ParseReference(ref, name.WeakValidation)
	if err != nil {
		return nil, fmt.Errorf("parse reference %q: %w", ref, err)
	}

	if !c.insecureHosts[parsed.Context().RegistryStr()] {
		return parsed, nil
	}

	parsed, err = name.ParseReference(ref, name.WeakValidation, name.Insecure)
	if err != nil {
		return nil, fmt.Errorf("parse reference %q: %w", ref, err)
	}

	return parsed, nil
}

// PlainHTTP reports whether ref would be reached over plain HTTP.
func (c *Copier) PlainHTTP(ref string) (bool, error) {
	parsed, err := c.parseReference(ref)
	if err != nil {
		return false, err
	}

	return parsed.Context().Scheme() == "http", nil
}

// isNotFoundError checks if the error indicates the manifest doesn't exist.
func isNotFoundError(err error) bool {
	var transportErr *transport.Error
	if errors.As(err, &transportErr) && transportErr.StatusCode == http.StatusNotFound {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "manifest unknown") ||
		strings.Contains(errStr, "name_unknown") ||
		strings.Contains(errStr, "name unknown")
}

// classifyRegistryError converts low-level registry errors to actionable errors while keeping
// the original error in the chain.
func classifyRegistryError(err error) error {
	if err == nil {
		return nil
	}

	var transportErr *transport.Error
	if errors.As(err, &transportErr) {
		switch transportErr.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %w", ErrRegistryAuthRequired, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrRegistryPermissionDenied, err)
		}
	}

	if isNotFoundError(err) {
		return fmt.Errorf("%w: %w", ErrManifestNotFound, err)
	}

	lowerErr := strings.ToLower(err.Error())
	if strings.Contains(lowerErr, "no such host") ||
		strings.Contains(lowerErr, "connection refused") ||
		strings.Contains(lowerErr, "dial tcp") {
		return fmt.Errorf("%w: %w", ErrRegistryUnreachable, err)
	}

	return err
}
