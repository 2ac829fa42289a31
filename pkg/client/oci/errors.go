package oci

import "errors"

// Copy errors.
var (
	// ErrCopyFailed is matched by every failed image copy.
	ErrCopyFailed = errors.New("image copy failed")
	// ErrDigestMismatch is returned when the copied image does not resolve to the source digest.
	ErrDigestMismatch = errors.New("destination digest does not match source digest")
	// ErrRegistryUnreachable is returned when a registry cannot be reached.
	ErrRegistryUnreachable = errors.New("registry is unreachable")
	// ErrRegistryAuthRequired is returned when authentication is required but not provided.
	ErrRegistryAuthRequired = errors.New(
		"registry requires authentication\n" +
			"  - configure the registry username and password",
	)
	// ErrRegistryPermissionDenied is returned when credentials are invalid or lack push access.
	ErrRegistryPermissionDenied = errors.New(
		"registry access denied\n" +
			"  - check the credentials have push permission on the destination project",
	)
	// ErrManifestNotFound is returned when the source tag does not resolve to a manifest.
	ErrManifestNotFound = errors.New("manifest not found")
)
