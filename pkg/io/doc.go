// Package io provides configuration input and document output.
//
// Subpackages:
//   - configmanager: configuration loading from files, environment and flags
//   - marshaller: YAML and JSON rendering of reports
//
// For low-level file operations (atomic writes, path expansion) see the fsutil package.
package io
