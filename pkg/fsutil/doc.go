// Package fsutil provides the filesystem helpers used for config and report files.
//
//   - ExpandHomePath: resolve "~/" and relative paths
//   - WriteFileAtomic: replace a file without leaving a partial one behind
package fsutil
