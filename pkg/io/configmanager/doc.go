// Package configmanager loads the harborsync configuration from defaults, a config file,
// HARBORSYNC_* environment variables and command-line flags, in that order of precedence.
package configmanager
