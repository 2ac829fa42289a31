// Package apis provides API type definitions for harborsync.
//
//   - sync: the versioned configuration of a replication run
//
// The API types are serializable to YAML and JSON and decode from config files, environment
// variables and flags.
package apis
