// Package cmd provides the command-line interface for harborsync.
//
// The root command carries the configuration flags shared by its subcommands:
//   - sync: replicate missing tags from the source to the destination registry
//   - plan: print what sync would copy without copying anything
//   - projects: list the projects visible on the source registry
package cmd
