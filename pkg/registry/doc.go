// Package registry provides the value types used to address repositories and images in a
// container registry.
//
// [RepositoryReference] is the single place where a (project, repository) pair read from a
// registry API is normalised into the form used in image references: a leading "project/"
// prefix is stripped and the result is lower-cased. Every other package builds image
// references and API paths through it instead of manipulating strings inline.
//
// This package has no dependencies on other harborsync packages.
package registry
