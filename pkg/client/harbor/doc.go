// Package harbor is a client for the catalog endpoints of the Harbor v2.0 REST API.
//
// It lists projects, repositories and artifacts with page-size agnostic pagination and
// answers tag and repository existence probes. Listing calls return whatever they gathered
// before a failure together with the error; existence probes fold every failure into false.
package harbor
