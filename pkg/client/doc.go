// Package client provides the network clients harborsync talks to registries with.
//
//   - harbor: Harbor v2.0 REST API (projects, repositories, artifacts, existence probes)
//   - oci: image copies between registries with go-containerregistry
//   - egress: TLS and proxy settings shared by both clients
//   - netretry: classification of retryable network failures
package client
