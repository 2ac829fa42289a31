// Package v1alpha1 contains the configuration types for a harborsync replication run.
//
// A [Config] names the source and destination registries, the network egress settings shared
// by every outbound connection, and the replication policy. It is passed explicitly to the
// registry client, the image copier and the replication engine; nothing reads the process
// environment after the configuration has been loaded.
package v1alpha1
