// Package svc provides the replication service layer.
//
// Subpackages:
//   - locator: finds the project that owns a repository
//   - planner: turns an artifact listing into ordered copy tasks
//   - transfer: executes copy tasks and records their outcome
//   - replication: runs the whole flow across repositories and builds the report
package svc
