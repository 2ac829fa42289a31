package planner

import (
	"time"

	"github.com/devantler-tech/harborsync/pkg/registry"
)

// Status is the state of a transfer task.
type Status string

const (
	// StatusPending means the tag is missing on the destination and must be copied.
	StatusPending Status = "pending"
	// StatusSkippedExists means the destination already holds the tag.
	StatusSkippedExists Status = "skipped-exists"
	// StatusSucceeded means the copy completed.
	StatusSucceeded Status = "succeeded"
	// StatusFailed means the copy was attempted and failed.
	StatusFailed Status = "failed"
)

// Task is one planned copy of a tagged artifact from the source to the destination registry.
type Task struct {
	Reference   registry.RepositoryReference `json:"-"`
	Source      string                       `json:"source"`
	Destination string                       `json:"destination"`
	Tag         string                       `json:"tag"`
	Digest      string                       `json:"digest,omitempty"`
	PushTime    time.Time                    `json:"pushTime"`
	Status      Status                       `json:"status"`
}

// Skip records an artifact left out of the plan.
type Skip struct {
	Digest string `json:"digest"`
	Reason string `json:"reason"`
}

// Plan is the ordered set of tasks for one repository.
type Plan struct {
	Tasks   []Task `json:"tasks"`
	Skipped []Skip `json:"skipped,omitempty"`
}

// Pending returns the tasks that still need a transfer.
func (p Plan) Pending() []Task {
	var pending []Task

	for _, task := range p.Tasks {
		if task.Status == StatusPending {
			pending = append(pending, task)
		}
	}

	return pending
}
