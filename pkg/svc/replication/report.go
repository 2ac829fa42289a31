package replication

import (
	"github.com/devantler-tech/harborsync/pkg/svc/planner"
	"github.com/devantler-tech/harborsync/pkg/svc/transfer"
)

// RepositoryReport is the outcome of replicating one repository.
type RepositoryReport struct {
	Project     string            `json:"project"`
	Repository  string            `json:"repository"`
	NoArtifacts bool              `json:"noArtifacts,omitempty"`
	Results     []transfer.Result `json:"results,omitempty"`
	Skipped     []planner.Skip    `json:"skipped,omitempty"`
	Summary     transfer.Summary  `json:"summary"`
	Error       string            `json:"error,omitempty"`

	err error
}

// Err returns the error that stopped the repository, if any.
func (r RepositoryReport) Err() error {
	return r.err
}

// Failed reports whether the repository could not be fully replicated.
func (r RepositoryReport) Failed() bool {
	return r.err != nil || r.Summary.Failed > 0
}

func (r *RepositoryReport) fail(err error) {
	r.err = err
	r.Error = err.Error()
}

// ProjectReport records a project whose repositories could not be listed completely, or
// that has no repositories.
type ProjectReport struct {
	Project        string `json:"project"`
	NoRepositories bool   `json:"noRepositories,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Report is the outcome of one replication run.
type Report struct {
	Source       string             `json:"source"`
	Destination  string             `json:"destination"`
	DryRun       bool               `json:"dryRun"`
	Projects     []ProjectReport    `json:"projects,omitempty"`
	NotLocated   []string           `json:"notLocated,omitempty"`
	Repositories []RepositoryReport `json:"repositories"`
	Totals       transfer.Summary   `json:"totals"`
}

// Failed reports whether anything in the run went wrong: a failed transfer, a repository or
// project that could not be read, or a requested repository that was not found.
func (r Report) Failed() bool {
	if len(r.NotLocated) > 0 {
		return true
	}

	for _, project := range r.Projects {
		if project.Error != "" {
			return true
		}
	}

	for _, repository := range r.Repositories {
		if repository.Failed() {
			return true
		}
	}

	return false
}

func (r *Report) total() {
	r.Totals = transfer.Summary{}

	for _, repository := range r.Repositories {
		r.Totals.Merge(repository.Summary)
	}
}
