// Package planner turns the artifacts of a source repository into an ordered list of copy tasks.
package planner

import (
	"context"
	"io"
	"slices"

	"github.com/devantler-tech/harborsync/pkg/client/harbor"
	"github.com/devantler-tech/harborsync/pkg/registry"
	"github.com/sirupsen/logrus"
)

// ReasonUntagged is recorded for artifacts without any tag.
const ReasonUntagged = "untagged"

// ExistenceChecker answers whether a tag is already present on the destination.
type ExistenceChecker interface {
	ArtifactExists(ctx context.Context, project, repository, tag string) bool
}

// Option configures a Planner.
type Option func(*Planner)

// WithAllTags makes the planner emit one task per tag instead of one per artifact.
func WithAllTags(allTags bool) Option {
	return func(p *Planner) {
		p.allTags = allTags
	}
}

// WithLogger sets the logger used for skip diagnostics.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Planner builds replication plans between two registry hosts.
type Planner struct {
	sourceHost      string
	destinationHost string
	destination     ExistenceChecker
	allTags         bool
	logger          logrus.FieldLogger
}

// New creates a Planner. The hosts are used verbatim in the image references of the tasks.
func New(sourceHost, destinationHost string, destination ExistenceChecker, opts ...Option) *Planner {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	planner := &Planner{
		sourceHost:      sourceHost,
		destinationHost: destinationHost,
		destination:     destination,
		logger:          silent,
	}

	for _, opt := range opts {
		opt(planner)
	}

	return planner
}

// Plan orders the artifacts oldest first and emits a task per tagged artifact, marked
// skipped-exists when the destination already has the tag and pending otherwise.
// Untagged artifacts are recorded in Skipped. The input slice is not modified.
func (p *Planner) Plan(ctx context.Context, project, repository string, artifacts []harbor.Artifact) Plan {
	ref := registry.NewRepositoryReference(project, repository)

	sorted := slices.Clone(artifacts)
	slices.SortStableFunc(sorted, func(a, b harbor.Artifact) int {
		return a.PushTime.Compare(b.PushTime.Time)
	})

	plan := Plan{Tasks: make([]Task, 0, len(sorted))}

	for _, artifact := range sorted {
		tags := artifact.TagNames()
		if len(tags) == 0 {
			p.logger.WithFields(logrus.Fields{
				"repository": ref.Path(),
				"digest":     artifact.Digest,
			}).Info("skipping untagged artifact")

			plan.Skipped = append(plan.Skipped, Skip{Digest: artifact.Digest, Reason: ReasonUntagged})

			continue
		}

		if !p.allTags {
			tags = tags[:1]
		}

		for _, tag := range tags {
			plan.Tasks = append(plan.Tasks, p.task(ctx, ref, artifact, tag))
		}
	}

	return plan
}

func (p *Planner) task(
	ctx context.Context,
	ref registry.RepositoryReference,
	artifact harbor.Artifact,
	tag string,
) Task {
	status := StatusPending
	if p.destination.ArtifactExists(ctx, ref.Project(), ref.Name(), tag) {
		status = StatusSkippedExists
	}

	p.logger.WithFields(logrus.Fields{
		"repository": ref.Path(),
		"tag":        tag,
		"status":     status,
	}).Debug("planned")

	return Task{
		Reference:   ref,
		Source:      ref.Image(p.sourceHost, tag),
		Destination: ref.Image(p.destinationHost, tag),
		Tag:         tag,
		Digest:      artifact.Digest,
		PushTime:    artifact.PushTime.Time,
		Status:      status,
	}
}
