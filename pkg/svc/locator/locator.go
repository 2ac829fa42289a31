// Package locator finds the project that owns a repository when only its name is known.
package locator

import (
	"context"
	"errors"
	"fmt"

	"github.com/devantler-tech/harborsync/pkg/client/harbor"
	"github.com/devantler-tech/harborsync/pkg/registry"
)

// ErrNotLocated is returned when no project owns the repository.
var ErrNotLocated = errors.New("repository not found in any project")

// Registry is the part of the registry client the locator needs.
type Registry interface {
	ListProjects(ctx context.Context) ([]harbor.Project, error)
	RepositoryExists(ctx context.Context, project, repository string) bool
}

// Locator resolves bare repository names to their project.
type Locator struct {
	registry Registry
}

// New creates a Locator backed by the registry.
func New(registry Registry) *Locator {
	return &Locator{registry: registry}
}

// Locate probes every project, in enumeration order, for the repository and returns the first
// owner. A name qualified with an existing project ("library/nginx") probes that project first.
//
// When the project listing fails part way, the projects listed so far are still probed and the
// listing error is returned only if none of them owns the repository.
func (l *Locator) Locate(ctx context.Context, repository string) (string, error) {
	projects, listErr := l.registry.ListProjects(ctx)

	for _, project := range probeOrder(projects, repository) {
		if ctx.Err() != nil {
			return "", fmt.Errorf("locate %s: %w", repository, ctx.Err())
		}

		if l.registry.RepositoryExists(ctx, project, repository) {
			return project, nil
		}
	}

	if listErr != nil {
		return "", fmt.Errorf("locate %s: %w", repository, listErr)
	}

	return "", fmt.Errorf("%w: %s", ErrNotLocated, repository)
}

func probeOrder(projects []harbor.Project, repository string) []string {
	names := make([]string, 0, len(projects))

	qualifier, _, qualified := registry.SplitQualifiedName(repository)
	if qualified {
		for _, project := range projects {
			if project.Name == qualifier {
				names = append(names, project.Name)
			}
		}
	}

	for _, project := range projects {
		if qualified && project.Name == qualifier {
			continue
		}

		names = append(names, project.Name)
	}

	return names
}
