// Package replication orchestrates a replication run: it resolves the scope into
// repositories, plans each one and transfers the missing tags.
package replication

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/devantler-tech/harborsync/pkg/cli/parallel"
	"github.com/devantler-tech/harborsync/pkg/client/harbor"
	"github.com/devantler-tech/harborsync/pkg/registry"
	"github.com/devantler-tech/harborsync/pkg/svc/locator"
	"github.com/devantler-tech/harborsync/pkg/svc/planner"
	"github.com/devantler-tech/harborsync/pkg/svc/transfer"
	"github.com/sirupsen/logrus"
)

// Source is the registry images are read from.
type Source interface {
	locator.Registry

	Host() string
	Ping(ctx context.Context) error
	ListRepositories(ctx context.Context, project string) ([]harbor.Repository, error)
	ListArtifacts(ctx context.Context, project, repository string) ([]harbor.Artifact, error)
}

// Destination is the registry images are copied to.
type Destination interface {
	planner.ExistenceChecker

	Host() string
	Ping(ctx context.Context) error
}

// Scope selects what a run replicates. Explicit repositories take precedence over projects;
// an empty scope replicates every project.
type Scope struct {
	Repositories []string
	Projects     []string
}

type unit struct {
	project    string
	repository string
}

// Engine runs replication between one source and one destination registry.
type Engine struct {
	source      Source
	destination Destination
	locator     *locator.Locator
	planner     *planner.Planner
	executor    *transfer.Executor
	parallel    *parallel.Executor
	logger      logrus.FieldLogger
	observer    func(RepositoryReport)

	verifyTimeout  time.Duration
	verifyInterval time.Duration
}

// NewEngine wires the locator, planner and transfer executor around the two registries.
func NewEngine(source Source, destination Destination, copier transfer.Copier, opts ...Option) *Engine {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	cfg := options{
		concurrency:    1,
		logger:         silent,
		verifyTimeout:  DefaultVerifyTimeout,
		verifyInterval: DefaultVerifyInterval,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Engine{
		source:      source,
		destination: destination,
		locator:     locator.New(source),
		planner: planner.New(
			source.Host(),
			destination.Host(),
			destination,
			planner.WithAllTags(cfg.allTags),
			planner.WithLogger(cfg.logger),
		),
		executor: transfer.NewExecutor(
			copier,
			transfer.WithDryRun(cfg.dryRun),
			transfer.WithLogger(cfg.logger),
		),
		parallel:       parallel.NewExecutor(int64(cfg.concurrency)),
		logger:         cfg.logger,
		observer:       cfg.observer,
		verifyTimeout:  cfg.verifyTimeout,
		verifyInterval: cfg.verifyInterval,
	}
}

// Run replicates the scope. Failures of single projects, repositories or transfers are
// recorded in the report and the run continues. Rejected credentials and cancellation abort
// the run; the report then holds what was done so far.
func (e *Engine) Run(ctx context.Context, scope Scope) (Report, error) {
	report := Report{
		Source:      e.source.Host(),
		Destination: e.destination.Host(),
		DryRun:      e.executor.DryRun(),
	}

	units, err := e.resolve(ctx, scope, &report)
	if err != nil {
		return report, err
	}

	results := parallel.NewResults[RepositoryReport](len(units))
	tasks := make([]parallel.Task, 0, len(units))

	for idx, u := range units {
		tasks = append(tasks, func(ctx context.Context) error {
			repoReport, fatal := e.replicate(ctx, u)
			results.Set(idx, repoReport)

			if fatal == nil && e.observer != nil {
				e.observer(repoReport)
			}

			return fatal
		})
	}

	runErr := e.parallel.Execute(ctx, tasks...)

	report.Repositories = results.Values()
	if report.Repositories == nil {
		report.Repositories = []RepositoryReport{}
	}

	report.total()

	if runErr != nil {
		return report, fmt.Errorf("replicate: %w", runErr)
	}

	return report, nil
}

// Plan resolves the scope and plans every repository without transferring anything.
func (e *Engine) Plan(ctx context.Context, scope Scope) (Report, error) {
	dry := *e
	dry.executor = transfer.NewExecutor(nil, transfer.WithDryRun(true), transfer.WithLogger(e.logger))

	return dry.Run(ctx, scope)
}

func (e *Engine) resolve(ctx context.Context, scope Scope, report *Report) ([]unit, error) {
	if len(scope.Repositories) > 0 {
		return e.locate(ctx, scope.Repositories, report)
	}

	projects := scope.Projects
	if len(projects) == 0 {
		listed, err := e.source.ListProjects(ctx)
		if err != nil {
			if fatal := fatalError(ctx, err); fatal != nil {
				return nil, fatal
			}

			report.Projects = append(report.Projects, ProjectReport{Error: err.Error()})
			e.logger.WithError(err).Warn("project listing incomplete")
		}

		for _, project := range listed {
			projects = append(projects, project.Name)
		}
	}

	var units []unit

	for _, project := range projects {
		repositories, err := e.source.ListRepositories(ctx, project)
		if err != nil {
			if fatal := fatalError(ctx, err); fatal != nil {
				return nil, fatal
			}

			report.Projects = append(report.Projects, ProjectReport{Project: project, Error: err.Error()})
			e.logger.WithError(err).WithField("project", project).Warn("repository listing incomplete")
		} else if len(repositories) == 0 {
			report.Projects = append(report.Projects, ProjectReport{Project: project, NoRepositories: true})
		}

		for _, repository := range byUpdateTimeDescending(repositories) {
			units = append(units, unit{project: project, repository: repository.Name})
		}
	}

	return units, nil
}

func (e *Engine) locate(ctx context.Context, names []string, report *Report) ([]unit, error) {
	units := make([]unit, 0, len(names))

	for _, name := range names {
		project, err := e.locator.Locate(ctx, name)
		if err != nil {
			if errors.Is(err, locator.ErrNotLocated) {
				report.NotLocated = append(report.NotLocated, name)
				e.logger.WithField("repository", name).Warn("repository not found in any project")

				continue
			}

			if fatal := fatalError(ctx, err); fatal != nil {
				return nil, fatal
			}

			report.Projects = append(report.Projects, ProjectReport{Error: err.Error()})
			report.NotLocated = append(report.NotLocated, name)

			continue
		}

		units = append(units, unit{project: project, repository: name})
	}

	return units, nil
}

// replicate plans and transfers one repository. Only errors that must abort the run are
// returned; everything else lands in the repository report. Artifacts listed before a
// listing failure are still replicated.
func (e *Engine) replicate(ctx context.Context, u unit) (RepositoryReport, error) {
	ref := registry.NewRepositoryReference(u.project, u.repository)
	report := RepositoryReport{Project: ref.Project(), Repository: ref.Name()}
	logger := e.logger.WithField("repository", ref.Path())

	artifacts, err := e.source.ListArtifacts(ctx, u.project, u.repository)
	if err != nil {
		if fatal := fatalError(ctx, err); fatal != nil {
			return report, fatal
		}

		report.fail(err)
		logger.WithError(err).WithField("listed", len(artifacts)).Warn("artifact listing incomplete")

		if len(artifacts) == 0 {
			return report, nil
		}
	}

	if len(artifacts) == 0 {
		report.NoArtifacts = true
		logger.Info("no artifacts")

		return report, nil
	}

	plan := e.planner.Plan(ctx, u.project, u.repository, artifacts)
	report.Skipped = plan.Skipped
	report.Results = e.executor.ExecuteAll(ctx, plan.Tasks)
	report.Summary = transfer.Summarize(report.Results)

	if err := ctx.Err(); err != nil {
		return report, err
	}

	return report, nil
}

func byUpdateTimeDescending(repositories []harbor.Repository) []harbor.Repository {
	sorted := slices.Clone(repositories)
	slices.SortStableFunc(sorted, func(a, b harbor.Repository) int {
		return b.UpdateTime.Compare(a.UpdateTime.Time)
	})

	return sorted
}

// fatalError returns the error when it must stop the run: rejected credentials or a
// cancelled context.
func fatalError(ctx context.Context, err error) error {
	if harbor.IsAuthError(err) {
		return err
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	return nil
}
