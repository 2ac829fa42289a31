package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/devantler-tech/harborsync/pkg/apis/sync/v1alpha1"
	"github.com/devantler-tech/harborsync/pkg/cli/parallel"
	"github.com/devantler-tech/harborsync/pkg/di"
	"github.com/devantler-tech/harborsync/pkg/fsutil"
	"github.com/devantler-tech/harborsync/pkg/io/configmanager"
	"github.com/devantler-tech/harborsync/pkg/svc/planner"
	"github.com/devantler-tech/harborsync/pkg/svc/replication"
	"github.com/devantler-tech/harborsync/pkg/utils/notify"
	"github.com/devantler-tech/harborsync/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// ErrReplicationIncomplete is returned when a run finished but something in it failed.
var ErrReplicationIncomplete = errors.New("replication incomplete")

const (
	verifyEmoji    = "🔌"
	replicateEmoji = "🚢"
	planEmoji      = "📋"
)

type runMode int

const (
	modeSync runMode = iota
	modePlan
)

// NewSyncCmd creates the sync command.
func NewSyncCmd(runtime *di.Runtime, manager *configmanager.ConfigManager) *cobra.Command {
	return &cobra.Command{
		Use:   "sync [REPOSITORY...]",
		Short: "Copy missing tags to the destination registry",
		Long: "Copy every tagged artifact that is missing on the destination registry, oldest first.\n\n" +
			"Without arguments every repository of the configured projects (all projects when none are " +
			"configured) is replicated. Repository arguments are looked up across all source projects; " +
			"\"project/repository\" checks the named project first.",
		RunE: runEWithMode(runtime, manager, modeSync),
	}
}

// NewPlanCmd creates the plan command.
func NewPlanCmd(runtime *di.Runtime, manager *configmanager.ConfigManager) *cobra.Command {
	return &cobra.Command{
		Use:   "plan [REPOSITORY...]",
		Short: "Show which tags sync would copy",
		Long: "Plan the replication and print it without copying anything. Equivalent to sync --dry-run; " +
			"the destination registry is only read.",
		RunE: runEWithMode(runtime, manager, modePlan),
	}
}

func runEWithMode(
	runtime *di.Runtime,
	manager *configmanager.ConfigManager,
	mode runMode,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		handler := di.WithTimer(func(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
			return runReplication(cmd, injector, tmr, manager, mode, args)
		})

		return di.RunEWithRuntime(runtime, handler)(cmd, args)
	}
}

func runReplication(
	cmd *cobra.Command,
	injector di.Injector,
	tmr timer.Timer,
	manager *configmanager.ConfigManager,
	mode runMode,
	repositories []string,
) error {
	out := notify.NewStageSeparatingWriter(cmd.OutOrStdout())

	config, err := loadConfig(cmd, injector, tmr, manager, out)
	if err != nil {
		return err
	}

	var progress io.Writer = out
	if config.Replication.Concurrency > 1 {
		progress = parallel.NewSyncWriter(out)
	}

	factory, err := di.ResolveEngineFactory(injector)
	if err != nil {
		return err
	}

	engine, err := factory(replication.WithObserver(func(report replication.RepositoryReport) {
		printRepository(progress, report)
	}))
	if err != nil {
		return err
	}

	tmr.NewStage()
	notify.Titlef(out, verifyEmoji, "Verify registries...")
	notify.Activityf(out, "connecting to %s and %s", config.Source.Host(), config.Destination.Host())

	err = engine.Verify(cmd.Context())
	if err != nil {
		return fmt.Errorf("registries not reachable: %w", err)
	}

	notify.SuccessWithTimerf(out, tmr, "registries reachable")

	tmr.NewStage()

	scope := replication.Scope{Repositories: repositories, Projects: config.Replication.Projects}

	var report replication.Report

	if mode == modePlan {
		notify.Titlef(out, planEmoji, "Plan %s → %s...", config.Source.Host(), config.Destination.Host())
		report, err = engine.Plan(cmd.Context(), scope)
	} else {
		notify.Titlef(out, replicateEmoji, "Replicate %s → %s...", config.Source.Host(), config.Destination.Host())
		report, err = engine.Run(cmd.Context(), scope)
	}

	printScopeProblems(out, report)

	reportPath, _ := cmd.Flags().GetString(reportFlagName)
	if reportPath != "" {
		writeErr := writeReport(reportPath, report)
		if writeErr != nil {
			return errors.Join(err, writeErr)
		}

		notify.Generatef(out, "report written to %s", reportPath)
	}

	if err != nil {
		return err
	}

	return summarize(out, tmr, report)
}

func loadConfig(
	cmd *cobra.Command,
	injector di.Injector,
	tmr timer.Timer,
	manager *configmanager.ConfigManager,
	out io.Writer,
) (*v1alpha1.Config, error) {
	configFile, _ := cmd.Flags().GetString(configFlagName)

	configFile, err := fsutil.ExpandHomePath(configFile)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	manager.Writer = out

	notify.Titlef(out, notify.DefaultTitleEmoji, "Load configuration...")

	config, err := manager.Load(configmanager.LoadOptions{Timer: tmr, ConfigFile: configFile})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	err = di.ProvideConfig(config)(injector)
	if err != nil {
		return nil, err
	}

	return config, nil
}

func printRepository(out io.Writer, report replication.RepositoryReport) {
	name := report.Project + "/" + report.Repository

	if report.Error != "" {
		notify.Errorf(out, "%s: %s", name, report.Error)
	} else if report.NoArtifacts {
		notify.Infof(out, "%s: no artifacts", name)

		return
	}

	for _, result := range report.Results {
		switch result.Status {
		case planner.StatusSucceeded:
			notify.Successf(out, "copied %s", result.Destination)
		case planner.StatusFailed:
			notify.Errorf(out, "failed to copy %s: %s", result.Source, result.Message())
		case planner.StatusPending:
			notify.Activityf(out, "would copy %s → %s", result.Source, result.Destination)
		case planner.StatusSkippedExists:
			notify.Infof(out, "%s already exists", result.Destination)
		}
	}

	for _, skip := range report.Skipped {
		notify.Infof(out, "%s: skipped %s (%s)", name, skip.Digest, skip.Reason)
	}
}

func printScopeProblems(out io.Writer, report replication.Report) {
	for _, project := range report.Projects {
		if project.Error != "" {
			notify.Errorf(out, "project %s: %s", project.Project, project.Error)

			continue
		}

		if project.NoRepositories {
			notify.Infof(out, "no repositories found in project %s", project.Project)
		}
	}

	for _, name := range report.NotLocated {
		notify.Errorf(out, "repository %s not found in any source project", name)
	}
}

func summarize(out io.Writer, tmr timer.Timer, report replication.Report) error {
	totals := report.Totals

	if report.DryRun {
		notify.SuccessWithTimerf(out, tmr, "%d to copy, %d already present",
			totals.Pending, totals.Skipped)
	} else {
		notify.SuccessWithTimerf(out, tmr, "%d copied, %d already present, %d failed",
			totals.Succeeded, totals.Skipped, totals.Failed)
	}

	if report.Failed() {
		return fmt.Errorf("%w: %d failed transfer(s), %d repositories not found",
			ErrReplicationIncomplete, totals.Failed, len(report.NotLocated))
	}

	return nil
}
