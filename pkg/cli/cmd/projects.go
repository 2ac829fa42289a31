package cmd

import (
	"fmt"

	"github.com/devantler-tech/harborsync/pkg/di"
	"github.com/devantler-tech/harborsync/pkg/io/configmanager"
	"github.com/devantler-tech/harborsync/pkg/utils/notify"
	"github.com/devantler-tech/harborsync/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// NewProjectsCmd creates the projects command.
func NewProjectsCmd(runtime *di.Runtime, manager *configmanager.ConfigManager) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the projects on the source registry",
		Long: "List every project the source credentials can see, one per line. " +
			"Useful for choosing --project values.",
		Args: cobra.NoArgs,
		RunE: di.RunEWithRuntime(runtime, di.WithTimer(
			func(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
				return listProjects(cmd, injector, tmr, manager)
			},
		)),
	}
}

func listProjects(
	cmd *cobra.Command,
	injector di.Injector,
	tmr timer.Timer,
	manager *configmanager.ConfigManager,
) error {
	out := notify.NewStageSeparatingWriter(cmd.OutOrStdout())

	config, err := loadConfig(cmd, injector, tmr, manager, out)
	if err != nil {
		return err
	}

	client, err := di.ResolveRegistryClient(injector, di.SourceClient)
	if err != nil {
		return err
	}

	tmr.NewStage()
	notify.Titlef(out, "📦", "Projects on %s...", config.Source.Host())

	projects, err := client.ListProjects(cmd.Context())
	for _, project := range projects {
		_, _ = fmt.Fprintln(out, project.Name)
	}

	if err != nil {
		return err
	}

	notify.SuccessWithTimerf(out, tmr, "%d project(s) found", len(projects))

	return nil
}
