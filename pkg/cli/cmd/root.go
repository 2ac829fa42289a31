package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/devantler-tech/harborsync/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/harborsync/pkg/di"
	"github.com/devantler-tech/harborsync/pkg/io/configmanager"
	"github.com/spf13/cobra"
)

const (
	configFlagName = "config"
	reportFlagName = "report"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(os.Stderr), version, commit, date)
}

// NewRootCmdWithRuntime creates the root command on top of runtime.
func NewRootCmdWithRuntime(runtime *di.Runtime, version, commit, date string) *cobra.Command {
	manager := configmanager.NewConfigManager(os.Stdout)

	cmd := &cobra.Command{
		Use:   "harborsync",
		Short: "Replicate container images between Harbor registries",
		Long: "harborsync copies every tagged artifact that is missing on a destination Harbor " +
			"registry from a source Harbor registry, oldest first. Runs are idempotent: tags that " +
			"already exist on the destination are skipped.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().String(configFlagName, "",
		"config file (default: ./harborsync.yaml or $HOME/.config/harborsync/harborsync.yaml)")
	cmd.PersistentFlags().String(reportFlagName, "",
		"write the run report to this file (.json for JSON, YAML otherwise)")

	// The flag set is fresh, so binding can only fail on programming errors.
	cobra.CheckErr(manager.AddFlags(cmd.PersistentFlags()))

	cmd.AddCommand(NewSyncCmd(runtime, manager))
	cmd.AddCommand(NewPlanCmd(runtime, manager))
	cmd.AddCommand(NewProjectsCmd(runtime, manager))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
