// Package rollback implements the rollback sub-command.
package rollback

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh/spinner"
	"github.com/nestops-dev/nestops/internal/cli"
	"github.com/nestops-dev/nestops/internal/logging"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// New creates the rollback sub-command for the CLI.
func New() *cobra.Command {
	rollbackCommand := &cobra.Command{
		Use:   "rollback <release-name> [revision]",
		Short: "Roll back a release to a previous revision",
		Long:  `Roll back a deployed nest release to a previous revision. Without an explicit revision, the release is rolled back to the revision before the current one.`,
		Example: `
# Roll back to the previous revision
nestops rollback nest

# Roll back to revision 3
nestops rollback nest 3
		`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return fmt.Errorf("release name and optional revision are required, eg. 'nestops rollback nest 3'")
			}
			if strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("release name cannot be empty")
			}
			if len(args) == 2 {
				if _, err := cast.ToIntE(args[1]); err != nil {
					return fmt.Errorf("revision must be a number, got: %s", args[1])
				}
			}
			return nil
		},
		RunE: runRollback,
	}

	return rollbackCommand
}

func runRollback(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger(cmd)

	releaseName := args[0]

	helmClient, err := cli.GetHelmClient(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to initialize helm client: %w", err)
	}

	var revision int
	if len(args) == 2 {
		revision = cast.ToInt(args[1])
	} else {
		revision, err = previousRevision(cmd, releaseName)
		if err != nil {
			return err
		}
	}

	logger.Infof("Rolling back release '%s' to revision %d", releaseName, revision)

	err = spinner.New().
		Title(fmt.Sprintf("Rolling back release '%s' to revision %d...", releaseName, revision)).
		Context(cmd.Context()).
		ActionWithErr(func(ctx context.Context) error {
			return helmClient.Rollback(ctx, releaseName, revision)
		}).
		Run()
	if err != nil {
		return fmt.Errorf("failed to roll back release: %w", err)
	}

	logger.Infof("Release '%s' rolled back to revision %d", releaseName, revision)

	return nil
}

// previousRevision finds the revision deployed before the current one.
func previousRevision(cmd *cobra.Command, releaseName string) (int, error) {
	helmClient, err := cli.GetHelmClient(cmd.Context())
	if err != nil {
		return 0, fmt.Errorf("failed to initialize helm client: %w", err)
	}

	history, err := helmClient.History(cmd.Context(), releaseName)
	if err != nil {
		return 0, fmt.Errorf("failed to get release history: %w", err)
	}

	if len(history) < 2 {
		return 0, fmt.Errorf("release '%s' has no previous revision to roll back to", releaseName)
	}

	current := 0
	for _, rel := range history {
		if rel.Version > current {
			current = rel.Version
		}
	}

	return current - 1, nil
}
