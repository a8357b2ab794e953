// Copyright 2025 The Nestops Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd provides the commands for the Nestops application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/nestops-dev/nestops/internal/cli"
	"github.com/nestops-dev/nestops/internal/cmd/delete"
	"github.com/nestops-dev/nestops/internal/cmd/deploy"
	"github.com/nestops-dev/nestops/internal/cmd/logs"
	"github.com/nestops-dev/nestops/internal/cmd/names"
	"github.com/nestops-dev/nestops/internal/cmd/rollback"
	"github.com/nestops-dev/nestops/internal/cmd/status"
	"github.com/nestops-dev/nestops/internal/cmd/template"
	"github.com/nestops-dev/nestops/internal/cmd/validate"
	"github.com/nestops-dev/nestops/internal/logging"
	"github.com/nestops-dev/nestops/internal/runtime"
	"github.com/nestops-dev/nestops/internal/values"
	"github.com/spf13/cobra"
)

// Version is the nestops build version, overridden at link time.
var Version = "dev"

// NewRootCommand creates the root command for the Nestops application.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nestops",
		Short: "Nestops deploys the nest home-automation service to Kubernetes",
		Long:  `Nestops packages, deploys and operates the nest home-automation service on Kubernetes clusters using an embedded Helm chart.`,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logLevel, _ := cmd.Flags().GetString("log-level")
			noColor, _ := cmd.Flags().GetBool("no-color")
			quiet, _ := cmd.Flags().GetBool("quiet")

			// When quiet is set, also silence cobra's own error output.
			cmd.SilenceErrors = quiet
			cmd.SilenceUsage = true

			if err := logging.SetupCharmLogger(cmd, logLevel, noColor, quiet); err != nil {
				return err
			}

			return setupRuntime(cmd)
		},
	}

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "Set the logging level (debug|info|warn|error|fatal)")
	rootCmd.PersistentFlags().Bool("no-color", false, "If specified, output won't contain any color.")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Quiet or silent mode. Do not show logs or error messages.")
	rootCmd.PersistentFlags().StringP("namespace", "n", "", "Kubernetes namespace to operate in (defaults to NESTOPS_NAMESPACE or 'default')")
	rootCmd.PersistentFlags().String("kubeconfig", "", "Path to the kubeconfig file (defaults to KUBECONFIG or ~/.kube/config)")
	rootCmd.PersistentFlags().StringP("values", "f", values.DefaultValuesPath, "Path to the nest values file")
	rootCmd.PersistentFlags().Duration("timeout", runtime.DefaultTimeout, "Timeout for Kubernetes and Helm operations")
	rootCmd.PersistentFlags().String("storage-driver", runtime.DefaultStorageDriver, "Helm storage driver (secret|configmap|memory)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug behavior such as keeping rendered chart directories")

	return rootCmd
}

// setupRuntime builds the runtime from the persistent flags and stores it in
// the command context for subcommands to pick up.
func setupRuntime(cmd *cobra.Command) error {
	namespace, _ := cmd.Flags().GetString("namespace")
	kubeconfig, _ := cmd.Flags().GetString("kubeconfig")
	valuesPath, _ := cmd.Flags().GetString("values")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	storageDriver, _ := cmd.Flags().GetString("storage-driver")
	debug, _ := cmd.Flags().GetBool("debug")

	if namespace == "" {
		namespace = os.Getenv(runtime.NamespaceEnvVar)
	}
	if kubeconfig == "" {
		kubeconfig = os.Getenv(runtime.KubeConfigEnvVar)
	}
	if !debug {
		debug = os.Getenv(runtime.DebugEnvVar) != ""
	}

	if !runtime.ValidateTimeout(timeout) {
		return fmt.Errorf("invalid timeout: %s", timeout)
	}
	if !runtime.ValidateStorageDriver(storageDriver) {
		return fmt.Errorf("invalid storage driver: '%s', must be one of: %s",
			storageDriver, strings.Join(runtime.GetValidStorageDrivers(), ", "))
	}

	logger := logging.GetLogger(cmd)

	rt := runtime.New(
		runtime.WithNamespace(namespace),
		runtime.WithKubeconfig(kubeconfig),
		runtime.WithValuesPath(valuesPath),
		runtime.WithTimeout(timeout),
		runtime.WithStorageDriver(storageDriver),
		runtime.WithDebug(debug),
		runtime.WithLogger(runtime.NewLoggerAdapter(logger)),
	)

	ctx := runtime.WithRuntime(cmd.Context(), rt)
	ctx = logging.WithLogger(ctx, logger)
	cmd.SetContext(ctx)

	return nil
}

// Execute is the main entry point for the Nestops application.
func Execute() {
	rootCmd := NewRootCommand()
	rootCmd.AddCommand(
		deploy.New(),
		template.New(),
		names.New(),
		status.New(),
		logs.New(),
		delete.New(),
		rollback.New(),
		validate.New(),
	)

	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			os.Exit(cli.ExitTimedOut)
		}

		os.Exit(cli.ExitError)
	}
}
