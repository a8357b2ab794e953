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

// Package logging configures the Charm Bracelet logger for the nestops CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	// LogTimeFormat is the timestamp format used in log output.
	LogTimeFormat = time.Kitchen

	// LogPrefix is printed in front of every log line.
	LogPrefix = "nestops"
)

// SetupCharmLogger configures the logger based on the provided command-line
// flags and stores it on the command context.
func SetupCharmLogger(cmd *cobra.Command, logLevel string, noColor, quiet bool) error {
	// Quiet mode: disable all logging by sending output to io.Discard
	if quiet {
		nullLogger := log.NewWithOptions(io.Discard, log.Options{
			Level: log.FatalLevel,
		})
		cmd.SetContext(WithLogger(cmd.Context(), nullLogger))
		return nil
	}

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	options := log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      LogTimeFormat,
		Prefix:          LogPrefix,
		ReportCaller:    level == log.DebugLevel, // Only show caller for debug level
	}
	if noColor {
		options.Formatter = log.TextFormatter
	}

	logger := log.NewWithOptions(os.Stderr, options)

	// Enhance log styles for clarity and accessibility
	styles := log.DefaultStyles()
	styles.Levels[log.InfoLevel] = styles.Levels[log.InfoLevel].Foreground(lipgloss.Color("#00ff00"))
	styles.Levels[log.WarnLevel] = styles.Levels[log.WarnLevel].Foreground(lipgloss.Color("#ffff00"))
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].Foreground(lipgloss.Color("#ff0000"))
	styles.Levels[log.FatalLevel] = styles.Levels[log.FatalLevel].Foreground(lipgloss.Color("#ff0000")).Bold(true)

	// Highlight common keys for better log scanning
	for key, color := range map[string]string{
		"release": "#00ffff",
		"file":    "#ff00ff",
		"err":     "#ff0000",
	} {
		styles.Keys[key] = styles.Keys[key].Foreground(lipgloss.Color(color))
	}

	logger.SetStyles(styles)

	cmd.SetContext(WithLogger(cmd.Context(), logger))
	return nil
}

// GetLogger retrieves the logger from the command context, falling back
// to the package default so callers never get nil.
func GetLogger(cmd *cobra.Command) *log.Logger {
	if logger := From(cmd.Context()); logger != nil {
		return logger
	}
	return log.Default()
}
