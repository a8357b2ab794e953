package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	v1 "helm.sh/helm/v4/pkg/release/v1"
)

// GetStatusStyle returns the style for a Helm release status value.
func GetStatusStyle(status string) lipgloss.Style {
	statusLower := strings.ToLower(status)
	switch {
	case slices.Contains([]string{v1.StatusDeployed.String(), v1.StatusSuperseded.String()}, statusLower):
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)).Bold(true)
	case slices.Contains([]string{v1.StatusPendingInstall.String(), v1.StatusPendingUpgrade.String(), v1.StatusPendingRollback.String(), v1.StatusUninstalling.String(), v1.StatusUnknown.String()}, statusLower):
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)).Bold(true)
	case statusLower == v1.StatusFailed.String():
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightGray)).Bold(true)
	}
}

// GetReadyStyle returns the style for a "ready/total" pod count cell.
// All pods ready renders green, none ready red, anything in between yellow.
func GetReadyStyle(ready string) lipgloss.Style {
	parts := strings.SplitN(ready, "/", 2)
	if len(parts) != 2 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray))
	}
	switch {
	case parts[0] == parts[1] && parts[0] != "0":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)).Bold(true)
	case parts[0] == "0":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)).Bold(true)
	}
}
