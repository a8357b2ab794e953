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

// Package ui provides terminal rendering helpers for tabular output and
// interactive prompts.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Color constants for consistent styling
const (
	ColorBrightCyan  = "14"
	ColorRed         = "9"
	ColorYellow      = "11"
	ColorGreen       = "10"
	ColorGray        = "7"
	ColorBrightGray  = "8"
	ColorBrightWhite = "15"
)

// FallbackWidth is used when the terminal width cannot be determined.
const FallbackWidth = 120

// Column describes a single table column.
type Column struct {
	Title     string
	Key       string
	Width     int // fixed width, 0 means auto-size
	MinWidth  int
	MaxWidth  int
	Truncate  bool
	StyleFunc func(value string) lipgloss.Style
	Hidden    bool
}

// Row maps column keys to cell values.
type Row map[string]string

// Table renders rows of release data with lipgloss styling.
type Table struct {
	columns        []Column
	rows           []Row
	headerStyle    lipgloss.Style
	separatorStyle lipgloss.Style
	maxWidth       int
}

// NewTable creates a table sized to the current terminal.
func NewTable() *Table {
	return &Table{
		headerStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorBrightCyan)).Padding(0, 1),
		separatorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightGray)),
		maxWidth:       terminalWidth(),
	}
}

// SetColumns sets the table columns.
func (t *Table) SetColumns(columns []Column) *Table {
	t.columns = columns
	return t
}

// SetRows sets the table data.
func (t *Table) SetRows(rows []Row) *Table {
	t.rows = rows
	return t
}

// SetMaxWidth overrides the maximum table width.
func (t *Table) SetMaxWidth(width int) *Table {
	t.maxWidth = width
	return t
}

func (t *Table) visibleColumns() []Column {
	var visible []Column
	for _, col := range t.columns {
		if !col.Hidden {
			visible = append(visible, col)
		}
	}
	return visible
}

// columnWidths computes a width per visible column: fixed widths win,
// auto-sized columns grow to their content and then share whatever space
// the terminal leaves over.
func (t *Table) columnWidths(visible []Column) []int {
	widths := make([]int, len(visible))
	for i, col := range visible {
		widths[i] = max(runewidth.StringWidth(col.Title), col.MinWidth)
		if col.Width > 0 {
			widths[i] = col.Width
		}
	}

	for _, row := range t.rows {
		for i, col := range visible {
			if col.Width > 0 {
				continue
			}
			if value, ok := row[col.Key]; ok {
				widths[i] = max(widths[i], runewidth.StringWidth(value))
			}
		}
	}

	totalFixed := 0
	flexible := 0
	for i, col := range visible {
		if col.MaxWidth > 0 && widths[i] > col.MaxWidth {
			widths[i] = col.MaxWidth
		}
		if col.Width > 0 {
			totalFixed += widths[i]
		} else {
			flexible++
		}
	}

	if flexible > 0 && t.maxWidth > 0 {
		padding := len(visible) * 2
		available := t.maxWidth - totalFixed - padding
		if available > 0 {
			share := available / flexible
			for i, col := range visible {
				if col.Width == 0 {
					widths[i] = min(widths[i], share)
				}
			}
		}
	}

	return widths
}

// Render renders the table as a string.
func (t *Table) Render() string {
	visible := t.visibleColumns()
	if len(visible) == 0 {
		return ""
	}

	widths := t.columnWidths(visible)
	var sb strings.Builder

	headerCells := make([]string, len(visible))
	for i, col := range visible {
		header := lipgloss.NewStyle().
			Width(widths[i]).
			MaxWidth(widths[i]).
			Inline(true).
			Render(truncateCell(col.Title, widths[i]))
		headerCells[i] = t.headerStyle.Render(header)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, headerCells...))
	sb.WriteString("\n")

	totalWidth := 0
	for _, w := range widths {
		totalWidth += w + 2
	}
	sb.WriteString(t.separatorStyle.Render(strings.Repeat("─", totalWidth)))
	sb.WriteString("\n")

	for _, row := range t.rows {
		cells := make([]string, len(visible))
		for i, col := range visible {
			value := row[col.Key]
			if value == "" {
				value = "-"
			}

			cellStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightWhite))
			if col.StyleFunc != nil {
				cellStyle = col.StyleFunc(value)
			}

			content := value
			if col.Truncate || runewidth.StringWidth(value) > widths[i] {
				content = truncateCell(value, widths[i])
			}

			cell := cellStyle.
				Width(widths[i]).
				MaxWidth(widths[i]).
				Inline(true).
				Render(content)
			cells[i] = lipgloss.NewStyle().Padding(0, 1).Render(cell)
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, cells...))
		sb.WriteString("\n")
	}

	return sb.String()
}

// Print renders and prints the table.
func (t *Table) Print() {
	fmt.Print(t.Render())
}

// truncateCell truncates text to maxWidth with an ellipsis.
func truncateCell(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return runewidth.Truncate(text, maxWidth-1, "…")
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return FallbackWidth
	}
	return width
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
