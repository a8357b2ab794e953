package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateCell(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     string
	}{
		{name: "fits", text: "nest", maxWidth: 10, want: "nest"},
		{name: "exact", text: "nest", maxWidth: 4, want: "nest"},
		{name: "truncated", text: "nest-production", maxWidth: 8, want: "nest-pr…"},
		{name: "tiny width", text: "nest", maxWidth: 2, want: ".."},
		{name: "zero width", text: "nest", maxWidth: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateCell(tt.text, tt.maxWidth))
		})
	}
}

func TestTableHiddenColumns(t *testing.T) {
	table := NewTable().
		SetMaxWidth(80).
		SetColumns([]Column{
			{Title: "NAME", Key: "name"},
			{Title: "NAMESPACE", Key: "namespace", Hidden: true},
		}).
		SetRows([]Row{
			{"name": "nest", "namespace": "home"},
		})

	out := table.Render()
	assert.Contains(t, out, "NAME")
	assert.NotContains(t, out, "NAMESPACE")
	assert.NotContains(t, out, "home")
}

func TestTableEmptyCellPlaceholder(t *testing.T) {
	table := NewTable().
		SetMaxWidth(80).
		SetColumns([]Column{
			{Title: "NAME", Key: "name"},
			{Title: "READY", Key: "ready"},
		}).
		SetRows([]Row{
			{"name": "nest"},
		})

	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[2], "-")
}
