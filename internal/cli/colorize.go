package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/nestops-dev/nestops/internal/ui"
)

// colorizeWithChroma applies terminal syntax highlighting to data using the
// named lexer. Output going to a pipe is passed through unchanged.
func colorizeWithChroma(data []byte, lexerName string) (string, error) {
	if !ui.IsTerminal() {
		return string(data), nil
	}

	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, string(data))
	if err != nil {
		return "", fmt.Errorf("failed to tokenize %s: %w", lexerName, err)
	}

	var result strings.Builder
	if err := formatter.Format(&result, style, iterator); err != nil {
		return "", fmt.Errorf("failed to format %s: %w", lexerName, err)
	}

	return result.String(), nil
}

// ColorizeYAMLWithChroma applies syntax highlighting to YAML using chroma
func ColorizeYAMLWithChroma(data []byte) (string, error) {
	return colorizeWithChroma(data, "yaml")
}

// ColorizeJSONWithChroma applies syntax highlighting to JSON using chroma
func ColorizeJSONWithChroma(data []byte) (string, error) {
	return colorizeWithChroma(data, "json")
}
