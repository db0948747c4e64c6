package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// AutoStyle picks a dark or light theme from the terminal background, and
// plain text when output is not a terminal.
const AutoStyle = "auto"

// Terminal styles markdown for display. Raw returns md untouched.
func Terminal(md, style string, width int, raw bool) (string, error) {
	if raw {
		return md, nil
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == AutoStyle {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	out, err := tr.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
