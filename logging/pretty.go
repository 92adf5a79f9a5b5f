package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lokitools/schema/tui/theme"
)

// PrettyLogger provides pretty formatted console output
type PrettyLogger struct {
	writer io.Writer
	styles PrettyStyles
}

// PrettyStyles contains lipgloss styles for different log types
type PrettyStyles struct {
	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Path    lipgloss.Style
	Code    lipgloss.Style
}

// DefaultPrettyStyles returns the default styling for pretty logs,
// derived from the active theme palette.
func DefaultPrettyStyles() PrettyStyles {
	colors := theme.DefaultTheme.Colors
	return PrettyStyles{
		Success: theme.DefaultTheme.Success,
		Info:    lipgloss.NewStyle().Foreground(colors.Blue),
		Warning: theme.DefaultTheme.Warning,
		Error:   theme.DefaultTheme.Error,
		Key:     lipgloss.NewStyle().Foreground(colors.MutedText),
		Value:   lipgloss.NewStyle().Foreground(colors.Cyan).Bold(true),
		Path:    lipgloss.NewStyle().Foreground(colors.Cyan).Italic(true),
		Code:    lipgloss.NewStyle().Foreground(colors.Violet),
	}
}

// NewPrettyLogger creates a pretty logger wrapper
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{
		writer: os.Stderr,
		styles: DefaultPrettyStyles(),
	}
}

// WithWriter sets a custom writer for pretty output
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

// Success logs a success message with a checkmark
func (p *PrettyLogger) Success(message string) {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.styles.Success.Render("✓"),
		p.styles.Success.Render(message))
}

// InfoPretty logs an info message with pretty formatting
func (p *PrettyLogger) InfoPretty(message string) {
	fmt.Fprintf(p.writer, "%s\n", p.styles.Info.Render(message))
}

// WarnPretty logs a warning with pretty formatting
func (p *PrettyLogger) WarnPretty(message string) {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.styles.Warning.Render("⚠"),
		p.styles.Warning.Render(message))
}

// ErrorPretty logs an error with pretty formatting
func (p *PrettyLogger) ErrorPretty(message string, err error) {
	fmt.Fprintf(p.writer, "%s %s",
		p.styles.Error.Render("✗"),
		p.styles.Error.Render(message))
	if err != nil {
		fmt.Fprintf(p.writer, ": %s", p.styles.Error.Render(err.Error()))
	}
	fmt.Fprintln(p.writer)
}

// Field logs a key-value pair with pretty formatting
func (p *PrettyLogger) Field(key string, value interface{}) {
	fmt.Fprintf(p.writer, "%s: %s\n",
		p.styles.Key.Render(key),
		p.styles.Value.Render(fmt.Sprint(value)))
}

// Path logs a file path with special formatting
func (p *PrettyLogger) Path(label string, path string) {
	fmt.Fprintf(p.writer, "%s: %s\n",
		p.styles.Key.Render(label),
		p.styles.Path.Render(path))
}

// Code logs code or command output with indentation
func (p *PrettyLogger) Code(content string) {
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.writer, "  %s\n", p.styles.Code.Render(line))
	}
}

// Divider prints a visual divider
func (p *PrettyLogger) Divider() {
	divider := strings.Repeat("─", 60)
	fmt.Fprintln(p.writer, p.styles.Key.Render(divider))
}

// Blank prints a blank line
func (p *PrettyLogger) Blank() {
	fmt.Fprintln(p.writer)
}
