package ui

import (
	"fmt"
	"io"
	"strings"
)

// Config holds UI configuration options
type Config struct {
	EnableSpinner  bool
	EnableMarkdown bool
}

// DefaultConfig returns the default UI configuration
func DefaultConfig() *Config {
	return &Config{
		EnableSpinner:  true,
		EnableMarkdown: true,
	}
}

// Renderer handles all UI output formatting
type Renderer struct {
	config *Config
	out    io.Writer
}

// NewRenderer creates a renderer writing to out with default config
func NewRenderer(out io.Writer) *Renderer {
	return NewRendererWithConfig(out, DefaultConfig())
}

// NewRendererWithConfig creates a renderer with custom config
func NewRendererWithConfig(out io.Writer, config *Config) *Renderer {
	return &Renderer{config: config, out: out}
}

// Spinner returns a spinner honoring the configuration
func (r *Renderer) Spinner() *Spinner {
	return NewSpinner(r.out, r.config.EnableSpinner)
}

// Preview prints the captured text and its line count
func (r *Renderer) Preview(lines []string) {
	text := strings.Join(lines, "\n")
	if r.config.EnableMarkdown {
		fmt.Fprintln(r.out, RenderCapture(text))
	} else {
		fmt.Fprintln(r.out, Subtle.Render("```\n"+text+"\n```"))
	}
	fmt.Fprintln(r.out, r.CaptureSummary(len(lines)))
}

// CaptureSummary returns the styled "captured N lines" note
func (r *Renderer) CaptureSummary(count int) string {
	return Subtle.Render(fmt.Sprintf("captured %d lines", count))
}

// ErrorMessage formats an error message
func (r *Renderer) ErrorMessage(err error) string {
	return ErrorStyle.Render(fmt.Sprintf("%s %v", IconError, err))
}

// WarningMessage formats a warning message
func (r *Renderer) WarningMessage(msg string) string {
	return WarningStyle.Render(fmt.Sprintf("%s %s", IconWarning, msg))
}

// SuccessMessage formats a success message
func (r *Renderer) SuccessMessage(msg string) string {
	return SuccessStyle.Render(fmt.Sprintf("%s %s", IconSuccess, msg))
}

// AnswerWriter returns a writer that styles each diagnostic fragment
func (r *Renderer) AnswerWriter() io.Writer {
	return &answerWriter{out: r.out}
}

type answerWriter struct {
	out io.Writer
}

// Write styles each line of p on its own; rendering a multi-line block at
// once would pad lines to a common width.
func (w *answerWriter) Write(p []byte) (int, error) {
	lines := strings.Split(string(p), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = AnswerStyle.Render(line)
		}
	}
	if _, err := io.WriteString(w.out, strings.Join(lines, "\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}
