package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const defaultWordWrap = 100

// RenderCapture renders captured terminal text as a fenced block. Falls
// back to the raw fence when glamour cannot render.
func RenderCapture(text string) string {
	content := "```\n" + text + "\n```"

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap()),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	// Trim extra whitespace that glamour sometimes adds
	return strings.Trim(rendered, "\n")
}

func wordWrap() int {
	if w := Width(); w > 0 {
		return w
	}
	return defaultWordWrap
}
