package ui

import (
	"errors"
	"io"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question, defaulting to yes. Declining is not an
// error; an interrupted prompt is.
func Confirm(label string, in io.ReadCloser, out io.WriteCloser) (bool, error) {
	prompt := promptui.Prompt{
		Label:     PromptStyle.Render(label),
		IsConfirm: true,
		Default:   "y",
		Stdin:     in,
		Stdout:    out,
	}

	_, err := prompt.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
