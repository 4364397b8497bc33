// Package capture collects the terminal text that gets sent for diagnosis.
package capture

import (
	"errors"
	"strings"
)

// ErrEmpty is returned when a capture produced nothing to diagnose
var ErrEmpty = errors.New("couldn't capture anything from the terminal, is SHELL env variable set correctly?")

// Source identifies where captured text came from
type Source string

const (
	SourceLines   Source = "lines"
	SourceLast    Source = "last"
	SourceCommand Source = "exec"
)

// Capture is the text handed to the diagnostic client
type Capture struct {
	Source Source
	Lines  []string
	// Partial is set when fewer commands were found than requested
	Partial bool
}

// String joins the captured lines with line feeds
func (c *Capture) String() string {
	return strings.Join(c.Lines, "\n")
}

// Empty reports whether there is anything to diagnose
func (c *Capture) Empty() bool {
	return c == nil || len(c.Lines) == 0
}

// Validate returns ErrEmpty for an empty capture
func (c *Capture) Validate() error {
	if c.Empty() {
		return ErrEmpty
	}
	return nil
}
