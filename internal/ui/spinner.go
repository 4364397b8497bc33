package ui

import (
	"context"
	"fmt"
	"io"
	"time"
)

// clearLine returns the cursor to column 0 and erases the line
const clearLine = "\r\033[K"

// SpinnerFrames is the braille animation cycle
var SpinnerFrames = []string{"⣾", "⣷", "⣯", "⣟", "⡿", "⢿", "⣻", "⣽"}

// Spinner animates a line of output while a background task runs
type Spinner struct {
	out      io.Writer
	frames   []string
	interval time.Duration
	animate  bool
}

// NewSpinner creates a spinner writing to out. When animate is false only
// the final success or failure message is printed.
func NewSpinner(out io.Writer, animate bool) *Spinner {
	return &Spinner{
		out:      out,
		frames:   SpinnerFrames,
		interval: 100 * time.Millisecond,
		animate:  animate,
	}
}

// WithInterval overrides the frame interval
func (s *Spinner) WithInterval(d time.Duration) *Spinner {
	s.interval = d
	return s
}

// Messages are the texts shown around a tracked task
type Messages struct {
	Progress string
	Success  string
	Failure  string
}

type outcome[T any] struct {
	value T
	err   error
}

// Track runs task in the background and animates the spinner until it
// completes. The line is cleared once, then the success message is printed
// and the value returned, or the failure message is printed and the task's
// error returned unchanged. Track always waits for the task; cancelling ctx
// is how the task is asked to stop early.
func Track[T any](ctx context.Context, s *Spinner, msgs Messages, task func(ctx context.Context) (T, error)) (T, error) {
	done := make(chan outcome[T], 1)
	go func() {
		v, err := task(ctx)
		done <- outcome[T]{value: v, err: err}
	}()

	var res outcome[T]
	if s.animate {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		i := 0
	loop:
		for {
			fmt.Fprintf(s.out, "\r%s %s", SpinnerStyle.Render(s.frames[i]), msgs.Progress)
			select {
			case res = <-done:
				break loop
			case <-ticker.C:
				i = (i + 1) % len(s.frames)
			}
		}
		io.WriteString(s.out, clearLine)
	} else {
		res = <-done
	}

	if res.err != nil {
		if msgs.Failure != "" {
			fmt.Fprintln(s.out, ErrorStyle.Render(IconError+" "+msgs.Failure))
		}
		return res.value, res.err
	}
	if msgs.Success != "" {
		fmt.Fprintln(s.out, SuccessStyle.Render(IconSuccess+" "+msgs.Success))
	}
	return res.value, nil
}
