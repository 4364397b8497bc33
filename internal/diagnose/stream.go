package diagnose

import (
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// EventKind distinguishes decoded stream events
type EventKind int

const (
	EventOpen    EventKind = iota // connection established, no content
	EventContent                  // answer fragment to append
	EventFinish                   // finish_reason "stop", nothing follows
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventContent:
		return "content"
	case EventFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// Event is one decoded increment of the remote answer
type Event struct {
	Kind    EventKind
	Content string
}

// chunkSource is the part of *openai.ChatCompletionStream the decoder uses
type chunkSource interface {
	Recv() (openai.ChatCompletionStreamResponse, error)
	Close() error
}

// Stream decodes chat-completion chunks into events
type Stream struct {
	src      chunkSource
	status   func() int
	opened   bool
	finished bool
}

func newStream(src chunkSource, status func() int) *Stream {
	if status == nil {
		status = func() int { return 0 }
	}
	return &Stream{src: src, status: status}
}

// Next returns the next event. The first call always yields EventOpen.
// After EventFinish it returns io.EOF.
func (s *Stream) Next() (Event, error) {
	if !s.opened {
		s.opened = true
		return Event{Kind: EventOpen}, nil
	}
	if s.finished {
		return Event{}, io.EOF
	}

	chunk, err := s.src.Recv()
	if errors.Is(err, io.EOF) {
		s.finished = true
		return Event{}, &ProtocolError{Reason: "stream ended before finish signal"}
	}
	if err != nil {
		s.finished = true
		return Event{}, classify(err, s.status())
	}
	if len(chunk.Choices) == 0 {
		s.finished = true
		return Event{}, &ProtocolError{Reason: "event has no choices"}
	}

	choice := chunk.Choices[0]
	if choice.FinishReason == openai.FinishReasonStop {
		s.finished = true
		return Event{Kind: EventFinish}, nil
	}
	return Event{Kind: EventContent, Content: choice.Delta.Content}, nil
}

// Render writes each fragment to w as soon as it arrives and returns once
// the finish signal is seen or the stream fails
func (s *Stream) Render(w io.Writer) error {
	defer s.Close()
	for {
		ev, err := s.Next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case EventFinish:
			return nil
		case EventContent:
			if ev.Content == "" {
				continue
			}
			if _, err := io.WriteString(w, ev.Content); err != nil {
				return err
			}
			if f, ok := w.(interface{ Flush() error }); ok {
				if err := f.Flush(); err != nil {
					return err
				}
			}
		}
	}
}

// Close releases the underlying response body
func (s *Stream) Close() error {
	return s.src.Close()
}
