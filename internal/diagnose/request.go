// Package diagnose streams captured terminal text to a chat-completion
// endpoint and renders the answer as it arrives.
package diagnose

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// SystemPrompt keeps answers plain and terminal-friendly
const SystemPrompt = "you are a helpful assistant, you get commands outputs and you diagnose what was the issue and given a solution, do not send markdown text"

// Request is the outbound diagnostic payload
type Request struct {
	Model  string
	Output string // captured terminal text
	Note   string // optional user note appended to the output
}

// UserMessage concatenates the captured text and the note
func (r Request) UserMessage() string {
	return fmt.Sprintf("%s\n%s", r.Output, r.Note)
}

// ChatRequest converts r into a streaming chat-completion request
func (r Request) ChatRequest() openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: r.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: r.UserMessage()},
		},
		Stream: true,
	}
}
