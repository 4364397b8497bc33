package provider

import "github.com/sashabaranov/go-openai"

// Model identifies a chat-completion model
type Model string

const (
	ModelGPT4o      Model = openai.GPT4o
	ModelGPT4oMini  Model = openai.GPT4oMini
	ModelGPT35Turbo Model = openai.GPT3Dot5Turbo
)

// DefaultModel is used when no model is configured
const DefaultModel = ModelGPT35Turbo

// DefaultBaseURL is the chat-completion API root
const DefaultBaseURL = "https://api.openai.com/v1"

// String returns the model identifier sent to the endpoint
func (m Model) String() string {
	return string(m)
}

// DisplayName returns a human-readable name for well-known models
func (m Model) DisplayName() string {
	switch m {
	case ModelGPT4o:
		return "GPT-4o"
	case ModelGPT4oMini:
		return "GPT-4o mini"
	case ModelGPT35Turbo:
		return "GPT-3.5 Turbo"
	default:
		return string(m)
	}
}

// KnownModels lists the models offered on the command line
func KnownModels() []Model {
	return []Model{ModelGPT35Turbo, ModelGPT4o, ModelGPT4oMini}
}

// Info holds endpoint metadata
type Info struct {
	BaseURL string // API root, e.g. https://api.openai.com/v1
	Model   Model  // Selected model
}
