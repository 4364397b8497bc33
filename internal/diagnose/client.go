package diagnose

import (
	"context"
	"io"

	openai "github.com/sashabaranov/go-openai"
	"pkt.systems/pslog"

	"github.com/tara-vision/what/internal/provider"
)

// Client opens diagnostic streams against a provider
type Client struct {
	provider *provider.Provider
	api      *openai.Client
}

// NewClient creates a client for p
func NewClient(p *provider.Provider) *Client {
	return &Client{provider: p, api: p.CreateClient()}
}

// Open sends req and returns once the endpoint accepted the stream.
// Failures are returned as RemoteServiceError or ProtocolError; nothing
// is retried.
func (c *Client) Open(ctx context.Context, req Request) (*Stream, error) {
	if req.Model == "" {
		req.Model = c.provider.Info().Model.String()
	}
	log := pslog.Ctx(ctx).With("model", req.Model)
	log.Debug("opening diagnostic stream", "base_url", c.provider.Info().BaseURL, "bytes", len(req.Output))

	src, err := c.api.CreateChatCompletionStream(ctx, req.ChatRequest())
	if err != nil {
		err = classify(err, c.provider.LastStatus())
		log.Debug("diagnostic stream rejected", "err", err)
		return nil, err
	}
	return newStream(src, c.provider.LastStatus), nil
}

// Diagnose opens a stream for req and renders it to w
func (c *Client) Diagnose(ctx context.Context, req Request, w io.Writer) error {
	stream, err := c.Open(ctx, req)
	if err != nil {
		return err
	}
	return stream.Render(w)
}
