// Package provider builds the OpenAI-compatible client used for diagnosis.
package provider

import (
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultConnectTimeout = 10 * time.Second
)

// Provider owns the HTTP transport and credentials for the endpoint
type Provider struct {
	info       *Info
	httpClient *http.Client
	recorder   *statusRecorder
	token      string
}

// New creates a provider for baseURL authenticated with token
func New(baseURL, token string, model Model) *Provider {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	recorder := &statusRecorder{next: newTransport()}
	return &Provider{
		info: &Info{
			BaseURL: baseURL,
			Model:   model,
		},
		httpClient: &http.Client{
			Timeout:   0, // Disabled - streaming responses are bounded by context
			Transport: recorder,
		},
		recorder: recorder,
		token:    token,
	}
}

// Info returns endpoint metadata
func (p *Provider) Info() *Info {
	return p.info
}

// CreateClient returns an OpenAI-compatible client
func (p *Provider) CreateClient() *openai.Client {
	config := openai.DefaultConfig(p.token)
	config.BaseURL = p.info.BaseURL
	config.HTTPClient = p.httpClient
	return openai.NewClientWithConfig(config)
}

// LastStatus returns the HTTP status of the most recent response, or 0
func (p *Provider) LastStatus() int {
	return int(p.recorder.status.Load())
}

// newTransport creates the transport for LLM API requests. There is no
// client-level timeout so long streams are not cut off.
func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   defaultConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
}

// statusRecorder remembers the last response status so failures can be
// mapped by status even when the body is not a JSON error document
type statusRecorder struct {
	next   http.RoundTripper
	status atomic.Int32
}

func (r *statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.next.RoundTrip(req)
	if resp != nil {
		r.status.Store(int32(resp.StatusCode))
	}
	return resp, err
}
