package diagnose

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tara-vision/what/internal/provider"
)

func chunkJSON(content, finish string) string {
	finishField := "null"
	if finish != "" {
		finishField = fmt.Sprintf("%q", finish)
	}
	return fmt.Sprintf(`{"id":"chatcmpl-1","object":"chat.completion.chunk","created":1,"model":"test-model","choices":[{"index":0,"delta":{"content":%q},"finish_reason":%s}]}`,
		content, finishField)
}

// sseHandler writes each payload as a server-sent event
func sseHandler(t *testing.T, payloads ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("response writer cannot flush")
		}
		for _, p := range payloads {
			fmt.Fprintf(w, "data: %s\n\n", p)
			flusher.Flush()
		}
	}
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(provider.New(srv.URL+"/v1", "test-token", "test-model"))
}

func TestDiagnoseRendersFragmentsUntilStop(t *testing.T) {
	client := newTestClient(t, sseHandler(t,
		chunkJSON("Try ", ""),
		chunkJSON("restarting ", ""),
		chunkJSON("the service", ""),
		chunkJSON("", "stop"),
		chunkJSON("never shown", ""),
		"[DONE]",
	))

	var out bytes.Buffer
	req := Request{Output: ">>> systemctl start app\nfailed"}
	if err := client.Diagnose(context.Background(), req, &out); err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if out.String() != "Try restarting the service" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestOpenSendsStreamingRequest(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody map[string]any
	)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			t.Errorf("Unexpected content type: %q", ct)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		sseHandler(t, chunkJSON("", "stop"))(w, r)
	})
	client := newTestClient(t, handler)

	err := client.Diagnose(context.Background(), Request{Output: "boom", Note: "on staging"}, io.Discard)
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	if gotPath != "/v1/chat/completions" {
		t.Errorf("Unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Unexpected authorization: %q", gotAuth)
	}
	if gotBody["model"] != "test-model" {
		t.Errorf("Expected provider model, got %v", gotBody["model"])
	}
	if gotBody["stream"] != true {
		t.Errorf("Expected stream=true, got %v", gotBody["stream"])
	}
	messages, _ := gotBody["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %v", gotBody["messages"])
	}
	system := messages[0].(map[string]any)
	user := messages[1].(map[string]any)
	if system["role"] != "system" || system["content"] != SystemPrompt {
		t.Errorf("Unexpected system message: %v", system)
	}
	if user["role"] != "user" || user["content"] != "boom\non staging" {
		t.Errorf("Unexpected user message: %v", user)
	}
}

func TestOpenMapsStatusCodes(t *testing.T) {
	tests := []struct {
		status  int
		message string
	}{
		{http.StatusUnauthorized, "Incorrect API key provided"},
		{http.StatusForbidden, "Country, region, or territory not supported"},
		{http.StatusTooManyRequests, "Exceeded current quota or too many requests"},
		{http.StatusInternalServerError, "Server had an error while processing the request"},
		{http.StatusServiceUnavailable, "The engine is currently overloaded, try again later"},
		{http.StatusTeapot, "418"},
	}

	bodies := map[string]func(w http.ResponseWriter, status int){
		"json error": func(w http.ResponseWriter, status int) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			io.WriteString(w, `{"error":{"message":"body text is ignored","type":"invalid_request_error"}}`)
		},
		"plain error": func(w http.ResponseWriter, status int) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(status)
			io.WriteString(w, "<html>gateway</html>")
		},
	}

	for name, write := range bodies {
		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s/%d", name, tt.status), func(t *testing.T) {
				status := tt.status
				client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					write(w, status)
				}))

				_, err := client.Open(context.Background(), Request{Output: "x"})
				var remote *RemoteServiceError
				if !errors.As(err, &remote) {
					t.Fatalf("Expected RemoteServiceError, got %T: %v", err, err)
				}
				if remote.Status != tt.status {
					t.Errorf("Expected status %d, got %d", tt.status, remote.Status)
				}
				if !strings.Contains(err.Error(), tt.message) {
					t.Errorf("Expected %q in %q", tt.message, err.Error())
				}
				if strings.Contains(err.Error(), "body text is ignored") {
					t.Errorf("Message must not depend on the body: %q", err.Error())
				}
			})
		}
	}
}

func TestStatusMessage(t *testing.T) {
	if got := StatusMessage(http.StatusUnauthorized); got != "Incorrect API key provided" {
		t.Errorf("Unexpected message: %q", got)
	}
	if got := StatusMessage(418); !strings.Contains(got, "unexpected error") || !strings.Contains(got, "418") {
		t.Errorf("Unexpected fallback message: %q", got)
	}
	err := &RemoteServiceError{Status: http.StatusServiceUnavailable}
	if err.Error() != "[503] The engine is currently overloaded, try again later" {
		t.Errorf("Unexpected error text: %q", err.Error())
	}
}

func TestDiagnoseProtocolErrors(t *testing.T) {
	tests := []struct {
		name     string
		payloads []string
	}{
		{"malformed json", []string{chunkJSON("partial ", ""), "{not json"}},
		{"missing choices", []string{`{"id":"chatcmpl-1","object":"chat.completion.chunk"}`}},
		{"ended without stop", []string{chunkJSON("half an answer", ""), "[DONE]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, sseHandler(t, tt.payloads...))
			err := client.Diagnose(context.Background(), Request{Output: "x"}, io.Discard)
			var protoErr *ProtocolError
			if !errors.As(err, &protoErr) {
				t.Fatalf("Expected ProtocolError, got %T: %v", err, err)
			}
		})
	}
}

func TestOpenTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(provider.New(url+"/v1", "tok", "test-model"))
	_, err := client.Open(context.Background(), Request{Output: "x"})
	var remote *RemoteServiceError
	if !errors.As(err, &remote) {
		t.Fatalf("Expected RemoteServiceError, got %T: %v", err, err)
	}
	if remote.Status != 0 || !strings.Contains(err.Error(), "unexpected error") {
		t.Errorf("Unexpected transport error: %v", err)
	}
}
