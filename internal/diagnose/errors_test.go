package diagnose

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestClassifyStatusBeatsUndecodableBody(t *testing.T) {
	badBody := &json.SyntaxError{Offset: 1}

	tests := []struct {
		name       string
		err        error
		lastStatus int
		wantStatus int
	}{
		{"request error with html body", &openai.RequestError{HTTPStatusCode: 503, Err: badBody}, 503, 503},
		{"api error", &openai.APIError{HTTPStatusCode: 401, Message: "bad key"}, 401, 401},
		{"recorded status only", fmt.Errorf("decode: %w", badBody), 429, 429},
		{"transport failure", errors.New("connection refused"), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var remote *RemoteServiceError
			if err := classify(tt.err, tt.lastStatus); !errors.As(err, &remote) {
				t.Fatalf("Expected RemoteServiceError, got %T: %v", err, err)
			}
			if remote.Status != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, remote.Status)
			}
		})
	}
}

func TestClassifyProtocolErrors(t *testing.T) {
	for _, err := range []error{
		&json.SyntaxError{Offset: 3},
		fmt.Errorf("recv: %w", openai.ErrTooManyEmptyStreamMessages),
	} {
		var proto *ProtocolError
		if got := classify(err, 200); !errors.As(got, &proto) {
			t.Errorf("Expected ProtocolError for %v, got %T", err, got)
		}
	}
}

func TestClassifyPassesCancellation(t *testing.T) {
	if err := classify(context.Canceled, 0); err != context.Canceled {
		t.Errorf("Expected context.Canceled unchanged, got %v", err)
	}
	if classify(nil, 500) != nil {
		t.Error("Expected nil for nil error")
	}
}
