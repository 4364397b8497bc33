package diagnose

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// ProtocolError reports a malformed or unexpected stream payload
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed diagnostic stream: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed diagnostic stream: %s", e.Reason)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// RemoteServiceError is a failure reported by the endpoint. Status is 0
// when the failure carried no HTTP status.
type RemoteServiceError struct {
	Status int
	Err    error
}

func (e *RemoteServiceError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("unexpected error response: %v", e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Status, StatusMessage(e.Status))
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// StatusMessage maps an HTTP status to a fixed user-facing message. The
// response body is never consulted.
func StatusMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Incorrect API key provided"
	case http.StatusForbidden:
		return "Country, region, or territory not supported"
	case http.StatusTooManyRequests:
		return "Exceeded current quota or too many requests"
	case http.StatusInternalServerError:
		return "Server had an error while processing the request"
	case http.StatusServiceUnavailable:
		return "The engine is currently overloaded, try again later"
	default:
		return fmt.Sprintf("unexpected error (status %d)", status)
	}
}

// classify maps a client error onto the diagnostic error taxonomy.
// lastStatus is the status of the most recent HTTP response, if any.
func classify(err error, lastStatus int) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	// A failed status wins over whatever the body failed to decode as
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode >= 400 {
		return &RemoteServiceError{Status: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode >= 400 {
		return &RemoteServiceError{Status: reqErr.HTTPStatusCode, Err: err}
	}
	if lastStatus >= 400 {
		return &RemoteServiceError{Status: lastStatus, Err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &ProtocolError{Reason: "payload is not valid JSON", Err: err}
	}
	if errors.Is(err, openai.ErrTooManyEmptyStreamMessages) {
		return &ProtocolError{Reason: "too many empty events", Err: err}
	}
	return &RemoteServiceError{Err: err}
}
