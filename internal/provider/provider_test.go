package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	p := New("  ", "token", "")
	if p.Info().BaseURL != DefaultBaseURL {
		t.Errorf("Expected default base url, got %q", p.Info().BaseURL)
	}
	if p.Info().Model != DefaultModel {
		t.Errorf("Expected default model, got %q", p.Info().Model)
	}

	p = New("http://localhost:8080/v1/", "token", ModelGPT4o)
	if p.Info().BaseURL != "http://localhost:8080/v1" {
		t.Errorf("Expected trailing slash trimmed, got %q", p.Info().BaseURL)
	}
}

func TestModelDisplayName(t *testing.T) {
	tests := []struct {
		model Model
		want  string
	}{
		{ModelGPT4o, "GPT-4o"},
		{ModelGPT4oMini, "GPT-4o mini"},
		{ModelGPT35Turbo, "GPT-3.5 Turbo"},
		{"llama3", "llama3"},
	}
	for _, tt := range tests {
		if got := tt.model.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.model, got, tt.want)
		}
	}
	if len(KnownModels()) != 3 || KnownModels()[0] != DefaultModel {
		t.Errorf("Unexpected known models: %v", KnownModels())
	}
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Unexpected authorization %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4o","object":"model"},{"id":"gpt-3.5-turbo","object":"model"}]}`))
	}))
	defer srv.Close()

	p := New(srv.URL+"/v1", "test-token", "")
	models, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	if len(models) != 2 || models[0] != "gpt-3.5-turbo" || models[1] != "gpt-4o" {
		t.Errorf("Expected sorted ids, got %v", models)
	}
	if p.LastStatus() != http.StatusOK {
		t.Errorf("Expected recorded status 200, got %d", p.LastStatus())
	}
}

func TestLastStatusRecordsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>bad gateway</html>", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := New(srv.URL, "token", "")
	if p.LastStatus() != 0 {
		t.Errorf("Expected no status before any request, got %d", p.LastStatus())
	}
	if _, err := p.ListModels(context.Background()); err == nil {
		t.Fatal("Expected error for bad gateway")
	}
	if p.LastStatus() != http.StatusBadGateway {
		t.Errorf("Expected recorded status 502, got %d", p.LastStatus())
	}
}
