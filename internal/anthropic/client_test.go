package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(""); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("got %v, want ErrMissingAPIKey", err)
	}
}

func TestComplete(t *testing.T) {
	var gotReq apiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != apiVersion {
			t.Errorf("anthropic-version = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotReq)
		io.WriteString(w, `{"content": [{"type": "text", "text": "generated summary"}]}`)
	}))
	defer srv.Close()

	c, err := New("test-key", WithBaseURL(srv.URL), WithModel("test-model"))
	if err != nil {
		t.Fatal(err)
	}

	out, err := c.Complete(context.Background(), "summarize this", 100)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "generated summary" {
		t.Errorf("out = %q", out)
	}
	if gotReq.Model != "test-model" || gotReq.MaxTokens != 100 {
		t.Errorf("request = %+v", gotReq)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "summarize this" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error": {"message": "rate limited"}}`)
	}))
	defer srv.Close()

	c, _ := New("k", WithBaseURL(srv.URL))
	if _, err := c.Complete(context.Background(), "p", 10); err == nil {
		t.Error("expected error on 429")
	}
}

func TestCompleteEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"content": []}`)
	}))
	defer srv.Close()

	c, _ := New("k", WithBaseURL(srv.URL))
	if _, err := c.Complete(context.Background(), "p", 10); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("got %v, want ErrEmptyResponse", err)
	}
}
