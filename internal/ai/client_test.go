package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(ts *httptest.Server) *Client {
	c := NewClient("test-key", ts.URL, "test-model")
	c.client = ts.Client()
	return c
}

func TestCallSendsChatCompletionsRequest(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		io.WriteString(w, `{"choices":[{"message":{"content":"hello back"}}]}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	got, err := c.Call(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
	if got != "hello back" {
		t.Errorf("expected 'hello back', got %q", got)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("expected /chat/completions path, got %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody["model"] != "test-model" {
		t.Errorf("expected model in request body, got %v", gotBody["model"])
	}
	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("expected a single message, got %v", gotBody["messages"])
	}
	msg := msgs[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "hello" {
		t.Errorf("unexpected message %v", msg)
	}
}

func TestCallHandlesArrayContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices":[{"message":{"content":[
			{"type":"text","text":"part one"},
			{"type":"thinking","text":"ignored"},
			{"type":"text","text":"part two"}
		]}}]}`)
	}))
	defer ts.Close()

	got, err := newTestClient(ts).Call(context.Background(), "p")
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
	if got != "part one\npart two" {
		t.Errorf("expected joined text parts, got %q", got)
	}
}

func TestCallNon200Status(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":"rate limited"}`)
	}))
	defer ts.Close()

	_, err := newTestClient(ts).Call(context.Background(), "p")
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status in error, got: %v", err)
	}
}

func TestCallEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices":[]}`)
	}))
	defer ts.Close()

	_, err := newTestClient(ts).Call(context.Background(), "p")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestInferModel(t *testing.T) {
	if got := InferModel("https://api.deepseek.com/v1"); got != "deepseek-chat" {
		t.Errorf("expected deepseek-chat, got %q", got)
	}
	if got := InferModel("https://open.bigmodel.cn/api/paas/v4"); got != DefaultModel {
		t.Errorf("expected default model, got %q", got)
	}
}
