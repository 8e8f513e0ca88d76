package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"makementors-be/pkg/llm"
)

func sseBody(chunks []string) string {
	var sb strings.Builder
	for _, c := range chunks {
		sb.WriteString("data: " + c + "\n\n")
	}
	sb.WriteString("data: [DONE]\n\n")
	return sb.String()
}

func TestChatStreamParsesDeltas(t *testing.T) {
	body := sseBody([]string{
		`{"choices":[{"delta":{"content":"Hel"}}]}`,
		`{"choices":[{"delta":{"content":"lo"}}]}`,
		`{"choices":[{"delta":{}}]}`,
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("", srv.URL, "test-model")
	deltas, err := p.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("ChatStream: %v", err)
	}

	var text strings.Builder
	var done bool
	for d := range deltas {
		if d.Err != nil {
			t.Fatalf("delta error: %v", d.Err)
		}
		text.WriteString(d.Content)
		done = d.Done
	}

	if text.String() != "Hello" {
		t.Errorf("accumulated = %q, want %q", text.String(), "Hello")
	}
	if !done {
		t.Error("stream never reported Done")
	}
}

func TestChatStreamStopsOnFinishReason(t *testing.T) {
	body := "data: " + `{"choices":[{"delta":{"content":"Hi"},"finish_reason":"stop"}]}` + "\n\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("", srv.URL, "test-model")
	deltas, err := p.ChatStream(context.Background(), nil)
	if err != nil {
		t.Fatalf("ChatStream: %v", err)
	}

	var sawDone bool
	for d := range deltas {
		if d.Done {
			sawDone = true
		}
	}
	if !sawDone {
		t.Error("finish_reason did not terminate the stream")
	}
}

func TestChatStreamAbandonedReleasesGoroutine(t *testing.T) {
	// A server that keeps streaming until the request is torn down,
	// like a long completion against a client who walked away.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fl := w.(http.Flusher)
		for {
			if _, err := fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"x"}}]}`+"\n\n"); err != nil {
				return
			}
			fl.Flush()
			select {
			case <-r.Context().Done():
				return
			case <-time.After(5 * time.Millisecond):
			}
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	p := NewOpenAIProvider("", srv.URL, "test-model")
	deltas, err := p.ChatStream(ctx, nil)
	if err != nil {
		t.Fatalf("ChatStream: %v", err)
	}

	<-deltas
	// Stop consuming, as the relay does when its emit fails.
	cancel()

	// The stream goroutine must notice the cancellation and close the
	// channel instead of blocking on its next send forever.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-deltas:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream goroutine did not exit after cancellation")
		}
	}
}

func TestChatStreamRejectsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("", srv.URL, "test-model")
	_, err := p.ChatStream(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error on 500")
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("error = %v, want status 500", err)
	}
}

func TestChatNonStreaming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"content":"Hello there"}}]}`)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("", srv.URL, "test-model")
	got, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got != "Hello there" {
		t.Errorf("Chat = %q", got)
	}
}
