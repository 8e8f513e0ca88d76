package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"makementors-be/internal/constant"
	"makementors-be/pkg/llm"
)

// nopLogger keeps tests quiet.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeProvider replays a scripted delta sequence.
type fakeProvider struct {
	deltas    []llm.StreamDelta
	openErr   error
	openCount int
	// streamExited, when non-nil, is closed once the stream goroutine
	// returns.
	streamExited chan struct{}
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeProvider) ChatStream(ctx context.Context, history []llm.Message, options ...llm.Option) (<-chan llm.StreamDelta, error) {
	f.openCount++
	if f.openErr != nil {
		return nil, f.openErr
	}
	out := make(chan llm.StreamDelta)
	go func() {
		defer close(out)
		if f.streamExited != nil {
			defer close(f.streamExited)
		}
		for _, d := range f.deltas {
			select {
			case out <- d:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

type recorder struct {
	chunks    []Chunk
	persisted []string
	sessionID string
	// failEmitAfter, when > 0, makes Emit fail after that many calls.
	failEmitAfter int
	persistErr    error
}

func (rec *recorder) hooks() Hooks {
	return Hooks{
		ResolveSession: func(ctx context.Context) (string, error) {
			return rec.sessionID, nil
		},
		Emit: func(chunk Chunk) error {
			rec.chunks = append(rec.chunks, chunk)
			if rec.failEmitAfter > 0 && len(rec.chunks) >= rec.failEmitAfter {
				return errors.New("client gone")
			}
			return nil
		},
		Persist: func(ctx context.Context, sessionID, content string) error {
			if rec.persistErr != nil {
				return rec.persistErr
			}
			rec.persisted = append(rec.persisted, content)
			return nil
		},
	}
}

func (rec *recorder) contentChunks() []string {
	var out []string
	for _, c := range rec.chunks {
		if !c.Done {
			out = append(out, c.Content)
		}
	}
	return out
}

func TestRunStreamsCumulativeText(t *testing.T) {
	provider := &fakeProvider{deltas: []llm.StreamDelta{
		{Content: "Hel"},
		{Content: "lo"},
		{Content: " there"},
		{Done: true},
	}}
	rec := &recorder{sessionID: "session-1"}

	out := New(provider, nopLogger{}).Run(context.Background(), nil, rec.hooks())

	want := []string{"Hel", "Hello", "Hello there"}
	got := rec.contentChunks()
	if len(got) != len(want) {
		t.Fatalf("chunks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	last := rec.chunks[len(rec.chunks)-1]
	if !last.Done {
		t.Error("final chunk should be the done marker")
	}

	if out.Text != "Hello there" {
		t.Errorf("Text = %q, want %q", out.Text, "Hello there")
	}
	if out.FinalState != StateIdle {
		t.Errorf("FinalState = %v, want idle", out.FinalState)
	}
}

func TestRunPersistsFinalTextOnce(t *testing.T) {
	provider := &fakeProvider{deltas: []llm.StreamDelta{
		{Content: "Answer"},
		{Done: true},
	}}
	rec := &recorder{sessionID: "session-1"}

	out := New(provider, nopLogger{}).Run(context.Background(), nil, rec.hooks())

	if !out.Persisted {
		t.Fatal("expected Persisted")
	}
	if len(rec.persisted) != 1 {
		t.Fatalf("persisted %d messages, want 1", len(rec.persisted))
	}
	if rec.persisted[0] != out.Text {
		t.Errorf("persisted %q, delivered %q", rec.persisted[0], out.Text)
	}
}

func TestRunProviderRefusalSubstitutesFallback(t *testing.T) {
	provider := &fakeProvider{openErr: errors.New("status 500")}
	rec := &recorder{sessionID: "session-1"}

	out := New(provider, nopLogger{}).Run(context.Background(), nil, rec.hooks())

	if !out.Fallback {
		t.Fatal("expected Fallback")
	}
	if out.Text != constant.FallbackErrorMessage {
		t.Errorf("Text = %q, want fallback message", out.Text)
	}

	got := rec.contentChunks()
	if len(got) != 1 || got[0] != constant.FallbackErrorMessage {
		t.Errorf("chunks = %v, want single fallback chunk", got)
	}

	// The fallback is what the user saw, so it is what gets saved.
	if len(rec.persisted) != 1 || rec.persisted[0] != constant.FallbackErrorMessage {
		t.Errorf("persisted = %v, want fallback message", rec.persisted)
	}
}

func TestRunMidStreamErrorReplacesPartialText(t *testing.T) {
	provider := &fakeProvider{deltas: []llm.StreamDelta{
		{Content: "partial prov"},
		{Err: errors.New("connection reset")},
	}}
	rec := &recorder{sessionID: "session-1"}

	out := New(provider, nopLogger{}).Run(context.Background(), nil, rec.hooks())

	if !out.Fallback {
		t.Fatal("expected Fallback")
	}
	if out.Text != constant.FallbackErrorMessage {
		t.Errorf("Text = %q, want fallback message", out.Text)
	}

	// Provider text must not survive into the store.
	for _, p := range rec.persisted {
		if p != constant.FallbackErrorMessage {
			t.Errorf("persisted provider text %q", p)
		}
	}

	got := rec.contentChunks()
	if got[len(got)-1] != constant.FallbackErrorMessage {
		t.Errorf("last chunk = %q, want fallback (render-replace)", got[len(got)-1])
	}
}

func TestRunCancellationSkipsPersistence(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	provider := &fakeProvider{deltas: []llm.StreamDelta{
		{Content: "Hel"},
		{Content: "lo"},
		{Done: true},
	}}
	rec := &recorder{sessionID: "session-1"}
	hooks := rec.hooks()
	baseEmit := hooks.Emit
	hooks.Emit = func(chunk Chunk) error {
		// Simulate the user navigating away after the first chunk.
		if err := baseEmit(chunk); err != nil {
			return err
		}
		cancel()
		return nil
	}

	out := New(provider, nopLogger{}).Run(ctx, nil, hooks)

	if !out.Cancelled() {
		t.Fatalf("FinalState = %v, want cancelled", out.FinalState)
	}
	if out.Persisted || len(rec.persisted) != 0 {
		t.Errorf("cancelled send persisted %v", rec.persisted)
	}
}

func TestRunEmitFailureCancels(t *testing.T) {
	provider := &fakeProvider{deltas: []llm.StreamDelta{
		{Content: "a"},
		{Content: "b"},
		{Content: "c"},
		{Done: true},
	}}
	rec := &recorder{sessionID: "session-1", failEmitAfter: 2}

	out := New(provider, nopLogger{}).Run(context.Background(), nil, rec.hooks())

	if !out.Cancelled() {
		t.Fatalf("FinalState = %v, want cancelled", out.FinalState)
	}
	if len(rec.persisted) != 0 {
		t.Errorf("persisted = %v, want none", rec.persisted)
	}
}

func TestRunEmitFailureReleasesProvider(t *testing.T) {
	exited := make(chan struct{})
	provider := &fakeProvider{
		deltas: []llm.StreamDelta{
			{Content: "a"},
			{Content: "b"},
			{Content: "c"},
			{Done: true},
		},
		streamExited: exited,
	}
	rec := &recorder{sessionID: "session-1", failEmitAfter: 1}

	out := New(provider, nopLogger{}).Run(context.Background(), nil, rec.hooks())

	if !out.Cancelled() {
		t.Fatalf("FinalState = %v, want cancelled", out.FinalState)
	}
	// The provider goroutine still has deltas queued; the cancelled
	// send must unblock it rather than strand it on the channel.
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("provider stream goroutine still running after cancelled send")
	}
}

func TestRunEmptyStreamPersistsNothing(t *testing.T) {
	provider := &fakeProvider{deltas: []llm.StreamDelta{
		{Done: true},
	}}
	rec := &recorder{sessionID: "session-1"}

	out := New(provider, nopLogger{}).Run(context.Background(), nil, rec.hooks())

	if out.Text != "" {
		t.Errorf("Text = %q, want empty", out.Text)
	}
	if out.Persisted || len(rec.persisted) != 0 {
		t.Errorf("persisted = %v, want none", rec.persisted)
	}
	if out.FinalState != StateIdle {
		t.Errorf("FinalState = %v, want idle", out.FinalState)
	}
}

func TestRunDegradedModeStillAnswers(t *testing.T) {
	provider := &fakeProvider{deltas: []llm.StreamDelta{
		{Content: "Answer"},
		{Done: true},
	}}
	rec := &recorder{}
	hooks := rec.hooks()
	hooks.ResolveSession = func(ctx context.Context) (string, error) {
		return "", errors.New("store unreachable")
	}

	out := New(provider, nopLogger{}).Run(context.Background(), nil, hooks)

	if !out.Degraded {
		t.Fatal("expected Degraded")
	}
	if out.Text != "Answer" {
		t.Errorf("Text = %q, want %q", out.Text, "Answer")
	}
	if out.Persisted || len(rec.persisted) != 0 {
		t.Errorf("degraded send persisted %v", rec.persisted)
	}
}

func TestRunPersistErrorIsSoft(t *testing.T) {
	provider := &fakeProvider{deltas: []llm.StreamDelta{
		{Content: "Answer"},
		{Done: true},
	}}
	rec := &recorder{sessionID: "session-1", persistErr: errors.New("constraint violation")}

	out := New(provider, nopLogger{}).Run(context.Background(), nil, rec.hooks())

	if out.Persisted {
		t.Error("Persisted should be false")
	}
	if out.PersistErr == nil {
		t.Error("PersistErr should carry the failure")
	}
	// The user still received the full answer.
	if out.Text != "Answer" {
		t.Errorf("Text = %q, want %q", out.Text, "Answer")
	}
	if out.FinalState != StateIdle {
		t.Errorf("FinalState = %v, want idle", out.FinalState)
	}
}
