package relay

import (
	"context"
	"errors"
	"strings"

	"makementors-be/internal/constant"
	"makementors-be/internal/pkg/logger"
	"makementors-be/pkg/llm"
)

// Chunk is one unit pushed to the caller. Content carries the full
// cumulative text so far so the client render-replaces instead of
// appending. The final chunk has Done=true and empty Content.
type Chunk struct {
	Content string
	Done    bool
}

// Hooks wires the relay to its surroundings. Any hook may be nil:
// a nil ResolveSession or Persist just disables persistence, a nil
// Emit discards output (useful in tests).
type Hooks struct {
	// ResolveSession runs before streaming starts. It returns the
	// session id the assistant message will be tagged with, or an
	// error to signal degraded (non-persistent) mode.
	ResolveSession func(ctx context.Context) (string, error)

	// Emit pushes a chunk to the caller. Returning an error means the
	// client is gone; the relay treats it as a cancellation.
	Emit func(chunk Chunk) error

	// Persist writes the finished assistant message. Called at most
	// once, only for non-cancelled sends with non-empty text.
	Persist func(ctx context.Context, sessionID, content string) error
}

// Outcome reports what a send actually did.
type Outcome struct {
	SessionID  string
	Text       string
	FinalState State
	// Fallback is set when the upstream provider failed and the fixed
	// apologetic message was substituted.
	Fallback bool
	// Degraded is set when session resolution failed and the send ran
	// without persistence.
	Degraded   bool
	Persisted  bool
	PersistErr error
}

// Cancelled reports whether the send ended in the absorbing state.
func (o Outcome) Cancelled() bool {
	return o.FinalState == StateCancelled
}

// Relay proxies one conversation turn to the LLM provider, forwards
// cumulative chunks to the caller, and persists the finished assistant
// message. It is stateless across sends.
type Relay struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func New(provider llm.LLMProvider, logger logger.ILogger) *Relay {
	return &Relay{
		provider: provider,
		logger:   logger,
	}
}

func (r *Relay) emit(hooks Hooks, chunk Chunk) error {
	if hooks.Emit == nil {
		return nil
	}
	return hooks.Emit(chunk)
}

// Run executes one send: resolve session, stream, finalize.
func (r *Relay) Run(ctx context.Context, history []llm.Message, hooks Hooks, options ...llm.Option) Outcome {
	m := newMachine()
	out := Outcome{}

	m.to(StateAwaitingSession)
	if hooks.ResolveSession != nil {
		sessionID, err := hooks.ResolveSession(ctx)
		if err != nil {
			// Degraded mode: the user still gets their answer, it just
			// won't be saved.
			out.Degraded = true
			r.logger.Warn("Relay", "Session resolution failed, continuing without persistence", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			out.SessionID = sessionID
		}
	}

	m.to(StateStreaming)
	// The provider goroutine blocks its sends on this context; cancel
	// it as soon as streaming ends so an abandoned stream (client gone,
	// emit failed) releases the goroutine and its upstream connection.
	streamCtx, cancelStream := context.WithCancel(ctx)
	out.Text = r.stream(streamCtx, m, history, hooks, &out, options)
	cancelStream()

	if m.current() == StateCancelled {
		m.to(StateIdle)
		out.FinalState = StateCancelled
		return out
	}

	m.to(StateFinalizing)
	_ = r.emit(hooks, Chunk{Done: true})
	r.finalize(ctx, &out, hooks)

	m.to(StateIdle)
	out.FinalState = StateIdle
	return out
}

// stream consumes provider deltas and forwards cumulative text. The
// returned string is the final accumulated text; on provider failure
// it is the fixed fallback message.
func (r *Relay) stream(ctx context.Context, m *machine, history []llm.Message, hooks Hooks, out *Outcome, options []llm.Option) string {
	deltas, err := r.provider.ChatStream(ctx, history, options...)
	if err != nil {
		if ctx.Err() != nil {
			m.to(StateCancelled)
			return ""
		}
		r.logger.Error("Relay", "Upstream provider refused the stream", map[string]interface{}{
			"error": err.Error(),
		})
		out.Fallback = true
		_ = r.emit(hooks, Chunk{Content: constant.FallbackErrorMessage})
		return constant.FallbackErrorMessage
	}

	var sb strings.Builder
	for {
		select {
		case <-ctx.Done():
			m.to(StateCancelled)
			return ""
		case delta, ok := <-deltas:
			if !ok {
				return sb.String()
			}
			if delta.Err != nil {
				if errors.Is(delta.Err, context.Canceled) || ctx.Err() != nil {
					m.to(StateCancelled)
					return ""
				}
				r.logger.Error("Relay", "Upstream stream failed mid-flight", map[string]interface{}{
					"error":       delta.Err.Error(),
					"accumulated": sb.Len(),
				})
				// Replace whatever partial text was built; the caller
				// render-replaces, so it sees only the fallback.
				out.Fallback = true
				_ = r.emit(hooks, Chunk{Content: constant.FallbackErrorMessage})
				return constant.FallbackErrorMessage
			}
			if delta.Content != "" {
				sb.WriteString(delta.Content)
				if err := r.emit(hooks, Chunk{Content: sb.String()}); err != nil {
					// Client went away mid-stream.
					m.to(StateCancelled)
					return ""
				}
			}
			if delta.Done {
				return sb.String()
			}
		}
	}
}

func (r *Relay) finalize(ctx context.Context, out *Outcome, hooks Hooks) {
	if out.Text == "" {
		r.logger.Warn("Relay", "Stream completed with empty text, nothing persisted", nil)
		return
	}
	if out.SessionID == "" || hooks.Persist == nil {
		return
	}

	// The chunks (and the done marker) are already flushed, so the
	// caller's response never waits on this write. Detach from the
	// request context in case the client closes the connection first.
	persistCtx := context.WithoutCancel(ctx)
	if err := hooks.Persist(persistCtx, out.SessionID, out.Text); err != nil {
		out.PersistErr = err
		r.logger.Error("Relay", "Failed to persist assistant message", map[string]interface{}{
			"chat_session_id": out.SessionID,
			"error":           err.Error(),
		})
		return
	}
	out.Persisted = true
}
