package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers and
// reconstructed by subscribers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published on the bus.
const (
	TypeUserRegistered      = "USER_REGISTERED"
	TypeChatCompleted       = "CHAT_COMPLETED"
	TypeSubscriptionUpdated = "SUBSCRIPTION_UPDATED"
)

func NewUserRegisteredEvent(userID, email string) Event {
	return BaseEvent{
		Type: TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id": userID,
			"email":   email,
		},
		OccurredAt: time.Now(),
	}
}

// NewChatCompletedEvent fires after an assistant message is persisted.
// The titling consumer uses it to derive a session title from the first
// exchange.
func NewChatCompletedEvent(sessionID, userID, userText, assistantText string) Event {
	return BaseEvent{
		Type: TypeChatCompleted,
		Data: map[string]interface{}{
			"chat_session_id": sessionID,
			"user_id":         userID,
			"user_text":       userText,
			"assistant_text":  assistantText,
		},
		OccurredAt: time.Now(),
	}
}

func NewSubscriptionUpdatedEvent(userID, tier string, subscribed bool) Event {
	return BaseEvent{
		Type: TypeSubscriptionUpdated,
		Data: map[string]interface{}{
			"user_id":    userID,
			"tier":       tier,
			"subscribed": subscribed,
		},
		OccurredAt: time.Now(),
	}
}
