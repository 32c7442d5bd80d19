// Package eventbus is a synchronous in-process publish/subscribe bus.
// Store-to-store effects (cache purge on logout, stats refresh after a
// finished session) go through it instead of direct store references.
package eventbus

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Topic names an event stream.
type Topic string

const (
	// TopicLoggedOut fires after the local session ended; subscribers
	// must purge their mirrored state before dispatch returns.
	TopicLoggedOut Topic = "auth.logged_out"

	// TopicSessionFinished fires after a workout session was completed
	// on the server.
	TopicSessionFinished Topic = "workout.session_finished"
)

// Event is a published occurrence.
type Event struct {
	ID         uuid.UUID
	Topic      Topic
	OccurredAt time.Time
	Payload    any
}

// Handler consumes an event. Handler errors are logged, never propagated
// to the publisher.
type Handler func(ctx context.Context, event Event) error

// Bus dispatches events synchronously to registered handlers, in
// subscription order.
type Bus struct {
	mu       sync.Mutex
	handlers map[Topic][]Handler
	logger   *slog.Logger
}

// New creates an empty bus.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		handlers: make(map[Topic][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish dispatches the event to every handler for topic before
// returning. Handler failures are logged and do not stop dispatch.
func (b *Bus) Publish(ctx context.Context, topic Topic, payload any) {
	b.mu.Lock()
	handlers := make([]Handler, len(b.handlers[topic]))
	copy(handlers, b.handlers[topic])
	b.mu.Unlock()

	event := Event{
		ID:         uuid.New(),
		Topic:      topic,
		OccurredAt: time.Now(),
		Payload:    payload,
	}

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("event handler failed",
				"topic", string(topic),
				"event_id", event.ID.String(),
				"error", err,
			)
		}
	}
}
