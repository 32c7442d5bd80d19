package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_DispatchesSynchronously(t *testing.T) {
	bus := New(nil)

	var got []Event
	bus.Subscribe(TopicLoggedOut, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	bus.Publish(context.Background(), TopicLoggedOut, "payload")

	require.Len(t, got, 1, "handler ran before Publish returned")
	assert.Equal(t, TopicLoggedOut, got[0].Topic)
	assert.Equal(t, "payload", got[0].Payload)
	assert.NotEqual(t, uuid.Nil, got[0].ID)
	assert.False(t, got[0].OccurredAt.IsZero())
}

func TestPublish_SubscriptionOrder(t *testing.T) {
	bus := New(nil)

	var order []string
	bus.Subscribe(TopicSessionFinished, func(ctx context.Context, e Event) error {
		order = append(order, "first")
		return nil
	})
	bus.Subscribe(TopicSessionFinished, func(ctx context.Context, e Event) error {
		order = append(order, "second")
		return nil
	})

	bus.Publish(context.Background(), TopicSessionFinished, nil)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestPublish_HandlerErrorDoesNotStopDispatch(t *testing.T) {
	bus := New(nil)

	var reached bool
	bus.Subscribe(TopicLoggedOut, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	bus.Subscribe(TopicLoggedOut, func(ctx context.Context, e Event) error {
		reached = true
		return nil
	})

	bus.Publish(context.Background(), TopicLoggedOut, nil)
	assert.True(t, reached)
}

func TestPublish_NoSubscribers(t *testing.T) {
	bus := New(nil)
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), Topic("nobody.listens"), nil)
	})
}

func TestPublish_TopicIsolation(t *testing.T) {
	bus := New(nil)

	var calls int
	bus.Subscribe(TopicLoggedOut, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	bus.Publish(context.Background(), TopicSessionFinished, nil)
	assert.Equal(t, 0, calls)
}
