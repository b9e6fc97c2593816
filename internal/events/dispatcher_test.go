package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_InvokesSubscribersInOrder(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var order []string
	dispatcher.Subscribe(EventTicketCreated, func(ctx context.Context, event Event) error {
		order = append(order, "first")
		return nil
	})
	dispatcher.Subscribe(EventTicketCreated, func(ctx context.Context, event Event) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated}))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestPublish_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	delivered := false
	dispatcher.Subscribe(EventTicketDeleted, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventTicketDeleted, func(ctx context.Context, event Event) error {
		delivered = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTicketDeleted}))
	assert.True(t, delivered)
}

func TestPublish_NoSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	assert.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTicketAssigned}))
}
