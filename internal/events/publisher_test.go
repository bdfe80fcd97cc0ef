package events_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hirepipe/hirepipe/internal/events"
)

func TestNewPublisher_RequiresClient(t *testing.T) {
	pub := events.NewPublisher(nil, nil)
	assert.Nil(t, pub)
}

func TestPublisher_NilReceiverIsNoOp(t *testing.T) {
	var pub *events.Publisher

	err := pub.Publish(context.Background(), events.Event{
		EventType: events.JobCreated,
		RecordID:  "job-1",
	})
	assert.NoError(t, err)

	// must not panic
	pub.PublishAsync(events.Event{EventType: events.JobUpdated})
}
