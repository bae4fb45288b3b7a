package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
}

func (f *fakeChannel) Publish(_, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestNew(t *testing.T) {
	e := New(UserPromoted, "alice", "bob", map[string]any{"role": "admin"})

	_, err := uuid.Parse(e.ID)
	require.NoError(t, err)
	assert.Equal(t, UserPromoted, e.Type)
	assert.Equal(t, "alice", e.Actor)
	assert.Equal(t, "bob", e.Target)
	assert.False(t, e.OccurredAt.IsZero())
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := NewAMQPPublisher(ch, "grolo.audit")
	e := New(SubscriptionExtended, "alice", "bob", map[string]any{"days": 7})

	require.NoError(t, p.Publish(context.Background(), e))
	require.Len(t, ch.published, 1)
	assert.Equal(t, "subscription.extended", ch.keys[0])
	assert.Equal(t, e.ID, ch.published[0].MessageId)

	var got Event
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &got))
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, "bob", got.Target)
}

func TestAMQPPublisher_CanceledContext(t *testing.T) {
	ch := &fakeChannel{}
	p := NewAMQPPublisher(ch, "grolo.audit")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Publish(ctx, New(BetExecuted, "alice", "", nil))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ch.published)
}

func TestEmit_SwallowsError(t *testing.T) {
	p := NewAMQPPublisher(&fakeChannel{err: errors.New("broker down")}, "grolo.audit")
	assert.NotPanics(t, func() {
		Emit(context.Background(), newNoopLogger(), p, New(UserDemoted, "alice", "bob", nil))
	})
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), New(ConfigUpdated, "a", "", nil)))
}
