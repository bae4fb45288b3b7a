package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

func TestPublishMessage_Fake(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ch := &fakeChannel{}
		err := PublishMessage(ch, "grolo.audit", "user.promoted", "id-1", map[string]string{"target": "bob"})
		require.NoError(t, err)

		assert.Equal(t, "grolo.audit", ch.exchange)
		assert.Equal(t, "user.promoted", ch.key)
		assert.Equal(t, "application/json", ch.msg.ContentType)
		assert.Equal(t, "id-1", ch.msg.MessageId)
		assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)

		var got map[string]string
		require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
		assert.Equal(t, "bob", got["target"])
	})

	t.Run("publish error", func(t *testing.T) {
		ch := &fakeChannel{err: errors.New("channel closed")}
		err := PublishMessage(ch, "grolo.audit", "user.promoted", "id-2", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
	})

	t.Run("marshal error", func(t *testing.T) {
		// В json marshal нельзя сериализовать канал
		badMsg := struct {
			Ch chan int `json:"ch"`
		}{Ch: make(chan int)}

		err := PublishMessage(&fakeChannel{}, "", "q", "id-3", badMsg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
	})
}

func TestGetAuditQueues(t *testing.T) {
	queues := GetAuditQueues()
	require.NotEmpty(t, queues)

	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
		assert.NotEmpty(t, q.RoutingKey)
	}
}
