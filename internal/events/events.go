// Package events публикует события аудита административных действий,
// подтверждённых бэкендом.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/grolo-gateway/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/grolo-gateway/internal/lib/sl"
)

// Type тип события, он же ключ маршрутизации.
type Type string

const (
	SubscriptionActivated   Type = "subscription.activated"
	SubscriptionDeactivated Type = "subscription.deactivated"
	SubscriptionExtended    Type = "subscription.extended"
	UserPromoted            Type = "user.promoted"
	UserDemoted             Type = "user.demoted"
	ConfigUpdated           Type = "config.updated"
	AutoExecutionToggled    Type = "config.auto_execution"
	BetExecuted             Type = "bet.executed"
)

// Event событие аудита.
type Event struct {
	ID         string         `json:"id"`
	Type       Type           `json:"type"`
	Actor      string         `json:"actor"`
	Target     string         `json:"target,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// New создаёт событие с новым идентификатором и текущим временем.
func New(t Type, actor, target string, payload map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		Actor:      actor,
		Target:     target,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher публикует события аудита.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// AMQPPublisher публикует события в topic-обменник RabbitMQ.
type AMQPPublisher struct {
	ch       rabbitmq.Channel
	exchange string
}

// NewAMQPPublisher создаёт публикатор поверх открытого канала.
func NewAMQPPublisher(ch rabbitmq.Channel, exchange string) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, exchange: exchange}
}

// Publish публикует событие с ключом маршрутизации, равным его типу.
func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return rabbitmq.PublishMessage(p.ch, p.exchange, string(event.Type), event.ID, event)
}

// NopPublisher отбрасывает события. Используется, когда брокер не настроен.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Emit публикует событие и логирует неудачу. Ошибка публикации не должна
// отменять уже подтверждённое бэкендом действие.
func Emit(ctx context.Context, log *slog.Logger, p Publisher, event Event) {
	if err := p.Publish(ctx, event); err != nil {
		log.Warn("failed to publish audit event",
			slog.String("type", string(event.Type)),
			slog.String("event_id", event.ID),
			sl.Err(err),
		)
	}
}
