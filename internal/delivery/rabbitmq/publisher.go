package rabbitmq

import (
	"context"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"retail-demo/internal/notify"
)

func (p *Publisher) Send(ctx context.Context, msg notify.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared[msg.Queue] {
		if err := p.declare(msg.Queue); err != nil {
			return err
		}
		p.declared[msg.Queue] = true
	}

	err := p.ch.PublishWithContext(ctx,
		"",        // exchange
		msg.Queue, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    msg.Key,
			Body:         msg.Body,
			Timestamp:    time.Now().UTC(),
		})
	return errors.Wrapf(err, "publish to %s", msg.Queue)
}

// Confirmed is false: the channel is not in confirm mode.
func (p *Publisher) Confirmed() bool { return false }
