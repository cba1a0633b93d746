package rabbitmq

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// ErrDeliveriesClosed reports a delivery stream closed while the consumer
// was still running, usually a dropped connection.
var ErrDeliveriesClosed = errors.New("delivery stream closed")

type MessageHandler interface {
	Handle(ctx context.Context, queue string, body []byte) error
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type Consumer struct {
	*conn
	queues  []string
	handler MessageHandler
}

func NewConsumer(cfg Config, queues []string, h MessageHandler) (*Consumer, error) {
	c, err := dial(cfg)
	if err != nil {
		return nil, err
	}
	if err = c.declare(queues...); err != nil {
		_ = c.Close()
		return nil, err
	}
	if cfg.Prefetch > 0 {
		if err = c.ch.Qos(cfg.Prefetch, 0, false); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	return &Consumer{conn: c, queues: queues, handler: h}, nil
}

// Subscribe consumes every queue until ctx is done. Handled messages are
// acked; failed ones are rejected without requeue. It fails with
// ErrDeliveriesClosed when the broker closes a delivery stream first.
func (c *Consumer) Subscribe(ctx context.Context) error {
	streams := make(map[string]<-chan amqp.Delivery, len(c.queues))
	for _, q := range c.queues {
		deliveries, err := c.ch.Consume(
			q,     // queue
			"",    // consumer
			false, // auto-ack
			false, // exclusive
			false, // no-local
			false, // no-wait
			nil,   // args
		)
		if err != nil {
			return errors.Wrapf(err, "consume %s", q)
		}
		streams[q] = deliveries
	}
	return consume(ctx, c.handler, streams)
}

// consume runs one worker per stream. The first stream to close stops the
// others.
func consume(ctx context.Context, h MessageHandler, streams map[string]<-chan amqp.Delivery) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg     sync.WaitGroup
		once   sync.Once
		closed string
	)
	for q, deliveries := range streams {
		wg.Add(1)
		go func(queue string, deliveries <-chan amqp.Delivery) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-deliveries:
					if !ok {
						once.Do(func() { closed = queue })
						cancel()
						return
					}
					dispatch(ctx, h, queue, d.Body, d)
				}
			}
		}(q, deliveries)
	}
	wg.Wait()

	if closed != "" {
		logrus.WithField("queue", closed).Error("delivery stream closed by broker")
		return errors.Wrapf(ErrDeliveriesClosed, "queue %s", closed)
	}
	return nil
}

func dispatch(ctx context.Context, h MessageHandler, queue string, body []byte, ack acknowledger) {
	log := logrus.WithField("queue", queue)
	if err := h.Handle(ctx, queue, body); err != nil {
		log.WithError(err).Error("handle message")
		if err = ack.Nack(false, false); err != nil {
			log.WithError(err).Error("nack")
		}
		return
	}
	if err := ack.Ack(false); err != nil {
		log.WithError(err).Error("ack")
	}
}
