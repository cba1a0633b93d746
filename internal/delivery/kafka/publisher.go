package kafka

import (
	"context"
	"time"

	kafka "github.com/segmentio/kafka-go"

	"retail-demo/internal/notify"
)

// Publisher is the kafka notify.Transport. The topic is taken per message, so
// one writer serves every channel.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
	return &Publisher{writer: w}
}

func (p *Publisher) Send(ctx context.Context, msg notify.Message) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: msg.Queue,
		Key:   []byte(msg.Key),
		Value: msg.Body,
	})
}

// Confirmed is true: the writer waits for all in-sync replicas.
func (p *Publisher) Confirmed() bool { return true }

func (p *Publisher) Close() error {
	return p.writer.Close()
}
