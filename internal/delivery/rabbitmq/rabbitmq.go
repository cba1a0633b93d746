package rabbitmq

import (
	"sync"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Config struct {
	URL string
	// DeadLetterExchange, when set, is attached to every declared queue so
	// rejected messages are dead-lettered instead of dropped.
	DeadLetterExchange string
	Prefetch           int
}

type conn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	cfg  Config
}

func dial(cfg Config) (*conn, error) {
	c, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "amqp dial")
	}
	ch, err := c.Channel()
	if err != nil {
		_ = c.Close()
		return nil, errors.Wrap(err, "amqp channel")
	}
	return &conn{conn: c, ch: ch, cfg: cfg}, nil
}

func (c *conn) declare(queues ...string) error {
	var args amqp.Table
	if c.cfg.DeadLetterExchange != "" {
		args = amqp.Table{"x-dead-letter-exchange": c.cfg.DeadLetterExchange}
	}
	for _, q := range queues {
		if _, err := c.ch.QueueDeclare(
			q,     // name
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			args,
		); err != nil {
			return errors.Wrapf(err, "declare queue %s", q)
		}
	}
	return nil
}

func (c *conn) Close() error {
	var first error
	if c.ch != nil {
		first = c.ch.Close()
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Publisher is the amqp notify.Transport. Messages go through the default
// exchange, routed by queue name.
type Publisher struct {
	*conn
	mu       sync.Mutex
	declared map[string]bool
}

func NewPublisher(cfg Config) (*Publisher, error) {
	c, err := dial(cfg)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: c, declared: make(map[string]bool)}, nil
}
