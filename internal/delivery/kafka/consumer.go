package kafka

import (
	"context"
	"errors"
	"strconv"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"retail-demo/internal/processor"
)

type Config struct {
	Brokers     []string
	GroupID     string
	Topics      []string
	DLQ         string
	MaxRetries  int
	BaseBackoff time.Duration
}

type MessageHandler interface {
	Handle(ctx context.Context, queue string, body []byte) error
}

type Consumer struct {
	reader  *kafka.Reader
	dlq     *kafka.Writer
	handler MessageHandler
	cfg     Config
	sleep   func(time.Duration)
}

func NewConsumer(cfg Config, h MessageHandler) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		GroupTopics:    cfg.Topics,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        100 * time.Millisecond,
		CommitInterval: 0,
	})

	var w *kafka.Writer
	if cfg.DLQ != "" {
		w = &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.DLQ,
			RequiredAcks:           kafka.RequireAll,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		}
	}

	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 200 * time.Millisecond
	}

	return &Consumer{reader: r, dlq: w, handler: h, cfg: cfg, sleep: time.Sleep}
}

// Subscribe fetches messages until ctx is done. A message is committed after
// it is handled, or after it is written to the dead-letter topic once the
// retries are exhausted.
func (c *Consumer) Subscribe(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			logrus.WithError(err).Error("kafka fetch")
			select {
			case <-time.After(300 * time.Millisecond):
				continue
			case <-ctx.Done():
				return nil
			}
		}

		log := logrus.WithFields(logrus.Fields{
			"topic":     m.Topic,
			"partition": m.Partition,
			"offset":    m.Offset,
			"key":       string(m.Key),
		})
		log.Debug("fetched")

		attempts, last := handleWithRetry(ctx, c.handler, m.Topic, m.Value, c.cfg.MaxRetries, c.cfg.BaseBackoff, c.sleep)
		if last == nil {
			if err := c.reader.CommitMessages(ctx, m); err != nil {
				log.WithError(err).Error("commit failed")
			}
			continue
		}

		if c.dlq != nil {
			if ctx.Err() != nil {
				return nil
			}
			dlqMsg := kafka.Message{
				Key:   m.Key,
				Value: m.Value,
				Headers: append(m.Headers,
					kafka.Header{Key: "x-dlq-reason", Value: []byte(trimErr(last))},
					kafka.Header{Key: "x-dlq-attempts", Value: []byte(strconv.Itoa(attempts))},
					kafka.Header{Key: "x-dlq-ts", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
					kafka.Header{Key: "x-dlq-source-topic", Value: []byte(m.Topic)},
					kafka.Header{Key: "x-dlq-group", Value: []byte(c.cfg.GroupID)},
				),
			}
			if err := deadLetter(ctx, c.dlq, dlqMsg, c.cfg.BaseBackoff, c.sleep, log); err != nil {
				return nil
			}
		} else {
			log.WithError(last).Warn("DLQ disabled, drop message")
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.WithError(err).Error("commit after DLQ failed")
		}
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// deadLetter writes msg to the dead-letter topic, retrying with backoff until
// it is written or ctx is done. The source offset must not be committed
// before this returns nil.
func deadLetter(ctx context.Context, w messageWriter, msg kafka.Message, base time.Duration,
	sleep func(time.Duration), log *logrus.Entry) error {
	for n := 1; ; n++ {
		err := w.WriteMessages(ctx, msg)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.WithError(err).WithField("attempt", n).Error("write to DLQ failed")
		sleep(backoff(n, base))
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	var first error
	if c.reader != nil {
		if err := c.reader.Close(); err != nil {
			first = err
		}
	}
	if c.dlq != nil {
		if err := c.dlq.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// handleWithRetry runs h until it succeeds, fails with a non-retryable error
// or maxRetries retries are spent. It returns the number of attempts made and
// the last error.
func handleWithRetry(ctx context.Context, h MessageHandler, queue string, body []byte,
	maxRetries int, base time.Duration, sleep func(time.Duration)) (int, error) {
	var last error
	attempt := 0
	for ; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			sleep(backoff(attempt, base))
		}
		if ctx.Err() != nil {
			return attempt, ctx.Err()
		}
		last = h.Handle(ctx, queue, body)
		if last == nil {
			return attempt + 1, nil
		}
		if isNonRetryable(last) {
			return attempt + 1, last
		}
	}
	return attempt, last
}

func backoff(n int, base time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}
	d := base * (1 << (n - 1))
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func trimErr(err error) string {
	if err == nil {
		return ""
	}
	s := err.Error()
	if len(s) > 1000 {
		return s[:1000]
	}
	return s
}

func isNonRetryable(err error) bool {
	return errors.Is(err, processor.ErrDecode) || errors.Is(err, processor.ErrUnknownQueue)
}
