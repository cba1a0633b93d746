package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

type Channel string

const (
	CustomerCreate  Channel = "customer-create"
	ImageProcess    Channel = "image-process"
	OrderProcess    Channel = "order-process"
	ContractProcess Channel = "contract-process"
	PaymentProof    Channel = "payment-proof"
)

// Channels lists every channel a Notifier can route.
var Channels = []Channel{CustomerCreate, ImageProcess, OrderProcess, ContractProcess, PaymentProof}

// Queues maps each channel to the broker queue (topic) it is published on.
type Queues map[Channel]string

type Status string

const (
	// StatusAttempted means the transport accepted the message without a
	// broker acknowledgement.
	StatusAttempted Status = "attempted"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

type Delivery struct {
	Channel Channel `json:"channel"`
	Queue   string  `json:"queue"`
	Status  Status  `json:"status"`
	Error   string  `json:"error,omitempty"`
}

func (d Delivery) Failed() bool { return d.Status == StatusFailed }

type Message struct {
	Queue string
	Key   string
	Body  []byte
}

type Transport interface {
	Send(ctx context.Context, msg Message) error
	// Confirmed reports whether a nil error from Send means the broker
	// acknowledged the message.
	Confirmed() bool
}

var notifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "retail_notifications_total",
	Help: "Notifications emitted, by channel and delivery status.",
}, []string{"channel", "status"})

type Notifier struct {
	transport Transport
	queues    Queues
	timeout   time.Duration
}

type Option func(*Notifier)

// WithTimeout bounds a single send.
func WithTimeout(d time.Duration) Option {
	return func(n *Notifier) { n.timeout = d }
}

// New returns a Notifier. A nil transport is allowed: every notification then
// fails without touching a broker.
func New(t Transport, queues Queues, opts ...Option) *Notifier {
	n := &Notifier{transport: t, queues: queues, timeout: 5 * time.Second}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify serializes payload and enqueues it on the channel's queue. Failures
// are logged and reported in the returned Delivery, never retried.
func (n *Notifier) Notify(ctx context.Context, ch Channel, key string, payload interface{}) Delivery {
	d := Delivery{Channel: ch, Queue: n.queues[ch]}
	defer func() { notifications.WithLabelValues(string(ch), string(d.Status)).Inc() }()

	fail := func(msg string, err error) Delivery {
		d.Status = StatusFailed
		d.Error = msg
		entry := logrus.WithFields(logrus.Fields{"channel": ch, "queue": d.Queue, "key": key})
		if err != nil {
			entry = entry.WithError(err)
		}
		entry.Warn("notify: " + msg)
		return d
	}

	if n == nil || n.transport == nil {
		return fail("no transport configured", nil)
	}
	if d.Queue == "" {
		return fail("no queue configured for channel", nil)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fail("marshal payload", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	if err = n.transport.Send(sendCtx, Message{Queue: d.Queue, Key: key, Body: body}); err != nil {
		return fail("send: "+err.Error(), err)
	}

	d.Status = StatusAttempted
	if n.transport.Confirmed() {
		d.Status = StatusDelivered
	}
	logrus.WithFields(logrus.Fields{"channel": ch, "queue": d.Queue, "status": d.Status}).Debug("notification sent")
	return d
}
