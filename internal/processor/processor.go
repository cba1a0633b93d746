package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"retail-demo/internal/models"
	"retail-demo/internal/notify"
	"retail-demo/internal/repository"
	"retail-demo/internal/repository/postgres"
)

var (
	ErrDecode       = errors.New("decode notification")
	ErrUnknownQueue = errors.New("unknown queue")
)

type step struct {
	name  string
	pause time.Duration
}

var (
	imageSteps = []step{
		{"resizing image", 300 * time.Millisecond},
		{"optimizing image quality", 300 * time.Millisecond},
		{"uploading to blob storage", 200 * time.Millisecond},
	}
	orderSteps = []step{
		{"validating inventory levels", 300 * time.Millisecond},
		{"calculating total and taxes", 200 * time.Millisecond},
		{"processing payment transaction", 400 * time.Millisecond},
		{"generating shipping label", 300 * time.Millisecond},
		{"order finalized and ready for shipping", 200 * time.Millisecond},
	}
	contractSteps = []step{
		{"validating file format and size", 400 * time.Millisecond},
		{"extracting metadata and document properties", 300 * time.Millisecond},
		{"scanning for security compliance", 500 * time.Millisecond},
		{"storing in file share", 400 * time.Millisecond},
	}
	paymentProofSteps = []step{
		{"verifying payment proof", 300 * time.Millisecond},
		{"matching proof to order", 200 * time.Millisecond},
	}
)

// Processor consumes notifications and runs the processing function of the
// channel they were published on.
type Processor struct {
	routes    map[string]notify.Channel
	customers repository.CustomerTable
	sleep     func(ctx context.Context, d time.Duration) error
}

type Option func(*Processor)

// WithSleep replaces the pause between steps.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Processor) { p.sleep = fn }
}

func New(queues notify.Queues, customers repository.CustomerTable, opts ...Option) *Processor {
	p := &Processor{
		routes:    make(map[string]notify.Channel, len(queues)),
		customers: customers,
		sleep:     sleepCtx,
	}
	for ch, q := range queues {
		p.routes[q] = ch
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Queues returns the queue names the processor handles.
func (p *Processor) Queues() []string {
	out := make([]string, 0, len(p.routes))
	for _, ch := range notify.Channels {
		for q, c := range p.routes {
			if c == ch {
				out = append(out, q)
			}
		}
	}
	return out
}

func (p *Processor) Handle(ctx context.Context, queue string, body []byte) error {
	ch, ok := p.routes[queue]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQueue, queue)
	}
	log := logrus.WithFields(logrus.Fields{"channel": ch, "queue": queue})
	log.WithField("body", string(body)).Info("notification received")

	switch ch {
	case notify.CustomerCreate:
		var m models.CustomerCreated
		if err := decode(body, &m); err != nil {
			return err
		}
		return p.storeCustomer(ctx, log, m)
	case notify.ImageProcess:
		var m models.ImageUploaded
		if err := decode(body, &m); err != nil {
			return err
		}
		log = log.WithFields(logrus.Fields{"product_id": m.ProductId, "image": m.ImageName})
		return p.run(ctx, log, imageSteps)
	case notify.OrderProcess:
		var m models.OrderPlaced
		if err := decode(body, &m); err != nil {
			return err
		}
		log = log.WithFields(logrus.Fields{"order_id": m.OrderId, "customer_id": m.CustomerId, "amount": m.TotalAmount})
		return p.run(ctx, log, orderSteps)
	case notify.ContractProcess:
		var m models.ContractUploaded
		if err := decode(body, &m); err != nil {
			return err
		}
		log = log.WithFields(logrus.Fields{"file": m.FileName, "type": m.ContractType, "size": m.FileSize, "uploaded_by": m.UploadedBy})
		return p.run(ctx, log, contractSteps)
	case notify.PaymentProof:
		var m models.PaymentProofUploaded
		if err := decode(body, &m); err != nil {
			return err
		}
		log = log.WithFields(logrus.Fields{"blob": m.BlobName, "order_id": m.RelatedOrderId})
		return p.run(ctx, log, paymentProofSteps)
	}
	return fmt.Errorf("%w: %s", ErrUnknownQueue, queue)
}

func (p *Processor) run(ctx context.Context, log *logrus.Entry, steps []step) error {
	for i, s := range steps {
		log.Infof("step %d/%d: %s", i+1, len(steps), s.name)
		if err := p.sleep(ctx, s.pause); err != nil {
			return err
		}
	}
	log.Info("processing completed")
	return nil
}

// storeCustomer writes the customer row when the table does not have it yet.
func (p *Processor) storeCustomer(ctx context.Context, log *logrus.Entry, m models.CustomerCreated) error {
	c := models.Customer{
		Id:              m.CustomerId,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Username:        m.Username,
		Email:           m.Email,
		ShippingAddress: m.ShippingAddress,
	}
	if c.Id == "" {
		c.Id = uuid.NewString()
	}
	log = log.WithFields(logrus.Fields{"customer_id": c.Id, "username": c.Username})

	_, err := p.customers.Get(ctx, c.Id)
	switch {
	case err == nil:
		log.Info("customer already stored")
		return nil
	case errors.Is(err, repository.ErrRemoteUnavailable):
		log.Warn("table store unavailable, customer not written")
		return nil
	case !errors.Is(err, postgres.ErrEntityNotFound):
		return err
	}

	if err = p.customers.Insert(ctx, c); err != nil {
		return err
	}
	log.Info("customer written to table store")
	return nil
}

func decode(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
