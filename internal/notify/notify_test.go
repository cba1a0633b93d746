package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"retail-demo/internal/models"
	"retail-demo/internal/notify"
)

type transportStub struct {
	mu        sync.Mutex
	sent      []notify.Message
	err       error
	confirmed bool
}

func (s *transportStub) Send(_ context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *transportStub) Confirmed() bool { return s.confirmed }

var queues = notify.Queues{
	notify.CustomerCreate:  "customer-table-queue",
	notify.ImageProcess:    "image-blob-queue",
	notify.OrderProcess:    "order-queue",
	notify.ContractProcess: "contract-file-queue",
}

func TestNotify_Delivered(t *testing.T) {
	tr := &transportStub{confirmed: true}
	n := notify.New(tr, queues)

	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	d := n.Notify(context.Background(), notify.OrderProcess, "o1", models.OrderPlaced{
		OrderId: "o1", CustomerId: "C1", ProductId: "P1", Quantity: 2, TotalAmount: 199.98,
		Action: models.ActionProcessOrder, Timestamp: ts,
	})

	require.Equal(t, notify.StatusDelivered, d.Status)
	require.Equal(t, "order-queue", d.Queue)
	require.Empty(t, d.Error)
	require.Len(t, tr.sent, 1)
	require.Equal(t, "order-queue", tr.sent[0].Queue)
	require.Equal(t, "o1", tr.sent[0].Key)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(tr.sent[0].Body, &body))
	require.Equal(t, "ProcessOrder", body["Action"])
	require.Equal(t, "2024-05-01T10:00:00Z", body["Timestamp"])
	require.Equal(t, "C1", body["CustomerId"])
}

func TestNotify_UnconfirmedTransport_Attempted(t *testing.T) {
	n := notify.New(&transportStub{}, queues)

	d := n.Notify(context.Background(), notify.CustomerCreate, "c1", map[string]string{"Action": "CreateCustomer"})
	require.Equal(t, notify.StatusAttempted, d.Status)
	require.False(t, d.Failed())
}

func TestNotify_SendError_FailedAndLogged(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	n := notify.New(&transportStub{err: errors.New("broker down")}, queues)
	d := n.Notify(context.Background(), notify.ImageProcess, "p1", map[string]string{})

	require.True(t, d.Failed())
	require.Contains(t, d.Error, "broker down")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.WarnLevel, entry.Level)
	require.Equal(t, notify.ImageProcess, entry.Data["channel"])
}

func TestNotify_NoTransport_Failed(t *testing.T) {
	n := notify.New(nil, queues)
	d := n.Notify(context.Background(), notify.ContractProcess, "nda.pdf", map[string]string{})

	require.Equal(t, notify.StatusFailed, d.Status)
	require.Equal(t, "contract-file-queue", d.Queue)
}

func TestNotify_UnroutedChannel_Failed(t *testing.T) {
	tr := &transportStub{confirmed: true}
	n := notify.New(tr, queues)

	d := n.Notify(context.Background(), notify.PaymentProof, "proof_1.pdf", map[string]string{})
	require.True(t, d.Failed())
	require.Empty(t, tr.sent)
}

func TestNotify_UnmarshalablePayload_Failed(t *testing.T) {
	tr := &transportStub{confirmed: true}
	n := notify.New(tr, queues)

	d := n.Notify(context.Background(), notify.OrderProcess, "o1", map[string]interface{}{"bad": make(chan int)})
	require.True(t, d.Failed())
	require.Empty(t, tr.sent)
}
