package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"retail-demo/internal/models"
	"retail-demo/internal/notify"
	"retail-demo/internal/repository"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// Source names the store that served a read or accepted a write.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Written describes where a write landed. RemoteErr is the remote failure
// that sent the write to the fallback store, if any.
type Written struct {
	Id            string            `json:"id"`
	Source        Source            `json:"source"`
	RemoteErr     error             `json:"-"`
	Notifications []notify.Delivery `json:"notifications,omitempty"`
}

type Retail interface {
	ListCustomers(ctx context.Context) ([]models.Customer, Source, error)
	GetCustomer(ctx context.Context, id string) (models.Customer, Source, error)
	AddCustomer(ctx context.Context, c models.Customer) (models.Customer, Written, error)
	UpdateCustomer(ctx context.Context, c models.Customer) (models.Customer, Written, error)
	DeleteCustomer(ctx context.Context, id string) (Written, error)

	ListProducts(ctx context.Context) ([]models.Product, Source, error)
	GetProduct(ctx context.Context, id string) (models.Product, Source, error)
	AddProduct(ctx context.Context, p models.Product, img *models.Image) (models.Product, Written, error)
	UpdateProduct(ctx context.Context, p models.Product, img *models.Image) (models.Product, Written, error)
	DeleteProduct(ctx context.Context, id string) (Written, error)

	ListOrders(ctx context.Context) ([]models.Order, Source, error)
	GetOrder(ctx context.Context, id string) (models.Order, Source, error)
	AddOrder(ctx context.Context, o models.Order) (models.Order, Written, error)
	UpdateOrder(ctx context.Context, o models.Order) (models.Order, Written, error)
	DeleteOrder(ctx context.Context, id string) (Written, error)

	ListContracts(ctx context.Context) ([]models.Contract, Source, error)
	GetContract(ctx context.Context, name string) (models.Contract, Source, error)
	UploadContract(ctx context.Context, c models.Contract, fileName string) (models.Contract, Written, error)
	DownloadContract(ctx context.Context, name string) ([]byte, Source, error)
	DeleteContract(ctx context.Context, name string) (Written, error)

	UploadPaymentProof(ctx context.Context, p models.PaymentProof) (string, Written, error)
	DownloadBlob(ctx context.Context, container, name string) ([]byte, string, error)

	Status(ctx context.Context) Status
}

var _ Retail = (*Service)(nil)

type Notifier interface {
	Notify(ctx context.Context, ch notify.Channel, key string, payload interface{}) notify.Delivery
}

type Containers struct {
	ProductImages string
	PaymentProofs string
}

type Service struct {
	repo       *repository.Repository
	notifier   Notifier
	containers Containers
	v          *validator.Validate
	now        func() time.Time
}

func NewService(repo *repository.Repository, n Notifier, containers Containers) *Service {
	if containers.ProductImages == "" {
		containers.ProductImages = "productimages"
	}
	if containers.PaymentProofs == "" {
		containers.PaymentProofs = "paymentproofs"
	}
	return &Service{
		repo:       repo,
		notifier:   n,
		containers: containers,
		v:          validator.New(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) notify(ctx context.Context, w *Written, ch notify.Channel, key string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	w.Notifications = append(w.Notifications, s.notifier.Notify(ctx, ch, key, payload))
}
