package repository

import (
	"context"

	"retail-demo/internal/models"
	"retail-demo/internal/repository/fallback"
	"retail-demo/internal/repository/fileshare"
	"retail-demo/internal/repository/postgres"
	blobs "retail-demo/internal/repository/redis"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

// ErrRemoteUnavailable is returned by every remote primitive when the remote
// store was not configured or could not be reached at startup.
var ErrRemoteUnavailable = errors.New("remote store unavailable")

type CustomerTable interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id string) (models.Customer, error)
	Insert(ctx context.Context, c models.Customer) error
	Update(ctx context.Context, c models.Customer) error
	Delete(ctx context.Context, id string) error
}

type ProductTable interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	Insert(ctx context.Context, p models.Product) error
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
}

type OrderTable interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (models.Order, error)
	Insert(ctx context.Context, o models.Order) error
	Update(ctx context.Context, o models.Order) error
	Delete(ctx context.Context, id string) error
}

type BlobStore interface {
	Upload(ctx context.Context, container, name string, data []byte, contentType string) (string, error)
	Download(ctx context.Context, container, name string) ([]byte, string, error)
	Delete(ctx context.Context, container, name string) error
	Ping(ctx context.Context) error
}

type FileShare interface {
	Upload(ctx context.Context, name string, data []byte) (fileshare.FileInfo, error)
	List(ctx context.Context) ([]fileshare.FileInfo, error)
	Properties(ctx context.Context, name string) (fileshare.FileInfo, error)
	Download(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
	Ping(ctx context.Context) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Repository struct {
	Customers CustomerTable
	Products  ProductTable
	Orders    OrderTable
	Tables    Pinger
	Blobs     BlobStore
	Contracts FileShare
	Fallback  *fallback.Store
}

// Remote holds the connections to the remote stores. A nil connection
// selects the offline implementation of the primitives built on it.
type Remote struct {
	DB    *gorm.DB
	Files *pgxpool.Pool
	Redis *redis.Client
}

type Names struct {
	Tables    postgres.Tables
	Share     string
	Directory string
	BaseURL   string
}

func NewRepository(remote Remote, names Names, store *fallback.Store) *Repository {
	r := &Repository{
		Customers: offlineTable[models.Customer]{},
		Products:  offlineTable[models.Product]{},
		Orders:    offlineTable[models.Order]{},
		Tables:    offlinePinger{},
		Blobs:     offlineBlobs{},
		Contracts: offlineShare{},
		Fallback:  store,
	}
	if remote.DB != nil {
		r.Customers = postgres.NewCustomerTable(remote.DB, names.Tables.Customers)
		r.Products = postgres.NewProductTable(remote.DB, names.Tables.Products)
		r.Orders = postgres.NewOrderTable(remote.DB, names.Tables.Orders)
		r.Tables = dbPinger{db: remote.DB}
	}
	if remote.Redis != nil {
		r.Blobs = blobs.NewBlobStore(remote.Redis, names.BaseURL)
	}
	if remote.Files != nil {
		r.Contracts = fileshare.NewShare(remote.Files, names.Share, names.Directory)
	}
	return r
}

type dbPinger struct {
	db *gorm.DB
}

func (p dbPinger) Ping(ctx context.Context) error {
	return p.db.DB().PingContext(ctx)
}

type offlineTable[T any] struct{}

func (offlineTable[T]) List(context.Context) ([]T, error) { return nil, ErrRemoteUnavailable }

func (offlineTable[T]) Get(context.Context, string) (T, error) {
	var zero T
	return zero, ErrRemoteUnavailable
}

func (offlineTable[T]) Insert(context.Context, T) error { return ErrRemoteUnavailable }
func (offlineTable[T]) Update(context.Context, T) error { return ErrRemoteUnavailable }
func (offlineTable[T]) Delete(context.Context, string) error { return ErrRemoteUnavailable }

type offlinePinger struct{}

func (offlinePinger) Ping(context.Context) error { return ErrRemoteUnavailable }

type offlineBlobs struct{ offlinePinger }

func (offlineBlobs) Upload(context.Context, string, string, []byte, string) (string, error) {
	return "", ErrRemoteUnavailable
}

func (offlineBlobs) Download(context.Context, string, string) ([]byte, string, error) {
	return nil, "", ErrRemoteUnavailable
}

func (offlineBlobs) Delete(context.Context, string, string) error { return ErrRemoteUnavailable }

type offlineShare struct{ offlinePinger }

func (offlineShare) Upload(context.Context, string, []byte) (fileshare.FileInfo, error) {
	return fileshare.FileInfo{}, ErrRemoteUnavailable
}

func (offlineShare) List(context.Context) ([]fileshare.FileInfo, error) {
	return nil, ErrRemoteUnavailable
}

func (offlineShare) Properties(context.Context, string) (fileshare.FileInfo, error) {
	return fileshare.FileInfo{}, ErrRemoteUnavailable
}

func (offlineShare) Download(context.Context, string) ([]byte, error) {
	return nil, ErrRemoteUnavailable
}

func (offlineShare) Delete(context.Context, string) error { return ErrRemoteUnavailable }
