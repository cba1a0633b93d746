package service_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"retail-demo/internal/models"
	"retail-demo/internal/notify"
	"retail-demo/internal/repository"
	"retail-demo/internal/repository/fallback"
	"retail-demo/internal/repository/fileshare"
	"retail-demo/internal/repository/postgres"
	blobs "retail-demo/internal/repository/redis"
	svc "retail-demo/internal/service"
)

type tableStub[T any] struct {
	mu    sync.Mutex
	rows  map[string]T
	order []string
	id    func(T) string
	err   error
}

func newTable[T any](id func(T) string) *tableStub[T] {
	return &tableStub[T]{rows: map[string]T{}, id: id}
}

func (s *tableStub[T]) List(context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.rows[id])
	}
	return out, nil
}

func (s *tableStub[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if s.err != nil {
		return zero, s.err
	}
	rec, ok := s.rows[id]
	if !ok {
		return zero, postgres.ErrEntityNotFound
	}
	return rec, nil
}

func (s *tableStub[T]) Insert(_ context.Context, rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	id := s.id(rec)
	if _, ok := s.rows[id]; ok {
		return fmt.Errorf("duplicate %s", id)
	}
	s.rows[id] = rec
	s.order = append(s.order, id)
	return nil
}

func (s *tableStub[T]) Update(_ context.Context, rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	id := s.id(rec)
	if _, ok := s.rows[id]; !ok {
		return postgres.ErrEntityNotFound
	}
	s.rows[id] = rec
	return nil
}

func (s *tableStub[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return postgres.ErrEntityNotFound
	}
	delete(s.rows, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *tableStub[T]) Ping(context.Context) error { return s.err }

type blob struct {
	data        []byte
	contentType string
}

type blobStub struct {
	blobs map[string]blob
	err   error
}

func (b *blobStub) Upload(_ context.Context, container, name string, data []byte, ct string) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	b.blobs[container+"/"+name] = blob{data: data, contentType: ct}
	return "http://test/blobs/" + container + "/" + name, nil
}

func (b *blobStub) Download(_ context.Context, container, name string) ([]byte, string, error) {
	if b.err != nil {
		return nil, "", b.err
	}
	v, ok := b.blobs[container+"/"+name]
	if !ok {
		return nil, "", blobs.ErrBlobNotFound
	}
	return v.data, v.contentType, nil
}

func (b *blobStub) Delete(_ context.Context, container, name string) error {
	if b.err != nil {
		return b.err
	}
	delete(b.blobs, container+"/"+name)
	return nil
}

func (b *blobStub) Ping(context.Context) error { return b.err }

type shareStub struct {
	files map[string][]byte
	info  map[string]fileshare.FileInfo
	err   error
	clock time.Time
}

func (s *shareStub) Upload(_ context.Context, name string, data []byte) (fileshare.FileInfo, error) {
	if s.err != nil {
		return fileshare.FileInfo{}, s.err
	}
	s.clock = s.clock.Add(time.Minute)
	fi := fileshare.FileInfo{Name: name, ContentLength: int64(len(data)), LastModified: s.clock}
	s.files[name] = data
	s.info[name] = fi
	return fi, nil
}

func (s *shareStub) List(context.Context) ([]fileshare.FileInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]fileshare.FileInfo, 0, len(s.info))
	for _, fi := range s.info {
		out = append(out, fi)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastModified.After(out[j].LastModified) })
	return out, nil
}

func (s *shareStub) Properties(_ context.Context, name string) (fileshare.FileInfo, error) {
	if s.err != nil {
		return fileshare.FileInfo{}, s.err
	}
	fi, ok := s.info[name]
	if !ok {
		return fileshare.FileInfo{}, fileshare.ErrFileNotFound
	}
	return fi, nil
}

func (s *shareStub) Download(_ context.Context, name string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	data, ok := s.files[name]
	if !ok {
		return nil, fileshare.ErrFileNotFound
	}
	return data, nil
}

func (s *shareStub) Delete(_ context.Context, name string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.files[name]; !ok {
		return fileshare.ErrFileNotFound
	}
	delete(s.files, name)
	delete(s.info, name)
	return nil
}

func (s *shareStub) Ping(context.Context) error { return s.err }

type notifierStub struct {
	mu   sync.Mutex
	sent []sentNote
}

type sentNote struct {
	ch      notify.Channel
	key     string
	payload interface{}
}

func (n *notifierStub) Notify(_ context.Context, ch notify.Channel, key string, payload interface{}) notify.Delivery {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNote{ch: ch, key: key, payload: payload})
	return notify.Delivery{Channel: ch, Queue: string(ch), Status: notify.StatusDelivered}
}

func (n *notifierStub) channels() []notify.Channel {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notify.Channel, 0, len(n.sent))
	for _, s := range n.sent {
		out = append(out, s.ch)
	}
	return out
}

type env struct {
	svc       *svc.Service
	customers *tableStub[models.Customer]
	products  *tableStub[models.Product]
	orders    *tableStub[models.Order]
	blobs     *blobStub
	share     *shareStub
	store     *fallback.Store
	notes     *notifierStub
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		customers: newTable(func(c models.Customer) string { return c.Id }),
		products:  newTable(func(p models.Product) string { return p.Id }),
		orders:    newTable(func(o models.Order) string { return o.Id }),
		blobs:     &blobStub{blobs: map[string]blob{}},
		share: &shareStub{
			files: map[string][]byte{},
			info:  map[string]fileshare.FileInfo{},
			clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		store: fallback.NewStore(),
		notes: &notifierStub{},
	}
	repo := &repository.Repository{
		Customers: e.customers,
		Products:  e.products,
		Orders:    e.orders,
		Tables:    e.customers,
		Blobs:     e.blobs,
		Contracts: e.share,
		Fallback:  e.store,
	}
	e.svc = svc.NewService(repo, e.notes, svc.Containers{})
	return e
}

// offline simulates every remote store being unreachable.
func (e *env) offline() {
	e.customers.err = repository.ErrRemoteUnavailable
	e.products.err = repository.ErrRemoteUnavailable
	e.orders.err = repository.ErrRemoteUnavailable
	e.blobs.err = repository.ErrRemoteUnavailable
	e.share.err = repository.ErrRemoteUnavailable
}

func newOfflineService() (*svc.Service, *fallback.Store) {
	store := fallback.NewStore()
	repo := repository.NewRepository(repository.Remote{}, repository.Names{}, store)
	return svc.NewService(repo, nil, svc.Containers{}), store
}

func customer() models.Customer {
	return models.Customer{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Username:        "ada",
		Email:           "ada@example.com",
		ShippingAddress: "12 St James's Square",
	}
}

func product() models.Product {
	return models.Product{ProductName: "Lamp", Description: "Desk lamp", Price: 99.99, StockAvailable: 5}
}

func TestAddCustomer_Remote_MirroredAndNotified(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	in := customer()
	in.Id = "client-chosen"
	c, w, err := e.svc.AddCustomer(ctx, in)
	require.NoError(t, err)
	require.Equal(t, svc.SourceRemote, w.Source)
	require.NotEmpty(t, c.Id)
	require.NotEqual(t, "client-chosen", c.Id)
	require.Equal(t, c.Id, w.Id)
	require.NoError(t, w.RemoteErr)

	mirrored, ok := e.store.Customers.Get(c.Id)
	require.True(t, ok)
	require.Equal(t, c, mirrored)

	got, src, err := e.svc.GetCustomer(ctx, c.Id)
	require.NoError(t, err)
	require.Equal(t, svc.SourceRemote, src)
	require.Equal(t, c, got)

	require.Len(t, w.Notifications, 1)
	require.Equal(t, notify.CustomerCreate, w.Notifications[0].Channel)
	payload := e.notes.sent[0].payload.(models.CustomerCreated)
	require.Equal(t, c.Id, payload.CustomerId)
	require.Equal(t, models.ActionCreateCustomer, payload.Action)
	require.Equal(t, time.UTC, payload.Timestamp.Location())
}

func TestAddCustomer_Invalid(t *testing.T) {
	e := newEnv(t)

	c := customer()
	c.Email = "not-an-email"
	_, _, err := e.svc.AddCustomer(context.Background(), c)
	require.ErrorIs(t, err, svc.ErrValidation)
	require.Contains(t, err.Error(), "Email")
	require.Zero(t, e.store.Customers.Len())
	require.Empty(t, e.notes.sent)
}

func TestAddCustomer_RemoteFails_FallbackAndWarn(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	e := newEnv(t)
	e.customers.err = errors.New("403 forbidden")

	c, w, err := e.svc.AddCustomer(context.Background(), customer())
	require.NoError(t, err)
	require.Equal(t, svc.SourceFallback, w.Source)
	require.EqualError(t, w.RemoteErr, "403 forbidden")

	got, src, err := e.svc.GetCustomer(context.Background(), c.Id)
	require.NoError(t, err)
	require.Equal(t, svc.SourceFallback, src)
	require.Equal(t, c, got)

	found := false
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel && entry.Data["entity"] == "customer" && entry.Data["op"] == "add" {
			found = true
		}
	}
	require.True(t, found, "expected warn log for remote failure")
}

func TestOffline_FallbackServesEverything(t *testing.T) {
	s, store := newOfflineService()
	ctx := context.Background()

	a, w, err := s.AddCustomer(ctx, customer())
	require.NoError(t, err)
	require.Equal(t, svc.SourceFallback, w.Source)
	require.ErrorIs(t, w.RemoteErr, repository.ErrRemoteUnavailable)

	b := customer()
	b.Username = "grace"
	b, _, err = s.AddCustomer(ctx, b)
	require.NoError(t, err)

	list, src, err := s.ListCustomers(ctx)
	require.NoError(t, err)
	require.Equal(t, svc.SourceFallback, src)
	require.Equal(t, store.Customers.List(), list)
	require.Len(t, list, 2)

	a.ShippingAddress = "Somewhere else"
	_, w, err = s.UpdateCustomer(ctx, a)
	require.NoError(t, err)
	require.Equal(t, svc.SourceFallback, w.Source)
	got, _, err := s.GetCustomer(ctx, a.Id)
	require.NoError(t, err)
	require.Equal(t, "Somewhere else", got.ShippingAddress)

	_, err = s.DeleteCustomer(ctx, b.Id)
	require.NoError(t, err)
	_, _, err = s.GetCustomer(ctx, b.Id)
	require.ErrorIs(t, err, svc.ErrNotFound)
	require.Equal(t, 1, store.Customers.Len())
}

func TestOffline_ConcurrentAdds_UniqueIds(t *testing.T) {
	s, store := newOfflineService()
	const n = 200

	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := customer()
			c.Username = fmt.Sprintf("user%d", i)
			out, _, err := s.AddCustomer(context.Background(), c)
			if err == nil {
				ids <- out.Id
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	require.Len(t, seen, n)
	require.Equal(t, n, store.Customers.Len())
}

func TestUpdate_AbsentInBoth_NotFound(t *testing.T) {
	e := newEnv(t)

	c := customer()
	c.Id = "missing"
	_, w, err := e.svc.UpdateCustomer(context.Background(), c)
	require.ErrorIs(t, err, svc.ErrNotFound)
	require.Equal(t, svc.SourceFallback, w.Source)
}

func TestUpdate_MissingId_Validation(t *testing.T) {
	e := newEnv(t)

	_, _, err := e.svc.UpdateCustomer(context.Background(), customer())
	require.ErrorIs(t, err, svc.ErrValidation)
}

func TestUpdate_Remote_MirrorsIntoFallback(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	c, _, err := e.svc.AddCustomer(ctx, customer())
	require.NoError(t, err)

	c.LastName = "King"
	_, w, err := e.svc.UpdateCustomer(ctx, c)
	require.NoError(t, err)
	require.Equal(t, svc.SourceRemote, w.Source)

	mirrored, _ := e.store.Customers.Get(c.Id)
	require.Equal(t, "King", mirrored.LastName)
}

func TestDelete_ThenGet_NotFoundInBoth(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	c, _, err := e.svc.AddCustomer(ctx, customer())
	require.NoError(t, err)

	w, err := e.svc.DeleteCustomer(ctx, c.Id)
	require.NoError(t, err)
	require.Equal(t, svc.SourceRemote, w.Source)

	_, _, err = e.svc.GetCustomer(ctx, c.Id)
	require.ErrorIs(t, err, svc.ErrNotFound)
	_, ok := e.store.Customers.Get(c.Id)
	require.False(t, ok)

	// idempotent
	_, err = e.svc.DeleteCustomer(ctx, c.Id)
	require.NoError(t, err)
}

func TestList_RemoteAndFallbackNeverMerged(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.customers.err = errors.New("timeout")
	_, _, err := e.svc.AddCustomer(ctx, customer())
	require.NoError(t, err)
	e.customers.err = nil

	list, src, err := e.svc.ListCustomers(ctx)
	require.NoError(t, err)
	require.Equal(t, svc.SourceRemote, src)
	require.Empty(t, list)
}

func TestAddOrder_Example(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	o, w, err := e.svc.AddOrder(ctx, models.Order{CustomerId: "C1", ProductId: "P1", Quantity: 2, TotalAmount: 199.98})
	require.NoError(t, err)
	require.NotEmpty(t, o.Id)

	list, _, err := e.svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	require.Equal(t, o.Id, got.Id)
	require.Equal(t, "C1", got.CustomerId)
	require.Equal(t, "P1", got.ProductId)
	require.Equal(t, 2, got.Quantity)
	require.Equal(t, 199.98, got.TotalAmount)
	require.Equal(t, models.OrderStatusProcessing, got.Status)
	require.WithinDuration(t, time.Now(), got.OrderDate, time.Minute)

	require.Equal(t, []notify.Channel{notify.OrderProcess}, e.notes.channels())
	require.Len(t, w.Notifications, 1)
}

func TestAddOrder_Offline_StillNotifies(t *testing.T) {
	e := newEnv(t)
	e.offline()

	_, w, err := e.svc.AddOrder(context.Background(), models.Order{CustomerId: "C1", ProductId: "P1", Quantity: 1, TotalAmount: 10})
	require.NoError(t, err)
	require.Equal(t, svc.SourceFallback, w.Source)
	require.Equal(t, []notify.Channel{notify.OrderProcess}, e.notes.channels())
}

func TestAddOrder_TotalFromProduct(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p, _, err := e.svc.AddProduct(ctx, product(), nil)
	require.NoError(t, err)

	o, _, err := e.svc.AddOrder(ctx, models.Order{CustomerId: "C1", ProductId: p.Id, Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, 299.97, o.TotalAmount)
}

func TestAddOrder_Invalid(t *testing.T) {
	e := newEnv(t)

	_, _, err := e.svc.AddOrder(context.Background(), models.Order{CustomerId: "C1", Quantity: 0})
	require.ErrorIs(t, err, svc.ErrValidation)
	require.Empty(t, e.notes.sent)
}

func TestUpdateOrder_KeepsDateAndStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	o, _, err := e.svc.AddOrder(ctx, models.Order{CustomerId: "C1", ProductId: "P1", Quantity: 1, TotalAmount: 5})
	require.NoError(t, err)

	upd := models.Order{Id: o.Id, CustomerId: "C1", ProductId: "P1", Quantity: 4, TotalAmount: 20}
	got, w, err := e.svc.UpdateOrder(ctx, upd)
	require.NoError(t, err)
	require.Equal(t, svc.SourceRemote, w.Source)
	require.Equal(t, o.OrderDate, got.OrderDate)
	require.Equal(t, models.OrderStatusProcessing, got.Status)
	require.Equal(t, 4, got.Quantity)
}

func TestAddProduct_WithImage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	img := &models.Image{FileName: "lamp.png", ContentType: "image/png", Data: []byte{1, 2, 3}}
	p, w, err := e.svc.AddProduct(ctx, product(), img)
	require.NoError(t, err)
	require.Equal(t, svc.SourceRemote, w.Source)
	require.Equal(t, "http://test/blobs/productimages/"+p.Id+"_lamp.png", p.ImageUrl)
	require.Contains(t, e.blobs.blobs, "productimages/"+p.Id+"_lamp.png")

	require.Equal(t, []notify.Channel{notify.ImageProcess}, e.notes.channels())
	payload := e.notes.sent[0].payload.(models.ImageUploaded)
	require.Equal(t, p.Id+"_lamp.png", payload.ImageName)
	require.Equal(t, "lamp.png", payload.OriginalFileName)

	_, err = e.svc.DeleteProduct(ctx, p.Id)
	require.NoError(t, err)
	require.Empty(t, e.blobs.blobs)
	_, _, err = e.svc.GetProduct(ctx, p.Id)
	require.ErrorIs(t, err, svc.ErrNotFound)
}

func TestAddProduct_ImageUploadFails_Fallback(t *testing.T) {
	e := newEnv(t)
	e.blobs.err = errors.New("blob down")

	img := &models.Image{FileName: "lamp.png", Data: []byte{1}}
	p, w, err := e.svc.AddProduct(context.Background(), product(), img)
	require.NoError(t, err)
	require.Equal(t, svc.SourceFallback, w.Source)
	require.Empty(t, p.ImageUrl)
	require.Empty(t, e.products.rows)
	require.Empty(t, e.notes.sent)

	_, ok := e.store.Products.Get(p.Id)
	require.True(t, ok)
}

func TestAddProduct_TableFails_ImageStillNotified(t *testing.T) {
	e := newEnv(t)
	e.products.err = errors.New("table down")

	img := &models.Image{FileName: "lamp.png", Data: []byte{1}}
	p, w, err := e.svc.AddProduct(context.Background(), product(), img)
	require.NoError(t, err)
	require.Equal(t, svc.SourceFallback, w.Source)
	require.NotEmpty(t, p.ImageUrl)
	require.Equal(t, []notify.Channel{notify.ImageProcess}, e.notes.channels())
}

func TestDeleteProduct_FallbackRowRemovesImage(t *testing.T) {
	e := newEnv(t)
	e.products.err = errors.New("table down")
	ctx := context.Background()

	p, w, err := e.svc.AddProduct(ctx, product(), &models.Image{FileName: "lamp.png", Data: []byte{1}})
	require.NoError(t, err)
	require.Equal(t, svc.SourceFallback, w.Source)
	require.Len(t, e.blobs.blobs, 1)

	_, err = e.svc.DeleteProduct(ctx, p.Id)
	require.NoError(t, err)
	require.Empty(t, e.blobs.blobs)
	_, ok := e.store.Products.Get(p.Id)
	require.False(t, ok)
}

func TestUpdateProduct_KeepsImage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p, _, err := e.svc.AddProduct(ctx, product(), &models.Image{FileName: "lamp.png", Data: []byte{1}})
	require.NoError(t, err)

	upd := product()
	upd.Id = p.Id
	upd.Price = 79.5
	got, _, err := e.svc.UpdateProduct(ctx, upd, nil)
	require.NoError(t, err)
	require.Equal(t, p.ImageUrl, got.ImageUrl)
	require.Equal(t, 79.5, e.products.rows[p.Id].Price)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	e := newEnv(t)

	upd := product()
	upd.Id = "nope"
	_, _, err := e.svc.UpdateProduct(context.Background(), upd, &models.Image{FileName: "x.png", Data: []byte{1}})
	require.ErrorIs(t, err, svc.ErrNotFound)
	require.Empty(t, e.blobs.blobs)
}

func TestUploadContract(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	c, w, err := e.svc.UploadContract(ctx, models.Contract{ContractName: "Acme_Supplier_Agreement", Content: []byte("pdf")}, "scan.pdf")
	require.NoError(t, err)
	require.Equal(t, svc.SourceRemote, w.Source)
	require.Equal(t, "Acme_Supplier_Agreement.pdf", c.ContractName)
	require.Equal(t, "Acme_Supplier_Agreement.pdf", w.Id)
	require.Equal(t, w.Id, c.Id)
	require.Equal(t, models.ContractTypeSupplier, c.ContractType)
	require.Equal(t, int64(3), c.FileSize)
	require.Equal(t, models.ContractStatusActive, c.Status)

	require.Equal(t, []notify.Channel{notify.ContractProcess}, e.notes.channels())
	payload := e.notes.sent[0].payload.(models.ContractUploaded)
	require.Equal(t, "System", payload.UploadedBy)
	require.Equal(t, int64(3), payload.FileSize)

	_, ok := e.store.Contracts.FindByName("Acme_Supplier_Agreement.pdf")
	require.True(t, ok)
}

func TestUploadContract_EmptyFile(t *testing.T) {
	e := newEnv(t)

	_, _, err := e.svc.UploadContract(context.Background(), models.Contract{ContractName: "x"}, "x.pdf")
	require.ErrorIs(t, err, svc.ErrValidation)
}

func TestListContracts_InfersTypeNewestFirst(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, _, err := e.svc.UploadContract(ctx, models.Contract{Content: []byte("a")}, "readme.pdf")
	require.NoError(t, err)
	_, _, err = e.svc.UploadContract(ctx, models.Contract{Content: []byte("b")}, "vendor_terms.pdf")
	require.NoError(t, err)

	list, src, err := e.svc.ListContracts(ctx)
	require.NoError(t, err)
	require.Equal(t, svc.SourceRemote, src)
	require.Len(t, list, 2)
	require.Equal(t, "vendor_terms.pdf", list[0].ContractName)
	require.Equal(t, models.ContractTypeSupplier, list[0].ContractType)
	require.Equal(t, models.ContractTypeGeneral, list[1].ContractType)
	require.Equal(t, "Contract file: readme.pdf", list[1].Description)
}

func TestContracts_Offline(t *testing.T) {
	e := newEnv(t)
	e.offline()
	ctx := context.Background()

	_, _, err := e.svc.UploadContract(ctx, models.Contract{Content: []byte("draft")}, "nda_acme.pdf")
	require.NoError(t, err)
	c, w, err := e.svc.UploadContract(ctx, models.Contract{Content: []byte("secret")}, "nda_acme.pdf")
	require.NoError(t, err)
	require.Equal(t, svc.SourceFallback, w.Source)
	require.Equal(t, "nda_acme.pdf", w.Id)
	require.Equal(t, models.ContractTypeNDA, c.ContractType)

	list, src, err := e.svc.ListContracts(ctx)
	require.NoError(t, err)
	require.Equal(t, svc.SourceFallback, src)
	require.Len(t, list, 1)

	data, src, err := e.svc.DownloadContract(ctx, w.Id)
	require.NoError(t, err)
	require.Equal(t, svc.SourceFallback, src)
	require.Equal(t, []byte("secret"), data)

	_, err = e.svc.DeleteContract(ctx, "nda_acme.pdf")
	require.NoError(t, err)
	_, _, err = e.svc.GetContract(ctx, "nda_acme.pdf")
	require.ErrorIs(t, err, svc.ErrNotFound)
}

func TestDownloadContract_Remote(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, _, err := e.svc.UploadContract(ctx, models.Contract{Content: []byte("terms")}, "sla.pdf")
	require.NoError(t, err)

	data, src, err := e.svc.DownloadContract(ctx, "sla.pdf")
	require.NoError(t, err)
	require.Equal(t, svc.SourceRemote, src)
	require.Equal(t, []byte("terms"), data)

	_, _, err = e.svc.DownloadContract(ctx, "missing.pdf")
	require.ErrorIs(t, err, svc.ErrNotFound)
}

func TestUploadPaymentProof(t *testing.T) {
	e := newEnv(t)

	url, w, err := e.svc.UploadPaymentProof(context.Background(), models.PaymentProof{
		FileName: "receipt.pdf", Content: []byte("%PDF"), RelatedOrderId: "o1", CustomerName: "Ada",
	})
	require.NoError(t, err)
	require.Regexp(t, `^http://test/blobs/paymentproofs/proof_[0-9a-f-]{36}\.pdf$`, url)
	require.Equal(t, svc.SourceRemote, w.Source)
	require.Equal(t, []notify.Channel{notify.PaymentProof}, e.notes.channels())

	data, ct, err := e.svc.DownloadBlob(context.Background(), "paymentproofs", w.Id)
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF"), data)
	require.Equal(t, "application/pdf", ct)
}

func TestUploadPaymentProof_ErrorsSurface(t *testing.T) {
	e := newEnv(t)
	e.blobs.err = errors.New("blob down")

	_, _, err := e.svc.UploadPaymentProof(context.Background(), models.PaymentProof{FileName: "r.pdf", Content: []byte{1}})
	require.Error(t, err)
	require.Empty(t, e.notes.sent)

	_, _, err = e.svc.UploadPaymentProof(context.Background(), models.PaymentProof{FileName: "r.pdf"})
	require.ErrorIs(t, err, svc.ErrValidation)
}

func TestDownloadBlob_UnknownContainerOrBlob(t *testing.T) {
	e := newEnv(t)

	_, _, err := e.svc.DownloadBlob(context.Background(), "secrets", "x")
	require.ErrorIs(t, err, svc.ErrNotFound)

	_, _, err = e.svc.DownloadBlob(context.Background(), "productimages", "x")
	require.ErrorIs(t, err, svc.ErrNotFound)
}

func TestStatus_Offline(t *testing.T) {
	s, _ := newOfflineService()
	_, _, err := s.AddCustomer(context.Background(), customer())
	require.NoError(t, err)

	st := s.Status(context.Background())
	require.Len(t, st.Stores, 3)
	for _, ss := range st.Stores {
		require.False(t, ss.Available, ss.Name)
		require.NotEmpty(t, ss.Error)
	}
	require.Equal(t, 1, st.Fallback.Customers)
}

func TestStatus_Online(t *testing.T) {
	e := newEnv(t)

	st := e.svc.Status(context.Background())
	for _, ss := range st.Stores {
		require.True(t, ss.Available, ss.Name)
	}
}
