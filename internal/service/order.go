package service

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"retail-demo/internal/models"
	"retail-demo/internal/notify"
)

func (s *Service) orders() entity[models.Order] {
	return entity[models.Order]{
		name:   "order",
		remote: s.repo.Orders,
		local:  s.repo.Fallback.Orders,
		id:     func(o models.Order) string { return o.Id },
		setID:  func(o *models.Order, id string) { o.Id = id },
	}
}

func (s *Service) ListOrders(ctx context.Context) ([]models.Order, Source, error) {
	recs, src := s.orders().list(ctx)
	return recs, src, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (models.Order, Source, error) {
	return s.orders().get(ctx, id)
}

// AddOrder fills the order date, status and total when they are missing and
// triggers the order function whichever store took the write.
func (s *Service) AddOrder(ctx context.Context, o models.Order) (models.Order, Written, error) {
	o.Id = ""
	if o.OrderDate.IsZero() {
		o.OrderDate = s.now()
	}
	o.OrderDate = o.OrderDate.UTC()
	if o.Status == "" {
		o.Status = models.OrderStatusProcessing
	}
	if err := s.validate(o); err != nil {
		return models.Order{}, Written{}, err
	}
	if o.TotalAmount == 0 && o.ProductId != "" {
		o.TotalAmount = s.orderTotal(ctx, o)
	}

	o, w := s.orders().add(ctx, o)

	s.notify(ctx, &w, notify.OrderProcess, o.Id, models.OrderPlaced{
		OrderId:     o.Id,
		CustomerId:  o.CustomerId,
		ProductId:   o.ProductId,
		Quantity:    o.Quantity,
		TotalAmount: o.TotalAmount,
		Action:      models.ActionProcessOrder,
		Timestamp:   s.now(),
	})
	return o, w, nil
}

// UpdateOrder keeps the stored order date and status when o leaves them
// empty.
func (s *Service) UpdateOrder(ctx context.Context, o models.Order) (models.Order, Written, error) {
	if o.Id == "" {
		return models.Order{}, Written{}, invalid("id is required")
	}
	if err := s.validate(o); err != nil {
		return models.Order{}, Written{}, err
	}
	existing, _, err := s.orders().get(ctx, o.Id)
	if err != nil {
		return models.Order{}, Written{}, err
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = existing.OrderDate
	}
	o.OrderDate = o.OrderDate.UTC()
	if o.Status == "" {
		o.Status = existing.Status
	}

	w, err := s.orders().update(ctx, o)
	if err != nil {
		return models.Order{}, w, err
	}
	return o, w, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id string) (Written, error) {
	return s.orders().remove(ctx, id), nil
}

// orderTotal prices the order from the product, or returns 0 when the
// product cannot be read from either store.
func (s *Service) orderTotal(ctx context.Context, o models.Order) float64 {
	p, _, err := s.products().get(ctx, o.ProductId)
	if err != nil {
		logrus.WithError(err).WithField("product_id", o.ProductId).Debug("order total not computed")
		return 0
	}
	return math.Round(p.Price*float64(o.Quantity)*100) / 100
}
