package service

import (
	"context"

	"retail-demo/internal/models"
	"retail-demo/internal/notify"
)

func (s *Service) customers() entity[models.Customer] {
	return entity[models.Customer]{
		name:   "customer",
		remote: s.repo.Customers,
		local:  s.repo.Fallback.Customers,
		id:     func(c models.Customer) string { return c.Id },
		setID:  func(c *models.Customer, id string) { c.Id = id },
	}
}

func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, Source, error) {
	recs, src := s.customers().list(ctx)
	return recs, src, nil
}

func (s *Service) GetCustomer(ctx context.Context, id string) (models.Customer, Source, error) {
	return s.customers().get(ctx, id)
}

// AddCustomer stores c and asks the customer function to write it to the
// table store as well.
func (s *Service) AddCustomer(ctx context.Context, c models.Customer) (models.Customer, Written, error) {
	if err := s.validate(c); err != nil {
		return models.Customer{}, Written{}, err
	}
	c.Id = ""
	c, w := s.customers().add(ctx, c)

	s.notify(ctx, &w, notify.CustomerCreate, c.Id, models.CustomerCreated{
		CustomerId:      c.Id,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Username:        c.Username,
		Email:           c.Email,
		ShippingAddress: c.ShippingAddress,
		Action:          models.ActionCreateCustomer,
		Timestamp:       s.now(),
	})
	return c, w, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, c models.Customer) (models.Customer, Written, error) {
	if c.Id == "" {
		return models.Customer{}, Written{}, invalid("id is required")
	}
	if err := s.validate(c); err != nil {
		return models.Customer{}, Written{}, err
	}
	w, err := s.customers().update(ctx, c)
	if err != nil {
		return models.Customer{}, w, err
	}
	return c, w, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) (Written, error) {
	return s.customers().remove(ctx, id), nil
}
