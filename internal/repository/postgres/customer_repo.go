package postgres

import (
	"context"

	"github.com/jinzhu/gorm"

	"retail-demo/internal/models"
)

type CustomerTableRepo struct {
	table *TableClient
}

func NewCustomerTable(db *gorm.DB, name string) *CustomerTableRepo {
	return &CustomerTableRepo{table: NewTableClient(db, name, PartitionCustomer)}
}

func (r *CustomerTableRepo) List(_ context.Context) ([]models.Customer, error) {
	var rows []CustomerEntity
	if err := r.table.Query(&rows); err != nil {
		return nil, err
	}
	out := make([]models.Customer, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].model())
	}
	return out, nil
}

func (r *CustomerTableRepo) Get(_ context.Context, id string) (models.Customer, error) {
	var e CustomerEntity
	if err := r.table.Get(id, &e); err != nil {
		return models.Customer{}, err
	}
	return e.model(), nil
}

func (r *CustomerTableRepo) Insert(_ context.Context, c models.Customer) error {
	e := CustomerEntity{TableEntity: TableEntity{RowKey: c.Id}}
	e.overlay(c)
	return r.table.Add(&e)
}

func (r *CustomerTableRepo) Update(_ context.Context, c models.Customer) error {
	var e CustomerEntity
	if err := r.table.Get(c.Id, &e); err != nil {
		return err
	}
	etag := e.ETag
	e.overlay(c)
	return r.table.Replace(&e, etag)
}

func (r *CustomerTableRepo) Delete(_ context.Context, id string) error {
	return r.table.Delete(id, &CustomerEntity{})
}
