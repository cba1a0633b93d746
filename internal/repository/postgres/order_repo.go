package postgres

import (
	"context"

	"github.com/jinzhu/gorm"

	"retail-demo/internal/models"
)

type OrderTableRepo struct {
	table *TableClient
}

func NewOrderTable(db *gorm.DB, name string) *OrderTableRepo {
	return &OrderTableRepo{table: NewTableClient(db, name, PartitionOrder)}
}

func (r *OrderTableRepo) List(_ context.Context) ([]models.Order, error) {
	var rows []OrderEntity
	if err := r.table.Query(&rows); err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].model())
	}
	return out, nil
}

func (r *OrderTableRepo) Get(_ context.Context, id string) (models.Order, error) {
	var e OrderEntity
	if err := r.table.Get(id, &e); err != nil {
		return models.Order{}, err
	}
	return e.model(), nil
}

func (r *OrderTableRepo) Insert(_ context.Context, o models.Order) error {
	e := OrderEntity{TableEntity: TableEntity{RowKey: o.Id}}
	e.overlay(o)
	return r.table.Add(&e)
}

func (r *OrderTableRepo) Update(_ context.Context, o models.Order) error {
	var e OrderEntity
	if err := r.table.Get(o.Id, &e); err != nil {
		return err
	}
	etag := e.ETag
	e.overlay(o)
	return r.table.Replace(&e, etag)
}

func (r *OrderTableRepo) Delete(_ context.Context, id string) error {
	return r.table.Delete(id, &OrderEntity{})
}
