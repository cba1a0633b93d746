package postgres

import (
	"context"

	"github.com/jinzhu/gorm"

	"retail-demo/internal/models"
)

type ProductTableRepo struct {
	table *TableClient
}

func NewProductTable(db *gorm.DB, name string) *ProductTableRepo {
	return &ProductTableRepo{table: NewTableClient(db, name, PartitionProduct)}
}

func (r *ProductTableRepo) List(_ context.Context) ([]models.Product, error) {
	var rows []ProductEntity
	if err := r.table.Query(&rows); err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].model())
	}
	return out, nil
}

func (r *ProductTableRepo) Get(_ context.Context, id string) (models.Product, error) {
	var e ProductEntity
	if err := r.table.Get(id, &e); err != nil {
		return models.Product{}, err
	}
	return e.model(), nil
}

func (r *ProductTableRepo) Insert(_ context.Context, p models.Product) error {
	e := ProductEntity{TableEntity: TableEntity{RowKey: p.Id}}
	e.overlay(p)
	return r.table.Add(&e)
}

// Update keeps the stored image reference when p.ImageUrl is empty.
func (r *ProductTableRepo) Update(_ context.Context, p models.Product) error {
	var e ProductEntity
	if err := r.table.Get(p.Id, &e); err != nil {
		return err
	}
	etag := e.ETag
	e.overlay(p)
	return r.table.Replace(&e, etag)
}

func (r *ProductTableRepo) Delete(_ context.Context, id string) error {
	return r.table.Delete(id, &ProductEntity{})
}
