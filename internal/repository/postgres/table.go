package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

var (
	ErrEntityNotFound     = errors.New("entity not found")
	ErrPreconditionFailed = errors.New("etag mismatch")
)

// TableEntity carries the addressing and concurrency columns shared by every
// row: a fixed partition per entity type, the entity id as row key, the last
// write time and an opaque etag that changes on every write.
type TableEntity struct {
	PartitionKey string    `gorm:"column:partition_key;primary_key;type:varchar(64)"`
	RowKey       string    `gorm:"column:row_key;primary_key;type:varchar(64)"`
	Timestamp    time.Time `gorm:"column:modified_at"`
	ETag         string    `gorm:"column:e_tag;type:varchar(64)"`
}

func (e *TableEntity) tableEntity() *TableEntity { return e }

type Entity interface {
	tableEntity() *TableEntity
	// Attributes returns the entity columns written on replace.
	Attributes() map[string]interface{}
}

// TableClient addresses one partition of one table.
type TableClient struct {
	db        *gorm.DB
	name      string
	partition string
	now       func() time.Time
}

func NewTableClient(db *gorm.DB, name, partition string) *TableClient {
	return &TableClient{
		db:        db,
		name:      name,
		partition: partition,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (t *TableClient) scope() *gorm.DB {
	return t.db.Table(t.name).Where("partition_key = ?", t.partition)
}

// Query loads every row of the partition into out, a pointer to a slice.
func (t *TableClient) Query(out interface{}) error {
	if err := t.scope().Order("modified_at").Find(out).Error; err != nil {
		return errors.Wrapf(err, "query %s", t.name)
	}
	return nil
}

func (t *TableClient) Get(rowKey string, out Entity) error {
	err := t.scope().Where("row_key = ?", rowKey).First(out).Error
	if gorm.IsRecordNotFoundError(err) {
		return errors.Wrapf(ErrEntityNotFound, "%s/%s/%s", t.name, t.partition, rowKey)
	}
	if err != nil {
		return errors.Wrapf(err, "get %s/%s", t.name, rowKey)
	}
	return nil
}

// Add inserts a new row. Inserting an existing row key fails.
func (t *TableClient) Add(e Entity) error {
	te := e.tableEntity()
	if te.RowKey == "" {
		return errors.New("row key is required")
	}
	te.PartitionKey = t.partition
	te.Timestamp = t.now()
	te.ETag = uuid.NewString()

	if err := t.db.Table(t.name).Create(e).Error; err != nil {
		return errors.Wrapf(err, "add %s/%s", t.name, te.RowKey)
	}
	return nil
}

// Replace overwrites every attribute of the row, provided its etag still
// equals etag. On success e carries the new etag.
func (t *TableClient) Replace(e Entity, etag string) error {
	te := e.tableEntity()
	now, next := t.now(), uuid.NewString()

	attrs := e.Attributes()
	attrs["modified_at"] = now
	attrs["e_tag"] = next

	res := t.scope().
		Where("row_key = ? AND e_tag = ?", te.RowKey, etag).
		Updates(attrs)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "replace %s/%s", t.name, te.RowKey)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrPreconditionFailed, "replace %s/%s", t.name, te.RowKey)
	}
	te.Timestamp, te.ETag = now, next
	return nil
}

// Delete removes a row. A missing row is reported as ErrEntityNotFound.
func (t *TableClient) Delete(rowKey string, model Entity) error {
	res := t.scope().Where("row_key = ?", rowKey).Delete(model)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete %s/%s", t.name, rowKey)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrEntityNotFound, "%s/%s/%s", t.name, t.partition, rowKey)
	}
	return nil
}
