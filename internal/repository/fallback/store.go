package fallback

import (
	"strings"

	"github.com/google/uuid"

	"retail-demo/internal/models"
)

// Collection holds one entity type. All methods are safe for concurrent use.
type Collection[T any] struct {
	kv    *shardedKV
	id    func(T) string
	setID func(*T, string)
}

func newCollection[T any](id func(T) string, setID func(*T, string), opts ...Option) *Collection[T] {
	return &Collection[T]{kv: newShardedKV(opts...), id: id, setID: setID}
}

// Add stores rec, assigning a fresh id when rec has none, and returns the
// stored record. A record whose id is already present replaces the old one.
func (c *Collection[T]) Add(rec T) T {
	if c.id(rec) == "" {
		for {
			c.setID(&rec, uuid.NewString())
			if c.kv.putIfAbsent(c.id(rec), rec) {
				return rec
			}
		}
	}
	c.kv.put(c.id(rec), rec)
	return rec
}

func (c *Collection[T]) Get(id string) (T, bool) {
	v, ok := c.kv.get(id)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Update replaces the record with the same id. It reports false and stores
// nothing when the id is unknown.
func (c *Collection[T]) Update(rec T) bool {
	id := c.id(rec)
	if id == "" {
		return false
	}
	return c.kv.replace(id, rec)
}

// Delete removes id and reports whether it was present. Deleting an unknown
// id is a no-op.
func (c *Collection[T]) Delete(id string) bool {
	return c.kv.delete(id)
}

func (c *Collection[T]) List() []T {
	vals := c.kv.values()
	out := make([]T, 0, len(vals))
	for _, v := range vals {
		out = append(out, v.(T))
	}
	return out
}

func (c *Collection[T]) Len() int {
	return c.kv.len()
}

// Store is the in-process stand-in for the remote stores. It is never
// reconciled with them.
type Store struct {
	Customers *Collection[models.Customer]
	Products  *Collection[models.Product]
	Orders    *Collection[models.Order]
	Contracts *ContractCollection
}

type ContractCollection struct {
	*Collection[models.Contract]
}

// FindByName returns the most recently written contract with the given name
// (case-insensitive).
func (c *ContractCollection) FindByName(name string) (models.Contract, bool) {
	var (
		found models.Contract
		ok    bool
	)
	for _, ct := range c.List() {
		if strings.EqualFold(ct.ContractName, name) {
			found, ok = ct, true
		}
	}
	return found, ok
}

// DeleteByName removes every contract with the given id or name.
func (c *ContractCollection) DeleteByName(name string) bool {
	removed := c.Delete(name)
	for _, ct := range c.List() {
		if strings.EqualFold(ct.ContractName, name) {
			removed = c.Delete(ct.Id) || removed
		}
	}
	return removed
}

func NewStore(opts ...Option) *Store {
	return &Store{
		Customers: newCollection(
			func(c models.Customer) string { return c.Id },
			func(c *models.Customer, id string) { c.Id = id },
			opts...,
		),
		Products: newCollection(
			func(p models.Product) string { return p.Id },
			func(p *models.Product, id string) { p.Id = id },
			opts...,
		),
		Orders: newCollection(
			func(o models.Order) string { return o.Id },
			func(o *models.Order, id string) { o.Id = id },
			opts...,
		),
		Contracts: &ContractCollection{newCollection(
			func(c models.Contract) string { return c.Id },
			func(c *models.Contract, id string) { c.Id = id },
			opts...,
		)},
	}
}
