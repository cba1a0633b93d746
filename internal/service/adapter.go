package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"retail-demo/internal/repository"
	"retail-demo/internal/repository/fallback"
	"retail-demo/internal/repository/postgres"
)

type table[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Insert(ctx context.Context, rec T) error
	Update(ctx context.Context, rec T) error
	Delete(ctx context.Context, id string) error
}

// entity pairs the remote table of one record type with its fallback
// collection. Every remote failure, whatever its cause, sends the operation
// to the fallback collection.
type entity[T any] struct {
	name   string
	remote table[T]
	local  *fallback.Collection[T]
	id     func(T) string
	setID  func(*T, string)
}

func (e entity[T]) fellBack(op, id string, err error) {
	log := logrus.WithFields(logrus.Fields{"entity": e.name, "op": op})
	if id != "" {
		log = log.WithField("id", id)
	}
	log = log.WithError(err)
	if errors.Is(err, repository.ErrRemoteUnavailable) || errors.Is(err, postgres.ErrEntityNotFound) {
		log.Debug("using fallback store")
		return
	}
	log.Warn("remote store failed, using fallback store")
}

// list returns the remote rows, or the fallback contents when the remote
// enumeration fails. The two are never merged.
func (e entity[T]) list(ctx context.Context) ([]T, Source) {
	recs, err := e.remote.List(ctx)
	if err == nil {
		observe(e.name, "list", SourceRemote)
		return recs, SourceRemote
	}
	e.fellBack("list", "", err)
	observe(e.name, "list", SourceFallback)
	return e.local.List(), SourceFallback
}

func (e entity[T]) get(ctx context.Context, id string) (T, Source, error) {
	rec, err := e.remote.Get(ctx, id)
	if err == nil {
		observe(e.name, "get", SourceRemote)
		return rec, SourceRemote, nil
	}
	e.fellBack("get", id, err)
	if rec, ok := e.local.Get(id); ok {
		observe(e.name, "get", SourceFallback)
		return rec, SourceFallback, nil
	}
	var zero T
	return zero, "", fmt.Errorf("%s %s: %w", e.name, id, ErrNotFound)
}

// add writes rec remotely, assigning a fresh id when it has none. The record
// is written to the fallback collection on both paths, so it can be read back
// even after the remote store goes away.
func (e entity[T]) add(ctx context.Context, rec T) (T, Written) {
	if e.id(rec) == "" {
		e.setID(&rec, uuid.NewString())
	}
	if err := e.remote.Insert(ctx, rec); err != nil {
		return e.addLocal(rec, err)
	}
	e.local.Add(rec)
	observe(e.name, "add", SourceRemote)
	return rec, Written{Id: e.id(rec), Source: SourceRemote}
}

// addLocal writes rec to the fallback collection only, after remoteErr
// ruled out the remote path.
func (e entity[T]) addLocal(rec T, remoteErr error) (T, Written) {
	if e.id(rec) == "" {
		e.setID(&rec, uuid.NewString())
	}
	e.fellBack("add", e.id(rec), remoteErr)
	rec = e.local.Add(rec)
	observe(e.name, "add", SourceFallback)
	return rec, Written{Id: e.id(rec), Source: SourceFallback, RemoteErr: remoteErr}
}

// update replaces rec remotely and mirrors it into the fallback collection
// when present there. It fails with ErrNotFound only when neither store has
// the record.
func (e entity[T]) update(ctx context.Context, rec T) (Written, error) {
	w := Written{Id: e.id(rec), Source: SourceRemote}
	err := e.remote.Update(ctx, rec)
	if err == nil {
		e.local.Update(rec)
		observe(e.name, "update", SourceRemote)
		return w, nil
	}
	return e.updateLocal(rec, err)
}

func (e entity[T]) updateLocal(rec T, remoteErr error) (Written, error) {
	w := Written{Id: e.id(rec), Source: SourceFallback, RemoteErr: remoteErr}
	e.fellBack("update", w.Id, remoteErr)
	if !e.local.Update(rec) {
		return w, fmt.Errorf("%s %s: %w", e.name, w.Id, ErrNotFound)
	}
	observe(e.name, "update", SourceFallback)
	return w, nil
}

// remove deletes remotely on a best-effort basis, then always from the
// fallback collection. Deleting an unknown id is not an error.
func (e entity[T]) remove(ctx context.Context, id string) Written {
	w := Written{Id: id, Source: SourceRemote}
	if err := e.remote.Delete(ctx, id); err != nil {
		e.fellBack("delete", id, err)
		w.Source, w.RemoteErr = SourceFallback, err
	}
	e.local.Delete(id)
	observe(e.name, "delete", w.Source)
	return w
}
