package repository_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"retail-demo/internal/models"
	"retail-demo/internal/repository"
	"retail-demo/internal/repository/fallback"
)

func TestNewRepository_NoRemote_AllPrimitivesUnavailable(t *testing.T) {
	store := fallback.NewStore()
	repo := repository.NewRepository(repository.Remote{}, repository.Names{}, store)
	ctx := context.Background()

	require.Same(t, store, repo.Fallback)

	_, err := repo.Customers.List(ctx)
	require.True(t, errors.Is(err, repository.ErrRemoteUnavailable))
	_, err = repo.Products.Get(ctx, "p1")
	require.True(t, errors.Is(err, repository.ErrRemoteUnavailable))
	err = repo.Orders.Insert(ctx, models.Order{Id: "o1"})
	require.True(t, errors.Is(err, repository.ErrRemoteUnavailable))
	err = repo.Customers.Delete(ctx, "c1")
	require.True(t, errors.Is(err, repository.ErrRemoteUnavailable))

	require.True(t, errors.Is(repo.Tables.Ping(ctx), repository.ErrRemoteUnavailable))

	_, err = repo.Blobs.Upload(ctx, "productimages", "x.png", []byte{1}, "image/png")
	require.True(t, errors.Is(err, repository.ErrRemoteUnavailable))
	require.True(t, errors.Is(repo.Blobs.Ping(ctx), repository.ErrRemoteUnavailable))

	_, err = repo.Contracts.List(ctx)
	require.True(t, errors.Is(err, repository.ErrRemoteUnavailable))
	_, err = repo.Contracts.Download(ctx, "nda.pdf")
	require.True(t, errors.Is(err, repository.ErrRemoteUnavailable))
}
