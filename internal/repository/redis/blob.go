package redis

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

var ErrBlobNotFound = errors.New("blob not found")

const (
	fieldData        = "data"
	fieldContentType = "content_type"
)

// BlobStore keeps blobs as redis hashes keyed by container and name. Blobs
// are addressed publicly as {baseURL}/blobs/{container}/{name}.
type BlobStore struct {
	rdb     *redis.Client
	baseURL string
}

func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewBlobStore(rdb *redis.Client, baseURL string) *BlobStore {
	return &BlobStore{rdb: rdb, baseURL: strings.TrimRight(baseURL, "/")}
}

func blobKey(container, name string) string {
	return fmt.Sprintf("blob:%s:%s", container, name)
}

// URL returns the public address of a blob.
func (b *BlobStore) URL(container, name string) string {
	return fmt.Sprintf("%s/blobs/%s/%s", b.baseURL, url.PathEscape(container), url.PathEscape(name))
}

// Upload stores data under container/name, overwriting any existing blob, and
// returns the blob URL.
func (b *BlobStore) Upload(ctx context.Context, container, name string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	err := b.rdb.HSet(ctx, blobKey(container, name),
		fieldData, data,
		fieldContentType, contentType,
	).Err()
	if err != nil {
		return "", errors.Wrapf(err, "upload blob %s/%s", container, name)
	}
	return b.URL(container, name), nil
}

// Download returns the blob content and its content type.
func (b *BlobStore) Download(ctx context.Context, container, name string) ([]byte, string, error) {
	vals, err := b.rdb.HGetAll(ctx, blobKey(container, name)).Result()
	if err != nil {
		return nil, "", errors.Wrapf(err, "download blob %s/%s", container, name)
	}
	data, ok := vals[fieldData]
	if !ok {
		return nil, "", errors.Wrapf(ErrBlobNotFound, "%s/%s", container, name)
	}
	return []byte(data), vals[fieldContentType], nil
}

// Delete removes a blob if it exists.
func (b *BlobStore) Delete(ctx context.Context, container, name string) error {
	if err := b.rdb.Del(ctx, blobKey(container, name)).Err(); err != nil {
		return errors.Wrapf(err, "delete blob %s/%s", container, name)
	}
	return nil
}

func (b *BlobStore) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

// BlobName extracts the blob name from a URL produced by URL.
func BlobName(blobURL string) (string, error) {
	u, err := url.Parse(blobURL)
	if err != nil {
		return "", errors.Wrap(err, "parse blob url")
	}
	escaped := u.EscapedPath()
	idx := strings.LastIndex(escaped, "/")
	name, err := url.PathUnescape(escaped[idx+1:])
	if err != nil {
		return "", errors.Wrap(err, "unescape blob name")
	}
	if name == "" {
		return "", errors.Errorf("no blob name in %q", blobURL)
	}
	return name, nil
}
