package fileshare

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

var ErrFileNotFound = errors.New("file not found")

type FileInfo struct {
	Name          string
	ContentLength int64
	LastModified  time.Time
}

// Share is one directory of a hierarchical file share. Files are stored as
// rows keyed by (share, directory, name).
type Share struct {
	pool      *pgxpool.Pool
	share     string
	directory string
	now       func() time.Time
}

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "pgxpool.New")
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping file share")
	}
	return pool, nil
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS share_files (
	share          TEXT        NOT NULL,
	directory      TEXT        NOT NULL,
	name           TEXT        NOT NULL,
	content        BYTEA       NOT NULL,
	content_length BIGINT      NOT NULL,
	last_modified  TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (share, directory, name)
)`)
	return errors.Wrap(err, "create share_files")
}

func NewShare(pool *pgxpool.Pool, share, directory string) *Share {
	return &Share{
		pool:      pool,
		share:     share,
		directory: directory,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Upload creates the file or overwrites its content.
func (s *Share) Upload(ctx context.Context, name string, data []byte) (FileInfo, error) {
	info := FileInfo{Name: name, ContentLength: int64(len(data)), LastModified: s.now()}
	_, err := s.pool.Exec(ctx, `
INSERT INTO share_files (share, directory, name, content, content_length, last_modified)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (share, directory, name)
DO UPDATE SET content = EXCLUDED.content,
              content_length = EXCLUDED.content_length,
              last_modified = EXCLUDED.last_modified`,
		s.share, s.directory, name, data, info.ContentLength, info.LastModified)
	if err != nil {
		return FileInfo{}, errors.Wrapf(err, "upload %s", name)
	}
	return info, nil
}

// List returns the files of the directory, newest first.
func (s *Share) List(ctx context.Context) ([]FileInfo, error) {
	rows, err := s.pool.Query(ctx, `
SELECT name, content_length, last_modified
FROM share_files
WHERE share = $1 AND directory = $2
ORDER BY last_modified DESC, name`, s.share, s.directory)
	if err != nil {
		return nil, errors.Wrap(err, "list share files")
	}
	defer rows.Close()

	var files []FileInfo
	for rows.Next() {
		var f FileInfo
		if err = rows.Scan(&f.Name, &f.ContentLength, &f.LastModified); err != nil {
			return nil, errors.Wrap(err, "scan share file")
		}
		files = append(files, f)
	}
	return files, errors.Wrap(rows.Err(), "iterate share files")
}

func (s *Share) Properties(ctx context.Context, name string) (FileInfo, error) {
	f := FileInfo{Name: name}
	err := s.pool.QueryRow(ctx, `
SELECT content_length, last_modified
FROM share_files
WHERE share = $1 AND directory = $2 AND name = $3`, s.share, s.directory, name).
		Scan(&f.ContentLength, &f.LastModified)
	if errors.Is(err, pgx.ErrNoRows) {
		return FileInfo{}, errors.Wrapf(ErrFileNotFound, "%s", name)
	}
	if err != nil {
		return FileInfo{}, errors.Wrapf(err, "properties %s", name)
	}
	return f, nil
}

func (s *Share) Download(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `
SELECT content
FROM share_files
WHERE share = $1 AND directory = $2 AND name = $3`, s.share, s.directory, name).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(ErrFileNotFound, "%s", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "download %s", name)
	}
	return data, nil
}

func (s *Share) Delete(ctx context.Context, name string) error {
	tag, err := s.pool.Exec(ctx, `
DELETE FROM share_files
WHERE share = $1 AND directory = $2 AND name = $3`, s.share, s.directory, name)
	if err != nil {
		return errors.Wrapf(err, "delete %s", name)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(ErrFileNotFound, "%s", name)
	}
	return nil
}

func (s *Share) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
