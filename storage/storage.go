// Package storage persists uploaded document bytes and hands back a location
// the portals can resolve.
package storage

import (
	"context"
	"io"
)

// Object describes a blob after it has been written
type Object struct {
	Key   string
	URL   string
	Bytes int64
}

// BlobStore contains the methods every blob backend implements
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (Object, error)
	Delete(ctx context.Context, key string) error
}
