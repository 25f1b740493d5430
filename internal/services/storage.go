package services

import (
	"context"
	"io"
)

// Storage is a blob backend addressed by slash-separated keys.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	URL(key string) string
}
