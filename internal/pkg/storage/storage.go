package storage

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// Storage defines the minimal interface for blob storage backends.
type Storage interface {
	// Save stores a file at the given key and returns an error on failure.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes a file by its key. Returns nil if file doesn't exist.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a file given its key.
	GetURL(key string) string

	// KeyFromURL maps a public URL produced by GetURL back to its key.
	KeyFromURL(url string) (string, bool)
}

// Record is anything stored in a collection under a numeric id.
type Record interface {
	RecordID() int64
}

// Ordered records carry a manual sort position.
type Ordered interface {
	Record
	SortOrder() int
}

// Collection is the record side of the storage adapter. Both the flat-file
// store and the Postgres repositories implement it.
type Collection[T Record] interface {
	List(ctx context.Context) ([]*T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
}

// NewID returns a creation-time id in milliseconds.
func NewID(now time.Time) int64 {
	return now.UnixMilli()
}

// SortNewestFirst orders records by id descending.
func SortNewestFirst[T Record](items []*T) {
	slices.SortStableFunc(items, func(a, b *T) int {
		return cmp.Compare((*b).RecordID(), (*a).RecordID())
	})
}

// SortByOrder orders records by their sort position, then newest first.
func SortByOrder[T Ordered](items []*T) {
	slices.SortStableFunc(items, func(a, b *T) int {
		if c := cmp.Compare((*a).SortOrder(), (*b).SortOrder()); c != 0 {
			return c
		}
		return cmp.Compare((*b).RecordID(), (*a).RecordID())
	})
}

// GenerateKey builds a collision-resistant object key:
// <folder>/<unix-ms>-<random><ext>.
func GenerateKey(folder, originalName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%d-%d%s", now.UnixMilli(), rand.Int63n(1_000_000_000), ext)
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// keyFromURL strips a known public prefix from url.
func keyFromURL(prefix, url string) (string, bool) {
	prefix = strings.TrimSuffix(prefix, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}
