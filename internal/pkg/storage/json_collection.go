package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONCollection keeps one collection as a JSON array in a single file.
// A missing file is an empty collection. Every write rewrites the whole
// file through a temp file and rename.
type JSONCollection[T Record] struct {
	path string
	mu   sync.Mutex
}

// NewJSONCollection stores the collection at <dir>/<name>.json
func NewJSONCollection[T Record](dir, name string) *JSONCollection[T] {
	return &JSONCollection[T]{path: filepath.Join(dir, name+".json")}
}

// Path returns the backing file path
func (c *JSONCollection[T]) Path() string {
	return c.path
}

func (c *JSONCollection[T]) List(ctx context.Context) ([]*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *JSONCollection[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return nil, err
	}
	if i := indexOf(items, id); i >= 0 {
		return items[i], nil
	}
	return nil, ErrNotFound
}

func (c *JSONCollection[T]) Create(ctx context.Context, item *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	if indexOf(items, (*item).RecordID()) >= 0 {
		return ErrConflict
	}
	return c.save(append(items, item))
}

func (c *JSONCollection[T]) Update(ctx context.Context, item *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	i := indexOf(items, (*item).RecordID())
	if i < 0 {
		return ErrNotFound
	}
	items[i] = item
	return c.save(items)
}

func (c *JSONCollection[T]) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	i := indexOf(items, id)
	if i < 0 {
		return ErrNotFound
	}
	return c.save(append(items[:i], items[i+1:]...))
}

// Modify applies fn to the record with the given id and persists the result
// under a single lock.
func (c *JSONCollection[T]) Modify(ctx context.Context, id int64, fn func(*T) error) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return nil, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	if err := fn(items[i]); err != nil {
		return nil, err
	}
	if err := c.save(items); err != nil {
		return nil, err
	}
	return items[i], nil
}

// ReplaceAll swaps the whole collection and returns what was there before.
func (c *JSONCollection[T]) ReplaceAll(ctx context.Context, items []*T) ([]*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	previous, err := c.load()
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*T{}
	}
	if err := c.save(items); err != nil {
		return nil, err
	}
	return previous, nil
}

func (c *JSONCollection[T]) load() ([]*T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", c.path, err)
	}
	if len(data) == 0 {
		return []*T{}, nil
	}

	var items []*T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.path, err)
	}
	if items == nil {
		items = []*T{}
	}
	return items, nil
}

func (c *JSONCollection[T]) save(items []*T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", c.path, err)
	}
	return nil
}

func indexOf[T Record](items []*T, id int64) int {
	for i, item := range items {
		if (*item).RecordID() == id {
			return i
		}
	}
	return -1
}
