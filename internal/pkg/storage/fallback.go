package storage

import (
	"context"

	"github.com/portfolio/portfolio-api/internal/pkg/logger"
)

// Lister is the read side of a collection.
type Lister[T any] interface {
	List(ctx context.Context) ([]*T, error)
}

// ReadFallback lists from the primary collection and falls back to a
// secondary copy when the primary fails or comes back empty. Writes never
// go through it.
type ReadFallback[T any] struct {
	name      string
	primary   Lister[T]
	secondary Lister[T]
}

func NewReadFallback[T any](name string, primary, secondary Lister[T]) *ReadFallback[T] {
	return &ReadFallback[T]{name: name, primary: primary, secondary: secondary}
}

func (f *ReadFallback[T]) List(ctx context.Context) ([]*T, error) {
	items, err := f.primary.List(ctx)
	if err == nil && len(items) > 0 {
		return items, nil
	}

	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("collection", f.name).Msg("primary read failed, using local copy")
	}

	fallback, ferr := f.secondary.List(ctx)
	if ferr != nil {
		if err != nil {
			return nil, err
		}
		// Primary answered (empty); keep its answer.
		return items, nil
	}
	if len(fallback) == 0 && err == nil {
		return items, nil
	}
	return fallback, nil
}
