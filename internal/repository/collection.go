package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/storage"
)

// Keys under which the collection snapshots live in the store.
const (
	KeyStudents      = "students"
	KeyAssignments   = "assignments"
	KeySubmissions   = "assignmentSubmissions"
	KeyNotifications = "assignmentNotifications"
	KeyCurrentUser   = "currentUser"
)

// ErrNotFound is returned when a record is not present in its collection.
var ErrNotFound = errors.New("record not found")

// collection reads and writes one whole-collection snapshot. There is no locking: a
// load/modify/save cycle racing with another one loses whichever save lands first.
type collection[T any] struct {
	store  storage.Store
	key    string
	logger zerolog.Logger
}

func newCollection[T any](store storage.Store, key string, logger zerolog.Logger) collection[T] {
	return collection[T]{store: store, key: key, logger: logger}
}

// load returns the stored items. A missing or unreadable snapshot is an empty collection.
func (c collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.Warn().Err(err).Str("key", c.key).Msg("discarding unreadable collection snapshot")
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

func (c collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}

	if err := c.store.Set(ctx, c.key, payload); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}

	return nil
}

func (c collection[T]) clear(ctx context.Context) error {
	if err := c.store.Remove(ctx, c.key); err != nil {
		return fmt.Errorf("clear %s: %w", c.key, err)
	}
	return nil
}
