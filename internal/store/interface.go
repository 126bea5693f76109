package store

import (
	"context"
	"errors"
)

//go:generate go run go.uber.org/mock/mockgen -source=interface.go -destination=../mocks/mock_gateway.go -package=mocks

// ErrKeyNotFound is returned when a key or hash field is absent.
var ErrKeyNotFound = errors.New("key not found")

// Gateway is the persistence contract used by the registry and the
// history ring. Values are opaque strings (JSON documents).
type Gateway interface {
	// HashSet sets one field of a hash.
	HashSet(ctx context.Context, key, field, value string) error

	// HashGet returns one field of a hash, or ErrKeyNotFound.
	HashGet(ctx context.Context, key, field string) (string, error)

	// HashExists reports whether a hash field is present.
	HashExists(ctx context.Context, key, field string) (bool, error)

	// HashGetAll returns every field of a hash. A missing hash is empty.
	HashGetAll(ctx context.Context, key string) (map[string]string, error)

	// HashDelete removes one field of a hash.
	HashDelete(ctx context.Context, key, field string) error

	// HashReplace sets a field only if it already exists and reports
	// whether the write happened.
	HashReplace(ctx context.Context, key, field, value string) (bool, error)

	// ListPushFront prepends a value to a list.
	ListPushFront(ctx context.Context, key, value string) error

	// ListTrim keeps only the elements in [start, stop].
	ListTrim(ctx context.Context, key string, start, stop int64) error

	// ListRange returns the elements in [start, stop].
	ListRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// SetAdd adds a member to a set.
	SetAdd(ctx context.Context, key, member string) error

	// SetRemove removes a member from a set. Absent members are ignored.
	SetRemove(ctx context.Context, key, member string) error

	// SetMembers returns every member of a set. A missing set is empty.
	SetMembers(ctx context.Context, key string) ([]string, error)

	// SetCount returns the cardinality of a set.
	SetCount(ctx context.Context, key string) (int, error)

	// Delete removes whole keys.
	Delete(ctx context.Context, keys ...string) error

	// Batch queues the writes made by fn and submits them atomically.
	Batch(ctx context.Context, fn func(Batch)) error

	Ping(ctx context.Context) error
	Close() error
}

// Batch collects writes for one atomic submission.
type Batch interface {
	HashSet(key, field, value string)
	HashDelete(key, field string)
	ListPushFront(key, value string)
	ListTrim(key string, start, stop int64)
	Delete(keys ...string)
}
