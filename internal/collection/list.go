// Package collection holds optimistic, keyed in-memory lists that are
// written through to a persister after every change.
package collection

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotFound is returned when no element has the requested key
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when adding an element whose key already exists
	ErrDuplicate = errors.New("duplicate key")
	// ErrPersist wraps failures from the persister. Local state has already changed.
	ErrPersist = errors.New("persist failed")
)

// Persister loads and saves a whole list. Saves are last-write-wins.
type Persister[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
}

// List is an ordered collection of T uniquely keyed by key(T).
type List[T any] struct {
	mu    sync.RWMutex
	items []T
	key   func(T) string
	store Persister[T]
}

// New creates an empty list. store may be nil for a memory-only list.
func New[T any](key func(T) string, store Persister[T]) *List[T] {
	return &List[T]{key: key, store: store}
}

// Load replaces local state with the persisted list
func (l *List[T]) Load(ctx context.Context) error {
	if l.store == nil {
		return nil
	}
	items, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	l.mu.Lock()
	l.items = append([]T(nil), items...)
	l.mu.Unlock()
	return nil
}

// All returns a copy of every element in order
func (l *List[T]) All() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append(make([]T, 0, len(l.items)), l.items...)
}

// Get returns the element with key k
func (l *List[T]) Get(k string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.index(k); i >= 0 {
		return l.items[i], true
	}
	var zero T
	return zero, false
}

// Add appends v. Local state changes even when persisting fails.
func (l *List[T]) Add(ctx context.Context, v T) error {
	l.mu.Lock()
	if l.index(l.key(v)) >= 0 {
		l.mu.Unlock()
		return fmt.Errorf("%s: %w", l.key(v), ErrDuplicate)
	}
	l.items = append(l.items, v)
	snapshot := l.snapshot()
	l.mu.Unlock()

	return l.persist(ctx, snapshot)
}

// Update replaces the element with key k by v
func (l *List[T]) Update(ctx context.Context, k string, v T) error {
	l.mu.Lock()
	i := l.index(k)
	if i < 0 {
		l.mu.Unlock()
		return fmt.Errorf("%s: %w", k, ErrNotFound)
	}
	if nk := l.key(v); nk != k && l.index(nk) >= 0 {
		l.mu.Unlock()
		return fmt.Errorf("%s: %w", nk, ErrDuplicate)
	}
	l.items[i] = v
	snapshot := l.snapshot()
	l.mu.Unlock()

	return l.persist(ctx, snapshot)
}

// Delete removes the element with key k
func (l *List[T]) Delete(ctx context.Context, k string) error {
	l.mu.Lock()
	i := l.index(k)
	if i < 0 {
		l.mu.Unlock()
		return fmt.Errorf("%s: %w", k, ErrNotFound)
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	snapshot := l.snapshot()
	l.mu.Unlock()

	return l.persist(ctx, snapshot)
}

func (l *List[T]) persist(ctx context.Context, items []T) error {
	if l.store == nil {
		return nil
	}
	if err := l.store.Save(ctx, items); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (l *List[T]) snapshot() []T {
	return append(make([]T, 0, len(l.items)), l.items...)
}

func (l *List[T]) index(k string) int {
	for i, item := range l.items {
		if l.key(item) == k {
			return i
		}
	}
	return -1
}
