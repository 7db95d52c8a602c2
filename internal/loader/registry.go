package loader

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultRegistryIdle     = 30 * time.Minute
	DefaultRegistryCapacity = 2048
)

// Registry keeps live loaders by view id so concurrent requests for one view share a guard.
// It holds at most its capacity of views; the least recently used view is dropped first and
// rebuilt from client signals if it is asked for again.
type Registry[T any] struct {
	views *expirable.LRU[string, *Loader[T]]
}

func NewRegistry[T any](idle time.Duration, capacity int) *Registry[T] {
	if idle <= 0 {
		idle = DefaultRegistryIdle
	}
	if capacity < 1 {
		capacity = DefaultRegistryCapacity
	}
	return &Registry[T]{views: expirable.NewLRU[string, *Loader[T]](capacity, nil, idle)}
}

// Register stores l under a fresh view id.
func (r *Registry[T]) Register(l *Loader[T]) string {
	id := uuid.NewString()
	r.views.Add(id, l)
	return id
}

// Replace stores l under an existing view id.
func (r *Registry[T]) Replace(id string, l *Loader[T]) {
	r.views.Add(id, l)
}

// Lookup returns the loader for id, or builds one with restore when the view is unknown or
// expired. Ids that are not UUIDs are replaced so clients cannot choose keys. A hit counts as
// use, so an active view does not expire.
func (r *Registry[T]) Lookup(id string, restore func() *Loader[T]) (string, *Loader[T]) {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	if l, ok := r.views.Get(id); ok {
		r.views.Add(id, l)
		return id, l
	}

	l := restore()
	r.views.Add(id, l)
	return id, l
}

func (r *Registry[T]) Len() int {
	return r.views.Len()
}
