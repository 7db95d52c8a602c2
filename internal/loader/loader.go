// Package loader implements the "load more" pagination shared by every listing page.
package loader

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Page is one backend response. Cursor is opaque and passed back on the next request.
type Page[T any] struct {
	Items       []T
	HasNextPage bool
	Cursor      string
}

// Request describes the next fetch. Limit never exceeds the room left under MaxItems.
type Request struct {
	Filter string
	Cursor string
	Offset int
	Limit  int
}

type Fetcher[T any] func(ctx context.Context, req Request) (Page[T], error)

type Options[T any] struct {
	// Key identifies an item for duplicate suppression. Nil disables it.
	Key       func(T) string
	MaxItems  int
	PageSize  int
	Logger    *zap.Logger
	Announcer Announcer
}

// State is a copy of a loader's pagination state.
type State[T any] struct {
	Previews    []T
	HasNextPage bool
	IsLoading   bool
	Cursor      string
	Filter      string
	// Offset counts items shown before this process held the view (see Restore).
	Offset int
}

func (s State[T]) Count() int {
	return s.Offset + len(s.Previews)
}

// Result reports what one LoadMore or ResetFetch call did.
type Result[T any] struct {
	Added   []T
	Skipped bool
	Stale   bool
	Err     error
}

// Loader owns one listing's pagination state. At most one fetch runs at a time, merges are
// append-only, and a Reset discards the result of any fetch started before it.
type Loader[T any] struct {
	fetch Fetcher[T]
	opts  Options[T]

	mu         sync.Mutex
	state      State[T]
	seen       map[string]struct{}
	generation uint64
}

const (
	DefaultMaxItems = 200
	DefaultPageSize = 20
)

func New[T any](fetch Fetcher[T], filter string, initial Page[T], opts Options[T]) *Loader[T] {
	l := newLoader(fetch, opts)
	l.replace(filter, initial, 0)
	return l
}

// Restore rebuilds a loader for a view whose items were rendered elsewhere. Only the count is
// known, so duplicates against those earlier items cannot be detected.
func Restore[T any](fetch Fetcher[T], snapshot State[T], opts Options[T]) *Loader[T] {
	l := newLoader(fetch, opts)
	l.replace(snapshot.Filter, Page[T]{
		Items:       snapshot.Previews,
		HasNextPage: snapshot.HasNextPage,
		Cursor:      snapshot.Cursor,
	}, snapshot.Offset)
	return l
}

func newLoader[T any](fetch Fetcher[T], opts Options[T]) *Loader[T] {
	if opts.MaxItems < 1 {
		opts.MaxItems = DefaultMaxItems
	}
	if opts.PageSize < 1 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Loader[T]{fetch: fetch, opts: opts}
}

// State returns a copy safe to read without further locking.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.state
	out.Previews = append([]T(nil), l.state.Previews...)
	return out
}

// LoadMore fetches the next page. It is a no-op while another fetch is running or when the
// backend reported no further pages.
func (l *Loader[T]) LoadMore(ctx context.Context) Result[T] {
	l.mu.Lock()
	if l.state.IsLoading || !l.state.HasNextPage {
		l.mu.Unlock()
		return Result[T]{Skipped: true}
	}
	l.state.IsLoading = true
	generation := l.generation
	req := Request{
		Filter: l.state.Filter,
		Cursor: l.state.Cursor,
		Offset: l.state.Count(),
		Limit:  min(l.opts.PageSize, l.opts.MaxItems-l.state.Count()),
	}
	l.mu.Unlock()

	announcer := announcerFrom(ctx, l.opts.Announcer)
	announcer.Announce(Announcement{Kind: Started})

	page, err := l.fetch(ctx, req)

	l.mu.Lock()
	defer l.mu.Unlock()

	if generation != l.generation {
		l.opts.Logger.Debug("discarding page fetched before reset",
			zap.String("filter", req.Filter),
			zap.String("cursor", req.Cursor),
		)
		return Result[T]{Stale: true}
	}

	l.state.IsLoading = false

	if err != nil {
		l.opts.Logger.Warn("load more failed",
			zap.String("filter", req.Filter),
			zap.String("cursor", req.Cursor),
			zap.Error(err),
		)
		announcer.Announce(Announcement{Kind: Failed})
		return Result[T]{Err: err}
	}

	added := l.merge(page)
	announcer.Announce(Announcement{Kind: Completed, Added: len(added)})
	return Result[T]{Added: added}
}

// Reset replaces the state with a first page fetched for a new filter.
func (l *Loader[T]) Reset(filter string, first Page[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.generation++
	l.replace(filter, first, 0)
}

// ResetFetch clears the state for filter and fetches its first page. Items of the previous
// filter are gone as soon as it is called, even if the fetch fails.
func (l *Loader[T]) ResetFetch(ctx context.Context, filter string) Result[T] {
	l.mu.Lock()
	l.generation++
	generation := l.generation
	l.replace(filter, Page[T]{}, 0)
	l.state.IsLoading = true
	req := Request{Filter: filter, Limit: min(l.opts.PageSize, l.opts.MaxItems)}
	l.mu.Unlock()

	announcer := announcerFrom(ctx, l.opts.Announcer)
	announcer.Announce(Announcement{Kind: Started})

	page, err := l.fetch(ctx, req)

	l.mu.Lock()
	defer l.mu.Unlock()

	if generation != l.generation {
		return Result[T]{Stale: true}
	}
	l.state.IsLoading = false

	if err != nil {
		l.opts.Logger.Warn("first page fetch failed", zap.String("filter", filter), zap.Error(err))
		announcer.Announce(Announcement{Kind: Failed})
		return Result[T]{Err: err}
	}

	added := l.merge(page)
	announcer.Announce(Announcement{Kind: Completed, Added: len(added)})
	return Result[T]{Added: added}
}

// replace must be called with mu held, or before the loader is shared.
func (l *Loader[T]) replace(filter string, first Page[T], offset int) {
	l.state = State[T]{Filter: filter, Offset: offset}
	l.seen = make(map[string]struct{})
	l.merge(first)
}

// merge appends page in arrival order, dropping known keys and anything past MaxItems.
func (l *Loader[T]) merge(page Page[T]) []T {
	var added []T
	for _, item := range page.Items {
		if l.state.Count() >= l.opts.MaxItems {
			break
		}
		if l.opts.Key != nil {
			key := l.opts.Key(item)
			if _, dup := l.seen[key]; dup {
				continue
			}
			l.seen[key] = struct{}{}
		}
		l.state.Previews = append(l.state.Previews, item)
		added = append(added, item)
	}

	if page.Cursor != "" {
		l.state.Cursor = page.Cursor
	}
	l.state.HasNextPage = page.HasNextPage && l.state.Count() < l.opts.MaxItems
	return added
}
