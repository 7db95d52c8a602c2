package appcore

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"paskoocheh/internal/blog"
	"paskoocheh/internal/catalog"
	"paskoocheh/internal/i18n"
	"paskoocheh/internal/loader"
)

// Listing is one rendered slice of a paginated list. On a page it holds the first page; in a
// live response it holds only the items appended by that request.
type Listing[T any] struct {
	ViewID      string
	Items       []T
	HasNextPage bool
	Cursor      string
	Count       int
	LiveURL     string
	// Status is the localized text of the aria-live region, empty on first render.
	Status string
	Failed bool
}

func (l Listing[T]) Signals() ListingSignals {
	return ListingSignals{
		View:    l.ViewID,
		Cursor:  l.Cursor,
		Count:   l.Count,
		HasNext: l.HasNextPage,
	}
}

func (l Listing[T]) Empty() bool {
	return l.Count == 0 && len(l.Items) == 0
}

// ListingSignals is the client-held state of a listing, sent back with every load-more.
type ListingSignals struct {
	View    string `json:"view"`
	Cursor  string `json:"cursor"`
	Count   int    `json:"count"`
	HasNext bool   `json:"hasNext"`
}

type feed[T any] struct {
	registry *loader.Registry[T]
	fetch    loader.Fetcher[T]
	key      func(T) string
}

func feedOptions[T any](c *Context, f feed[T]) loader.Options[T] {
	return loader.Options[T]{
		Key:      f.key,
		MaxItems: c.settings.MaxItems,
		PageSize: c.settings.PageSize,
		Logger:   c.logger,
	}
}

// startListing fetches the first page for filter and registers a loader for later live
// requests of the same view.
func startListing[T any](ctx context.Context, c *Context, f feed[T], filter string, liveURL string) (Listing[T], error) {
	first, err := f.fetch(ctx, loader.Request{
		Filter: filter,
		Limit:  min(c.settings.PageSize, c.settings.MaxItems),
	})
	if err != nil {
		return Listing[T]{}, err
	}

	l := loader.New(f.fetch, filter, first, feedOptions(c, f))
	id := f.registry.Register(l)
	state := l.State()

	return Listing[T]{
		ViewID:      id,
		Items:       state.Previews,
		HasNextPage: state.HasNextPage,
		Cursor:      state.Cursor,
		Count:       state.Count(),
		LiveURL:     liveURL,
	}, nil
}

// continueListing runs one load-more for the view named by signals. Views this process does
// not know, or that were registered for another filter, are rebuilt from the signals. So are
// views whose position differs from the client's, which happens when a response was lost or a
// tab was duplicated: the client's cursor wins. A failed fetch is reported in the status region
// and never fails the request.
func continueListing[T any](
	ctx context.Context,
	c *Context,
	f feed[T],
	filter string,
	signals ListingSignals,
	liveURL string,
	t i18n.Translator,
) Listing[T] {
	restore := func() *loader.Loader[T] {
		return loader.Restore(f.fetch, loader.State[T]{
			Filter:      filter,
			Cursor:      signals.Cursor,
			HasNextPage: signals.HasNext,
			Offset:      max(signals.Count, 0),
		}, feedOptions(c, f))
	}

	id, l := f.registry.Lookup(signals.View, restore)
	switch current := l.State(); {
	case current.Filter != filter:
		l = restore()
		id = f.registry.Register(l)
	case !current.IsLoading && (current.Cursor != signals.Cursor || current.Count() != signals.Count):
		l = restore()
		f.registry.Replace(id, l)
	}

	var recorder loader.Recorder
	result := l.LoadMore(loader.WithAnnouncer(ctx, &recorder))
	state := l.State()

	listing := Listing[T]{
		ViewID:      id,
		HasNextPage: state.HasNextPage,
		Cursor:      state.Cursor,
		Count:       state.Count(),
		LiveURL:     liveURL,
		Failed:      result.Err != nil,
	}
	if !result.Stale {
		listing.Items = result.Added
	}
	if last, ok := recorder.Last(); ok {
		listing.Status = AnnouncementText(t, last)
	}
	return listing
}

// AnnouncementText is what screen readers hear for a load-more event.
func AnnouncementText(t i18n.Translator, a loader.Announcement) string {
	switch a.Kind {
	case loader.Started:
		return t.T("loader.started")
	case loader.Completed:
		return t.Plural("loader.completed", a.Added)
	case loader.Failed:
		return t.T("loader.failed")
	default:
		return ""
	}
}

// ToolFilter selects the tool listing behind the home, category and search pages.
type ToolFilter struct {
	Platform string
	Category string
	Query    string
	// Search is set on the search page, where a blank query lists nothing.
	Search bool
}

func (f ToolFilter) Key() string {
	values := url.Values{}
	values.Set("platform", f.Platform)
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	if f.Search {
		values.Set("search", "1")
		values.Set("query", f.Query)
	}
	return values.Encode()
}

func parseToolFilter(key string) ToolFilter {
	values, err := url.ParseQuery(key)
	if err != nil {
		return ToolFilter{}
	}
	return ToolFilter{
		Platform: values.Get("platform"),
		Category: values.Get("category"),
		Query:    values.Get("query"),
		Search:   values.Get("search") == "1",
	}
}

type ReviewFilter struct {
	ToolID   int
	Platform string
}

func (f ReviewFilter) Key() string {
	values := url.Values{}
	values.Set("tool", strconv.Itoa(f.ToolID))
	values.Set("platform", f.Platform)
	return values.Encode()
}

func parseReviewFilter(key string) ReviewFilter {
	values, err := url.ParseQuery(key)
	if err != nil {
		return ReviewFilter{}
	}
	id, _ := strconv.Atoi(values.Get("tool"))
	return ReviewFilter{ToolID: id, Platform: values.Get("platform")}
}

// The fetchers run under the context of whichever request drives the loader, so the GraphQL
// client is looked up per call rather than captured.

func (c *Context) toolFeed() feed[catalog.ToolPreview] {
	return feed[catalog.ToolPreview]{
		registry: c.tools,
		key:      catalog.ToolKey,
		fetch: func(ctx context.Context, req loader.Request) (loader.Page[catalog.ToolPreview], error) {
			filter := parseToolFilter(req.Filter)
			query := catalog.PageQuery{Platform: filter.Platform, Cursor: req.Cursor, First: req.Limit}
			client := c.readClient(ctx)
			if filter.Search {
				return c.services.Catalog.SearchTools(ctx, client, strings.TrimSpace(filter.Query), query)
			}
			return c.services.Catalog.ListTools(ctx, client, filter.Category, query)
		},
	}
}

func (c *Context) reviewFeed() feed[catalog.ReviewPreview] {
	return feed[catalog.ReviewPreview]{
		registry: c.reviews,
		key:      catalog.ReviewKey,
		fetch: func(ctx context.Context, req loader.Request) (loader.Page[catalog.ReviewPreview], error) {
			filter := parseReviewFilter(req.Filter)
			return c.services.Catalog.ListReviews(ctx, c.readClient(ctx), filter.ToolID, catalog.PageQuery{
				Platform: filter.Platform,
				Cursor:   req.Cursor,
				First:    req.Limit,
			})
		},
	}
}

func (c *Context) postFeed() feed[blog.PostPreview] {
	return feed[blog.PostPreview]{
		registry: c.posts,
		key:      blog.PostKey,
		fetch: func(ctx context.Context, req loader.Request) (loader.Page[blog.PostPreview], error) {
			return c.services.Blog.ListPosts(ctx, c.readClient(ctx), blog.ParseFilter(req.Filter), req.Cursor, req.Limit)
		},
	}
}
