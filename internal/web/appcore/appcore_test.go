package appcore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Khan/genqlient/graphql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paskoocheh/framework"
	"paskoocheh/internal/accounts"
	"paskoocheh/internal/blog"
	"paskoocheh/internal/cache"
	"paskoocheh/internal/catalog"
	"paskoocheh/internal/gql"
	"paskoocheh/internal/gql/gqltest"
	"paskoocheh/internal/i18n"
	"paskoocheh/internal/loader"
	"paskoocheh/internal/locale"
	"paskoocheh/internal/platforms"
	"paskoocheh/internal/rewards"
	"paskoocheh/internal/session"
)

type fakeClients struct {
	backend *gqltest.Client
}

func (f fakeClients) Client(ctx context.Context, tokens session.TokenStore, _ string) gql.Client {
	hasToken := tokens != nil && tokens.Token(ctx) != ""
	return gql.Client{Client: f.backend, HasAccessToken: hasToken}
}

func newTestContext(t *testing.T, backend *gqltest.Client, tokens session.TokenStore) *Context {
	t.Helper()

	messages, err := i18n.Load()
	require.NoError(t, err)

	store := cache.NewMemoryCache(time.Minute, 0)
	t.Cleanup(func() { _ = store.Close() })

	clients := fakeClients{backend: backend}
	return NewContext(Dependencies{
		Settings: Settings{
			PublicURL: "https://paskoocheh.test",
			Defaults:  locale.Defaults{Locale: locale.Farsi, Platform: "android"},
			PageSize:  2,
		},
		Services: Services{
			Platforms: platforms.NewService(backend, store, platforms.ServiceConfig{TTL: time.Minute}),
			Catalog:   catalog.NewService(catalog.Config{PageSize: 2}),
			Blog:      blog.NewService(blog.Config{PageSize: 2}),
			Accounts:  accounts.NewService(clients, nil),
			Rewards:   rewards.NewService(rewards.Config{}),
		},
		Clients: clients,
		Tokens:  tokens,
		Strings: messages,
	})
}

const platformsPayload = `{"platforms":[{"slug":"android","name":"Android"},{"slug":"ios","name":"iOS"}]}`

// toolBackend serves two pages of tools: 1 and 2, then 3 after cursor c1.
func toolBackend() *gqltest.Client {
	return gqltest.New().
		On("Platforms", platformsPayload).
		Handle("ListTools", func(req *graphql.Request) (string, error) {
			if gqltest.VarString(req, "after") == "c1" {
				return `{"tools":{"nodes":[{"id":3,"name":"Lantern","slug":"lantern"}],"pageInfo":{"hasNextPage":false}}}`, nil
			}
			return `{"tools":{"nodes":[
				{"id":1,"name":"Tor Browser","slug":"tor-browser"},
				{"id":2,"name":"Psiphon","slug":"psiphon"}
			],"pageInfo":{"hasNextPage":true,"endCursor":"c1"}}}`, nil
		})
}

func TestPathsClaimMostSpecificPattern(t *testing.T) {
	paths, err := NewPaths()
	require.NoError(t, err)

	_, ok := paths.Locale(PatternBlogLive)("/en/blog/live")
	assert.True(t, ok)
	_, ok = paths.Slug(PatternBlogPost)("/en/blog/live")
	assert.False(t, ok, "the live endpoint is not a post slug")

	post, ok := paths.Slug(PatternBlogPost)("/fa/blog/first-post")
	require.True(t, ok)
	assert.Equal(t, SlugParams{Locale: locale.Farsi, Slug: "first-post"}, post)

	home, ok := paths.Locale(PatternHome)("/en/")
	require.True(t, ok)
	assert.Equal(t, locale.English, home.Locale)

	tool, ok := paths.Tool(PatternApp)("/en/app/42")
	require.True(t, ok)
	assert.Equal(t, 42, tool.ToolID)
}

func TestPathsRejectMalformedParams(t *testing.T) {
	paths, err := NewPaths()
	require.NoError(t, err)

	cases := []struct {
		name  string
		parse func(string) bool
		path  string
	}{
		{name: "unknown locale", parse: matches(paths.Locale(PatternHome)), path: "/de"},
		{name: "upper case locale", parse: matches(paths.Locale(PatternHome)), path: "/EN"},
		{name: "zero padded id", parse: matches(paths.Tool(PatternApp)), path: "/en/app/007"},
		{name: "negative id", parse: matches(paths.Tool(PatternApp)), path: "/en/app/-1"},
		{name: "non numeric id", parse: matches(paths.Tool(PatternApp)), path: "/en/app/tor"},
		{name: "other pattern", parse: matches(paths.Locale(PatternSearch)), path: "/en/blog"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, tc.parse(tc.path))
		})
	}
}

func matches[P any](parse framework.ParamsParser[P]) func(string) bool {
	return func(path string) bool {
		_, matched := parse(path)
		return matched
	}
}

func TestHomeLiveContinuesRegisteredView(t *testing.T) {
	backend := toolBackend()
	appCtx := newTestContext(t, backend, nil)

	pageReq := httptest.NewRequest(http.MethodGet, "/en/", nil)
	view, err := LoadHomePage(pageReq.Context(), appCtx, pageReq, LocaleParams{Locale: locale.English})
	require.NoError(t, err)

	require.Len(t, view.Tools.Items, 2)
	assert.True(t, view.Tools.HasNextPage)
	assert.Equal(t, "/en/live?platform=android", view.Tools.LiveURL)
	assert.Equal(t, "Apps | Paskoocheh", view.Title)
	assert.Equal(t, "ltr", view.Dir)

	liveReq := httptest.NewRequest(http.MethodGet, "/en/live", nil)
	live, err := LoadHomeLive(liveReq.Context(), appCtx, liveReq, LocaleParams{Locale: locale.English}, view.Tools.Signals())
	require.NoError(t, err)

	assert.Equal(t, view.Tools.ViewID, live.Listing.ViewID)
	require.Len(t, live.Listing.Items, 1)
	assert.Equal(t, 3, live.Listing.Items[0].ID)
	assert.False(t, live.Listing.HasNextPage)
	assert.Equal(t, 3, live.Listing.Count)
	assert.Equal(t, "Loaded 1 more item", live.Listing.Status)
	assert.Equal(t, 2, backend.Calls("ListTools"))

	again, err := LoadHomeLive(liveReq.Context(), appCtx, liveReq, LocaleParams{Locale: locale.English}, live.Listing.Signals())
	require.NoError(t, err)
	assert.Empty(t, again.Listing.Items, "an exhausted listing fetches nothing")
	assert.Equal(t, 2, backend.Calls("ListTools"))
}

func TestLiveRestoresUnknownView(t *testing.T) {
	backend := toolBackend()
	appCtx := newTestContext(t, backend, nil)

	req := httptest.NewRequest(http.MethodGet, "/fa/live", nil)
	live, err := LoadHomeLive(req.Context(), appCtx, req, LocaleParams{Locale: locale.Farsi}, ListingSignals{
		View:    "chosen-by-client",
		Cursor:  "c1",
		Count:   2,
		HasNext: true,
	})
	require.NoError(t, err)

	_, parseErr := uuid.Parse(live.Listing.ViewID)
	assert.NoError(t, parseErr, "clients cannot pick view ids")
	require.Len(t, live.Listing.Items, 1)
	assert.Equal(t, 3, live.Listing.Count)
	assert.Equal(t, "rtl", live.T.Dir())
}

func TestLiveRetryWithEarlierSignalsRedeliversPage(t *testing.T) {
	backend := toolBackend()
	appCtx := newTestContext(t, backend, nil)
	params := LocaleParams{Locale: locale.English}

	pageReq := httptest.NewRequest(http.MethodGet, "/en/", nil)
	view, err := LoadHomePage(pageReq.Context(), appCtx, pageReq, params)
	require.NoError(t, err)
	earlier := view.Tools.Signals()

	liveReq := httptest.NewRequest(http.MethodGet, "/en/live", nil)
	first, err := LoadHomeLive(liveReq.Context(), appCtx, liveReq, params, earlier)
	require.NoError(t, err)
	require.Len(t, first.Listing.Items, 1)

	// The client never saw the first response and asks again from where it stood.
	retry, err := LoadHomeLive(liveReq.Context(), appCtx, liveReq, params, earlier)
	require.NoError(t, err)

	assert.Equal(t, view.Tools.ViewID, retry.Listing.ViewID)
	require.Len(t, retry.Listing.Items, 1)
	assert.Equal(t, 3, retry.Listing.Items[0].ID)
	assert.Equal(t, 3, retry.Listing.Count)
	assert.False(t, retry.Listing.HasNextPage)
	assert.Equal(t, 3, backend.Calls("ListTools"))
}

func TestLiveViewsAreCapped(t *testing.T) {
	backend := toolBackend()
	appCtx := newTestContext(t, backend, nil)
	appCtx.tools = loader.NewRegistry[catalog.ToolPreview](time.Minute, 3)
	params := LocaleParams{Locale: locale.English}

	var firstView ListingSignals
	for idx := range 50 {
		req := httptest.NewRequest(http.MethodGet, "/en/", nil)
		view, err := LoadHomePage(req.Context(), appCtx, req, params)
		require.NoError(t, err)
		if idx == 0 {
			firstView = view.Tools.Signals()
		}
	}
	assert.Equal(t, 3, appCtx.tools.Len())

	liveReq := httptest.NewRequest(http.MethodGet, "/en/live", nil)
	live, err := LoadHomeLive(liveReq.Context(), appCtx, liveReq, params, firstView)
	require.NoError(t, err)
	assert.Equal(t, firstView.View, live.Listing.ViewID, "an evicted view keeps its id")
	require.Len(t, live.Listing.Items, 1)
	assert.Equal(t, 3, live.Listing.Count)
}

func TestLiveRebuildsViewForAnotherFilter(t *testing.T) {
	backend := toolBackend()
	appCtx := newTestContext(t, backend, nil)

	pageReq := httptest.NewRequest(http.MethodGet, "/en/", nil)
	view, err := LoadHomePage(pageReq.Context(), appCtx, pageReq, LocaleParams{Locale: locale.English})
	require.NoError(t, err)

	var platform string
	backend.Handle("ListTools", func(req *graphql.Request) (string, error) {
		platform = gqltest.VarString(req, "platform")
		return `{"tools":{"nodes":[{"id":8,"name":"Signal","slug":"signal"}],"pageInfo":{"hasNextPage":false}}}`, nil
	})

	liveReq := httptest.NewRequest(http.MethodGet, "/en/live?platform=ios", nil)
	live, err := LoadHomeLive(liveReq.Context(), appCtx, liveReq, LocaleParams{Locale: locale.English}, view.Tools.Signals())
	require.NoError(t, err)

	assert.Equal(t, "ios", platform)
	assert.NotEqual(t, view.Tools.ViewID, live.Listing.ViewID)
	require.Len(t, live.Listing.Items, 1)
	assert.Equal(t, 8, live.Listing.Items[0].ID)
}

func TestLiveFailureKeepsListingUsable(t *testing.T) {
	backend := toolBackend()
	appCtx := newTestContext(t, backend, nil)

	pageReq := httptest.NewRequest(http.MethodGet, "/en/", nil)
	view, err := LoadHomePage(pageReq.Context(), appCtx, pageReq, LocaleParams{Locale: locale.English})
	require.NoError(t, err)

	backend.Handle("ListTools", func(*graphql.Request) (string, error) {
		return "", errors.New("backend down")
	})

	liveReq := httptest.NewRequest(http.MethodGet, "/en/live", nil)
	live, err := LoadHomeLive(liveReq.Context(), appCtx, liveReq, LocaleParams{Locale: locale.English}, view.Tools.Signals())
	require.NoError(t, err)

	assert.True(t, live.Listing.Failed)
	assert.Empty(t, live.Listing.Items)
	assert.True(t, live.Listing.HasNextPage, "the visitor can try again")
	assert.Equal(t, 2, live.Listing.Count)
	assert.Equal(t, "Could not load more items. Please try again.", live.Listing.Status)
}

func TestResolveRequestDegradesWhenBackendFails(t *testing.T) {
	backend := gqltest.New().
		Handle("Platforms", func(*graphql.Request) (string, error) { return "", errors.New("timeout") }).
		Handle("CurrentUser", func(*graphql.Request) (string, error) { return "", errors.New("timeout") })
	appCtx := newTestContext(t, backend, session.NewMemoryStore("tok"))

	req := httptest.NewRequest(http.MethodGet, "/en/search?platform=ios", nil)
	state := appCtx.ResolveRequest(req.Context(), req)

	assert.Equal(t, locale.English, state.Locale)
	assert.Equal(t, "android", state.Platform, "unknown platforms fall back to the default")
	assert.Empty(t, state.Platforms)
	assert.False(t, state.SignedIn())
	assert.Equal(t, "/en/search?platform=ios", state.Path)
}

func TestResolveLiveRequestSkipsCurrentUser(t *testing.T) {
	backend := gqltest.New().On("Platforms", platformsPayload)
	appCtx := newTestContext(t, backend, session.NewMemoryStore("tok"))

	req := httptest.NewRequest(http.MethodGet, "/fa/live?platform=ios", nil)
	state := appCtx.ResolveLiveRequest(req.Context(), req)

	assert.Equal(t, "ios", state.Platform)
	assert.Equal(t, "iOS", state.PlatformName())
	assert.Zero(t, backend.Calls("CurrentUser"))
}

func TestRewardsRedirectsSignedOutVisitors(t *testing.T) {
	appCtx := newTestContext(t, gqltest.New().On("Platforms", platformsPayload), nil)

	req := httptest.NewRequest(http.MethodGet, "/en/rewards", nil)
	_, err := LoadRewardsPage(req.Context(), appCtx, req, LocaleParams{Locale: locale.English})

	var redirect *framework.RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, "/en/signin?platform=android&return=%2Fen%2Frewards", redirect.Location)
}

func TestAppPageSurvivesReviewFailure(t *testing.T) {
	backend := gqltest.New().
		On("Platforms", platformsPayload).
		On("ToolDetail", `{"tool":{"__typename":"Tool","id":5,"name":"Psiphon","slug":"psiphon","versions":[]}}`).
		Handle("ToolReviews", func(*graphql.Request) (string, error) { return "", errors.New("reviews down") })
	appCtx := newTestContext(t, backend, nil)

	req := httptest.NewRequest(http.MethodGet, "/en/app/5", nil)
	view, err := LoadAppPage(req.Context(), appCtx, req, ToolParams{Locale: locale.English, ToolID: 5})
	require.NoError(t, err)

	assert.Equal(t, "Psiphon", view.Tool.Name)
	assert.True(t, view.Reviews.Empty())
	assert.Nil(t, view.Latest)
	assert.Equal(t, "/en/app/5/reviews?platform=android", view.ReviewsURL)
}

func TestMissingToolIsNotFound(t *testing.T) {
	backend := gqltest.New().
		On("Platforms", platformsPayload).
		On("ToolDetail", `{"tool":{"__typename":"NotFoundError","message":"no such tool"}}`).
		On("ToolReviews", `{"reviews":{"nodes":[],"pageInfo":{"hasNextPage":false}}}`)
	appCtx := newTestContext(t, backend, nil)

	req := httptest.NewRequest(http.MethodGet, "/en/app/99/reviews", nil)
	_, err := LoadReviewsPage(req.Context(), appCtx, req, ToolParams{Locale: locale.English, ToolID: 99})

	assert.True(t, IsNotFoundError(err))
}

func TestNotFoundViewUsesPathLocale(t *testing.T) {
	appCtx := newTestContext(t, gqltest.New(), nil)

	fa := appCtx.NotFoundView(httptest.NewRequest(http.MethodGet, "/fa/nope", nil))
	assert.Equal(t, locale.Farsi, fa.Locale)
	assert.Equal(t, "rtl", fa.Dir)
	assert.Equal(t, "/fa/", fa.HomeURL)
	assert.Contains(t, fa.Title, "صفحه پیدا نشد")

	en := appCtx.NotFoundView(httptest.NewRequest(http.MethodGet, "/en/nope", nil))
	assert.Equal(t, "Page not found | Paskoocheh", en.Title)
}

func TestFormMessages(t *testing.T) {
	messages, err := i18n.Load()
	require.NoError(t, err)
	en := messages.For(locale.English)

	form := FormView{Errors: accounts.FormErrors{
		"email":    {accounts.MessageInvalid},
		"password": {accounts.MessageRequired, "Too common"},
	}}

	assert.Equal(t, []string{"This value is not valid."}, form.FieldErrors(en, "email"))
	assert.Equal(t, []string{"This field is required.", "Too common"}, form.FieldErrors(en, "password"))
	assert.Empty(t, form.FieldErrors(en, "username"))
	assert.Equal(t, "The passwords do not match.", FormMessage(en, accounts.MessageMismatch))
}

func TestWithFlag(t *testing.T) {
	assert.Equal(t, "/en/settings?platform=ios&saved=1", WithFlag("/en/settings?platform=ios", FlagSaved))
	assert.Equal(t, "/fa/reset-password?sent=1", WithFlag("/fa/reset-password", FlagSent))
}

func TestParseListingStateFallsBackToQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/en/live?view=%20abc%20&cursor=c2&count=-4&hasNext=true", nil)

	state, err := ParseListingState(req)
	require.NoError(t, err)

	assert.Equal(t, ListingSignals{View: "abc", Cursor: "c2", Count: 0, HasNext: true}, state)
}

func TestToolFilterKeyRoundTrip(t *testing.T) {
	filter := ToolFilter{Platform: "ios", Query: "vpn & proxy", Search: true}
	assert.Equal(t, filter, parseToolFilter(filter.Key()))
	assert.NotEqual(t, ToolFilter{Platform: "ios"}.Key(), ToolFilter{Platform: "ios", Search: true}.Key())
}
