package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Khan/genqlient/graphql"
	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"paskoocheh/internal/accounts"
	"paskoocheh/internal/blog"
	"paskoocheh/internal/cache"
	"paskoocheh/internal/catalog"
	"paskoocheh/internal/gql"
	"paskoocheh/internal/gql/gqltest"
	"paskoocheh/internal/i18n"
	"paskoocheh/internal/locale"
	"paskoocheh/internal/platforms"
	"paskoocheh/internal/rewards"
	"paskoocheh/internal/session"
	"paskoocheh/internal/web/appcore"
)

type fakeClients struct {
	backend *gqltest.Client
}

func (f fakeClients) Client(ctx context.Context, tokens session.TokenStore, _ string) gql.Client {
	hasToken := tokens != nil && tokens.Token(ctx) != ""
	return gql.Client{Client: f.backend, HasAccessToken: hasToken}
}

// newBackend answers like a backend with three android tools over two pages and one user,
// sara, whose password is "correct".
func newBackend() *gqltest.Client {
	return gqltest.New().
		On("Platforms", `{"platforms":[{"slug":"android","name":"Android"},{"slug":"ios","name":"iOS"}]}`).
		Handle("ListTools", func(req *graphql.Request) (string, error) {
			if gqltest.VarString(req, "after") == "c1" {
				return `{"tools":{"nodes":[{"id":3,"name":"Lantern","slug":"lantern"}],"pageInfo":{"hasNextPage":false}}}`, nil
			}
			return `{"tools":{"nodes":[
				{"id":1,"name":"Tor Browser","slug":"tor-browser"},
				{"id":2,"name":"Psiphon","slug":"psiphon"}
			],"pageInfo":{"hasNextPage":true,"endCursor":"c1"}}}`, nil
		}).
		Handle("SignIn", func(req *graphql.Request) (string, error) {
			if gqltest.VarString(req, "username") == "sara" && gqltest.VarString(req, "password") == "correct" {
				return `{"tokenAuth":{"token":"tok-sara"}}`, nil
			}
			return "", gqlerror.List{{Message: "Please enter valid credentials"}}
		}).
		Handle("CurrentUser", func(req *graphql.Request) (string, error) {
			return `{"me":{"id":"1","username":"sara","email":"sara@example.org","language":"en","points":40}}`, nil
		}).
		On("RevokeToken", `{"revokeToken":{"revoked":true}}`)
}

type testSite struct {
	server  *httptest.Server
	client  *http.Client
	backend *gqltest.Client
}

func newTestSite(t *testing.T, mutate func(*Options)) *testSite {
	t.Helper()

	messages, err := i18n.Load()
	require.NoError(t, err)

	store := cache.NewMemoryCache(time.Minute, 0)
	t.Cleanup(func() { _ = store.Close() })

	sessions := session.NewManager(time.Hour, false)
	tokens := session.NewSCSStore(sessions)
	backend := newBackend()
	clients := fakeClients{backend: backend}

	appCtx := appcore.NewContext(appcore.Dependencies{
		Settings: appcore.Settings{
			PublicURL: "https://paskoocheh.test",
			Defaults:  locale.Defaults{Locale: locale.Farsi, Platform: "android"},
			PageSize:  2,
		},
		Services: appcore.Services{
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

	opts := Options{AppContext: appCtx, Sessions: sessions}
	if mutate != nil {
		mutate(&opts)
	}
	handler, err := NewRouter(opts)
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testSite{
		server: server,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		backend: backend,
	}
}

func (s *testSite) get(t *testing.T, path string, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, s.server.URL+path, nil)
	require.NoError(t, err)
	for key, values := range header {
		req.Header[key] = values
	}
	resp, err := s.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *testSite) post(t *testing.T, path string, form url.Values, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, s.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for key, values := range header {
		req.Header[key] = values
	}
	resp, err := s.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func document(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func TestLegacyToolLinksRedirectPermanently(t *testing.T) {
	site := newTestSite(t, nil)

	resp := site.get(t, "/tools/12/android.html", nil)

	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/fa/app/12?platform=android", resp.Header.Get("Location"))

	ios := site.get(t, "/tools/12/ios.html", nil)
	assert.Equal(t, "/fa/app/12?platform=ios", ios.Header.Get("Location"))

	unknown := site.get(t, "/tools/123/notaplatform.html", nil)
	assert.Equal(t, http.StatusMovedPermanently, unknown.StatusCode)
	assert.Equal(t, "/fa/app/123?platform=android", unknown.Header.Get("Location"))
}

func TestUnknownPathsRenderLocalizedNotFound(t *testing.T) {
	site := newTestSite(t, nil)

	cases := []struct {
		path    string
		heading string
		dir     string
	}{
		{path: "/en/nope", heading: "Page not found", dir: "ltr"},
		{path: "/fa/nope", heading: "صفحه پیدا نشد", dir: "rtl"},
		{path: "/tools/not-a-tool", heading: "صفحه پیدا نشد", dir: "rtl"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp := site.get(t, tc.path, nil)
			require.Equal(t, http.StatusNotFound, resp.StatusCode)

			doc := document(t, resp)
			assert.Equal(t, tc.heading, doc.Find("main h1").Text())
			assert.Equal(t, tc.dir, doc.Find("html").AttrOr("dir", ""))
		})
	}
}

func TestHomeListingAndLiveLoadMore(t *testing.T) {
	site := newTestSite(t, nil)

	resp := site.get(t, "/en/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := document(t, resp)

	assert.Equal(t, 2, doc.Find("#tools-items li").Length())
	require.Equal(t, 1, doc.Find("#tools-more button").Length())
	click := doc.Find("#tools-more button").AttrOr("data-on:click", "")
	assert.Contains(t, click, `getElementById("tools-status").textContent = "Loading more items"`,
		"the status region announces the load before the response")

	var signals appcore.ListingSignals
	require.NoError(t, json.Unmarshal([]byte(doc.Find("section#tools").AttrOr("data-signals", "")), &signals))
	assert.True(t, signals.HasNext)

	payload, err := json.Marshal(signals)
	require.NoError(t, err)
	live := site.get(t, "/en/live?"+url.Values{"datastar": {string(payload)}}.Encode(), http.Header{
		"Datastar-Request": {"true"},
	})
	require.Equal(t, http.StatusOK, live.StatusCode)
	assert.Contains(t, live.Header.Get("Content-Type"), "text/event-stream")

	body, err := io.ReadAll(live.Body)
	require.NoError(t, err)
	events := string(body)
	assert.Contains(t, events, "event: datastar-patch-elements")
	assert.Contains(t, events, "data: selector #tools-items")
	assert.Contains(t, events, "data: mode append")
	assert.Contains(t, events, "Lantern")
	assert.Contains(t, events, "Loaded 1 more item")
	assert.Contains(t, events, "event: datastar-patch-signals")
	assert.NotContains(t, events, "<button", "the last page removes the control")
}

func TestBackendTimeoutPolicy(t *testing.T) {
	site := newTestSite(t, nil)
	site.backend.Handle("ListTools", func(*graphql.Request) (string, error) {
		return "", fmt.Errorf("post tools: %w", context.DeadlineExceeded)
	})

	page := site.get(t, "/en/", nil)
	assert.Equal(t, http.StatusInternalServerError, page.StatusCode)
	assert.Equal(t, "ltr", document(t, page).Find("html").AttrOr("dir", ""))

	payload, err := json.Marshal(appcore.ListingSignals{Cursor: "c1", Count: 2, HasNext: true})
	require.NoError(t, err)
	live := site.get(t, "/en/live?"+url.Values{"datastar": {string(payload)}}.Encode(), http.Header{
		"Datastar-Request": {"true"},
	})
	require.Equal(t, http.StatusOK, live.StatusCode, "a failed load-more never fails the request")

	body, err := io.ReadAll(live.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Could not load more items. Please try again.")
	assert.Contains(t, string(body), "<button", "the control stays for a retry")
}

func TestLastPageRendersNoLoadMore(t *testing.T) {
	site := newTestSite(t, nil)
	site.backend.On("ListTools", `{"tools":{"nodes":[{"id":1,"name":"Tor Browser","slug":"tor-browser"}],"pageInfo":{"hasNextPage":false}}}`)

	doc := document(t, site.get(t, "/en/", nil))

	assert.Equal(t, 1, doc.Find("#tools-items li").Length())
	assert.Equal(t, 1, doc.Find("#tools-more").Length())
	assert.Zero(t, doc.Find("#tools-more button").Length())
}

func TestSignInShowsUserUntilSignOut(t *testing.T) {
	site := newTestSite(t, nil)

	anonymous := document(t, site.get(t, "/en/", nil))
	assert.Zero(t, anonymous.Find("header .username").Length())

	resp := site.post(t, "/en/signin", url.Values{"username": {"sara"}, "password": {"correct"}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/en/?platform=android", resp.Header.Get("Location"))

	signedIn := document(t, site.get(t, "/en/", nil))
	assert.Equal(t, "sara", signedIn.Find("header .username").Text())

	resp = site.post(t, "/en/signout", nil, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/en/", resp.Header.Get("Location"))
	assert.Equal(t, 1, site.backend.Calls("RevokeToken"))

	signedOut := document(t, site.get(t, "/en/", nil))
	assert.Zero(t, signedOut.Find("header .username").Length())
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	site := newTestSite(t, nil)

	resp := site.post(t, "/fa/signin", url.Values{"username": {"sara"}, "password": {"wrong"}}, nil)

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "private, no-store", resp.Header.Get("Cache-Control"))
	doc := document(t, resp)
	assert.Equal(t, "نام کاربری یا رمز عبور اشتباه است.", doc.Find("form .form-error").First().Text())
	assert.Equal(t, "sara", doc.Find("#field-username").AttrOr("value", ""))
	assert.Empty(t, doc.Find("#field-password").AttrOr("value", ""))
}

func TestSignInIsRateLimited(t *testing.T) {
	site := newTestSite(t, func(opts *Options) { opts.LoginRatePerMinute = 2 })
	form := url.Values{"username": {"sara"}, "password": {"wrong"}}

	for range 2 {
		resp := site.post(t, "/en/signin", form, nil)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	}

	resp := site.post(t, "/en/signin", form, nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, document(t, resp).Find("form .form-error").Text(), "Too many attempts")
	assert.Equal(t, 2, site.backend.Calls("SignIn"))
}

func TestCrossSiteFormPostsAreRejected(t *testing.T) {
	site := newTestSite(t, nil)

	resp := site.post(t, "/en/signin", url.Values{"username": {"sara"}, "password": {"correct"}}, http.Header{
		"Sec-Fetch-Site": {"cross-site"},
		"Origin":         {"https://evil.example"},
	})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, site.backend.Calls("SignIn"))
}

func TestFormPathsServePagesOnGet(t *testing.T) {
	site := newTestSite(t, nil)

	resp := site.get(t, "/en/signin", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := document(t, resp)
	assert.Equal(t, "/en/signin?platform=android", doc.Find("main form").AttrOr("action", ""))
}

func TestRewardsRequireSignIn(t *testing.T) {
	site := newTestSite(t, nil)

	resp := site.get(t, "/en/rewards", nil)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/en/signin?platform=android&return=%2Fen%2Frewards", resp.Header.Get("Location"))
}

func TestRootRedirectsByAcceptLanguage(t *testing.T) {
	site := newTestSite(t, nil)

	english := site.get(t, "/", http.Header{"Accept-Language": {"en-US,en;q=0.9"}})
	assert.Equal(t, http.StatusFound, english.StatusCode)
	assert.Equal(t, "/en/", english.Header.Get("Location"))
	assert.Contains(t, english.Header.Values("Vary"), "Accept-Language")

	fallback := site.get(t, "/", nil)
	assert.Equal(t, "/fa/", fallback.Header.Get("Location"))
}
