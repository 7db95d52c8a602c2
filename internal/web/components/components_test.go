package components

import (
	"bytes"
	"context"
	"html/template"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paskoocheh/framework"
	"paskoocheh/internal/accounts"
	"paskoocheh/internal/blog"
	"paskoocheh/internal/catalog"
	"paskoocheh/internal/i18n"
	"paskoocheh/internal/locale"
	"paskoocheh/internal/routes"
	"paskoocheh/internal/web/appcore"
)

func translator(t *testing.T, code locale.Code) i18n.Translator {
	t.Helper()
	messages, err := i18n.Load()
	require.NoError(t, err)
	return messages.For(code)
}

func render(t *testing.T, component templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, component.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func toolList(t *testing.T, hasNext bool) appcore.ToolListView {
	en := translator(t, locale.English)
	return appcore.ToolListView{
		Chrome:  appcore.Chrome{Locale: locale.English, Dir: "ltr", T: en, Title: "Apps | Paskoocheh"},
		Heading: "Apps",
		Tools: appcore.Listing[catalog.ToolPreview]{
			ViewID:      "0b6a2d0e-6f3c-4a51-9b8e-3e0f1c2d4a5b",
			Items:       []catalog.ToolPreview{{ID: 1, Name: "Tor Browser", Slug: "tor-browser"}},
			HasNextPage: hasNext,
			Cursor:      "c1",
			Count:       1,
			LiveURL:     "/en/live?platform=android",
		},
		Links: appcore.ToolLinks{Args: routes.Args{Locale: locale.English, Platform: "android"}},
	}
}

func TestListingRendersLoadMoreOnlyWithNextPage(t *testing.T) {
	doc := render(t, ToolListPage(toolList(t, true)))

	button := doc.Find("#tools-more button")
	require.Equal(t, 1, button.Length())
	assert.Equal(t,
		`document.getElementById("tools-status").textContent = "Loading more items"; @get('/en/live?platform=android')`,
		button.AttrOr("data-on:click", ""))
	assert.Equal(t, "$loading", button.AttrOr("data-attr:disabled", ""))
	assert.Equal(t, "/en/app/1?platform=android", doc.Find("#tool-1 h2 a").AttrOr("href", ""))

	signals := doc.Find("section#tools").AttrOr("data-signals", "")
	assert.Contains(t, signals, `"view":"0b6a2d0e-6f3c-4a51-9b8e-3e0f1c2d4a5b"`)
	assert.Contains(t, signals, `"hasNext":true`)

	status := doc.Find("#tools-status")
	assert.Equal(t, "status", status.AttrOr("role", ""))
	assert.Equal(t, "polite", status.AttrOr("aria-live", ""))

	done := render(t, ToolListPage(toolList(t, false)))
	assert.Equal(t, 1, done.Find("#tools-more").Length(), "the wrapper stays as a patch target")
	assert.Zero(t, done.Find("#tools-more button").Length())
}

func TestEmptyListingShowsMessage(t *testing.T) {
	view := toolList(t, false)
	view.Tools.Items = nil
	view.Tools.Count = 0
	view.Category = "vpn"

	doc := render(t, ToolListPage(view))

	assert.Equal(t, "No apps in this category for the selected platform.", doc.Find("p.empty").Text())
}

func TestToolsLivePatchesAppendThenReplace(t *testing.T) {
	en := translator(t, locale.English)
	response := ToolsLive(appcore.LiveView[catalog.ToolPreview]{
		T: en,
		Listing: appcore.Listing[catalog.ToolPreview]{
			ViewID: "view",
			Items:  []catalog.ToolPreview{{ID: 3, Name: "Lantern"}},
			Count:  3,
			Status: "Loaded 1 more item",
		},
	})

	require.Len(t, response.Patches, 3)
	assert.Equal(t, "#tools-items", response.Patches[0].Selector)
	assert.Equal(t, framework.PatchAppend, response.Patches[0].Mode)
	assert.Equal(t, "#tools-more", response.Patches[1].Selector)
	assert.Equal(t, framework.PatchOuter, response.Patches[1].Mode)
	assert.Equal(t, "#tools-status", response.Patches[2].Selector)
	assert.Equal(t, appcore.ListingSignals{View: "view", Count: 3}, response.Signals)

	status := render(t, response.Patches[2].Component)
	assert.Equal(t, "Loaded 1 more item", status.Find("#tools-status").Text())
}

func TestToolsLiveWithoutItemsSkipsAppend(t *testing.T) {
	response := ToolsLive(appcore.LiveView[catalog.ToolPreview]{
		T:       translator(t, locale.English),
		Listing: appcore.Listing[catalog.ToolPreview]{Failed: true, HasNextPage: true, LiveURL: "/en/live"},
	})

	require.Len(t, response.Patches, 2)
	more := render(t, response.Patches[0].Component)
	assert.Equal(t, 1, more.Find("#tools-more button").Length(), "a failed load can be retried")
}

func TestLayoutFollowsLocaleDirection(t *testing.T) {
	fa := translator(t, locale.Farsi)
	view := appcore.NotFoundView{
		Chrome:  appcore.Chrome{Locale: locale.Farsi, Dir: "rtl", T: fa, Title: "صفحه پیدا نشد"},
		HomeURL: "/fa/",
	}

	doc := render(t, Layout(view, NotFoundPage(view)))

	html := doc.Find("html")
	assert.Equal(t, "fa", html.AttrOr("lang", ""))
	assert.Equal(t, "rtl", html.AttrOr("dir", ""))
	assert.Equal(t, "صفحه پیدا نشد", doc.Find("main h1").Text())
	assert.Equal(t, "#main", doc.Find("a.skip-link").AttrOr("href", ""))
}

func TestLayoutShowsSignedInUser(t *testing.T) {
	en := translator(t, locale.English)
	view := appcore.ErrorView{
		Chrome: appcore.Chrome{
			Locale: locale.English,
			Dir:    "ltr",
			T:      en,
			User:   &accounts.User{Username: "sara"},
			Nav:    appcore.NavLinks{SignOut: "/en/signout", Rewards: "/en/rewards"},
		},
	}

	doc := render(t, Layout(view, ErrorPage(view)))

	assert.Contains(t, doc.Find("header").Text(), "sara")
	assert.Equal(t, "post", doc.Find(`form[action="/en/signout"]`).AttrOr("method", ""))
	assert.Equal(t, 1, doc.Find(`a[href="/en/rewards"]`).Length())
}

func TestFormsNeverEchoPasswords(t *testing.T) {
	en := translator(t, locale.English)
	view := appcore.SignInView{
		Chrome: appcore.Chrome{Locale: locale.English, Dir: "ltr", T: en},
		Form: appcore.FormView{
			Action: "/en/signin",
			Values: map[string]string{"username": "sara", "password": "secret"},
			Errors: accounts.FormErrors{"username": {accounts.MessageRequired}},
		},
	}

	doc := render(t, SignInPage(view))

	assert.Equal(t, "sara", doc.Find("#field-username").AttrOr("value", ""))
	assert.Equal(t, "true", doc.Find("#field-username").AttrOr("aria-invalid", ""))
	assert.Empty(t, doc.Find("#field-password").AttrOr("value", ""))
	assert.Equal(t, "This field is required.", doc.Find("#field-username-errors li").Text())
}

func TestPostPageEscapesTextAndKeepsRenderedBody(t *testing.T) {
	en := translator(t, locale.English)
	view := appcore.PostView{
		Chrome: appcore.Chrome{Locale: locale.English, Dir: "ltr", T: en},
		Post: blog.Post{
			Slug:     "hello",
			Title:    "<script>alert(1)</script>",
			BodyHTML: template.HTML(`<p>Stay <strong>safe</strong></p>`),
		},
		BlogURL: "/en/blog",
	}

	doc := render(t, PostPage(view))

	assert.Equal(t, "<script>alert(1)</script>", doc.Find("article h1").Text())
	assert.Zero(t, doc.Find("article script").Length())
	assert.Equal(t, "safe", doc.Find(".body.rich-text strong").Text())
	assert.Contains(t, doc.Find("style").Text(), ".rich-text .chroma")
}
