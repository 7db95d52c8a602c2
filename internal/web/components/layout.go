package components

import (
	"github.com/a-h/templ"
	"paskoocheh/internal/routes"
	"paskoocheh/internal/web/appcore"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// Layout wraps a page in the document shell, header navigation and footer.
func Layout(view appcore.Layout, child templ.Component) templ.Component {
	chrome := view.LayoutChrome()
	t := chrome.T

	return component(func(h *html) {
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", string(chrome.Locale), "dir", chrome.Dir)
		h.open("head")
		h.open("meta", "charset", "utf-8")
		h.open("meta", "name", "viewport", "content", "width=device-width, initial-scale=1")
		h.el("title", chrome.Title)
		h.open("link", "rel", "stylesheet", "href", "/static/app.css")
		h.open("script", "type", "module", "src", datastarScript)
		h.close("script")
		h.close("head")

		h.open("body")
		h.link("#main", t.T("site.skipToContent"), "class", "skip-link")
		header(h, chrome)
		h.open("main", "id", "main")
		h.child(child)
		h.close("main")
		h.open("footer", "class", "site-footer")
		h.el("p", t.T("site.tagline"))
		h.close("footer")
		h.close("body")
		h.close("html")
	})
}

func header(h *html, chrome appcore.Chrome) {
	t := chrome.T

	h.open("header", "class", "site-header")
	h.link(chrome.Nav.Home, t.T("site.title"), "class", "brand")

	h.open("nav", "aria-label", t.T("nav.home"))
	h.open("ul", "class", "nav")
	navItem(h, chrome.Nav.Home, t.T("nav.home"))
	navItem(h, chrome.Nav.Blog, t.T("nav.blog"))
	if chrome.User != nil {
		navItem(h, chrome.Nav.Rewards, t.T("nav.rewards"))
		navItem(h, chrome.Nav.Settings, t.T("nav.settings"))
	} else {
		navItem(h, chrome.Nav.SignIn, t.T("nav.signIn"))
		navItem(h, chrome.Nav.SignUp, t.T("nav.signUp"))
	}
	h.close("ul")
	h.close("nav")

	h.open("form", "class", "search", "method", "get", "action", chrome.Nav.Search, "role", "search")
	h.open("input", "type", "hidden", "name", "platform", "value", chrome.Platform)
	h.open("input", "type", "search", "name", "query", "value", chrome.SearchQuery,
		"placeholder", t.T("search.placeholder"), "aria-label", t.T("search.placeholder"))
	h.el("button", t.T("search.submit"), "type", "submit")
	h.close("form")

	switcher(h, "platforms", t.T("nav.platform"), chrome.PlatformLinks, chrome.Platform)
	switcher(h, "locales", t.T("nav.language"), chrome.LocaleLinks, string(chrome.Locale))

	if chrome.User != nil {
		h.open("form", "class", "signout", "method", "post", "action", chrome.Nav.SignOut)
		h.el("span", chrome.User.Username, "class", "username")
		h.el("button", t.T("nav.signOut"), "type", "submit")
		h.close("form")
	}
	h.close("header")
}

func navItem(h *html, href string, label string) {
	h.open("li")
	h.link(href, label)
	h.close("li")
}

func switcher(h *html, class string, label string, links []routes.RouteInfo, current string) {
	if len(links) < 2 {
		return
	}

	h.open("nav", "class", "switcher "+class, "aria-label", label)
	h.open("ul")
	for _, link := range links {
		h.open("li")
		if link.Key == current {
			h.link(link.Route, link.Name, "aria-current", "true")
		} else {
			h.link(link.Route, link.Name)
		}
		h.close("li")
	}
	h.close("ul")
	h.close("nav")
}
