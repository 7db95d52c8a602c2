package components

import (
	"strconv"

	"github.com/a-h/templ"
	"paskoocheh/framework"
	"paskoocheh/internal/catalog"
	"paskoocheh/internal/i18n"
	"paskoocheh/internal/markdown"
	"paskoocheh/internal/web/appcore"
)

// ToolListPage serves the home, category and search pages.
func ToolListPage(view appcore.ToolListView) templ.Component {
	t := view.T

	return component(func(h *html) {
		h.el("h1", view.Heading)

		if view.SearchURL != "" {
			h.open("form", "class", "search-page", "method", "get", "action", view.SearchURL, "role", "search")
			h.open("input", "type", "hidden", "name", "platform", "value", view.Platform)
			h.open("input", "type", "search", "name", "query", "value", view.Query,
				"placeholder", t.T("search.placeholder"), "aria-label", t.T("search.placeholder"))
			h.el("button", t.T("search.submit"), "type", "submit")
			h.close("form")
		}

		empty := t.T("home.empty")
		switch {
		case view.SearchURL != "" && view.Query == "":
			empty = t.T("search.prompt")
		case view.SearchURL != "":
			empty = t.T("search.empty")
		case view.Category != "":
			empty = t.T("category.empty")
		}

		listing(h, t, ToolsList, view.Tools, empty, toolCard(t, view.Links))
	})
}

func ToolsLive(view appcore.LiveView[catalog.ToolPreview]) framework.LiveResponse {
	return livePatches(view.T, ToolsList, view.Listing, toolCard(view.T, view.Links))
}

func toolCard(t i18n.Translator, links appcore.ToolLinks) func(h *html, tool catalog.ToolPreview) {
	return func(h *html, tool catalog.ToolPreview) {
		h.open("li", "class", "tool-card", "id", "tool-"+strconv.Itoa(tool.ID))
		if tool.IconURL != "" {
			h.open("img", "src", string(templ.URL(tool.IconURL)), "alt", "", "width", "48", "height", "48", "loading", "lazy")
		}
		h.open("h2")
		h.link(links.Detail(tool.ID), tool.Name)
		h.close("h2")
		if tool.Summary != "" {
			h.el("p", tool.Summary)
		}
		if tool.Category.Slug != "" {
			h.link(links.Category(tool.Category.Slug), categoryLabel(tool.Category), "class", "category")
		}
		h.close("li")
	}
}

func categoryLabel(category catalog.Category) string {
	if category.Name != "" {
		return category.Name
	}
	return category.Slug
}

func AppPage(view appcore.AppView) templ.Component {
	t := view.T
	tool := view.Tool

	return component(func(h *html) {
		h.open("article", "class", "app")
		h.open("header")
		if tool.IconURL != "" {
			h.open("img", "src", string(templ.URL(tool.IconURL)), "alt", "", "width", "96", "height", "96")
		}
		h.el("h1", tool.Name)
		if tool.Summary != "" {
			h.el("p", tool.Summary, "class", "summary")
		}
		if tool.Category.Slug != "" {
			h.link(view.Links.Category(tool.Category.Slug), categoryLabel(tool.Category), "class", "category")
		}
		if tool.HasRating {
			h.el("p", t.T("app.rating")+": "+strconv.FormatFloat(tool.AverageRating, 'f', 1, 64), "class", "rating")
		}
		if tool.Website != "" {
			h.open("p")
			h.external(tool.Website, t.T("app.website"))
			h.close("p")
		}
		h.close("header")

		if view.Latest != nil {
			h.open("section", "class", "download")
			h.el("h2", t.T("app.latest")+": "+view.Latest.Number)
			if view.Latest.DownloadURL != "" {
				h.el("a", t.T("app.download"), "href", string(templ.URL(view.Latest.DownloadURL)),
					"class", "button", "rel", "noopener noreferrer")
			}
			h.close("section")
		}

		if len(tool.Images) > 0 {
			h.open("ul", "class", "screenshots")
			for _, image := range tool.Images {
				h.open("li")
				h.open("img", "src", string(templ.URL(image.URL)), "alt", image.Alt, "loading", "lazy")
				h.close("li")
			}
			h.close("ul")
		}

		if tool.DescriptionHTML != "" {
			h.trusted(appcore.ChromaStyleTag())
			h.open("div", "class", "description "+markdown.RichTextClass)
			h.trusted(tool.DescriptionHTML)
			h.close("div")
		}

		versions(h, t, tool.Versions)

		h.open("section", "class", "reviews")
		h.open("h2")
		h.link(view.ReviewsURL, t.T("app.reviews"))
		h.close("h2")
		listing(h, t, ReviewsList, view.Reviews, t.T("reviews.empty"), reviewItem(t))
		h.close("section")
		h.close("article")
	})
}

func versions(h *html, t i18n.Translator, list []catalog.Version) {
	h.open("section", "class", "versions")
	h.el("h2", t.T("app.versions"))
	if len(list) == 0 {
		h.el("p", t.T("app.noVersions"), "class", "empty")
		h.close("section")
		return
	}

	h.open("table")
	h.open("thead")
	h.open("tr")
	h.el("th", t.T("app.version"), "scope", "col")
	h.el("th", t.T("app.released"), "scope", "col")
	h.el("th", t.T("app.size"), "scope", "col")
	h.el("th", t.T("app.download"), "scope", "col")
	h.close("tr")
	h.close("thead")
	h.open("tbody")
	for _, version := range list {
		h.open("tr")
		h.el("td", version.Number)
		h.el("td", shortDate(version.ReleasedAt))
		h.el("td", appcore.FileSize(t, version.Size))
		h.open("td")
		if version.DownloadURL != "" {
			h.external(version.DownloadURL, t.T("app.download"))
		}
		h.close("td")
		h.close("tr")
	}
	h.close("tbody")
	h.close("table")
	h.close("section")
}

func ReviewsPage(view appcore.ReviewsView) templ.Component {
	t := view.T

	return component(func(h *html) {
		h.el("h1", view.Tool.Name+": "+t.T("reviews.title"))
		h.open("p")
		h.link(view.AppURL, t.T("reviews.back"))
		h.close("p")
		listing(h, t, ReviewsList, view.Reviews, t.T("reviews.empty"), reviewItem(t))
	})
}

func ReviewsLive(view appcore.LiveView[catalog.ReviewPreview]) framework.LiveResponse {
	return livePatches(view.T, ReviewsList, view.Listing, reviewItem(view.T))
}

func reviewItem(t i18n.Translator) func(h *html, review catalog.ReviewPreview) {
	return func(h *html, review catalog.ReviewPreview) {
		h.open("li", "class", "review", "id", "review-"+review.ID)
		h.open("p", "class", "meta")
		h.el("strong", review.Username)
		h.raw(" ")
		h.el("span", appcore.RatingStars(review.Rating), "class", "stars",
			"aria-label", t.T("app.rating")+" "+t.Number(review.Rating))
		h.raw(" ")
		h.el("time", shortDate(review.CreatedAt), "datetime", review.CreatedAt)
		h.close("p")
		if review.Text != "" {
			h.el("p", review.Text)
		}
		h.close("li")
	}
}
