package components

import (
	"paskoocheh/framework"
	"paskoocheh/internal/i18n"
	"paskoocheh/internal/web/appcore"
)

// Element ids of the lists that grow through live patches.
const (
	ToolsList   = "tools"
	ReviewsList = "reviews"
	PostsList   = "posts"
)

func itemsID(list string) string  { return list + "-items" }
func moreID(list string) string   { return list + "-more" }
func statusID(list string) string { return list + "-status" }

// listing renders a paginated list: the items, the load-more control and the status region
// screen readers follow. Signals on the section carry the pagination state between requests.
func listing[T any](
	h *html,
	t i18n.Translator,
	list string,
	view appcore.Listing[T],
	empty string,
	item func(h *html, value T),
) {
	h.open("section", "class", "listing", "id", list,
		"data-signals", signalsJSON(view.Signals()),
		"data-class:is-loading", "$loading")

	if view.Empty() {
		h.el("p", empty, "class", "empty")
	}

	h.open("ul", "id", itemsID(list), "class", "items")
	for _, value := range view.Items {
		item(h, value)
	}
	h.close("ul")

	loadMore(h, t, list, view)
	status(h, list, view.Status)
	h.close("section")
}

// loadMore always renders its wrapper so a later patch has a target to replace.
func loadMore[T any](h *html, t i18n.Translator, list string, view appcore.Listing[T]) {
	h.open("div", "id", moreID(list), "class", "load-more")
	if view.HasNextPage && view.LiveURL != "" {
		h.open("button", "type", "button",
			"data-on:click", announce(statusID(list), t.T("loader.started"))+getAction(view.LiveURL),
			"data-indicator:loading", "",
			"data-attr:disabled", "$loading")
		h.el("span", t.T("loader.loadMore"), "class", "label")
		h.el("span", t.T("loader.loading"), "class", "indicator", "aria-hidden", "true")
		h.close("button")
	}
	h.close("div")
}

func status(h *html, list string, text string) {
	class := "status"
	if text == "" {
		class = "status visually-hidden"
	}
	h.el("p", text, "id", statusID(list), "class", class, "role", "status", "aria-live", "polite")
}

// livePatches appends the new items, then replaces the control and the status region.
func livePatches[T any](
	t i18n.Translator,
	list string,
	view appcore.Listing[T],
	item func(h *html, value T),
) framework.LiveResponse {
	patches := make([]framework.LivePatch, 0, 3)
	if len(view.Items) > 0 {
		patches = append(patches, framework.LivePatch{
			Selector: "#" + itemsID(list),
			Mode:     framework.PatchAppend,
			Component: component(func(h *html) {
				for _, value := range view.Items {
					item(h, value)
				}
			}),
		})
	}
	patches = append(patches,
		framework.LivePatch{
			Selector:  "#" + moreID(list),
			Mode:      framework.PatchOuter,
			Component: component(func(h *html) { loadMore(h, t, list, view) }),
		},
		framework.LivePatch{
			Selector:  "#" + statusID(list),
			Mode:      framework.PatchOuter,
			Component: component(func(h *html) { status(h, list, view.Status) }),
		},
	)

	return framework.LiveResponse{Patches: patches, Signals: view.Signals()}
}
