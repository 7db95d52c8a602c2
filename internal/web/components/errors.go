package components

import (
	"github.com/a-h/templ"
	"paskoocheh/internal/web/appcore"
)

func NotFoundPage(view appcore.NotFoundView) templ.Component {
	t := view.T

	return component(func(h *html) {
		h.open("section", "class", "error-page")
		h.el("h1", t.T("notFound.title"))
		h.el("p", t.T("notFound.body"))
		h.open("p")
		h.link(view.HomeURL, t.T("common.backHome"))
		h.close("p")
		h.close("section")
	})
}

// ErrorPage never shows the failure itself.
func ErrorPage(view appcore.ErrorView) templ.Component {
	t := view.T

	return component(func(h *html) {
		h.open("section", "class", "error-page")
		h.el("h1", t.T("error.title"))
		h.el("p", t.T("error.body"))
		h.open("p")
		h.link(view.HomeURL, t.T("common.backHome"))
		h.close("p")
		h.close("section")
	})
}
