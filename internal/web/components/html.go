// Package components renders every page, the shared layout and the live patches.
package components

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// html writes markup and remembers the first write error, so render functions can be
// written straight through and checked once.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(render func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{ctx: ctx, w: w}
		render(h)
		return h.err
	})
}

// raw writes markup built in this package from literals and escaped values.
func (h *html) raw(markup string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, markup)
}

// trusted writes markup that was sanitized when it was produced, such as rendered markdown.
func (h *html) trusted(markup template.HTML) {
	h.raw(string(markup))
}

func (h *html) text(value string) {
	h.raw(templ.EscapeString(value))
}

// open writes a start tag. attrs alternate name and value; a name without a value ("") is
// written as a boolean attribute when its value is "".
func (h *html) open(tag string, attrs ...string) {
	h.raw("<" + tag)
	for idx := 0; idx+1 < len(attrs); idx += 2 {
		name, value := attrs[idx], attrs[idx+1]
		if name == "" {
			continue
		}
		if value == "" && isBoolean(name) {
			h.raw(" " + name)
			continue
		}
		h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
	}
	h.raw(">")
}

func (h *html) close(tag string) {
	h.raw("</" + tag + ">")
}

// el writes a whole element with escaped text content.
func (h *html) el(tag string, content string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(content)
	h.close(tag)
}

func (h *html) link(href string, content string, attrs ...string) {
	h.el("a", content, append([]string{"href", href}, attrs...)...)
}

// external writes a link to a URL that came from the backend.
func (h *html) external(href string, content string) {
	h.el("a", content, "href", string(templ.URL(href)), "rel", "noopener noreferrer")
}

func (h *html) child(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func isBoolean(name string) bool {
	switch name {
	case "required", "disabled", "hidden", "selected", "checked", "defer", "async", "novalidate":
		return true
	}
	return strings.HasPrefix(name, "data-indicator")
}

func signalsJSON(value interface{}) string {
	payload, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(payload)
}

// getAction is a Datastar expression fetching url. Built URLs never contain a quote, but a
// raw one would end the string literal.
func getAction(url string) string {
	return "@get('" + strings.ReplaceAll(url, "'", "%27") + "')"
}

// announce is a Datastar statement writing text into the status region with id, so screen
// readers hear that loading started before the response arrives.
func announce(id string, text string) string {
	return "document.getElementById(" + signalsJSON(id) + ").textContent = " + signalsJSON(text) + "; "
}

func shortDate(value string) string {
	if len(value) >= 10 {
		return value[:10]
	}
	return value
}
