package appcore

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
	"paskoocheh/internal/i18n"
	"paskoocheh/internal/markdown"
)

// ParseListingState reads the signals a load-more control sends. Plain GET requests without
// a datastar payload fall back to the query string, which keeps the endpoint usable by links.
func ParseListingState(r *http.Request) (ListingSignals, error) {
	query := r.URL.Query()
	fallback := ListingSignals{
		View:    strings.TrimSpace(query.Get("view")),
		Cursor:  strings.TrimSpace(query.Get("cursor")),
		Count:   parseCount(query.Get("count")),
		HasNext: query.Get("hasNext") == "true",
	}

	state, err := readDatastarState(r, fallback)
	if err != nil {
		return ListingSignals{}, err
	}
	state.View = strings.TrimSpace(state.View)
	state.Cursor = strings.TrimSpace(state.Cursor)
	state.Count = max(state.Count, 0)

	return state, nil
}

func readDatastarState[T interface{}](r *http.Request, fallback T) (T, error) {
	if r.Method == http.MethodGet && strings.TrimSpace(r.URL.Query().Get(datastar.DatastarKey)) == "" {
		return fallback, nil
	}

	parsed := fallback
	if err := datastar.ReadSignals(r, &parsed); err != nil {
		return fallback, err
	}

	return parsed, nil
}

func parseCount(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

func RatingStars(rating int) string {
	rating = min(max(rating, 0), 5)
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func FileSize(t i18n.Translator, bytes int) string {
	switch {
	case bytes <= 0:
		return ""
	case bytes < 1024:
		return t.Number(bytes) + " B"
	case bytes < 1024*1024:
		return t.Number(bytes/1024) + " KB"
	default:
		return t.Number(bytes/(1024*1024)) + " MB"
	}
}

// ChromaStyleTag carries the highlighting rules for rendered markdown on the same page.
func ChromaStyleTag() template.HTML {
	return template.HTML("<style>" + string(markdown.ChromaCSS()) + "</style>")
}
