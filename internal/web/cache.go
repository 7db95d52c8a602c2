package web

import "net/http"

// Cache policies of the responses served outside the page server.
const (
	cacheControlPrivate = "private, no-store"
	// Legacy links never change target, so shared caches may keep the redirect.
	cacheControlLegacyRedirect = "public, max-age=86400, s-maxage=86400"
)

func setCacheControl(w http.ResponseWriter, policy string) {
	w.Header().Set("Cache-Control", policy)
}
