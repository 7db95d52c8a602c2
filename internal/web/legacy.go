package web

import (
	"context"
	"net/http"
	"regexp"
	"strconv"

	"go.uber.org/zap"
	"paskoocheh/framework/router"
	"paskoocheh/internal/locale"
	"paskoocheh/internal/platforms"
	"paskoocheh/internal/routes"
)

var legacyToolPath = regexp.MustCompile(`^/tools/([0-9]+)/([^/]+)\.html$`)

// platformLister has the shape of platforms.Service.List.
type platformLister func(ctx context.Context) ([]platforms.Platform, error)

// legacyRedirect sends links of the previous site to the app page in the default locale.
// Platforms the backend does not list become the default platform. Other paths under /tools/
// fall through to next.
func legacyRedirect(defaults locale.Defaults, list platformLister, logger *zap.Logger, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match := legacyToolPath.FindStringSubmatch(r.URL.Path)
		if match == nil {
			logger.Warn("unrecognised legacy path", zap.String("path", r.URL.Path))
			next.ServeHTTP(w, r)
			return
		}

		id, err := strconv.Atoi(match[1])
		if err != nil || id < 1 || !router.IsValidSlug(match[2]) {
			logger.Warn("unrecognised legacy path", zap.String("path", r.URL.Path))
			next.ServeHTTP(w, r)
			return
		}

		policy := cacheControlLegacyRedirect
		platform := defaults.Platform
		known, err := list(r.Context())
		switch {
		case err != nil:
			// The slug could not be checked; do not let caches keep the fallback.
			logger.Warn("platform list unavailable for legacy redirect", zap.Error(err))
			policy = cacheControlPrivate
		case platforms.Contains(known, match[2]):
			platform = match[2]
		default:
			logger.Info("legacy link names an unknown platform",
				zap.String("path", r.URL.Path),
				zap.String("platform", match[2]),
			)
		}

		target := routes.Build(routes.AppDetail, routes.Args{
			Locale:   defaults.Locale,
			ToolID:   id,
			Platform: platform,
		})
		setCacheControl(w, policy)
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	}
}
