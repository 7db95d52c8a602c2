// Package web wires the page modules, form handlers and middleware into one HTTP handler.
package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"paskoocheh/framework"
	"paskoocheh/framework/httpserver"
	"paskoocheh/internal/blog"
	"paskoocheh/internal/catalog"
	"paskoocheh/internal/locale"
	"paskoocheh/internal/routes"
	"paskoocheh/internal/web/appcore"
	"paskoocheh/internal/web/components"
)

type Options struct {
	AppContext *appcore.Context
	// Sessions is nil when tokens live elsewhere, as in tests using session.MemoryStore.
	Sessions  *scs.SessionManager
	StaticDir string
	// LiveNavigationCache overrides the Cache-Control of live navigation responses.
	LiveNavigationCache string
	LoginRatePerMinute  int
	TrustedOrigins      []string
	Logger              *zap.Logger
}

type appContext = *appcore.Context

// NewRouter returns the application's HTTP handler.
func NewRouter(opts Options) (http.Handler, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	appCtx := opts.AppContext

	paths, err := appcore.NewPaths()
	if err != nil {
		return nil, err
	}

	pages, err := httpserver.New(httpserver.Config[appContext]{
		AppContext: appCtx,
		Handlers:   Handlers(paths),
		Static: httpserver.StaticMount{
			URLPrefix: "/static/",
			Dir:       opts.StaticDir,
		},
		CachePolicies: httpserver.CachePolicies{
			LiveNavigation: opts.LiveNavigationCache,
		},
		IsNotFoundError: appcore.IsNotFoundError,
		NotFoundPage: func(r *http.Request, _ framework.NotFoundContext) templ.Component {
			view := appCtx.NotFoundView(r)
			return components.Layout(view, components.NotFoundPage(view))
		},
		ServerErrorPage: func(r *http.Request) templ.Component {
			view := appCtx.ErrorView(r)
			return components.Layout(view, components.ErrorPage(view))
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create page server: %w", err)
	}

	forms := &forms{
		appCtx:   appCtx,
		sessions: opts.Sessions,
		limiter:  newLoginLimiter(opts.LoginRatePerMinute),
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(requestCache)
	if opts.Sessions != nil {
		r.Use(opts.Sessions.LoadAndSave)
	}
	r.Use(crossOriginProtection(opts.TrustedOrigins, logger))

	defaults := appCtx.Settings().Defaults
	r.Get("/", rootRedirect(defaults.Locale))
	r.Get("/tools/*", legacyRedirect(defaults, appCtx.Services().Platforms.List, logger, pages))

	r.Post("/{locale}/signin", forms.signIn)
	r.Post("/{locale}/signup", forms.signUp)
	r.Post("/{locale}/reset-password", forms.resetPassword)
	r.Post("/{locale}/settings", forms.settings)
	r.Post("/{locale}/signout", forms.signOut)

	// GET on the form paths, and every other method and path, belongs to the page server.
	r.MethodNotAllowed(pages.ServeHTTP)
	r.Handle("/*", pages)

	return r, nil
}

// rootRedirect picks the visitor's language from Accept-Language.
func rootRedirect(fallback locale.Code) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := locale.Negotiate(r.Header.Get("Accept-Language"), fallback)
		w.Header().Add("Vary", "Accept-Language")
		setCacheControl(w, cacheControlPrivate)
		target := routes.Build(routes.Home, routes.Args{Locale: code})
		if query := strings.TrimSpace(r.URL.RawQuery); query != "" {
			target += "?" + query
		}
		http.Redirect(w, r, target, http.StatusFound)
	}
}

func layouts[VM appcore.Layout]() []framework.LayoutRenderer[VM] {
	return []framework.LayoutRenderer[VM]{
		func(view VM, child templ.Component) templ.Component {
			return components.Layout(view, child)
		},
	}
}

func page[P any, VM appcore.Layout](
	pattern string,
	parse framework.ParamsParser[P],
	load framework.PageLoader[appContext, P, VM],
	render framework.PageRenderer[VM],
) framework.PageModule[appContext, P, VM] {
	return framework.PageModule[appContext, P, VM]{
		Pattern:     pattern,
		ParseParams: parse,
		Load:        load,
		Render:      render,
		Layouts:     layouts[VM](),
	}
}

func live[P any, VM any](
	pattern string,
	parse framework.ParamsParser[P],
	load framework.LiveLoader[appContext, P, appcore.ListingSignals, VM],
	respond framework.LiveResponder[VM],
) framework.LiveModule[appContext, P, appcore.ListingSignals, VM] {
	return framework.LiveModule[appContext, P, appcore.ListingSignals, VM]{
		Pattern:     pattern,
		ParseParams: parse,
		ParseState:  appcore.ParseListingState,
		Load:        load,
		Respond:     respond,
	}
}

type toolsLive = appcore.LiveView[catalog.ToolPreview]
type reviewsLive = appcore.LiveView[catalog.ReviewPreview]
type postsLive = appcore.LiveView[blog.PostPreview]

// Handlers lists every page of the site with its live endpoint, if it has one.
func Handlers(paths *appcore.Paths) []framework.RouteHandler[appContext] {
	return []framework.RouteHandler[appContext]{
		framework.PageLiveRouteHandler[appContext, appcore.LocaleParams, appcore.LocaleParams, appcore.ListingSignals, appcore.ToolListView, toolsLive]{
			Page: page(appcore.PatternHome, paths.Locale(appcore.PatternHome), appcore.LoadHomePage, components.ToolListPage),
			Live: live(appcore.PatternHomeLive, paths.Locale(appcore.PatternHomeLive), appcore.LoadHomeLive, components.ToolsLive),
		},
		framework.PageLiveRouteHandler[appContext, appcore.SlugParams, appcore.SlugParams, appcore.ListingSignals, appcore.ToolListView, toolsLive]{
			Page: page(appcore.PatternCategory, paths.Slug(appcore.PatternCategory), appcore.LoadCategoryPage, components.ToolListPage),
			Live: live(appcore.PatternCategoryLive, paths.Slug(appcore.PatternCategoryLive), appcore.LoadCategoryLive, components.ToolsLive),
		},
		framework.PageLiveRouteHandler[appContext, appcore.LocaleParams, appcore.LocaleParams, appcore.ListingSignals, appcore.ToolListView, toolsLive]{
			Page: page(appcore.PatternSearch, paths.Locale(appcore.PatternSearch), appcore.LoadSearchPage, components.ToolListPage),
			Live: live(appcore.PatternSearchLive, paths.Locale(appcore.PatternSearchLive), appcore.LoadSearchLive, components.ToolsLive),
		},
		framework.PageOnlyRouteHandler[appContext, appcore.ToolParams, appcore.AppView]{
			Page: page(appcore.PatternApp, paths.Tool(appcore.PatternApp), appcore.LoadAppPage, components.AppPage),
		},
		framework.PageLiveRouteHandler[appContext, appcore.ToolParams, appcore.ToolParams, appcore.ListingSignals, appcore.ReviewsView, reviewsLive]{
			Page: page(appcore.PatternAppReviews, paths.Tool(appcore.PatternAppReviews), appcore.LoadReviewsPage, components.ReviewsPage),
			Live: live(appcore.PatternReviewsLive, paths.Tool(appcore.PatternReviewsLive), appcore.LoadReviewsLive, components.ReviewsLive),
		},
		framework.PageLiveRouteHandler[appContext, appcore.LocaleParams, appcore.LocaleParams, appcore.ListingSignals, appcore.BlogView, postsLive]{
			Page: page(appcore.PatternBlog, paths.Locale(appcore.PatternBlog), appcore.LoadBlogPage, components.BlogPage),
			Live: live(appcore.PatternBlogLive, paths.Locale(appcore.PatternBlogLive), appcore.LoadBlogLive, components.PostsLive),
		},
		framework.PageOnlyRouteHandler[appContext, appcore.SlugParams, appcore.PostView]{
			Page: page(appcore.PatternBlogPost, paths.Slug(appcore.PatternBlogPost), appcore.LoadPostPage, components.PostPage),
		},
		framework.PageOnlyRouteHandler[appContext, appcore.LocaleParams, appcore.RewardsView]{
			Page: page(appcore.PatternRewards, paths.Locale(appcore.PatternRewards), appcore.LoadRewardsPage, components.RewardsPage),
		},
		framework.PageOnlyRouteHandler[appContext, appcore.LocaleParams, appcore.SignInView]{
			Page: page(appcore.PatternSignIn, paths.Locale(appcore.PatternSignIn), appcore.LoadSignInPage, components.SignInPage),
		},
		framework.PageOnlyRouteHandler[appContext, appcore.LocaleParams, appcore.SignUpView]{
			Page: page(appcore.PatternSignUp, paths.Locale(appcore.PatternSignUp), appcore.LoadSignUpPage, components.SignUpPage),
		},
		framework.PageOnlyRouteHandler[appContext, appcore.LocaleParams, appcore.ResetView]{
			Page: page(appcore.PatternResetPassword, paths.Locale(appcore.PatternResetPassword), appcore.LoadResetPasswordPage, components.ResetPasswordPage),
		},
		framework.PageOnlyRouteHandler[appContext, appcore.LocaleParams, appcore.SettingsView]{
			Page: page(appcore.PatternSettings, paths.Locale(appcore.PatternSettings), appcore.LoadSettingsPage, components.SettingsPage),
		},
	}
}
