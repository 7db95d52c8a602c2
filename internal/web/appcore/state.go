package appcore

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"paskoocheh/internal/accounts"
	"paskoocheh/internal/i18n"
	"paskoocheh/internal/locale"
	"paskoocheh/internal/platforms"
	"paskoocheh/internal/routes"
)

// RequestState is everything a page needs to know about the visitor. It is built once per
// request and never modified afterwards.
type RequestState struct {
	Locale    locale.Code
	Platform  string
	Platforms []platforms.Platform
	User      *accounts.User
	T         i18n.Translator
	// Path is the request URI, used as the return path of sign-in links.
	Path string
}

func (s RequestState) SignedIn() bool {
	return s.User != nil
}

// Args returns link arguments carrying the visitor's locale and platform.
func (s RequestState) Args() routes.Args {
	return routes.Args{Locale: s.Locale, Platform: s.Platform}
}

func (s RequestState) PlatformName() string {
	if platform, ok := platforms.Find(s.Platforms, s.Platform); ok && platform.Name != "" {
		return platform.Name
	}
	return s.Platform
}

// ResolveRequest derives the request state from the URL and the session. The platform list
// and the current user are fetched concurrently; either failing degrades to the defaults.
func (c *Context) ResolveRequest(ctx context.Context, r *http.Request) RequestState {
	return c.resolveRequest(ctx, r, true)
}

// ResolveLiveRequest is ResolveRequest without the current user, which live patches never show.
func (c *Context) ResolveLiveRequest(ctx context.Context, r *http.Request) RequestState {
	return c.resolveRequest(ctx, r, false)
}

func (c *Context) resolveRequest(ctx context.Context, r *http.Request, withUser bool) RequestState {
	resolution := locale.ResolveRequest(r, c.settings.Defaults, c.logger)

	var (
		known []platforms.Platform
		user  *accounts.User
	)

	var g errgroup.Group
	if c.services.Platforms != nil {
		g.Go(func() error {
			list, err := c.services.Platforms.List(ctx)
			if err != nil {
				c.logger.Warn("platform list unavailable, using default platform", zap.Error(err))
				return nil
			}
			known = list
			return nil
		})
	}
	if withUser && c.services.Accounts != nil {
		g.Go(func() error {
			current, err := c.services.Accounts.CurrentUser(ctx, c.tokens)
			if err != nil {
				c.logger.Warn("current user unavailable, continuing signed out", zap.Error(err))
				return nil
			}
			user = current
			return nil
		})
	}
	_ = g.Wait()

	platform := c.settings.Defaults.Platform
	if r != nil && r.URL != nil {
		platform = platforms.Resolve(r.URL.Query(), known, c.settings.Defaults.Platform)
	}

	path := ""
	if r != nil && r.URL != nil {
		path = r.URL.RequestURI()
	}

	return RequestState{
		Locale:    resolution.Locale,
		Platform:  platform,
		Platforms: known,
		User:      user,
		T:         c.strings.For(resolution.Locale),
		Path:      path,
	}
}

// Translator returns the strings for the locale named by r's path, without any backend call.
func (c *Context) Translator(r *http.Request) i18n.Translator {
	resolution := locale.ResolveRequest(r, c.settings.Defaults, c.logger)
	return c.strings.For(resolution.Locale)
}

var localeNames = map[locale.Code]string{
	locale.English: "English",
	locale.Farsi:   "فارسی",
}

// NavLinks are the header links of every page.
type NavLinks struct {
	Home     string
	Search   string
	Blog     string
	Rewards  string
	SignIn   string
	SignUp   string
	Settings string
	SignOut  string
}

// Chrome is what the layout renders around every page.
type Chrome struct {
	Locale        locale.Code
	Dir           string
	T             i18n.Translator
	Title         string
	Platform      string
	PlatformName  string
	PlatformLinks []routes.RouteInfo
	LocaleLinks   []routes.RouteInfo
	User          *accounts.User
	Nav           NavLinks
	SearchQuery   string
}

func (c Chrome) LayoutChrome() Chrome {
	return c
}

// Layout is implemented by every page view through its embedded Chrome.
type Layout interface {
	LayoutChrome() Chrome
}

// Chrome builds the layout for page. Platform and locale switchers keep page and args.
func (s RequestState) Chrome(title string, page routes.Page, args routes.Args) Chrome {
	args.Locale = s.Locale
	if args.Platform == "" {
		args.Platform = s.Platform
	}

	labels := make([]routes.PlatformLabel, 0, len(s.Platforms))
	for _, platform := range s.Platforms {
		labels = append(labels, routes.PlatformLabel{Slug: platform.Slug, Name: platform.Name})
	}

	base := s.Args()
	signIn := base
	signIn.ReturnTo = s.Path

	site := s.T.T("site.title")
	fullTitle := site
	if title != "" && title != site {
		fullTitle = title + " | " + site
	}

	return Chrome{
		Locale:        s.Locale,
		Dir:           s.Locale.Direction(),
		T:             s.T,
		Title:         fullTitle,
		Platform:      s.Platform,
		PlatformName:  s.PlatformName(),
		PlatformLinks: routes.PlatformLinks(page, args, labels),
		LocaleLinks:   routes.LocaleLinks(page, args, localeNames),
		User:          s.User,
		SearchQuery:   args.Query,
		Nav: NavLinks{
			Home:     routes.Build(routes.Home, base),
			Search:   routes.Build(routes.Search, base),
			Blog:     routes.Build(routes.Blog, base),
			Rewards:  routes.Build(routes.Rewards, base),
			SignIn:   routes.Build(routes.SignIn, signIn),
			SignUp:   routes.Build(routes.SignUp, base),
			Settings: routes.Build(routes.Settings, base),
			SignOut:  routes.Build(routes.SignOut, base),
		},
	}
}

// BareChrome is the layout for error pages, which must render even when the backend is down.
func (c *Context) BareChrome(r *http.Request, title string) Chrome {
	t := c.Translator(r)
	state := RequestState{
		Locale:   t.Locale,
		Platform: c.settings.Defaults.Platform,
		T:        t,
	}
	return state.Chrome(title, routes.Home, routes.Args{})
}
