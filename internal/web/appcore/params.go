package appcore

import (
	"fmt"
	"strconv"

	"paskoocheh/framework"
	"paskoocheh/framework/router"
	"paskoocheh/internal/locale"
)

const (
	PatternHome          = "/[locale]"
	PatternHomeLive      = "/[locale]/live"
	PatternSearch        = "/[locale]/search"
	PatternSearchLive    = "/[locale]/search/live"
	PatternCategory      = "/[locale]/category/[slug]"
	PatternCategoryLive  = "/[locale]/category/[slug]/live"
	PatternApp           = "/[locale]/app/[id]"
	PatternAppReviews    = "/[locale]/app/[id]/reviews"
	PatternReviewsLive   = "/[locale]/app/[id]/reviews/live"
	PatternBlog          = "/[locale]/blog"
	PatternBlogLive      = "/[locale]/blog/live"
	PatternBlogPost      = "/[locale]/blog/[slug]"
	PatternRewards       = "/[locale]/rewards"
	PatternSignIn        = "/[locale]/signin"
	PatternSignUp        = "/[locale]/signup"
	PatternResetPassword = "/[locale]/reset-password"
	PatternSettings      = "/[locale]/settings"
)

func Patterns() []string {
	return []string{
		PatternHome, PatternHomeLive,
		PatternSearch, PatternSearchLive,
		PatternCategory, PatternCategoryLive,
		PatternApp, PatternAppReviews, PatternReviewsLive,
		PatternBlog, PatternBlogLive, PatternBlogPost,
		PatternRewards,
		PatternSignIn, PatternSignUp, PatternResetPassword, PatternSettings,
	}
}

type LocaleParams struct {
	Locale locale.Code
}

type SlugParams struct {
	Locale locale.Code
	Slug   string
}

type ToolParams struct {
	Locale locale.Code
	ToolID int
}

// Paths parses request paths against every page pattern at once, so a path is claimed only by
// its most specific pattern.
type Paths struct {
	router *router.AppRouter
}

func NewPaths() (*Paths, error) {
	appRouter, err := router.NewAppRouter(Patterns()...)
	if err != nil {
		return nil, fmt.Errorf("build page router: %w", err)
	}
	return &Paths{router: appRouter}, nil
}

func (p *Paths) Locale(pattern string) framework.ParamsParser[LocaleParams] {
	id := mustRouteID(pattern)
	return func(path string) (LocaleParams, bool) {
		_, code, ok := p.match(id, path)
		return LocaleParams{Locale: code}, ok
	}
}

func (p *Paths) Slug(pattern string) framework.ParamsParser[SlugParams] {
	id := mustRouteID(pattern)
	return func(path string) (SlugParams, bool) {
		match, code, ok := p.match(id, path)
		if !ok {
			return SlugParams{}, false
		}
		slug, _ := match.Param("slug")
		if !router.IsValidSlug(slug) {
			return SlugParams{}, false
		}
		return SlugParams{Locale: code, Slug: slug}, true
	}
}

func (p *Paths) Tool(pattern string) framework.ParamsParser[ToolParams] {
	id := mustRouteID(pattern)
	return func(path string) (ToolParams, bool) {
		match, code, ok := p.match(id, path)
		if !ok {
			return ToolParams{}, false
		}
		raw, _ := match.Param("id")
		toolID, err := strconv.Atoi(raw)
		if err != nil || toolID < 1 || strconv.Itoa(toolID) != raw {
			return ToolParams{}, false
		}
		return ToolParams{Locale: code, ToolID: toolID}, true
	}
}

func (p *Paths) match(id string, path string) (router.AppRouteMatch, locale.Code, bool) {
	match, ok := p.router.Match(path)
	if !ok || match.ID != id {
		return router.AppRouteMatch{}, "", false
	}
	raw, _ := match.Param("locale")
	code, ok := locale.Parse(raw)
	if !ok || string(code) != raw {
		return router.AppRouteMatch{}, "", false
	}
	return match, code, true
}

func mustRouteID(pattern string) string {
	id, err := router.RouteID(pattern)
	if err != nil {
		panic(err)
	}
	return id
}
