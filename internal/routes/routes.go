// Package routes builds every internal link, redirect target and live endpoint URL.
package routes

import (
	"net/url"
	"strconv"
	"strings"

	"paskoocheh/internal/locale"
)

type Page string

const (
	Home          Page = "home"
	AppDetail     Page = "app"
	AppReviews    Page = "app-reviews"
	Search        Page = "search"
	Category      Page = "category"
	Blog          Page = "blog"
	BlogPost      Page = "blog-post"
	Rewards       Page = "rewards"
	SignIn        Page = "signin"
	SignUp        Page = "signup"
	ResetPassword Page = "reset-password"
	Settings      Page = "settings"
	SignOut       Page = "signout"

	HomeLive     Page = "home-live"
	SearchLive   Page = "search-live"
	CategoryLive Page = "category-live"
	BlogLive     Page = "blog-live"
	ReviewsLive  Page = "reviews-live"
)

const liveSuffix = "/live"

// Args carries everything a link may need. Zero values are omitted from the URL.
type Args struct {
	Locale   locale.Code
	Platform string
	ToolID   int
	Slug     string
	Topic    string
	Query    string
	Hashtag  string
	ReturnTo string
	Referral string
}

type RouteInfo struct {
	Key   string
	Name  string
	Route string
}

// Build returns the path and query string for page. It performs no validation of the
// platform: callers pass an already resolved slug.
func Build(page Page, args Args) string {
	base := "/" + string(args.Locale) + "/"
	q := make(url.Values)
	setIf(q, "platform", args.Platform)

	var path string
	switch page {
	case Home:
		path = base
	case HomeLive:
		path = base + "live"
	case AppDetail:
		path = base + "app/" + strconv.Itoa(args.ToolID)
	case AppReviews:
		path = base + "app/" + strconv.Itoa(args.ToolID) + "/reviews"
	case ReviewsLive:
		path = base + "app/" + strconv.Itoa(args.ToolID) + "/reviews" + liveSuffix
	case Search, SearchLive:
		path = base + "search"
		setIf(q, "query", args.Query)
	case Category, CategoryLive:
		path = base + "category/" + url.PathEscape(args.Slug)
	case Blog, BlogLive:
		path = base + "blog"
		setIf(q, "topic", args.Topic)
		setIf(q, "hashtag", args.Hashtag)
	case BlogPost:
		path = base + "blog/" + url.PathEscape(args.Slug)
	case Rewards:
		path = base + "rewards"
	case SignIn:
		path = base + "signin"
		setIf(q, "return", args.ReturnTo)
	case SignUp:
		path = base + "signup"
		setIf(q, "return", args.ReturnTo)
		setIf(q, "ref", args.Referral)
	case ResetPassword:
		path = base + "reset-password"
	case Settings:
		path = base + "settings"
	case SignOut:
		path = base + "signout"
	default:
		path = base
	}

	switch page {
	case SearchLive, CategoryLive, BlogLive:
		path += liveSuffix
	}

	encoded := q.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

// Absolute prefixes Build's output with the public base URL.
func Absolute(publicURL string, page Page, args Args) string {
	return strings.TrimRight(publicURL, "/") + Build(page, args)
}

// PlatformLinks renders page once per platform slug, keeping every other argument.
func PlatformLinks(page Page, args Args, platforms []PlatformLabel) []RouteInfo {
	out := make([]RouteInfo, 0, len(platforms))
	for _, platform := range platforms {
		linkArgs := args
		linkArgs.Platform = platform.Slug
		out = append(out, RouteInfo{
			Key:   platform.Slug,
			Name:  platform.Name,
			Route: Build(page, linkArgs),
		})
	}
	return out
}

// LocaleLinks renders page once per locale, keeping every other argument.
func LocaleLinks(page Page, args Args, names map[locale.Code]string) []RouteInfo {
	codes := locale.Supported()
	out := make([]RouteInfo, 0, len(codes))
	for _, code := range codes {
		linkArgs := args
		linkArgs.Locale = code
		name := names[code]
		if name == "" {
			name = string(code)
		}
		out = append(out, RouteInfo{
			Key:   string(code),
			Name:  name,
			Route: Build(page, linkArgs),
		})
	}
	return out
}

type PlatformLabel struct {
	Slug string
	Name string
}

// SafeReturnPath accepts only same-site absolute paths; anything else yields fallback.
func SafeReturnPath(raw string, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return fallback
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.IsAbs() || parsed.Host != "" {
		return fallback
	}

	return parsed.RequestURI()
}

func setIf(q url.Values, key string, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	q.Set(key, value)
}
