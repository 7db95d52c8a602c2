package routes

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paskoocheh/internal/locale"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		page     Page
		args     Args
		expected string
	}{
		{name: "home", page: Home, args: Args{Locale: locale.Farsi}, expected: "/fa/"},
		{name: "home platform", page: Home, args: Args{Locale: locale.English, Platform: "windows"}, expected: "/en/?platform=windows"},
		{name: "app detail", page: AppDetail, args: Args{Locale: locale.English, ToolID: 123, Platform: "android"}, expected: "/en/app/123?platform=android"},
		{name: "app reviews", page: AppReviews, args: Args{Locale: locale.Farsi, ToolID: 7, Platform: "ios"}, expected: "/fa/app/7/reviews?platform=ios"},
		{name: "reviews live", page: ReviewsLive, args: Args{Locale: locale.Farsi, ToolID: 7}, expected: "/fa/app/7/reviews/live"},
		{name: "search", page: Search, args: Args{Locale: locale.English, Query: "tor browser", Platform: "mac"}, expected: "/en/search?platform=mac&query=tor+browser"},
		{name: "search live", page: SearchLive, args: Args{Locale: locale.English, Query: "vpn"}, expected: "/en/search/live?query=vpn"},
		{name: "category", page: Category, args: Args{Locale: locale.English, Slug: "vpn"}, expected: "/en/category/vpn"},
		{name: "blog without topic", page: Blog, args: Args{Locale: locale.Farsi}, expected: "/fa/blog"},
		{name: "blog topic", page: Blog, args: Args{Locale: locale.Farsi, Topic: "security"}, expected: "/fa/blog?topic=security"},
		{name: "blog live hashtag", page: BlogLive, args: Args{Locale: locale.Farsi, Hashtag: "vpn"}, expected: "/fa/blog/live?hashtag=vpn"},
		{name: "blog post", page: BlogPost, args: Args{Locale: locale.English, Slug: "hello world"}, expected: "/en/blog/hello%20world"},
		{name: "sign in return", page: SignIn, args: Args{Locale: locale.English, ReturnTo: "/en/rewards?x=1&y=2"}, expected: "/en/signin?return=%2Fen%2Frewards%3Fx%3D1%26y%3D2"},
		{name: "sign up referral", page: SignUp, args: Args{Locale: locale.Farsi, Referral: "AB 12"}, expected: "/fa/signup?ref=AB+12"},
		{name: "settings", page: Settings, args: Args{Locale: locale.English}, expected: "/en/settings"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Build(tc.page, tc.args))
		})
	}
}

func TestBuildEncodesFreeText(t *testing.T) {
	pages := []Page{Home, AppDetail, AppReviews, Search, Category, Blog, BlogPost, Rewards, SignIn, SignUp, ResetPassword, Settings, SearchLive, BlogLive}
	args := Args{
		Platform: "win dows&x",
		ToolID:   9,
		Slug:     "a b&c",
		Topic:    "privacy & you",
		Query:    "tor & vpn = fast#1",
		Hashtag:  "a b",
		ReturnTo: "/fa/app/1?platform=a&b",
	}

	for _, code := range locale.Supported() {
		for _, page := range pages {
			args.Locale = code
			built := Build(page, args)

			require.True(t, strings.HasPrefix(built, "/"+string(code)+"/"), built)
			assert.NotContains(t, built, " ", built)
			assert.Equal(t, built, Build(page, args), "idempotent")

			parsed, err := url.Parse(built)
			require.NoError(t, err)
			for key, values := range parsed.Query() {
				require.Len(t, values, 1, key)
			}
			if rawQuery := parsed.RawQuery; rawQuery != "" {
				assert.Equal(t, len(parsed.Query()), strings.Count(rawQuery, "&")+1, built)
			}
		}
	}
}

func TestBuildOmitsEmptyOptionalParameters(t *testing.T) {
	built := Build(Blog, Args{Locale: locale.English, Topic: "", Hashtag: "  "})
	assert.Equal(t, "/en/blog", built)
}

func TestPlatformLinks(t *testing.T) {
	links := PlatformLinks(Search, Args{Locale: locale.English, Query: "vpn", Platform: "android"}, []PlatformLabel{
		{Slug: "android", Name: "Android"},
		{Slug: "windows", Name: "Windows"},
	})

	require.Len(t, links, 2)
	assert.Equal(t, RouteInfo{Key: "windows", Name: "Windows", Route: "/en/search?platform=windows&query=vpn"}, links[1])
}

func TestLocaleLinks(t *testing.T) {
	links := LocaleLinks(BlogPost, Args{Locale: locale.English, Slug: "intro"}, map[locale.Code]string{locale.Farsi: "فارسی"})

	require.Len(t, links, 2)
	assert.Equal(t, "/en/blog/intro", links[0].Route)
	assert.Equal(t, "en", links[0].Name)
	assert.Equal(t, "/fa/blog/intro", links[1].Route)
	assert.Equal(t, "فارسی", links[1].Name)
}

func TestSafeReturnPath(t *testing.T) {
	assert.Equal(t, "/en/rewards?x=1", SafeReturnPath("/en/rewards?x=1", "/en/"))
	assert.Equal(t, "/en/", SafeReturnPath("//evil.test/x", "/en/"))
	assert.Equal(t, "/en/", SafeReturnPath("https://evil.test", "/en/"))
	assert.Equal(t, "/en/", SafeReturnPath("/\\evil.test", "/en/"))
	assert.Equal(t, "/en/", SafeReturnPath("", "/en/"))
}
