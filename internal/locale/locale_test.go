package locale

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testDefaults = Defaults{Locale: Farsi, Platform: "android"}

func TestParse(t *testing.T) {
	code, ok := Parse(" EN ")
	require.True(t, ok)
	assert.Equal(t, English, code)

	_, ok = Parse("de")
	assert.False(t, ok)
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		locale   Code
		platform string
	}{
		{name: "english page", raw: "/en/app/12?platform=windows", locale: English, platform: "windows"},
		{name: "farsi root", raw: "/fa", locale: Farsi, platform: "android"},
		{name: "next data json", raw: "/_next/data/build-42/en.json", locale: English, platform: "android"},
		{name: "next data nested", raw: "/_next/data/build-42/en/blog.json?platform=ios", locale: English, platform: "ios"},
		{name: "no prefix", raw: "/about", locale: Farsi, platform: "android"},
		{name: "lookalike prefix", raw: "/english/page", locale: Farsi, platform: "android"},
		{name: "empty platform", raw: "/en/?platform=", locale: English, platform: "android"},
		{name: "absolute url", raw: "https://paskoocheh.test/en/search?platform=mac", locale: English, platform: "mac"},
		{name: "malformed", raw: "%zz/en", locale: Farsi, platform: "android"},
		{name: "malformed query", raw: "/en/search?platform=%zz", locale: English, platform: "android"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveURL(tc.raw, testDefaults, zap.NewNop())
			assert.Equal(t, tc.locale, got.Locale)
			assert.Equal(t, tc.platform, got.Platform)
		})
	}
}

func TestResolveURLNeverPanicsOnUnknownPrefixes(t *testing.T) {
	inputs := []string{"", "/", "//", "/xx/yy", "/_next/data", "/_next/data/x", "?platform=a&platform=b", "\x7f"}
	for _, raw := range inputs {
		got := ResolveURL(raw, testDefaults, nil)
		assert.Equal(t, Farsi, got.Locale, raw)
	}
}

func TestResolveRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/en/blog?platform=windows", nil)
	got := ResolveRequest(req, testDefaults, nil)
	assert.Equal(t, Resolution{Locale: English, Platform: "windows"}, got)

	assert.Equal(t, Resolution{Locale: Farsi, Platform: "android"}, ResolveRequest(nil, testDefaults, nil))
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "rtl", Farsi.Direction())
	assert.Equal(t, "ltr", English.Direction())
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1,234", FormatNumber(English, 1234))
	assert.NotEqual(t, "1,234", FormatNumber(Farsi, 1234))
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, English, Negotiate("en-US,en;q=0.9", Farsi))
	assert.Equal(t, Farsi, Negotiate("fa-IR", English))
	assert.Equal(t, Farsi, Negotiate("de-DE", Farsi))
	assert.Equal(t, English, Negotiate("", English))
}
