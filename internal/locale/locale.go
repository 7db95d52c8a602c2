// Package locale classifies requests by UI language and target platform.
package locale

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Code string

const (
	English Code = "en"
	Farsi   Code = "fa"
)

var supported = []Code{English, Farsi}

// prefixPatterns are tried in order. The _next/data variants are data-fetch paths that old
// cached clients still request.
var prefixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/(en|fa)(?:/|$)`),
	regexp.MustCompile(`^/_next/data/[^/]+/(en|fa)(?:/|\.json$|$)`),
}

func Supported() []Code {
	out := make([]Code, len(supported))
	copy(out, supported)
	return out
}

func Parse(raw string) (Code, bool) {
	candidate := Code(strings.ToLower(strings.TrimSpace(raw)))
	for _, code := range supported {
		if code == candidate {
			return code, true
		}
	}
	return "", false
}

func (c Code) String() string {
	return string(c)
}

func (c Code) Tag() language.Tag {
	switch c {
	case Farsi:
		return language.Persian
	default:
		return language.English
	}
}

func (c Code) Direction() string {
	if c == Farsi {
		return "rtl"
	}
	return "ltr"
}

// FormatNumber renders n with the locale's digits and grouping.
func FormatNumber(c Code, n int) string {
	return message.NewPrinter(c.Tag()).Sprintf("%d", n)
}

type Defaults struct {
	Locale   Code
	Platform string
}

type Resolution struct {
	Locale   Code
	Platform string
}

// FromPath reports the locale named by the path prefix, if any.
func FromPath(path string) (Code, bool) {
	for _, pattern := range prefixPatterns {
		match := pattern.FindStringSubmatch(path)
		if len(match) < 2 {
			continue
		}
		if code, ok := Parse(match[1]); ok {
			return code, true
		}
	}
	return "", false
}

// ResolveURL never fails: unparsable input yields the defaults.
func ResolveURL(raw string, defaults Defaults, logger *zap.Logger) Resolution {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		if logger != nil {
			logger.Warn("resolve locale: malformed url, using defaults", zap.String("url", raw), zap.Error(err))
		}
		return Resolution{Locale: defaults.Locale, Platform: defaults.Platform}
	}

	return resolve(parsed, defaults, logger)
}

func ResolveRequest(r *http.Request, defaults Defaults, logger *zap.Logger) Resolution {
	if r == nil || r.URL == nil {
		return Resolution{Locale: defaults.Locale, Platform: defaults.Platform}
	}
	return resolve(r.URL, defaults, logger)
}

func resolve(u *url.URL, defaults Defaults, logger *zap.Logger) Resolution {
	out := Resolution{Locale: defaults.Locale, Platform: defaults.Platform}

	if code, ok := FromPath(u.Path); ok {
		out.Locale = code
	}

	query, err := url.ParseQuery(u.RawQuery)
	if err != nil && logger != nil {
		logger.Warn("resolve platform: malformed query", zap.String("query", u.RawQuery), zap.Error(err))
	}
	if platform := strings.TrimSpace(query.Get("platform")); platform != "" {
		out.Platform = platform
	}

	return out
}

// Negotiate picks a supported locale from an Accept-Language header.
func Negotiate(acceptLanguage string, fallback Code) Code {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	ordered := make([]Code, 0, len(supported))
	ordered = append(ordered, fallback)
	for _, code := range supported {
		if code != fallback {
			ordered = append(ordered, code)
		}
	}

	candidates := make([]language.Tag, 0, len(ordered))
	for _, code := range ordered {
		candidates = append(candidates, code.Tag())
	}

	_, idx, confidence := language.NewMatcher(candidates).Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(ordered) {
		return fallback
	}

	return ordered[idx]
}
