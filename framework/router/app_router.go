package router

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"
)

var dynamicSegmentNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

var slugPattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N}\p{M}._-]*$`)

const maxSlugLength = 200

type pathSegment struct {
	name    string
	isParam bool
}

type appRoute struct {
	id          string
	segments    []pathSegment
	staticCount int
	patternKey  string
}

type AppRouteMatch struct {
	ID     string
	Params map[string]string
}

func (m AppRouteMatch) Param(name string) (string, bool) {
	if m.Params == nil {
		return "", false
	}

	value, ok := m.Params[name]
	return value, ok
}

// AppRouter resolves a request path to the most specific registered pattern. Static segments
// beat wildcards, so "/[locale]/blog/live" wins over "/[locale]/blog/[slug]".
type AppRouter struct {
	routes []appRoute
}

func NewAppRouter(patterns ...string) (*AppRouter, error) {
	routes := make([]appRoute, 0, len(patterns))
	seenPattern := make(map[string]string)

	for _, pattern := range patterns {
		route, err := parseAppRoute(pattern)
		if err != nil {
			return nil, err
		}

		if existing, ok := seenPattern[route.patternKey]; ok {
			if existing == route.id {
				continue
			}
			return nil, fmt.Errorf("route pattern conflict: %q and %q", existing, route.id)
		}
		seenPattern[route.patternKey] = route.id
		routes = append(routes, route)
	}

	if len(routes) == 0 {
		return nil, errors.New("no routes registered")
	}

	sort.Slice(routes, func(i int, j int) bool {
		left := routes[i]
		right := routes[j]

		if left.staticCount != right.staticCount {
			return left.staticCount > right.staticCount
		}
		if len(left.segments) != len(right.segments) {
			return len(left.segments) > len(right.segments)
		}
		return left.id < right.id
	})

	return &AppRouter{routes: routes}, nil
}

// RouteID returns the id Match reports for pattern.
func RouteID(pattern string) (string, error) {
	route, err := parseAppRoute(pattern)
	if err != nil {
		return "", err
	}
	return route.id, nil
}

func parseAppRoute(pattern string) (appRoute, error) {
	cleaned := path.Clean("/" + strings.TrimSpace(pattern))

	parts := splitPathSegments(cleaned)
	segments := make([]pathSegment, 0, len(parts))
	patternParts := make([]string, 0, len(parts))
	normalizedIDParts := make([]string, 0, len(parts))
	staticCount := 0

	for _, part := range parts {
		name, isParam, normalizedIDPart, err := parseWildcardSegment(part)
		if err != nil {
			return appRoute{}, fmt.Errorf("route %q: %w", pattern, err)
		}

		if isParam {
			segments = append(segments, pathSegment{name: name, isParam: true})
			patternParts = append(patternParts, ":")
			normalizedIDParts = append(normalizedIDParts, normalizedIDPart)
			continue
		}

		segments = append(segments, pathSegment{name: part, isParam: false})
		patternParts = append(patternParts, part)
		normalizedIDParts = append(normalizedIDParts, part)
		staticCount++
	}

	return appRoute{
		id:          "/" + strings.Join(normalizedIDParts, "/"),
		segments:    segments,
		staticCount: staticCount,
		patternKey:  "/" + strings.Join(patternParts, "/"),
	}, nil
}

func parseWildcardSegment(segment string) (string, bool, string, error) {
	if strings.HasPrefix(segment, "_") {
		name := strings.TrimSpace(strings.TrimPrefix(segment, "_"))
		if !dynamicSegmentNamePattern.MatchString(name) {
			return "", false, "", fmt.Errorf("invalid wildcard name %q", name)
		}
		return name, true, "[" + name + "]", nil
	}

	if strings.HasPrefix(segment, "[") || strings.HasSuffix(segment, "]") {
		if !strings.HasPrefix(segment, "[") || !strings.HasSuffix(segment, "]") {
			return "", false, "", fmt.Errorf("invalid wildcard segment %q", segment)
		}

		name := strings.TrimSpace(segment[1 : len(segment)-1])
		if !dynamicSegmentNamePattern.MatchString(name) {
			return "", false, "", fmt.Errorf("invalid wildcard name %q", name)
		}

		return name, true, "[" + name + "]", nil
	}

	if strings.ContainsAny(segment, "[]") {
		return "", false, "", fmt.Errorf("invalid static segment %q", segment)
	}

	return "", false, "", nil
}

func (router *AppRouter) Match(requestPath string) (AppRouteMatch, bool) {
	requestSegments := splitPathSegments(requestPath)

	for _, route := range router.routes {
		if len(route.segments) != len(requestSegments) {
			continue
		}

		params := make(map[string]string, 2)
		matched := true

		for idx, segment := range route.segments {
			requestValue := requestSegments[idx]
			if segment.isParam {
				params[segment.name] = requestValue
				continue
			}
			if segment.name != requestValue {
				matched = false
				break
			}
		}

		if !matched {
			continue
		}

		if len(params) == 0 {
			return AppRouteMatch{ID: route.id}, true
		}
		return AppRouteMatch{ID: route.id, Params: params}, true
	}

	return AppRouteMatch{}, false
}

// MatchPathPattern matches a single pattern without precedence against other routes.
func MatchPathPattern(pattern string, requestPath string) (map[string]string, bool) {
	patternSegments := splitPathSegments(pattern)
	requestSegments := splitPathSegments(requestPath)
	if len(patternSegments) != len(requestSegments) {
		return nil, false
	}

	params := make(map[string]string, 2)
	for idx, patternSegment := range patternSegments {
		name, isParam, _, err := parseWildcardSegment(patternSegment)
		if err != nil {
			return nil, false
		}

		requestSegment := requestSegments[idx]
		if !isParam {
			if patternSegment != requestSegment {
				return nil, false
			}
			continue
		}

		params[name] = requestSegment
	}

	return params, true
}

// IsValidSlug accepts letters and digits of any script plus '.', '_' and '-'.
func IsValidSlug(value string) bool {
	if value == "" || len([]rune(value)) > maxSlugLength {
		return false
	}
	return slugPattern.MatchString(value)
}

func splitPathSegments(raw string) []string {
	cleaned := path.Clean("/" + strings.TrimSpace(raw))
	if cleaned == "/" {
		return []string{}
	}

	trimmed := strings.Trim(cleaned, "/")
	if trimmed == "" {
		return []string{}
	}

	return strings.Split(trimmed, "/")
}
