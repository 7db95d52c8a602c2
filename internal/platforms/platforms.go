// Package platforms validates the platform query parameter against the backend's platform list.
package platforms

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/Khan/genqlient/graphql"
	"paskoocheh/internal/cache"
	"paskoocheh/internal/gql"
)

const QueryKey = "platform"

type Platform struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// Resolve returns the query's platform only when exactly one value is present and it names a
// known platform. Anything else, including an empty known list, yields fallback.
func Resolve(query url.Values, known []Platform, fallback string) string {
	values := query[QueryKey]
	if len(values) != 1 {
		return fallback
	}
	if !Contains(known, values[0]) {
		return fallback
	}
	return values[0]
}

func Contains(known []Platform, slug string) bool {
	_, ok := Find(known, slug)
	return ok
}

func Find(known []Platform, slug string) (Platform, bool) {
	if slug == "" {
		return Platform{}, false
	}
	for _, platform := range known {
		if platform.Slug == slug {
			return platform, true
		}
	}
	return Platform{}, false
}

const cacheKey = "platforms:v1"

// Service loads the platform list through anonymous GET requests and keeps it cached.
type Service struct {
	client graphql.Client
	cache  *cache.Typed[[]Platform]
	media  func(string) string
}

type ServiceConfig struct {
	TTL time.Duration
	// MediaURL turns backend icon paths into absolute URLs.
	MediaURL func(string) string
}

func NewService(client graphql.Client, store cache.Cacher, cfg ServiceConfig) *Service {
	media := cfg.MediaURL
	if media == nil {
		media = func(ref string) string { return ref }
	}
	return &Service{
		client: client,
		cache:  cache.NewTyped[[]Platform](store, cfg.TTL),
		media:  media,
	}
}

func (s *Service) List(ctx context.Context) ([]Platform, error) {
	return s.cache.GetOrLoad(ctx, cacheKey, s.fetch)
}

func (s *Service) fetch(ctx context.Context) ([]Platform, error) {
	resp, err := gql.Platforms(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("fetch platforms: %w", err)
	}

	out := make([]Platform, 0, len(resp.Platforms))
	for _, item := range resp.Platforms {
		if item.Slug == "" {
			continue
		}
		platform := Platform{Slug: item.Slug, Name: item.Name}
		if item.Icon != nil {
			platform.Icon = s.media(*item.Icon)
		}
		if platform.Name == "" {
			platform.Name = platform.Slug
		}
		out = append(out, platform)
	}
	return out, nil
}
