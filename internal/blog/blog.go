// Package blog maps backend blog posts and topics.
package blog

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/Khan/genqlient/graphql"
	"paskoocheh/internal/cache"
	"paskoocheh/internal/gql"
	"paskoocheh/internal/loader"
	md "paskoocheh/internal/markdown"
)

var ErrNotFound = errors.New("post not found")

type Topic struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type PostPreview struct {
	Slug        string
	Title       string
	Summary     string
	CoverURL    string
	PublishedAt string
	Topic       Topic
	Hashtags    []string
}

type Post struct {
	Slug        string
	Title       string
	Description string
	BodyHTML    template.HTML
	CoverURL    string
	PublishedAt string
	Topic       Topic
	Hashtags    []string
}

// Filter narrows the post listing. Both fields are optional.
type Filter struct {
	Topic   string
	Hashtag string
}

// Key encodes the filter for loader state and live signals.
func (f Filter) Key() string {
	values := url.Values{}
	if f.Topic != "" {
		values.Set("topic", f.Topic)
	}
	if f.Hashtag != "" {
		values.Set("hashtag", f.Hashtag)
	}
	return values.Encode()
}

func ParseFilter(key string) Filter {
	values, err := url.ParseQuery(key)
	if err != nil {
		return Filter{}
	}
	return Filter{
		Topic:   strings.TrimSpace(values.Get("topic")),
		Hashtag: strings.TrimSpace(values.Get("hashtag")),
	}
}

type Config struct {
	PageSize  int
	PublicURL string
	MediaURL  func(string) string
	Cache     cache.Cacher
	CacheTTL  time.Duration
}

type Service struct {
	pageSize int
	markdown md.Options
	media    func(string) string
	topics   *cache.Typed[[]Topic]
}

func NewService(cfg Config) *Service {
	if cfg.PageSize < 1 {
		cfg.PageSize = loader.DefaultPageSize
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewMemoryCache(cfg.CacheTTL, 0)
	}
	resolve := cfg.MediaURL
	media := func(ref string) string {
		if ref == "" || resolve == nil {
			return ref
		}
		return resolve(ref)
	}

	return &Service{
		pageSize: cfg.PageSize,
		markdown: md.Options{PublicURL: cfg.PublicURL, MediaURL: media},
		media:    media,
		topics:   cache.NewTyped[[]Topic](cfg.Cache, cfg.CacheTTL),
	}
}

func (s *Service) ListTopics(ctx context.Context, client graphql.Client) ([]Topic, error) {
	return s.topics.GetOrLoad(ctx, "blog:topics:v1", func(ctx context.Context) ([]Topic, error) {
		response, err := gql.BlogTopics(ctx, client)
		if err != nil {
			return nil, fmt.Errorf("blog topics: %w", err)
		}

		topics := make([]Topic, 0, len(response.BlogTopics))
		for _, topic := range response.BlogTopics {
			if topic.Slug == "" {
				continue
			}
			topics = append(topics, Topic{Slug: topic.Slug, Name: topic.Name})
		}
		return topics, nil
	})
}

func (s *Service) ListPosts(ctx context.Context, client graphql.Client, filter Filter, cursor string, first int) (loader.Page[PostPreview], error) {
	if first < 1 || first > s.pageSize {
		first = s.pageSize
	}

	response, err := gql.BlogPosts(ctx, client, optional(filter.Topic), optional(filter.Hashtag), first, optional(cursor))
	if err != nil {
		return loader.Page[PostPreview]{}, fmt.Errorf("blog posts: %w", err)
	}

	items := make([]PostPreview, 0, len(response.BlogPosts.Nodes))
	for _, node := range response.BlogPosts.Nodes {
		items = append(items, PostPreview{
			Slug:        node.Slug,
			Title:       node.Title,
			Summary:     strOr(node.Summary, ""),
			CoverURL:    s.media(strOr(node.Cover, "")),
			PublishedAt: node.PublishedAt,
			Topic:       mapTopic(node.Topic),
			Hashtags:    cleanHashtags(node.Hashtags),
		})
	}

	return loader.Page[PostPreview]{
		Items:       items,
		HasNextPage: response.BlogPosts.PageInfo.HasNextPage,
		Cursor:      strOr(response.BlogPosts.PageInfo.EndCursor, ""),
	}, nil
}

func (s *Service) GetPost(ctx context.Context, client graphql.Client, slug string) (Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Post{}, ErrNotFound
	}

	response, err := gql.BlogPost(ctx, client, slug)
	if err != nil {
		return Post{}, fmt.Errorf("blog post %q: %w", slug, err)
	}
	if response.BlogPost == nil {
		return Post{}, ErrNotFound
	}

	source := response.BlogPost
	return Post{
		Slug:        source.Slug,
		Title:       source.Title,
		Description: md.Excerpt(source.Body, 160),
		BodyHTML:    md.ToHTML(source.Body, s.markdown),
		CoverURL:    s.media(strOr(source.Cover, "")),
		PublishedAt: source.PublishedAt,
		Topic:       mapTopic(source.Topic),
		Hashtags:    cleanHashtags(source.Hashtags),
	}, nil
}

func PostKey(p PostPreview) string {
	return p.Slug
}

func mapTopic(source *gql.Topic) Topic {
	if source == nil {
		return Topic{}
	}
	return Topic{Slug: source.Slug, Name: source.Name}
}

func cleanHashtags(source []string) []string {
	out := make([]string, 0, len(source))
	for _, tag := range source {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func strOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	if trimmed := strings.TrimSpace(*value); trimmed != "" {
		return trimmed
	}
	return fallback
}
