// Package catalog maps the backend's tool catalog into the shapes the pages render.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/Khan/genqlient/graphql"
	"paskoocheh/internal/gql"
	"paskoocheh/internal/loader"
	md "paskoocheh/internal/markdown"
)

var ErrNotFound = errors.New("tool not found")

type Category struct {
	Slug string
	Name string
}

type ToolPreview struct {
	ID       int
	Name     string
	Slug     string
	Summary  string
	IconURL  string
	Category Category
}

type ReviewPreview struct {
	ID        string
	Username  string
	Rating    int
	Text      string
	CreatedAt string
}

type Image struct {
	URL string
	Alt string
}

type Tool struct {
	ID              int
	Name            string
	Slug            string
	Summary         string
	DescriptionHTML template.HTML
	IconURL         string
	Website         string
	Category        Category
	AverageRating   float64
	HasRating       bool
	ReviewCount     int
	Images          []Image
	// Versions for the requested platform, newest first.
	Versions []Version
}

// Latest returns the newest version, if the tool ships any for the platform.
func (t Tool) Latest() (Version, bool) {
	if len(t.Versions) == 0 {
		return Version{}, false
	}
	return t.Versions[0], true
}

// PageQuery selects one page of a listing.
type PageQuery struct {
	Platform string
	Cursor   string
	First    int
}

type Config struct {
	PageSize  int
	PublicURL string
	MediaURL  func(string) string
}

type Service struct {
	pageSize int
	markdown md.Options
	media    func(string) string
}

func NewService(cfg Config) *Service {
	if cfg.PageSize < 1 {
		cfg.PageSize = loader.DefaultPageSize
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
	}
}

// ListTools pages through the tools available for a platform, optionally within a category.
func (s *Service) ListTools(ctx context.Context, client graphql.Client, category string, q PageQuery) (loader.Page[ToolPreview], error) {
	response, err := gql.ListTools(ctx, client, q.Platform, optional(category), s.first(q.First), optional(q.Cursor))
	if err != nil {
		return loader.Page[ToolPreview]{}, fmt.Errorf("list tools: %w", err)
	}
	return s.mapToolConnection(response.Tools), nil
}

// SearchTools pages through search results. A blank query yields an empty final page without
// a backend call.
func (s *Service) SearchTools(ctx context.Context, client graphql.Client, query string, q PageQuery) (loader.Page[ToolPreview], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return loader.Page[ToolPreview]{}, nil
	}

	response, err := gql.SearchTools(ctx, client, query, q.Platform, s.first(q.First), optional(q.Cursor))
	if err != nil {
		return loader.Page[ToolPreview]{}, fmt.Errorf("search tools: %w", err)
	}
	return s.mapToolConnection(response.SearchTools), nil
}

func (s *Service) GetTool(ctx context.Context, client graphql.Client, id int, platform string) (Tool, error) {
	if id < 1 {
		return Tool{}, ErrNotFound
	}

	response, err := gql.ToolDetail(ctx, client, id, platform)
	if err != nil {
		return Tool{}, fmt.Errorf("tool %d: %w", id, err)
	}

	switch result := response.Tool.(type) {
	case *gql.ToolDetailToolTool:
		return s.mapTool(result), nil
	case *gql.ToolDetailToolNotFoundError:
		return Tool{}, ErrNotFound
	case nil:
		return Tool{}, ErrNotFound
	default:
		return Tool{}, fmt.Errorf("tool %d: unexpected result %s", id, result.GetTypename())
	}
}

func (s *Service) ListReviews(ctx context.Context, client graphql.Client, toolID int, q PageQuery) (loader.Page[ReviewPreview], error) {
	response, err := gql.ToolReviews(ctx, client, toolID, q.Platform, s.first(q.First), optional(q.Cursor))
	if err != nil {
		return loader.Page[ReviewPreview]{}, fmt.Errorf("reviews of tool %d: %w", toolID, err)
	}

	items := make([]ReviewPreview, 0, len(response.Reviews.Nodes))
	for _, node := range response.Reviews.Nodes {
		items = append(items, ReviewPreview{
			ID:        node.Id,
			Username:  node.Username,
			Rating:    clampRating(node.Rating),
			Text:      strOr(node.Text, ""),
			CreatedAt: node.CreatedAt,
		})
	}

	return loader.Page[ReviewPreview]{
		Items:       items,
		HasNextPage: response.Reviews.PageInfo.HasNextPage,
		Cursor:      strOr(response.Reviews.PageInfo.EndCursor, ""),
	}, nil
}

// ToolKey identifies previews for duplicate suppression.
func ToolKey(t ToolPreview) string {
	return strconv.Itoa(t.ID)
}

func ReviewKey(r ReviewPreview) string {
	return r.ID
}

func (s *Service) first(requested int) int {
	if requested < 1 || requested > s.pageSize {
		return s.pageSize
	}
	return requested
}

func (s *Service) mapToolConnection(connection gql.ToolConnection) loader.Page[ToolPreview] {
	items := make([]ToolPreview, 0, len(connection.Nodes))
	for _, node := range connection.Nodes {
		items = append(items, ToolPreview{
			ID:       node.Id,
			Name:     node.Name,
			Slug:     node.Slug,
			Summary:  node.Summary,
			IconURL:  s.media(strOr(node.Icon, "")),
			Category: mapCategory(node.Category),
		})
	}

	return loader.Page[ToolPreview]{
		Items:       items,
		HasNextPage: connection.PageInfo.HasNextPage,
		Cursor:      strOr(connection.PageInfo.EndCursor, ""),
	}
}

func (s *Service) mapTool(source *gql.ToolDetailToolTool) Tool {
	tool := Tool{
		ID:              source.Id,
		Name:            source.Name,
		Slug:            source.Slug,
		Summary:         source.Summary,
		DescriptionHTML: md.ToHTML(source.Description, s.markdown),
		IconURL:         s.media(strOr(source.Icon, "")),
		Website:         strOr(source.Website, ""),
		Category:        mapCategory(source.Category),
		ReviewCount:     source.ReviewCount,
		Versions:        mapVersions(source.Versions),
	}
	if tool.Summary == "" {
		tool.Summary = md.Excerpt(source.Description, 160)
	}
	if source.AverageRating != nil {
		tool.AverageRating = *source.AverageRating
		tool.HasRating = true
	}

	for _, image := range source.Images {
		if strings.TrimSpace(image.Url) == "" {
			continue
		}
		tool.Images = append(tool.Images, Image{
			URL: s.media(image.Url),
			Alt: strOr(image.Alt, source.Name),
		})
	}

	return tool
}

func mapCategory(source *gql.CategoryRef) Category {
	if source == nil {
		return Category{}
	}
	return Category{Slug: source.Slug, Name: source.Name}
}

func clampRating(rating int) int {
	return max(0, min(rating, 5))
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

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return fallback
	}

	return trimmed
}
