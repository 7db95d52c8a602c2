package blog

import (
	"context"
	"testing"
	"time"

	"github.com/Khan/genqlient/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paskoocheh/internal/cache"
	"paskoocheh/internal/gql/gqltest"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := cache.NewMemoryCache(time.Minute, 0)
	t.Cleanup(func() { _ = store.Close() })
	return NewService(Config{
		PageSize: 10,
		MediaURL: func(ref string) string { return "https://backend.test/media/" + ref },
		Cache:    store,
		CacheTTL: time.Minute,
	})
}

func TestFilterKeyRoundTrip(t *testing.T) {
	filter := Filter{Topic: "security & privacy", Hashtag: "vpn"}
	assert.Equal(t, filter, ParseFilter(filter.Key()))
	assert.Empty(t, Filter{}.Key())
	assert.Equal(t, Filter{}, ParseFilter("%zz"))
}

func TestListTopicsIsCached(t *testing.T) {
	client := gqltest.New().On("BlogTopics", `{"blogTopics":[{"slug":"news","name":"News"},{"slug":"","name":"?"}]}`)
	service := newTestService(t)

	topics, err := service.ListTopics(context.Background(), client)
	require.NoError(t, err)
	_, err = service.ListTopics(context.Background(), client)
	require.NoError(t, err)

	assert.Equal(t, []Topic{{Slug: "news", Name: "News"}}, topics)
	assert.Equal(t, 1, client.Calls("BlogTopics"))
}

func TestListPosts(t *testing.T) {
	client := gqltest.New().Handle("BlogPosts", func(req *graphql.Request) (string, error) {
		assert.Equal(t, "news", gqltest.VarString(req, "topic"))
		var hashtag *string
		assert.False(t, gqltest.Var(req, "hashtag", &hashtag))
		assert.Equal(t, 10, gqltest.VarInt(req, "first"))
		return `{"blogPosts":{
			"nodes":[{"slug":"hello","title":"Hello","summary":" ","cover":"covers/a.jpg","publishedAt":"2024-05-01","topic":{"slug":"news","name":"News"},"hashtags":["#vpn"," ","tor"]}],
			"pageInfo":{"hasNextPage":true,"endCursor":"p2"}
		}}`, nil
	})

	page, err := newTestService(t).ListPosts(context.Background(), client, Filter{Topic: "news"}, "", 0)
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	post := page.Items[0]
	assert.Empty(t, post.Summary)
	assert.Equal(t, "https://backend.test/media/covers/a.jpg", post.CoverURL)
	assert.Equal(t, []string{"vpn", "tor"}, post.Hashtags)
	assert.Equal(t, "p2", page.Cursor)
	assert.Equal(t, "hello", PostKey(post))
}

func TestGetPost(t *testing.T) {
	client := gqltest.New().Handle("BlogPost", func(req *graphql.Request) (string, error) {
		if gqltest.VarString(req, "slug") == "missing" {
			return `{"blogPost":null}`, nil
		}
		return `{"blogPost":{"slug":"hello","title":"Hello","body":"# Title\n\nFirst paragraph.","cover":null,"publishedAt":"2024-05-01","topic":null,"hashtags":[]}}`, nil
	})
	service := newTestService(t)

	post, err := service.GetPost(context.Background(), client, "hello")
	require.NoError(t, err)
	assert.Contains(t, string(post.BodyHTML), "First paragraph.")
	assert.Equal(t, "Title First paragraph.", post.Description)
	assert.Empty(t, post.CoverURL)

	_, err = service.GetPost(context.Background(), client, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.GetPost(context.Background(), client, " ")
	assert.ErrorIs(t, err, ErrNotFound)
}
