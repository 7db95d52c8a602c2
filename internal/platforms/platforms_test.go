package platforms

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/Khan/genqlient/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paskoocheh/internal/cache"
	"paskoocheh/internal/gql/gqltest"
)

var known = []Platform{
	{Slug: "android", Name: "Android"},
	{Slug: "windows", Name: "Windows"},
	{Slug: "ios", Name: "iOS"},
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name     string
		query    url.Values
		expected string
	}{
		{name: "known", query: url.Values{"platform": {"windows"}}, expected: "windows"},
		{name: "missing", query: url.Values{}, expected: "android"},
		{name: "empty", query: url.Values{"platform": {""}}, expected: "android"},
		{name: "unknown", query: url.Values{"platform": {"symbian"}}, expected: "android"},
		{name: "multiple", query: url.Values{"platform": {"ios", "windows"}}, expected: "android"},
		{name: "case differs", query: url.Values{"platform": {"Windows"}}, expected: "android"},
		{name: "injected", query: url.Values{"platform": {"ios&platform=x"}}, expected: "android"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Resolve(tc.query, known, "android"))
		})
	}
}

func TestResolveWithoutKnownPlatforms(t *testing.T) {
	assert.Equal(t, "android", Resolve(url.Values{"platform": {"ios"}}, nil, "android"))
}

func TestFind(t *testing.T) {
	platform, ok := Find(known, "ios")
	require.True(t, ok)
	assert.Equal(t, "iOS", platform.Name)

	_, ok = Find(known, "")
	assert.False(t, ok)
	assert.False(t, Contains(known, "mac"))
}

func TestServiceListCachesBackendResponse(t *testing.T) {
	client := gqltest.New().On("Platforms", `{"platforms":[
		{"slug":"android","name":"Android","icon":"icons/android.svg"},
		{"slug":"","name":"Broken"},
		{"slug":"linux","name":""}
	]}`)
	store := cache.NewMemoryCache(time.Minute, 0)
	defer store.Close()

	service := NewService(client, store, ServiceConfig{
		TTL:      time.Minute,
		MediaURL: func(ref string) string { return "https://backend.test/media/" + ref },
	})

	first, err := service.List(context.Background())
	require.NoError(t, err)
	second, err := service.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Platform{
		{Slug: "android", Name: "Android", Icon: "https://backend.test/media/icons/android.svg"},
		{Slug: "linux", Name: "linux"},
	}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.Calls("Platforms"))
}

func TestServiceListError(t *testing.T) {
	client := gqltest.New().Handle("Platforms", func(*graphql.Request) (string, error) {
		return "", errors.New("timeout")
	})
	store := cache.NewMemoryCache(time.Minute, 0)
	defer store.Close()

	_, err := NewService(client, store, ServiceConfig{}).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch platforms")
}
