package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paskoocheh/internal/locale"
)

func TestCatalogTranslates(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	tests := []struct {
		code     locale.Code
		id       string
		expected string
	}{
		{locale.English, "notFound.title", "Page not found"},
		{locale.Farsi, "notFound.title", "صفحه پیدا نشد"},
		{locale.English, "nav.blog", "Blog"},
		{locale.Farsi, "nav.blog", "وبلاگ"},
		{locale.English, "missing.key", "missing.key"},
	}

	for _, tc := range tests {
		t.Run(string(tc.code)+"_"+tc.id, func(t *testing.T) {
			assert.Equal(t, tc.expected, catalog.T(tc.code, tc.id))
		})
	}
}

func TestCatalogPlural(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Loaded 1 more item", catalog.Plural(locale.English, "loader.completed", 1))
	assert.Equal(t, "Loaded 12 more items", catalog.Plural(locale.English, "loader.completed", 12))
	assert.Contains(t, catalog.Plural(locale.Farsi, "loader.completed", 3), "مورد دیگر")
}

func TestBundlesDefineTheSameKeys(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	for _, id := range []string{"site.title", "error.title", "loader.loadMore", "signin.invalid", "rewards.referral"} {
		assert.NotEqual(t, id, catalog.T(locale.Farsi, id), id)
		assert.NotEqual(t, id, catalog.T(locale.English, id), id)
	}
}

func TestNilCatalogReturnsID(t *testing.T) {
	var catalog *Catalog
	assert.Equal(t, "nav.home", catalog.T(locale.English, "nav.home"))
}
