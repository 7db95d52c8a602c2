package appcore

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"paskoocheh/internal/accounts"
	"paskoocheh/internal/blog"
	"paskoocheh/internal/catalog"
	"paskoocheh/internal/gql"
	"paskoocheh/internal/i18n"
	"paskoocheh/internal/loader"
	"paskoocheh/internal/locale"
	"paskoocheh/internal/platforms"
	"paskoocheh/internal/rewards"
	"paskoocheh/internal/session"
)

// ErrPageNotFound marks requests whose path parameters name nothing that can exist.
var ErrPageNotFound = errors.New("page not found")

type Settings struct {
	PublicURL string
	Defaults  locale.Defaults
	PageSize  int
	MaxItems  int
	// LiveIdle is how long an idle live listing keeps its server-side state.
	LiveIdle time.Duration
	// LiveViews caps the live listings held per list kind.
	LiveViews int
}

type Services struct {
	Platforms *platforms.Service
	Catalog   *catalog.Service
	Blog      *blog.Service
	Accounts  *accounts.Service
	Rewards   *rewards.Service
}

type Dependencies struct {
	Settings Settings
	Services Services
	Clients  accounts.ClientSource
	Tokens   session.TokenStore
	Strings  *i18n.Catalog
	Logger   *zap.Logger
}

// Context is shared by every request. Per-request data lives in RequestState.
type Context struct {
	settings Settings
	services Services
	clients  accounts.ClientSource
	tokens   session.TokenStore
	strings  *i18n.Catalog
	logger   *zap.Logger

	tools   *loader.Registry[catalog.ToolPreview]
	reviews *loader.Registry[catalog.ReviewPreview]
	posts   *loader.Registry[blog.PostPreview]
}

func NewContext(deps Dependencies) *Context {
	settings := deps.Settings
	if settings.PageSize < 1 {
		settings.PageSize = loader.DefaultPageSize
	}
	if settings.MaxItems < settings.PageSize {
		settings.MaxItems = max(loader.DefaultMaxItems, settings.PageSize)
	}
	if settings.Defaults.Locale == "" {
		settings.Defaults.Locale = locale.Farsi
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Context{
		settings: settings,
		services: deps.Services,
		clients:  deps.Clients,
		tokens:   deps.Tokens,
		strings:  deps.Strings,
		logger:   logger,
		tools:    loader.NewRegistry[catalog.ToolPreview](settings.LiveIdle, settings.LiveViews),
		reviews:  loader.NewRegistry[catalog.ReviewPreview](settings.LiveIdle, settings.LiveViews),
		posts:    loader.NewRegistry[blog.PostPreview](settings.LiveIdle, settings.LiveViews),
	}
}

func (c *Context) Settings() Settings {
	return c.settings
}

func (c *Context) Services() Services {
	return c.services
}

func (c *Context) Tokens() session.TokenStore {
	return c.tokens
}

func (c *Context) Logger() *zap.Logger {
	return c.logger
}

// Client returns the GraphQL client for the visitor behind ctx.
func (c *Context) Client(ctx context.Context, method string) gql.Client {
	return c.clients.Client(ctx, c.tokens, method)
}

func (c *Context) readClient(ctx context.Context) gql.Client {
	return c.Client(ctx, http.MethodGet)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, catalog.ErrNotFound) ||
		errors.Is(err, blog.ErrNotFound) ||
		errors.Is(err, ErrPageNotFound)
}
