package gql

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Khan/genqlient/graphql"
	"go.uber.org/zap"
	"paskoocheh/internal/session"
)

// Client is a typed GraphQL client plus whether a session token rides along on its requests.
type Client struct {
	graphql.Client
	HasAccessToken bool
}

type Options struct {
	Endpoint  string
	Timeout   time.Duration
	Transport http.RoundTripper
	Logger    *zap.Logger
}

// SDK hands out GraphQL clients bound to the backend endpoint.
type SDK struct {
	endpoint  string
	timeout   time.Duration
	transport http.RoundTripper
	logger    *zap.Logger
	now       func() time.Time

	get  graphql.Client
	post graphql.Client
}

func NewSDK(opts Options) *SDK {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &SDK{
		endpoint:  opts.Endpoint,
		timeout:   opts.Timeout,
		transport: opts.Transport,
		logger:    opts.Logger,
		now:       time.Now,
	}

	anonymous := s.httpClient("")
	s.get = graphql.NewClientUsingGet(s.endpoint, anonymous)
	s.post = graphql.NewClient(s.endpoint, anonymous)
	return s
}

// Anonymous returns a client that never carries a token. GET clients cannot run mutations.
func (s *SDK) Anonymous(method string) graphql.Client {
	if strings.EqualFold(method, http.MethodGet) {
		return s.get
	}
	return s.post
}

// Client returns a client for the visitor behind tokens. An expired token is refreshed once;
// when the refresh fails the token is cleared and an anonymous client is returned. Clients
// carrying a token always POST so authenticated reads are never cached by intermediaries.
func (s *SDK) Client(ctx context.Context, tokens session.TokenStore, method string) Client {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method != http.MethodGet {
		method = http.MethodPost
	}

	// Without a store the client is anonymous whatever was memoized for the visitor.
	if tokens == nil {
		return Client{Client: s.Anonymous(method)}
	}

	memo := requestCacheFrom(ctx)
	if memo != nil {
		if client, ok := memo.get(method); ok {
			return client
		}
	}

	client := s.build(ctx, tokens, method)

	if memo != nil {
		memo.put(method, client)
		if client.HasAccessToken {
			memo.put(otherMethod(method), client)
		}
	}
	return client
}

func (s *SDK) build(ctx context.Context, tokens session.TokenStore, method string) Client {
	token := ""
	if tokens != nil {
		token = strings.TrimSpace(tokens.Token(ctx))
	}

	if token != "" && session.TokenExpired(token, s.now()) {
		token = s.refresh(ctx, tokens, token)
	}

	if token == "" {
		return Client{Client: s.Anonymous(method)}
	}

	return Client{
		Client:         graphql.NewClient(s.endpoint, s.httpClient(token)),
		HasAccessToken: true,
	}
}

func (s *SDK) refresh(ctx context.Context, tokens session.TokenStore, expired string) string {
	resp, err := RefreshToken(ctx, s.post, expired)
	if err == nil && resp.RefreshToken != nil && resp.RefreshToken.Token != "" {
		fresh := resp.RefreshToken.Token
		if err := tokens.SetToken(ctx, fresh); err != nil {
			s.logger.Warn("store refreshed token", zap.Error(err))
		}
		return fresh
	}

	if err != nil {
		s.logger.Info("token refresh failed, continuing signed out", zap.Error(err))
	}
	if err := tokens.ClearToken(ctx); err != nil {
		s.logger.Warn("clear expired token", zap.Error(err))
	}
	return ""
}

func (s *SDK) httpClient(token string) *http.Client {
	return &http.Client{
		Timeout: s.timeout,
		Transport: &authTransport{
			base:  s.transport,
			token: token,
		},
	}
}

type authTransport struct {
	base  http.RoundTripper
	token string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token == "" {
		return t.base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "JWT "+t.token)
	return t.base.RoundTrip(clone)
}

type requestCacheKey struct{}

type requestCache struct {
	mu      sync.Mutex
	clients map[string]Client
}

// WithRequestCache makes SDK.Client memoize its result for the lifetime of ctx. Sign-in and
// sign-out call ResetRequestCache so later lookups see the new token.
func WithRequestCache(ctx context.Context) context.Context {
	if requestCacheFrom(ctx) != nil {
		return ctx
	}
	return context.WithValue(ctx, requestCacheKey{}, &requestCache{clients: make(map[string]Client)})
}

func ResetRequestCache(ctx context.Context) {
	if memo := requestCacheFrom(ctx); memo != nil {
		memo.mu.Lock()
		memo.clients = make(map[string]Client)
		memo.mu.Unlock()
	}
}

func requestCacheFrom(ctx context.Context) *requestCache {
	memo, _ := ctx.Value(requestCacheKey{}).(*requestCache)
	return memo
}

func (c *requestCache) get(method string) (Client, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	client, ok := c.clients[method]
	return client, ok
}

func (c *requestCache) put(method string, client Client) {
	c.mu.Lock()
	c.clients[method] = client
	c.mu.Unlock()
}

func otherMethod(method string) string {
	if method == http.MethodGet {
		return http.MethodPost
	}
	return http.MethodGet
}
