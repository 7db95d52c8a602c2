package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
	"go.uber.org/zap"
	"paskoocheh/framework"
	"paskoocheh/framework/engine"
)

const defaultCacheControlPolicy = "public, max-age=3600, s-maxage=3600"
const defaultPrivatePolicy = "private, no-store"
const defaultHealthPath = "/healthz"
const defaultHealthBody = "ok"
const defaultStaticPrefix = "/static/"
const liveNavigationMarkerKey = "__live"
const liveNavigationMarkerValue = "navigation"

// PartialRequestHeader is sent by the Datastar client on every fetch it makes.
const PartialRequestHeader = "Datastar-Request"

type StaticMount struct {
	URLPrefix string
	Dir       string
}

type CachePolicies struct {
	HTML           string
	Live           string
	LiveNavigation string
	Static         string
	Health         string
	Error          string
}

// DefaultCachePolicies keeps pages and live patches out of shared caches: they carry the
// visitor's session state.
func DefaultCachePolicies() CachePolicies {
	return CachePolicies{
		HTML:   defaultPrivatePolicy,
		Live:   defaultPrivatePolicy,
		Static: defaultCacheControlPolicy,
		Health: "no-cache",
		Error:  defaultPrivatePolicy,
	}
}

type Config[C interface{}] struct {
	AppContext C
	Handlers   []framework.RouteHandler[C]

	Static StaticMount

	CachePolicies CachePolicies

	IsNotFoundError func(err error) bool
	NotFoundPage    func(r *http.Request, notFoundContext framework.NotFoundContext) templ.Component
	ServerErrorPage func(r *http.Request) templ.Component
	Logger          *zap.Logger

	HealthPath string
	HealthBody string
}

type server[C interface{}] struct {
	cachePolicies   CachePolicies
	notFoundPage    func(r *http.Request, notFoundContext framework.NotFoundContext) templ.Component
	serverErrorPage func(r *http.Request) templ.Component
	logger          *zap.Logger
	healthPath      string
	healthBody      string

	routeEngine *engine.Engine[C]
}

func New[C interface{}](cfg Config[C]) (http.Handler, error) {
	cachePolicies := withDefaultPolicies(cfg.CachePolicies)
	healthPath := normalizeHealthPath(cfg.HealthPath)
	healthBody := strings.TrimSpace(cfg.HealthBody)
	if healthBody == "" {
		healthBody = defaultHealthBody
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &server[C]{
		cachePolicies:   cachePolicies,
		notFoundPage:    cfg.NotFoundPage,
		serverErrorPage: cfg.ServerErrorPage,
		logger:          logger,
		healthPath:      healthPath,
		healthBody:      healthBody,
	}

	routeEngine, err := engine.New(engine.Config[C]{
		AppContext:        cfg.AppContext,
		Handlers:          cfg.Handlers,
		RenderPage:        srv.renderPage,
		PatchLive:         srv.patchLive,
		IsPartialRequest:  IsPartialRequest,
		IsNotFoundError:   cfg.IsNotFoundError,
		HandleNotFound:    srv.handleNotFound,
		HandleBadRequest:  srv.handleBadRequest,
		HandleServerError: srv.handleServerError,
	})
	if err != nil {
		return nil, fmt.Errorf("create route engine: %w", err)
	}
	srv.routeEngine = routeEngine

	mux := http.NewServeMux()
	if strings.TrimSpace(cfg.Static.Dir) != "" {
		prefix := normalizeStaticPrefix(cfg.Static.URLPrefix)
		fs := http.FileServer(http.Dir(cfg.Static.Dir))
		mux.Handle(prefix, withCachePolicy(cachePolicies.Static, http.StripPrefix(prefix, fs)))
	}

	mux.HandleFunc("/", srv.handleRoute)
	return mux, nil
}

// IsPartialRequest reports whether r was made by the Datastar client rather than a full
// browser navigation.
func IsPartialRequest(r *http.Request) bool {
	return r != nil && strings.EqualFold(strings.TrimSpace(r.Header.Get(PartialRequestHeader)), "true")
}

func (s *server[C]) handleRoute(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == s.healthPath {
		s.handleHealth(w)
		return
	}

	if s.routeEngine.ServeRoute(w, r) {
		return
	}

	s.handleNotFound(w, r, framework.NotFoundContext{
		RequestPath: r.URL.Path,
		Source:      framework.NotFoundSourceUnmatchedRoute,
	})
}

func (s *server[C]) renderPage(r *http.Request, w http.ResponseWriter, component templ.Component) error {
	policy := s.cachePolicies.HTML
	if IsPartialRequest(r) {
		policy = s.liveCachePolicyFor(r)
	}
	return s.renderPageWithStatus(r, w, component, 0, policy)
}

func (s *server[C]) renderPageWithStatus(
	r *http.Request,
	w http.ResponseWriter,
	component templ.Component,
	statusCode int,
	cachePolicy string,
) error {
	setCachePolicy(w, cachePolicy)
	w.Header().Add("Vary", PartialRequestHeader)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if statusCode > 0 {
		w.WriteHeader(statusCode)
	}
	return component.Render(r.Context(), w)
}

func (s *server[C]) patchLive(
	w http.ResponseWriter,
	r *http.Request,
	response framework.LiveResponse,
) error {
	sse := datastar.NewSSE(w, r)
	setCachePolicy(w, s.liveCachePolicyFor(r))

	for _, patch := range response.Patches {
		if patch.Component == nil {
			continue
		}
		opts := []datastar.PatchElementOption{datastar.WithSelector(patch.Selector)}
		switch patch.Mode {
		case framework.PatchAppend:
			opts = append(opts, datastar.WithModeAppend())
		case framework.PatchInner:
			opts = append(opts, datastar.WithModeInner())
		default:
			opts = append(opts, datastar.WithModeOuter())
		}
		if err := sse.PatchElementTempl(patch.Component, opts...); err != nil {
			return fmt.Errorf("patch %q: %w", patch.Selector, err)
		}
	}

	if response.Signals != nil {
		if err := sse.MarshalAndPatchSignals(response.Signals); err != nil {
			return fmt.Errorf("patch signals: %w", err)
		}
	}
	return nil
}

func (s *server[C]) liveCachePolicyFor(r *http.Request) string {
	if r != nil &&
		strings.TrimSpace(r.URL.Query().Get(liveNavigationMarkerKey)) == liveNavigationMarkerValue &&
		strings.TrimSpace(s.cachePolicies.LiveNavigation) != "" {
		return s.cachePolicies.LiveNavigation
	}

	return s.cachePolicies.Live
}

func (s *server[C]) handleNotFound(
	w http.ResponseWriter,
	r *http.Request,
	notFoundContext framework.NotFoundContext,
) {
	s.logger.Debug("not found",
		zap.String("path", notFoundContext.RequestPath),
		zap.String("pattern", notFoundContext.MatchedRoutePattern),
		zap.String("source", string(notFoundContext.Source)),
	)

	if s.notFoundPage == nil {
		setCachePolicy(w, s.cachePolicies.Error)
		http.NotFound(w, r)
		return
	}

	component := s.notFoundPage(r, notFoundContext)
	if component == nil {
		setCachePolicy(w, s.cachePolicies.Error)
		http.NotFound(w, r)
		return
	}
	if err := s.renderPageWithStatus(r, w, component, http.StatusNotFound, s.cachePolicies.Error); err != nil {
		s.logger.Error("render not found page", zap.Error(err))
	}
}

func (s *server[C]) handleBadRequest(w http.ResponseWriter, message string) {
	setCachePolicy(w, s.cachePolicies.Error)
	http.Error(w, message, http.StatusBadRequest)
}

func (s *server[C]) handleServerError(w http.ResponseWriter, r *http.Request, err error) {
	path := ""
	if r != nil {
		path = r.URL.Path
	}
	s.logger.Error("server error", zap.String("path", path), zap.Error(err))

	if s.serverErrorPage != nil && r != nil {
		if component := s.serverErrorPage(r); component != nil {
			if renderErr := s.renderPageWithStatus(
				r, w, component, http.StatusInternalServerError, s.cachePolicies.Error,
			); renderErr != nil {
				s.logger.Error("render server error page", zap.Error(renderErr))
			}
			return
		}
	}

	setCachePolicy(w, s.cachePolicies.Error)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *server[C]) handleHealth(w http.ResponseWriter) {
	setCachePolicy(w, s.cachePolicies.Health)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.healthBody))
}

func normalizeStaticPrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return defaultStaticPrefix
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

func normalizeHealthPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return defaultHealthPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func withDefaultPolicies(policies CachePolicies) CachePolicies {
	defaults := DefaultCachePolicies()
	if strings.TrimSpace(policies.HTML) == "" {
		policies.HTML = defaults.HTML
	}
	if strings.TrimSpace(policies.Live) == "" {
		policies.Live = defaults.Live
	}
	if strings.TrimSpace(policies.Static) == "" {
		policies.Static = defaults.Static
	}
	if strings.TrimSpace(policies.Health) == "" {
		policies.Health = defaults.Health
	}
	if strings.TrimSpace(policies.Error) == "" {
		policies.Error = defaults.Error
	}
	return policies
}

func setCachePolicy(w http.ResponseWriter, policy string) {
	policy = strings.TrimSpace(policy)
	if policy == "" {
		return
	}
	w.Header().Set("Cache-Control", policy)
}

func withCachePolicy(policy string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCachePolicy(w, policy)
		next.ServeHTTP(w, r)
	})
}
