package framework

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
)

type EmptyParams struct{}

type ParamsParser[P interface{}] func(path string) (P, bool)

type PageLoader[C interface{}, P interface{}, VM interface{}] func(
	ctx context.Context,
	appCtx C,
	r *http.Request,
	params P,
) (VM, error)

type PageRenderer[VM interface{}] func(view VM) templ.Component

type LayoutRenderer[VM interface{}] func(view VM, child templ.Component) templ.Component

type PageModule[C interface{}, P interface{}, VM interface{}] struct {
	Pattern     string
	ParseParams ParamsParser[P]
	Load        PageLoader[C, P, VM]
	Render      PageRenderer[VM]
	Layouts     []LayoutRenderer[VM]
}

type LiveStateParser[S interface{}] func(r *http.Request) (S, error)

type LiveLoader[C interface{}, P interface{}, S interface{}, VM interface{}] func(
	ctx context.Context,
	appCtx C,
	r *http.Request,
	params P,
	state S,
) (VM, error)

type PatchMode string

const (
	PatchOuter  PatchMode = "outer"
	PatchInner  PatchMode = "inner"
	PatchAppend PatchMode = "append"
)

// LivePatch replaces or extends the element matched by Selector.
type LivePatch struct {
	Selector  string
	Mode      PatchMode
	Component templ.Component
}

// LiveResponse is sent as one SSE stream: element patches in order, then signals.
type LiveResponse struct {
	Patches []LivePatch
	// Signals is marshalled to JSON and merged into the client signals when non-nil.
	Signals interface{}
}

type LiveResponder[VM interface{}] func(view VM) LiveResponse

type LiveModule[C interface{}, P interface{}, S interface{}, VM interface{}] struct {
	Pattern     string
	ParseParams ParamsParser[P]
	ParseState  LiveStateParser[S]
	Load        LiveLoader[C, P, S, VM]
	Respond     LiveResponder[VM]
}

// RedirectError is returned by a loader that sends the visitor elsewhere instead of rendering.
type RedirectError struct {
	Location string
	Status   int
}

func (e *RedirectError) Error() string {
	return "redirect to " + e.Location
}

// Redirect returns a 303 See Other redirect for loaders.
func Redirect(location string) error {
	return &RedirectError{Location: location, Status: http.StatusSeeOther}
}

type RuntimeContext[C interface{}] interface {
	AppContext() C
	IsPartialRequest(r *http.Request) bool
	RenderPage(r *http.Request, w http.ResponseWriter, component templ.Component) error
	PatchLive(w http.ResponseWriter, r *http.Request, response LiveResponse) error
	IsNotFound(err error) bool
	RespondNotFound(w http.ResponseWriter, r *http.Request, notFoundContext NotFoundContext)
	RespondBadRequest(w http.ResponseWriter, message string)
	RespondServerError(w http.ResponseWriter, r *http.Request, err error)
}

type NotFoundSource string

const (
	NotFoundSourcePageLoad       NotFoundSource = "page_load"
	NotFoundSourceLiveLoad       NotFoundSource = "live_load"
	NotFoundSourceUnmatchedRoute NotFoundSource = "unmatched_route"
)

type NotFoundContext struct {
	RequestPath         string
	MatchedRoutePattern string
	Source              NotFoundSource
}

type RouteHandler[C interface{}] interface {
	TryServeLive(runtime RuntimeContext[C], w http.ResponseWriter, r *http.Request) bool
	TryServePage(runtime RuntimeContext[C], w http.ResponseWriter, r *http.Request) bool
}

type PageOnlyRouteHandler[C interface{}, P interface{}, VM interface{}] struct {
	Page PageModule[C, P, VM]
}

func (h PageOnlyRouteHandler[C, P, VM]) TryServeLive(RuntimeContext[C], http.ResponseWriter, *http.Request) bool {
	return false
}

func (h PageOnlyRouteHandler[C, P, VM]) TryServePage(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	return servePageModule(runtime, w, r, h.Page)
}

// PageLiveRouteHandler pairs a page with the live endpoint that extends it.
type PageLiveRouteHandler[C interface{}, P interface{}, LP interface{}, S interface{}, VM interface{}, LVM interface{}] struct {
	Page PageModule[C, P, VM]
	Live LiveModule[C, LP, S, LVM]
}

func (h PageLiveRouteHandler[C, P, LP, S, VM, LVM]) TryServeLive(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	return serveLiveModule(runtime, w, r, h.Live)
}

func (h PageLiveRouteHandler[C, P, LP, S, VM, LVM]) TryServePage(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	return servePageModule(runtime, w, r, h.Page)
}

func applyLayouts[VM interface{}](
	layouts []LayoutRenderer[VM],
	view VM,
	child templ.Component,
) templ.Component {
	wrapped := child
	for idx := len(layouts) - 1; idx >= 0; idx-- {
		wrapped = layouts[idx](view, wrapped)
	}
	return wrapped
}

func servePageModule[C interface{}, P interface{}, VM interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	module PageModule[C, P, VM],
) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	params, ok := module.ParseParams(r.URL.Path)
	if !ok {
		return false
	}

	view, err := module.Load(r.Context(), runtime.AppContext(), r, params)
	if err != nil {
		handleLoadError(runtime, w, r, err, module.Pattern, NotFoundSourcePageLoad)
		return true
	}

	component := module.Render(view)
	if !runtime.IsPartialRequest(r) {
		component = applyLayouts(module.Layouts, view, component)
	}
	if err := runtime.RenderPage(r, w, component); err != nil {
		runtime.RespondServerError(w, r, fmt.Errorf("render route %q: %w", module.Pattern, err))
	}
	return true
}

func serveLiveModule[C interface{}, P interface{}, S interface{}, VM interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	module LiveModule[C, P, S, VM],
) bool {
	if module.ParseParams == nil || module.Load == nil || module.Respond == nil {
		return false
	}
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		return false
	}

	params, ok := module.ParseParams(r.URL.Path)
	if !ok {
		return false
	}

	var state S
	if module.ParseState != nil {
		parsed, err := module.ParseState(r)
		if err != nil {
			runtime.RespondBadRequest(w, "invalid live state")
			return true
		}
		state = parsed
	}

	view, err := module.Load(r.Context(), runtime.AppContext(), r, params, state)
	if err != nil {
		handleLoadError(runtime, w, r, err, module.Pattern, NotFoundSourceLiveLoad)
		return true
	}

	if err := runtime.PatchLive(w, r, module.Respond(view)); err != nil {
		runtime.RespondServerError(w, r, fmt.Errorf("patch live route %q: %w", module.Pattern, err))
	}
	return true
}

func handleLoadError[C interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	err error,
	routePattern string,
	source NotFoundSource,
) {
	var redirect *RedirectError
	if errors.As(err, &redirect) {
		status := redirect.Status
		if status == 0 {
			status = http.StatusSeeOther
		}
		http.Redirect(w, r, redirect.Location, status)
		return
	}

	if runtime.IsNotFound(err) {
		runtime.RespondNotFound(w, r, NotFoundContext{
			RequestPath:         r.URL.Path,
			MatchedRoutePattern: routePattern,
			Source:              source,
		})
		return
	}

	runtime.RespondServerError(w, r, fmt.Errorf("load route %q: %w", routePattern, err))
}
