package appcore

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"paskoocheh/framework"
	"paskoocheh/internal/accounts"
	"paskoocheh/internal/blog"
	"paskoocheh/internal/catalog"
	"paskoocheh/internal/routes"
)

func LoadHomePage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ LocaleParams,
) (ToolListView, error) {
	state := appCtx.ResolveRequest(ctx, r)
	args := state.Args()

	tools, err := startListing(ctx, appCtx, appCtx.toolFeed(), ToolFilter{Platform: state.Platform}.Key(),
		routes.Build(routes.HomeLive, args))
	if err != nil {
		return ToolListView{}, err
	}

	return ToolListView{
		Chrome:  state.Chrome(state.T.T("home.title"), routes.Home, args),
		Heading: state.T.T("home.title"),
		Tools:   tools,
		Links:   ToolLinks{Args: args},
	}, nil
}

func LoadHomeLive(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ LocaleParams,
	signals ListingSignals,
) (LiveView[catalog.ToolPreview], error) {
	state := appCtx.ResolveLiveRequest(ctx, r)
	args := state.Args()

	listing := continueListing(ctx, appCtx, appCtx.toolFeed(), ToolFilter{Platform: state.Platform}.Key(), signals,
		routes.Build(routes.HomeLive, args), state.T)
	return LiveView[catalog.ToolPreview]{T: state.T, Listing: listing, Links: ToolLinks{Args: args}}, nil
}

func LoadCategoryPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params SlugParams,
) (ToolListView, error) {
	state := appCtx.ResolveRequest(ctx, r)
	args := state.Args()
	args.Slug = params.Slug

	filter := ToolFilter{Platform: state.Platform, Category: params.Slug}
	tools, err := startListing(ctx, appCtx, appCtx.toolFeed(), filter.Key(), routes.Build(routes.CategoryLive, args))
	if err != nil {
		return ToolListView{}, err
	}

	heading := categoryName(tools.Items, params.Slug)
	return ToolListView{
		Chrome:   state.Chrome(heading, routes.Category, args),
		Heading:  heading,
		Category: params.Slug,
		Tools:    tools,
		Links:    ToolLinks{Args: state.Args()},
	}, nil
}

func LoadCategoryLive(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params SlugParams,
	signals ListingSignals,
) (LiveView[catalog.ToolPreview], error) {
	state := appCtx.ResolveLiveRequest(ctx, r)
	args := state.Args()
	args.Slug = params.Slug

	filter := ToolFilter{Platform: state.Platform, Category: params.Slug}
	listing := continueListing(ctx, appCtx, appCtx.toolFeed(), filter.Key(), signals,
		routes.Build(routes.CategoryLive, args), state.T)
	return LiveView[catalog.ToolPreview]{T: state.T, Listing: listing, Links: ToolLinks{Args: state.Args()}}, nil
}

func LoadSearchPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ LocaleParams,
) (ToolListView, error) {
	state := appCtx.ResolveRequest(ctx, r)
	args := state.Args()
	args.Query = searchQuery(r)

	filter := ToolFilter{Platform: state.Platform, Query: args.Query, Search: true}
	tools, err := startListing(ctx, appCtx, appCtx.toolFeed(), filter.Key(), routes.Build(routes.SearchLive, args))
	if err != nil {
		return ToolListView{}, err
	}

	searchArgs := state.Args()
	return ToolListView{
		Chrome:    state.Chrome(state.T.T("search.title"), routes.Search, args),
		Heading:   state.T.T("search.title"),
		Query:     args.Query,
		SearchURL: routes.Build(routes.Search, searchArgs),
		Tools:     tools,
		Links:     ToolLinks{Args: searchArgs},
	}, nil
}

func LoadSearchLive(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ LocaleParams,
	signals ListingSignals,
) (LiveView[catalog.ToolPreview], error) {
	state := appCtx.ResolveLiveRequest(ctx, r)
	args := state.Args()
	args.Query = searchQuery(r)

	filter := ToolFilter{Platform: state.Platform, Query: args.Query, Search: true}
	listing := continueListing(ctx, appCtx, appCtx.toolFeed(), filter.Key(), signals,
		routes.Build(routes.SearchLive, args), state.T)
	return LiveView[catalog.ToolPreview]{T: state.T, Listing: listing, Links: ToolLinks{Args: state.Args()}}, nil
}

// LoadAppPage fetches the tool and its first reviews concurrently. Reviews failing only
// empties the review section.
func LoadAppPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params ToolParams,
) (AppView, error) {
	state := appCtx.ResolveRequest(ctx, r)
	args := state.Args()
	args.ToolID = params.ToolID

	var (
		tool    catalog.Tool
		reviews Listing[catalog.ReviewPreview]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := appCtx.services.Catalog.GetTool(gctx, appCtx.readClient(gctx), params.ToolID, state.Platform)
		if err != nil {
			return err
		}
		tool = loaded
		return nil
	})
	g.Go(func() error {
		filter := ReviewFilter{ToolID: params.ToolID, Platform: state.Platform}
		listing, err := startListing(gctx, appCtx, appCtx.reviewFeed(), filter.Key(),
			routes.Build(routes.ReviewsLive, args))
		if err != nil {
			if gctx.Err() == nil {
				appCtx.logger.Warn("reviews unavailable", zap.Int("tool", params.ToolID), zap.Error(err))
			}
			return nil
		}
		reviews = listing
		return nil
	})
	if err := g.Wait(); err != nil {
		return AppView{}, err
	}

	view := AppView{
		Chrome:     state.Chrome(tool.Name, routes.AppDetail, args),
		Tool:       tool,
		Reviews:    reviews,
		ReviewsURL: routes.Build(routes.AppReviews, args),
		Links:      ToolLinks{Args: state.Args()},
	}
	if latest, ok := tool.Latest(); ok {
		view.Latest = &latest
	}
	return view, nil
}

func LoadReviewsPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params ToolParams,
) (ReviewsView, error) {
	state := appCtx.ResolveRequest(ctx, r)
	args := state.Args()
	args.ToolID = params.ToolID

	var (
		tool    catalog.Tool
		reviews Listing[catalog.ReviewPreview]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := appCtx.services.Catalog.GetTool(gctx, appCtx.readClient(gctx), params.ToolID, state.Platform)
		if err != nil {
			return err
		}
		tool = loaded
		return nil
	})
	g.Go(func() error {
		filter := ReviewFilter{ToolID: params.ToolID, Platform: state.Platform}
		listing, err := startListing(gctx, appCtx, appCtx.reviewFeed(), filter.Key(),
			routes.Build(routes.ReviewsLive, args))
		if err != nil {
			return err
		}
		reviews = listing
		return nil
	})
	if err := g.Wait(); err != nil {
		return ReviewsView{}, err
	}

	return ReviewsView{
		Chrome:  state.Chrome(tool.Name+" | "+state.T.T("reviews.title"), routes.AppReviews, args),
		Tool:    tool,
		AppURL:  routes.Build(routes.AppDetail, args),
		Reviews: reviews,
	}, nil
}

func LoadReviewsLive(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params ToolParams,
	signals ListingSignals,
) (LiveView[catalog.ReviewPreview], error) {
	state := appCtx.ResolveLiveRequest(ctx, r)
	args := state.Args()
	args.ToolID = params.ToolID

	filter := ReviewFilter{ToolID: params.ToolID, Platform: state.Platform}
	listing := continueListing(ctx, appCtx, appCtx.reviewFeed(), filter.Key(), signals,
		routes.Build(routes.ReviewsLive, args), state.T)
	return LiveView[catalog.ReviewPreview]{T: state.T, Listing: listing}, nil
}

// LoadBlogPage lists posts for the topic and hashtag in the query. The topic list only feeds
// the navigation, so failing to load it is not fatal.
func LoadBlogPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ LocaleParams,
) (BlogView, error) {
	state := appCtx.ResolveRequest(ctx, r)
	filter := blogFilter(r)
	args := state.Args()
	args.Topic = filter.Topic
	args.Hashtag = filter.Hashtag

	var (
		topics []blog.Topic
		posts  Listing[blog.PostPreview]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := appCtx.services.Blog.ListTopics(gctx, appCtx.readClient(gctx))
		if err != nil {
			if gctx.Err() == nil {
				appCtx.logger.Warn("blog topics unavailable", zap.Error(err))
			}
			return nil
		}
		topics = loaded
		return nil
	})
	g.Go(func() error {
		listing, err := startListing(gctx, appCtx, appCtx.postFeed(), filter.Key(), routes.Build(routes.BlogLive, args))
		if err != nil {
			return err
		}
		posts = listing
		return nil
	})
	if err := g.Wait(); err != nil {
		return BlogView{}, err
	}

	links := PostLinks{Args: state.Args()}
	topicLinks := make([]TopicLink, 0, len(topics))
	for _, topic := range topics {
		topicLinks = append(topicLinks, TopicLink{
			Topic:  topic,
			URL:    links.Topic(topic.Slug),
			Active: topic.Slug == filter.Topic,
		})
	}

	return BlogView{
		Chrome:   state.Chrome(state.T.T("blog.title"), routes.Blog, args),
		Filter:   filter,
		AllURL:   routes.Build(routes.Blog, state.Args()),
		AllTopic: filter.Topic == "",
		Topics:   topicLinks,
		Posts:    posts,
		Links:    links,
	}, nil
}

func LoadBlogLive(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ LocaleParams,
	signals ListingSignals,
) (LiveView[blog.PostPreview], error) {
	state := appCtx.ResolveLiveRequest(ctx, r)
	filter := blogFilter(r)
	args := state.Args()
	args.Topic = filter.Topic
	args.Hashtag = filter.Hashtag

	listing := continueListing(ctx, appCtx, appCtx.postFeed(), filter.Key(), signals,
		routes.Build(routes.BlogLive, args), state.T)
	return LiveView[blog.PostPreview]{T: state.T, Listing: listing, Posts: PostLinks{Args: state.Args()}}, nil
}

func LoadPostPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params SlugParams,
) (PostView, error) {
	state := appCtx.ResolveRequest(ctx, r)

	post, err := appCtx.services.Blog.GetPost(ctx, appCtx.readClient(ctx), params.Slug)
	if err != nil {
		return PostView{}, err
	}

	args := state.Args()
	args.Slug = params.Slug
	return PostView{
		Chrome:  state.Chrome(post.Title, routes.BlogPost, args),
		Post:    post,
		BlogURL: routes.Build(routes.Blog, state.Args()),
		Links:   PostLinks{Args: state.Args()},
	}, nil
}

func LoadRewardsPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ LocaleParams,
) (RewardsView, error) {
	state := appCtx.ResolveRequest(ctx, r)
	if !state.SignedIn() {
		return RewardsView{}, signInRedirect(state)
	}

	summary, err := appCtx.services.Rewards.Get(ctx, appCtx.Client(ctx, http.MethodPost), state.Locale)
	if errors.Is(err, accounts.ErrNotSignedIn) {
		return RewardsView{}, signInRedirect(state)
	}
	if err != nil {
		return RewardsView{}, err
	}

	return RewardsView{
		Chrome:  state.Chrome(state.T.T("rewards.title"), routes.Rewards, routes.Args{}),
		Summary: summary,
	}, nil
}

func LoadSignInPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ LocaleParams,
) (SignInView, error) {
	state := appCtx.ResolveRequest(ctx, r)
	returnTo := r.URL.Query().Get("return")
	if state.SignedIn() {
		return SignInView{}, framework.Redirect(routes.SafeReturnPath(returnTo, routes.Build(routes.Home, state.Args())))
	}
	return NewSignInView(state, returnTo, FormView{}), nil
}

func NewSignInView(state RequestState, returnTo string, form FormView) SignInView {
	args := state.Args()
	args.ReturnTo = routes.SafeReturnPath(returnTo, "")
	form.Action = routes.Build(routes.SignIn, args)

	return SignInView{
		Chrome:    state.Chrome(state.T.T("signin.title"), routes.SignIn, routes.Args{ReturnTo: args.ReturnTo}),
		Form:      form,
		ResetURL:  routes.Build(routes.ResetPassword, state.Args()),
		SignUpURL: routes.Build(routes.SignUp, state.Args()),
	}
}

func LoadSignUpPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ LocaleParams,
) (SignUpView, error) {
	state := appCtx.ResolveRequest(ctx, r)
	if state.SignedIn() {
		return SignUpView{}, framework.Redirect(routes.Build(routes.Home, state.Args()))
	}

	referral := strings.TrimSpace(r.URL.Query().Get("ref"))
	return NewSignUpView(state, FormView{Values: map[string]string{"referralCode": referral}}), nil
}

func NewSignUpView(state RequestState, form FormView) SignUpView {
	form.Action = routes.Build(routes.SignUp, state.Args())
	return SignUpView{
		Chrome:    state.Chrome(state.T.T("signup.title"), routes.SignUp, routes.Args{}),
		Form:      form,
		SignInURL: routes.Build(routes.SignIn, state.Args()),
	}
}

func LoadResetPasswordPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ LocaleParams,
) (ResetView, error) {
	return NewResetView(appCtx.ResolveRequest(ctx, r), FormView{}, r.URL.Query().Get(FlagSent) == "1"), nil
}

func NewResetView(state RequestState, form FormView, sent bool) ResetView {
	form.Action = routes.Build(routes.ResetPassword, state.Args())
	return ResetView{
		Chrome: state.Chrome(state.T.T("reset.title"), routes.ResetPassword, routes.Args{}),
		Form:   form,
		Sent:   sent,
	}
}

func LoadSettingsPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ LocaleParams,
) (SettingsView, error) {
	state := appCtx.ResolveRequest(ctx, r)
	if !state.SignedIn() {
		return SettingsView{}, signInRedirect(state)
	}

	values := map[string]string{
		"email":    state.User.Email,
		"language": state.User.Language,
	}
	if values["language"] == "" {
		values["language"] = string(state.Locale)
	}
	return NewSettingsView(state, FormView{Values: values}, r.URL.Query().Get(FlagSaved) == "1"), nil
}

func NewSettingsView(state RequestState, form FormView, saved bool) SettingsView {
	form.Action = routes.Build(routes.Settings, state.Args())
	return SettingsView{
		Chrome: state.Chrome(state.T.T("settings.title"), routes.Settings, routes.Args{}),
		Form:   form,
		Saved:  saved,
	}
}

func (c *Context) NotFoundView(r *http.Request) NotFoundView {
	chrome := c.BareChrome(r, c.Translator(r).T("notFound.title"))
	return NotFoundView{
		Chrome:  chrome,
		HomeURL: routes.Build(routes.Home, routes.Args{Locale: chrome.Locale}),
	}
}

func (c *Context) ErrorView(r *http.Request) ErrorView {
	chrome := c.BareChrome(r, c.Translator(r).T("error.title"))
	return ErrorView{
		Chrome:  chrome,
		HomeURL: routes.Build(routes.Home, routes.Args{Locale: chrome.Locale}),
	}
}

// Query flags set by the form handlers when they redirect after a successful submission.
const (
	FlagSent  = "sent"
	FlagSaved = "saved"
)

// WithFlag adds flag=1 to a built URL.
func WithFlag(target string, flag string) string {
	parsed, err := url.Parse(target)
	if err != nil {
		return target
	}
	query := parsed.Query()
	query.Set(flag, "1")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func signInRedirect(state RequestState) error {
	args := state.Args()
	args.ReturnTo = state.Path
	return framework.Redirect(routes.Build(routes.SignIn, args))
}

func searchQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("query"))
}

func blogFilter(r *http.Request) blog.Filter {
	query := r.URL.Query()
	return blog.Filter{
		Topic:   strings.TrimSpace(query.Get("topic")),
		Hashtag: strings.TrimSpace(strings.TrimPrefix(query.Get("hashtag"), "#")),
	}
}

func categoryName(items []catalog.ToolPreview, slug string) string {
	for _, item := range items {
		if item.Category.Slug == slug && item.Category.Name != "" {
			return item.Category.Name
		}
	}
	return slug
}
