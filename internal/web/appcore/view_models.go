package appcore

import (
	"paskoocheh/internal/accounts"
	"paskoocheh/internal/blog"
	"paskoocheh/internal/catalog"
	"paskoocheh/internal/i18n"
	"paskoocheh/internal/rewards"
	"paskoocheh/internal/routes"
)

type ToolListView struct {
	Chrome
	Heading string
	// Category is set on category pages.
	Category string
	// Query is set on the search page.
	Query     string
	SearchURL string
	Tools     Listing[catalog.ToolPreview]
	Links     ToolLinks
}

// ToolLinks builds detail links that keep the visitor's locale and platform.
type ToolLinks struct {
	Args routes.Args
}

func (l ToolLinks) Detail(id int) string {
	args := l.Args
	args.ToolID = id
	return routes.Build(routes.AppDetail, args)
}

func (l ToolLinks) Category(slug string) string {
	args := l.Args
	args.Slug = slug
	return routes.Build(routes.Category, args)
}

type AppView struct {
	Chrome
	Tool       catalog.Tool
	Latest     *catalog.Version
	Reviews    Listing[catalog.ReviewPreview]
	ReviewsURL string
	Links      ToolLinks
}

type ReviewsView struct {
	Chrome
	Tool    catalog.Tool
	AppURL  string
	Reviews Listing[catalog.ReviewPreview]
}

type TopicLink struct {
	Topic  blog.Topic
	URL    string
	Active bool
}

type BlogView struct {
	Chrome
	Filter   blog.Filter
	AllURL   string
	AllTopic bool
	Topics   []TopicLink
	Posts    Listing[blog.PostPreview]
	Links    PostLinks
}

type PostLinks struct {
	Args routes.Args
}

func (l PostLinks) Post(slug string) string {
	args := l.Args
	args.Slug = slug
	return routes.Build(routes.BlogPost, args)
}

func (l PostLinks) Topic(slug string) string {
	args := l.Args
	args.Topic = slug
	return routes.Build(routes.Blog, args)
}

func (l PostLinks) Hashtag(tag string) string {
	args := l.Args
	args.Hashtag = tag
	return routes.Build(routes.Blog, args)
}

type PostView struct {
	Chrome
	Post    blog.Post
	BlogURL string
	Links   PostLinks
}

type RewardsView struct {
	Chrome
	Summary rewards.Summary
}

// FormView carries what the visitor typed and what was wrong with it. Passwords are never
// echoed back.
type FormView struct {
	Action  string
	Values  map[string]string
	Errors  accounts.FormErrors
	Message string
}

func (f FormView) Value(field string) string {
	return f.Values[field]
}

// FieldErrors returns the localized messages of field. The empty field is the whole form.
func (f FormView) FieldErrors(t i18n.Translator, field string) []string {
	messages := f.Errors[field]
	out := make([]string, 0, len(messages))
	for _, message := range messages {
		out = append(out, FormMessage(t, message))
	}
	return out
}

// FormMessage localizes a validation code. Backend messages pass through unchanged.
func FormMessage(t i18n.Translator, message string) string {
	switch message {
	case accounts.MessageRequired:
		return t.T("form.required")
	case accounts.MessageInvalid:
		return t.T("form.invalid")
	case accounts.MessageMismatch:
		return t.T("form.mismatch")
	default:
		return message
	}
}

type SignInView struct {
	Chrome
	Form      FormView
	ResetURL  string
	SignUpURL string
}

type SignUpView struct {
	Chrome
	Form      FormView
	SignInURL string
}

type ResetView struct {
	Chrome
	Form FormView
	Sent bool
}

type SettingsView struct {
	Chrome
	Form  FormView
	Saved bool
}

type NotFoundView struct {
	Chrome
	HomeURL string
}

type ErrorView struct {
	Chrome
	HomeURL string
}

// LiveView is what a live endpoint renders: the appended slice of one listing.
type LiveView[T any] struct {
	T       i18n.Translator
	Listing Listing[T]
	Links   ToolLinks
	Posts   PostLinks
}
