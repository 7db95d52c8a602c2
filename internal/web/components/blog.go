package components

import (
	"github.com/a-h/templ"
	"paskoocheh/framework"
	"paskoocheh/internal/blog"
	"paskoocheh/internal/markdown"
	"paskoocheh/internal/web/appcore"
)

func BlogPage(view appcore.BlogView) templ.Component {
	t := view.T

	return component(func(h *html) {
		h.el("h1", t.T("blog.title"))

		if len(view.Topics) > 0 {
			h.open("nav", "class", "topics", "aria-label", t.T("blog.topics"))
			h.open("ul")
			h.open("li")
			if view.AllTopic {
				h.link(view.AllURL, t.T("blog.allTopics"), "aria-current", "page")
			} else {
				h.link(view.AllURL, t.T("blog.allTopics"))
			}
			h.close("li")
			for _, topic := range view.Topics {
				h.open("li")
				if topic.Active {
					h.link(topic.URL, topic.Topic.Name, "aria-current", "page")
				} else {
					h.link(topic.URL, topic.Topic.Name)
				}
				h.close("li")
			}
			h.close("ul")
			h.close("nav")
		}

		if view.Filter.Hashtag != "" {
			h.el("p", "#"+view.Filter.Hashtag, "class", "active-hashtag")
		}

		listing(h, t, PostsList, view.Posts, t.T("blog.empty"), postCard(view.Links))
	})
}

func PostsLive(view appcore.LiveView[blog.PostPreview]) framework.LiveResponse {
	return livePatches(view.T, PostsList, view.Listing, postCard(view.Posts))
}

func postCard(links appcore.PostLinks) func(h *html, post blog.PostPreview) {
	return func(h *html, post blog.PostPreview) {
		h.open("li", "class", "post-card")
		if post.CoverURL != "" {
			h.open("img", "src", string(templ.URL(post.CoverURL)), "alt", "", "loading", "lazy")
		}
		h.open("h2")
		h.link(links.Post(post.Slug), post.Title)
		h.close("h2")
		h.open("p", "class", "meta")
		if post.Topic.Slug != "" {
			h.link(links.Topic(post.Topic.Slug), post.Topic.Name, "class", "topic")
			h.raw(" ")
		}
		h.el("time", shortDate(post.PublishedAt), "datetime", post.PublishedAt)
		h.close("p")
		if post.Summary != "" {
			h.el("p", post.Summary)
		}
		hashtags(h, links, post.Hashtags)
		h.close("li")
	}
}

func hashtags(h *html, links appcore.PostLinks, tags []string) {
	if len(tags) == 0 {
		return
	}
	h.open("ul", "class", "hashtags")
	for _, tag := range tags {
		h.open("li")
		h.link(links.Hashtag(tag), "#"+tag)
		h.close("li")
	}
	h.close("ul")
}

func PostPage(view appcore.PostView) templ.Component {
	t := view.T
	post := view.Post

	return component(func(h *html) {
		h.trusted(appcore.ChromaStyleTag())
		h.open("article", "class", "post")
		h.open("header")
		h.el("h1", post.Title)
		h.open("p", "class", "meta")
		if post.Topic.Slug != "" {
			h.link(view.Links.Topic(post.Topic.Slug), post.Topic.Name, "class", "topic")
			h.raw(" ")
		}
		h.el("time", shortDate(post.PublishedAt), "datetime", post.PublishedAt)
		h.close("p")
		if post.CoverURL != "" {
			h.open("img", "src", string(templ.URL(post.CoverURL)), "alt", "")
		}
		h.close("header")

		h.open("div", "class", "body "+markdown.RichTextClass)
		h.trusted(post.BodyHTML)
		h.close("div")

		if len(post.Hashtags) > 0 {
			h.open("footer")
			h.el("h2", t.T("blog.hashtags"))
			hashtags(h, view.Links, post.Hashtags)
			h.close("footer")
		}
		h.close("article")

		h.open("p")
		h.link(view.BlogURL, t.T("post.back"))
		h.close("p")
	})
}
