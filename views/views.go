// Package views provides the templ components the devlogs handlers render.
// Components are written directly against a buffer; every dynamic value goes
// through html escaping on the way in.
package views

import (
	"bytes"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/devlogs"
	"github.com/eringen/devlogs/portabletext"
)

// Funcs returns the full view set for wiring into devlogs.New.
func Funcs() devlogs.ViewFuncs {
	return devlogs.ViewFuncs{
		Home:        Home,
		Post:        Post,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}

func component(f func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		f(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string { return html.EscapeString(s) }

// layout writes the shared document shell around body.
func layout(buf *bytes.Buffer, cfg devlogs.SiteConfig, title, jsonLD string, body func(*bytes.Buffer)) {
	buf.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"/>")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
	buf.WriteString("<title>" + esc(title) + "</title>")
	if cfg.Description != "" {
		buf.WriteString("<meta name=\"description\" content=\"" + esc(cfg.Description) + "\"/>")
	}
	buf.WriteString("<link rel=\"icon\" href=\"/favicon.svg\"/>")
	buf.WriteString("<link rel=\"alternate\" type=\"application/rss+xml\" href=\"/feed.xml\"/>")
	buf.WriteString("<link rel=\"stylesheet\" href=\"/public/styles.css\"/>")
	if jsonLD != "" {
		buf.WriteString("<script type=\"application/ld+json\">" + jsonLD + "</script>")
	}
	buf.WriteString("</head><body>")
	header(buf, cfg)
	body(buf)
	buf.WriteString("</body></html>")
}

func header(buf *bytes.Buffer, cfg devlogs.SiteConfig) {
	buf.WriteString("<header class=\"site-header\"><a href=\"/\" class=\"site-name\">" + esc(cfg.Name) + "</a></header>")
}

// Home renders the listing page: hero plus one card per post, in store order.
func Home(cfg devlogs.SiteConfig, posts []devlogs.Post) templ.Component {
	return component(func(buf *bytes.Buffer) {
		layout(buf, cfg, cfg.Name, websiteJSONLD(cfg), func(buf *bytes.Buffer) {
			buf.WriteString("<section class=\"hero\"><h1><em>" + esc(cfg.Name) + "</em> is a place to write and connect for devs.</h1>")
			buf.WriteString("<h2>Post your thinking on any topic, share ideas or get inspired from others.</h2></section>")
			buf.WriteString("<div class=\"post-grid\">")
			for _, p := range posts {
				postCard(buf, p)
			}
			buf.WriteString("</div>")
		})
	})
}

func postCard(buf *bytes.Buffer, p devlogs.Post) {
	buf.WriteString("<a class=\"post-card\" href=\"" + esc(p.Link()) + "\">")
	// A post without a usable main image gets a card without one.
	if src := imageSrc(p.MainImage.Asset.Ref); src != "" {
		buf.WriteString("<img class=\"post-card-image\" src=\"" + esc(src) + "\" alt=\"" + esc(p.Title) + "\"/>")
	}
	buf.WriteString("<div class=\"post-card-body\"><p class=\"post-card-title\">" + esc(p.Title) + "</p>")
	buf.WriteString("<p class=\"post-card-description\">" + esc(p.Description))
	buf.WriteString(" <span class=\"post-card-author\">by " + esc(p.Author.Name) + "</span></p></div>")
	if src := imageSrc(p.Author.Image.Asset.Ref); src != "" {
		buf.WriteString("<img class=\"post-card-avatar\" src=\"" + esc(src) + "\" alt=\"" + esc(p.Author.Name) + "\"/>")
	}
	buf.WriteString("</a>")
}

// Post renders the detail page: article, comment form or acknowledgment, and
// the approved comments.
func Post(cfg devlogs.SiteConfig, post devlogs.Post, form devlogs.CommentFormState) templ.Component {
	return component(func(buf *bytes.Buffer) {
		title := cfg.Name + " - " + post.Title
		layout(buf, cfg, title, blogPostingJSONLD(cfg, post), func(buf *bytes.Buffer) {
			article(buf, post)
			buf.WriteString("<hr class=\"post-divider\"/>")
			commentSection(buf, post, form)
			buf.WriteString("<script src=\"/public/comment.js\" defer></script>")
		})
	})
}

func article(buf *bytes.Buffer, post devlogs.Post) {
	buf.WriteString("<main>")
	if src := imageSrc(post.MainImage.Asset.Ref); src != "" {
		buf.WriteString("<img class=\"post-banner\" src=\"" + esc(src) + "\" alt=\"\"/>")
	}
	buf.WriteString("<article class=\"post\">")
	buf.WriteString("<h1>" + esc(post.Title) + "</h1>")
	buf.WriteString("<h2 class=\"post-description\">" + esc(post.Description) + "</h2>")
	buf.WriteString("<div class=\"post-byline\">")
	if src := imageSrc(post.Author.Image.Asset.Ref); src != "" {
		buf.WriteString("<img class=\"post-avatar\" src=\"" + esc(src) + "\" alt=\"" + esc(post.Author.Name) + "\"/>")
	}
	buf.WriteString("<p>Blog post by <span class=\"post-author\">" + esc(post.Author.Name) + "</span>")
	if !post.CreatedAt.IsZero() {
		buf.WriteString(" - Published at " + esc(post.CreatedAt.Format("Jan 2, 2006 3:04 PM")))
	}
	buf.WriteString("</p></div>")
	buf.WriteString("<div class=\"post-body\">")
	r := portabletext.Renderer{ImageURL: imageSrc}
	r.Render(buf, post.Body)
	buf.WriteString("</div></article></main>")
}

func commentSection(buf *bytes.Buffer, post devlogs.Post, form devlogs.CommentFormState) {
	commentThanks(buf, form.Submitted)
	if !form.Submitted {
		commentForm(buf, post.ID, form)
	}

	buf.WriteString("<section class=\"comments\"><h3>Comments</h3><hr/>")
	for _, cm := range post.Comments {
		buf.WriteString("<div class=\"comment\"><p><span class=\"comment-name\">" + esc(cm.Name) + ":</span> " + esc(cm.Text) + "</p>")
		if !cm.CreatedAt.IsZero() {
			buf.WriteString("<p class=\"comment-date\">" + esc(cm.CreatedAt.Format("1/2/2006")) + "</p>")
		}
		buf.WriteString("</div>")
	}
	buf.WriteString("</section>")
}

// commentThanks is rendered hidden when the form has not been submitted so
// the page script can reveal it without a reload.
func commentThanks(buf *bytes.Buffer, visible bool) {
	buf.WriteString("<div id=\"comment-thanks\" class=\"comment-thanks\"")
	if !visible {
		buf.WriteString(" hidden")
	}
	buf.WriteString("><h3>Thank you for submitting your comment</h3>")
	buf.WriteString("<p>Once it has been approved, it will appear below!</p></div>")
}

func commentForm(buf *bytes.Buffer, postID string, form devlogs.CommentFormState) {
	buf.WriteString("<form id=\"comment-form\" class=\"comment-form\" method=\"post\" action=\"/api/createComment\">")
	buf.WriteString("<h3 class=\"comment-form-lead\">Enjoyed this article?</h3>")
	buf.WriteString("<h4>Leave a comment below!</h4><hr/>")
	buf.WriteString("<input type=\"hidden\" name=\"_id\" value=\"" + esc(postID) + "\"/>")

	field(buf, "name", "Name", "text", form)
	field(buf, "email", "Email", "text", form)

	buf.WriteString("<label class=\"comment-field\"><span>Comment</span>")
	buf.WriteString("<textarea name=\"comment\" placeholder=\"Comment...\" rows=\"8\">" + esc(form.Values.Comment) + "</textarea></label>")
	fieldError(buf, "comment", form.Errors)

	buf.WriteString("<input type=\"submit\" value=\"Submit\"/></form>")
}

func field(buf *bytes.Buffer, name, label, typ string, form devlogs.CommentFormState) {
	value := ""
	switch name {
	case "name":
		value = form.Values.Name
	case "email":
		value = form.Values.Email
	}
	buf.WriteString("<label class=\"comment-field\"><span>" + esc(label) + "</span>")
	buf.WriteString("<input name=\"" + name + "\" type=\"" + typ + "\" placeholder=\"" + esc(label) + "\" value=\"" + esc(value) + "\"/></label>")
	fieldError(buf, name, form.Errors)
}

func fieldError(buf *bytes.Buffer, name string, errs devlogs.FieldErrors) {
	buf.WriteString("<span id=\"error-" + name + "\" class=\"field-error\">")
	if msg, ok := errs[name]; ok {
		buf.WriteString(esc(msg))
	}
	buf.WriteString("</span>")
}

// NotFound renders the 404 page.
func NotFound(cfg devlogs.SiteConfig) templ.Component {
	return component(func(buf *bytes.Buffer) {
		layout(buf, cfg, cfg.Name+" - Not Found", "", func(buf *bytes.Buffer) {
			buf.WriteString("<main class=\"error-page\"><h1>404</h1><p>This page could not be found.</p>")
			buf.WriteString("<p><a href=\"/\">Back to all posts</a></p></main>")
		})
	})
}

// ServerError renders the 500 page.
func ServerError(cfg devlogs.SiteConfig) templ.Component {
	return component(func(buf *bytes.Buffer) {
		layout(buf, cfg, cfg.Name+" - Error", "", func(buf *bytes.Buffer) {
			buf.WriteString("<main class=\"error-page\"><h1>Something went wrong</h1>")
			buf.WriteString("<p>Please try again in a moment.</p></main>")
		})
	})
}
