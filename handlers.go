package devlogs

import (
	"encoding/gob"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	// On-demand pipeline: every request hits the store.
	posts, err := a.Content.ListPosts(c.Request().Context())
	if err != nil {
		// Fatal to this render; no partial page is fabricated.
		return err
	}
	return Render(c, a.Views.Home(a.Config, posts))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.cache.Get(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	form := CommentFormState{Submitted: commentSubmitted(c, post.ID)}
	if !form.Submitted {
		if f, ok := popCommentFlash(c); ok {
			form.Values = f.Values
			form.Errors = f.Errors
		}
	}
	return Render(c, a.Views.Post(a.Config, post, form))
}

func (a *App) handleCreateComment(c echo.Context) error {
	if !a.submitLimiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many submissions"})
	}

	var in CommentInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed payload"})
	}
	isJSON := strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)

	// The page script validates before it ever calls here, so this is the
	// backstop for the no-script form and for direct API callers.
	if errs := ValidateComment(in); errs != nil {
		if isJSON {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		}
		if err := setCommentFlash(c, commentFlash{Values: in, Errors: errs}); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, backToPost(c))
	}

	if err := a.Content.CreateComment(c.Request().Context(), in); err != nil {
		// Log-only failure handling: the form stays unsubmitted and the
		// user is not prompted to retry.
		c.Logger().Errorf("create comment for post %s: %v", in.PostID, err)
		if isJSON {
			return c.JSON(http.StatusBadGateway, map[string]bool{"ok": false})
		}
		return c.Redirect(http.StatusSeeOther, backToPost(c))
	}

	if isJSON {
		return c.JSON(http.StatusCreated, map[string]bool{"ok": true})
	}
	if err := markCommentSubmitted(c, in.PostID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, backToPost(c))
}

// backToPost returns the detail page the form was submitted from. The payload
// carries only the post id, so the referer is the way back; "/" is the
// fallback for direct API posts.
func backToPost(c echo.Context) string {
	if ref := c.Request().Referer(); strings.HasPrefix(ref, "/") {
		return ref
	} else if ref != "" {
		if i := strings.Index(ref, "/post/"); i >= 0 {
			return ref[i:]
		}
	}
	return "/"
}

// commentFlash carries validation errors and entered values across the
// redirect back to the detail page.
type commentFlash struct {
	Values CommentInput
	Errors FieldErrors
}

func init() {
	gob.Register(commentFlash{})
}

func setCommentFlash(c echo.Context, f commentFlash) error {
	sess, err := session.Get(commentSessionName, c)
	if err != nil {
		return err
	}
	sess.AddFlash(f, "comment")
	return sess.Save(c.Request(), c.Response())
}

func popCommentFlash(c echo.Context) (commentFlash, bool) {
	sess, err := session.Get(commentSessionName, c)
	if err != nil {
		return commentFlash{}, false
	}
	flashes := sess.Flashes("comment")
	if len(flashes) == 0 {
		return commentFlash{}, false
	}
	_ = sess.Save(c.Request(), c.Response())
	f, ok := flashes[len(flashes)-1].(commentFlash)
	return f, ok
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Content.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Content.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
