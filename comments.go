package devlogs

import (
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// Per-field messages shown next to the comment form, matching the copy the
// client script renders.
const (
	MsgNameRequired    = "The Name Field is required"
	MsgEmailRequired   = "The Email Field is required"
	MsgCommentRequired = "The Comment Field is required"
)

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// ValidateComment checks the three required fields. The post id is carried
// as a hidden field and is deliberately not user-validated. Returns nil when
// the input is submittable.
func ValidateComment(in CommentInput) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = MsgNameRequired
	}
	if strings.TrimSpace(in.Email) == "" {
		errs["email"] = MsgEmailRequired
	}
	if strings.TrimSpace(in.Comment) == "" {
		errs["comment"] = MsgCommentRequired
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// The form's submitted/unsubmitted state for the no-script flow lives in the
// session, keyed per post. The transition is one way: once a submit has
// succeeded the detail page shows the acknowledgment instead of the form,
// and there is no path back within the session's lifetime.

const commentSessionName = "devlogs_session"

func markCommentSubmitted(c echo.Context, postID string) error {
	sess, err := session.Get(commentSessionName, c)
	if err != nil {
		return err
	}
	sess.Values["submitted:"+postID] = true
	return sess.Save(c.Request(), c.Response())
}

func commentSubmitted(c echo.Context, postID string) bool {
	sess, err := session.Get(commentSessionName, c)
	if err != nil {
		return false
	}
	submitted, ok := sess.Values["submitted:"+postID].(bool)
	return ok && submitted
}
