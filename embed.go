package devlogs

import (
	"embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

// EmbeddedAssets contains static assets shipped with the site: comment.js,
// the comment form enhancement script.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

func (a *App) handleCommentScript(c echo.Context) error {
	data, err := EmbeddedAssets.ReadFile("embedded/comment.js")
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return c.Blob(http.StatusOK, "application/javascript; charset=utf-8", data)
}
