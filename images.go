package devlogs

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/eringen/devlogs/sanity"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
)

// handleImage proxies a stored image asset: the reference is resolved to its
// CDN URL, fetched, downscaled to maxImageWidth, and re-encoded as JPEG.
// Any failure (malformed reference, upstream error, undecodable data) yields
// a plain 404 so pages that reference a bad asset lose the image, never the
// page.
func (a *App) handleImage(c echo.Context) error {
	ref := c.Param("ref")
	src := sanity.RefURL(a.storeConfig(), ref)
	if src == "" {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, src, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	resp, err := a.assets.Do(req)
	if err != nil {
		c.Logger().Warnf("fetch asset %s: %v", ref, err)
		return echo.NewHTTPError(http.StatusNotFound)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	data, err := scaleToJPEG(resp.Body)
	if err != nil {
		c.Logger().Warnf("process asset %s: %v", ref, err)
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

// scaleToJPEG decodes an image, resizes it to maxImageWidth if wider, and
// encodes it as JPEG.
func scaleToJPEG(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
