package sanity

import (
	"fmt"
	"strings"
)

// ImageURL resolves an image asset reference to its CDN URL.
//
// References look like "image-<id>-<width>x<height>-<format>" and map to
// https://cdn.sanity.io/images/<project>/<dataset>/<id>-<width>x<height>.<format>.
// A missing or malformed reference yields "" so templates can simply omit
// the <img> instead of failing the render.
func ImageURL(cfg Config, img Image) string {
	return RefURL(cfg, img.Asset.Ref)
}

// RefURL is ImageURL for a bare asset reference string.
func RefURL(cfg Config, ref string) string {
	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" {
		return ""
	}
	id, dims, format := parts[1], parts[2], parts[3]
	if id == "" || dims == "" || format == "" {
		return ""
	}
	base := cfg.CDNBaseURL
	if base == "" {
		base = "https://cdn.sanity.io"
	}
	return fmt.Sprintf("%s/images/%s/%s/%s-%s.%s",
		base, cfg.ProjectID, cfg.Dataset, id, dims, format)
}
