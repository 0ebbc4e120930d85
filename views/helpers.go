package views

import (
	"encoding/json"
	"net/url"

	"github.com/eringen/devlogs"
)

// imageSrc routes an asset reference through the site's image proxy, which
// resolves and downscales it. An absent or empty reference yields "" so
// callers can skip the <img> entirely.
func imageSrc(ref string) string {
	if ref == "" {
		return ""
	}
	return "/image/" + url.PathEscape(ref)
}

// websiteJSONLD produces a Schema.org WebSite block using cfg values.
func websiteJSONLD(cfg devlogs.SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      devlogs.BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// blogPostingJSONLD produces a Schema.org BlogPosting block for a post.
func blogPostingJSONLD(cfg devlogs.SiteConfig, post devlogs.Post) string {
	postURL := devlogs.BuildURL(cfg.URL, "post", post.Slug.Current)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    post.Title,
		"description": post.Description,
		"url":         postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if !post.CreatedAt.IsZero() {
		data["datePublished"] = post.CreatedAt.Format("2006-01-02")
	}
	if post.Author.Name != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  post.Author.Name,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
