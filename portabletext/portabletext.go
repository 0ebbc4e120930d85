// Package portabletext renders a portable-text block tree to HTML as a templ
// component. Each block style maps to exactly one rendering rule; unknown
// styles and unknown block types fall back to a plain paragraph, so malformed
// content degrades instead of failing the page. The mapping is pure: same
// blocks in, same HTML out.
package portabletext

import (
	"bytes"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/devlogs/sanity"
)

// Renderer converts blocks to HTML. The zero value is usable; ImageURL may
// be set to resolve image blocks to a src (unresolvable images are skipped).
type Renderer struct {
	ImageURL func(ref string) string
}

// styleTags maps a text block's style to its wrapping element.
var styleTags = map[string]string{
	"normal":     "p",
	"h1":         "h1",
	"h2":         "h2",
	"h3":         "h3",
	"h4":         "h4",
	"blockquote": "blockquote",
}

// decoratorTags maps span decorator marks to inline elements. Marks not in
// this map and not matching a link annotation are ignored.
var decoratorTags = map[string]string{
	"strong":         "strong",
	"em":             "em",
	"code":           "code",
	"underline":      "u",
	"strike-through": "del",
}

// Content returns a templ component that renders blocks with r's rules.
func (r Renderer) Content(blocks []sanity.Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		r.Render(&buf, blocks)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Content renders blocks with a zero-value Renderer.
func Content(blocks []sanity.Block) templ.Component {
	return Renderer{}.Content(blocks)
}

// Render writes the HTML representation of blocks to buf. Consecutive list
// item blocks of the same kind are grouped into one <ul> or <ol>.
func (r Renderer) Render(buf *bytes.Buffer, blocks []sanity.Block) {
	openList := "" // "", "bullet" or "number"

	closeList := func() {
		switch openList {
		case "bullet":
			buf.WriteString("</ul>")
		case "number":
			buf.WriteString("</ol>")
		}
		openList = ""
	}

	for _, b := range blocks {
		switch b.Type {
		case "image":
			closeList()
			r.renderImage(buf, b)
		case "block":
			if b.ListItem != "" {
				if openList != b.ListItem {
					closeList()
					if b.ListItem == "number" {
						buf.WriteString("<ol>")
					} else {
						buf.WriteString("<ul>")
					}
					openList = b.ListItem
				}
				buf.WriteString("<li>")
				renderSpans(buf, b)
				buf.WriteString("</li>")
				continue
			}
			closeList()
			tag, ok := styleTags[b.Style]
			if !ok {
				tag = "p"
			}
			buf.WriteString("<" + tag + ">")
			renderSpans(buf, b)
			buf.WriteString("</" + tag + ">")
		default:
			// Unrecognized block type: render whatever text it carries as a
			// paragraph rather than dropping the block or raising.
			closeList()
			buf.WriteString("<p>")
			renderSpans(buf, b)
			buf.WriteString("</p>")
		}
	}
	closeList()
}

func (r Renderer) renderImage(buf *bytes.Buffer, b sanity.Block) {
	if r.ImageURL == nil {
		return
	}
	src := r.ImageURL(b.Asset.Ref)
	if src == "" {
		return
	}
	buf.WriteString(`<img src="` + html.EscapeString(src) + `" alt=""/>`)
}

// renderSpans writes a block's child spans with their marks applied, link
// annotations resolved through the block's mark definitions.
func renderSpans(buf *bytes.Buffer, b sanity.Block) {
	for _, s := range b.Children {
		var open, clos string
		for _, mark := range s.Marks {
			if tag, ok := decoratorTags[mark]; ok {
				open += "<" + tag + ">"
				clos = "</" + tag + ">" + clos
				continue
			}
			if href := b.LinkHref(mark); href != "" {
				open += `<a href="` + html.EscapeString(href) + `">`
				clos = "</a>" + clos
			}
		}
		buf.WriteString(open)
		buf.WriteString(html.EscapeString(s.Text))
		buf.WriteString(clos)
	}
}

// PlainText flattens blocks to their concatenated span text, used for meta
// descriptions and feeds.
func PlainText(blocks []sanity.Block) string {
	var buf bytes.Buffer
	for i, b := range blocks {
		if len(b.Children) == 0 {
			continue
		}
		if i > 0 && buf.Len() > 0 {
			buf.WriteString(" ")
		}
		for _, s := range b.Children {
			buf.WriteString(s.Text)
		}
	}
	return buf.String()
}
