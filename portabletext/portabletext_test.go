package portabletext

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eringen/devlogs/sanity"
)

func textBlock(style, text string) sanity.Block {
	return sanity.Block{
		Type:     "block",
		Style:    style,
		Children: []sanity.Span{{Type: "span", Text: text}},
	}
}

func render(t *testing.T, blocks []sanity.Block) string {
	t.Helper()
	var buf bytes.Buffer
	Renderer{}.Render(&buf, blocks)
	return buf.String()
}

func TestStyles(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{"normal", "<p>hello</p>"},
		{"h1", "<h1>hello</h1>"},
		{"h2", "<h2>hello</h2>"},
		{"h3", "<h3>hello</h3>"},
		{"h4", "<h4>hello</h4>"},
		{"blockquote", "<blockquote>hello</blockquote>"},
	}
	for _, tt := range tests {
		got := render(t, []sanity.Block{textBlock(tt.style, "hello")})
		if got != tt.want {
			t.Errorf("style %q = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestUnknownStyleFallsBack(t *testing.T) {
	got := render(t, []sanity.Block{textBlock("h7", "hello")})
	if got != "<p>hello</p>" {
		t.Errorf("unknown style = %q, want paragraph fallback", got)
	}
}

func TestUnknownBlockTypeFallsBack(t *testing.T) {
	blocks := []sanity.Block{{
		Type:     "callout",
		Children: []sanity.Span{{Type: "span", Text: "note"}},
	}}
	got := render(t, blocks)
	if got != "<p>note</p>" {
		t.Errorf("unknown type = %q, want paragraph fallback", got)
	}
}

func TestListGrouping(t *testing.T) {
	bullet := func(text string) sanity.Block {
		b := textBlock("normal", text)
		b.ListItem = "bullet"
		return b
	}
	number := func(text string) sanity.Block {
		b := textBlock("normal", text)
		b.ListItem = "number"
		return b
	}

	got := render(t, []sanity.Block{bullet("a"), bullet("b"), number("c"), textBlock("normal", "after")})
	want := "<ul><li>a</li><li>b</li></ul><ol><li>c</li></ol><p>after</p>"
	if got != want {
		t.Errorf("lists = %q, want %q", got, want)
	}
}

func TestListClosedAtEnd(t *testing.T) {
	b := textBlock("normal", "only")
	b.ListItem = "bullet"
	got := render(t, []sanity.Block{b})
	if got != "<ul><li>only</li></ul>" {
		t.Errorf("trailing list = %q, want closed <ul>", got)
	}
}

func TestDecoratorMarks(t *testing.T) {
	blocks := []sanity.Block{{
		Type:  "block",
		Style: "normal",
		Children: []sanity.Span{
			{Type: "span", Text: "bold", Marks: []string{"strong"}},
			{Type: "span", Text: " and "},
			{Type: "span", Text: "code", Marks: []string{"code"}},
		},
	}}
	got := render(t, blocks)
	want := "<p><strong>bold</strong> and <code>code</code></p>"
	if got != want {
		t.Errorf("marks = %q, want %q", got, want)
	}
}

func TestUnknownMarkIgnored(t *testing.T) {
	blocks := []sanity.Block{{
		Type:     "block",
		Style:    "normal",
		Children: []sanity.Span{{Type: "span", Text: "x", Marks: []string{"sparkle"}}},
	}}
	if got := render(t, blocks); got != "<p>x</p>" {
		t.Errorf("unknown mark = %q, want it ignored", got)
	}
}

func TestLinkMark(t *testing.T) {
	blocks := []sanity.Block{{
		Type:  "block",
		Style: "normal",
		Children: []sanity.Span{
			{Type: "span", Text: "click", Marks: []string{"l1"}},
		},
		MarkDefs: []sanity.MarkDef{{Key: "l1", Type: "link", Href: "https://example.com"}},
	}}
	got := render(t, blocks)
	want := `<p><a href="https://example.com">click</a></p>`
	if got != want {
		t.Errorf("link = %q, want %q", got, want)
	}
}

func TestTextEscaped(t *testing.T) {
	got := render(t, []sanity.Block{textBlock("normal", `<script>alert("x")</script>`)})
	if strings.Contains(got, "<script>") {
		t.Errorf("output contains unescaped markup: %q", got)
	}
}

func TestImageBlock(t *testing.T) {
	var b sanity.Block
	b.Type = "image"
	b.Asset.Ref = "image-abc-10x10-jpg"

	r := Renderer{ImageURL: func(ref string) string { return "/image/" + ref }}
	var buf bytes.Buffer
	r.Render(&buf, []sanity.Block{b})
	want := `<img src="/image/image-abc-10x10-jpg" alt=""/>`
	if buf.String() != want {
		t.Errorf("image = %q, want %q", buf.String(), want)
	}

	// Without a resolver the block is skipped, not an error.
	if got := render(t, []sanity.Block{b}); got != "" {
		t.Errorf("image without resolver = %q, want \"\"", got)
	}
}

func TestDeterministic(t *testing.T) {
	blocks := []sanity.Block{textBlock("h2", "title"), textBlock("normal", "body")}
	if render(t, blocks) != render(t, blocks) {
		t.Error("same blocks should render identical output")
	}
}

func TestPlainText(t *testing.T) {
	blocks := []sanity.Block{textBlock("h1", "Title"), textBlock("normal", "Body text")}
	if got := PlainText(blocks); got != "Title Body text" {
		t.Errorf("PlainText = %q, want %q", got, "Title Body text")
	}
}
