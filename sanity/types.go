package sanity

// Slug is the store's wrapped slug field: {"_type": "slug", "current": "..."}.
type Slug struct {
	Current string `json:"current"`
}

// Image is a reference to a stored image asset. Only the asset ref is used;
// crop/hotspot metadata is ignored.
type Image struct {
	Asset struct {
		Ref string `json:"_ref"`
	} `json:"asset"`
}

// Empty reports whether the image carries no usable asset reference.
func (i Image) Empty() bool {
	return i.Asset.Ref == ""
}

// Block is one node of a portable-text body. Regular text blocks have
// Type "block" plus a style and child spans; other types (e.g. "image")
// carry their own fields.
type Block struct {
	Key      string    `json:"_key"`
	Type     string    `json:"_type"`
	Style    string    `json:"style,omitempty"`
	ListItem string    `json:"listItem,omitempty"`
	Level    int       `json:"level,omitempty"`
	Children []Span    `json:"children,omitempty"`
	MarkDefs []MarkDef `json:"markDefs,omitempty"`

	// Set when Type == "image".
	Asset struct {
		Ref string `json:"_ref"`
	} `json:"asset"`
}

// Span is an inline run of text with zero or more marks. A mark is either a
// decorator name ("strong", "em", "code", "underline") or the key of one of
// the enclosing block's MarkDefs.
type Span struct {
	Key   string   `json:"_key"`
	Type  string   `json:"_type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

// MarkDef is an annotation definition referenced by span marks.
// Only "link" annotations are interpreted; anything else is ignored.
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href,omitempty"`
}

// LinkHref resolves a span mark against the block's mark definitions.
// Returns "" when the mark is not a link annotation.
func (b Block) LinkHref(mark string) string {
	for _, d := range b.MarkDefs {
		if d.Key == mark && d.Type == "link" {
			return d.Href
		}
	}
	return ""
}
