package devlogs

import (
	"time"

	"github.com/eringen/devlogs/sanity"
)

// Author is referenced by Post and never mutated here.
type Author struct {
	Name  string       `json:"name"`
	Image sanity.Image `json:"image"`
}

// Post is the core content type, created and edited entirely in the content
// store's own tooling; this site only reads it. Comments is populated by the
// detail query's inline join and holds approved comments only.
type Post struct {
	ID          string         `json:"_id"`
	CreatedAt   time.Time      `json:"_createdAt"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Slug        sanity.Slug    `json:"slug"`
	MainImage   sanity.Image   `json:"mainImage"`
	Author      Author         `json:"author"`
	Body        []sanity.Block `json:"body,omitempty"`
	Comments    []Comment      `json:"comments,omitempty"`
}

// Link returns the post's route on this site.
func (p Post) Link() string {
	return "/post/" + p.Slug.Current + "/"
}

// Comment is a reader-submitted comment. Approved is flipped by an external
// moderation process; nothing in this codebase ever sets it to true.
// The store schema capitalizes the Approved field, hence the JSON tag.
type Comment struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Text      string    `json:"comment"`
	Approved  bool      `json:"Approved"`
	CreatedAt time.Time `json:"_createdAt"`
}

// CommentInput is the submission payload: the post id travels as "_id"
// alongside the three user-entered fields.
type CommentInput struct {
	PostID  string `json:"_id" form:"_id"`
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Comment string `json:"comment" form:"comment"`
}
