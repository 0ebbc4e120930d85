package devlogs

import (
	"context"
	"errors"
	"fmt"

	"github.com/eringen/devlogs/sanity"
)

// ErrNotFound is returned when a query matches no post.
var ErrNotFound = errors.New("devlogs: not found")

// The two GROQ queries this site issues. Listing fetches only what the cards
// need; the detail query joins in the post's approved comments. Ordering is
// store-defined: neither query sorts, and nothing downstream relies on order.
const (
	queryAllPosts = `*[_type == "post"]{
  _id,
  _createdAt,
  title,
  author->{name, image},
  description,
  mainImage,
  slug
}`

	queryPostBySlug = `*[_type == "post" && slug.current == $slug][0]{
  _id,
  _createdAt,
  title,
  author->{name, image},
  "comments": *[_type == "comment" && post._ref == ^._id && Approved == true],
  description,
  mainImage,
  slug,
  body
}`
)

// ContentSource is the read/write surface the handlers and page cache depend
// on. *ContentClient implements it against the hosted store; tests substitute
// an in-memory fake.
type ContentSource interface {
	// ListPosts returns every post with listing fields, in store order.
	ListPosts(ctx context.Context) ([]Post, error)
	// PostBySlug returns one post with body and approved comments, or
	// ErrNotFound when no post has the slug.
	PostBySlug(ctx context.Context, slug string) (Post, error)
	// CreateComment writes an unapproved comment record. The post id is
	// passed through unvalidated; a dangling reference is the store's
	// problem, not ours.
	CreateComment(ctx context.Context, in CommentInput) error
}

// ContentClient adapts the sanity client to this site's queries and types.
type ContentClient struct {
	client *sanity.Client
}

// NewContentClient creates a ContentClient for the given store config.
func NewContentClient(cfg sanity.Config) (*ContentClient, error) {
	c, err := sanity.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ContentClient{client: c}, nil
}

func (c *ContentClient) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.client.Fetch(ctx, queryAllPosts, nil, &posts); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (c *ContentClient) PostBySlug(ctx context.Context, slug string) (Post, error) {
	var post Post
	if err := c.client.Fetch(ctx, queryPostBySlug, map[string]string{"slug": slug}, &post); err != nil {
		return Post{}, fmt.Errorf("post %q: %w", slug, err)
	}
	// A [0] query that matches nothing decodes as null, leaving the zero
	// value. The store always assigns _id, so an empty one means no match.
	if post.ID == "" {
		return Post{}, ErrNotFound
	}
	return post, nil
}

func (c *ContentClient) CreateComment(ctx context.Context, in CommentInput) error {
	doc := map[string]any{
		"_type": "comment",
		"post": map[string]string{
			"_type": "reference",
			"_ref":  in.PostID,
		},
		"name":     in.Name,
		"email":    in.Email,
		"comment":  in.Comment,
		"Approved": false,
	}
	if err := c.client.Create(ctx, doc); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}
