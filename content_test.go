package devlogs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eringen/devlogs/sanity"
)

func testContentClient(t *testing.T, handler http.HandlerFunc) *ContentClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewContentClient(sanity.Config{
		ProjectID: "p1", Dataset: "production", Token: "tok", BaseURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("NewContentClient failed: %v", err)
	}
	return c
}

func TestListPostsDecodes(t *testing.T) {
	c := testContentClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": [
			{"_id": "p1", "title": "First", "slug": {"current": "first"},
			 "author": {"name": "Ada", "image": {"asset": {"_ref": "image-a-1x1-jpg"}}},
			 "description": "d1", "mainImage": {"asset": {"_ref": "image-m-1x1-jpg"}}},
			{"_id": "p2", "title": "Second", "slug": {"current": "second"}}
		]}`))
	})

	posts, err := c.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	if posts[0].Slug.Current != "first" || posts[0].Author.Name != "Ada" {
		t.Errorf("posts[0] = %+v, want decoded listing fields", posts[0])
	}
	// A post with no image decodes to an empty reference, not an error.
	if !posts[1].MainImage.Empty() {
		t.Errorf("posts[1].MainImage = %+v, want empty", posts[1].MainImage)
	}
}

func TestPostBySlugSendsApprovedFilter(t *testing.T) {
	var gotQuery, gotSlug string
	c := testContentClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotSlug = r.URL.Query().Get("$slug")
		w.Write([]byte(`{"result": {"_id": "p1", "title": "Hello", "slug": {"current": "hello"},
			"comments": [{"_id": "c1", "name": "Ada", "comment": "Nice", "Approved": true}]}}`))
	})

	post, err := c.PostBySlug(context.Background(), "hello")
	if err != nil {
		t.Fatalf("PostBySlug failed: %v", err)
	}
	if gotSlug != `"hello"` {
		t.Errorf("$slug = %q, want %q", gotSlug, `"hello"`)
	}
	// The approval gate lives in the query itself: only approved comments
	// are ever joined in.
	if !strings.Contains(gotQuery, "Approved == true") {
		t.Errorf("query %q should filter on the approved flag", gotQuery)
	}
	if !strings.Contains(gotQuery, `post._ref == ^._id`) {
		t.Errorf("query %q should join comments by post reference", gotQuery)
	}
	if len(post.Comments) != 1 || post.Comments[0].Name != "Ada" {
		t.Errorf("comments = %+v, want the joined comment", post.Comments)
	}
}

func TestPostBySlugNotFound(t *testing.T) {
	c := testContentClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": null}`))
	})

	_, err := c.PostBySlug(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateCommentWritesUnapprovedRecord(t *testing.T) {
	var gotBody map[string]any
	c := testContentClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &gotBody)
		w.Write([]byte(`{"transactionId": "t1"}`))
	})

	in := CommentInput{PostID: "post123", Name: "Ada", Email: "ada@x.com", Comment: "Great post"}
	if err := c.CreateComment(context.Background(), in); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	mutations := gotBody["mutations"].([]any)
	doc := mutations[0].(map[string]any)["create"].(map[string]any)
	if doc["_type"] != "comment" {
		t.Errorf("_type = %v, want comment", doc["_type"])
	}
	if approved, ok := doc["Approved"].(bool); !ok || approved {
		t.Errorf("Approved = %v, want false at creation", doc["Approved"])
	}
	ref := doc["post"].(map[string]any)
	if ref["_ref"] != "post123" || ref["_type"] != "reference" {
		t.Errorf("post ref = %v, want reference to post123", ref)
	}
	if doc["name"] != "Ada" || doc["email"] != "ada@x.com" || doc["comment"] != "Great post" {
		t.Errorf("doc = %v, want submitted fields", doc)
	}
}

func TestCreateCommentStoreFailure(t *testing.T) {
	c := testContentClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "boom"}`, http.StatusInternalServerError)
	})

	in := CommentInput{PostID: "post123", Name: "Ada", Email: "a@b.com", Comment: "hi"}
	if err := c.CreateComment(context.Background(), in); err == nil {
		t.Fatal("expected error from failed mutation")
	}
}
