package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/fsociety/forum/internal/api/middleware"
	"github.com/fsociety/forum/internal/core/domain"
)

type stubPostService struct {
	posts    []domain.Post
	createFn func(ctx context.Context, authorID, title, content string) (*domain.Post, error)
}

func (s *stubPostService) List(context.Context) []domain.Post { return s.posts }

func (s *stubPostService) Get(_ context.Context, id string) (*domain.Post, error) {
	for _, p := range s.posts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrPostNotFound
}

func (s *stubPostService) Create(ctx context.Context, authorID, title, content string) (*domain.Post, error) {
	return s.createFn(ctx, authorID, title, content)
}

func TestPostHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{posts: []domain.Post{
		{ID: "post-2", Title: "second", Comments: []domain.Comment{}},
		{ID: "post-1", Title: "first", Comments: []domain.Comment{}},
	}}

	c, rec := jsonContext(e, http.MethodGet, "/api/posts", "")
	if err := NewPostHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var posts []domain.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &posts); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != "post-2" {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestPostHandler_Get(t *testing.T) {
	e := newTestEcho()
	handler := NewPostHandler(&stubPostService{posts: []domain.Post{{ID: "post-1", Title: "first"}}})

	c, rec := jsonContext(e, http.MethodGet, "/api/posts/post-1", "")
	c.SetParamNames("id")
	c.SetParamValues("post-1")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp := decode(t, rec); resp["title"] != "first" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	c, _ = jsonContext(e, http.MethodGet, "/api/posts/post-9", "")
	c.SetParamNames("id")
	c.SetParamValues("post-9")
	if err := handler.Get(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		createFn: func(ctx context.Context, authorID, title, content string) (*domain.Post, error) {
			if authorID != "user-1" {
				t.Fatalf("unexpected author: %s", authorID)
			}
			return &domain.Post{ID: "post-1", Title: title, Content: content, AuthorID: authorID, Comments: []domain.Comment{}}, nil
		},
	}

	c, rec := jsonContext(e, http.MethodPost, "/api/posts", `{"title":"Hello","content":"World"}`)
	c.Set(middleware.CtxUserID, "user-1")
	if err := NewPostHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["title"] != "Hello" || resp["authorId"] != "user-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if comments, ok := resp["comments"].([]any); !ok || len(comments) != 0 {
		t.Fatalf("expected empty comments array, got %v", resp["comments"])
	}
}

func TestPostHandler_Create_Rejects(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		createFn: func(ctx context.Context, authorID, title, content string) (*domain.Post, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	handler := NewPostHandler(stub)

	c, _ := jsonContext(e, http.MethodPost, "/api/posts", `{"title":"","content":"World"}`)
	c.Set(middleware.CtxUserID, "user-1")
	assertHTTPError(t, handler.Create(c), http.StatusBadRequest)

	c, _ = jsonContext(e, http.MethodPost, "/api/posts", `{"title":"Hello","content":"World"}`)
	assertHTTPError(t, handler.Create(c), http.StatusUnauthorized)
}
