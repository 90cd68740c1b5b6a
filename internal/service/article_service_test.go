package service

import (
	"errors"
	"testing"

	"github.com/relearn-next/internal/repository"
)

func newArticleService(t *testing.T) *ArticleService {
	t.Helper()
	return NewArticleService(repository.NewArticleRepository(newTestDB(t)))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":            "hello-world",
		"  Go, in Practice!  ":   "go-in-practice",
		"Already-Slugged":        "already-slugged",
		"Multiple   Spaces":      "multiple-spaces",
		"Trailing punctuation..": "trailing-punctuation",
		"100 Days of Go":         "100-days-of-go",
	}
	for input, expected := range cases {
		if got := Slugify(input); got != expected {
			t.Fatalf("slugify(%q) = %q, want %q", input, got, expected)
		}
	}
}

func TestArticleCreateDerivesSlugFromTitle(t *testing.T) {
	svc := newArticleService(t)

	article, err := svc.Create(1, ArticleInput{Title: "My First Post", Content: "hello"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if article.Slug != "my-first-post" {
		t.Fatalf("unexpected slug: %s", article.Slug)
	}

	loaded, err := svc.GetBySlug("my-first-post")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if loaded.ID != article.ID {
		t.Fatalf("unexpected article: %+v", loaded)
	}
}

func TestArticleCreateRejectsDuplicateSlug(t *testing.T) {
	svc := newArticleService(t)

	if _, err := svc.Create(1, ArticleInput{Title: "Same Title", Content: "a"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	// 不同标点、同一 slug，必须按冲突拒绝
	if _, err := svc.Create(2, ArticleInput{Title: "Same, Title!", Content: "b"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected slug exists, got %v", err)
	}
}

func TestArticleUpdateChecksSlugConflict(t *testing.T) {
	svc := newArticleService(t)

	first, err := svc.Create(1, ArticleInput{Title: "First", Content: "a"})
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.Create(1, ArticleInput{Title: "Second", Content: "b"})
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	if _, err := svc.Update(second.Slug, ArticleInput{Title: "First", Content: "b"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected slug exists on update, got %v", err)
	}

	// 标题不变时更新内容不应触发冲突
	updated, err := svc.Update(first.Slug, ArticleInput{Title: "First", Content: "changed"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Content != "changed" {
		t.Fatalf("content not updated: %s", updated.Content)
	}
}

func TestArticleDeleteUnknownSlug(t *testing.T) {
	svc := newArticleService(t)
	if err := svc.Delete("no-such-article"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
