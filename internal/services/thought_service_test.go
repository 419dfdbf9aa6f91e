package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-wellness-backend/internal/repo"
)

func TestPost_TrimsAndRejectsEmpty(t *testing.T) {
	s := NewThoughtService(repo.NewMemStore())
	ctx := context.Background()

	if _, err := s.Post(ctx, 1, " \n "); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	p, err := s.Post(ctx, 1, "  breathe  ")
	if err != nil {
		t.Fatal(err)
	}
	if p.Content != "breathe" || p.Likes != 0 {
		t.Fatalf("unexpected post %+v", p)
	}
}

func TestLike_NotFoundAndIncrement(t *testing.T) {
	s := NewThoughtService(repo.NewMemStore())
	ctx := context.Background()

	if _, err := s.Like(ctx, 99); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	p, _ := s.Post(ctx, 1, "hi")
	for i := 0; i < 3; i++ {
		if _, err := s.Like(ctx, p.ID); err != nil {
			t.Fatal(err)
		}
	}
	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Likes != 3 {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestETag_ChangesOnWrite(t *testing.T) {
	s := NewThoughtService(repo.NewMemStore())
	ctx := context.Background()

	empty, err := s.ETag(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if empty != `W/"posts:0:0:0"` {
		t.Fatalf("empty etag = %s", empty)
	}
	p, _ := s.Post(ctx, 1, "a")
	afterPost, _ := s.ETag(ctx)
	if afterPost == empty {
		t.Fatalf("etag unchanged after post")
	}
	again, _ := s.ETag(ctx)
	if again != afterPost {
		t.Fatalf("etag not stable: %s vs %s", again, afterPost)
	}
	if _, err := s.Like(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	afterLike, _ := s.ETag(ctx)
	if afterLike == afterPost {
		t.Fatalf("etag unchanged after like")
	}
}
