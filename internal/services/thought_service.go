package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-wellness-backend/internal/domain"
	"github.com/tbourn/go-wellness-backend/internal/repo"
)

// ThoughtService runs the anonymous community board.
type ThoughtService struct {
	Store repo.ThoughtStore
}

// NewThoughtService returns a ThoughtService over s.
func NewThoughtService(s repo.ThoughtStore) *ThoughtService {
	return &ThoughtService{Store: s}
}

// Post publishes content for userID with zero likes.
func (s *ThoughtService) Post(ctx context.Context, userID int64, content string) (*domain.ThoughtPost, error) {
	ctx, span := otel.Tracer("services/ThoughtService").Start(ctx, "Post",
		trace.WithAttributes(attribute.Int64("user.id", userID)),
	)
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	return s.Store.CreateThoughtPost(ctx, domain.ThoughtPost{UserID: userID, Content: content})
}

// List returns the newest posts first.
func (s *ThoughtService) List(ctx context.Context, limit int) ([]domain.ThoughtPost, error) {
	ctx, span := otel.Tracer("services/ThoughtService").Start(ctx, "List",
		trace.WithAttributes(attribute.Int("limit", limit)),
	)
	defer span.End()

	return s.Store.ListThoughtPosts(ctx, limit)
}

// Like adds one like to post id and returns the updated post.
func (s *ThoughtService) Like(ctx context.Context, id int64) (*domain.ThoughtPost, error) {
	ctx, span := otel.Tracer("services/ThoughtService").Start(ctx, "Like",
		trace.WithAttributes(attribute.Int64("post.id", id)),
	)
	defer span.End()

	p, err := s.Store.LikeThoughtPost(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return p, err
}

// ETag returns a weak validator for the board. It changes whenever a post is
// added or liked.
func (s *ThoughtService) ETag(ctx context.Context) (string, error) {
	count, likes, latest, err := s.Store.ThoughtPostsStats(ctx)
	if err != nil {
		return "", err
	}
	var ts int64
	if latest != nil {
		ts = latest.UTC().UnixNano()
	}
	return fmt.Sprintf(`W/"posts:%d:%d:%d"`, count, likes, ts), nil
}
