package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-wellness-backend/internal/domain"
)

// SQLStore adapts the GORM repository functions to the Store interface.
type SQLStore struct {
	DB *gorm.DB
}

// NewSQLStore opens the SQLite database at path and migrates the schema.
func NewSQLStore(path string) (*SQLStore, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return &SQLStore{DB: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLStore) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	return CreateUser(ctx, s.DB, u)
}

func (s *SQLStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return GetUser(ctx, s.DB, id)
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return GetUserByUsername(ctx, s.DB, username)
}

func (s *SQLStore) CreateMoodEntry(ctx context.Context, e domain.MoodEntry) (*domain.MoodEntry, error) {
	return CreateMoodEntry(ctx, s.DB, e)
}

func (s *SQLStore) GetMoodEntry(ctx context.Context, id int64) (*domain.MoodEntry, error) {
	return GetMoodEntry(ctx, s.DB, id)
}

func (s *SQLStore) ListMoodEntries(ctx context.Context, userID int64, limit int) ([]domain.MoodEntry, error) {
	return ListMoodEntries(ctx, s.DB, userID, limit)
}

func (s *SQLStore) ListMoodEntriesByRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.MoodEntry, error) {
	return ListMoodEntriesByRange(ctx, s.DB, userID, start, end)
}

func (s *SQLStore) CreateThoughtPost(ctx context.Context, p domain.ThoughtPost) (*domain.ThoughtPost, error) {
	return CreateThoughtPost(ctx, s.DB, p)
}

func (s *SQLStore) GetThoughtPost(ctx context.Context, id int64) (*domain.ThoughtPost, error) {
	return GetThoughtPost(ctx, s.DB, id)
}

func (s *SQLStore) ListThoughtPosts(ctx context.Context, limit int) ([]domain.ThoughtPost, error) {
	return ListThoughtPosts(ctx, s.DB, limit)
}

func (s *SQLStore) LikeThoughtPost(ctx context.Context, id int64) (*domain.ThoughtPost, error) {
	return LikeThoughtPost(ctx, s.DB, id)
}

func (s *SQLStore) ThoughtPostsStats(ctx context.Context) (int64, int64, *time.Time, error) {
	return ThoughtPostsStats(ctx, s.DB)
}

func (s *SQLStore) CreateSelfCareChecklist(ctx context.Context, c domain.SelfCareChecklist) (*domain.SelfCareChecklist, error) {
	return CreateSelfCareChecklist(ctx, s.DB, c)
}

func (s *SQLStore) GetSelfCareChecklist(ctx context.Context, id int64) (*domain.SelfCareChecklist, error) {
	return GetSelfCareChecklist(ctx, s.DB, id)
}

func (s *SQLStore) FindSelfCareChecklist(ctx context.Context, userID int64, day time.Time) (*domain.SelfCareChecklist, error) {
	return FindSelfCareChecklist(ctx, s.DB, userID, day)
}

func (s *SQLStore) UpdateSelfCareChecklist(ctx context.Context, id int64, patch domain.SelfCarePatch) (*domain.SelfCareChecklist, error) {
	return UpdateSelfCareChecklist(ctx, s.DB, id, patch)
}

func (s *SQLStore) CreateConversation(ctx context.Context, c domain.ChatConversation) (*domain.ChatConversation, error) {
	return CreateConversation(ctx, s.DB, c)
}

func (s *SQLStore) GetConversation(ctx context.Context, id int64) (*domain.ChatConversation, error) {
	return GetConversation(ctx, s.DB, id)
}

func (s *SQLStore) GetConversationByUser(ctx context.Context, userID int64) (*domain.ChatConversation, error) {
	return GetConversationByUser(ctx, s.DB, userID)
}

func (s *SQLStore) UpdateConversationMessages(ctx context.Context, id, revision int64, msgs []domain.ChatMessage) (*domain.ChatConversation, error) {
	return UpdateConversationMessages(ctx, s.DB, id, revision, msgs)
}

func (s *SQLStore) GetIdempotency(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error) {
	return GetIdempotency(ctx, s.DB, scope, key, now)
}

func (s *SQLStore) CreateIdempotency(ctx context.Context, rec domain.Idempotency) (*domain.Idempotency, error) {
	return CreateIdempotency(ctx, s.DB, rec)
}

var _ Store = (*SQLStore)(nil)
