package services

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/go-wellness-backend/internal/domain"
	"github.com/tbourn/go-wellness-backend/internal/repo"
)

// UserService registers and looks up accounts.
type UserService struct {
	Store repo.UserStore
	// Cost is the bcrypt work factor.
	Cost int
}

// NewUserService returns a UserService using bcrypt.DefaultCost.
func NewUserService(s repo.UserStore) *UserService {
	return &UserService{Store: s, Cost: bcrypt.DefaultCost}
}

// Register creates an account. The username is NFKC-normalized and trimmed
// before the uniqueness check; the password is stored as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, username, password string, displayName *string) (*domain.User, error) {
	ctx, span := otel.Tracer("services/UserService").Start(ctx, "Register")
	defer span.End()

	username = NormalizeUsername(username)
	if username == "" {
		return nil, ErrInvalidUsername
	}

	// Cheap pre-check so a taken name does not pay for hashing.
	if _, err := s.Store.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		return nil, err
	}

	if displayName != nil {
		dn := strings.TrimSpace(*displayName)
		if dn == "" {
			displayName = nil
		} else {
			displayName = &dn
		}
	}

	u, err := s.Store.CreateUser(ctx, domain.User{
		Username:    username,
		Password:    string(hash),
		DisplayName: displayName,
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("user.id", u.ID))
	return u, nil
}

// Get returns the user with id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	ctx, span := otel.Tracer("services/UserService").Start(ctx, "Get",
		trace.WithAttributes(attribute.Int64("user.id", id)),
	)
	defer span.End()

	u, err := s.Store.GetUser(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// NormalizeUsername applies NFKC and trims surrounding whitespace so that
// visually identical names collide.
func NormalizeUsername(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
