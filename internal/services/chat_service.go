// Package services – ChatService
//
// This file implements ChatService, which owns the companion conversation of
// each user. The REST surface addresses conversations by user: the current
// conversation is the one most recently created for that user.
//
// Sending a message walks a small state machine:
//
//	awaiting input -> user turn appended (in memory) -> awaiting reply
//	  -> assistant turn appended -> persisted
//
// A failure while awaiting the reply aborts the exchange and leaves the
// stored conversation untouched. The final write is guarded by the
// conversation revision read at the start.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-wellness-backend/internal/domain"
	"github.com/tbourn/go-wellness-backend/internal/repo"
)

// Replier produces the assistant's next turn for a conversation history.
type Replier interface {
	Reply(ctx context.Context, history []domain.ChatMessage) (string, error)
}

// ChatRepo is the persistence contract ChatService needs.
type ChatRepo interface {
	repo.ChatStore
	repo.IdempotencyStore
}

// ChatService coordinates conversations and the language model.
type ChatService struct {
	Store ChatRepo
	LLM   Replier

	// IdemTTL is how long an Idempotency-Key keeps replaying a send.
	IdemTTL time.Duration
	Now     func() time.Time
}

// NewChatService returns a ChatService with a 24h idempotency window.
func NewChatService(s ChatRepo, llm Replier) *ChatService {
	return &ChatService{Store: s, LLM: llm, IdemTTL: 24 * time.Hour, Now: time.Now}
}

// SendInput is one chat-send request. When Messages is non-empty it replaces
// the working history; otherwise Message is appended as a user turn.
type SendInput struct {
	Message  string
	Messages []domain.ChatMessage
}

// Start creates a new conversation for userID seeded with msgs, which becomes
// the user's current conversation.
func (s *ChatService) Start(ctx context.Context, userID int64, msgs []domain.ChatMessage) (*domain.ChatConversation, error) {
	ctx, span := otel.Tracer("services/ChatService").Start(ctx, "Start",
		trace.WithAttributes(
			attribute.Int64("user.id", userID),
			attribute.Int("messages", len(msgs)),
		),
	)
	defer span.End()

	if err := validateRoles(msgs); err != nil {
		return nil, err
	}
	return s.Store.CreateConversation(ctx, domain.ChatConversation{UserID: userID, Messages: msgs})
}

// Current returns the user's current conversation.
func (s *ChatService) Current(ctx context.Context, userID int64) (*domain.ChatConversation, error) {
	ctx, span := otel.Tracer("services/ChatService").Start(ctx, "Current",
		trace.WithAttributes(attribute.Int64("user.id", userID)),
	)
	defer span.End()

	c, err := s.Store.GetConversationByUser(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrConversationNotFound
	}
	return c, err
}

// Send runs one exchange on the user's current conversation and returns the
// full updated conversation. Errors from the language model are returned
// wrapped and nothing is persisted. If another send changed the conversation
// while the model was answering, ErrConcurrentSend is returned and this
// exchange is dropped.
//
// When idemKey is non-empty, a repeated call inside IdemTTL returns the
// conversation exactly as the first call returned it, without invoking the
// model again. replayed reports that case.
func (s *ChatService) Send(ctx context.Context, userID int64, in SendInput, idemKey string) (conv *domain.ChatConversation, replayed bool, err error) {
	ctx, span := otel.Tracer("services/ChatService").Start(ctx, "Send",
		trace.WithAttributes(
			attribute.Int64("user.id", userID),
			attribute.Bool("idempotent", idemKey != ""),
		),
	)
	defer span.End()

	if len(in.Messages) == 0 && strings.TrimSpace(in.Message) == "" {
		return nil, false, ErrEmptyMessage
	}
	if err := validateRoles(in.Messages); err != nil {
		return nil, false, err
	}

	scope := SendScope(userID)
	if idemKey != "" {
		c, err := s.replay(ctx, scope, idemKey)
		if err != nil {
			return nil, false, err
		}
		if c != nil {
			span.SetAttributes(attribute.Bool("replayed", true))
			return c, true, nil
		}
	}

	current, err := s.Current(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	var working []domain.ChatMessage
	if len(in.Messages) > 0 {
		working = domain.CloneMessages(in.Messages)
	} else {
		working = append(domain.CloneMessages(current.Messages), domain.ChatMessage{
			Role:    domain.RoleUser,
			Content: in.Message,
		})
	}

	reply, err := s.LLM.Reply(ctx, working)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reply failed")
		return nil, false, fmt.Errorf("chat reply: %w", err)
	}
	working = append(working, domain.ChatMessage{Role: domain.RoleAssistant, Content: reply})

	conv, err = s.Store.UpdateConversationMessages(ctx, current.ID, current.Revision, working)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil, false, ErrConversationNotFound
	case errors.Is(err, repo.ErrConflict):
		span.SetStatus(codes.Error, "concurrent send")
		return nil, false, ErrConcurrentSend
	case err != nil:
		return nil, false, err
	}

	if idemKey != "" {
		s.remember(ctx, scope, idemKey, conv)
	}
	return conv, false, nil
}

// replay returns the conversation stored for (scope, key), or nil when the
// key has not been seen inside the TTL window.
func (s *ChatService) replay(ctx context.Context, scope, key string) (*domain.ChatConversation, error) {
	rec, err := s.Store.GetIdempotency(ctx, scope, key, s.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var c domain.ChatConversation
	if err := json.Unmarshal(rec.Response, &c); err != nil {
		return nil, fmt.Errorf("decode idempotent response: %w", err)
	}
	c.Messages = domain.CloneMessages(c.Messages)
	return &c, nil
}

// remember records conv as the response for (scope, key). The exchange has
// already succeeded, so failures here are only traced; a concurrent
// duplicate recording first is expected.
func (s *ChatService) remember(ctx context.Context, scope, key string, conv *domain.ChatConversation) {
	span := trace.SpanFromContext(ctx)
	body, err := json.Marshal(conv)
	if err != nil {
		span.RecordError(err)
		return
	}
	now := s.Now().UTC()
	_, err = s.Store.CreateIdempotency(ctx, domain.Idempotency{
		Scope:      scope,
		Key:        key,
		ResourceID: conv.ID,
		Status:     http.StatusOK,
		Response:   body,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.IdemTTL),
	})
	if err != nil && !errors.Is(err, repo.ErrDuplicate) {
		span.RecordError(err)
	}
}

// SendScope is the idempotency scope of chat sends for userID.
func SendScope(userID int64) string {
	return "chat:" + strconv.FormatInt(userID, 10) + ":message"
}

func validateRoles(msgs []domain.ChatMessage) error {
	for _, m := range msgs {
		switch m.Role {
		case domain.RoleUser, domain.RoleAssistant, domain.RoleSystem:
		default:
			return ErrInvalidRole
		}
	}
	return nil
}
