// Chat HTTP handlers.
//
// Conversations are addressed by user: every endpoint targets the user's
// current conversation (the most recently created one).
//
// Idempotency:
// If the client supplies a valid Idempotency-Key header on a send and a
// previous successful send used the same key, the stored conversation is
// returned as the first send returned it, without calling the model again,
// and `Idempotency-Replayed: true` is set.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wellness-backend/internal/domain"
	"github.com/tbourn/go-wellness-backend/internal/http/middleware"
	"github.com/tbourn/go-wellness-backend/internal/llm"
	"github.com/tbourn/go-wellness-backend/internal/services"
)

// HeaderIdempotencyReplayed marks a send answered from a stored result.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

// ChatMessageInput is one conversation turn in a request body.
type ChatMessageInput struct {
	Role    string `json:"role"    binding:"required,oneof=user assistant system" example:"user"`
	Content string `json:"content" binding:"max=8000"                             example:"I had a rough day."`
}

// CreateChatRequest is the JSON payload for starting a conversation.
type CreateChatRequest struct {
	UserID   *int64             `json:"userId"   binding:"required,gte=0" example:"1"`
	Messages []ChatMessageInput `json:"messages" binding:"omitempty,dive"`
}

// SendChatMessageRequest is the JSON payload for one exchange. Either
// message or messages must be present; messages wins when both are.
type SendChatMessageRequest struct {
	Message  string             `json:"message"  binding:"max=8000"        example:"Any tips for sleeping better?"`
	Messages []ChatMessageInput `json:"messages" binding:"omitempty,dive"`
}

func toDomainMessages(in []ChatMessageInput) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(in))
	for _, m := range in {
		out = append(out, domain.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

// CreateChat godoc
// @ID          createChat
// @Summary     Start a conversation
// @Description Creates a conversation, which becomes the user's current one.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateChatRequest  true  "Conversation"
// @Success     201   {object}  domain.ChatConversation
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chat [post]
func (h *Handlers) CreateChat(c *gin.Context) {
	var req CreateChatRequest
	if !bindJSON(c, &req) {
		return
	}
	conv, err := h.svc.Chat.Start(c.Request.Context(), *req.UserID, toDomainMessages(req.Messages))
	if errors.Is(err, services.ErrInvalidRole) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid chat role")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not create conversation")
		return
	}
	ok(c, http.StatusCreated, conv)
}

// GetChat godoc
// @ID          getChat
// @Summary     A user's current conversation
// @Tags        Chat
// @Produce     json
// @Param       userId  path      int  true  "User ID"
// @Success     200     {object}  domain.ChatConversation
// @Failure     400     {object}  handlers.ErrorResponse  "Bad id"
// @Failure     404     {object}  handlers.ErrorResponse  "No conversation"
// @Router      /chat/{userId} [get]
func (h *Handlers) GetChat(c *gin.Context) {
	uid, valid := pathID(c, "userId")
	if !valid {
		return
	}
	conv, err := h.svc.Chat.Current(c.Request.Context(), uid)
	if errors.Is(err, services.ErrConversationNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "conversation not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load conversation")
		return
	}
	ok(c, http.StatusOK, conv)
}

// SendChatMessage godoc
// @ID          sendChatMessage
// @Summary     Talk to the companion
// @Description Appends the user's turn, asks the model for a reply and stores both.
// @Description Nothing is stored when the model fails.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       userId           path      int                                true   "User ID"
// @Param       Idempotency-Key  header    string                             false  "Idempotency key for safe retries"
// @Param       body             body      handlers.SendChatMessageRequest    true   "Message"
// @Success     200              {object}  domain.ChatConversation
// @Header      200              {string}  Idempotency-Replayed  "true when served from a previous identical request"
// @Failure     400              {object}  handlers.ErrorResponse  "Bad id or body"
// @Failure     404              {object}  handlers.ErrorResponse  "No conversation"
// @Failure     409              {object}  handlers.ErrorResponse  "Concurrent send"
// @Failure     500              {object}  handlers.ErrorResponse  "Model unavailable"
// @Failure     504              {object}  handlers.ErrorResponse  "Model timed out"
// @Router      /chat/{userId}/message [post]
func (h *Handlers) SendChatMessage(c *gin.Context) {
	uid, valid := pathID(c, "userId")
	if !valid {
		return
	}
	var req SendChatMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	key, _ := middleware.GetIdempotencyKey(c)

	in := services.SendInput{Message: req.Message, Messages: toDomainMessages(req.Messages)}
	conv, replayed, err := h.svc.Chat.Send(c.Request.Context(), uid, in, key)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrEmptyMessage):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message or messages is required")
		return
	case errors.Is(err, services.ErrInvalidRole):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid chat role")
		return
	case errors.Is(err, services.ErrConversationNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "conversation not found")
		return
	case errors.Is(err, services.ErrConcurrentSend):
		fail(c, http.StatusConflict, ErrCodeConflict, "conversation changed by another message, please retry")
		return
	case errors.Is(err, llm.ErrTimeout):
		fail(c, http.StatusGatewayTimeout, ErrCodeLLMTimeout, "the companion took too long to reply")
		return
	case errors.Is(err, llm.ErrUpstream), errors.Is(err, llm.ErrNotConfigured):
		fail(c, http.StatusInternalServerError, ErrCodeLLMUnavailable, "the companion is unavailable right now")
		return
	default:
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "could not update conversation")
		return
	}

	if replayed {
		c.Header(HeaderIdempotencyReplayed, "true")
	}
	ok(c, http.StatusOK, conv)
}
