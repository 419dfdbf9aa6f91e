// Wellness API HTTP handlers.
//
// Handlers are transport-thin: they parse path and query parameters, bind
// and validate JSON bodies, call the application services, and translate
// service errors into the error envelope.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wellness-backend/internal/domain"
	"github.com/tbourn/go-wellness-backend/internal/services"
	"github.com/tbourn/go-wellness-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// UserService registers and reads accounts.
type UserService interface {
	Register(ctx context.Context, username, password string, displayName *string) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
}

// MoodService records and reads mood entries.
type MoodService interface {
	Record(ctx context.Context, userID int64, mood domain.Mood, note *string) (*domain.MoodEntry, error)
	Recent(ctx context.Context, userID int64, limit int) ([]domain.MoodEntry, error)
	Range(ctx context.Context, userID int64, start, end time.Time) ([]domain.MoodEntry, error)
}

// ThoughtService runs the community board.
type ThoughtService interface {
	Post(ctx context.Context, userID int64, content string) (*domain.ThoughtPost, error)
	List(ctx context.Context, limit int) ([]domain.ThoughtPost, error)
	Like(ctx context.Context, id int64) (*domain.ThoughtPost, error)
	ETag(ctx context.Context) (string, error)
}

// SelfCareService manages daily checklists.
type SelfCareService interface {
	Create(ctx context.Context, userID int64, items domain.SelfCarePatch) (*domain.SelfCareChecklist, error)
	ForDay(ctx context.Context, userID int64, day time.Time) (*domain.SelfCareChecklist, error)
	Update(ctx context.Context, id int64, patch domain.SelfCarePatch) (*domain.SelfCareChecklist, error)
	Toggle(ctx context.Context, userID int64, day time.Time, patch domain.SelfCarePatch) (*domain.SelfCareChecklist, bool, error)
}

// ChatService runs companion conversations.
type ChatService interface {
	Start(ctx context.Context, userID int64, msgs []domain.ChatMessage) (*domain.ChatConversation, error)
	Current(ctx context.Context, userID int64) (*domain.ChatConversation, error)
	Send(ctx context.Context, userID int64, in services.SendInput, idemKey string) (*domain.ChatConversation, bool, error)
}

// InsightService serves quotes and journal analysis.
type InsightService interface {
	Random() domain.Quote
	Generate(ctx context.Context, userContext string) domain.Quote
	AnalyzeJournal(ctx context.Context, text string) domain.MoodAnalysis
}

//
// Handler wiring
//

// Services bundles the dependencies of Handlers.
type Services struct {
	Users    UserService
	Moods    MoodService
	Thoughts ThoughtService
	SelfCare SelfCareService
	Chat     ChatService
	Insights InsightService
}

// Handlers groups the HTTP endpoints of the API.
type Handlers struct {
	svc Services
	now func() time.Time
}

// New constructs a Handlers instance bound to the given services.
func New(s Services) *Handlers {
	return &Handlers{svc: s, now: time.Now}
}

//
// Helpers
//

// pathID parses the named path parameter as an integer id. On failure it
// writes a 400 and returns false. Ids that parse but do not exist are left to
// the lookup (404, or an empty list).
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be an integer")
		return 0, false
	}
	return id, true
}

// queryLimit reads ?limit=, returning 0 (store default) when absent or invalid.
func queryLimit(c *gin.Context) int {
	n := utils.AtoiDefault(c.Query("limit"), 0)
	if n < 0 {
		return 0
	}
	return n
}

// queryTime parses an optional ISO-8601 query parameter. ok is false after a
// 400 has been written.
func queryTime(c *gin.Context, name string, def time.Time) (t time.Time, ok bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	t, _, err := utils.ParseISOTime(raw)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+": "+err.Error())
		return time.Time{}, false
	}
	return t, true
}

// Health godoc
// @ID          health
// @Summary     Liveness check
// @Tags        System
// @Produce     json
// @Success     200  {object}  map[string]string
// @Router      /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
