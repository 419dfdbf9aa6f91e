package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wellness-backend/internal/domain"
)

// CreateMoodEntryRequest is the JSON payload for recording a mood.
type CreateMoodEntryRequest struct {
	UserID *int64  `json:"userId" binding:"required,gte=0"                                example:"1"`
	Mood   string  `json:"mood"   binding:"required,oneof=happy calm neutral sad stressed" example:"calm"`
	Note   *string `json:"note"   binding:"omitempty,max=2000"                             example:"Walked in the park."`
}

// CreateMoodEntry godoc
// @ID          createMoodEntry
// @Summary     Record a mood
// @Tags        Moods
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateMoodEntryRequest  true  "Mood entry"
// @Success     201   {object}  domain.MoodEntry
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /mood-entries [post]
func (h *Handlers) CreateMoodEntry(c *gin.Context) {
	var req CreateMoodEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.svc.Moods.Record(c.Request.Context(), *req.UserID, domain.Mood(req.Mood), req.Note)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not record mood")
		return
	}
	ok(c, http.StatusCreated, e)
}

// ListMoodEntries godoc
// @ID          listMoodEntries
// @Summary     Recent moods of a user
// @Description Newest first. Unknown users yield an empty list.
// @Tags        Moods
// @Produce     json
// @Param       userId  path   int  true   "User ID"
// @Param       limit   query  int  false  "Max entries"  default(7) maximum(100)
// @Success     200  {array}   domain.MoodEntry
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /mood-entries/{userId} [get]
func (h *Handlers) ListMoodEntries(c *gin.Context) {
	uid, valid := pathID(c, "userId")
	if !valid {
		return
	}
	items, err := h.svc.Moods.Recent(c.Request.Context(), uid, queryLimit(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list moods")
		return
	}
	ok(c, http.StatusOK, items)
}

// ListMoodEntriesByRange godoc
// @ID          listMoodEntriesByRange
// @Summary     Moods of a user in a time range
// @Description Oldest first, bounds inclusive. Defaults to the last seven days.
// @Tags        Moods
// @Produce     json
// @Param       userId  path   int     true   "User ID"
// @Param       start   query  string  false  "RFC 3339 or YYYY-MM-DD"  example(2025-06-01)
// @Param       end     query  string  false  "RFC 3339 or YYYY-MM-DD"  example(2025-06-08T00:00:00Z)
// @Success     200  {array}   domain.MoodEntry
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id or date"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /mood-entries/{userId}/range [get]
func (h *Handlers) ListMoodEntriesByRange(c *gin.Context) {
	uid, valid := pathID(c, "userId")
	if !valid {
		return
	}
	now := h.now().UTC()
	start, valid := queryTime(c, "start", now.Add(-7*24*time.Hour))
	if !valid {
		return
	}
	end, valid := queryTime(c, "end", now)
	if !valid {
		return
	}
	items, err := h.svc.Moods.Range(c.Request.Context(), uid, start, end)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list moods")
		return
	}
	ok(c, http.StatusOK, items)
}
