package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wellness-backend/internal/domain"
	"github.com/tbourn/go-wellness-backend/internal/services"
)

// CreateSelfCareRequest is the JSON payload for a new checklist. Omitted
// items start unticked.
type CreateSelfCareRequest struct {
	UserID *int64 `json:"userId" binding:"required,gte=0" example:"1"`
	domain.SelfCarePatch
}

// CreateSelfCare godoc
// @ID          createSelfCare
// @Summary     Create today's checklist
// @Tags        SelfCare
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateSelfCareRequest  true  "Checklist"
// @Success     201   {object}  domain.SelfCareChecklist
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /self-care [post]
func (h *Handlers) CreateSelfCare(c *gin.Context) {
	var req CreateSelfCareRequest
	if !bindJSON(c, &req) {
		return
	}
	sc, err := h.svc.SelfCare.Create(c.Request.Context(), *req.UserID, req.SelfCarePatch)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not create checklist")
		return
	}
	ok(c, http.StatusCreated, sc)
}

// GetSelfCare godoc
// @ID          getSelfCare
// @Summary     A user's checklist for a day
// @Tags        SelfCare
// @Produce     json
// @Param       userId  path   int     true   "User ID"
// @Param       date    query  string  false  "RFC 3339 or YYYY-MM-DD (default today, UTC)"
// @Success     200  {object}  domain.SelfCareChecklist
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id or date"
// @Failure     404  {object}  handlers.ErrorResponse  "No checklist for the day"
// @Router      /self-care/{userId} [get]
func (h *Handlers) GetSelfCare(c *gin.Context) {
	uid, valid := pathID(c, "userId")
	if !valid {
		return
	}
	day, valid := queryTime(c, "date", h.now())
	if !valid {
		return
	}
	sc, err := h.svc.SelfCare.ForDay(c.Request.Context(), uid, day)
	if errors.Is(err, services.ErrChecklistNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "no checklist for this day")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load checklist")
		return
	}
	ok(c, http.StatusOK, sc)
}

// UpdateSelfCare godoc
// @ID          updateSelfCare
// @Summary     Update checklist items
// @Description Merges the provided items; omitted items are unchanged.
// @Tags        SelfCare
// @Accept      json
// @Produce     json
// @Param       id    path      int                   true  "Checklist ID"
// @Param       body  body      domain.SelfCarePatch  true  "Items to change"
// @Success     200   {object}  domain.SelfCareChecklist
// @Failure     400   {object}  handlers.ErrorResponse  "Bad id or body"
// @Failure     404   {object}  handlers.ErrorResponse  "Checklist not found"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /self-care/{id} [patch]
func (h *Handlers) UpdateSelfCare(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var patch domain.SelfCarePatch
	if !bindJSON(c, &patch) {
		return
	}
	sc, err := h.svc.SelfCare.Update(c.Request.Context(), id, patch)
	if errors.Is(err, services.ErrChecklistNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "checklist not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "could not update checklist")
		return
	}
	ok(c, http.StatusOK, sc)
}

// ToggleSelfCare godoc
// @ID          toggleSelfCare
// @Summary     Set items on a day's checklist, creating it if needed
// @Tags        SelfCare
// @Accept      json
// @Produce     json
// @Param       userId  path      int                   true   "User ID"
// @Param       date    query     string                false  "RFC 3339 or YYYY-MM-DD (default today, UTC)"
// @Param       body    body      domain.SelfCarePatch  true   "Items to set"
// @Success     200     {object}  domain.SelfCareChecklist  "Updated"
// @Success     201     {object}  domain.SelfCareChecklist  "Created"
// @Failure     400     {object}  handlers.ErrorResponse    "Bad id, date or body"
// @Failure     500     {object}  handlers.ErrorResponse    "Internal error"
// @Router      /self-care/{userId} [put]
func (h *Handlers) ToggleSelfCare(c *gin.Context) {
	uid, valid := pathID(c, "userId")
	if !valid {
		return
	}
	day, valid := queryTime(c, "date", h.now())
	if !valid {
		return
	}
	var patch domain.SelfCarePatch
	if !bindJSON(c, &patch) {
		return
	}
	sc, created, err := h.svc.SelfCare.Toggle(c.Request.Context(), uid, day, patch)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "could not update checklist")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ok(c, status, sc)
}
