package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wellness-backend/internal/services"
)

// CreateThoughtPostRequest is the JSON payload for a community post.
type CreateThoughtPostRequest struct {
	UserID  *int64 `json:"userId"  binding:"required,gte=0"          example:"1"`
	Content string `json:"content" binding:"required,min=1,max=2000" example:"Small steps still count."`
}

// CreateThoughtPost godoc
// @ID          createThoughtPost
// @Summary     Post to the community board
// @Tags        Thoughts
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateThoughtPostRequest  true  "Post"
// @Success     201   {object}  domain.ThoughtPost
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /thought-posts [post]
func (h *Handlers) CreateThoughtPost(c *gin.Context) {
	var req CreateThoughtPostRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.Thoughts.Post(c.Request.Context(), *req.UserID, req.Content)
	if errors.Is(err, services.ErrEmptyContent) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content is empty")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not create post")
		return
	}
	ok(c, http.StatusCreated, p)
}

// ListThoughtPosts godoc
// @ID          listThoughtPosts
// @Summary     Community board
// @Description Newest first. Supports a weak ETag via If-None-Match and may return 304.
// @Tags        Thoughts
// @Produce     json
// @Param       limit          query   int     false  "Max posts"  default(10) maximum(100)
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {array}   domain.ThoughtPost
// @Header      200  {string}  ETag  "Weak ETag of the board"
// @Success     304  {string}  string  "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /thought-posts [get]
func (h *Handlers) ListThoughtPosts(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if etag, err := h.svc.Thoughts.ETag(ctx); err == nil {
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, err := h.svc.Thoughts.List(ctx, queryLimit(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list posts")
		return
	}
	ok(c, http.StatusOK, items)
}

// LikeThoughtPost godoc
// @ID          likeThoughtPost
// @Summary     Like a post
// @Tags        Thoughts
// @Produce     json
// @Param       id   path      int  true  "Post ID"
// @Success     200  {object}  domain.ThoughtPost
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id"
// @Failure     404  {object}  handlers.ErrorResponse  "Post not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /thought-posts/{id}/like [post]
func (h *Handlers) LikeThoughtPost(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p, err := h.svc.Thoughts.Like(c.Request.Context(), id)
	if errors.Is(err, services.ErrPostNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "post not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "could not like post")
		return
	}
	ok(c, http.StatusOK, p)
}
