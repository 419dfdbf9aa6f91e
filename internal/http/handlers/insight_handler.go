package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AnalyzeJournalRequest is the JSON payload for journal analysis.
type AnalyzeJournalRequest struct {
	Text string `json:"text" binding:"required,min=1,max=5000" example:"Work was hectic but the evening run helped."`
}

// RandomQuote godoc
// @ID          randomQuote
// @Summary     A random motivational quote
// @Description Picks one of a fixed set. Never calls the language model.
// @Tags        Quotes
// @Produce     json
// @Success     200  {object}  domain.Quote
// @Router      /quotes/random [get]
func (h *Handlers) RandomQuote(c *gin.Context) {
	ok(c, http.StatusOK, h.svc.Insights.Random())
}

// GenerateQuote godoc
// @ID          generateQuote
// @Summary     A generated motivational quote
// @Description Falls back to a fixed quote when the model is unavailable.
// @Tags        Quotes
// @Produce     json
// @Param       context  query     string  false  "Something about the reader"
// @Success     200      {object}  domain.Quote
// @Router      /quotes/generate [get]
func (h *Handlers) GenerateQuote(c *gin.Context) {
	ok(c, http.StatusOK, h.svc.Insights.Generate(c.Request.Context(), c.Query("context")))
}

// AnalyzeJournal godoc
// @ID          analyzeJournal
// @Summary     Suggest a mood for a journal entry
// @Description Falls back to a neutral reading when the model is unavailable.
// @Tags        Journal
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.AnalyzeJournalRequest  true  "Entry"
// @Success     200   {object}  domain.MoodAnalysis
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /journal/analyze [post]
func (h *Handlers) AnalyzeJournal(c *gin.Context) {
	var req AnalyzeJournalRequest
	if !bindJSON(c, &req) {
		return
	}
	ok(c, http.StatusOK, h.svc.Insights.AnalyzeJournal(c.Request.Context(), req.Text))
}
