package services

import (
	"context"
	"math/rand/v2"

	"go.opentelemetry.io/otel"

	"github.com/tbourn/go-wellness-backend/internal/domain"
)

// Quotes is the fixed set served by Random.
var Quotes = []domain.Quote{
	{Text: "You don't have to see the whole staircase, just take the first step.", Author: "Martin Luther King Jr."},
	{Text: "Happiness can be found even in the darkest of times, if one only remembers to turn on the light.", Author: "Albus Dumbledore"},
	{Text: "The greatest glory in living lies not in never falling, but in rising every time we fall.", Author: "Nelson Mandela"},
	{Text: "The way to get started is to quit talking and begin doing.", Author: "Walt Disney"},
	{Text: "Your time is limited, so don't waste it living someone else's life.", Author: "Steve Jobs"},
}

// Advisor is the subset of the language-model gateway used for quotes and
// journal analysis. Both calls degrade to fixed fallbacks internally.
type Advisor interface {
	GenerateQuote(ctx context.Context, userContext string) domain.Quote
	AnalyzeJournalMood(ctx context.Context, text string) domain.MoodAnalysis
}

// InsightService serves quotes and journal analysis.
type InsightService struct {
	LLM Advisor
	// Pick returns an index in [0, n). Defaults to math/rand/v2.
	Pick func(n int) int
}

// NewInsightService returns an InsightService over llm.
func NewInsightService(llm Advisor) *InsightService {
	return &InsightService{LLM: llm, Pick: rand.IntN}
}

// Random returns one of the fixed quotes. It never calls the model.
func (s *InsightService) Random() domain.Quote {
	return Quotes[s.Pick(len(Quotes))]
}

// Generate asks the model for a quote tailored to userContext.
func (s *InsightService) Generate(ctx context.Context, userContext string) domain.Quote {
	ctx, span := otel.Tracer("services/InsightService").Start(ctx, "Generate")
	defer span.End()
	return s.LLM.GenerateQuote(ctx, userContext)
}

// AnalyzeJournal suggests a mood and insights for a journal entry.
func (s *InsightService) AnalyzeJournal(ctx context.Context, text string) domain.MoodAnalysis {
	ctx, span := otel.Tracer("services/InsightService").Start(ctx, "AnalyzeJournal")
	defer span.End()
	return s.LLM.AnalyzeJournalMood(ctx, text)
}
