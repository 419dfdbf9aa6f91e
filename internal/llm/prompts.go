package llm

import "github.com/tbourn/go-wellness-backend/internal/domain"

// CompanionPrompt is the persona prepended to every chat exchange that does
// not already start with a system turn.
const CompanionPrompt = `You are MindMate, an empathetic mental wellness companion.
Offer emotional support, practical ideas and healthy coping strategies. Be kind,
non-judgmental and conversational. If someone seems to be in crisis, gently
point them to professional help, and never present your replies as medical or
psychological advice. Prefer evidence-based suggestions for managing stress,
anxiety, low mood and other everyday emotional challenges.`

const journalPrompt = `You analyze journal entries for a mental wellness app.
Identify the writer's primary mood, choosing exactly one of: happy, calm, neutral, sad, stressed.
Add brief, kind insights that could help them.
Reply with a single JSON object: {"suggestedMood": string, "insights": string}`

const quotePrompt = `You write uplifting, grounded motivational quotes for a mental wellness app.
Produce one concise quote attributed to a real author or "Anonymous".
Reply with a single JSON object: {"text": string, "author": string}`

const defaultQuoteContext = "Write an inspiring quote for someone working on their mental wellness."

// Fixed texts served when the model cannot be used.
const (
	FallbackReply = "I'm having trouble connecting right now. Please try again later."
	EmptyReply    = "I'm sorry, I couldn't generate a response at this time."
)

// FallbackAnalysis is returned by AnalyzeJournalMood on any failure.
var FallbackAnalysis = domain.MoodAnalysis{
	SuggestedMood: domain.MoodNeutral,
	Insights:      "I couldn't analyze your journal entry right now. Please try again later.",
}

// FallbackQuote is returned by GenerateQuote on any failure.
var FallbackQuote = domain.Quote{
	Text:   "Every moment is a fresh beginning.",
	Author: "T.S Eliot",
}
