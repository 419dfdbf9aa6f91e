// Package llm wraps the chat-completion provider behind a small gateway used
// by the companion chat, the journal analyzer and the quote generator.
//
// The provider is any eino ChatModel. Each call runs under its own timeout,
// is traced and counted, and never leaks provider errors to clients: the
// best-effort operations (GenerateReply, AnalyzeJournalMood, GenerateQuote)
// degrade to fixed fallback texts, while Reply reports typed errors so the
// chat service can refuse to persist a failed turn.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tbourn/go-wellness-backend/internal/config"
	"github.com/tbourn/go-wellness-backend/internal/domain"
)

var (
	// ErrNotConfigured is returned when no provider was configured.
	ErrNotConfigured = errors.New("llm: provider not configured")
	// ErrTimeout is returned when a call exceeds the gateway timeout.
	ErrTimeout = errors.New("llm: request timed out")
	// ErrUpstream wraps any other provider failure.
	ErrUpstream = errors.New("llm: upstream failure")
)

// ChatModel is the subset of eino's model.BaseChatModel the gateway needs.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Gateway issues completion requests against a ChatModel.
type Gateway struct {
	Model       ChatModel
	Timeout     time.Duration
	MaxTokens   int
	Temperature float32
}

// New returns a Gateway over m using the tuning knobs in cfg. m may be nil.
func New(m ChatModel, cfg config.LLMConfig) *Gateway {
	return &Gateway{
		Model:       m,
		Timeout:     cfg.Timeout,
		MaxTokens:   cfg.MaxTokens,
		Temperature: float32(cfg.Temperature),
	}
}

// Configured reports whether a provider is attached.
func (g *Gateway) Configured() bool { return g != nil && g.Model != nil }

// Reply produces the assistant's next turn for history. The companion
// persona is prepended unless history already opens with a system turn.
// An empty completion yields EmptyReply with a nil error.
func (g *Gateway) Reply(ctx context.Context, history []domain.ChatMessage) (string, error) {
	msgs := make([]*schema.Message, 0, len(history)+1)
	if len(history) == 0 || history[0].Role != domain.RoleSystem {
		msgs = append(msgs, schema.SystemMessage(CompanionPrompt))
	}
	for _, m := range history {
		msgs = append(msgs, toSchema(m))
	}

	out, err := g.generate(ctx, "reply", msgs)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		observe("reply", "empty")
		return EmptyReply, nil
	}
	observe("reply", "ok")
	return out, nil
}

// GenerateReply is Reply with the connection fallback applied on error.
func (g *Gateway) GenerateReply(ctx context.Context, history []domain.ChatMessage) string {
	out, err := g.Reply(ctx, history)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("llm reply failed, serving fallback")
		return FallbackReply
	}
	return out
}

// AnalyzeJournalMood classifies text into one of the known moods with a
// short insight. Any failure returns FallbackAnalysis.
func (g *Gateway) AnalyzeJournalMood(ctx context.Context, text string) domain.MoodAnalysis {
	msgs := []*schema.Message{
		schema.SystemMessage(journalPrompt),
		schema.UserMessage(text),
	}
	out, err := g.generate(ctx, "analyze", msgs)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("journal analysis failed, serving fallback")
		return FallbackAnalysis
	}

	var parsed struct {
		SuggestedMood string `json:"suggestedMood"`
		Insights      string `json:"insights"`
	}
	if err := decodeObject(out, &parsed); err != nil {
		observe("analyze", "bad_output")
		log.Ctx(ctx).Warn().Err(err).Msg("journal analysis unparsable, serving fallback")
		return FallbackAnalysis
	}
	mood := domain.Mood(strings.ToLower(strings.TrimSpace(parsed.SuggestedMood)))
	insights := strings.TrimSpace(parsed.Insights)
	if !mood.Valid() || insights == "" {
		observe("analyze", "bad_output")
		log.Ctx(ctx).Warn().Str("mood", parsed.SuggestedMood).Msg("journal analysis invalid, serving fallback")
		return FallbackAnalysis
	}
	observe("analyze", "ok")
	return domain.MoodAnalysis{SuggestedMood: mood, Insights: insights}
}

// GenerateQuote asks for a motivational quote, optionally tailored by
// userContext. Any failure returns FallbackQuote. A missing author is
// reported as "Anonymous".
func (g *Gateway) GenerateQuote(ctx context.Context, userContext string) domain.Quote {
	prompt := defaultQuoteContext
	if c := strings.TrimSpace(userContext); c != "" {
		prompt = "Consider this context about the user: " + c
	}
	msgs := []*schema.Message{
		schema.SystemMessage(quotePrompt),
		schema.UserMessage(prompt),
	}
	out, err := g.generate(ctx, "quote", msgs)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("quote generation failed, serving fallback")
		return FallbackQuote
	}

	var q domain.Quote
	if err := decodeObject(out, &q); err != nil || strings.TrimSpace(q.Text) == "" {
		observe("quote", "bad_output")
		log.Ctx(ctx).Warn().Err(err).Msg("quote unparsable, serving fallback")
		return FallbackQuote
	}
	q.Text = strings.TrimSpace(q.Text)
	q.Author = strings.TrimSpace(q.Author)
	if q.Author == "" {
		q.Author = "Anonymous"
	}
	observe("quote", "ok")
	return q
}

// generate runs one traced, timed completion and returns its text content.
// It counts failed calls; a call that returned is counted by the caller once
// the content has been judged.
func (g *Gateway) generate(ctx context.Context, op string, msgs []*schema.Message) (string, error) {
	ctx, span := otel.Tracer("llm/Gateway").Start(ctx, "Gateway."+op)
	defer span.End()
	span.SetAttributes(attribute.Int("llm.messages", len(msgs)))

	if !g.Configured() {
		observe(op, "not_configured")
		span.SetStatus(codes.Error, "not configured")
		return "", ErrNotConfigured
	}

	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	var opts []model.Option
	if g.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(g.MaxTokens))
	}
	if g.Temperature > 0 {
		opts = append(opts, model.WithTemperature(g.Temperature))
	}

	start := time.Now()
	resp, err := g.Model.Generate(ctx, msgs, opts...)
	llmLat.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			observe(op, "timeout")
			span.SetStatus(codes.Error, "timeout")
			return "", ErrTimeout
		}
		observe(op, "error")
		span.SetStatus(codes.Error, "upstream")
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Content, nil
}

func toSchema(m domain.ChatMessage) *schema.Message {
	switch m.Role {
	case domain.RoleSystem:
		return schema.SystemMessage(m.Content)
	case domain.RoleAssistant:
		return schema.AssistantMessage(m.Content, nil)
	default:
		return schema.UserMessage(m.Content)
	}
}

// decodeObject unmarshals the first JSON object found in raw. Models often
// wrap the object in prose or code fences.
func decodeObject(raw string, v any) error {
	trimmed := strings.TrimSpace(raw)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return errors.New("missing json object")
	}
	return json.Unmarshal([]byte(trimmed[start:end+1]), v)
}
