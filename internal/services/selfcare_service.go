package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-wellness-backend/internal/domain"
	"github.com/tbourn/go-wellness-backend/internal/repo"
)

// SelfCareService manages the per-day self-care checklists.
type SelfCareService struct {
	Store repo.SelfCareStore
	Now   func() time.Time
}

// NewSelfCareService returns a SelfCareService over s using the wall clock.
func NewSelfCareService(s repo.SelfCareStore) *SelfCareService {
	return &SelfCareService{Store: s, Now: time.Now}
}

// Create stores a new checklist for userID with the given items ticked.
// The checklist belongs to today.
func (s *SelfCareService) Create(ctx context.Context, userID int64, items domain.SelfCarePatch) (*domain.SelfCareChecklist, error) {
	ctx, span := otel.Tracer("services/SelfCareService").Start(ctx, "Create",
		trace.WithAttributes(attribute.Int64("user.id", userID)),
	)
	defer span.End()

	c := domain.SelfCareChecklist{UserID: userID}
	items.Apply(&c)
	return s.Store.CreateSelfCareChecklist(ctx, c)
}

// ForDay returns the user's checklist for day's UTC calendar date.
func (s *SelfCareService) ForDay(ctx context.Context, userID int64, day time.Time) (*domain.SelfCareChecklist, error) {
	ctx, span := otel.Tracer("services/SelfCareService").Start(ctx, "ForDay",
		trace.WithAttributes(
			attribute.Int64("user.id", userID),
			attribute.String("day", day.UTC().Format(time.DateOnly)),
		),
	)
	defer span.End()

	c, err := s.Store.FindSelfCareChecklist(ctx, userID, day)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrChecklistNotFound
	}
	return c, err
}

// Update merges patch into checklist id.
func (s *SelfCareService) Update(ctx context.Context, id int64, patch domain.SelfCarePatch) (*domain.SelfCareChecklist, error) {
	ctx, span := otel.Tracer("services/SelfCareService").Start(ctx, "Update",
		trace.WithAttributes(attribute.Int64("checklist.id", id)),
	)
	defer span.End()

	c, err := s.Store.UpdateSelfCareChecklist(ctx, id, patch)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrChecklistNotFound
	}
	return c, err
}

// Toggle applies patch to the user's checklist for day, creating it when the
// day has none yet. created reports which of the two happened. A day other
// than today is stamped at that day's UTC midnight.
func (s *SelfCareService) Toggle(ctx context.Context, userID int64, day time.Time, patch domain.SelfCarePatch) (c *domain.SelfCareChecklist, created bool, err error) {
	ctx, span := otel.Tracer("services/SelfCareService").Start(ctx, "Toggle",
		trace.WithAttributes(
			attribute.Int64("user.id", userID),
			attribute.String("day", day.UTC().Format(time.DateOnly)),
		),
	)
	defer span.End()

	existing, err := s.Store.FindSelfCareChecklist(ctx, userID, day)
	switch {
	case err == nil:
		if patch.Empty() {
			return existing, false, nil
		}
		c, err = s.Store.UpdateSelfCareChecklist(ctx, existing.ID, patch)
		return c, false, err
	case !errors.Is(err, repo.ErrNotFound):
		return nil, false, err
	}

	fresh := domain.SelfCareChecklist{UserID: userID}
	patch.Apply(&fresh)
	now := s.Now().UTC()
	if d := day.UTC(); d.Format(time.DateOnly) != now.Format(time.DateOnly) {
		fresh.Date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	c, err = s.Store.CreateSelfCareChecklist(ctx, fresh)
	if err != nil {
		return nil, false, err
	}
	span.SetAttributes(attribute.Bool("created", true))
	return c, true, nil
}
