package service

import (
	"context"
	"errors"
	"time"

	"lashstudio/internal/availability"
	"lashstudio/internal/confirmation"
	"lashstudio/internal/gallery"
	sessionserrors "lashstudio/internal/sessions/errors"
	"lashstudio/internal/sessions/repository"
	"lashstudio/internal/sessions/validator"
	"lashstudio/internal/wizard"
	"lashstudio/pkg/config"
	apperrors "lashstudio/pkg/errors"
	"lashstudio/pkg/logger"
	"lashstudio/pkg/metrics"
	"lashstudio/pkg/model"
	"lashstudio/pkg/sanitizer"
)

const maxConflictRetries = 3

// Engine bundles the booking core the services drive. Styles defaults to
// gallery.DefaultStyles.
type Engine struct {
	Machine    *wizard.Machine
	Provider   availability.Provider
	Dispatcher *confirmation.Dispatcher
	Metrics    *metrics.BookingMetrics
	Styles     []gallery.Style
}

// Outcome is the result of one client event.
type Outcome struct {
	Record    *repository.Record
	Applied   bool
	Exited    bool
	Completed bool
}

type SessionService interface {
	Create(ctx context.Context, req *validator.SessionRequest) (*repository.Record, error)
	GetByID(ctx context.Context, id string) (*repository.Record, error)
	ApplyEvent(ctx context.Context, id string, req *validator.EventRequest) (*Outcome, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

type sessionService struct {
	repo      repository.SessionRepository
	validator *validator.EventValidator
	engine    Engine
	cfg       *config.Config
}

func NewSessionService(
	repo repository.SessionRepository,
	validator *validator.EventValidator,
	engine Engine,
	cfg *config.Config,
) SessionService {
	if engine.Dispatcher == nil {
		engine.Dispatcher = confirmation.NewDispatcher(confirmation.ReceiptConfig{
			Location:       cfg.StudioLocation,
			CurrencySymbol: cfg.CurrencySymbol,
		}, nil)
	}
	if engine.Styles == nil {
		engine.Styles = gallery.DefaultStyles()
	}
	return &sessionService{
		repo:      repo,
		validator: validator,
		engine:    engine,
		cfg:       cfg,
	}
}

func (s *sessionService) log(ctx context.Context) *logger.Logger {
	return logger.FromContext(ctx, s.cfg.Log)
}

func (s *sessionService) Create(ctx context.Context, req *validator.SessionRequest) (*repository.Record, error) {
	if err := s.validator.ValidateSession(req); err != nil {
		return nil, validationError(err)
	}

	var preselected string
	if req.ServiceID != "" {
		svc, ok := gallery.BookStyle(s.engine.Machine.Catalog(), s.engine.Styles, req.ServiceID)
		if !ok {
			return nil, apperrors.Validation("Service is not a gallery style", map[string]any{
				"service_id": req.ServiceID,
			})
		}
		preselected = svc.ID
	}

	rec := &repository.Record{
		ID:      repository.NewID(),
		Session: s.engine.Machine.Start(preselected),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.log(ctx).Error("Failed to create session", "error", err)
		return nil, apperrors.Internal("Failed to create session", err)
	}

	s.engine.Metrics.SessionStarted()
	s.log(ctx).Info("Session created",
		"session_id", rec.ID,
		"state", rec.Session.State,
		"preselected", preselected,
	)
	return rec, nil
}

// GetByID also resolves a slot lookup left pending by an earlier request
// that failed to commit its result.
func (s *sessionService) GetByID(ctx context.Context, id string) (*repository.Record, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(ctx, err, id)
	}
	if wizard.NeedsSlots(rec.Session) {
		return s.resolveSlots(ctx, rec), nil
	}
	return rec, nil
}

func (s *sessionService) ApplyEvent(ctx context.Context, id string, req *validator.EventRequest) (*Outcome, error) {
	ev, err := s.validator.ToEvent(req)
	if err != nil {
		s.log(ctx).Warn("Event validation failed", "session_id", id, "type", req.Type, "error", err)
		return nil, validationError(err)
	}
	ev = s.sanitize(ev)

	out, err := s.commit(ctx, id, ev)
	if err != nil {
		return nil, err
	}
	s.engine.Metrics.ObserveEvent(ev.Name(), out.Applied)

	if out.Completed {
		s.deliver(ctx, out.Record)
	}
	if out.Applied && wizard.NeedsSlots(out.Record.Session) {
		out.Record = s.resolveSlots(ctx, out.Record)
	}
	return out, nil
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(ctx, err, id)
	}
	s.log(ctx).Info("Session deleted", "session_id", id)
	return nil
}

func (s *sessionService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// commit applies ev to the stored session, retrying from a fresh read when
// another request wrote in between. Ignored events are not written.
func (s *sessionService) commit(ctx context.Context, id string, ev wizard.Event) (*Outcome, error) {
	for attempt := 1; ; attempt++ {
		rec, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, s.mapRepoError(ctx, err, id)
		}

		res := s.engine.Machine.Apply(rec.Session, ev)
		if !res.Applied {
			return &Outcome{Record: rec}, nil
		}

		rec.Session = res.Session
		switch {
		case res.Completed != nil:
			receipt := s.engine.Dispatcher.Prepare(*res.Completed)
			rec.Receipt = &receipt
		case rec.Session.State != wizard.Completed:
			rec.Receipt = nil
		}

		err = s.repo.Update(ctx, rec)
		if errors.Is(err, sessionserrors.ErrConflict) && attempt < maxConflictRetries {
			s.log(ctx).Warn("Session write conflict, retrying",
				"session_id", id,
				"event", ev.Name(),
				"attempt", attempt,
			)
			continue
		}
		if err != nil {
			return nil, s.mapRepoError(ctx, err, id)
		}

		return &Outcome{
			Record:    rec,
			Applied:   true,
			Exited:    res.Exited,
			Completed: res.Completed != nil,
		}, nil
	}
}

// resolveSlots runs the lookup outside the write loop and commits the
// result as a versioned event, so a slow answer for an old date is dropped
// by the machine instead of overwriting a newer choice.
func (s *sessionService) resolveSlots(ctx context.Context, rec *repository.Record) *repository.Record {
	start := time.Now()
	follow, ok := wizard.FetchSlots(ctx, s.engine.Provider, s.cfg.AvailabilityTimeout, rec.Session)
	if !ok {
		return rec
	}

	outcome := "ok"
	if _, failed := follow.(wizard.SlotsFailed); failed {
		outcome = "unavailable"
	}
	s.engine.Metrics.ObserveAvailability(outcome, time.Since(start))

	out, err := s.commit(ctx, rec.ID, follow)
	if err != nil {
		s.log(ctx).Warn("Failed to store availability result",
			"session_id", rec.ID,
			"outcome", outcome,
			"error", err,
		)
		return rec
	}
	return out.Record
}

// deliver hands the receipt to the confirmation sinks. The booking stays
// completed whatever the sinks report.
func (s *sessionService) deliver(ctx context.Context, rec *repository.Record) {
	if rec.Receipt == nil {
		return
	}
	s.engine.Metrics.BookingCompleted(rec.Receipt.Booking.Service.ID)
	s.log(ctx).Info("Booking completed",
		"session_id", rec.ID,
		"receipt_id", rec.Receipt.ID,
		"service", rec.Receipt.Booking.Service.ID,
		"date", rec.Receipt.Booking.Date.String(),
		"time", rec.Receipt.Booking.Time,
	)

	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.RequestTimeout)
	defer cancel()
	if err := s.engine.Dispatcher.Deliver(dctx, *rec.Receipt); err != nil {
		s.log(ctx).Warn("Confirmation delivery incomplete",
			"session_id", rec.ID,
			"receipt_id", rec.Receipt.ID,
			"error", err,
		)
	}
}

func (s *sessionService) sanitize(ev wizard.Event) wizard.Event {
	set, ok := ev.(wizard.SetContactField)
	if !ok {
		return ev
	}
	switch set.Field {
	case model.ContactFieldName:
		set.Value = sanitizer.NormalizeName(set.Value)
	case model.ContactFieldPhone:
		set.Value = sanitizer.NormalizePhone(set.Value, s.cfg.StudioRegion)
	case model.ContactFieldEmail:
		set.Value = sanitizer.NormalizeEmail(set.Value)
	}
	return set
}

func (s *sessionService) mapRepoError(ctx context.Context, err error, id string) error {
	switch {
	case errors.Is(err, sessionserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Session", id)
	case errors.Is(err, sessionserrors.ErrExpired):
		return apperrors.Gone("Session", id)
	case errors.Is(err, sessionserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid session ID format")
	case errors.Is(err, sessionserrors.ErrConflict):
		return apperrors.Conflict("Session was modified concurrently, please retry")
	}
	s.log(ctx).Error("Session store failure", "session_id", id, "error", err)
	return apperrors.Internal("Failed to access session", err)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Invalid request", map[string]any{"errors": verrs})
	}
	return apperrors.Validation("Invalid request", map[string]any{"error": err.Error()})
}
