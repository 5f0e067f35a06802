package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"lashstudio/internal/availability"
	"lashstudio/internal/calendar"
	"lashstudio/internal/catalog"
	"lashstudio/internal/confirmation"
	"lashstudio/internal/gallery"
	sessionserrors "lashstudio/internal/sessions/errors"
	"lashstudio/internal/sessions/repository"
	"lashstudio/internal/sessions/validator"
	"lashstudio/internal/wizard"
	"lashstudio/pkg/config"
	apperrors "lashstudio/pkg/errors"
	"lashstudio/pkg/logger"
	"lashstudio/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.June, 5, 10, 0, 0, 0, time.UTC)

type recordingSink struct {
	mu       sync.Mutex
	err      error
	receipts []confirmation.Receipt
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Deliver(_ context.Context, r confirmation.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = append(s.receipts, r)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.receipts)
}

type fixture struct {
	svc    SessionService
	studio StudioService
	repo   repository.MemorySessionRepository
	sink   *recordingSink
}

func newFixture(t *testing.T, provider availability.Provider) *fixture {
	t.Helper()

	cfg := config.FromEnv()
	cfg.Log = logger.Discard()
	cfg.StudioRegion = "GB"
	cfg.AvailabilityTimeout = time.Second
	cfg.RequestTimeout = time.Second

	cal := calendar.NewEngine(
		calendar.WithClock(func() time.Time { return testNow }),
		calendar.WithLocation(time.UTC),
	)
	sink := &recordingSink{}
	engine := Engine{
		Machine:  wizard.NewMachine(catalog.Default(), cal),
		Provider: provider,
		Dispatcher: confirmation.NewDispatcher(
			confirmation.ReceiptConfig{Location: "Bristol, UK", CurrencySymbol: "£"},
			[]confirmation.Sink{sink},
			confirmation.WithClock(func() time.Time { return testNow }),
		),
		Styles: gallery.DefaultStyles(),
	}

	repo := repository.NewMemorySessionRepository(time.Hour)
	t.Cleanup(repo.Stop)

	return &fixture{
		svc:    NewSessionService(repo, validator.NewEventValidator(), engine, cfg),
		studio: NewStudioService(engine, cfg),
		repo:   repo,
		sink:   sink,
	}
}

func (f *fixture) apply(t *testing.T, id string, req validator.EventRequest) *Outcome {
	t.Helper()
	out, err := f.svc.ApplyEvent(context.Background(), id, &req)
	require.NoError(t, err)
	return out
}

func requireAppError(t *testing.T, err error, code string, status int) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, status, appErr.StatusCode())
}

func TestSessionService_FullBooking(t *testing.T) {
	f := newFixture(t, availability.DefaultSchedule())
	ctx := context.Background()

	rec, err := f.svc.Create(ctx, &validator.SessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, wizard.SelectingService, rec.Session.State)
	id := rec.ID

	assert.True(t, f.apply(t, id, validator.EventRequest{Type: "select_service", ServiceID: "russian"}).Applied)
	assert.True(t, f.apply(t, id, validator.EventRequest{Type: "continue"}).Applied)

	out := f.apply(t, id, validator.EventRequest{Type: "select_date", Date: "2025-06-10"})
	require.True(t, out.Applied)
	assert.Equal(t, wizard.AvailabilityReady, out.Record.Session.Availability)
	assert.Len(t, out.Record.Session.Slots, 9)

	assert.True(t, f.apply(t, id, validator.EventRequest{Type: "select_time", Time: "2:00 PM"}).Applied)
	assert.True(t, f.apply(t, id, validator.EventRequest{Type: "continue"}).Applied)

	f.apply(t, id, validator.EventRequest{Type: "set_contact_field", Field: "name", Value: "  Jane   Doe "})
	f.apply(t, id, validator.EventRequest{Type: "set_contact_field", Field: "phone", Value: "07400 123456"})

	out = f.apply(t, id, validator.EventRequest{Type: "continue"})
	require.True(t, out.Completed)
	assert.Equal(t, wizard.Completed, out.Record.Session.State)

	require.NotNil(t, out.Record.Receipt)
	receipt := out.Record.Receipt
	assert.Equal(t, "russian", receipt.Booking.Service.ID)
	assert.Equal(t, model.NewDate(2025, time.June, 10), receipt.Booking.Date)
	assert.Equal(t, model.TimeSlot("2:00 PM"), receipt.Booking.Time)
	assert.Equal(t, "Jane Doe", receipt.Booking.Contact.Name)
	assert.Equal(t, "+447400123456", receipt.Booking.Contact.Phone)
	assert.Equal(t, "See you soon, Jane!", receipt.Greeting)
	assert.Equal(t, 1, f.sink.count())

	again := f.apply(t, id, validator.EventRequest{Type: "continue"})
	assert.False(t, again.Applied)
	assert.Equal(t, 1, f.sink.count(), "a booking is confirmed exactly once")

	stored, err := f.svc.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, stored.Receipt)
	assert.Equal(t, receipt.ID, stored.Receipt.ID)

	restart := f.apply(t, id, validator.EventRequest{Type: "start_new_booking"})
	assert.True(t, restart.Applied)
	assert.Equal(t, wizard.SelectingService, restart.Record.Session.State)
	assert.Nil(t, restart.Record.Receipt)
}

func TestSessionService_Preselected(t *testing.T) {
	f := newFixture(t, availability.DefaultSchedule())

	rec, err := f.svc.Create(context.Background(), &validator.SessionRequest{ServiceID: "mega"})
	require.NoError(t, err)
	assert.Equal(t, wizard.SelectingDateTime, rec.Session.State)
	require.NotNil(t, rec.Session.Draft.Service)
	assert.Equal(t, "mega", rec.Session.Draft.Service.ID)

	rec, err = f.svc.Create(context.Background(), &validator.SessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, wizard.SelectingService, rec.Session.State)
}

func TestSessionService_PreselectionMustBeAGalleryStyle(t *testing.T) {
	f := newFixture(t, availability.DefaultSchedule())

	for _, id := range []string{"infill-classic", "nope"} {
		_, err := f.svc.Create(context.Background(), &validator.SessionRequest{ServiceID: id})
		requireAppError(t, err, apperrors.CodeValidation, http.StatusUnprocessableEntity)
	}
}

func TestSessionService_GuardFailureDoesNotWrite(t *testing.T) {
	f := newFixture(t, availability.DefaultSchedule())
	rec, err := f.svc.Create(context.Background(), &validator.SessionRequest{ServiceID: "classic"})
	require.NoError(t, err)

	out := f.apply(t, rec.ID, validator.EventRequest{Type: "select_date", Date: "2025-06-04"})
	assert.False(t, out.Applied, "yesterday is not selectable")
	assert.Equal(t, int64(1), out.Record.Revision)
	assert.Nil(t, out.Record.Session.Draft.Date)

	out = f.apply(t, rec.ID, validator.EventRequest{Type: "continue"})
	assert.False(t, out.Applied, "cannot continue without date and time")
}

func TestSessionService_Errors(t *testing.T) {
	f := newFixture(t, availability.DefaultSchedule())
	ctx := context.Background()

	_, err := f.svc.GetByID(ctx, repository.NewID())
	requireAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)

	_, err = f.svc.GetByID(ctx, "abc")
	requireAppError(t, err, apperrors.CodeInvalidInput, http.StatusBadRequest)

	rec, err := f.svc.Create(ctx, &validator.SessionRequest{})
	require.NoError(t, err)

	_, err = f.svc.ApplyEvent(ctx, rec.ID, &validator.EventRequest{Type: "select_date", Date: "June 10"})
	requireAppError(t, err, apperrors.CodeValidation, http.StatusUnprocessableEntity)

	require.NoError(t, f.svc.Delete(ctx, rec.ID))
	err = f.svc.Delete(ctx, rec.ID)
	requireAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)
}

type switchProvider struct {
	down atomic.Bool
}

func (p *switchProvider) SlotsFor(ctx context.Context, date model.Date) ([]model.TimeSlot, error) {
	if p.down.Load() {
		return nil, errors.New("backend down")
	}
	return availability.DefaultSchedule().SlotsFor(ctx, date)
}

func TestSessionService_UnavailableThenRetry(t *testing.T) {
	provider := &switchProvider{}
	provider.down.Store(true)
	f := newFixture(t, provider)

	rec, err := f.svc.Create(context.Background(), &validator.SessionRequest{ServiceID: "wet"})
	require.NoError(t, err)

	out := f.apply(t, rec.ID, validator.EventRequest{Type: "select_date", Date: "2025-06-10"})
	require.True(t, out.Applied)
	assert.Equal(t, wizard.AvailabilityUnavailable, out.Record.Session.Availability)
	require.NotNil(t, out.Record.Session.Draft.Date, "the date is kept when slots fail to load")

	provider.down.Store(false)
	out = f.apply(t, rec.ID, validator.EventRequest{Type: "retry_availability"})
	require.True(t, out.Applied)
	assert.Equal(t, wizard.AvailabilityReady, out.Record.Session.Availability)
	assert.Len(t, out.Record.Session.Slots, 9)
}

func TestSessionService_StaleLookupIsDropped(t *testing.T) {
	var f *fixture
	var id string
	var once sync.Once

	provider := availability.ProviderFunc(func(ctx context.Context, date model.Date) ([]model.TimeSlot, error) {
		if date.Day == 10 {
			once.Do(func() {
				_, err := f.svc.ApplyEvent(ctx, id, &validator.EventRequest{Type: "select_date", Date: "2025-06-11"})
				assert.NoError(t, err)
			})
			return []model.TimeSlot{"10:00 AM"}, nil
		}
		return []model.TimeSlot{"11:00 AM"}, nil
	})
	f = newFixture(t, provider)

	rec, err := f.svc.Create(context.Background(), &validator.SessionRequest{ServiceID: "hybrid"})
	require.NoError(t, err)
	id = rec.ID

	out := f.apply(t, id, validator.EventRequest{Type: "select_date", Date: "2025-06-10"})
	require.True(t, out.Applied)

	s := out.Record.Session
	require.NotNil(t, s.Draft.Date)
	assert.Equal(t, "2025-06-11", s.Draft.Date.String())
	assert.Equal(t, []model.TimeSlot{"11:00 AM"}, s.Slots)
	assert.Equal(t, wizard.AvailabilityReady, s.Availability)
}

type conflictingRepo struct {
	repository.SessionRepository
	conflicts atomic.Int32
	updates   atomic.Int32
}

func (r *conflictingRepo) Update(ctx context.Context, rec *repository.Record) error {
	r.updates.Add(1)
	if r.conflicts.Load() > 0 {
		r.conflicts.Add(-1)
		return sessionserrors.ErrConflict
	}
	return r.SessionRepository.Update(ctx, rec)
}

func TestSessionService_ConflictRetry(t *testing.T) {
	base := newFixture(t, availability.DefaultSchedule())
	cfg := config.FromEnv()
	cfg.Log = logger.Discard()

	repo := &conflictingRepo{SessionRepository: base.repo}
	engine := Engine{Machine: wizard.NewMachine(catalog.Default(), calendar.NewEngine(calendar.WithClock(func() time.Time { return testNow })))}
	svc := NewSessionService(repo, validator.NewEventValidator(), engine, cfg)

	rec, err := svc.Create(context.Background(), &validator.SessionRequest{})
	require.NoError(t, err)

	repo.conflicts.Store(2)
	out, err := svc.ApplyEvent(context.Background(), rec.ID, &validator.EventRequest{Type: "select_service", ServiceID: "classic"})
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, int32(3), repo.updates.Load())

	repo.conflicts.Store(3)
	_, err = svc.ApplyEvent(context.Background(), rec.ID, &validator.EventRequest{Type: "select_service", ServiceID: "mega"})
	requireAppError(t, err, apperrors.CodeConflict, http.StatusConflict)
}

func TestSessionService_DeliveryFailureKeepsBooking(t *testing.T) {
	f := newFixture(t, availability.DefaultSchedule())
	f.sink.err = errors.New("archive offline")

	rec, err := f.svc.Create(context.Background(), &validator.SessionRequest{ServiceID: "classic"})
	require.NoError(t, err)

	f.apply(t, rec.ID, validator.EventRequest{Type: "select_date", Date: "2025-06-05"})
	f.apply(t, rec.ID, validator.EventRequest{Type: "select_time", Time: "9:00 AM"})
	f.apply(t, rec.ID, validator.EventRequest{Type: "continue"})
	f.apply(t, rec.ID, validator.EventRequest{Type: "set_contact_field", Field: "name", Value: "Ada"})
	f.apply(t, rec.ID, validator.EventRequest{Type: "set_contact_field", Field: "phone", Value: "12345"})

	out := f.apply(t, rec.ID, validator.EventRequest{Type: "continue"})
	assert.True(t, out.Completed)
	assert.Equal(t, wizard.Completed, out.Record.Session.State)
	assert.Equal(t, "12345", out.Record.Receipt.Booking.Contact.Phone, "unparseable phones are kept as typed")
	assert.Equal(t, 1, f.sink.count())
}

func TestStudioService(t *testing.T) {
	f := newFixture(t, availability.DefaultSchedule())
	ctx := context.Background()

	assert.Len(t, f.studio.ListServices(ctx), 7)

	svc, err := f.studio.GetService(ctx, "russian")
	require.NoError(t, err)
	assert.Equal(t, 85, svc.Price)

	_, err = f.studio.GetService(ctx, "lash-lift")
	requireAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)

	g := f.studio.Gallery(ctx, GalleryRequest{Step: -1})
	assert.Len(t, g.Styles, 5)
	assert.Equal(t, 4, g.Current, "paging back from the first style wraps to the last")
	assert.Equal(t, -1, g.Direction)

	g = f.studio.Gallery(ctx, GalleryRequest{Index: 2, Offset: -240, Velocity: -80})
	assert.Equal(t, 3, g.Current, "a strong left drag turns forward")
	g = f.studio.Gallery(ctx, GalleryRequest{Index: 2, Offset: 30, Velocity: 5})
	assert.Equal(t, 2, g.Current, "a weak drag stays put")

	_, err = f.studio.Calendar(ctx, nil, calendar.MaxShift+1, nil)
	requireAppError(t, err, apperrors.CodeInvalidInput, http.StatusBadRequest)

	cal, err := f.studio.Calendar(ctx, nil, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "JULY 2025", cal.Label)
	assert.Len(t, cal.Days, 31)
	assert.Equal(t, 2, cal.StartingWeekday)
	assert.Equal(t, "2025-06-05", cal.Today.String())

	view, err := f.studio.Availability(ctx, model.NewDate(2025, time.June, 10))
	require.NoError(t, err)
	assert.Equal(t, wizard.AvailabilityReady, view.Status)
	assert.Len(t, view.Slots, 9)

	_, err = f.studio.Availability(ctx, model.NewDate(2025, time.June, 4))
	requireAppError(t, err, apperrors.CodeValidation, http.StatusUnprocessableEntity)
}

func TestStudioService_AvailabilityFailureIsNotAnError(t *testing.T) {
	provider := &switchProvider{}
	provider.down.Store(true)
	f := newFixture(t, provider)

	view, err := f.studio.Availability(context.Background(), model.NewDate(2025, time.June, 10))
	require.NoError(t, err)
	assert.Equal(t, wizard.AvailabilityUnavailable, view.Status)
	assert.Empty(t, view.Slots)
}
