package service

import (
	"context"
	"fmt"
	"time"

	"lashstudio/internal/availability"
	"lashstudio/internal/calendar"
	"lashstudio/internal/catalog"
	"lashstudio/internal/gallery"
	"lashstudio/internal/wizard"
	"lashstudio/pkg/config"
	apperrors "lashstudio/pkg/errors"
	"lashstudio/pkg/metrics"
	"lashstudio/pkg/model"
)

type CalendarView struct {
	Label  string               `json:"label"`
	Today  model.Date           `json:"today"`
	Policy calendar.ShiftPolicy `json:"shift_policy"`
	model.CalendarMonth
	Cells []calendar.Cell `json:"cells"`
}

type AvailabilityView struct {
	Date   model.Date                `json:"date"`
	Status wizard.AvailabilityStatus `json:"status"`
	Slots  []model.TimeSlot          `json:"slots"`
}

// GalleryRequest positions the carousel: jump to Index, page by Step, then
// apply a drag of Offset pixels released at Velocity.
type GalleryRequest struct {
	Index    int
	Step     int
	Offset   float64
	Velocity float64
}

type GalleryView struct {
	Styles    []gallery.StyleView `json:"styles"`
	Current   int                 `json:"current"`
	Direction int                 `json:"direction"`
}

// StudioService answers the read-only questions the booking pages ask
// outside a session: the menu, the lookbook, the month grid and slots.
type StudioService interface {
	ListServices(ctx context.Context) []model.ServiceOffering
	GetService(ctx context.Context, id string) (*model.ServiceOffering, error)
	Gallery(ctx context.Context, req GalleryRequest) GalleryView
	Calendar(ctx context.Context, cursor *model.Date, shift int, selected *model.Date) (*CalendarView, error)
	Availability(ctx context.Context, date model.Date) (*AvailabilityView, error)
}

type studioService struct {
	catalog  *catalog.Catalog
	calendar *calendar.Engine
	provider availability.Provider
	styles   []gallery.Style
	metrics  *metrics.BookingMetrics
	cfg      *config.Config
}

func NewStudioService(engine Engine, cfg *config.Config) StudioService {
	styles := engine.Styles
	if styles == nil {
		styles = gallery.DefaultStyles()
	}
	return &studioService{
		catalog:  engine.Machine.Catalog(),
		calendar: engine.Machine.Calendar(),
		provider: engine.Provider,
		styles:   styles,
		metrics:  engine.Metrics,
		cfg:      cfg,
	}
}

func (s *studioService) ListServices(ctx context.Context) []model.ServiceOffering {
	return s.catalog.ListServices()
}

func (s *studioService) GetService(ctx context.Context, id string) (*model.ServiceOffering, error) {
	svc, ok := s.catalog.FindService(id)
	if !ok {
		return nil, apperrors.NotFoundWithID("Service", id)
	}
	return &svc, nil
}

func (s *studioService) Gallery(ctx context.Context, req GalleryRequest) GalleryView {
	styles := gallery.Styles(s.catalog, s.styles)
	carousel := gallery.NewCarousel(len(styles))
	carousel.Jump(req.Index)
	carousel.Paginate(req.Step)
	carousel.Swipe(req.Offset, req.Velocity)
	return GalleryView{
		Styles:    styles,
		Current:   carousel.Current(),
		Direction: carousel.Direction(),
	}
}

func (s *studioService) Calendar(ctx context.Context, cursor *model.Date, shift int, selected *model.Date) (*CalendarView, error) {
	if shift < -calendar.MaxShift || shift > calendar.MaxShift {
		return nil, apperrors.InvalidInput(fmt.Sprintf("shift must be between -%d and %d", calendar.MaxShift, calendar.MaxShift))
	}
	view := BuildCalendar(s.calendar, cursor, shift, selected)
	return &view, nil
}

// BuildCalendar renders the month around cursor (today when nil) after
// shifting it by shift months.
func BuildCalendar(engine *calendar.Engine, cursor *model.Date, shift int, selected *model.Date) CalendarView {
	today := engine.Today()
	c := today
	if cursor != nil {
		c = cursor.Normalize()
	}
	if shift != 0 {
		c = engine.ShiftMonth(c, shift)
	}
	return CalendarView{
		Label:         calendar.Label(c),
		Today:         today,
		Policy:        engine.Policy(),
		CalendarMonth: calendar.MonthGrid(c),
		Cells:         calendar.Cells(c, today, selected),
	}
}

func (s *studioService) Availability(ctx context.Context, date model.Date) (*AvailabilityView, error) {
	date = date.Normalize()
	if !calendar.IsSelectable(date, s.calendar.Today()) {
		return nil, apperrors.Validation("Date is not bookable", map[string]any{
			"date":  date.String(),
			"today": s.calendar.Today().String(),
		})
	}

	start := time.Now()
	slots, err := availability.Fetch(ctx, s.provider, date, s.cfg.AvailabilityTimeout)
	if err != nil {
		s.metrics.ObserveAvailability("unavailable", time.Since(start))
		s.cfg.Log.Warn("Availability lookup failed", "date", date.String(), "error", err)
		return &AvailabilityView{Date: date, Status: wizard.AvailabilityUnavailable, Slots: []model.TimeSlot{}}, nil
	}
	s.metrics.ObserveAvailability("ok", time.Since(start))
	return &AvailabilityView{Date: date, Status: wizard.AvailabilityReady, Slots: slots}, nil
}
