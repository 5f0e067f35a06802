package handler

import (
	"fmt"
	"net/http"

	"lashstudio/internal/calendar"
	"lashstudio/internal/confirmation"
	"lashstudio/internal/sessions/repository"
	"lashstudio/internal/sessions/service"
	"lashstudio/internal/sessions/validator"
	"lashstudio/internal/wizard"
	apperrors "lashstudio/pkg/errors"
	httputil "lashstudio/pkg/http"
	"lashstudio/pkg/logger"
	"lashstudio/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// SessionView is what the booking page renders from. Calendar is only set
// while the visitor is picking a date.
type SessionView struct {
	ID           string                    `json:"id"`
	Revision     int64                     `json:"revision"`
	State        wizard.State              `json:"state"`
	Draft        model.BookingDraft        `json:"draft"`
	CanContinue  bool                      `json:"can_continue"`
	Steps        []wizard.StepView         `json:"steps"`
	Availability wizard.AvailabilityStatus `json:"availability"`
	Slots        []model.TimeSlot          `json:"slots"`
	Calendar     *service.CalendarView     `json:"calendar,omitempty"`
	Receipt      *confirmation.Receipt     `json:"receipt,omitempty"`
}

type EventResponse struct {
	Session   *SessionView `json:"session"`
	Applied   bool         `json:"applied"`
	Exited    bool         `json:"exited"`
	Completed bool         `json:"completed"`
}

type SessionHandler struct {
	service  service.SessionService
	calendar *calendar.Engine
	log      *logger.Logger
}

func NewSessionHandler(service service.SessionService, cal *calendar.Engine, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		service:  service,
		calendar: cal,
		log:      log,
	}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req validator.SessionRequest
	if err := httputil.DecodeJSON(r, &req, true); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	rec, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, h.view(rec)); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *SessionHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rec, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, h.view(rec)); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) ApplyEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req validator.EventRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		h.writeError(w, "ApplyEvent", err)
		return
	}

	out, err := h.service.ApplyEvent(r.Context(), ps.ByName("id"), &req)
	if err != nil {
		h.writeError(w, "ApplyEvent", err)
		return
	}

	resp := EventResponse{
		Session:   h.view(out.Record),
		Applied:   out.Applied,
		Exited:    out.Exited,
		Completed: out.Completed,
	}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "ApplyEvent", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

// Receipt serves the confirmed appointment as an iCalendar file.
func (h *SessionHandler) Receipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	rec, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "Receipt", err)
		return
	}
	if rec.Receipt == nil {
		h.writeError(w, "Receipt", apperrors.NotFoundWithID("Receipt", id))
		return
	}

	body, err := rec.Receipt.ICS(h.calendar.Location())
	if err != nil {
		h.writeError(w, "Receipt", apperrors.Internal("Failed to render calendar entry", err))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="booking-%s.ics"`, rec.Receipt.ID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		h.log.Error("failed to write calendar response", "handler", "Receipt", "operation", "Write", "error", err)
	}
}

func (h *SessionHandler) view(rec *repository.Record) *SessionView {
	s := rec.Session
	slots := s.Slots
	if slots == nil {
		slots = []model.TimeSlot{}
	}

	v := &SessionView{
		ID:           rec.ID,
		Revision:     rec.Revision,
		State:        s.State,
		Draft:        s.Draft,
		CanContinue:  wizard.CanContinue(s),
		Steps:        wizard.Steps(s),
		Availability: s.Availability,
		Slots:        slots,
		Receipt:      rec.Receipt,
	}
	if s.State == wizard.SelectingDateTime {
		cursor := s.Cursor
		cal := service.BuildCalendar(h.calendar, &cursor, 0, s.Draft.Date)
		v.Calendar = &cal
	}
	return v
}

func (h *SessionHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
