package handler

import (
	"net/http"

	"lashstudio/internal/sessions/service"
	apperrors "lashstudio/pkg/errors"
	httputil "lashstudio/pkg/http"
	"lashstudio/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type StudioHandler struct {
	service service.StudioService
	log     *logger.Logger
}

func NewStudioHandler(service service.StudioService, log *logger.Logger) *StudioHandler {
	return &StudioHandler{
		service: service,
		log:     log,
	}
}

func (h *StudioHandler) ListServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.ListServices(r.Context())); err != nil {
		h.log.Error("failed to write success response", "handler", "ListServices", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StudioHandler) GetService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	svc, err := h.service.GetService(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetService", err)
		return
	}

	if err := httputil.WriteSuccess(w, svc); err != nil {
		h.log.Error("failed to write success response", "handler", "GetService", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StudioHandler) Gallery(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	index, err := httputil.QueryInt(r, "index", 0)
	if err != nil {
		h.writeError(w, "Gallery", err)
		return
	}
	step, err := httputil.QueryInt(r, "step", 0)
	if err != nil {
		h.writeError(w, "Gallery", err)
		return
	}
	offset, err := httputil.QueryFloat(r, "offset", 0)
	if err != nil {
		h.writeError(w, "Gallery", err)
		return
	}
	velocity, err := httputil.QueryFloat(r, "velocity", 0)
	if err != nil {
		h.writeError(w, "Gallery", err)
		return
	}

	view := h.service.Gallery(r.Context(), service.GalleryRequest{
		Index:    index,
		Step:     step,
		Offset:   offset,
		Velocity: velocity,
	})
	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Gallery", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StudioHandler) Calendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := httputil.QueryDate(r, "cursor")
	if err != nil {
		h.writeError(w, "Calendar", err)
		return
	}
	selected, err := httputil.QueryDate(r, "selected")
	if err != nil {
		h.writeError(w, "Calendar", err)
		return
	}
	shift, err := httputil.QueryInt(r, "shift", 0)
	if err != nil {
		h.writeError(w, "Calendar", err)
		return
	}

	view, err := h.service.Calendar(r.Context(), cursor, shift, selected)
	if err != nil {
		h.writeError(w, "Calendar", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Calendar", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StudioHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date, err := httputil.QueryDate(r, "date")
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}
	if date == nil {
		h.writeError(w, "Availability", apperrors.InvalidInput("'date' query parameter is required"))
		return
	}

	view, err := h.service.Availability(r.Context(), *date)
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StudioHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
