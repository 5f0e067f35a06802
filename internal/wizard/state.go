package wizard

import (
	"slices"

	"lashstudio/pkg/model"
)

type State string

const (
	SelectingService  State = "selecting_service"
	SelectingDateTime State = "selecting_date_time"
	EnteringContact   State = "entering_contact"
	Completed         State = "completed"
)

// AvailabilityStatus tracks the slot lookup for the selected date.
type AvailabilityStatus string

const (
	AvailabilityIdle        AvailabilityStatus = "idle"
	AvailabilityPending     AvailabilityStatus = "pending"
	AvailabilityReady       AvailabilityStatus = "ready"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
)

// Session is the complete wizard state for one visitor. It is a plain value:
// the machine never mutates a Session it was given.
//
// DateVersion increases every time the selected date changes or the wizard
// restarts. Slot results carry the version they were requested for, so a
// slow lookup for an old date can be recognised and dropped.
type Session struct {
	State        State              `json:"state"`
	Draft        model.BookingDraft `json:"draft"`
	Cursor       model.Date         `json:"cursor"`
	Slots        []model.TimeSlot   `json:"slots"`
	Availability AvailabilityStatus `json:"availability"`
	DateVersion  int                `json:"date_version"`
}

func (s Session) Clone() Session {
	out := s
	out.Draft = s.Draft.Clone()
	if s.Slots != nil {
		out.Slots = slices.Clone(s.Slots)
	}
	return out
}
