package wizard

import "lashstudio/pkg/model"

const (
	EventSelectService     = "select_service"
	EventContinue          = "continue"
	EventSelectDate        = "select_date"
	EventSelectTime        = "select_time"
	EventSetContactField   = "set_contact_field"
	EventBack              = "back"
	EventStartNewBooking   = "start_new_booking"
	EventShiftMonth        = "shift_month"
	EventSlotsLoaded       = "slots_loaded"
	EventSlotsFailed       = "slots_failed"
	EventRetryAvailability = "retry_availability"
)

// Event is a user intent or an availability result fed to Machine.Apply.
// The set is closed; Name is used for logging and metrics labels.
type Event interface {
	Name() string
	event()
}

type SelectService struct{ ID string }

type Continue struct{}

type SelectDate struct{ Date model.Date }

type SelectTime struct{ Slot model.TimeSlot }

type SetContactField struct {
	Field string
	Value string
}

type Back struct{}

// StartNewBooking restarts the wizard. A known ServiceID preselects that
// service and skips straight to date selection.
type StartNewBooking struct{ ServiceID string }

type ShiftMonth struct{ Delta int }

type SlotsLoaded struct {
	Version int
	Slots   []model.TimeSlot
}

type SlotsFailed struct{ Version int }

type RetryAvailability struct{}

func (SelectService) Name() string     { return EventSelectService }
func (Continue) Name() string          { return EventContinue }
func (SelectDate) Name() string        { return EventSelectDate }
func (SelectTime) Name() string        { return EventSelectTime }
func (SetContactField) Name() string   { return EventSetContactField }
func (Back) Name() string              { return EventBack }
func (StartNewBooking) Name() string   { return EventStartNewBooking }
func (ShiftMonth) Name() string        { return EventShiftMonth }
func (SlotsLoaded) Name() string       { return EventSlotsLoaded }
func (SlotsFailed) Name() string       { return EventSlotsFailed }
func (RetryAvailability) Name() string { return EventRetryAvailability }

func (SelectService) event()     {}
func (Continue) event()          {}
func (SelectDate) event()        {}
func (SelectTime) event()        {}
func (SetContactField) event()   {}
func (Back) event()              {}
func (StartNewBooking) event()   {}
func (ShiftMonth) event()        {}
func (SlotsLoaded) event()       {}
func (SlotsFailed) event()       {}
func (RetryAvailability) event() {}
