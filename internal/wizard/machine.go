package wizard

import (
	"lashstudio/internal/availability"
	"lashstudio/internal/calendar"
	"lashstudio/internal/catalog"
	"lashstudio/pkg/model"
)

// Result is the outcome of applying one event. When Applied is false the
// event was ignored and Session is the input unchanged.
type Result struct {
	Session   Session
	Applied   bool
	Completed *model.CompletedBooking
	// Exited is set when Back is pressed on the first page. The host should
	// leave the wizard; Session has already been reset.
	Exited bool
}

// Machine holds the booking rules. It reads the catalog and the calendar
// clock and nothing else, so Apply is deterministic for a fixed clock.
type Machine struct {
	catalog  *catalog.Catalog
	calendar *calendar.Engine
}

// NewMachine creates a booking state machine over the catalog and calendar.
func NewMachine(c *catalog.Catalog, cal *calendar.Engine) *Machine {
	if cal == nil {
		cal = calendar.NewEngine()
	}
	return &Machine{catalog: c, calendar: cal}
}

func (m *Machine) Catalog() *catalog.Catalog {
	return m.catalog
}

func (m *Machine) Calendar() *calendar.Engine {
	return m.calendar
}

// Start opens a new session. A known preselected service skips the
// service page; an unknown one is ignored.
func (m *Machine) Start(preselected string) Session {
	s := Session{
		State:        SelectingService,
		Cursor:       m.calendar.Today(),
		Availability: AvailabilityIdle,
	}
	if preselected == "" {
		return s
	}
	if svc, ok := m.catalog.FindService(preselected); ok {
		s.Draft.Service = &svc
		s.State = SelectingDateTime
	}
	return s
}

// Apply returns the session that results from e. Events whose guard fails
// leave s untouched and report Applied false. The input session is never
// mutated.
func (m *Machine) Apply(s Session, e Event) Result {
	ignored := Result{Session: s}

	if ev, ok := e.(StartNewBooking); ok {
		next := m.Start(ev.ServiceID)
		next.DateVersion = s.DateVersion + 1
		return Result{Session: next, Applied: true}
	}

	if s.State == Completed {
		return ignored
	}

	next := s.Clone()

	switch ev := e.(type) {
	case Continue:
		return m.advance(s, next)

	case Back:
		i := stepIndex(s.State)
		if i <= 0 {
			reset := m.Start("")
			reset.DateVersion = s.DateVersion + 1
			return Result{Session: reset, Applied: true, Exited: true}
		}
		next.State = flow[i-1].State
		return Result{Session: next, Applied: true}

	case SelectService:
		if s.State != SelectingService {
			return ignored
		}
		svc, ok := m.catalog.FindService(ev.ID)
		if !ok {
			return ignored
		}
		next.Draft.Service = &svc

	case SelectDate:
		if s.State != SelectingDateTime {
			return ignored
		}
		date := ev.Date.Normalize()
		if !calendar.IsSelectable(date, m.calendar.Today()) {
			return ignored
		}
		next.Draft.Date = &date
		next.Draft.Time = nil
		next.Slots = nil
		next.Availability = AvailabilityPending
		next.DateVersion++

	case SlotsLoaded:
		if !m.awaitingSlots(s, ev.Version) {
			return ignored
		}
		next.Slots = append([]model.TimeSlot{}, ev.Slots...)
		next.Availability = AvailabilityReady

	case SlotsFailed:
		if !m.awaitingSlots(s, ev.Version) {
			return ignored
		}
		next.Slots = nil
		next.Availability = AvailabilityUnavailable

	case RetryAvailability:
		if s.State != SelectingDateTime || s.Availability != AvailabilityUnavailable || s.Draft.Date == nil {
			return ignored
		}
		next.Availability = AvailabilityPending

	case SelectTime:
		if s.State != SelectingDateTime || s.Availability != AvailabilityReady {
			return ignored
		}
		if !availability.Contains(s.Slots, ev.Slot) {
			return ignored
		}
		slot := ev.Slot
		next.Draft.Time = &slot

	case ShiftMonth:
		if s.State != SelectingDateTime || ev.Delta == 0 {
			return ignored
		}
		next.Cursor = m.calendar.ShiftMonth(s.Cursor, ev.Delta)

	case SetContactField:
		if s.State != EnteringContact {
			return ignored
		}
		contact := next.Draft.ContactOrEmpty()
		switch ev.Field {
		case model.ContactFieldName:
			contact.Name = ev.Value
		case model.ContactFieldPhone:
			contact.Phone = ev.Value
		case model.ContactFieldEmail:
			contact.Email = ev.Value
		default:
			return ignored
		}
		next.Draft.Contact = &contact

	default:
		return ignored
	}

	return Result{Session: next, Applied: true}
}

// CanContinue mirrors the package-level helper for callers holding a Machine.
func (m *Machine) CanContinue(s Session) bool {
	return CanContinue(s)
}

func (m *Machine) advance(s, next Session) Result {
	i := stepIndex(s.State)
	if i < 0 || !flow[i].Ready(s.Draft) {
		return Result{Session: s}
	}

	if i < len(flow)-1 {
		next.State = flow[i+1].State
		return Result{Session: next, Applied: true}
	}

	booking, ok := s.Draft.Complete()
	if !ok {
		return Result{Session: s}
	}
	next.State = Completed
	return Result{Session: next, Applied: true, Completed: &booking}
}

func (m *Machine) awaitingSlots(s Session, version int) bool {
	return s.State == SelectingDateTime &&
		s.Draft.Date != nil &&
		s.Availability == AvailabilityPending &&
		version == s.DateVersion
}
