package model

// TimeSlot is an opaque start-time label such as "2:00 PM".
type TimeSlot string

const (
	ContactFieldName  = "name"
	ContactFieldPhone = "phone"
	ContactFieldEmail = "email"
)

type ContactInfo struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

// Complete reports whether the required contact fields are present.
// Email is optional and never validated.
func (c ContactInfo) Complete() bool {
	return c.Name != "" && c.Phone != ""
}

// BookingDraft is the in-progress booking. A nil field means the user has
// not chosen that part yet.
type BookingDraft struct {
	Service *ServiceOffering `json:"service,omitempty"`
	Date    *Date            `json:"date,omitempty"`
	Time    *TimeSlot        `json:"time,omitempty"`
	Contact *ContactInfo     `json:"contact,omitempty"`
}

func (d *BookingDraft) Reset() {
	*d = BookingDraft{}
}

// Clone returns a deep copy so that callers never share pointers with a
// stored draft.
func (d BookingDraft) Clone() BookingDraft {
	var out BookingDraft
	if d.Service != nil {
		s := *d.Service
		out.Service = &s
	}
	if d.Date != nil {
		dt := *d.Date
		out.Date = &dt
	}
	if d.Time != nil {
		t := *d.Time
		out.Time = &t
	}
	if d.Contact != nil {
		c := *d.Contact
		out.Contact = &c
	}
	return out
}

func (d BookingDraft) ContactOrEmpty() ContactInfo {
	if d.Contact == nil {
		return ContactInfo{}
	}
	return *d.Contact
}

// CompletedBooking is the value snapshot emitted when the wizard finishes.
type CompletedBooking struct {
	Service ServiceOffering `json:"service" bson:"service"`
	Date    Date            `json:"date" bson:"date"`
	Time    TimeSlot        `json:"time" bson:"time"`
	Contact ContactInfo     `json:"contact" bson:"contact"`
}

// Complete builds a CompletedBooking from the draft, or reports false when
// any required part is missing.
func (d BookingDraft) Complete() (CompletedBooking, bool) {
	if d.Service == nil || d.Date == nil || d.Time == nil || d.Contact == nil {
		return CompletedBooking{}, false
	}
	if !d.Contact.Complete() {
		return CompletedBooking{}, false
	}
	return CompletedBooking{
		Service: *d.Service,
		Date:    *d.Date,
		Time:    *d.Time,
		Contact: *d.Contact,
	}, true
}
