package wizard

import "lashstudio/pkg/model"

// StepStatus is how a page appears in the progress indicator.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepActive    StepStatus = "active"
	StepCompleted StepStatus = "completed"
)

type step struct {
	State State
	Label string
	Ready func(draft model.BookingDraft) bool
}

// flow is the ordered list of wizard pages. Continue advances one entry
// once Ready holds; leaving the last entry completes the booking.
var flow = []step{
	{
		State: SelectingService,
		Label: "Style",
		Ready: func(d model.BookingDraft) bool { return d.Service != nil },
	},
	{
		State: SelectingDateTime,
		Label: "Date & Time",
		Ready: func(d model.BookingDraft) bool { return d.Date != nil && d.Time != nil },
	},
	{
		State: EnteringContact,
		Label: "Details",
		Ready: func(d model.BookingDraft) bool { return d.Contact != nil && d.Contact.Complete() },
	},
}

func stepIndex(s State) int {
	for i, st := range flow {
		if st.State == s {
			return i
		}
	}
	return -1
}

type StepView struct {
	Number int        `json:"number"`
	Label  string     `json:"label"`
	State  State      `json:"state"`
	Status StepStatus `json:"status"`
}

// Steps describes the progress indicator for the session.
func Steps(s Session) []StepView {
	current := stepIndex(s.State)
	if s.State == Completed {
		current = len(flow)
	}

	views := make([]StepView, len(flow))
	for i, st := range flow {
		status := StepPending
		switch {
		case i < current:
			status = StepCompleted
		case i == current:
			status = StepActive
		}
		views[i] = StepView{Number: i + 1, Label: st.Label, State: st.State, Status: status}
	}
	return views
}

// CanContinue is derived from the draft on every call.
func CanContinue(s Session) bool {
	i := stepIndex(s.State)
	if i < 0 {
		return false
	}
	return flow[i].Ready(s.Draft)
}
