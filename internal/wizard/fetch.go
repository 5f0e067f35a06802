package wizard

import (
	"context"
	"time"

	"lashstudio/internal/availability"
)

// NeedsSlots reports whether the session is waiting on a slot lookup.
func NeedsSlots(s Session) bool {
	return s.State == SelectingDateTime &&
		s.Draft.Date != nil &&
		s.Availability == AvailabilityPending
}

// FetchSlots performs the lookup a pending session is waiting on and returns
// the event that reports its outcome. The event carries the session's
// DateVersion, so applying it to a newer session is a no-op.
func FetchSlots(ctx context.Context, p availability.Provider, timeout time.Duration, s Session) (Event, bool) {
	if !NeedsSlots(s) {
		return nil, false
	}
	slots, err := availability.Fetch(ctx, p, *s.Draft.Date, timeout)
	if err != nil {
		return SlotsFailed{Version: s.DateVersion}, true
	}
	return SlotsLoaded{Version: s.DateVersion, Slots: slots}, true
}
