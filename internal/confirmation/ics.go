package confirmation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	ics "github.com/arran4/golang-ical"
)

const (
	slotLayout   = "3:04 PM"
	icsProductID = "-//lashstudio//booking//EN"
)

var durationLabelRegex = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*(hrs?|hours?|mins?|minutes?)\s*$`)

// ParseDurationLabel reads catalog labels such as "2 hrs", "1 hr",
// "2.5 hrs" or "45 min".
func ParseDurationLabel(label string) (time.Duration, error) {
	m := durationLabelRegex.FindStringSubmatch(label)
	if m == nil {
		return 0, fmt.Errorf("unrecognised duration label %q", label)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognised duration label %q: %w", label, err)
	}
	unit := time.Hour
	if strings.HasPrefix(strings.ToLower(m[2]), "m") {
		unit = time.Minute
	}
	return time.Duration(n * float64(unit)), nil
}

// Start resolves the appointment's wall-clock start in loc.
func (r Receipt) Start(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	clock, err := time.Parse(slotLayout, string(r.Booking.Time))
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised time slot %q", r.Booking.Time)
	}
	d := r.Booking.Date.Normalize()
	return time.Date(d.Year, d.Month, d.Day, clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// ICS renders the receipt as a single-event iCalendar document for the
// "Add to Calendar" action.
func (r Receipt) ICS(loc *time.Location) (string, error) {
	start, err := r.Start(loc)
	if err != nil {
		return "", err
	}
	length, err := ParseDurationLabel(r.Booking.Service.DurationLabel)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendarFor("lashstudio")
	cal.SetProductId(icsProductID)
	cal.SetMethod(ics.MethodPublish)

	event := cal.AddEvent(r.ID + "@lashstudio")
	event.SetDtStampTime(r.ConfirmedAt)
	event.SetStartAt(start)
	event.SetEndAt(start.Add(length))
	event.SetSummary(icsText(r.Booking.Service.Name))
	event.SetDescription(icsText(r.PriceLabel))
	event.SetLocation(icsText(r.Location))

	return cal.Serialize(), nil
}

// icsText keeps line breaks as LF and drops other control characters, which
// TEXT values cannot carry.
func icsText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\r':
			return '\n'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}
