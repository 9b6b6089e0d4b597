package ical

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"

	"uncharted_escape/internal/domain"
)

var leadingDays = regexp.MustCompile(`^\s*(\d+)\s*[Dd]ay`)

// tripDays reads "5 Days" style durations; anything else counts as one day.
func tripDays(duration string) int {
	m := leadingDays.FindStringSubmatch(duration)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Encode renders a booking as a single-event iCalendar document. d may be nil
// when the destination is no longer listed; the event then spans one day.
func Encode(b domain.Booking, d *domain.Destination, now time.Time) (string, error) {
	start, err := time.ParseInLocation("2006-01-02", b.Date, time.UTC)
	if err != nil {
		return "", fmt.Errorf("booking %s date %q: %w", b.ID, b.Date, err)
	}
	days := 1
	location := ""
	if d != nil {
		days = tripDays(d.Duration)
		location = d.Location
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Uncharted Escape//Bookings//EN")

	ev := cal.AddEvent(b.ID + "@uncharted-escape")
	ev.SetDtStampTime(now.UTC())
	ev.SetAllDayStartAt(start)
	ev.SetAllDayEndAt(start.AddDate(0, 0, days))
	ev.SetSummary("Trip: " + b.DestinationName)
	if location != "" {
		ev.SetLocation(location)
	}
	ev.SetDescription(fmt.Sprintf("Guests: %d. Total: $%.2f. Status: %s.", b.Guests, b.TotalPrice, b.Status))
	return cal.Serialize(), nil
}
