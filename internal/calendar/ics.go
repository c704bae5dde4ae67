// Package calendar renders a snapshot as an iCalendar feed.
package calendar

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/pfrederiksen/seattle-home-game/internal/event"
)

const (
	productID = "-//Seattle Home Game//seattle-home-game//EN"
	uidDomain = "isthereaseattlehomegametoday.com"
	sourceURL = "https://isthereaseattlehomegametoday.com/"

	// Duration assumed for events with a known start
	eventDuration = 3 * time.Hour
)

// GenerateICS generates an iCalendar (.ics) document with one VEVENT per
// event of the snapshot. Events with a start time are timed; the rest are
// all-day events on the feed date.
func GenerateICS(snap *event.Snapshot, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)

	if snap == nil {
		return cal.Serialize(ical.WithNewLineWindows)
	}

	day, dayErr := time.ParseInLocation(event.DateLayout, snap.Date, event.Pacific)

	for _, evt := range snap.Events {
		if !evt.HasStart() && dayErr != nil {
			// Nowhere to place it
			continue
		}

		vevent := cal.AddEvent(UID(snap.Date, evt))
		vevent.SetDtStampTime(now.UTC())

		if evt.HasStart() {
			vevent.SetStartAt(evt.Start)
			vevent.SetEndAt(evt.Start.Add(eventDuration))
		} else {
			vevent.SetAllDayStartAt(day)
			vevent.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}

		vevent.SetSummary(summary(evt))
		if evt.HasVenue() {
			vevent.SetLocation(evt.Venue)
		}
		vevent.SetDescription(evt.Description)
		vevent.SetURL(sourceURL)
		vevent.SetStatus(ical.ObjectStatusConfirmed)
	}

	return cal.Serialize(ical.WithNewLineWindows)
}

// UID returns the calendar UID of an event; it is stable across polls of the
// same day.
func UID(date string, evt event.Event) string {
	return event.GenerateID(date, evt.Description) + "@" + uidDomain
}

// summary prefers the event name, falling back to the description
func summary(evt event.Event) string {
	if evt.Name != "" {
		return evt.Name
	}
	return evt.Description
}
