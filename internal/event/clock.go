package event

import (
	"sort"
	"strings"
	"time"
	_ "time/tzdata" // America/Los_Angeles must resolve on hosts without a zoneinfo database

	"github.com/pfrederiksen/seattle-home-game/internal/logger"
)

// DateLayout is the layout of the feed's date field.
const DateLayout = "2006-01-02"

// clockLayouts are the accepted forms of a normalized time, tried in order.
var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
}

// Pacific is the zone every event start is expressed in.
var Pacific = loadPacific()

func loadPacific() *time.Location {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		return time.FixedZone("PST", -8*60*60)
	}
	return loc
}

// ParseStart combines a clock time ("7:05 PM" or "7:05PM") with a
// YYYY-MM-DD date in Pacific time. It returns false when either part does
// not parse.
func ParseStart(clock, date string) (time.Time, bool) {
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), Pacific)
	if err != nil {
		logger.Debug("could not parse event date", logger.Fields{"date": date, "time": clock})
		return time.Time{}, false
	}

	clock = strings.ToUpper(strings.Join(strings.Fields(clock), " "))
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, clock)
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, Pacific), true
	}

	logger.Debug("could not parse event time", logger.Fields{"date": date, "time": clock})
	return time.Time{}, false
}

// SortByTime orders events by start instant. Events without one keep their
// relative order and go last.
func SortByTime(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return startsBefore(events[i], events[j])
	})
}

func startsBefore(a, b Event) bool {
	switch {
	case a.HasStart() && b.HasStart():
		return a.Start.Before(b.Start)
	case a.HasStart():
		return true
	default:
		return false
	}
}
