package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/seattle-home-game/internal/event"
)

var now = time.Date(2026, time.October, 19, 16, 0, 0, 0, time.UTC)

func testSnapshot() *event.Snapshot {
	return &event.Snapshot{
		Date:        "2026-10-19",
		EventsFound: true,
		Events: []event.Event{
			{
				Name:        "Kraken",
				Description: "Kraken game.",
				Time:        "7:00 PM",
				Venue:       "Climate Pledge Arena",
				Start:       time.Date(2026, time.October, 19, 19, 0, 0, 0, event.Pacific),
			},
			{Description: "Reign FC match."},
		},
	}
}

func TestGenerateICS(t *testing.T) {
	ics := GenerateICS(testSnapshot(), now)

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Seattle Home Game//seattle-home-game//EN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"DTSTAMP:20261019T160000Z",
		"DTSTART:20261020T020000Z",
		"DTEND:20261020T050000Z",
		"SUMMARY:Kraken",
		"LOCATION:Climate Pledge Arena",
		"STATUS:CONFIRMED",
		"SUMMARY:Reign FC match.",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("got %d VEVENTs, want 2", got)
	}

	if !strings.Contains(ics, "\r\n") {
		t.Error("ICS should use \\r\\n line endings")
	}
	if lf, crlf := strings.Count(ics, "\n"), strings.Count(ics, "\r\n"); lf != crlf {
		t.Errorf("found %d bare \\n line endings", lf-crlf)
	}
}

func TestGenerateICS_AllDay(t *testing.T) {
	ics := GenerateICS(testSnapshot(), now)

	if !strings.Contains(ics, "20261019") || !strings.Contains(ics, "VALUE=DATE") {
		t.Errorf("timeless event should be an all-day event:\n%s", ics)
	}
	if strings.Count(ics, "LOCATION:") != 1 {
		t.Error("LOCATION should only be set when the venue is known")
	}
}

func TestGenerateICS_StableUID(t *testing.T) {
	snap := testSnapshot()
	uid := UID(snap.Date, snap.Events[0])

	if !strings.HasSuffix(uid, "@isthereaseattlehomegametoday.com") {
		t.Errorf("UID() = %q, want feed domain suffix", uid)
	}
	if uid != UID(snap.Date, snap.Events[0]) {
		t.Error("UID() should be deterministic")
	}
	if uid == UID(snap.Date, snap.Events[1]) {
		t.Error("different events should have different UIDs")
	}
	if uid == UID("2026-10-20", snap.Events[0]) {
		t.Error("the same description on another day should have a different UID")
	}
}

func TestGenerateICS_Empty(t *testing.T) {
	tests := []struct {
		name string
		snap *event.Snapshot
	}{
		{name: "nil snapshot", snap: nil},
		{name: "no events", snap: &event.Snapshot{Date: "2026-10-19"}},
		{name: "timeless event with bad date", snap: &event.Snapshot{
			Date:   "not a date",
			Events: []event.Event{{Description: "Something."}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ics := GenerateICS(tt.snap, now)
			if !strings.Contains(ics, "BEGIN:VCALENDAR") {
				t.Error("should always produce a calendar")
			}
			if strings.Contains(ics, "BEGIN:VEVENT") {
				t.Error("should not contain any VEVENT")
			}
			if strings.Count(ics, "\n") != strings.Count(ics, "\r\n") {
				t.Errorf("calendar has bare \\n line endings: %q", ics)
			}
		})
	}
}
