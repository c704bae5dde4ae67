package event

import (
	"crypto/sha1"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RawEvent is a single entry of the public feed, as received.
type RawEvent struct {
	Description string `json:"description"`
	LocalTime   string `json:"local_time,omitempty"`
	Name        string `json:"name,omitempty"`
}

// Feed is the JSON document published once a day by the feed endpoint.
type Feed struct {
	Date        string     `json:"date"`
	Events      []RawEvent `json:"events"`
	EventsFound bool       `json:"events_found"`
}

// Event is a RawEvent enriched with the fields derived from its description.
// Empty Time and Venue mean the value could not be determined; a zero Start
// means Time is absent or did not parse.
type Event struct {
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description"`
	Time        string    `json:"time,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	Start       time.Time `json:"datetime,omitzero"`
}

// HasTime reports whether a start time was given or extracted.
func (e Event) HasTime() bool {
	return e.Time != ""
}

// HasVenue reports whether a venue was extracted.
func (e Event) HasVenue() bool {
	return e.Venue != ""
}

// HasStart reports whether the start time resolved to an instant.
func (e Event) HasStart() bool {
	return !e.Start.IsZero()
}

// DisplayName returns the event name, or "Event" when the feed left it out.
func (e Event) DisplayName() string {
	if e.Name == "" {
		return "Event"
	}
	return e.Name
}

// Snapshot is the result of one poll cycle. It is built once and replaced
// wholesale by the next cycle.
type Snapshot struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"`
	Events      []Event    `json:"events"`
	RawEvents   []RawEvent `json:"raw_events"`
	EventsFound bool       `json:"events_found"`
	LastPoll    time.Time  `json:"last_poll"`
	EventCount  int        `json:"event_count"`
	Summary     string     `json:"summary"`
}

// NewSnapshot enriches every feed entry, sorts the result by start time and
// summarizes it. now is recorded as the poll time.
func NewSnapshot(feed *Feed, now time.Time) *Snapshot {
	if feed == nil {
		feed = &Feed{}
	}

	events := make([]Event, 0, len(feed.Events))
	for _, raw := range feed.Events {
		events = append(events, Enrich(raw, feed.Date))
	}
	SortByTime(events)

	raws := make([]RawEvent, len(feed.Events))
	copy(raws, feed.Events)

	return &Snapshot{
		ID:          uuid.NewString(),
		Date:        feed.Date,
		Events:      events,
		RawEvents:   raws,
		EventsFound: feed.EventsFound,
		LastPoll:    now,
		EventCount:  len(events),
		Summary:     Summarize(events),
	}
}

// GenerateID creates a deterministic ID for an event from its date and
// description. It is stable across polls of the same day.
func GenerateID(date, description string) string {
	h := sha1.New()
	h.Write([]byte(date + "|" + description))
	return fmt.Sprintf("%x", h.Sum(nil))
}
