// Package entity derives host-neutral sensor states from a snapshot.
//
// Each State mirrors one Home Assistant entity: the home game binary sensor,
// the last poll, event date and event count sensors, five per-event detail
// sensors and the manual refresh switch. Notifiers and the HTTP API render
// these states; nothing here talks to the host.
package entity

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/seattle-home-game/internal/event"
)

// DetailSensorCount is the number of per-event detail sensors.
const DetailSensorCount = 5

// Entity states shared with Home Assistant.
const (
	StateOn          = "on"
	StateOff         = "off"
	StateUnavailable = "unavailable"
	StateUnknown     = "unknown"
)

// State is the current value of one entity.
type State struct {
	EntityID    string                 `json:"entity_id"`
	UniqueID    string                 `json:"unique_id"`
	Name        string                 `json:"name"`
	State       string                 `json:"state"`
	Icon        string                 `json:"icon,omitempty"`
	DeviceClass string                 `json:"device_class,omitempty"`
	Available   bool                   `json:"available"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
}

// Registry names entities for one configured integration entry.
type Registry struct {
	// EntryID prefixes every unique ID.
	EntryID string
	// Prefix is the object ID prefix, e.g. "seattle_home_game".
	Prefix string
}

func (r Registry) entity(domain, key, name string) State {
	return State{
		EntityID:  fmt.Sprintf("%s.%s_%s", domain, r.Prefix, key),
		UniqueID:  fmt.Sprintf("%s_%s", r.EntryID, key),
		Name:      name,
		Available: true,
	}
}

// Build returns every entity state for snap, ending with the refresh switch.
func (r Registry) Build(snap *event.Snapshot, refreshing bool) []State {
	return append(r.Sensors(snap), r.RefreshSwitch(refreshing))
}

// Sensors returns the states derived from snap alone, without the switch.
func (r Registry) Sensors(snap *event.Snapshot) []State {
	states := []State{
		r.HomeGame(snap),
		r.LastPoll(snap),
		r.EventDate(snap),
		r.EventCount(snap),
	}
	for i := 0; i < DetailSensorCount; i++ {
		states = append(states, r.EventDetail(snap, i))
	}
	return states
}

// HomeGame is the "is there a home game today" binary sensor.
func (r Registry) HomeGame(snap *event.Snapshot) State {
	s := r.entity("binary_sensor", "home_game_today", "Is There a Seattle Home Game Today?")

	events := make([]map[string]interface{}, 0, len(snap.Events))
	for _, evt := range snap.Events {
		events = append(events, EventAttributes(evt))
	}

	s.State = StateOff
	s.Icon = "mdi:stadium-outline"
	if snap.EventsFound {
		s.State = StateOn
		s.Icon = "mdi:stadium"
	}
	s.Attributes = map[string]interface{}{
		"event_count": len(snap.Events),
		"events":      events,
		"summary":     snap.Summary,
	}
	return s
}

// LastPoll is the timestamp sensor of the last successful poll.
func (r Registry) LastPoll(snap *event.Snapshot) State {
	s := r.entity("sensor", "last_poll", "Last Poll Time")
	s.Icon = "mdi:clock-check"
	s.DeviceClass = "timestamp"
	s.State = StateUnknown
	if !snap.LastPoll.IsZero() {
		s.State = snap.LastPoll.Format(time.RFC3339)
	}
	return s
}

// EventDate is the feed's date sensor.
func (r Registry) EventDate(snap *event.Snapshot) State {
	s := r.entity("sensor", "event_date", "Event Date")
	s.Icon = "mdi:calendar"
	s.State = snap.Date
	if s.State == "" {
		s.State = StateUnknown
	}
	return s
}

// EventCount is the number-of-events sensor.
func (r Registry) EventCount(snap *event.Snapshot) State {
	s := r.entity("sensor", "event_count", "Event Count")
	s.Icon = "mdi:counter"
	s.State = fmt.Sprintf("%d", snap.EventCount)
	return s
}

// EventDetail is the detail sensor for the event at index (zero-based). It
// is unavailable when the day has fewer events. The entity ID and name count
// from one; the unique ID keeps the zero-based index.
func (r Registry) EventDetail(snap *event.Snapshot, index int) State {
	s := r.entity("sensor", fmt.Sprintf("event_%d", index+1), fmt.Sprintf("Event %d", index+1))
	s.UniqueID = fmt.Sprintf("%s_event_%d", r.EntryID, index)
	s.Icon = "mdi:calendar-text"

	if index >= len(snap.Events) {
		s.State = "No event"
		s.Available = false
		return s
	}

	evt := snap.Events[index]
	s.State = evt.DisplayName()
	s.Attributes = EventAttributes(evt)
	return s
}

// RefreshSwitch is the manual refresh toggle; it is on while a requested
// refresh is running.
func (r Registry) RefreshSwitch(on bool) State {
	s := r.entity("switch", "refresh", "Manual Refresh")
	s.Icon = "mdi:refresh"
	s.State = StateOff
	if on {
		s.State = StateOn
	}
	return s
}

// EventAttributes returns the displayable attributes of one event. Absent
// time and venue are reported as nil; datetime is only present when the
// start time resolved.
func EventAttributes(evt event.Event) map[string]interface{} {
	attrs := map[string]interface{}{
		"description": evt.Description,
		"time":        optional(evt.Time),
		"venue":       optional(evt.Venue),
		"has_time":    evt.HasTime(),
	}
	if evt.HasStart() {
		attrs["datetime"] = evt.Start.Format(time.RFC3339)
	}
	return attrs
}

func optional(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
