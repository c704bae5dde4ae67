package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/seattle-home-game/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByTime  SortOrder = "time"
	SortByVenue SortOrder = "venue"
	SortByName  SortOrder = "name"
)

// parseSortOrder validates a --sort value
func parseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case SortByTime, SortByVenue, SortByName:
		return order, nil
	case "":
		return SortByTime, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'time', 'venue' or 'name')", s)
	}
}

// sortEvents sorts a slice of events based on the specified sort order.
// Ties always fall back to start time.
func sortEvents(events []event.Event, sortOrder SortOrder) {
	event.SortByTime(events)

	switch sortOrder {
	case SortByVenue:
		sort.SliceStable(events, func(i, j int) bool {
			return lessText(events[i].Venue, events[j].Venue)
		})
	case SortByName:
		sort.SliceStable(events, func(i, j int) bool {
			return lessText(events[i].DisplayName(), events[j].DisplayName())
		})
	}
}

// lessText compares case-insensitively; empty values go last
func lessText(a, b string) bool {
	if a == "" || b == "" {
		return a != "" && b == ""
	}
	return strings.ToLower(a) < strings.ToLower(b)
}
