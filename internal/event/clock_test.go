package event

import (
	"reflect"
	"testing"
	"time"
)

func TestParseStart(t *testing.T) {
	tests := []struct {
		name       string
		clock      string
		date       string
		wantOK     bool
		wantHour   int
		wantMinute int
		wantOffset int // seconds east of UTC
	}{
		{
			name:       "summer evening is PDT",
			clock:      "7:00 PM",
			date:       "2026-07-04",
			wantOK:     true,
			wantHour:   19,
			wantOffset: -7 * 60 * 60,
		},
		{
			name:       "winter compact form is PST",
			clock:      "7:05PM",
			date:       "2026-01-15",
			wantOK:     true,
			wantHour:   19,
			wantMinute: 5,
			wantOffset: -8 * 60 * 60,
		},
		{
			name:       "lowercase after midnight",
			clock:      "12:15 am",
			date:       "2026-03-01",
			wantOK:     true,
			wantHour:   0,
			wantMinute: 15,
			wantOffset: -8 * 60 * 60,
		},
		{
			name:   "word time",
			clock:  "noon",
			date:   "2026-07-04",
			wantOK: false,
		},
		{
			name:   "empty date",
			clock:  "7:00 PM",
			date:   "",
			wantOK: false,
		},
		{
			name:   "wrong date layout",
			clock:  "7:00 PM",
			date:   "07/04/2026",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseStart(tt.clock, tt.date)
			if ok != tt.wantOK {
				t.Fatalf("ParseStart(%q, %q) ok = %v, want %v", tt.clock, tt.date, ok, tt.wantOK)
			}
			if !ok {
				if !got.IsZero() {
					t.Errorf("ParseStart(%q, %q) = %v, want zero time", tt.clock, tt.date, got)
				}
				return
			}
			if got.Hour() != tt.wantHour || got.Minute() != tt.wantMinute {
				t.Errorf("ParseStart(%q, %q) = %02d:%02d, want %02d:%02d",
					tt.clock, tt.date, got.Hour(), got.Minute(), tt.wantHour, tt.wantMinute)
			}
			if _, offset := got.Zone(); offset != tt.wantOffset {
				t.Errorf("ParseStart(%q, %q) offset = %d, want %d", tt.clock, tt.date, offset, tt.wantOffset)
			}
		})
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, time.October, 19, hour, minute, 0, 0, Pacific)
}

func TestSortByTime(t *testing.T) {
	tests := []struct {
		name      string
		events    []Event
		wantOrder []string // Expected order of Description values
	}{
		{
			name:      "Empty slice",
			events:    []Event{},
			wantOrder: []string{},
		},
		{
			name: "Already sorted",
			events: []Event{
				{Description: "a", Start: at(13, 0)},
				{Description: "b", Start: at(16, 0)},
				{Description: "c", Start: at(19, 0)},
			},
			wantOrder: []string{"a", "b", "c"},
		},
		{
			name: "Reverse order",
			events: []Event{
				{Description: "c", Start: at(19, 0)},
				{Description: "b", Start: at(16, 0)},
				{Description: "a", Start: at(13, 0)},
			},
			wantOrder: []string{"a", "b", "c"},
		},
		{
			name: "Events without start at end in input order",
			events: []Event{
				{Description: "late"},
				{Description: "evening", Start: at(19, 0)},
				{Description: "later"},
				{Description: "noon", Start: at(12, 0)},
				{Description: "latest"},
			},
			wantOrder: []string{"noon", "evening", "late", "later", "latest"},
		},
		{
			name: "Equal starts keep input order",
			events: []Event{
				{Description: "first", Start: at(19, 0)},
				{Description: "second", Start: at(19, 0)},
			},
			wantOrder: []string{"first", "second"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortByTime(tt.events)
			assertOrder(t, tt.events, tt.wantOrder)

			// Sorting a sorted list changes nothing.
			SortByTime(tt.events)
			assertOrder(t, tt.events, tt.wantOrder)
		})
	}
}

func assertOrder(t *testing.T, events []Event, want []string) {
	t.Helper()
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, evt := range events {
		if evt.Description != want[i] {
			t.Errorf("position %d: got %q, want %q", i, evt.Description, want[i])
		}
	}
}

func TestSortByTime_Idempotent(t *testing.T) {
	events := []Event{
		{Description: "no start"},
		{Description: "evening", Start: at(19, 0)},
		{Description: "tie", Start: at(19, 0)},
		{Description: "also no start"},
		{Description: "noon", Start: at(12, 0)},
	}

	SortByTime(events)
	once := make([]Event, len(events))
	copy(once, events)

	SortByTime(events)
	if !reflect.DeepEqual(events, once) {
		t.Errorf("second sort changed the order:\ngot  %+v\nwant %+v", events, once)
	}
}
