package event

import (
	"testing"
)

func TestExtractTime(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
		wantOK      bool
	}{
		{
			name:        "starts at phrase",
			description: "The Sounders match starts at 3:04 PM.",
			want:        "3:04 PM",
			wantOK:      true,
		},
		{
			name:        "at phrase without space before meridiem",
			description: "Kraken game at 10:30am tonight",
			want:        "10:30AM",
			wantOK:      true,
		},
		{
			name:        "bare token with extra spaces",
			description: "First pitch 7:05   pm",
			want:        "7:05 PM",
			wantOK:      true,
		},
		{
			name:        "dotted meridiem",
			description: "Kickoff 1:25 p.m. Sunday",
			want:        "1:25 PM",
			wantOK:      true,
		},
		{
			name:        "starts at wins over earlier bare time",
			description: "Doors open 5:00 PM and the game starts at 7:00 PM",
			want:        "7:00 PM",
			wantOK:      true,
		},
		{
			name:        "no time",
			description: "The Seattle Storm play today",
			want:        "",
			wantOK:      false,
		},
		{
			name:        "noon is not a clock time",
			description: "Kickoff is at noon",
			want:        "",
			wantOK:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTime(tt.description)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ExtractTime(%q) = (%q, %v), want (%q, %v)", tt.description, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractVenue(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"The Mariners play at T-Mobile Park.", "T-Mobile Park"},
		{"The Kraken game is at Climate Pledge Arena", "Climate Pledge Arena"},
		{"The Sounders match starts at 7:30 PM. It is at Lumen Field.", "Lumen Field"},
		{"The Mariners play at T-Mobile Park at 7:10pm.", "T-Mobile Park"},
		{"The Huskies play at Husky Stadium, starting at 12:30 PM.", "Husky Stadium"},
		{"Game at Lumen Field starts at 5:00 PM", "Lumen Field"},
		{"The game starts at 1:10 PM at T-Mobile Park.", "T-Mobile Park"},
		{"Kickoff at 1:25 p.m. It is at Lumen Field.", "Lumen Field"},
		{"That game is downtown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, ok := ExtractVenue(tt.description)
			if got != tt.want {
				t.Errorf("ExtractVenue(%q) = %q, want %q", tt.description, got, tt.want)
			}
			if ok != (tt.want != "") {
				t.Errorf("ExtractVenue(%q) ok = %v, want %v", tt.description, ok, tt.want != "")
			}
		})
	}
}

func TestEnrich(t *testing.T) {
	tests := []struct {
		name      string
		raw       RawEvent
		date      string
		wantTime  string
		wantVenue string
		wantHour  int
		wantStart bool
	}{
		{
			name:      "time and venue from description",
			raw:       RawEvent{Description: "The Sounders match starts at 7:30 PM. It is at Lumen Field."},
			date:      "2026-10-19",
			wantTime:  "7:30 PM",
			wantVenue: "Lumen Field",
			wantHour:  19,
			wantStart: true,
		},
		{
			name:      "compact meridiem parses",
			raw:       RawEvent{Description: "The Mariners play at T-Mobile Park at 7:10pm."},
			date:      "2026-07-04",
			wantTime:  "7:10PM",
			wantVenue: "T-Mobile Park",
			wantHour:  19,
			wantStart: true,
		},
		{
			name:      "local time takes precedence",
			raw:       RawEvent{Description: "Game at Lumen Field starts at 5:00 PM", LocalTime: "6:30 PM"},
			date:      "2026-10-19",
			wantTime:  "6:30 PM",
			wantVenue: "Lumen Field",
			wantHour:  18,
			wantStart: true,
		},
		{
			name:      "unparsable local time keeps text only",
			raw:       RawEvent{Description: "Kickoff around lunch", LocalTime: "noon"},
			date:      "2026-10-19",
			wantTime:  "noon",
			wantStart: false,
		},
		{
			name:      "nothing recognizable",
			raw:       RawEvent{Description: "The Seattle Storm play today"},
			date:      "2026-10-19",
			wantStart: false,
		},
		{
			name:      "missing date",
			raw:       RawEvent{Description: "The Kraken game is at Climate Pledge Arena at 7:00 PM."},
			date:      "",
			wantTime:  "7:00 PM",
			wantVenue: "Climate Pledge Arena",
			wantStart: false,
		},
		{
			name:      "out of range hour",
			raw:       RawEvent{Description: "Listed as 13:00 PM"},
			date:      "2026-10-19",
			wantTime:  "13:00 PM",
			wantStart: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Enrich(tt.raw, tt.date)

			if got.Description != tt.raw.Description {
				t.Errorf("Description = %q, want %q", got.Description, tt.raw.Description)
			}
			if got.Time != tt.wantTime {
				t.Errorf("Time = %q, want %q", got.Time, tt.wantTime)
			}
			if got.Venue != tt.wantVenue {
				t.Errorf("Venue = %q, want %q", got.Venue, tt.wantVenue)
			}
			if got.HasStart() != tt.wantStart {
				t.Fatalf("HasStart() = %v, want %v (start %v)", got.HasStart(), tt.wantStart, got.Start)
			}
			if tt.wantStart {
				if got.Start.Hour() != tt.wantHour {
					t.Errorf("Start.Hour() = %d, want %d", got.Start.Hour(), tt.wantHour)
				}
				if got.Start.Location() != Pacific {
					t.Errorf("Start.Location() = %v, want %v", got.Start.Location(), Pacific)
				}
				if got.Start.Format(DateLayout) != tt.date {
					t.Errorf("Start date = %s, want %s", got.Start.Format(DateLayout), tt.date)
				}
			}
		})
	}
}
