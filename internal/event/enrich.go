package event

import (
	"regexp"
	"strings"
)

// rule is a named pattern whose first capture group holds the value of interest.
type rule struct {
	name    string
	pattern *regexp.Regexp
}

// timeRules are tried in order; the first match wins.
var timeRules = []rule{
	{"starts at", regexp.MustCompile(`(?i)starts\s+at\s+(\d{1,2}:\d{2}\s*[ap]m)`)},
	{"at", regexp.MustCompile(`(?i)at\s+(\d{1,2}:\d{2}\s*[ap]m)`)},
	{"bare", regexp.MustCompile(`(?i)\b(\d{1,2}:\d{2}\s*[ap]m)\b`)},
	{"dotted", regexp.MustCompile(`(?i)\b(\d{1,2}:\d{2}\s*[ap]\.m\.)`)},
}

// venueRules are tried in order; within a rule every match is considered
// until one survives cleanup.
var venueRules = []rule{
	{"at", regexp.MustCompile(`\bat\s+([^.]+?)(?:\.|$)`)},
	{"is at", regexp.MustCompile(`\bis\s+at\s+([^.]+?)(?:\.|$)`)},
}

var (
	whitespacePattern    = regexp.MustCompile(`\s+`)
	dottedMeridiemRegexp = regexp.MustCompile(`(?i)([ap])\.m\.`)

	// A clock time the venue rule picked up instead of a place, optionally
	// followed by the "at" that introduces the real venue.
	leadingClockPattern = regexp.MustCompile(`(?i)^\d{1,2}:\d{2}\s*[ap]\.?m?\.?\s*(?:at\s+)?`)

	// Start-time clauses that trail the venue name.
	trailingClausePattern = regexp.MustCompile(
		`(?i)(?:\.\s*(?:it\s+)?(?:starts\s+at|the\s+game\s+is\s+at)|,?\s+(?:starting\s+|starts\s+)?at)\s+\d{1,2}:\d{2}.*$`)
)

// Enrich derives time, venue and start instant for one raw feed entry. date
// is the feed's YYYY-MM-DD reference date. Any field that cannot be derived
// is left empty; Enrich never fails.
func Enrich(raw RawEvent, date string) Event {
	evt := Event{
		Name:        raw.Name,
		Description: raw.Description,
		Time:        strings.TrimSpace(raw.LocalTime),
	}

	if evt.Time == "" {
		evt.Time, _ = ExtractTime(raw.Description)
	}
	evt.Venue, _ = ExtractVenue(raw.Description)

	if evt.Time != "" {
		evt.Start, _ = ParseStart(evt.Time, date)
	}

	return evt
}

// ExtractTime finds a clock time such as "7:05 PM", "7:05pm" or "7:05 p.m."
// in description and returns it normalized to "7:05 PM" form.
func ExtractTime(description string) (string, bool) {
	for _, r := range timeRules {
		m := r.pattern.FindStringSubmatch(description)
		if m == nil {
			continue
		}
		return normalizeTime(m[1]), true
	}
	return "", false
}

func normalizeTime(s string) string {
	s = strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
	s = dottedMeridiemRegexp.ReplaceAllString(s, "${1}m")
	return strings.ToUpper(s)
}

// ExtractVenue finds the place named by an "at ..." or "is at ..." phrase in
// description.
func ExtractVenue(description string) (string, bool) {
	for _, r := range venueRules {
		for _, m := range r.pattern.FindAllStringSubmatch(description, -1) {
			if venue := cleanVenue(m[1]); venue != "" {
				return venue, true
			}
		}
	}
	return "", false
}

func cleanVenue(s string) string {
	s = strings.TrimSpace(s)
	s = leadingClockPattern.ReplaceAllString(s, "")
	s = trailingClausePattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
