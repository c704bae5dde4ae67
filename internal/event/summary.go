package event

import (
	"fmt"
	"sort"
	"strings"
)

// noTime labels the time group of events that have no start time.
const noTime = "No time"

// timeGroup counts the events of one venue that share a time.
type timeGroup struct {
	time  string
	count int
}

// venueGroup holds the events at one venue, grouped by time in order of
// first appearance.
type venueGroup struct {
	name  string
	count int
	times []timeGroup
}

// realTimes returns the venue's time groups excluding noTime.
func (v venueGroup) realTimes() []timeGroup {
	out := make([]timeGroup, 0, len(v.times))
	for _, tg := range v.times {
		if tg.time != noTime {
			out = append(out, tg)
		}
	}
	return out
}

// layout is the grouping of a day's events every summary strategy reads.
type layout struct {
	events  []Event
	venues  []venueGroup // first-seen order
	noVenue []Event
}

func newLayout(events []Event) *layout {
	l := &layout{events: events}
	index := make(map[string]int)

	for _, evt := range events {
		if !evt.HasVenue() {
			l.noVenue = append(l.noVenue, evt)
			continue
		}

		i, ok := index[evt.Venue]
		if !ok {
			i = len(l.venues)
			index[evt.Venue] = i
			l.venues = append(l.venues, venueGroup{name: evt.Venue})
		}
		l.venues[i].add(evt)
	}

	return l
}

func (v *venueGroup) add(evt Event) {
	v.count++
	key := evt.Time
	if key == "" {
		key = noTime
	}
	for i := range v.times {
		if v.times[i].time == key {
			v.times[i].count++
			return
		}
	}
	v.times = append(v.times, timeGroup{time: key, count: 1})
}

// uniqueTimes returns the distinct start times of the day, ordered by their
// first appearance in the (time-sorted) event list.
func (l *layout) uniqueTimes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, evt := range l.events {
		if !evt.HasTime() || seen[evt.Time] {
			continue
		}
		seen[evt.Time] = true
		out = append(out, evt.Time)
	}
	return out
}

// firstIndex returns the position of the first event with the given time.
func (l *layout) firstIndex(t string) int {
	for i, evt := range l.events {
		if evt.Time == t {
			return i
		}
	}
	return len(l.events)
}

func (l *layout) timedCount() int {
	n := 0
	for _, evt := range l.events {
		if evt.HasTime() {
			n++
		}
	}
	return n
}

// strategy renders the summary when its guard holds.
type strategy struct {
	name   string
	render func(l *layout) (string, bool)
}

// strategies are evaluated in order; the first that applies wins.
var strategies = []strategy{
	{"empty", summarizeEmpty},
	{"single event", summarizeSingle},
	{"single venue", summarizeSingleVenue},
	{"shared time", summarizeSharedTime},
	{"per venue", summarizePerVenue},
	{"overview", summarizeOverview},
}

// Summarize describes a time-sorted list of events in one sentence.
func Summarize(events []Event) string {
	l := newLayout(events)
	for _, s := range strategies {
		if summary, ok := s.render(l); ok {
			return summary
		}
	}
	// summarizeOverview always applies.
	return ""
}

func summarizeEmpty(l *layout) (string, bool) {
	if len(l.events) != 0 {
		return "", false
	}
	return "There are no events today", true
}

func summarizeSingle(l *layout) (string, bool) {
	if len(l.events) != 1 {
		return "", false
	}

	evt := l.events[0]
	switch {
	case evt.HasTime() && evt.HasVenue():
		return fmt.Sprintf("There is one event today at %s, starting at %s", evt.Venue, evt.Time), true
	case evt.HasTime():
		return fmt.Sprintf("There is one event today, starting at %s", evt.Time), true
	case evt.HasVenue():
		return fmt.Sprintf("There is one event today at %s", evt.Venue), true
	default:
		return "There is one event today", true
	}
}

func summarizeSingleVenue(l *layout) (string, bool) {
	if len(l.venues) != 1 || len(l.noVenue) != 0 {
		return "", false
	}

	n := len(l.events)
	venue := l.venues[0]
	bare := fmt.Sprintf("There are %d events today at %s", n, venue.name)

	if len(venue.times) == 1 {
		if t := venue.times[0].time; t != noTime {
			return fmt.Sprintf("%s, all starting at %s", bare, t), true
		}
		return bare, true
	}

	times := venue.realTimes()
	if len(times) == 0 {
		return bare, true
	}
	sort.SliceStable(times, func(i, j int) bool {
		return l.firstIndex(times[i].time) < l.firstIndex(times[j].time)
	})

	parts := make([]string, 0, len(times))
	for _, tg := range times {
		if tg.count > 1 {
			parts = append(parts, fmt.Sprintf("%d at %s", tg.count, tg.time))
		} else {
			parts = append(parts, tg.time)
		}
	}
	return fmt.Sprintf("%s, starting at %s", bare, joinList(parts)), true
}

func summarizeSharedTime(l *layout) (string, bool) {
	times := l.uniqueTimes()
	if len(times) != 1 || l.timedCount() != len(l.events) {
		return "", false
	}

	n := len(l.events)
	t := times[0]
	switch {
	case len(l.venues) == 2 && len(l.noVenue) == 0:
		return fmt.Sprintf("There are %d events today at %s, at %s and %s",
			n, t, l.venues[0].name, l.venues[1].name), true
	case len(l.venues) == 1 && len(l.noVenue) > 0:
		return fmt.Sprintf("There are %d events today at %s (%d at %s, %d with no venue listed)",
			n, t, l.venues[0].count, l.venues[0].name, len(l.noVenue)), true
	default:
		return fmt.Sprintf("There are %d events today, all starting at %s", n, t), true
	}
}

// byCount returns the venues ordered by descending event count; ties keep
// first-seen order.
func (l *layout) byCount() []venueGroup {
	venues := make([]venueGroup, len(l.venues))
	copy(venues, l.venues)
	sort.SliceStable(venues, func(i, j int) bool {
		return venues[i].count > venues[j].count
	})
	return venues
}

func summarizePerVenue(l *layout) (string, bool) {
	if len(l.venues) > 2 || len(l.noVenue) != 0 {
		return "", false
	}

	var clauses []string
	for _, v := range l.byCount() {
		times := v.realTimes()
		switch {
		case len(times) == 1 && times[0].count == 1:
			clauses = append(clauses, fmt.Sprintf("%s at %s", times[0].time, v.name))
		case len(times) > 0:
			names := make([]string, 0, len(times))
			for _, tg := range times {
				names = append(names, tg.time)
			}
			joined := strings.Join(names, " and ")
			if v.count == 1 {
				clauses = append(clauses, fmt.Sprintf("%s at %s", v.name, joined))
			} else {
				clauses = append(clauses, fmt.Sprintf("%d at %s (%s)", v.count, v.name, joined))
			}
		default:
			clauses = append(clauses, fmt.Sprintf("%d at %s", v.count, v.name))
		}
	}

	return fmt.Sprintf("There are %d events today: %s", len(l.events), strings.Join(clauses, " and ")), true
}

func summarizeOverview(l *layout) (string, bool) {
	n := len(l.events)
	venues := l.byCount()

	head := fmt.Sprintf("There are %d events today", n)
	switch len(venues) {
	case 0:
	case 1:
		head = fmt.Sprintf("%s at %s", head, venues[0].name)
	case 2:
		head = fmt.Sprintf("%s at %s and %s", head, venues[0].name, venues[1].name)
	default:
		head = fmt.Sprintf("%s at %d different venues", head, len(venues))
	}

	timed := l.timedCount()
	times := l.uniqueTimes()
	switch {
	case timed == n && len(times) <= 2:
		return fmt.Sprintf("%s, starting at %s", head, strings.Join(times, " and ")), true
	case timed == n:
		return head + " at various times", true
	case timed > 0:
		return fmt.Sprintf("%s (%d with times listed)", head, timed), true
	default:
		return head, true
	}
}

// joinList joins items as "X", "X and Y" or "X, Y, and Z".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
