package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/pfrederiksen/seattle-home-game/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt   time.Time     `json:"checked_at"`
	PollID      string        `json:"poll_id"`
	Date        string        `json:"date"`
	EventsFound bool          `json:"events_found"`
	EventCount  int           `json:"event_count"`
	Summary     string        `json:"summary"`
	Events      []event.Event `json:"events"`
}

// newOutputResult copies the displayable parts of a snapshot
func newOutputResult(snap *event.Snapshot, sortOrder SortOrder) *OutputResult {
	events := make([]event.Event, len(snap.Events))
	copy(events, snap.Events)
	sortEvents(events, sortOrder)

	return &OutputResult{
		CheckedAt:   snap.LastPoll.UTC(),
		PollID:      snap.ID,
		Date:        snap.Date,
		EventsFound: snap.EventsFound,
		EventCount:  snap.EventCount,
		Summary:     snap.Summary,
		Events:      events,
	}
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as a human-readable table
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if len(result.Events) == 0 {
		fmt.Fprintf(w, "No Seattle home games on %s.\n", orUnknown(result.Date))
		return nil
	}

	fmt.Fprintf(w, "Seattle home games on %s:\n\n", orUnknown(result.Date))

	rows := [][]string{{"TIME", "VENUE", "EVENT"}}
	for _, evt := range result.Events {
		rows = append(rows, []string{orDash(evt.Time), orDash(evt.Venue), evt.DisplayName()})
	}
	writeTable(w, rows)

	if verbose {
		fmt.Fprintln(w)
		for i, evt := range result.Events {
			fmt.Fprintf(w, "%d. %s\n", i+1, evt.Description)
			if evt.HasStart() {
				fmt.Fprintf(w, "   Starts: %s\n", evt.Start.Format(time.RFC3339))
			}
		}
		fmt.Fprintf(w, "\nPoll: %s\n", result.PollID)
	}

	fmt.Fprintf(w, "\n%s\n", result.Summary)
	return nil
}

// writeTable pads every column to its widest cell. Widths are display
// widths, so venue names with wide or combining characters stay aligned.
func writeTable(w io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if width := runewidth.StringWidth(cell); width > widths[i] {
				widths[i] = width
			}
		}
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return "an unknown date"
	}
	return s
}
