package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/pfrederiksen/seattle-home-game/internal/event"
)

// FormatSnapshot formats the day's events as a Telegram HTML message. Events
// are listed in snapshot order with whatever time and venue are known.
func FormatSnapshot(snap *event.Snapshot) string {
	var msg strings.Builder

	msg.WriteString("🏟️ <b>Seattle home game today!</b>\n")
	if snap.Date != "" {
		msg.WriteString(fmt.Sprintf("📅 %s\n", html.EscapeString(snap.Date)))
	}
	msg.WriteString("\n")

	for _, evt := range snap.Events {
		msg.WriteString(fmt.Sprintf("• <b>%s</b>", html.EscapeString(evt.DisplayName())))
		if evt.HasTime() {
			msg.WriteString(fmt.Sprintf(" at %s", html.EscapeString(evt.Time)))
		}
		if evt.HasVenue() {
			msg.WriteString(fmt.Sprintf("\n  📍 %s", html.EscapeString(evt.Venue)))
		}
		if evt.Name != "" && evt.Description != "" {
			msg.WriteString(fmt.Sprintf("\n  <i>%s</i>", html.EscapeString(evt.Description)))
		} else if evt.Name == "" {
			msg.WriteString(fmt.Sprintf("\n  %s", html.EscapeString(evt.Description)))
		}
		msg.WriteString("\n")
	}

	if snap.Summary != "" {
		msg.WriteString(fmt.Sprintf("\n%s\n", html.EscapeString(snap.Summary)))
	}

	msg.WriteString("\n🔗 <a href=\"https://isthereaseattlehomegametoday.com/\">isthereaseattlehomegametoday.com</a>\n")
	msg.WriteString("\n#Seattle #HomeGame")

	return msg.String()
}
