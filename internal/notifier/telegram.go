package notifier

import (
	"context"
	"sync"

	"github.com/pfrederiksen/seattle-home-game/internal/event"
	"github.com/pfrederiksen/seattle-home-game/internal/logger"
	"github.com/pfrederiksen/seattle-home-game/internal/telegram"
)

// MessageSender sends one chat message
type MessageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// TelegramNotifier announces a home game day once per feed date. Days
// without events are not announced.
type TelegramNotifier struct {
	sender MessageSender

	mu       sync.Mutex
	lastDate string
}

// NewTelegramNotifier creates a notifier sending through sender, usually a *telegram.Client
func NewTelegramNotifier(sender MessageSender) *TelegramNotifier {
	return &TelegramNotifier{sender: sender}
}

// Name implements Notifier
func (n *TelegramNotifier) Name() string {
	return "telegram"
}

// Notify sends the day's message the first time a snapshot with events is
// seen for its date. A failed send is retried on the next poll.
func (n *TelegramNotifier) Notify(ctx context.Context, snap *event.Snapshot) error {
	if !snap.EventsFound || len(snap.Events) == 0 {
		return nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if snap.Date == n.lastDate {
		return nil
	}

	if err := n.sender.SendMessage(ctx, telegram.FormatSnapshot(snap)); err != nil {
		return err
	}
	n.lastDate = snap.Date

	logger.Info("Sent game day message", logger.Fields{
		"date":        snap.Date,
		"event_count": snap.EventCount,
	})
	return nil
}
