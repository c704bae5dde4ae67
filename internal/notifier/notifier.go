package notifier

import (
	"context"

	"github.com/pfrederiksen/seattle-home-game/internal/event"
)

// Notifier defines the interface for delivering snapshots to a presentation sink
type Notifier interface {
	// Name identifies the sink in logs and metrics
	Name() string
	// Notify publishes the given snapshot
	Notify(ctx context.Context, snap *event.Snapshot) error
}

// ToggleNotifier is implemented by sinks that also show the manual refresh switch
type ToggleNotifier interface {
	NotifyToggle(ctx context.Context, on bool) error
}
