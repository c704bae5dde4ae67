package notifier

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pfrederiksen/seattle-home-game/internal/entity"
	"github.com/pfrederiksen/seattle-home-game/internal/event"
)

// DryRunNotifier prints the entity states that would be published
type DryRunNotifier struct {
	out      io.Writer
	registry entity.Registry
}

// NewDryRunNotifier creates a new dry-run notifier writing to out, or stdout when out is nil
func NewDryRunNotifier(out io.Writer, registry entity.Registry) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out, registry: registry}
}

// Name implements Notifier
func (n *DryRunNotifier) Name() string {
	return "dry_run"
}

// Notify prints the summary and every sensor state
func (n *DryRunNotifier) Notify(ctx context.Context, snap *event.Snapshot) error {
	fmt.Fprintf(n.out, "--- Snapshot %s (%s) ---\n", snap.Date, snap.ID)
	fmt.Fprintf(n.out, "Summary: %s\n", snap.Summary)

	for _, s := range n.registry.Sensors(snap) {
		if !s.Available {
			fmt.Fprintf(n.out, "%s = %s (unavailable)\n", s.EntityID, s.State)
			continue
		}
		fmt.Fprintf(n.out, "%s = %s\n", s.EntityID, s.State)
	}
	fmt.Fprintln(n.out)
	return nil
}

// NotifyToggle prints the refresh switch state
func (n *DryRunNotifier) NotifyToggle(ctx context.Context, on bool) error {
	s := n.registry.RefreshSwitch(on)
	fmt.Fprintf(n.out, "%s = %s\n", s.EntityID, s.State)
	return nil
}
