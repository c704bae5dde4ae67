// Package coordinator runs the poll cycle: fetch the feed, replace the
// current snapshot and publish it to every notifier.
//
// Cycles never overlap. A manual refresh requested while a scheduled one is
// in flight waits for it and then runs its own fetch. Readers always see a
// complete snapshot; a failed fetch keeps the previous one.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pfrederiksen/seattle-home-game/internal/event"
	"github.com/pfrederiksen/seattle-home-game/internal/logger"
	"github.com/pfrederiksen/seattle-home-game/internal/metrics"
	"github.com/pfrederiksen/seattle-home-game/internal/notifier"
)

// DefaultSchedule polls once per hour.
const DefaultSchedule = "@every 1h"

// ErrPublish wraps notifier failures returned by Refresh. An error that is
// not ErrPublish means the fetch itself failed.
var ErrPublish = errors.New("publishing snapshot")

// DataSource produces a fresh snapshot per call.
type DataSource interface {
	Fetch(ctx context.Context) (*event.Snapshot, error)
}

// Options configures a Coordinator. The zero value is usable.
type Options struct {
	Notifiers []notifier.Notifier
	Metrics   *metrics.Metrics
	// Schedule is a cron spec; empty selects DefaultSchedule.
	Schedule string
	// Location interprets Schedule; nil selects the Pacific zone.
	Location *time.Location
}

// Coordinator owns the current snapshot.
type Coordinator struct {
	source DataSource
	opts   Options

	cycle    sync.Mutex
	snapshot atomic.Pointer[event.Snapshot]

	errMu   sync.RWMutex
	lastErr error

	// refreshing counts manual refreshes in progress
	refreshing atomic.Int32
}

// New creates a Coordinator polling source.
func New(source DataSource, opts Options) *Coordinator {
	if opts.Schedule == "" {
		opts.Schedule = DefaultSchedule
	}
	if opts.Location == nil {
		opts.Location = event.Pacific
	}
	return &Coordinator{source: source, opts: opts}
}

// Snapshot returns the latest successful snapshot, or nil before the first one.
func (c *Coordinator) Snapshot() *event.Snapshot {
	return c.snapshot.Load()
}

// LastError returns the error of the latest cycle, nil if it succeeded.
func (c *Coordinator) LastError() error {
	c.errMu.RLock()
	defer c.errMu.RUnlock()
	return c.lastErr
}

func (c *Coordinator) setLastError(err error) {
	c.errMu.Lock()
	c.lastErr = err
	c.errMu.Unlock()
}

// Refresh runs one fetch-and-publish cycle and returns the current snapshot.
// On a fetch error the previous snapshot (possibly nil) is returned with the
// error. Notifier failures do not discard the new snapshot; they are joined
// into an error wrapping ErrPublish.
func (c *Coordinator) Refresh(ctx context.Context) (*event.Snapshot, error) {
	c.cycle.Lock()
	defer c.cycle.Unlock()

	start := time.Now()
	snap, err := c.source.Fetch(ctx)
	elapsed := time.Since(start)

	if err != nil {
		c.observe(metrics.StatusError, elapsed)
		c.setLastError(err)
		logger.Error("Poll failed, keeping previous snapshot", logger.Fields{
			"duration_ms": elapsed.Milliseconds(),
		}, err)
		return c.snapshot.Load(), err
	}

	c.snapshot.Store(snap)
	c.setLastError(nil)
	c.observe(metrics.StatusOK, elapsed)
	if c.opts.Metrics != nil {
		c.opts.Metrics.SetSnapshot(snap)
	}

	logger.Info("Poll completed", logger.Fields{
		"poll_id":      snap.ID,
		"date":         snap.Date,
		"events_found": snap.EventsFound,
		"event_count":  snap.EventCount,
		"summary":      snap.Summary,
		"duration_ms":  elapsed.Milliseconds(),
	})

	return snap, c.publish(ctx, snap)
}

func (c *Coordinator) observe(status string, d time.Duration) {
	if c.opts.Metrics != nil {
		c.opts.Metrics.ObservePoll(status, d)
	}
}

func (c *Coordinator) publish(ctx context.Context, snap *event.Snapshot) error {
	var errs []error
	for _, n := range c.opts.Notifiers {
		if err := n.Notify(ctx, snap); err != nil {
			if c.opts.Metrics != nil {
				c.opts.Metrics.SinkError(n.Name())
			}
			logger.Error("Failed to publish snapshot", logger.Fields{
				"poll_id":  snap.ID,
				"notifier": n.Name(),
			}, err)
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPublish, errors.Join(errs...))
}

// Toggle reports whether a manual refresh is in progress.
func (c *Coordinator) Toggle() bool {
	return c.refreshing.Load() > 0
}

// TurnOn performs a manual refresh. The toggle reads on for its duration and
// turns itself off when the refresh finishes, whatever the outcome.
func (c *Coordinator) TurnOn(ctx context.Context) (*event.Snapshot, error) {
	if c.refreshing.Add(1) == 1 {
		c.publishToggle(ctx, true)
	}
	defer func() {
		if c.refreshing.Add(-1) == 0 {
			c.publishToggle(ctx, false)
		}
	}()

	logger.Info("Manual refresh requested", nil)
	return c.Refresh(ctx)
}

func (c *Coordinator) publishToggle(ctx context.Context, on bool) {
	for _, n := range c.opts.Notifiers {
		tn, ok := n.(notifier.ToggleNotifier)
		if !ok {
			continue
		}
		if err := tn.NotifyToggle(ctx, on); err != nil {
			if c.opts.Metrics != nil {
				c.opts.Metrics.SinkError(n.Name())
			}
			logger.Warn("Failed to publish refresh toggle", logger.Fields{
				"notifier": n.Name(),
				"on":       on,
				"error":    err.Error(),
			})
		}
	}
}

// Run publishes the refresh switch state and performs an initial refresh,
// then refreshes on the configured schedule until ctx is cancelled. It
// returns an error only for an invalid schedule.
func (c *Coordinator) Run(ctx context.Context) error {
	scheduler := cron.New(cron.WithLocation(c.opts.Location))
	if _, err := scheduler.AddFunc(c.opts.Schedule, func() {
		// Errors are logged and recorded by Refresh
		_, _ = c.Refresh(ctx)
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", c.opts.Schedule, err)
	}

	logger.Info("Starting poll scheduler", logger.Fields{
		"schedule": c.opts.Schedule,
		"timezone": c.opts.Location.String(),
	})

	// Notify leaves the switch alone, so seed its state once
	c.publishToggle(ctx, c.Toggle())
	_, _ = c.Refresh(ctx)

	scheduler.Start()
	<-ctx.Done()

	// Wait for a running cycle to finish
	<-scheduler.Stop().Done()
	logger.Info("Poll scheduler stopped", nil)
	return nil
}
