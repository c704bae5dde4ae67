// Package notifier delivers snapshots to presentation sinks.
//
// The notifier package publishes the entity states derived from each snapshot
// to Home Assistant through its REST API, prints them in dry-run mode, or
// announces game days once per date on Telegram. The poll coordinator only
// depends on the Notifier interface, so other hosts can be added without
// touching the core.
package notifier
