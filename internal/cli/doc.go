// Package cli implements the command-line interface for seattle-home-game.
//
// The cli package provides the Cobra-based CLI: "check" fetches today's events once
// and prints them as a table or JSON, "summary" prints only the summary sentence, and
// "serve" runs the scheduled poller with the HTTP API and the configured notifiers.
// It coordinates the config, feed, coordinator, server and notifier packages.
package cli
