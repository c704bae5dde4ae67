// Package feed fetches the daily home game feed and turns it into snapshots.
//
// The Client downloads the public JSON document, reduces any HTML in event
// descriptions to plain text and reports every failure (network error,
// non-200 status, malformed JSON) as one error wrapping ErrFetch. Source
// pairs a Client with the event package to produce a complete snapshot per
// call and is the data source the poll coordinator drives.
package feed
