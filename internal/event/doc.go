// Package event provides the types and pure functions behind a single day's
// Seattle home game snapshot.
//
// Raw feed entries are enriched with a start time and venue pulled out of
// their free-text descriptions by ordered regular-expression rules, sorted by
// start time, and described in one natural-language sentence by the summary
// generator. Nothing in this package performs I/O or holds shared state, so
// every function is safe to call repeatedly with fresh inputs.
package event
