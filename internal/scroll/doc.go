// Package scroll turns viewport positions into loader triggers.
//
// A Monitor checks each observed Viewport against a fixed distance from
// the end of the document and, when the position is near the bottom and
// the fetcher is idle, calls Trigger. It keeps no state of its own apart
// from an optional rate limiter that bounds how often it fires.
package scroll
