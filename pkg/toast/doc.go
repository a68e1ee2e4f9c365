// Package toast keeps the set of transient notifications shown to the user.
//
// An Emitter owns the active set. Show adds a notification that is visible
// immediately and expires after the configured duration unless dismissed
// first. Active returns the visible set in insertion order. Every change is
// published as an Event so streaming transports can mirror the set.
package toast
