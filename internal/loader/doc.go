// Package loader implements the incremental catalog loader.
//
// The loader pulls pages from a Source one at a time and merges them into a
// deduplicated, first-seen-ordered item list.
//
// STATE MACHINE:
//
//	Idle --Trigger--> Loading --page with items--> Idle      (cursor advances)
//	                  Loading --empty page------> Exhausted  (terminal)
//	                  Loading --fetch error-----> Idle      (cursor unchanged)
//
// Trigger is a no-op while Loading or Exhausted. The Loading state is the
// only guard against overlapping requests: the mutex protects state reads
// and writes but is never held across the network call.
//
// Exhaustion is signaled only by a structurally empty page. A non-empty
// page whose items are all duplicates still advances the cursor.
//
// There is no automatic retry. A failed fetch returns to Idle and the next
// Trigger retries the same page.
package loader
