// Package store provides SQLite-backed durable key-value storage.
//
// Values are opaque strings addressed by string keys. Every Put replaces
// the whole value in a single statement, so readers never observe a
// partially written value.
//
// # Ordering
//
// Each write stamps the row with seq, a logical write counter that only
// grows. Listings are ordered by key (COLLATE BINARY), never by wall time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
