// Package store keeps a SQLite history of filter translations.
//
// Every translation attempt is appended to the translations table with its
// inputs, its RQL output or error, and an input key computed by
// value.TranslationKey. Successful rows double as a cache: Lookup returns the
// most recent successful translation for a key.
//
// # Ordering
//
// seq is assigned by SQLite on insert and is the only ordering used. Reads
// order by seq, then id COLLATE BINARY, so results are deterministic.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
