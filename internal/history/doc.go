// Package history persists sweep runs and their per-title outcomes in a
// SQLite database under the log directory.
//
// The store is append-only from the sweep's perspective: one row per run plus
// one row per processed title. The `mergehelper history` command reads it back
// for reporting.
package history
