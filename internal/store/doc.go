// Package store provides SQLite-backed durable storage for scenario runs.
//
// Each run records the scenario source it was executed from, its pass/fail
// outcome and the full per-gather trace. Stored runs can be listed, read
// back and replayed: the source is re-executed and the fresh trace is
// compared event by event with the stored one.
//
// # Ordering
//
// Runs and trace events are ordered by a logical seq column, never by
// wall-clock time, so reads are identical across machines.
//
// # Schema
//
// schema.sql is applied on every Open. Later changes are numbered
// migrations tracked in PRAGMA user_version; Open applies the ones a
// database has not seen and logs each one. Connections run in WAL mode
// with foreign keys on, so deleting a run removes its trace.
package store
