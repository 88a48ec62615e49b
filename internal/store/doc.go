// Package store provides SQLite-backed history of fraction evaluations.
//
// The store keeps two tables:
//   - sessions: one row per CLI eval session or scenario run
//   - evaluations: one row per evaluated step, keyed by (session_id, seq)
//
// # Ordering
//
// All ordering uses seq (a logical clock) or insertion order, never wall
// time, so reruns of a scenario store identical evaluation records.
//
// # Identity
//
// Session IDs come from an IDGenerator (UUIDv7 in production). Evaluation
// IDs are content-addressed: canonical.Hash over the session, seq and
// record, so writing the same evaluation twice is a no-op.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: evaluations must reference a session
package store
