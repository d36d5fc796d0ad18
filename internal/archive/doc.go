// Package archive provides SQLite-backed snapshot history for grade lists.
//
// Each snapshot stores a complete copy of a list, one row per record in
// front-to-back position order:
//   - snapshots: id, logical seq, label, record count
//   - snapshot_grades: (snapshot_id, position) -> subject, score
//
// # Ordering
//
// Snapshots are ordered by seq, a logical counter assigned on save, never
// by wall-clock time. Records are ordered by position.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
//
// The derived pass/fail flag is not stored, the same as in the file formats.
package archive
