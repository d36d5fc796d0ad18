// Package gradelist provides the ordered grade store: a doubly linked
// sequence of grade.Record values with positional access, bidirectional
// traversal, the min/max and failing-grade queries, and file persistence.
//
// # Storage
//
// Nodes live in an arena slice and link to each other by integer handle.
// Deleted slots go on a free list and are reused by later inserts. No node
// or handle ever leaves the package; callers only see indices and records.
//
// Indexed access starts from whichever end is closer: the front when
// index < Len()/2, the back otherwise.
//
// # Persistence order
//
// Serialize writes records front to back. Deserialize installs them by
// back-insertion in the order read, so a round trip preserves order exactly.
//
// # Concurrency
//
// A List is not safe for concurrent use. Callers must not mutate a List
// while ranging over All or Backward.
package gradelist
