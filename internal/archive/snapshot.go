package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/gradebook/internal/grade"
)

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot describes one archived copy of a grade list.
type Snapshot struct {
	ID    string `json:"id"`
	Seq   int64  `json:"seq"`
	Label string `json:"label,omitempty"`
	Count int    `json:"count"`
}

// Save archives records, front to back, as a new snapshot in a single
// transaction. The snapshot's seq is one greater than any existing seq.
func (a *Archive) Save(ctx context.Context, label string, records []grade.Record) (Snapshot, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) + 1 FROM snapshots").Scan(&seq); err != nil {
		return Snapshot{}, fmt.Errorf("save snapshot: next seq: %w", err)
	}

	snap := Snapshot{ID: a.idGen.Generate(), Seq: seq, Label: label, Count: len(records)}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO snapshots (id, seq, label, record_count) VALUES (?, ?, ?, ?)",
		snap.ID, snap.Seq, snap.Label, snap.Count,
	); err != nil {
		return Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO snapshot_grades (snapshot_id, position, subject, score) VALUES (?, ?, ?, ?)")
	if err != nil {
		return Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		name, err := r.Subject.MarshalText()
		if err != nil {
			return Snapshot{}, fmt.Errorf("save snapshot: record %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, snap.ID, i, string(name), r.Score); err != nil {
			return Snapshot{}, fmt.Errorf("save snapshot: record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("save snapshot: commit: %w", err)
	}

	slog.Debug("snapshot saved", "id", snap.ID, "seq", snap.Seq, "count", snap.Count)
	return snap, nil
}

// List returns every snapshot ordered by seq.
// Returns an empty slice (not nil) when the archive is empty.
func (a *Archive) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, seq, label, record_count
		FROM snapshots
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []Snapshot{}
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Seq, &s.Label, &s.Count); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}

	return snapshots, nil
}

// Latest returns the snapshot with the highest seq, or ErrNotFound.
func (a *Archive) Latest(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	err := a.db.QueryRowContext(ctx, `
		SELECT id, seq, label, record_count
		FROM snapshots
		ORDER BY seq DESC
		LIMIT 1
	`).Scan(&s.ID, &s.Seq, &s.Label, &s.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("query latest snapshot: %w", err)
	}
	return s, nil
}

// Load returns the records of snapshot id in front-to-back order.
func (a *Archive) Load(ctx context.Context, id string) ([]grade.Record, error) {
	var count int
	err := a.db.QueryRowContext(ctx, "SELECT record_count FROM snapshots WHERE id = ?", id).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load snapshot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", id, err)
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT subject, score
		FROM snapshot_grades
		WHERE snapshot_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", id, err)
	}
	defer rows.Close()

	records := make([]grade.Record, 0, count)
	for rows.Next() {
		var (
			name  string
			score float64
		)
		if err := rows.Scan(&name, &score); err != nil {
			return nil, fmt.Errorf("load snapshot %s: %w", id, err)
		}
		var s grade.Subject
		if err := s.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("load snapshot %s: %w", id, err)
		}
		records = append(records, grade.New(s, score))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", id, err)
	}

	if len(records) != count {
		return nil, fmt.Errorf("load snapshot %s: expected %d records, found %d", id, count, len(records))
	}
	return records, nil
}
