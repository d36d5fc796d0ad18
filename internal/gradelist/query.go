package gradelist

import (
	"iter"

	"github.com/roach88/gradebook/internal/grade"
)

// MinMaxScore scans every record once and returns the lowest and highest
// score. It fails with EMPTY_COLLECTION when the list is empty.
func (l *List) MinMaxScore() (lo, hi float64, err error) {
	if l.n == 0 {
		return 0, 0, &Error{Code: ErrCodeEmptyCollection, Op: "min/max score"}
	}

	first := true
	for _, r := range l.All() {
		if first {
			lo, hi = r.Score, r.Score
			first = false
			continue
		}
		lo = min(lo, r.Score)
		hi = max(hi, r.Score)
	}
	return lo, hi, nil
}

// FindFailing returns, front to back, every record in subject whose score
// is below grade.PassThreshold. The result is empty, never nil, when
// nothing matches.
func (l *List) FindFailing(subject grade.Subject) []grade.Record {
	out := []grade.Record{}
	for _, r := range l.Failing(subject) {
		out = append(out, r)
	}
	return out
}

// Failing yields the failing records in subject, front to back, together
// with their indices in the list.
func (l *List) Failing(subject grade.Subject) iter.Seq2[int, grade.Record] {
	return func(yield func(int, grade.Record) bool) {
		for i, r := range l.All() {
			if r.Failing(subject) && !yield(i, r) {
				return
			}
		}
	}
}
