package grade

import (
	"fmt"
	"math"
	"strconv"
)

// PassThreshold is the lowest score that counts as a pass.
const PassThreshold = 60.0

// Score bounds accepted by ValidateScore.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Record is a single grade entry. It is a plain value: copies are
// independent and two records are equal when subject and score are equal.
type Record struct {
	Subject Subject
	Score   float64
}

// New creates a record for the given subject and score.
func New(subject Subject, score float64) Record {
	return Record{Subject: subject, Score: score}
}

// Passed reports whether the score meets PassThreshold.
func (r Record) Passed() bool {
	return r.Score >= PassThreshold
}

// Failing reports whether r is a failing grade in the given subject.
func (r Record) Failing(subject Subject) bool {
	return r.Subject == subject && !r.Passed()
}

func (r Record) String() string {
	return r.Subject.String() + ":" + strconv.FormatFloat(r.Score, 'g', -1, 64)
}

// ValidateScore checks that score is a finite number within
// [MinScore, MaxScore]. Callers apply it before creating records from
// untrusted input; the record type itself does not enforce the range.
func ValidateScore(score float64) error {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return fmt.Errorf("score must be a finite number, got %v", score)
	}
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("score %v out of range [%g, %g]", score, MinScore, MaxScore)
	}
	return nil
}
