package testutil

import "github.com/roach88/gradebook/internal/grade"

// ScenarioRecords is the front-to-back order after front-inserting
// (Mathematics, 45), (Physics, 82) and (Mathematics, 55), in that order.
func ScenarioRecords() []grade.Record {
	return []grade.Record{
		grade.New(grade.Mathematics, 55),
		grade.New(grade.Physics, 82),
		grade.New(grade.Mathematics, 45),
	}
}

// OneOfEach returns one record per subject in declaration order. Scores
// rise from 40 in steps of 10, so the first two records fail.
func OneOfEach() []grade.Record {
	subjects := grade.Subjects()
	out := make([]grade.Record, len(subjects))
	for i, s := range subjects {
		out[i] = grade.New(s, 40+float64(i)*10)
	}
	return out
}
