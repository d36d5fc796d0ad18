package gradelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/grade"
)

func TestZeroValueList(t *testing.T) {
	var l List
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Records())

	l.InsertFront(grade.New(grade.Biology, 70))
	requireLinks(t, &l)
	assert.Equal(t, 1, l.Len())
}

func TestInsertFront_NewestIsFirst(t *testing.T) {
	l := New()
	for i, s := range grade.Subjects() {
		r := grade.New(s, float64(i*10))
		l.InsertFront(r)
		requireLinks(t, l)

		assert.Equal(t, i+1, l.Len())
		got, err := l.Get(0)
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}

func TestScenarioOrder(t *testing.T) {
	l := scenarioList(t)
	assert.Equal(t, scenarioRecords(), l.Records())
}

func TestDeleteAt_Head(t *testing.T) {
	l := scenarioList(t)

	removed, err := l.DeleteAt(0)
	require.NoError(t, err)
	requireLinks(t, l)

	assert.Equal(t, grade.New(grade.Mathematics, 55), removed)
	assert.Equal(t, []grade.Record{
		grade.New(grade.Physics, 82),
		grade.New(grade.Mathematics, 45),
	}, l.Records())
}

func TestDeleteAt_Tail(t *testing.T) {
	l := scenarioList(t)

	removed, err := l.DeleteAt(2)
	require.NoError(t, err)
	requireLinks(t, l)

	assert.Equal(t, grade.New(grade.Mathematics, 45), removed)
	assert.Equal(t, []grade.Record{
		grade.New(grade.Mathematics, 55),
		grade.New(grade.Physics, 82),
	}, l.Records())
}

func TestDeleteAt_Interior(t *testing.T) {
	l := scenarioList(t)

	removed, err := l.DeleteAt(1)
	require.NoError(t, err)
	requireLinks(t, l)

	assert.Equal(t, grade.New(grade.Physics, 82), removed)
	assert.Equal(t, []grade.Record{
		grade.New(grade.Mathematics, 55),
		grade.New(grade.Mathematics, 45),
	}, l.Records())
}

func TestDeleteAt_LastElementEmptiesList(t *testing.T) {
	l := New()
	l.InsertFront(grade.New(grade.Chemistry, 61))

	_, err := l.DeleteAt(0)
	require.NoError(t, err)
	requireLinks(t, l)

	assert.Equal(t, 0, l.Len())
	assert.Equal(t, noNode, l.head)
	assert.Equal(t, noNode, l.tail)

	// Empty -> NonEmpty again.
	l.InsertFront(grade.New(grade.Literature, 90))
	requireLinks(t, l)
	assert.Equal(t, []grade.Record{grade.New(grade.Literature, 90)}, l.Records())
}

func TestDeleteAt_ReusesFreedSlots(t *testing.T) {
	l := scenarioList(t)

	_, err := l.DeleteAt(1)
	require.NoError(t, err)
	l.InsertFront(grade.New(grade.Biology, 30))
	requireLinks(t, l)

	assert.Len(t, l.nodes, 3)
	assert.Empty(t, l.free)
	assert.Equal(t, []grade.Record{
		grade.New(grade.Biology, 30),
		grade.New(grade.Mathematics, 55),
		grade.New(grade.Mathematics, 45),
	}, l.Records())
}

func TestOutOfRange_NoMutation(t *testing.T) {
	tests := []struct {
		name string
		op   func(l *List) error
	}{
		{"delete negative", func(l *List) error { _, err := l.DeleteAt(-1); return err }},
		{"delete at len", func(l *List) error { _, err := l.DeleteAt(3); return err }},
		{"get negative", func(l *List) error { _, err := l.Get(-1); return err }},
		{"get past end", func(l *List) error { _, err := l.Get(10); return err }},
		{"set negative", func(l *List) error { return l.Set(-5, grade.New(grade.Physics, 1)) }},
		{"set at len", func(l *List) error { return l.Set(3, grade.New(grade.Physics, 1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := scenarioList(t)

			err := tt.op(l)
			require.Error(t, err)
			assert.True(t, IsOutOfRange(err), "expected OUT_OF_RANGE, got %v", err)

			requireLinks(t, l)
			assert.Equal(t, scenarioRecords(), l.Records())
		})
	}
}

func TestDeleteAt_EmptyList(t *testing.T) {
	l := New()
	_, err := l.DeleteAt(0)
	require.Error(t, err)
	assert.True(t, IsOutOfRange(err))
	assert.Contains(t, err.Error(), "index 0 not in [0, 0)")
}

func TestGet_BothHalves(t *testing.T) {
	l := New()
	for i := 9; i >= 0; i-- {
		l.InsertFront(grade.New(grade.Physics, float64(i)))
	}

	for i := 0; i < 10; i++ {
		got, err := l.Get(i)
		require.NoError(t, err)
		assert.Equal(t, float64(i), got.Score, "index %d", i)
	}
}

func TestSet_ReplacesInPlace(t *testing.T) {
	l := scenarioList(t)

	require.NoError(t, l.Set(1, grade.New(grade.Literature, 12)))
	requireLinks(t, l)

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []grade.Record{
		grade.New(grade.Mathematics, 55),
		grade.New(grade.Literature, 12),
		grade.New(grade.Mathematics, 45),
	}, l.Records())
}

func TestGet_ReturnsCopy(t *testing.T) {
	l := scenarioList(t)

	r, err := l.Get(0)
	require.NoError(t, err)
	r.Score = 0

	again, err := l.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 55.0, again.Score)
}

func TestAll_IsRestartable(t *testing.T) {
	l := scenarioList(t)
	seq := l.All()

	for range 2 {
		var got []grade.Record
		var idx []int
		for i, r := range seq {
			idx = append(idx, i)
			got = append(got, r)
		}
		assert.Equal(t, []int{0, 1, 2}, idx)
		assert.Equal(t, scenarioRecords(), got)
	}
}

func TestAll_EarlyBreak(t *testing.T) {
	l := scenarioList(t)

	var got []grade.Record
	for _, r := range l.All() {
		got = append(got, r)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
	assert.Equal(t, 3, l.Len())
}

func TestBackward(t *testing.T) {
	l := scenarioList(t)

	var idx []int
	var got []grade.Record
	for i, r := range l.Backward() {
		idx = append(idx, i)
		got = append(got, r)
	}

	assert.Equal(t, []int{2, 1, 0}, idx)
	assert.Equal(t, []grade.Record{
		grade.New(grade.Mathematics, 45),
		grade.New(grade.Physics, 82),
		grade.New(grade.Mathematics, 55),
	}, got)
}

func TestFromRecords_PreservesOrder(t *testing.T) {
	l := FromRecords(scenarioRecords())
	requireLinks(t, l)
	assert.Equal(t, scenarioRecords(), l.Records())
}

func TestReplace(t *testing.T) {
	l := scenarioList(t)
	l.Replace([]grade.Record{grade.New(grade.Biology, 99)})
	requireLinks(t, l)

	assert.Equal(t, []grade.Record{grade.New(grade.Biology, 99)}, l.Records())

	l.Replace(nil)
	requireLinks(t, l)
	assert.Equal(t, 0, l.Len())
}

func TestRecords_IsSnapshot(t *testing.T) {
	l := scenarioList(t)
	snap := l.Records()

	_, err := l.DeleteAt(0)
	require.NoError(t, err)

	assert.Len(t, snap, 3)
	assert.Equal(t, 2, l.Len())
}
