package gradelist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/grade"
)

// requireLinks verifies that forward and backward traversal reach the same
// number of nodes as Len, and that every prev/next pair agrees.
func requireLinks(t *testing.T, l *List) {
	t.Helper()

	forward := 0
	var prev handle
	for h := l.head; h != noNode; h = l.at(h).next {
		require.Equal(t, prev, l.at(h).prev, "prev link of node %d", forward)
		prev = h
		forward++
		require.LessOrEqual(t, forward, len(l.nodes), "forward walk does not terminate")
	}
	require.Equal(t, l.tail, prev, "tail is not the last node reached from head")

	backward := 0
	for h := l.tail; h != noNode; h = l.at(h).prev {
		backward++
		require.LessOrEqual(t, backward, len(l.nodes), "backward walk does not terminate")
	}

	require.Equal(t, l.Len(), forward, "forward count")
	require.Equal(t, l.Len(), backward, "backward count")
	require.Equal(t, len(l.nodes)-len(l.free), l.Len(), "live arena slots")
}

// scenarioList inserts (Mathematics, 45), (Physics, 82), (Mathematics, 55)
// at the front in that order.
func scenarioList(t *testing.T) *List {
	t.Helper()
	l := New()
	l.InsertFront(grade.New(grade.Mathematics, 45))
	l.InsertFront(grade.New(grade.Physics, 82))
	l.InsertFront(grade.New(grade.Mathematics, 55))
	requireLinks(t, l)
	return l
}

func scenarioRecords() []grade.Record {
	return []grade.Record{
		grade.New(grade.Mathematics, 55),
		grade.New(grade.Physics, 82),
		grade.New(grade.Mathematics, 45),
	}
}
