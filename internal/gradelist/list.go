package gradelist

import (
	"iter"

	"github.com/roach88/gradebook/internal/grade"
)

// handle addresses a node in the arena. Handles are 1-based so that the
// zero value means "no node" and a zero List is ready to use.
type handle uint32

const noNode handle = 0

type node struct {
	rec  grade.Record
	prev handle
	next handle
}

// List is a doubly linked sequence of grade records.
//
// The zero value is an empty list ready to use.
type List struct {
	nodes []node
	free  []handle
	head  handle
	tail  handle
	n     int
}

// New returns an empty list.
func New() *List {
	return &List{}
}

// FromRecords builds a list holding records in the given front-to-back order.
func FromRecords(records []grade.Record) *List {
	l := &List{nodes: make([]node, 0, len(records))}
	for _, r := range records {
		l.pushBack(r)
	}
	return l
}

// Len returns the number of records in the list.
func (l *List) Len() int {
	return l.n
}

// InsertFront adds r as the new first record. It always succeeds.
func (l *List) InsertFront(r grade.Record) {
	h := l.alloc(r)
	nd := l.at(h)
	nd.next = l.head
	if l.head != noNode {
		l.at(l.head).prev = h
	} else {
		l.tail = h
	}
	l.head = h
	l.n++
}

func (l *List) pushBack(r grade.Record) {
	h := l.alloc(r)
	nd := l.at(h)
	nd.prev = l.tail
	if l.tail != noNode {
		l.at(l.tail).next = h
	} else {
		l.head = h
	}
	l.tail = h
	l.n++
}

// DeleteAt removes the record at index and returns it.
// The list is left unchanged when index is out of range.
func (l *List) DeleteAt(index int) (grade.Record, error) {
	if !l.inRange(index) {
		return grade.Record{}, outOfRange("delete", index, l.n)
	}

	var h handle
	switch index {
	case 0:
		h = l.head
	case l.n - 1:
		h = l.tail
	default:
		h = l.find(index)
	}

	nd := l.at(h)
	rec := nd.rec
	if nd.prev != noNode {
		l.at(nd.prev).next = nd.next
	} else {
		l.head = nd.next
	}
	if nd.next != noNode {
		l.at(nd.next).prev = nd.prev
	} else {
		l.tail = nd.prev
	}
	l.release(h)
	l.n--

	if l.n == 0 {
		l.reset()
	}
	return rec, nil
}

// Get returns a copy of the record at index.
func (l *List) Get(index int) (grade.Record, error) {
	if !l.inRange(index) {
		return grade.Record{}, outOfRange("get", index, l.n)
	}
	return l.at(l.find(index)).rec, nil
}

// Set replaces the record at index in place. Length and order are unchanged.
func (l *List) Set(index int, r grade.Record) error {
	if !l.inRange(index) {
		return outOfRange("set", index, l.n)
	}
	l.at(l.find(index)).rec = r
	return nil
}

// All yields index/record pairs from front to back.
// The sequence can be ranged over any number of times.
func (l *List) All() iter.Seq2[int, grade.Record] {
	return func(yield func(int, grade.Record) bool) {
		i := 0
		for h := l.head; h != noNode; h = l.at(h).next {
			if !yield(i, l.at(h).rec) {
				return
			}
			i++
		}
	}
}

// Backward yields index/record pairs from back to front. Indices are the
// same ones All reports, counting down from Len()-1.
func (l *List) Backward() iter.Seq2[int, grade.Record] {
	return func(yield func(int, grade.Record) bool) {
		i := l.n - 1
		for h := l.tail; h != noNode; h = l.at(h).prev {
			if !yield(i, l.at(h).rec) {
				return
			}
			i--
		}
	}
}

// Records returns a front-to-back copy of every record.
func (l *List) Records() []grade.Record {
	out := make([]grade.Record, 0, l.n)
	for _, r := range l.All() {
		out = append(out, r)
	}
	return out
}

// Replace discards the current contents and installs records in the given
// front-to-back order. The new contents are built before the old ones are
// dropped.
func (l *List) Replace(records []grade.Record) {
	*l = *FromRecords(records)
}

func (l *List) inRange(index int) bool {
	return index >= 0 && index < l.n
}

// find walks to index from the nearer end. index must be in range.
func (l *List) find(index int) handle {
	if index < l.n/2 {
		h := l.head
		for i := 0; i < index; i++ {
			h = l.at(h).next
		}
		return h
	}
	h := l.tail
	for i := l.n - 1; i > index; i-- {
		h = l.at(h).prev
	}
	return h
}

func (l *List) at(h handle) *node {
	return &l.nodes[h-1]
}

func (l *List) alloc(r grade.Record) handle {
	if k := len(l.free); k > 0 {
		h := l.free[k-1]
		l.free = l.free[:k-1]
		*l.at(h) = node{rec: r}
		return h
	}
	l.nodes = append(l.nodes, node{rec: r})
	return handle(len(l.nodes))
}

func (l *List) release(h handle) {
	*l.at(h) = node{}
	l.free = append(l.free, h)
}

// reset drops the arena once the list is empty so slots do not accumulate.
func (l *List) reset() {
	l.nodes = l.nodes[:0]
	l.free = l.free[:0]
	l.head, l.tail = noNode, noNode
}
