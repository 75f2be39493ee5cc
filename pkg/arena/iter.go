package arena

import "github.com/flier/kvarena/internal/debug"

// Iterator walks the live entries of an Arena in ascending descriptor-stack
// order. A zero Iterator is not usable; obtain one from [Arena.Begin] or
// [Arena.End].
//
// An Iterator is tied to the generation of the arena it was obtained from:
// any operation that can move or relabel descriptors (Create, Delete, Pop,
// Merge, Fold, Pack, SortByKey, SortByHeap, Clear) invalidates every
// Iterator obtained before it. Using one afterward is a precondition
// violation, asserted against in a debug build.
type Iterator struct {
	a   *Arena
	idx uint32
	gen uint64
}

// Begin returns an Iterator positioned at the first live entry, or an
// iterator [Iterator.Equal] to [Arena.End] if the arena holds none.
func (a *Arena) Begin() Iterator {
	first := noIndex
	a.bottomUp(func(i uint32) bool {
		if !a.descIsGarbage(i) {
			first = i
			return false
		}
		return true
	})
	return Iterator{a: a, idx: first, gen: a.gen}
}

// End returns the sentinel one-past-the-end iterator.
func (a *Arena) End() Iterator {
	return Iterator{a: a, idx: noIndex, gen: a.gen}
}

func (it Iterator) checkValid() {
	debug.Assert(it.a != nil, "use of the zero Iterator")
	debug.Assert(it.gen == it.a.gen, "iterator used after a mutation invalidated it")
}

// Next returns an Iterator positioned at the next live entry after it, or
// [Arena.End] if it was the last one.
func (it Iterator) Next() Iterator {
	it.checkValid()
	debug.Assert(it.idx != noIndex, "Next called on the end iterator")

	next := noIndex
	for i := it.idx + 1; i < it.a.stackCount(); i++ {
		if !it.a.descIsGarbage(i) {
			next = i
			break
		}
	}
	return Iterator{a: it.a, idx: next, gen: it.gen}
}

// Equal reports whether it and other name the same position of the same
// arena.
func (it Iterator) Equal(other Iterator) bool {
	return it.a == other.a && it.idx == other.idx
}

// Key returns the entry's key. The returned slice aliases the arena's
// buffer and is only valid until the next mutating operation.
func (it Iterator) Key() []byte {
	it.checkValid()
	debug.Assert(it.idx != noIndex, "Key called on the end iterator")
	return it.a.descKey(it.idx)
}

// ValueSize returns the length in bytes of the entry's value.
func (it Iterator) ValueSize() int {
	it.checkValid()
	debug.Assert(it.idx != noIndex, "ValueSize called on the end iterator")
	return int(it.a.descValueSize(it.idx))
}

// Value returns the entry's value. The returned slice aliases the arena's
// buffer and is only valid until the next mutating operation.
func (it Iterator) Value() []byte {
	it.checkValid()
	debug.Assert(it.idx != noIndex, "Value called on the end iterator")
	return it.a.descValue(it.idx)
}
