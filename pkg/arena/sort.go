package arena

import (
	"bytes"

	"github.com/flier/kvarena/internal/debug"
)

// sortBy runs a straightforward selection sort over the descriptor stack,
// swapping raw descriptor bytes via swapDescriptors. The arena's scale
// (bounded by its fixed buffer) makes O(n^2) an acceptable trade for never
// needing extra storage.
func (a *Arena) sortBy(less func(i, j uint32) bool) {
	n := a.stackCount()
	for i := uint32(0); i+1 < n; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if less(j, best) {
				best = j
			}
		}
		if best != i {
			a.swapDescriptors(i, best)
		}
	}

	a.rebuildGarbageList()
	a.gen++

	debug.Log(nil, "sort", "count=%d", n)
}

// rebuildGarbageList re-threads the garbage list from scratch in current
// stack order. swapDescriptors moves raw descriptor bytes, including
// prev_garbage/next_garbage fields, which leaves those links pointing at
// stale indices; sorting must not try to patch them incrementally and
// instead just rebuilds the whole list once at the end.
func (a *Arena) rebuildGarbageList() {
	a.setGarbageFront(noIndex)
	a.setGarbageBack(noIndex)
	a.setGarbageCount(0)

	a.bottomUp(func(i uint32) bool {
		if a.descIsGarbage(i) {
			a.attachGarbage(i)
		}
		return true
	})
}

// SortByKey reorders descriptors (live and garbage alike) by ascending key
// bytes. It invalidates last_found, since the cached index no longer names
// the same entry it used to.
func (a *Arena) SortByKey() {
	a.clearLastFound()
	a.sortBy(func(i, j uint32) bool {
		return bytes.Compare(a.descKey(i), a.descKey(j)) < 0
	})
}

// SortByHeap reorders descriptors by ascending heap address, bringing
// hunks that are contiguous in the heap next to each other in the stack.
// [Arena.Merge] is most effective run immediately afterward.
func (a *Arena) SortByHeap() {
	a.clearLastFound()
	a.sortBy(func(i, j uint32) bool {
		return a.descHeapTop(i) < a.descHeapTop(j)
	})
}
