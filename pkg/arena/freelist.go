package arena

// The garbage list is a doubly-linked list threaded through the
// prev_garbage/next_garbage fields of garbage descriptors, anchored by the
// header's garbage_front/garbage_back indices. It is always present (the
// design note in the specification that allows compiling it out is not
// taken up here; see SPEC_FULL.md) so GarbageSize and GarbageCount don't
// need a scan of the whole stack to find garbage. Recycling does not use
// the list: findRecyclable scans the whole stack bottom-up.
//
// It is deliberately re-derived from the specification's description
// rather than ported from any existing pointer-swap implementation: prior
// art for this exact structure is known to contain inverted-conditional
// and double-swap bugs (see spec.md §9), so every helper here is written
// and reasoned about from scratch.

// attachGarbage appends descriptor i to the back of the garbage list and
// marks it garbage. i must not already be on the list.
func (a *Arena) attachGarbage(i uint32) {
	a.setDescGarbage(i, true)
	a.setDescPrevGarbage(i, a.garbageBack())
	a.setDescNextGarbage(i, noIndex)

	if back := a.garbageBack(); back != noIndex {
		a.setDescNextGarbage(back, i)
	} else {
		a.setGarbageFront(i)
	}
	a.setGarbageBack(i)
	a.setGarbageCount(a.garbageCount() + 1)
}

// detachGarbage removes descriptor i from the garbage list and clears its
// garbage flag. i must currently be on the list.
func (a *Arena) detachGarbage(i uint32) {
	prev := a.descPrevGarbage(i)
	next := a.descNextGarbage(i)

	if prev != noIndex {
		a.setDescNextGarbage(prev, next)
	} else {
		a.setGarbageFront(next)
	}

	if next != noIndex {
		a.setDescPrevGarbage(next, prev)
	} else {
		a.setGarbageBack(prev)
	}

	a.setDescGarbage(i, false)
	a.setDescPrevGarbage(i, noIndex)
	a.setDescNextGarbage(i, noIndex)
	a.setGarbageCount(a.garbageCount() - 1)
}

// findRecyclable scans the descriptor stack bottom-up for a garbage
// descriptor whose hunk is exactly hunkRequired bytes, per spec.md §4.5's
// exact-match recycle policy. Returns noIndex if none exists.
func (a *Arena) findRecyclable(hunkRequired uint32) uint32 {
	found := noIndex
	a.bottomUp(func(i uint32) bool {
		if a.descIsGarbage(i) && a.descHeapSize(i) == hunkRequired {
			found = i
			return false
		}
		return true
	})
	return found
}
