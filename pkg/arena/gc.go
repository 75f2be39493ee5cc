package arena

import "github.com/flier/kvarena/internal/debug"

// clampLimit turns a possibly-negative caller-supplied limit into the
// zero-reclaim case rather than silently wrapping to a huge uint32.
func clampLimit(limit int) uint32 {
	if limit < 0 {
		return 0
	}
	return uint32(limit)
}

// Pop reclaims garbage descriptors from the top of the stack, but only
// while their hunks abut the current heap top: this is the only primitive
// that moves no live bytes and invalidates no cached lookups.
//
// It stops at the first live descriptor on top, when the stack is empty,
// or when reclaiming the next candidate would exceed limit. A zero-size
// garbage descriptor left behind by [Arena.Merge] owns no heap bytes, so
// it is popped wherever its recorded heap top lies.
func (a *Arena) Pop(limit int) int {
	lim := clampLimit(limit)
	var reclaimed uint32

	for a.stackCount() > 0 {
		top := a.stackCount() - 1
		if !a.descIsGarbage(top) {
			break
		}

		size := a.descHeapSize(top)
		if reclaimed+size > lim {
			break
		}

		if size != 0 && a.descHeapTop(top) != a.heapTop() {
			// Garbage, but not at the heap frontier: reclaiming its
			// descriptor slot without its heap bytes would orphan them.
			break
		}

		a.detachGarbage(top)
		a.popDescriptor()
		a.popHeap(size)
		reclaimed += size
		a.gen++
	}

	debug.Log(nil, "pop", "reclaimed=%d", reclaimed)

	return int(reclaimed)
}

// contiguous reports whether descriptors i and j's hunks sit back-to-back
// in heap address order, in either order.
func (a *Arena) contiguous(i, j uint32) bool {
	return a.descEnd(i) == a.descHeapTop(j) || a.descEnd(j) == a.descHeapTop(i)
}

// Merge coalesces pairs of stack-adjacent garbage descriptors whose hunks
// are contiguous in heap order, folding the pair's bytes into the
// lower-indexed descriptor and leaving the other as an empty (zero-size)
// garbage descriptor. It never moves or copies live data, so descriptor
// addresses and key pointers for every live entry are untouched.
//
// Merge is most effective after [Arena.SortByHeap], which brings
// heap-contiguous descriptors next to each other in the stack.
func (a *Arena) Merge() int {
	a.clearLastFound()

	var merged uint32

	for i := uint32(0); i+1 < a.stackCount(); i++ {
		j := i + 1

		if !a.descIsGarbage(i) || !a.descIsGarbage(j) {
			continue
		}

		sizeI, sizeJ := a.descHeapSize(i), a.descHeapSize(j)
		if sizeI == 0 || sizeJ == 0 {
			continue // already absorbed by an earlier merge
		}

		if !a.contiguous(i, j) {
			continue
		}

		newTop := min(a.descHeapTop(i), a.descHeapTop(j))

		a.detachGarbage(i)
		a.detachGarbage(j)

		a.setDescHeapTop(i, newTop)
		a.setDescHeapSize(i, sizeI+sizeJ)
		a.attachGarbage(i)

		a.setDescHeapSize(j, 0)
		a.attachGarbage(j)

		merged += sizeI + sizeJ
		a.gen++
	}

	debug.Log(nil, "merge", "merged=%d", merged)

	return int(merged)
}

// Fold relocates live descriptors into equal-sized garbage holes lower in
// the stack, swapping which of the pair is live. This is one of the two
// primitives that invalidate any externally-held reference into the arena,
// since the relocated descriptor's key and value move to a new address.
//
// It stops considering further candidates once doing so would exceed
// limit.
func (a *Arena) Fold(limit int) int {
	a.clearLastFound()

	lim := clampLimit(limit)
	var folded uint32

	for g := uint32(0); g < a.stackCount(); g++ {
		if !a.descIsGarbage(g) || a.descHeapSize(g) == 0 {
			continue
		}

		size := a.descHeapSize(g)
		if folded+size > lim {
			break
		}

		t := noIndex
		a.topDown(func(idx uint32) bool {
			if idx <= g {
				return false
			}
			if !a.descIsGarbage(idx) && a.descHeapSize(idx) == size {
				t = idx
				return false
			}
			return true
		})
		if t == noIndex {
			continue
		}

		a.foldInto(g, t)
		folded += size
		a.gen++
	}

	debug.Log(nil, "fold", "folded=%d", folded)

	return int(folded)
}

// foldInto copies live descriptor t's hunk contents into garbage
// descriptor g's hunk (same size, by precondition), then swaps their
// live/garbage roles and garbage-list membership.
func (a *Arena) foldInto(g, t uint32) {
	dst := a.descHeapTop(g)
	src := a.descHeapTop(t)
	size := a.descHeapSize(g)

	valOff := a.descValuePtr(t) - src
	keyOff := a.descKeyPtr(t) - src
	valSize := a.descValueSize(t)

	copy(a.buf[dst:dst+size], a.buf[src:src+size])

	a.detachGarbage(g)
	a.setDescValuePtr(g, dst+valOff)
	a.setDescKeyPtr(g, dst+keyOff)
	a.setDescValueSize(g, valSize)

	a.attachGarbage(t)
}

// Pack slides live data toward the heap's growth frontier by walking
// stack-adjacent (descriptor, descriptor) pairs top-down: when the
// upper/newer one is a garbage hole immediately followed, in heap address
// order, by a live descriptor, the live descriptor's bytes are moved into
// the frontier-facing edge of the combined span, and the unused remainder
// becomes the new hole, now owned by what used to be the live descriptor's
// slot. This is the other primitive that invalidates external references.
func (a *Arena) Pack(limit int) int {
	a.clearLastFound()

	lim := clampLimit(limit)
	var packed uint32

	n := a.stackCount()
	for i := n; i >= 2; i-- {
		dest := i - 1
		src := i - 2

		if !a.descIsGarbage(dest) || a.descIsGarbage(src) {
			continue
		}
		if a.descEnd(dest) != a.descHeapTop(src) {
			continue
		}

		dsize := a.descHeapSize(dest)
		if packed+dsize > lim {
			break
		}

		a.packSlide(dest, src)
		packed += dsize
		a.gen++
	}

	debug.Log(nil, "pack", "packed=%d", packed)

	return int(packed)
}

// packSlide moves src's value+key into the frontier-facing portion of the
// combined (dest, src) span, and re-labels the remainder as src's new
// (garbage) hunk.
func (a *Arena) packSlide(dest, src uint32) {
	destTop := a.descHeapTop(dest)
	srcTop := a.descHeapTop(src)
	destSize := a.descHeapSize(dest)
	srcSize := a.descHeapSize(src)

	valOff := a.descValuePtr(src) - srcTop
	keyOff := a.descKeyPtr(src) - srcTop
	valSize := a.descValueSize(src)

	copy(a.buf[destTop:destTop+srcSize], a.buf[srcTop:srcTop+srcSize])

	a.detachGarbage(dest)
	a.setDescHeapSize(dest, srcSize)
	a.setDescValuePtr(dest, destTop+valOff)
	a.setDescKeyPtr(dest, destTop+keyOff)
	a.setDescValueSize(dest, valSize)

	leftoverTop := destTop + srcSize
	a.setDescHeapTop(src, leftoverTop)
	a.setDescHeapSize(src, destSize)
	a.attachGarbage(src)
}

// Collect reclaims up to limit bytes. Only Pop actually shrinks GarbageSize;
// Fold and Pack merely relocate garbage so that a following Pop can reach
// it, so their own return values are not reclamation and are never counted
// against limit. Collect tries Pop directly, then Fold followed by another
// Pop, then Pack followed by another Pop, stopping as soon as the bytes
// actually reclaimed meet limit.
func (a *Arena) Collect(limit int) int {
	reclaimed := a.Pop(limit)
	if reclaimed >= limit {
		return reclaimed
	}

	a.Fold(limit - reclaimed)
	reclaimed += a.Pop(limit - reclaimed)
	if reclaimed >= limit {
		return reclaimed
	}

	a.Pack(limit - reclaimed)
	reclaimed += a.Pop(limit - reclaimed)
	return reclaimed
}

// Clean repeatedly collects until no more garbage can be reclaimed or
// GarbageSize reaches zero, satisfying the postcondition that GarbageSize
// is zero afterward whenever the garbage can be fully defragmented away.
//
// A round can rearrange the stack (via Fold or Pack) without Pop being
// able to reach the result yet, e.g. a Pack in round N exposes a Fold
// opportunity only round N+1's Fold call will look for. Neither
// GarbageSize nor bytes-reclaimed is a safe progress signal on its own:
// GarbageSize doesn't move on a bare relocation, and a relocation with no
// immediate Pop still sets up later progress. Clean instead watches the
// generation counter, which every one of Pop/Fold/Pack bumps on any
// change; a round that leaves it untouched is a true fixed point.
func (a *Arena) Clean() int {
	total := 0

	for rounds := 0; a.GarbageSize() > 0 && rounds <= a.GarbageCount()+1; rounds++ {
		genBefore := a.gen

		total += a.Collect(a.GarbageSize())

		if a.gen == genBefore {
			break
		}
	}

	debug.Log(nil, "clean", "reclaimed=%d remaining=%d", total, a.GarbageSize())

	return total
}
