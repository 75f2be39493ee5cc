package arena

// pushDescriptor bumps the descriptor stack by one slot and returns its
// index, uninitialized. It does not check for collision with the heap;
// callers must do that themselves so they can roll back cleanly.
func (a *Arena) pushDescriptor() uint32 {
	i := a.stackCount()
	a.setStackCount(i + 1)
	return i
}

// popDescriptor shrinks the descriptor stack by one slot. It is only valid
// to call when the top slot is not referenced by anything else (e.g. the
// garbage list).
func (a *Arena) popDescriptor() {
	a.setStackCount(a.stackCount() - 1)
}

// descriptorsEnd returns the address one past the last descriptor slot.
func (a *Arena) descriptorsEnd() uint32 {
	return a.stackStart() + a.stackCount()*descriptorSize
}

// fits reports whether the descriptor stack and heap can coexist without
// overlapping, i.e. invariant 1 of the data model.
func (a *Arena) fits() bool {
	return a.descriptorsEnd() <= a.heapTop()
}

// topDown calls f for every descriptor index, newest first, live or
// garbage. f returning false stops the iteration early.
func (a *Arena) topDown(f func(i uint32) bool) {
	for i := a.stackCount(); i > 0; i-- {
		if !f(i - 1) {
			return
		}
	}
}

// bottomUp calls f for every descriptor index, oldest first, live or
// garbage. f returning false stops the iteration early.
func (a *Arena) bottomUp(f func(i uint32) bool) {
	for i := uint32(0); i < a.stackCount(); i++ {
		if !f(i) {
			return
		}
	}
}

// swapDescriptors exchanges the contents of two descriptor slots, including
// their garbage-list links, which are fixed up by the caller if the slots
// are attached to the garbage list (raw index swaps would otherwise leave
// stale self-references).
func (a *Arena) swapDescriptors(i, j uint32) {
	if i == j {
		return
	}

	oi, oj := a.descOff(i), a.descOff(j)
	var tmp [descriptorSize]byte
	copy(tmp[:], a.buf[oi:oi+descriptorSize])
	copy(a.buf[oi:oi+descriptorSize], a.buf[oj:oj+descriptorSize])
	copy(a.buf[oj:oj+descriptorSize], tmp[:])
}
