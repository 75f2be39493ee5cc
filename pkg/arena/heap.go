package arena

// pushHeap bumps the heap pointer down by n bytes and returns the start
// address of the newly reserved region. It does not check for collision
// with the descriptor stack; callers must verify [Arena.fits] afterwards
// and roll back with popHeap if it doesn't.
func (a *Arena) pushHeap(n uint32) uint32 {
	top := a.heapTop() - n
	a.setHeapTop(top)
	a.setHeapSize(a.heapSize() + n)
	return top
}

// popHeap is the inverse of pushHeap: it gives back n bytes at the current
// heap top.
func (a *Arena) popHeap(n uint32) {
	a.setHeapTop(a.heapTop() + n)
	a.setHeapSize(a.heapSize() - n)
}
