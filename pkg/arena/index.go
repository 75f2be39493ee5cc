package arena

import "bytes"

// find locates the live descriptor holding key, consulting and maintaining
// the last-found cache per spec.md §4.4. It returns (index, true) on a hit.
func (a *Arena) find(key []byte) (uint32, bool) {
	if lf := a.lastFound(); lf != noIndex && lf < a.stackCount() &&
		!a.descIsGarbage(lf) && bytes.Equal(a.descKey(lf), key) {
		return lf, true
	}

	found := noIndex
	a.bottomUp(func(i uint32) bool {
		if !a.descIsGarbage(i) && bytes.Equal(a.descKey(i), key) {
			found = i
			return false
		}
		return true
	})

	if found == noIndex {
		return 0, false
	}

	a.setLastFound(found)
	return found, true
}
